package md2docx

// Notes:
// - ExecRunner is exercised with /bin/sh on Unix only; the Windows process
//   group path is covered by internal/process.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"
)

// MockRunner records the last command and returns canned output.
type MockRunner struct {
	Stdout     string
	Stderr     string
	Err        error
	CalledWith []string
	OnRun      func(args []string) // runs before returning, e.g. to write output files
}

func (m *MockRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	m.CalledWith = append([]string{name}, args...)
	if m.OnRun != nil {
		m.OnRun(args)
	}
	return m.Stdout, m.Stderr, m.Err
}

// ---------------------------------------------------------------------------
// TestExecRunner - Real subprocesses
// ---------------------------------------------------------------------------

func TestExecRunner(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}

	r := &ExecRunner{}

	t.Run("captures output and exit status", func(t *testing.T) {
		t.Parallel()

		stdout, stderr, err := r.Run(context.Background(), "sh", "-c", "echo out; echo err >&2; exit 3")
		if err == nil {
			t.Fatal("Run() expected exit error")
		}
		if stdout != "out\n" || stderr != "err\n" {
			t.Errorf("Run() = %q, %q", stdout, stderr)
		}
	})

	t.Run("missing binary", func(t *testing.T) {
		t.Parallel()

		_, _, err := r.Run(context.Background(), "md2docx-no-such-tool")
		if !errors.Is(err, ErrToolNotFound) {
			t.Errorf("Run() error = %v, want ErrToolNotFound", err)
		}
	})

	t.Run("missing binary path", func(t *testing.T) {
		t.Parallel()

		_, _, err := r.Run(context.Background(), "/nonexistent/mmdc")
		if !errors.Is(err, ErrToolNotFound) {
			t.Errorf("Run() error = %v, want ErrToolNotFound", err)
		}
	})

	t.Run("timeout kills the command", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, _, err := r.Run(ctx, "sh", "-c", "sleep 10")
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Run() error = %v, want DeadlineExceeded", err)
		}
		if time.Since(start) > 5*time.Second {
			t.Error("command was not killed on timeout")
		}
	})
}

// ---------------------------------------------------------------------------
// TestToolError - Messages and diagnostics
// ---------------------------------------------------------------------------

func TestToolError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ToolError
		wantMsg  string
		wantDiag string
	}{
		{
			name:     "stderr",
			err:      &ToolError{Tool: "mmdc", Stderr: "Parse error on line 2\nExpecting 'SEMI'\n", Err: ErrRender},
			wantMsg:  "mmdc: diagram rendering failed: Parse error on line 2",
			wantDiag: "Parse error on line 2\nExpecting 'SEMI'",
		},
		{
			name:     "no stderr",
			err:      &ToolError{Tool: "pandoc", Err: ErrConversion},
			wantMsg:  "pandoc: document conversion failed",
			wantDiag: "document conversion failed",
		},
		{
			name:     "nothing at all",
			err:      &ToolError{Tool: "mmdc"},
			wantMsg:  "mmdc: <nil>",
			wantDiag: "Unknown error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Diagnostic(); got != tt.wantDiag {
				t.Errorf("Diagnostic() = %q, want %q", got, tt.wantDiag)
			}
		})
	}
}

func TestToolError_Unwrap(t *testing.T) {
	t.Parallel()

	var err error = &ToolError{Tool: "mmdc", Err: ErrToolNotFound}
	if !errors.Is(err, ErrToolNotFound) {
		t.Error("errors.Is(ToolError, ErrToolNotFound) = false")
	}
	var te *ToolError
	if !errors.As(err, &te) || te.Tool != "mmdc" {
		t.Error("errors.As(*ToolError) failed")
	}
}

func TestWithTimeout(t *testing.T) {
	t.Parallel()

	ctx, cancel := withTimeout(context.Background(), 0)
	defer cancel()
	if _, ok := ctx.Deadline(); ok {
		t.Error("zero timeout should not set a deadline")
	}

	ctx2, cancel2 := withTimeout(context.Background(), time.Minute)
	defer cancel2()
	if _, ok := ctx2.Deadline(); !ok {
		t.Error("positive timeout should set a deadline")
	}
}
