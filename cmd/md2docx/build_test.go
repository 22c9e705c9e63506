package main

// Notes:
// - builderOptions is tested through the renderer and assembler it would
//   configure; Builder internals are covered in the library tests.
// - loadBuildConfig name lookups depend on the working directory and are
//   covered in the config package.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
)

// ---------------------------------------------------------------------------
// TestNewRenderer - Renderer selection
// ---------------------------------------------------------------------------

func TestNewRenderer(t *testing.T) {
	t.Parallel()

	t.Run("mmdc by default", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Renderer.MMDC = "/opt/mmdc"
		cfg.Renderer.PuppeteerConfig = "puppeteer.json"
		cfg.Renderer.Theme = "forest"
		cfg.Renderer.MMDCArgs = []string{"-s", "2"}

		r, ok := newRenderer(cfg, config.Timeouts{Render: time.Minute}).(*md2docx.CLIRenderer)
		if !ok {
			t.Fatal("expected *CLIRenderer")
		}
		if r.Binary != "/opt/mmdc" || r.PuppeteerConfig != "puppeteer.json" || r.Theme != "forest" {
			t.Errorf("CLIRenderer = %+v", r)
		}
		if args := r.Args("in.mmd", "out.png"); strings.Join(args[len(args)-2:], " ") != "-s 2" {
			t.Errorf("Args() = %v, want mmdcArgs appended", args)
		}
		if r.Timeout != time.Minute {
			t.Errorf("Timeout = %v, want 1m", r.Timeout)
		}
	})

	t.Run("browser is case-insensitive", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Renderer.Kind = "Browser"
		cfg.Renderer.Background = "transparent"

		r, ok := newRenderer(cfg, config.Timeouts{}).(*md2docx.BrowserRenderer)
		if !ok {
			t.Fatal("expected *BrowserRenderer")
		}
		if r.MermaidURL != md2docx.DefaultMermaidURL {
			t.Errorf("MermaidURL = %q, want default", r.MermaidURL)
		}
		if r.Background != "transparent" {
			t.Errorf("Background = %q", r.Background)
		}
		if r.Timeout != 0 {
			t.Errorf("Timeout = %v, want 0", r.Timeout)
		}
	})
}

// ---------------------------------------------------------------------------
// TestBuilderOptions - Options build a valid Builder
// ---------------------------------------------------------------------------

func TestBuilderOptions(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Output.HTML = true
	cfg.Output.Name = "book.docx"
	timeouts, err := cfg.Durations()
	if err != nil {
		t.Fatal(err)
	}
	env, _, _ := testEnv()
	rep := newReporter(env, false, false, false)

	b, err := md2docx.NewBuilder(builderOptions(cfg, timeouts, rep)...)
	if err != nil {
		t.Fatalf("NewBuilder() unexpected error: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("Close() unexpected error: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestLoadBuildConfig - Config resolution
// ---------------------------------------------------------------------------

func TestLoadBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("no name returns defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := loadBuildConfig("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Output.Dir != "output" {
			t.Errorf("Output.Dir = %q, want output", cfg.Output.Dir)
		}
	})

	t.Run("path is loaded", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "book.yaml")
		if err := os.WriteFile(path, []byte("output:\n  dir: dist\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := loadBuildConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Output.Dir != "dist" {
			t.Errorf("Output.Dir = %q, want dist", cfg.Output.Dir)
		}
	})

	t.Run("missing name carries search hint", func(t *testing.T) {
		t.Parallel()

		_, err := loadBuildConfig("no-such-config-for-md2docx-tests")
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "hint:") {
			t.Errorf("error should carry a hint: %v", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWithHint - Fatal error hints
// ---------------------------------------------------------------------------

func TestWithHint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantHint string
	}{
		{
			name:     "missing pandoc",
			err:      &md2docx.ToolError{Tool: "pandoc", Err: md2docx.ErrToolNotFound},
			wantHint: "pandoc.org",
		},
		{
			name:     "convert timeout",
			err:      &md2docx.ToolError{Tool: "pandoc", Err: fmt.Errorf("%w: %w", md2docx.ErrConversion, context.DeadlineExceeded)},
			wantHint: "--convert-timeout",
		},
		{
			name:     "unsafe output",
			err:      fmt.Errorf("%w: out contains docs", md2docx.ErrUnsafeOutputDir),
			wantHint: "hint:",
		},
		{
			name:     "prepare output",
			err:      fmt.Errorf("%w: permission denied", md2docx.ErrPrepareOutput),
			wantHint: "hint:",
		},
		{
			name: "no hint",
			err:  md2docx.ErrNoDocuments,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := withHint(tt.err)
			if !errors.Is(got, tt.err) {
				t.Errorf("withHint() should wrap the original error")
			}
			if tt.wantHint == "" {
				if got.Error() != tt.err.Error() {
					t.Errorf("withHint() = %q, want unchanged", got.Error())
				}
				return
			}
			if !strings.Contains(got.Error(), tt.wantHint) {
				t.Errorf("withHint() = %q, want to contain %q", got.Error(), tt.wantHint)
			}
		})
	}
}

func TestWithHint_ConversionOutput(t *testing.T) {
	t.Parallel()

	stderr := "[WARNING] Could not fetch resource 01-3.png\npandoc: merged.md: withBinaryFile: does not exist\n"

	tests := []struct {
		name     string
		err      error
		wantText []string
		wantSame bool
	}{
		{
			name: "multi-line stderr is shown in full",
			err: &md2docx.ToolError{
				Tool:   "pandoc",
				Stderr: stderr,
				Err:    fmt.Errorf("%w: exit status 1", md2docx.ErrConversion),
			},
			wantText: []string{
				"Could not fetch resource 01-3.png",
				"\n  pandoc output:",
				"\n    pandoc: merged.md: withBinaryFile: does not exist",
			},
		},
		{
			name: "single-line stderr is already in the message",
			err: &md2docx.ToolError{
				Tool:   "pandoc",
				Stderr: "pandoc: unknown option\n",
				Err:    fmt.Errorf("%w: exit status 2", md2docx.ErrConversion),
			},
			wantSame: true,
		},
		{
			name: "diagram tool output is left to the error log",
			err: &md2docx.ToolError{
				Tool:   "mmdc",
				Stderr: "line one\nline two",
				Err:    errors.New("exit status 1"),
			},
			wantSame: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := withHint(tt.err)
			if !errors.Is(got, tt.err) {
				t.Errorf("withHint() should wrap the original error")
			}
			if tt.wantSame {
				if got.Error() != tt.err.Error() {
					t.Errorf("withHint() = %q, want unchanged", got.Error())
				}
				return
			}
			for _, want := range tt.wantText {
				if !strings.Contains(got.Error(), want) {
					t.Errorf("withHint() = %q, want to contain %q", got.Error(), want)
				}
			}
		})
	}
}
