package hints

// Notes:
// - ForBrowserConnect tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer variable
// These are acceptable gaps: we test observable behavior through environment manipulation.

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestForMissingTool - Install hints
// ---------------------------------------------------------------------------

func TestForMissingTool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tool string
		want string
	}{
		{"mmdc", "mermaid-cli"},
		{"pandoc", "pandoc.org"},
		{"other", "other is installed"},
	}

	for _, tt := range tests {
		got := ForMissingTool(tt.tool)
		if !strings.HasPrefix(got, "\n  hint: ") {
			t.Errorf("ForMissingTool(%q) missing hint prefix: %q", tt.tool, got)
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("ForMissingTool(%q) = %q, want to contain %q", tt.tool, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestForBrowserConnect - Environment-aware hints
// ---------------------------------------------------------------------------

func TestForBrowserConnect_InCI(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	t.Setenv("CI", "true")
	t.Setenv("ROD_NO_SANDBOX", "")
	t.Setenv("ROD_BROWSER_BIN", "")

	hint := ForBrowserConnect()

	if !strings.Contains(hint, "ROD_NO_SANDBOX") {
		t.Error("expected ROD_NO_SANDBOX suggestion in CI")
	}
	if !strings.Contains(hint, "ROD_BROWSER_BIN") {
		t.Error("expected ROD_BROWSER_BIN suggestion")
	}
}

func TestForBrowserConnect_NothingToSuggest(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	t.Setenv("GITLAB_CI", "")
	t.Setenv("JENKINS_URL", "")
	t.Setenv("ROD_NO_SANDBOX", "1")
	t.Setenv("ROD_BROWSER_BIN", "/usr/bin/chromium")

	if hint := ForBrowserConnect(); hint != "" {
		t.Errorf("ForBrowserConnect() = %q, want empty", hint)
	}
}

// ---------------------------------------------------------------------------
// TestForTLS / TestForTimeout - Download hints
// ---------------------------------------------------------------------------

func TestForTLS(t *testing.T) {
	t.Parallel()

	if got := ForTLS(false); got != "" {
		t.Errorf("ForTLS(false) = %q, want empty", got)
	}
	if got := ForTLS(true); !strings.Contains(got, "--strict-tls") {
		t.Errorf("ForTLS(true) = %q, want mention of --strict-tls", got)
	}
}

func TestForTimeout(t *testing.T) {
	t.Parallel()

	if got := ForTimeout("convert-timeout"); !strings.Contains(got, "--convert-timeout") {
		t.Errorf("ForTimeout() = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestForConfigNotFound - Config search hints
// ---------------------------------------------------------------------------

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	got := ForConfigNotFound([]string{"book.yaml", "/home/u/.config/go-md2docx/book.yaml"})
	if !strings.Contains(got, "create /home/u/.config/go-md2docx/book.yaml") {
		t.Errorf("ForConfigNotFound() = %q", got)
	}

	got = ForConfigNotFound(nil)
	if !strings.Contains(got, "--config") || strings.Contains(got, "create") {
		t.Errorf("ForConfigNotFound(nil) = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestFixedHints - Static hints keep the common prefix
// ---------------------------------------------------------------------------

func TestFixedHints(t *testing.T) {
	t.Parallel()

	for _, h := range []string{ForOutputDirectory(), ForUnsafeOutput()} {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint %q missing prefix", h)
		}
	}
}
