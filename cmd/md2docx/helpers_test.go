package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fumiama/go-docx"

	md2docx "github.com/alnah/go-md2docx"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fakes for external tools
// ---------------------------------------------------------------------------

// copyRenderer "renders" a diagram by copying its source to the PNG path.
type copyRenderer struct {
	err error
}

func (r *copyRenderer) Name() string { return "mmdc" }

func (r *copyRenderer) Render(_ context.Context, src, dst string) error {
	if r.err != nil {
		return r.err
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

// docxAssembler writes a small real Word document instead of running pandoc.
type docxAssembler struct {
	err error
}

func (a *docxAssembler) Assemble(_ context.Context, _, output, _ string) error {
	if a.err != nil {
		return a.err
	}
	w := docx.New().WithDefaultTheme()
	w.AddParagraph().Style("Heading1").AddText("Book")
	w.AddParagraph().AddText("body")
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if _, err := w.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// fakeRunner answers version checks.
type fakeRunner struct {
	stdout string
	err    error
	calls  []string
}

func (r *fakeRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	r.calls = append(r.calls, name)
	return r.stdout, "", r.err
}

// testEnv returns an Environment with captured output and fake tools.
func testEnv(opts ...md2docx.Option) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:        func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout:     &stdout,
		Stderr:     &stderr,
		Runner:     &fakeRunner{stdout: "tool 1.0\nextra"},
		LookPath:   func(name string) (string, error) { return "/usr/bin/" + name, nil },
		FindChrome: func() (string, bool) { return "", false },
		Options:    opts,
	}
	return env, &stdout, &stderr
}

// bookTree writes a two-chapter book and returns its source and output dirs.
func bookTree(t *testing.T) (src, out string) {
	t.Helper()
	root := t.TempDir()
	src = filepath.Join(root, "docs")
	out = filepath.Join(root, "output")

	files := map[string]string{
		"chapter01/01-intro.md": "# Intro\n\n```mermaid\ngraph TD\n  A-->B\n```\n",
		"chapter02/01-next.md":  "# Next\n\nText.\n",
		"chapter02/README.md":   "skipped\n",
	}
	for rel, content := range files {
		path := filepath.Join(src, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return src, out
}

var errFakeAssemble = errors.New("fake assemble failure")

// withFakeTools swaps mmdc and pandoc for in-process fakes.
func withFakeTools(t *testing.T) []md2docx.Option {
	t.Helper()
	return []md2docx.Option{
		md2docx.WithRenderer(&copyRenderer{}),
		md2docx.WithAssembler(&docxAssembler{}),
		md2docx.WithWorkDir(t.TempDir()),
	}
}
