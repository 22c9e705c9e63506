package md2docx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alnah/go-md2docx/internal/fileutil"
)

var errNoOutput = errors.New("no output file was produced")

// CLIRenderer renders diagrams with mermaid-cli: mmdc -i <src> -o <dst>.
type CLIRenderer struct {
	Runner          CommandRunner
	Binary          string
	PuppeteerConfig string // passed as -p
	Background      string // passed as -b
	Theme           string // passed as -t
	ExtraArgs       []string
	Timeout         time.Duration // per diagram; zero disables
}

// NewCLIRenderer creates a CLIRenderer running mmdc from PATH.
func NewCLIRenderer() *CLIRenderer {
	return &CLIRenderer{
		Runner:  &ExecRunner{},
		Binary:  "mmdc",
		Timeout: DefaultRenderTimeout,
	}
}

// Name identifies the renderer in the error log.
func (r *CLIRenderer) Name() string { return "mmdc" }

// Args returns the mmdc arguments for one diagram.
func (r *CLIRenderer) Args(src, dst string) []string {
	args := []string{"-i", src, "-o", dst}
	if r.PuppeteerConfig != "" {
		args = append(args, "-p", r.PuppeteerConfig)
	}
	if r.Background != "" {
		args = append(args, "-b", r.Background)
	}
	if r.Theme != "" {
		args = append(args, "-t", r.Theme)
	}
	return append(args, r.ExtraArgs...)
}

// Render runs mmdc on src and checks that dst was written.
func (r *CLIRenderer) Render(ctx context.Context, src, dst string) error {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	binary := r.Binary
	if binary == "" {
		binary = "mmdc"
	}
	_, stderr, err := r.Runner.Run(ctx, binary, r.Args(src, dst)...)
	if err != nil {
		return &ToolError{Tool: r.Name(), Stderr: stderr, Err: fmt.Errorf("%w: %w", ErrRender, err)}
	}
	if !fileutil.FileExists(dst) {
		return &ToolError{Tool: r.Name(), Stderr: stderr, Err: fmt.Errorf("%w: %w", ErrRender, errNoOutput)}
	}
	return nil
}
