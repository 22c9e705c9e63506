package md2docx

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Assembler converts the merged Markdown book into the final document.
type Assembler interface {
	Assemble(ctx context.Context, merged, output, resourceDir string) error
}

// PandocAssembler produces the book with the pandoc CLI.
type PandocAssembler struct {
	Runner       CommandRunner
	Binary       string
	From         string
	To           string
	TOC          bool
	TOCDepth     int
	ReferenceDoc string // optional --reference-doc styling template
	Title        string // optional --metadata title=
	Timeout      time.Duration
}

// NewPandocAssembler creates a PandocAssembler with a one-level table of contents.
func NewPandocAssembler() *PandocAssembler {
	return &PandocAssembler{
		Runner:   &ExecRunner{},
		Binary:   "pandoc",
		From:     "markdown",
		To:       "docx",
		TOC:      true,
		TOCDepth: 1,
		Timeout:  DefaultConvertTimeout,
	}
}

// Args returns the pandoc arguments for one conversion.
func (p *PandocAssembler) Args(merged, output, resourceDir string) []string {
	args := []string{merged, "-o", output, "--from", p.From, "--to", p.To}
	if p.TOC {
		depth := p.TOCDepth
		if depth <= 0 {
			depth = 1
		}
		args = append(args, "--toc", "--toc-depth", strconv.Itoa(depth))
	}
	args = append(args, "--resource-path", resourceDir)
	if p.ReferenceDoc != "" {
		args = append(args, "--reference-doc", p.ReferenceDoc)
	}
	if p.Title != "" {
		args = append(args, "--metadata", "title="+p.Title)
	}
	return args
}

// Assemble runs pandoc once. A failure carries pandoc's stderr and wraps ErrConversion.
func (p *PandocAssembler) Assemble(ctx context.Context, merged, output, resourceDir string) error {
	ctx, cancel := withTimeout(ctx, p.Timeout)
	defer cancel()

	binary := p.Binary
	if binary == "" {
		binary = "pandoc"
	}
	_, stderr, err := p.Runner.Run(ctx, binary, p.Args(merged, output, resourceDir)...)
	if err != nil {
		return &ToolError{Tool: "pandoc", Stderr: stderr, Err: fmt.Errorf("%w: %w", ErrConversion, err)}
	}
	return nil
}
