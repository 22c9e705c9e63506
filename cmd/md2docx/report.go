package main

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/hints"
)

// styles color status prefixes. Each writer gets its own renderer so
// redirected output stays plain.
type styles struct {
	ok    lipgloss.Style
	warn  lipgloss.Style
	fail  lipgloss.Style
	muted lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		ok:    r.NewStyle().Foreground(lipgloss.Color("#00AA00")).Bold(true),
		warn:  r.NewStyle().Foreground(lipgloss.Color("#FFAA00")).Bold(true),
		fail:  r.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true),
		muted: r.NewStyle().Foreground(lipgloss.Color("#888888")),
	}
}

func (s styles) printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", s.fail.Render("error:"), err)
}

// reporter prints build events and the final summary.
// Progress goes to stdout; warnings and failures go to stderr even with --quiet.
type reporter struct {
	out       io.Writer
	errw      io.Writer
	outStyle  styles
	errStyle  styles
	quiet     bool
	verbose   bool
	strictTLS bool
	hinted    map[string]bool
}

func newReporter(env *Environment, quiet, verbose, strictTLS bool) *reporter {
	return &reporter{
		out:       env.Stdout,
		errw:      env.Stderr,
		outStyle:  newStyles(env.Stdout),
		errStyle:  newStyles(env.Stderr),
		quiet:     quiet,
		verbose:   verbose && !quiet,
		strictTLS: strictTLS,
		hinted:    make(map[string]bool),
	}
}

// configuration prints the resolved settings in verbose mode.
func (r *reporter) configuration(cfg *config.Config, configName string) {
	if !r.verbose {
		return
	}
	if configName == "" {
		configName = "(defaults)"
	}
	fmt.Fprintf(r.out, "%s %s\n", r.outStyle.muted.Render("config:"), configName)
	fmt.Fprintf(r.out, "%s %s -> %s\n", r.outStyle.muted.Render("dirs:"), cfg.Input.SourceDir, filepath.Join(cfg.Output.Dir, cfg.Output.Name))
	fmt.Fprintf(r.out, "%s %s\n", r.outStyle.muted.Render("renderer:"), cfg.Renderer.Kind)
	fmt.Fprintf(r.out, "%s render %s, fetch %s, convert %s\n", r.outStyle.muted.Render("timeouts:"),
		cfg.Timeouts.Render, cfg.Timeouts.Fetch, cfg.Timeouts.Convert)
}

// event formats one progress event.
func (r *reporter) event(e md2docx.Event) {
	switch e.Kind {
	case md2docx.EventNotice:
		fmt.Fprintf(r.errw, "%s %s\n", r.errStyle.warn.Render("notice:"), e.Message)
	case md2docx.EventDocument:
		r.progress("Processing: %s", e.Path)
	case md2docx.EventReadFailed:
		fmt.Fprintf(r.errw, "%s could not read %s: %v\n", r.errStyle.fail.Render("error:"), e.Path, e.Err)
	case md2docx.EventDiagram:
		r.progress("  diagram -> %s", e.Image)
	case md2docx.EventDiagramFailed:
		fmt.Fprintf(r.errw, "  %s diagram %s: %v (logged)\n", r.errStyle.fail.Render("failed:"), e.Image, e.Err)
		r.hintFor(e.Err)
	case md2docx.EventImage:
		r.progress("  image %s -> %s", e.Target, e.Image)
	case md2docx.EventImageFailed:
		fmt.Fprintf(r.errw, "  %s image %s: %v (logged)\n", r.errStyle.fail.Render("failed:"), e.Target, e.Err)
		r.hintFor(e.Err)
	case md2docx.EventImageMissing:
		fmt.Fprintf(r.errw, "  %s local image not found: %s\n", r.errStyle.warn.Render("warning:"), e.Target)
	case md2docx.EventConverting:
		r.progress("Converting to %s", e.Target)
	case md2docx.EventWarning:
		if e.Err != nil {
			fmt.Fprintf(r.errw, "%s %s: %v\n", r.errStyle.warn.Render("warning:"), e.Message, e.Err)
		} else {
			fmt.Fprintf(r.errw, "%s %s\n", r.errStyle.warn.Render("warning:"), e.Message)
		}
	}
}

func (r *reporter) progress(format string, args ...any) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.out, format+"\n", args...)
}

// hintFor prints each kind of hint at most once per build.
func (r *reporter) hintFor(err error) {
	var hint, key string
	var toolErr *md2docx.ToolError
	var certErr *tls.CertificateVerificationError

	switch {
	case errors.Is(err, md2docx.ErrToolNotFound) && errors.As(err, &toolErr):
		key, hint = "tool:"+toolErr.Tool, hints.ForMissingTool(toolErr.Tool)
	case errors.Is(err, md2docx.ErrBrowserConnect):
		key, hint = "browser", hints.ForBrowserConnect()
	case errors.As(err, &certErr):
		key, hint = "tls", hints.ForTLS(r.strictTLS)
	}

	if hint == "" || r.hinted[key] {
		return
	}
	r.hinted[key] = true
	fmt.Fprintln(r.errw, hint[1:])
}

// summary prints the build outcome. res may be nil when the build failed early.
func (r *reporter) summary(res *md2docx.Result, err error) {
	if res == nil {
		return
	}

	if res.Failures > 0 {
		fmt.Fprintf(r.errw, "%s %d failure(s) logged to %s\n", r.errStyle.warn.Render("warning:"), res.Failures, res.ErrorLogPath)
	}
	if err != nil || r.quiet {
		return
	}

	fmt.Fprintf(r.out, "%s %s\n", r.outStyle.ok.Render("Created"), res.OutputPath)
	if res.PreviewPath != "" {
		fmt.Fprintf(r.out, "%s %s\n", r.outStyle.ok.Render("Preview"), res.PreviewPath)
	}

	if !r.verbose {
		fmt.Fprintf(r.out, "%d documents, %d chapters, %d diagrams, %d images\n",
			res.Documents, res.Chapters, res.Diagrams, res.Images)
		return
	}

	fmt.Fprintf(r.out, "  documents: %d (%d skipped)\n", res.Documents, res.Skipped)
	fmt.Fprintf(r.out, "  chapters:  %d (%d page breaks)\n", res.Chapters, res.PageBreaks)
	fmt.Fprintf(r.out, "  diagrams:  %d\n", res.Diagrams)
	fmt.Fprintf(r.out, "  images:    %d (%d missing)\n", res.Images, res.Missing)
	fmt.Fprintf(r.out, "  failures:  %d (%d diagrams, %d images)\n", res.Failures, res.DiagramFailures, res.ImageFailures)
	if d := res.Docx; d != nil {
		fmt.Fprintf(r.out, "  docx:      %s, %d paragraphs, %d headings (%d top-level), %d images\n",
			formatBytes(d.Bytes), d.Paragraphs, d.Headings, d.TopLevelHeadings, d.Images)
	}
	fmt.Fprintf(r.out, "  duration:  %v\n", res.Duration.Round(time.Millisecond))
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
