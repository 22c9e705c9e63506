package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-md2docx/internal/fileutil"
)

// DiagramFailedText replaces a Mermaid block that could not be rendered.
const DiagramFailedText = "[Mermaid diagram could not be rendered - see " + ErrorLogName + "]"

var (
	mermaidBlock = regexp.MustCompile("(?s)```mermaid(.*?)```")
	imageLink    = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
)

// DiagramRenderer turns a Mermaid source file into a PNG file.
type DiagramRenderer interface {
	Name() string
	Render(ctx context.Context, src, dst string) error
}

// ImageFetcher downloads a remote image to dst.
type ImageFetcher interface {
	Fetch(ctx context.Context, url, dst string) error
}

// diagnoser is implemented by errors carrying the external tool's own output.
type diagnoser interface {
	Diagnostic() string
}

// Stats counts transformer outcomes over a whole build.
type Stats struct {
	Diagrams        int
	DiagramFailures int
	Images          int
	ImageFailures   int
	Missing         int
}

// Transformer rewrites one document at a time: Mermaid blocks and image
// links become numbered PNG artifacts in OutputDir, referenced from the
// text by placeholder tokens.
type Transformer struct {
	Renderer  DiagramRenderer
	Fetcher   ImageFetcher
	Log       *ErrorLog
	OutputDir string
	WorkDir   string // diagram sources are staged here; empty means os.TempDir()
	Notify    Notifier
	Stats     Stats
}

// Transform runs the diagram pass then the image pass on text.
// Per-unit failures are logged and do not stop the document; only a
// cancelled ctx returns an error.
func (t *Transformer) Transform(ctx context.Context, doc Document, text string, chapter *ChapterContext) (string, error) {
	text, err := t.RenderDiagrams(ctx, doc, text, chapter)
	if err != nil {
		return "", err
	}
	return t.ResolveImages(ctx, doc, text, chapter)
}

// RenderDiagrams replaces each Mermaid block with its placeholder, or with
// DiagramFailedText when rendering fails.
func (t *Transformer) RenderDiagrams(ctx context.Context, doc Document, text string, chapter *ChapterContext) (string, error) {
	matches := mermaidBlock.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		b.WriteString(text[last:m[0]])
		last = m[1]

		source := text[m[2]:m[3]]
		name := chapter.ImageName()
		t.Notify.Emit(Event{Kind: EventDiagram, Path: doc.Path, Image: name})

		if err := t.renderDiagram(ctx, chapter, source, filepath.Join(t.OutputDir, name)); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			t.Stats.DiagramFailures++
			if logErr := t.Log.RecordDiagram(doc.Path, source, t.Renderer.Name(), diagnostic(err)); logErr != nil {
				t.Notify.Emit(Event{Kind: EventWarning, Path: doc.Path, Message: "could not write error log", Err: logErr})
			}
			t.Notify.Emit(Event{Kind: EventDiagramFailed, Path: doc.Path, Image: name, Err: err})
			b.WriteString(DiagramFailedText)
			continue
		}

		b.WriteString(Placeholder(name))
		chapter.Advance()
		t.Stats.Diagrams++
	}
	b.WriteString(text[last:])
	return b.String(), nil
}

func (t *Transformer) renderDiagram(ctx context.Context, chapter *ChapterContext, source, dst string) error {
	dir := t.WorkDir
	if dir == "" {
		dir = os.TempDir()
	}
	src := filepath.Join(dir, fmt.Sprintf("md2docx-mermaid-%s-%d.mmd", chapter.ID(), chapter.Counter()))
	if err := os.WriteFile(src, []byte(source), 0o600); err != nil {
		return fmt.Errorf("staging diagram source: %w", err)
	}
	defer func() { _ = os.Remove(src) }()

	return t.Renderer.Render(ctx, src, dst)
}

// ResolveImages replaces each image link whose target could be copied or
// downloaded with its placeholder. Links that fail stay as written.
//
// Matches are replaced by offset so a link left untouched by an earlier
// failure is never rewritten by a later duplicate.
func (t *Transformer) ResolveImages(ctx context.Context, doc Document, text string, chapter *ChapterContext) (string, error) {
	matches := imageLink.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		b.WriteString(text[last:m[0]])
		last = m[1]

		link := text[m[0]:m[1]]
		target := text[m[4]:m[5]]
		name := chapter.ImageName()
		dst := filepath.Join(t.OutputDir, name)
		t.Notify.Emit(Event{Kind: EventImage, Path: doc.Path, Target: target, Image: name})

		err := t.resolveImage(ctx, doc, target, dst)
		switch {
		case err == nil:
			b.WriteString(Placeholder(name))
			chapter.Advance()
			t.Stats.Images++
		case errors.Is(err, errImageMissing):
			t.Stats.Missing++
			t.Notify.Emit(Event{Kind: EventImageMissing, Path: doc.Path, Target: localImagePath(doc, target)})
			b.WriteString(link)
		default:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			_ = os.Remove(dst)
			t.Stats.ImageFailures++
			if logErr := t.Log.RecordImage(doc.Path, target, err); logErr != nil {
				t.Notify.Emit(Event{Kind: EventWarning, Path: doc.Path, Message: "could not write error log", Err: logErr})
			}
			t.Notify.Emit(Event{Kind: EventImageFailed, Path: doc.Path, Target: target, Err: err})
			b.WriteString(link)
		}
	}
	b.WriteString(text[last:])
	return b.String(), nil
}

var errImageMissing = errors.New("local image not found")

func (t *Transformer) resolveImage(ctx context.Context, doc Document, target, dst string) error {
	if fileutil.IsURL(target) {
		return t.Fetcher.Fetch(ctx, target, dst)
	}
	src := localImagePath(doc, target)
	if !fileutil.FileExists(src) {
		return errImageMissing
	}
	return fileutil.CopyFile(src, dst)
}

func localImagePath(doc Document, target string) string {
	if filepath.IsAbs(target) {
		return target
	}
	return filepath.Join(doc.Dir, filepath.FromSlash(target))
}

func diagnostic(err error) string {
	var d diagnoser
	if errors.As(err, &d) {
		if msg := d.Diagnostic(); msg != "" {
			return msg
		}
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Unknown error"
}
