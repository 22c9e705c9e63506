package md2docx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ DiagramRenderer = (*CLIRenderer)(nil)
	_ DiagramRenderer = (*BrowserRenderer)(nil)
	_ ImageFetcher    = (*HTTPFetcher)(nil)
	_ Assembler       = (*PandocAssembler)(nil)
	_ CommandRunner   = (*ExecRunner)(nil)
)

// Builder turns a chapter tree into a Word document.
// Create with NewBuilder, call Build, and Close when done.
// A Builder runs one build at a time.
type Builder struct {
	renderer  DiagramRenderer
	fetcher   ImageFetcher
	assembler Assembler
	progress  pipeline.Notifier

	pageBreak      string
	chapterExpr    string
	chapterPattern *regexp.Regexp
	exclude        []string
	outputName     string
	clean          bool
	preview        bool
	previewTitle   string
	workDir        string
}

// NewBuilder creates a Builder with mmdc, an HTTP fetcher and pandoc unless
// options replace them.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		pageBreak:  DefaultPageBreak,
		outputName: DefaultOutputName,
		clean:      true,
	}
	for _, opt := range opts {
		opt(b)
	}

	pattern, err := pipeline.CompileChapterPattern(b.chapterExpr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOption, err)
	}
	b.chapterPattern = pattern

	if err := pipeline.ValidateExclude(b.exclude); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOption, err)
	}
	if err := fileutil.ValidateFileName(b.outputName); err != nil {
		return nil, fmt.Errorf("%w: output name: %v", ErrInvalidOption, err)
	}
	if b.pageBreak == "" {
		b.pageBreak = DefaultPageBreak
	}

	if b.renderer == nil {
		b.renderer = NewCLIRenderer()
	}
	if b.fetcher == nil {
		b.fetcher = NewHTTPFetcher(FetchOptions{InsecureSkipVerify: true, Timeout: DefaultFetchTimeout})
	}
	if b.assembler == nil {
		b.assembler = NewPandocAssembler()
	}
	return b, nil
}

// Build runs every stage once. Per-diagram and per-image failures are
// logged and counted in the Result; the returned error is reserved for
// fatal conditions. When the converter fails, the partial Result is
// returned along with the error.
func (b *Builder) Build(ctx context.Context, input Input) (*Result, error) {
	start := time.Now()

	if input.SourceDir == "" {
		return nil, ErrEmptySourceDir
	}
	if input.OutputDir == "" {
		return nil, ErrEmptyOutputDir
	}
	out := input.OutputDir

	if err := PrepareOutputDir(out, input.SourceDir, b.clean); err != nil {
		return nil, err
	}
	errLog := pipeline.NewErrorLog(filepath.Join(out, pipeline.ErrorLogName))
	if err := errLog.Remove(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrepareOutput, err)
	}

	docs, err := pipeline.Scan(input.SourceDir, pipeline.ScanOptions{
		Exclude:        b.exclude,
		ChapterPattern: b.chapterPattern,
	})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDocuments, input.SourceDir)
	}

	if f, ok := b.fetcher.(*HTTPFetcher); ok && f.Insecure() {
		b.progress.Emit(Event{Kind: EventNotice, Message: "certificate validation is disabled for image downloads"})
	}

	res := &Result{
		OutputPath:   filepath.Join(out, b.outputName),
		ErrorLogPath: errLog.Path(),
	}

	mergedPath := filepath.Join(out, MergedName)
	merged, err := os.Create(mergedPath) // #nosec G304 -- inside the prepared output dir
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMergedFile, err)
	}
	defer func() { _ = os.Remove(mergedPath) }()

	tr := &pipeline.Transformer{
		Renderer:  b.renderer,
		Fetcher:   b.fetcher,
		Log:       errLog,
		OutputDir: out,
		WorkDir:   b.workDir,
		Notify:    b.progress,
	}
	err = b.mergeDocuments(ctx, docs, tr, merged, res)
	if closeErr := merged.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("%w: %v", ErrMergedFile, closeErr)
	}
	if err != nil {
		res.Duration = time.Since(start)
		return res, err
	}

	if b.preview {
		b.writePreview(ctx, mergedPath, res)
	}

	b.progress.Emit(Event{Kind: EventConverting, Target: res.OutputPath})
	if err := b.assembler.Assemble(ctx, mergedPath, res.OutputPath, out); err != nil {
		res.Duration = time.Since(start)
		return res, err
	}

	stats, err := InspectDocx(res.OutputPath)
	if err != nil {
		b.progress.Emit(Event{Kind: EventWarning, Target: res.OutputPath, Message: "could not read back the output document", Err: err})
	} else {
		res.Docx = stats
	}

	res.Duration = time.Since(start)
	return res, nil
}

// mergeDocuments transforms each document and appends it to w.
func (b *Builder) mergeDocuments(ctx context.Context, docs []pipeline.Document, tr *pipeline.Transformer, w io.Writer, res *Result) error {
	merger := pipeline.NewMerger(w, b.pageBreak)
	var chapter pipeline.ChapterContext

	defer func() {
		res.Documents = merger.Documents()
		res.Chapters = chapter.Chapters()
		res.PageBreaks = merger.Breaks()
		res.Diagrams = tr.Stats.Diagrams
		res.Images = tr.Stats.Images
		res.Failures = tr.Log.Entries()
		res.DiagramFailures = tr.Stats.DiagramFailures
		res.ImageFailures = tr.Stats.ImageFailures
		res.Missing = tr.Stats.Missing
	}()

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Chapter bookkeeping follows the path, even if the read fails.
		chapter.Enter(doc.ChapterID)
		b.progress.Emit(Event{Kind: EventDocument, Path: doc.Path})

		text, err := pipeline.ReadDocument(doc.Path)
		if err != nil {
			res.Skipped++
			b.progress.Emit(Event{Kind: EventReadFailed, Path: doc.Path, Err: err})
			continue
		}

		text, err = tr.Transform(ctx, doc, text, &chapter)
		if err != nil {
			return err
		}
		if err := merger.Append(doc.ChapterID, text); err != nil {
			return fmt.Errorf("%w: %v", ErrMergedFile, err)
		}
	}
	return nil
}

// writePreview renders the merged book to HTML. Failures are warnings.
func (b *Builder) writePreview(ctx context.Context, mergedPath string, res *Result) {
	warn := func(err error) {
		b.progress.Emit(Event{Kind: EventWarning, Message: "could not write HTML preview", Err: err})
	}

	data, err := os.ReadFile(mergedPath) // #nosec G304 -- file written by this build
	if err != nil {
		warn(err)
		return
	}
	page, err := pipeline.RenderPreview(ctx, string(data), b.pageBreak, b.previewTitle)
	if err != nil {
		warn(err)
		return
	}
	path := filepath.Join(filepath.Dir(mergedPath), pipeline.PreviewName)
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil { // #nosec G306 -- preview is meant to be shared
		warn(err)
		return
	}
	res.PreviewPath = path
}

// Close releases resources held by the renderer (headless Chrome for the
// browser renderer).
func (b *Builder) Close() error {
	var errs []error
	for _, c := range []any{b.renderer, b.fetcher, b.assembler} {
		if closer, ok := c.(io.Closer); ok {
			errs = append(errs, closer.Close())
		}
	}
	return errors.Join(errs...)
}
