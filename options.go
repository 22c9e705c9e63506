package md2docx

// Option configures a Builder.
type Option func(*Builder)

// WithRenderer sets the diagram renderer. Default: mmdc on PATH.
func WithRenderer(r DiagramRenderer) Option {
	return func(b *Builder) {
		b.renderer = r
	}
}

// WithFetcher sets the remote image fetcher. Default: NewHTTPFetcher with
// certificate validation disabled.
func WithFetcher(f ImageFetcher) Option {
	return func(b *Builder) {
		b.fetcher = f
	}
}

// WithAssembler sets the final document converter. Default: pandoc on PATH.
func WithAssembler(a Assembler) Option {
	return func(b *Builder) {
		b.assembler = a
	}
}

// WithProgress registers a callback receiving build events.
// The callback runs on the build goroutine.
func WithProgress(fn func(Event)) Option {
	return func(b *Builder) {
		b.progress = fn
	}
}

// WithPageBreak sets the marker written between chapters.
func WithPageBreak(marker string) Option {
	return func(b *Builder) {
		b.pageBreak = marker
	}
}

// WithChapterPattern sets the regular expression extracting the chapter id
// from a document path. The first capture group is the id.
func WithChapterPattern(expr string) Option {
	return func(b *Builder) {
		b.chapterExpr = expr
	}
}

// WithExclude sets the base-name globs of documents to skip.
func WithExclude(patterns []string) Option {
	return func(b *Builder) {
		b.exclude = patterns
	}
}

// WithOutputName sets the file name of the book inside the output directory.
func WithOutputName(name string) Option {
	return func(b *Builder) {
		b.outputName = name
	}
}

// WithCleanOutput controls whether the output directory is removed before the build.
func WithCleanOutput(clean bool) Option {
	return func(b *Builder) {
		b.clean = clean
	}
}

// WithHTMLPreview writes preview.html next to the book, titled title.
func WithHTMLPreview(title string) Option {
	return func(b *Builder) {
		b.preview = true
		b.previewTitle = title
	}
}

// WithWorkDir sets where diagram sources are staged for the renderer.
func WithWorkDir(dir string) Option {
	return func(b *Builder) {
		b.workDir = dir
	}
}
