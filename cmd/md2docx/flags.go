package main

import (
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2docx/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// rendererFlags selects the diagram renderer.
type rendererFlags struct {
	kind string
	mmdc string
}

// pandocFlags tunes the final conversion.
type pandocFlags struct {
	binary       string
	noTOC        bool
	tocDepth     int
	referenceDoc string
	title        string
}

// timeoutFlags holds per-call timeouts as duration strings.
type timeoutFlags struct {
	render  string
	fetch   string
	convert string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common    commonFlags
	output    string
	name      string
	noClean   bool
	strictTLS bool
	html      bool
	renderer  rendererFlags
	pandoc    pandocFlags
	timeouts  timeoutFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors and warnings")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show configuration and build details")
}

func addRendererFlags(fs *flag.FlagSet, f *rendererFlags) {
	fs.StringVar(&f.kind, "renderer", "", "diagram renderer: mmdc, browser")
	fs.StringVar(&f.mmdc, "mmdc", "", "mmdc binary name or path")
}

func addPandocFlags(fs *flag.FlagSet, f *pandocFlags) {
	fs.StringVar(&f.binary, "pandoc", "", "pandoc binary name or path")
	fs.BoolVar(&f.noTOC, "no-toc", false, "disable the table of contents")
	fs.IntVar(&f.tocDepth, "toc-depth", 0, "table of contents depth (1-6)")
	fs.StringVar(&f.referenceDoc, "reference-doc", "", "Word document whose styles are reused")
	fs.StringVar(&f.title, "title", "", "document title metadata")
}

func addTimeoutFlags(fs *flag.FlagSet, f *timeoutFlags) {
	fs.StringVar(&f.render, "render-timeout", "", "per-diagram timeout (e.g. 2m, 0 = none)")
	fs.StringVar(&f.fetch, "fetch-timeout", "", "per-image download timeout (e.g. 30s, 0 = none)")
	fs.StringVar(&f.convert, "convert-timeout", "", "pandoc timeout (e.g. 5m, 0 = none)")
}

// newBuildFlagSet registers every build flag into f. Shared by parsing
// and shell completion.
func newBuildFlagSet(f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVar(&f.name, "name", "", "book file name inside the output directory")
	fs.BoolVar(&f.noClean, "no-clean", false, "keep existing files in the output directory")
	fs.BoolVar(&f.strictTLS, "strict-tls", false, "verify certificates when downloading images")
	fs.BoolVar(&f.html, "html", false, "also write preview.html")

	addCommonFlags(fs, &f.common)
	addRendererFlags(fs, &f.renderer)
	addPandocFlags(fs, &f.pandoc)
	addTimeoutFlags(fs, &f.timeouts)

	return fs
}

// parseBuildFlags parses build command flags and returns positional args.
// Usage and parse errors go to stderr.
func parseBuildFlags(args []string, stderr io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newBuildFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printBuildUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// mergeFlags applies explicitly set flags on top of cfg (CLI wins).
func mergeFlags(f *buildFlags, cfg *config.Config) {
	setIf := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	setIf(&cfg.Output.Dir, f.output)
	setIf(&cfg.Output.Name, f.name)
	if f.noClean {
		cfg.Output.Clean = false
	}
	if f.strictTLS {
		cfg.Images.InsecureSkipVerify = false
	}
	if f.html {
		cfg.Output.HTML = true
	}

	setIf(&cfg.Renderer.Kind, f.renderer.kind)
	setIf(&cfg.Renderer.MMDC, f.renderer.mmdc)

	setIf(&cfg.Pandoc.Binary, f.pandoc.binary)
	if f.pandoc.noTOC {
		cfg.Pandoc.TOC = false
	}
	if f.pandoc.tocDepth != 0 {
		cfg.Pandoc.TOCDepth = f.pandoc.tocDepth
	}
	setIf(&cfg.Pandoc.ReferenceDoc, f.pandoc.referenceDoc)
	setIf(&cfg.Pandoc.Title, f.pandoc.title)

	setIf(&cfg.Timeouts.Render, f.timeouts.render)
	setIf(&cfg.Timeouts.Fetch, f.timeouts.fetch)
	setIf(&cfg.Timeouts.Convert, f.timeouts.convert)
}
