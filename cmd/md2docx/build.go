package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage   = errors.New("invalid usage")
	ErrNoInput = errors.New("no source directory specified")
)

// runBuild resolves configuration and builds the book once.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one source directory, got %d arguments", ErrUsage, len(positional))
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	cfg, err := loadBuildConfig(configName)
	if err != nil {
		return err
	}

	// CLI flags > env vars > config file > defaults
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if len(positional) == 1 {
		cfg.Input.SourceDir = positional[0]
	}
	if cfg.Input.SourceDir == "" {
		return ErrNoInput
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	timeouts, err := cfg.Durations()
	if err != nil {
		return err
	}

	rep := newReporter(env, flags.common.quiet, flags.common.verbose, !cfg.Images.InsecureSkipVerify)
	rep.configuration(cfg, configName)

	opts := append(builderOptions(cfg, timeouts, rep), env.Options...)
	builder, err := md2docx.NewBuilder(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = builder.Close() }()

	res, err := builder.Build(ctx, md2docx.Input{
		SourceDir: cfg.Input.SourceDir,
		OutputDir: cfg.Output.Dir,
	})
	rep.summary(res, err)
	if err != nil {
		return withHint(err)
	}
	return nil
}

// loadBuildConfig returns the defaults, or the named config when one is given.
func loadBuildConfig(nameOrPath string) (*config.Config, error) {
	if nameOrPath == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(nameOrPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !strings.ContainsAny(nameOrPath, `/\`) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(nameOrPath)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// builderOptions translates the resolved configuration into Builder options.
func builderOptions(cfg *config.Config, t config.Timeouts, rep *reporter) []md2docx.Option {
	fetcher := md2docx.NewHTTPFetcher(md2docx.FetchOptions{
		UserAgent:          cfg.Images.UserAgent,
		Referer:            cfg.Images.Referer,
		Accept:             cfg.Images.Accept,
		AcceptLanguage:     cfg.Images.AcceptLanguage,
		InsecureSkipVerify: cfg.Images.InsecureSkipVerify,
		Timeout:            t.Fetch,
	})

	assembler := md2docx.NewPandocAssembler()
	if cfg.Pandoc.Binary != "" {
		assembler.Binary = cfg.Pandoc.Binary
	}
	if cfg.Pandoc.From != "" {
		assembler.From = cfg.Pandoc.From
	}
	if cfg.Pandoc.To != "" {
		assembler.To = cfg.Pandoc.To
	}
	assembler.TOC = cfg.Pandoc.TOC
	if cfg.Pandoc.TOCDepth != 0 {
		assembler.TOCDepth = cfg.Pandoc.TOCDepth
	}
	assembler.ReferenceDoc = cfg.Pandoc.ReferenceDoc
	assembler.Title = cfg.Pandoc.Title
	assembler.Timeout = t.Convert

	opts := []md2docx.Option{
		md2docx.WithRenderer(newRenderer(cfg, t)),
		md2docx.WithFetcher(fetcher),
		md2docx.WithAssembler(assembler),
		md2docx.WithProgress(rep.event),
		md2docx.WithPageBreak(cfg.PageBreak),
		md2docx.WithChapterPattern(cfg.Input.ChapterPattern),
		md2docx.WithExclude(cfg.Input.Exclude),
		md2docx.WithOutputName(cfg.Output.Name),
		md2docx.WithCleanOutput(cfg.Output.Clean),
	}
	if cfg.Output.HTML {
		opts = append(opts, md2docx.WithHTMLPreview(cfg.Pandoc.Title))
	}
	return opts
}

func newRenderer(cfg *config.Config, t config.Timeouts) md2docx.DiagramRenderer {
	if strings.EqualFold(cfg.Renderer.Kind, config.RendererBrowser) {
		r := md2docx.NewBrowserRenderer()
		if cfg.Renderer.MermaidURL != "" {
			r.MermaidURL = cfg.Renderer.MermaidURL
		}
		if cfg.Renderer.Background != "" {
			r.Background = cfg.Renderer.Background
		}
		r.Theme = cfg.Renderer.Theme
		r.Timeout = t.Render
		return r
	}

	r := md2docx.NewCLIRenderer()
	if cfg.Renderer.MMDC != "" {
		r.Binary = cfg.Renderer.MMDC
	}
	r.PuppeteerConfig = cfg.Renderer.PuppeteerConfig
	r.Background = cfg.Renderer.Background
	r.Theme = cfg.Renderer.Theme
	r.ExtraArgs = cfg.Renderer.MMDCArgs
	r.Timeout = t.Render
	return r
}

// withHint appends an actionable hint to fatal build errors, and the full
// converter output when pandoc fails.
func withHint(err error) error {
	var hint string
	var toolErr *md2docx.ToolError

	switch {
	case errors.Is(err, md2docx.ErrToolNotFound) && errors.As(err, &toolErr):
		hint = hints.ForMissingTool(toolErr.Tool)
	case errors.Is(err, md2docx.ErrConversion) && errors.Is(err, context.DeadlineExceeded):
		hint = hints.ForTimeout("convert-timeout")
	case errors.Is(err, md2docx.ErrUnsafeOutputDir):
		hint = hints.ForUnsafeOutput()
	case errors.Is(err, md2docx.ErrPrepareOutput):
		hint = hints.ForOutputDirectory()
	}

	var detail string
	if errors.Is(err, md2docx.ErrConversion) && errors.As(err, &toolErr) {
		detail = toolOutput(toolErr)
	}

	if detail == "" && hint == "" {
		return err
	}
	return fmt.Errorf("%w%s%s", err, detail, hint)
}

// toolOutput returns the full stderr of a failed tool run, indented under
// the error line. Single-line output is already part of the error message.
func toolOutput(toolErr *md2docx.ToolError) string {
	out := strings.TrimSpace(toolErr.Stderr)
	if !strings.Contains(out, "\n") {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s output:", toolErr.Tool)
	for _, line := range strings.Split(out, "\n") {
		b.WriteString("\n    " + strings.TrimRight(line, "\r"))
	}
	return b.String()
}
