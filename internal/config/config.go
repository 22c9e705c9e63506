package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/pipeline"
	"github.com/alnah/go-md2docx/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits.
const (
	MaxTitleLength     = 200
	MaxHeaderLength    = 512  // User-Agent, Accept, Accept-Language
	MaxURLLength       = 2048 // Browser limit
	MaxPageBreakLength = 1024
)

// Renderer kinds.
const (
	RendererMMDC    = "mmdc"
	RendererBrowser = "browser"
)

// Config holds all configuration for a book build.
type Config struct {
	Input     InputConfig    `yaml:"input"`
	Output    OutputConfig   `yaml:"output"`
	Renderer  RendererConfig `yaml:"renderer"`
	Images    ImagesConfig   `yaml:"images"`
	Pandoc    PandocConfig   `yaml:"pandoc"`
	Timeouts  TimeoutsConfig `yaml:"timeouts"`
	PageBreak string         `yaml:"pageBreak"` // Marker between chapters (empty = default div)
}

// InputConfig defines where documents are discovered.
type InputConfig struct {
	SourceDir      string   `yaml:"sourceDir"`
	Exclude        []string `yaml:"exclude"`        // Base-name globs, case-insensitive
	ChapterPattern string   `yaml:"chapterPattern"` // First capture group is the chapter id
}

// OutputConfig defines the output directory and artifacts.
type OutputConfig struct {
	Dir   string `yaml:"dir"`
	Name  string `yaml:"name"`  // Book file name inside Dir
	Clean bool   `yaml:"clean"` // Remove Dir before the build (default: true)
	HTML  bool   `yaml:"html"`  // Also write preview.html
}

// RendererConfig selects and tunes the diagram renderer.
type RendererConfig struct {
	Kind            string   `yaml:"kind"` // "mmdc" or "browser"
	MMDC            string   `yaml:"mmdc"` // mmdc binary (name or path)
	PuppeteerConfig string   `yaml:"puppeteerConfig"`
	MermaidURL      string   `yaml:"mermaidURL"` // browser only
	Background      string   `yaml:"background"`
	Theme           string   `yaml:"theme"`
	MMDCArgs        []string `yaml:"mmdcArgs"` // appended to every mmdc run, e.g. ["-s", "2"]
}

// ImagesConfig defines remote image download options.
type ImagesConfig struct {
	UserAgent          string `yaml:"userAgent"`
	Referer            string `yaml:"referer"`
	Accept             string `yaml:"accept"`
	AcceptLanguage     string `yaml:"acceptLanguage"`
	InsecureSkipVerify bool   `yaml:"insecureSkipVerify"` // default: true
}

// PandocConfig defines the final conversion.
type PandocConfig struct {
	Binary       string `yaml:"binary"`
	From         string `yaml:"from"`
	To           string `yaml:"to"`
	TOC          bool   `yaml:"toc"`
	TOCDepth     int    `yaml:"tocDepth"` // 1-6
	ReferenceDoc string `yaml:"referenceDoc"`
	Title        string `yaml:"title"`
}

// TimeoutsConfig holds per-call timeouts as duration strings ("2m", "30s").
// "0" disables a timeout.
type TimeoutsConfig struct {
	Render  string `yaml:"render"`
	Fetch   string `yaml:"fetch"`
	Convert string `yaml:"convert"`
}

// Timeouts are the parsed TimeoutsConfig values.
type Timeouts struct {
	Render  time.Duration
	Fetch   time.Duration
	Convert time.Duration
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			SourceDir:      "docs",
			Exclude:        append([]string(nil), pipeline.DefaultExclude...),
			ChapterPattern: pipeline.DefaultChapterPattern,
		},
		Output: OutputConfig{
			Dir:   "output",
			Name:  "output.docx",
			Clean: true,
		},
		Renderer: RendererConfig{
			Kind: RendererMMDC,
			MMDC: "mmdc",
		},
		Images: ImagesConfig{InsecureSkipVerify: true},
		Pandoc: PandocConfig{
			Binary:   "pandoc",
			From:     "markdown",
			To:       "docx",
			TOC:      true,
			TOCDepth: 1,
		},
		Timeouts: TimeoutsConfig{
			Render:  "2m",
			Fetch:   "30s",
			Convert: "5m",
		},
	}
}

// Validate checks enumerations, patterns, limits and durations.
// Called automatically by LoadConfig, but available for configs built in code.
func (c *Config) Validate() error {
	if _, err := pipeline.CompileChapterPattern(c.Input.ChapterPattern); err != nil {
		return fmt.Errorf("%w: input.chapterPattern: %v", ErrInvalidConfig, err)
	}
	if err := pipeline.ValidateExclude(c.Input.Exclude); err != nil {
		return fmt.Errorf("%w: input.exclude: %v", ErrInvalidConfig, err)
	}

	if c.Output.Name != "" {
		if err := fileutil.ValidateFileName(c.Output.Name); err != nil {
			return fmt.Errorf("%w: output.name: %v", ErrInvalidConfig, err)
		}
	}

	switch strings.ToLower(c.Renderer.Kind) {
	case "", RendererMMDC, RendererBrowser:
		// valid
	default:
		return fmt.Errorf("%w: renderer.kind: invalid value %q (must be mmdc or browser)", ErrInvalidConfig, c.Renderer.Kind)
	}
	if err := validateFieldLength("renderer.mermaidURL", c.Renderer.MermaidURL, MaxURLLength); err != nil {
		return err
	}

	if err := validateFieldLength("images.userAgent", c.Images.UserAgent, MaxHeaderLength); err != nil {
		return err
	}
	if err := validateFieldLength("images.referer", c.Images.Referer, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("images.accept", c.Images.Accept, MaxHeaderLength); err != nil {
		return err
	}
	if err := validateFieldLength("images.acceptLanguage", c.Images.AcceptLanguage, MaxHeaderLength); err != nil {
		return err
	}

	if c.Pandoc.TOC && c.Pandoc.TOCDepth != 0 {
		if c.Pandoc.TOCDepth < 1 || c.Pandoc.TOCDepth > 6 {
			return fmt.Errorf("%w: pandoc.tocDepth: must be between 1 and 6, got %d", ErrInvalidConfig, c.Pandoc.TOCDepth)
		}
	}
	if err := validateFieldLength("pandoc.title", c.Pandoc.Title, MaxTitleLength); err != nil {
		return err
	}

	if err := validateFieldLength("pageBreak", c.PageBreak, MaxPageBreakLength); err != nil {
		return err
	}

	if _, err := c.Durations(); err != nil {
		return err
	}
	return nil
}

// Durations parses the timeouts. Empty values mean zero (disabled).
func (c *Config) Durations() (Timeouts, error) {
	var t Timeouts
	fields := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"timeouts.render", c.Timeouts.Render, &t.Render},
		{"timeouts.fetch", c.Timeouts.Fetch, &t.Fetch},
		{"timeouts.convert", c.Timeouts.Convert, &t.Convert},
	}
	for _, f := range fields {
		d, err := ParseDuration(f.value)
		if err != nil {
			return Timeouts{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, f.name, err)
		}
		*f.dst = d
	}
	return t, nil
}

// ParseDuration parses a timeout value. "" and "0" are zero; negative
// durations are rejected.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in SearchPaths.
// Keys absent from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists where a config named name is looked up, in order:
// the current directory, then ~/.config/go-md2docx/, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-md2docx", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file of SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
