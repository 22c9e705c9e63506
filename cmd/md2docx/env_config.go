package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-md2docx/internal/config"
)

// envConfig holds configuration from MD2DOCX_* environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string // MD2DOCX_CONFIG: config file name or path
	SourceDir      string // MD2DOCX_SOURCE_DIR
	OutputDir      string // MD2DOCX_OUTPUT_DIR
	OutputName     string // MD2DOCX_OUTPUT_NAME
	Renderer       string // MD2DOCX_RENDERER: mmdc or browser
	MMDC           string // MD2DOCX_MMDC: mmdc binary
	Pandoc         string // MD2DOCX_PANDOC: pandoc binary
	ReferenceDoc   string // MD2DOCX_REFERENCE_DOC
	Title          string // MD2DOCX_TITLE
	StrictTLS      *bool  // MD2DOCX_STRICT_TLS: true/false, 1/0
	RenderTimeout  string // MD2DOCX_RENDER_TIMEOUT
	FetchTimeout   string // MD2DOCX_FETCH_TIMEOUT
	ConvertTimeout string // MD2DOCX_CONVERT_TIMEOUT
}

// knownEnvVars lists valid MD2DOCX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2DOCX_CONFIG":          true,
	"MD2DOCX_SOURCE_DIR":      true,
	"MD2DOCX_OUTPUT_DIR":      true,
	"MD2DOCX_OUTPUT_NAME":     true,
	"MD2DOCX_RENDERER":        true,
	"MD2DOCX_MMDC":            true,
	"MD2DOCX_PANDOC":          true,
	"MD2DOCX_REFERENCE_DOC":   true,
	"MD2DOCX_TITLE":           true,
	"MD2DOCX_STRICT_TLS":      true,
	"MD2DOCX_RENDER_TIMEOUT":  true,
	"MD2DOCX_FETCH_TIMEOUT":   true,
	"MD2DOCX_CONVERT_TIMEOUT": true,
	"MD2DOCX_CONTAINER":       true, // doctor override
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable booleans are ignored; timeouts are validated with the config.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:     os.Getenv("MD2DOCX_CONFIG"),
		SourceDir:      os.Getenv("MD2DOCX_SOURCE_DIR"),
		OutputDir:      os.Getenv("MD2DOCX_OUTPUT_DIR"),
		OutputName:     os.Getenv("MD2DOCX_OUTPUT_NAME"),
		Renderer:       os.Getenv("MD2DOCX_RENDERER"),
		MMDC:           os.Getenv("MD2DOCX_MMDC"),
		Pandoc:         os.Getenv("MD2DOCX_PANDOC"),
		ReferenceDoc:   os.Getenv("MD2DOCX_REFERENCE_DOC"),
		Title:          os.Getenv("MD2DOCX_TITLE"),
		RenderTimeout:  os.Getenv("MD2DOCX_RENDER_TIMEOUT"),
		FetchTimeout:   os.Getenv("MD2DOCX_FETCH_TIMEOUT"),
		ConvertTimeout: os.Getenv("MD2DOCX_CONVERT_TIMEOUT"),
	}

	if v := os.Getenv("MD2DOCX_STRICT_TLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.StrictTLS = &b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2DOCX_* variables.
// Helps catch typos like MD2DOCX_OUTPUTDIR instead of MD2DOCX_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MD2DOCX_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config file values with the environment.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setIf := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	setIf(&cfg.Input.SourceDir, env.SourceDir)
	setIf(&cfg.Output.Dir, env.OutputDir)
	setIf(&cfg.Output.Name, env.OutputName)
	setIf(&cfg.Renderer.Kind, env.Renderer)
	setIf(&cfg.Renderer.MMDC, env.MMDC)
	setIf(&cfg.Pandoc.Binary, env.Pandoc)
	setIf(&cfg.Pandoc.ReferenceDoc, env.ReferenceDoc)
	setIf(&cfg.Pandoc.Title, env.Title)
	setIf(&cfg.Timeouts.Render, env.RenderTimeout)
	setIf(&cfg.Timeouts.Fetch, env.FetchTimeout)
	setIf(&cfg.Timeouts.Convert, env.ConvertTimeout)

	if env.StrictTLS != nil {
		cfg.Images.InsecureSkipVerify = !*env.StrictTLS
	}
}
