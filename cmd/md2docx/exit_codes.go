package main

import (
	"errors"
	"os"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/pipeline"
)

// Exit codes for the md2docx CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Book produced (logged per-unit failures included)
	ExitGeneral = 1 // General/unexpected error, including cancellation
	ExitUsage   = 2 // Invalid flags, config, or options
	ExitIO      = 3 // Source or output directory problems
	ExitTool    = 4 // mmdc, pandoc or Chrome failed or is missing
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// External tool errors (exit 4)
	if errors.Is(err, md2docx.ErrToolNotFound) ||
		errors.Is(err, md2docx.ErrConversion) ||
		errors.Is(err, md2docx.ErrRender) ||
		errors.Is(err, md2docx.ErrBrowserConnect) ||
		errors.Is(err, md2docx.ErrPageCreate) {
		return ExitTool
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, md2docx.ErrInvalidOption) ||
		errors.Is(err, md2docx.ErrUnsafeOutputDir) ||
		errors.Is(err, md2docx.ErrEmptySourceDir) ||
		errors.Is(err, md2docx.ErrEmptyOutputDir) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2docx.ErrPrepareOutput) ||
		errors.Is(err, md2docx.ErrMergedFile) ||
		errors.Is(err, md2docx.ErrNoDocuments) ||
		errors.Is(err, pipeline.ErrInvalidEncoding) {
		return ExitIO
	}

	return ExitGeneral
}
