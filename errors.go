package md2docx

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptySourceDir  = errors.New("source directory cannot be empty")
	ErrEmptyOutputDir  = errors.New("output directory cannot be empty")
	ErrPrepareOutput   = errors.New("cannot prepare output directory")
	ErrUnsafeOutputDir = errors.New("output directory contains the source directory")
	ErrNoDocuments     = errors.New("no Markdown documents found")
	ErrMergedFile      = errors.New("cannot write merged document")
	ErrInvalidOption   = errors.New("invalid option")

	// External tool errors.
	ErrToolNotFound = errors.New("external tool not found")
	ErrRender       = errors.New("diagram rendering failed")
	ErrDownload     = errors.New("image download failed")
	ErrConversion   = errors.New("document conversion failed")

	// Browser renderer errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")

	// Output verification errors.
	ErrInspect = errors.New("cannot read output document")
)
