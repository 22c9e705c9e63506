package md2docx

import (
	"time"

	"github.com/alnah/go-md2docx/internal/pipeline"
)

// Default names and timeouts.
const (
	DefaultOutputName     = "output.docx"
	MergedName            = "merged.md"
	DefaultRenderTimeout  = 2 * time.Minute
	DefaultFetchTimeout   = 30 * time.Second
	DefaultConvertTimeout = 5 * time.Minute
)

// DefaultPageBreak is the marker written between chapters.
const DefaultPageBreak = pipeline.DefaultPageBreak

// Input names the directories of one build.
type Input struct {
	SourceDir string // root holding one subdirectory per chapter
	OutputDir string // receives images, the error log and the book
}

// Result describes a finished (or partially finished) build.
type Result struct {
	OutputPath      string
	PreviewPath     string // empty unless the HTML preview was written
	ErrorLogPath    string // only exists when Failures > 0; a previous run's log is removed first
	Documents       int    // documents appended to the book
	Skipped         int    // documents that could not be read
	Chapters        int
	PageBreaks      int
	Diagrams        int // diagrams rendered
	Images          int // images copied or downloaded
	Failures        int // entries written to the error log
	DiagramFailures int // diagrams the renderer rejected
	ImageFailures   int // images that could not be copied or downloaded
	Missing         int // local images not found
	Docx            *DocxStats
	Duration        time.Duration
}

// DiagramRenderer renders a Mermaid source file to a PNG file.
type DiagramRenderer = pipeline.DiagramRenderer

// ImageFetcher downloads a remote image to a file.
type ImageFetcher = pipeline.ImageFetcher

// Event is a progress notification emitted during Build.
type Event = pipeline.Event

// EventKind identifies an Event.
type EventKind = pipeline.EventKind

// Event kinds.
const (
	EventNotice        = pipeline.EventNotice
	EventDocument      = pipeline.EventDocument
	EventReadFailed    = pipeline.EventReadFailed
	EventDiagram       = pipeline.EventDiagram
	EventDiagramFailed = pipeline.EventDiagramFailed
	EventImage         = pipeline.EventImage
	EventImageFailed   = pipeline.EventImageFailed
	EventImageMissing  = pipeline.EventImageMissing
	EventConverting    = pipeline.EventConverting
	EventWarning       = pipeline.EventWarning
)
