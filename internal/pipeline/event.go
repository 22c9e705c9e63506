package pipeline

// EventKind identifies a progress event emitted during a build.
type EventKind int

// Progress events, in roughly the order a build emits them.
const (
	EventNotice        EventKind = iota // informational line (Message)
	EventDocument                       // a document is being processed (Path)
	EventReadFailed                     // a document could not be read; it is skipped (Path, Err)
	EventDiagram                        // a diagram is being rendered (Path, Image)
	EventDiagramFailed                  // rendering failed and was logged (Path, Image, Err)
	EventImage                          // an image link is being resolved (Path, Target, Image)
	EventImageFailed                    // resolving failed and was logged (Path, Target, Err)
	EventImageMissing                   // local image not found; link left as is (Path, Target)
	EventConverting                     // the converter is running (Target = output document)
	EventWarning                        // non-fatal problem outside the per-unit taxonomy (Message, Err)
)

// Event is a single progress notification.
type Event struct {
	Kind    EventKind
	Path    string // source document
	Target  string // image link target or output path
	Image   string // artifact file name, e.g. "01-2.png"
	Message string
	Err     error
}

// Notifier receives progress events. A nil Notifier drops them.
type Notifier func(Event)

func (n Notifier) Emit(e Event) {
	if n != nil {
		n(e)
	}
}
