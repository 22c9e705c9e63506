package pipeline

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// ErrorLogName is the file name of the error log in the output directory.
const ErrorLogName = "processing_errors.log"

const entrySeparator = "-----------------------------------------\n\n"

// ErrorLog appends failure entries to a file. The file is created on the
// first entry, so a clean build leaves no log behind once Remove has cleared
// any earlier one.
type ErrorLog struct {
	mu      sync.Mutex
	path    string
	entries int
}

// NewErrorLog returns an ErrorLog that writes to path.
func NewErrorLog(path string) *ErrorLog {
	return &ErrorLog{path: path}
}

// Path returns the log file path.
func (l *ErrorLog) Path() string { return l.path }

// Entries returns the number of entries written so far.
func (l *ErrorLog) Entries() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries
}

// Remove deletes the log file left by an earlier run. A missing file is not
// an error.
func (l *ErrorLog) Remove() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing stale error log: %w", err)
	}
	l.entries = 0
	return nil
}

// RecordDiagram logs a diagram that the renderer tool could not render.
func (l *ErrorLog) RecordDiagram(docPath, source, tool, message string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "---\n--- Error in file: %s ---\n", docPath)
	b.WriteString("Failed Mermaid Code:\n")
	b.WriteString(strings.TrimSpace(source) + "\n\n")
	fmt.Fprintf(&b, "Error from %s:\n", tool)
	b.WriteString(message + "\n")
	b.WriteString(entrySeparator)
	return l.write(b.String())
}

// RecordImage logs an image link that could not be resolved.
func (l *ErrorLog) RecordImage(docPath, target string, cause error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "---\n--- Error in file: %s ---\n", docPath)
	fmt.Fprintf(&b, "Failed to download image: %s\n", target)
	fmt.Fprintf(&b, "Error: %v\n", cause)
	b.WriteString(entrySeparator)
	return l.write(b.String())
}

func (l *ErrorLog) write(entry string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) // #nosec G302 G304 -- log in user output dir
	if err != nil {
		return fmt.Errorf("opening error log: %w", err)
	}
	if _, err := f.WriteString(entry); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing error log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing error log: %w", err)
	}
	l.entries++
	return nil
}
