package pipeline

import (
	"io"
	"strings"
)

// DefaultPageBreak is written between chapters of the merged book.
const DefaultPageBreak = "\n\n<div style=\"page-break-after: always;\"></div>\n\n"

// Merger appends transformed documents to the merged book.
// A page break separates documents of different chapters; none is written
// before the first document or between documents of the same chapter.
type Merger struct {
	w         io.Writer
	pageBreak string
	last      string
	documents int
	breaks    int
}

// NewMerger returns a Merger writing to w. An empty pageBreak selects DefaultPageBreak.
func NewMerger(w io.Writer, pageBreak string) *Merger {
	if pageBreak == "" {
		pageBreak = DefaultPageBreak
	}
	return &Merger{w: w, pageBreak: pageBreak}
}

// Append writes text for a document of chapter chapterID, followed by a blank line.
func (m *Merger) Append(chapterID, text string) error {
	var b strings.Builder
	if m.documents > 0 && chapterID != m.last {
		b.WriteString(m.pageBreak)
		m.breaks++
	}
	b.WriteString(text)
	b.WriteString("\n\n")

	if _, err := io.WriteString(m.w, b.String()); err != nil {
		return err
	}
	m.last = chapterID
	m.documents++
	return nil
}

// Documents returns the number of appended documents.
func (m *Merger) Documents() int { return m.documents }

// Breaks returns the number of page breaks written.
func (m *Merger) Breaks() int { return m.breaks }
