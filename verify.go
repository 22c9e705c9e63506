package md2docx

import (
	"fmt"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// DocxStats summarizes a produced .docx.
type DocxStats struct {
	Paragraphs       int
	Headings         int
	TopLevelHeadings int // paragraphs styled Heading1, one per chapter title
	Images           int
	Bytes            int64
}

// InspectDocx parses the document at path and counts its body content.
func InspectDocx(path string) (*DocxStats, error) {
	f, err := os.Open(path) // #nosec G304 -- document written by the build
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInspect, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInspect, err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInspect, err)
	}

	stats := &DocxStats{Bytes: info.Size()}
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		stats.Paragraphs++
		if level := headingLevel(para); level > 0 {
			stats.Headings++
			if level == 1 {
				stats.TopLevelHeadings++
			}
		}
		stats.Images += countDrawings(para)
	}
	return stats, nil
}

// headingLevel returns 1-6 for paragraphs styled as headings, else 0.
// pandoc writes style ids ("Heading1"), Word writes names ("heading 1").
func headingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if !strings.HasPrefix(style, "heading") || len(style) != len("heading")+1 {
		return 0
	}
	level := int(style[len(style)-1] - '0')
	if level < 1 || level > 6 {
		return 0
	}
	return level
}

func countDrawings(para *docx.Paragraph) int {
	n := 0
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if _, ok := rc.(*docx.Drawing); ok {
				n++
			}
		}
	}
	return n
}
