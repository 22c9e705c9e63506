package md2docx

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/fumiama/go-docx"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// ---------------------------------------------------------------------------
// TestInspectDocx - Read back produced documents
// ---------------------------------------------------------------------------

func TestInspectDocx(t *testing.T) {
	t.Parallel()

	w := docx.New().WithDefaultTheme()
	w.AddParagraph().Style("Heading1").AddText("Chapter 1")
	w.AddParagraph().AddText("Intro")
	w.AddParagraph().Style("Heading2").AddText("Section")
	if _, err := w.AddParagraph().AddInlineDrawing(pngBytes(t)); err != nil {
		t.Fatal(err)
	}
	w.AddParagraph().Style("Heading1").AddText("Chapter 2")

	path := filepath.Join(t.TempDir(), "book.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.WriteTo(f); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	stats, err := InspectDocx(path)
	if err != nil {
		t.Fatalf("InspectDocx() unexpected error: %v", err)
	}
	if stats.Paragraphs != 5 || stats.Headings != 3 || stats.TopLevelHeadings != 2 || stats.Images != 1 {
		t.Errorf("InspectDocx() = %+v", stats)
	}
	if stats.Bytes <= 0 {
		t.Errorf("Bytes = %d, want > 0", stats.Bytes)
	}
}

func TestInspectDocx_Invalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.docx")
	if err := os.WriteFile(bad, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{bad, filepath.Join(dir, "missing.docx")} {
		if _, err := InspectDocx(path); !errors.Is(err, ErrInspect) {
			t.Errorf("InspectDocx(%q) error = %v, want ErrInspect", path, err)
		}
	}
}

func TestHeadingLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		style string
		want  int
	}{
		{"Heading1", 1},
		{"heading 1", 1},
		{"Heading6", 6},
		{"Heading7", 0},
		{"Heading10", 0},
		{"Title", 0},
		{"", 0},
	}

	for _, tt := range tests {
		para := &docx.Paragraph{Properties: &docx.ParagraphProperties{Style: &docx.Style{Val: tt.style}}}
		if got := headingLevel(para); got != tt.want {
			t.Errorf("headingLevel(%q) = %d, want %d", tt.style, got, tt.want)
		}
	}

	if got := headingLevel(&docx.Paragraph{}); got != 0 {
		t.Errorf("headingLevel(no properties) = %d", got)
	}
}
