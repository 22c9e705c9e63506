package pipeline

import (
	"context"
	"fmt"
	"html"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// PreviewName is the file name of the HTML preview in the output directory.
const PreviewName = "preview.html"

// previewStyle is the chroma style used for code blocks in the preview.
const previewStyle = "github"

const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { max-width: 48em; margin: 2em auto; padding: 0 1em; font-family: sans-serif; line-height: 1.5; }
section.chapter { page-break-after: always; border-bottom: 1px solid #ddd; padding-bottom: 2em; }
img { max-width: 100%%; }
pre { overflow-x: auto; padding: 0.5em; }
%s</style>
</head>
<body>
%s</body>
</html>
`

// RenderPreview renders the merged book as a standalone HTML page.
// Each chapter (text between page breaks) becomes a <section class="chapter">
// and artifact tokens become images, so the page is meant to live in the
// output directory next to the PNG files.
func RenderPreview(ctx context.Context, merged, pageBreak, title string) (string, error) {
	if pageBreak == "" {
		pageBreak = DefaultPageBreak
	}
	if title == "" {
		title = "Book preview"
	}

	conv := NewGoldmarkConverter()
	var body strings.Builder
	for _, chapter := range strings.Split(merged, pageBreak) {
		if strings.TrimSpace(chapter) == "" {
			continue
		}
		fragment, err := conv.ToHTML(ctx, chapter)
		if err != nil {
			return "", err
		}
		linked, err := LinkPlaceholders(fragment)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
		}
		body.WriteString("<section class=\"chapter\">\n")
		body.WriteString(linked)
		body.WriteString("</section>\n")
	}

	css, err := highlightCSS()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(previewTemplate, html.EscapeString(title), css, body.String()), nil
}

func highlightCSS() (string, error) {
	var buf strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(previewStyle)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}
