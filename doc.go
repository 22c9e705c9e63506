// Package md2docx builds a Word book from a tree of chapter directories
// holding Markdown documents.
//
// # Quick Start
//
//	b, err := md2docx.NewBuilder()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	res, err := b.Build(ctx, md2docx.Input{
//	    SourceDir: "docs",
//	    OutputDir: "output",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.OutputPath, res.Failures)
//
// # Build Stages
//
//  1. Prepare the output directory (removed and recreated unless cleaning is off)
//  2. Scan <source>/<chapter>/*.md, sorted by full path, and derive chapter ids
//  3. Per document: Mermaid blocks and image links become numbered PNG files
//     ({chapter}-{n}.png) referenced by placeholder tokens, then the text is
//     appended to merged.md with a page break whenever the chapter changes
//  4. Run pandoc once on merged.md, then delete it
//
// Failed diagrams and images do not stop the build. They are appended to
// processing_errors.log in the output directory.
//
// # Configuration
//
//	b, err := md2docx.NewBuilder(
//	    md2docx.WithRenderer(md2docx.NewBrowserRenderer()),
//	    md2docx.WithFetcher(md2docx.NewHTTPFetcher(md2docx.FetchOptions{Timeout: 10 * time.Second})),
//	    md2docx.WithOutputName("book.docx"),
//	    md2docx.WithProgress(func(e md2docx.Event) { log.Println(e.Kind, e.Path) }),
//	)
//
// # External Tools
//
// The default renderer runs mermaid-cli (mmdc) and the default assembler
// runs pandoc; both must be on PATH. The browser renderer drives headless
// Chrome through go-rod instead of mmdc. Set ROD_BROWSER_BIN to use a
// specific Chrome binary and ROD_NO_SANDBOX=1 in containers.
package md2docx
