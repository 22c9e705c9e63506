// Package pipeline implements the text side of the book build.
//
// Stages, in the order the builder drives them:
//   - Scan: discover chapter documents and derive their chapter ids
//   - Transformer: render Mermaid blocks and resolve image links into
//     numbered PNG artifacts, leaving placeholder tokens in the text
//   - Merger: concatenate documents, breaking the page between chapters
//   - ErrorLog: durable record of every diagram or image that failed
//
// The optional HTML preview (goldmark + chroma, x/net/html for token
// linking) also lives here. Running the external converter and renderer
// is the root md2docx package's job.
package pipeline
