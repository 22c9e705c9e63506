package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Sentinel errors for document discovery and reading.
var (
	ErrInvalidChapterPattern = errors.New("invalid chapter pattern")
	ErrInvalidExcludePattern = errors.New("invalid exclude pattern")
	ErrInvalidEncoding       = errors.New("document is not valid UTF-8")
)

// DefaultChapterPattern extracts the chapter id from a document path.
const DefaultChapterPattern = `chapter(\d+)`

// NoChapterID is the chapter id of documents whose path has no chapter marker.
const NoChapterID = "0"

// DefaultExclude lists base names skipped by Scan (case-insensitive).
var DefaultExclude = []string{"README.md", "index.md"}

var lineEndings = regexp.MustCompile(`\r\n?`)

// Document is a Markdown file found under a chapter directory.
type Document struct {
	Path      string // full path, used for ordering and reading
	RelPath   string // slash-separated path relative to the source root
	Dir       string // directory holding the document; local images resolve against it
	ChapterID string
}

// ScanOptions tunes document discovery.
type ScanOptions struct {
	Exclude        []string       // base-name globs to skip; nil means DefaultExclude
	ChapterPattern *regexp.Regexp // nil means DefaultChapterPattern
}

// CompileChapterPattern compiles expr and checks it captures the chapter id.
func CompileChapterPattern(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		expr = DefaultChapterPattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidChapterPattern, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("%w: %q has no capture group for the chapter id", ErrInvalidChapterPattern, expr)
	}
	return re, nil
}

// ValidateExclude checks that every exclude entry is a well-formed glob.
func ValidateExclude(patterns []string) error {
	for _, p := range patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidExcludePattern, p, err)
		}
	}
	return nil
}

// ChapterID returns the first capture group of pattern in path, or NoChapterID.
// Leading zeros are kept: "chapter01" yields "01".
func ChapterID(pattern *regexp.Regexp, path string) string {
	m := pattern.FindStringSubmatch(filepath.ToSlash(path))
	if len(m) < 2 || m[1] == "" {
		return NoChapterID
	}
	return m[1]
}

// Scan lists the Markdown documents one directory level below root,
// sorted by full path. Chapter order therefore follows directory names,
// so chapter directories need zero-padded numbers ("chapter02" before "chapter10").
// Hidden entries and excluded base names are skipped.
func Scan(root string, opts ScanOptions) ([]Document, error) {
	pattern := opts.ChapterPattern
	if pattern == nil {
		pattern = regexp.MustCompile(DefaultChapterPattern)
	}
	exclude := opts.Exclude
	if exclude == nil {
		exclude = DefaultExclude
	}
	if err := ValidateExclude(exclude); err != nil {
		return nil, err
	}

	chapters, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	var docs []Document
	for _, chapter := range chapters {
		if !chapter.IsDir() || isHidden(chapter.Name()) {
			continue
		}
		dir := filepath.Join(root, chapter.Name())
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", dir, err)
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || isHidden(name) || !isMarkdown(name) || isExcluded(name, exclude) {
				continue
			}
			rel := chapter.Name() + "/" + name
			docs = append(docs, Document{
				Path:      filepath.Join(dir, name),
				RelPath:   rel,
				Dir:       dir,
				ChapterID: ChapterID(pattern, rel),
			})
		}
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// ReadDocument returns the text of a document as UTF-8 with "\n" line endings.
// A byte order mark (UTF-8 or UTF-16) is honored and dropped.
func ReadDocument(path string) (string, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- scanned document path
	if err != nil {
		return "", err
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), raw)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", path, err)
	}
	if !utf8.Valid(decoded) {
		return "", fmt.Errorf("%w: %s", ErrInvalidEncoding, path)
	}

	return lineEndings.ReplaceAllString(string(decoded), "\n"), nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func isExcluded(name string, patterns []string) bool {
	lower := strings.ToLower(name)
	for _, p := range patterns {
		if ok, _ := filepath.Match(strings.ToLower(p), lower); ok {
			return true
		}
	}
	return false
}
