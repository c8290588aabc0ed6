package editor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/spachava753/arthas-copy/internal/lsp/types"
)

var (
	// ErrNoActiveEditor is returned when an invocation names no document.
	ErrNoActiveEditor = errors.New("no active editor")
	// ErrNotJava is returned for documents that are not Java source.
	ErrNotJava = errors.New("not a java file")
)

// LanguageJava is the language id of Java documents.
const LanguageJava = "java"

// Document is the file the cursor is in.
type Document struct {
	Path       string
	URI        string
	LanguageID string
	Text       string

	lines []string
}

// Load reads the document at path. An empty path means there is no active
// editor.
func Load(path string) (*Document, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrNoActiveEditor
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc := FromText(abs, string(content))
	mime := mimetype.Detect(content)
	if !strings.HasPrefix(mime.String(), "text/") {
		// A .java extension on binary content is not a Java document.
		doc.LanguageID = mime.String()
	}
	return doc, nil
}

// FromText builds a document from in-memory text.
func FromText(path, text string) *Document {
	return &Document{
		Path:       path,
		URI:        types.URIFromPath(path),
		LanguageID: languageID(path),
		Text:       text,
		lines:      splitLines(text),
	}
}

// IsJava reports whether the document is Java source.
func (d *Document) IsJava() bool {
	return d.LanguageID == LanguageJava
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// LineAt returns line n (zero-based) without its terminator, or "" when n is
// out of range.
func (d *Document) LineAt(n int) string {
	if n < 0 || n >= len(d.lines) {
		return ""
	}
	return d.lines[n]
}

// Split returns the text of the cursor line before and after pos. Character
// offsets count runes and are clamped to the line.
func (d *Document) Split(pos types.Position) (before, after string) {
	line := []rune(d.LineAt(int(pos.Line)))
	c := int(pos.Character)
	if c > len(line) {
		c = len(line)
	}
	return string(line[:c]), string(line[c:])
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func languageID(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".java":
		return LanguageJava
	case ".kt", ".kts":
		return "kotlin"
	case ".groovy":
		return "groovy"
	case ".scala":
		return "scala"
	case ".xml":
		return "xml"
	case ".class":
		return "class"
	default:
		return "plaintext"
	}
}
