package types

import (
	"net/url"
	"path/filepath"
	"strings"
)

// Position in a text document expressed as zero-based line and character offset.
// A position is between two characters like an 'insert' cursor in an editor.
type Position struct {
	// Line position in a document (zero-based).
	Line uint32 `json:"line"`

	// Character offset on a line in a document (zero-based).
	Character uint32 `json:"character"`
}

// NewPosition creates a new Position
func NewPosition(line, character uint32) Position {
	return Position{
		Line:      line,
		Character: character,
	}
}

// Before returns true if this position is before the other position
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Character < other.Character
}

// After returns true if this position is after the other position
func (p Position) After(other Position) bool {
	return other.Before(p)
}

// Equal returns true if this position is equal to the other position
func (p Position) Equal(other Position) bool {
	return p.Line == other.Line && p.Character == other.Character
}

// Range in a text document expressed as (zero-based) start and end positions.
type Range struct {
	// The range's start position.
	Start Position `json:"start"`

	// The range's end position.
	End Position `json:"end"`
}

// NewRange creates a new Range
func NewRange(start, end Position) Range {
	return Range{
		Start: start,
		End:   end,
	}
}

// Contains reports whether p lies within the range. Both ends are inclusive,
// matching how editors test a cursor sitting right after the last character.
func (r Range) Contains(p Position) bool {
	return !p.Before(r.Start) && !p.After(r.End)
}

// ContainsRange reports whether other lies entirely inside r.
func (r Range) ContainsRange(other Range) bool {
	return r.Contains(other.Start) && r.Contains(other.End)
}

// IsEmpty returns true if the range is empty (start and end are the same)
func (r Range) IsEmpty() bool {
	return r.Start.Equal(r.End)
}

// TextDocumentItem represents an open text document in the client.
type TextDocumentItem struct {
	// The text document's URI.
	URI string `json:"uri"`

	// The text document's language identifier.
	LanguageID string `json:"languageId"`

	// The version number of this document.
	Version int32 `json:"version"`

	// The content of the opened text document.
	Text string `json:"text"`
}

// NewTextDocumentItem creates a new TextDocumentItem
func NewTextDocumentItem(uri, languageID string, version int32, text string) TextDocumentItem {
	return TextDocumentItem{
		URI:        uri,
		LanguageID: languageID,
		Version:    version,
		Text:       text,
	}
}

// TextDocumentIdentifier is a lightweight representation of a TextDocumentItem,
// containing only the URI.
type TextDocumentIdentifier struct {
	// The text document's URI.
	URI string `json:"uri"`
}

// TextDocumentPositionParams is a parameter literal used in requests to pass a text document and a position inside that document.
type TextDocumentPositionParams struct {
	// The text document.
	TextDocument TextDocumentIdentifier `json:"textDocument"`

	// The position inside the text document.
	Position Position `json:"position"`
}

// NewTextDocumentPositionParams creates a new TextDocumentPositionParams
func NewTextDocumentPositionParams(uri string, pos Position) TextDocumentPositionParams {
	return TextDocumentPositionParams{
		TextDocument: TextDocumentIdentifier{URI: uri},
		Position:     pos,
	}
}

// DidOpenTextDocumentParams is sent with textDocument/didOpen.
type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

// DocumentSymbolParams is sent with textDocument/documentSymbol.
type DocumentSymbolParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// Location represents a location inside a resource, such as a line inside a text file.
type Location struct {
	// The text document's URI.
	URI string `json:"uri"`

	// The range inside the text document.
	Range Range `json:"range"`
}

// NewLocation creates a new Location
func NewLocation(uri string, r Range) Location {
	return Location{
		URI:   uri,
		Range: r,
	}
}

// LocationLink represents a link between a source and a target location.
type LocationLink struct {
	// Span of the origin of this link.
	OriginSelectionRange *Range `json:"originSelectionRange,omitempty"`

	// The target resource identifier of this link.
	TargetURI string `json:"targetUri"`

	// The full target range of this link.
	TargetRange Range `json:"targetRange"`

	// The range that should be selected and revealed when this link is being followed,
	// e.g. the name of a function. Must be contained by the `targetRange`.
	TargetSelectionRange Range `json:"targetSelectionRange"`
}

// MarkupKind describes the content type that a client supports in various
// result literals like `Hover`, `ParameterInfo` or `CompletionItem`.
type MarkupKind string

const (
	// PlainText is supported as a content format
	PlainText MarkupKind = "plaintext"

	// Markdown is supported as a content format
	Markdown MarkupKind = "markdown"
)

// MarkupContent represents a string value which content is interpreted based on its kind flag.
type MarkupContent struct {
	// The type of the Markup
	Kind MarkupKind `json:"kind"`

	// The content itself
	Value string `json:"value"`
}

// IsMarkdown returns true if the content is Markdown
func (m MarkupContent) IsMarkdown() bool {
	return m.Kind == Markdown
}

// URIFromPath converts a file system path into a file:// URI.
func URIFromPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}

// PathFromURI converts a file:// URI back into a file system path. Non-file
// URIs (such as jdt:// class file contents) are returned unchanged.
func PathFromURI(uri string) string {
	if !strings.HasPrefix(uri, "file://") {
		return uri
	}
	u, err := url.Parse(uri)
	if err != nil {
		return strings.TrimPrefix(uri, "file://")
	}
	return filepath.FromSlash(u.Path)
}
