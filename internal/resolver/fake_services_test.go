package resolver

import (
	"context"
	"errors"
	"sync"

	"github.com/spachava753/arthas-copy/internal/lsp/types"
)

var errNoServer = errors.New("no server")

// fakeServices answers queries from canned data and records what was asked.
type fakeServices struct {
	mu sync.Mutex

	defs      []types.Location
	defErr    error
	hover     *types.Hover
	hoverErr  error
	hierarchy []types.TypeHierarchyEntry
	hierErr   error
	symbols   map[string][]types.DocumentSymbol
	docs      map[string]string

	calls []string
}

func (f *fakeServices) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeServices) Definition(_ context.Context, _ string, _ types.Position) ([]types.Location, error) {
	f.record("definition")
	return f.defs, f.defErr
}

func (f *fakeServices) Hover(_ context.Context, _ string, _ types.Position) (*types.Hover, error) {
	f.record("hover")
	if f.hover == nil && f.hoverErr == nil {
		return nil, errNoServer
	}
	return f.hover, f.hoverErr
}

func (f *fakeServices) TypeHierarchy(_ context.Context, _ string, _ types.Position) ([]types.TypeHierarchyEntry, error) {
	f.record("type-hierarchy")
	if f.hierarchy == nil && f.hierErr == nil {
		return nil, errNoServer
	}
	return f.hierarchy, f.hierErr
}

func (f *fakeServices) DocumentSymbols(_ context.Context, uri string) ([]types.DocumentSymbol, error) {
	f.record("document-symbol " + uri)
	syms, ok := f.symbols[uri]
	if !ok {
		return nil, errNoServer
	}
	return syms, nil
}

func (f *fakeServices) OpenDocument(_ context.Context, uri string) (string, error) {
	f.record("open " + uri)
	text, ok := f.docs[uri]
	if !ok {
		return "", errors.New("not found: " + uri)
	}
	return text, nil
}

func (f *fakeServices) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func rng(startLine, startChar, endLine, endChar uint32) types.Range {
	return types.NewRange(types.NewPosition(startLine, startChar), types.NewPosition(endLine, endChar))
}

func markdownHover(value string) *types.Hover {
	return &types.Hover{Contents: types.HoverContents{Parts: []types.MarkupContent{{Kind: types.Markdown, Value: value}}}}
}
