// Package javasyntax answers document symbol queries for Java sources by
// parsing them with tree-sitter. It needs no running language server and
// cannot answer queries that require type information.
package javasyntax

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/spachava753/arthas-copy/internal/lsp"
	"github.com/spachava753/arthas-copy/internal/lsp/types"
)

var (
	javaOnce     sync.Once
	javaLanguage *sitter.Language
)

func language() *sitter.Language {
	javaOnce.Do(func() {
		javaLanguage = sitter.NewLanguage(java.Language())
	})
	return javaLanguage
}

// Backend is an offline stand-in for a Java language server.
type Backend struct {
	logger *slog.Logger

	mu     sync.Mutex
	parser *sitter.Parser
	docs   map[string]string
}

// New returns a backend with its own parser. Close releases it.
func New(logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	parser := sitter.NewParser()
	if err := parser.SetLanguage(language()); err != nil {
		parser.Close()
		return nil, fmt.Errorf("loading java grammar: %w", err)
	}
	return &Backend{logger: logger, parser: parser, docs: make(map[string]string)}, nil
}

// Open registers text as the content of uri, shadowing the file on disk.
func (b *Backend) Open(uri, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.docs[uri] = text
}

// OpenDocument returns the registered text of uri, reading file URIs from
// disk on first use.
func (b *Backend) OpenDocument(ctx context.Context, uri string) (string, error) {
	b.mu.Lock()
	text, ok := b.docs[uri]
	b.mu.Unlock()
	if ok {
		return text, nil
	}
	if !strings.HasPrefix(uri, "file://") {
		return "", fmt.Errorf("%w: cannot read %s without a language server", lsp.ErrUnsupported, uri)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(types.PathFromURI(uri))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", uri, err)
	}
	b.Open(uri, string(data))
	return string(data), nil
}

// DocumentSymbols parses uri and returns its declarations as a tree.
func (b *Backend) DocumentSymbols(ctx context.Context, uri string) ([]types.DocumentSymbol, error) {
	text, err := b.OpenDocument(ctx, uri)
	if err != nil {
		return nil, err
	}

	src := []byte(text)
	b.mu.Lock()
	tree := b.parser.Parse(src, nil)
	b.mu.Unlock()
	if tree == nil {
		if len(src) == 0 {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing %s failed", uri)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		b.logger.Debug("java source has syntax errors", "uri", uri)
	}
	return collect(root, newSource(src)), nil
}

// Definition is not available offline.
func (b *Backend) Definition(context.Context, string, types.Position) ([]types.Location, error) {
	return nil, fmt.Errorf("definition: %w", lsp.ErrUnsupported)
}

// Hover is not available offline.
func (b *Backend) Hover(context.Context, string, types.Position) (*types.Hover, error) {
	return nil, fmt.Errorf("hover: %w", lsp.ErrUnsupported)
}

// TypeHierarchy is not available offline.
func (b *Backend) TypeHierarchy(context.Context, string, types.Position) ([]types.TypeHierarchyEntry, error) {
	return nil, fmt.Errorf("type hierarchy: %w", lsp.ErrUnsupported)
}

// Close releases the parser.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.parser != nil {
		b.parser.Close()
		b.parser = nil
	}
	return nil
}
