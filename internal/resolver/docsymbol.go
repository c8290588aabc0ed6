package resolver

import (
	"context"
	"errors"

	"github.com/spachava753/arthas-copy/internal/javasrc"
	"github.com/spachava753/arthas-copy/internal/symbols"
)

// DocumentSymbolStrategy reports the method declaration enclosing the
// cursor in the current document.
type DocumentSymbolStrategy struct {
	Services Services
}

// Name implements Strategy.
func (s *DocumentSymbolStrategy) Name() string { return StrategyDocumentSymbol }

// Resolve implements Strategy.
func (s *DocumentSymbolStrategy) Resolve(ctx context.Context, q Query) (MethodReference, bool, error) {
	tree, err := s.Services.DocumentSymbols(ctx, q.Doc.URI)
	if err != nil {
		return MethodReference{}, false, err
	}
	sym := symbols.FindMethodAt(tree, q.Pos)
	if sym == nil {
		return MethodReference{}, false, errors.New("cursor is not inside a method")
	}
	class, ok := javasrc.ExtractFullClassName(q.Doc.Text)
	if !ok {
		return MethodReference{}, false, errors.New("no package or class declaration")
	}
	return MethodReference{FullClassName: class, MethodName: symbols.StripParams(sym.Name)}, true, nil
}
