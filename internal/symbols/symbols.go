// Package symbols searches document symbol trees returned by a language
// server.
package symbols

import (
	"strings"

	"github.com/spachava753/arthas-copy/internal/lsp/types"
)

// FindMethodAt returns the innermost method, function or constructor whose
// range contains pos, or nil. Ranges are inclusive at both ends. The tree is
// only read.
func FindMethodAt(tree []types.DocumentSymbol, pos types.Position) *types.DocumentSymbol {
	for i := range tree {
		sym := &tree[i]
		if !sym.Range.Contains(pos) {
			continue
		}
		if inner := FindMethodAt(sym.Children, pos); inner != nil {
			return inner
		}
		if sym.Kind.IsMethodLike() {
			return sym
		}
	}
	return nil
}

// StripParams truncates a symbol name at its parameter list, turning
// "deposit(String, long)" into "deposit".
func StripParams(name string) string {
	if i := strings.IndexByte(name, '('); i >= 0 {
		return strings.TrimSpace(name[:i])
	}
	return name
}

// Walk calls fn for every symbol in pre-order with its depth. Returning
// false from fn skips the symbol's children.
func Walk(tree []types.DocumentSymbol, fn func(sym *types.DocumentSymbol, depth int) bool) {
	walk(tree, 0, fn)
}

func walk(tree []types.DocumentSymbol, depth int, fn func(*types.DocumentSymbol, int) bool) {
	for i := range tree {
		if fn(&tree[i], depth) {
			walk(tree[i].Children, depth+1, fn)
		}
	}
}
