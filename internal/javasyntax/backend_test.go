package javasyntax

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spachava753/arthas-copy/internal/lsp"
	"github.com/spachava753/arthas-copy/internal/lsp/types"
	"github.com/spachava753/arthas-copy/internal/symbols"
)

const account = `package com.example.bank;

public class Account {
    private long balance;

    public Account(long opening) {
        this.balance = opening;
    }

    public void deposit(String memo, long amount) {
        Runnable r = new Runnable() {
            public void run() {
                balance += amount;
            }
        };
        r.run();
    }

    static <T> void log(java.util.List<T> items, String... args) {}

    enum State { OPEN, CLOSED }
}
`

func newBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := New(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func outline(tree []types.DocumentSymbol) []string {
	var out []string
	symbols.Walk(tree, func(sym *types.DocumentSymbol, depth int) bool {
		out = append(out, fmt.Sprintf("%d %s %s", depth, sym.Kind, sym.Name))
		return true
	})
	return out
}

func TestDocumentSymbols(t *testing.T) {
	b := newBackend(t)
	const uri = "file:///src/com/example/bank/Account.java"
	b.Open(uri, account)

	tree, err := b.DocumentSymbols(context.Background(), uri)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"0 Class Account",
		"1 Field balance",
		"1 Constructor Account(long)",
		"1 Method deposit(String, long)",
		"2 Class new Runnable() {...}",
		"3 Method run()",
		"1 Method log(java.util.List, String...)",
		"1 Enum State",
		"2 EnumMember OPEN",
		"2 EnumMember CLOSED",
	}, outline(tree))

	tests := []struct {
		name string
		pos  types.Position
		want string
	}{
		{"anonymous class method", types.NewPosition(12, 16), "run()"},
		{"enclosing method", types.NewPosition(15, 9), "deposit(String, long)"},
		{"constructor", types.NewPosition(6, 10), "Account(long)"},
		{"field", types.NewPosition(3, 10), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sym := symbols.FindMethodAt(tree, tt.pos)
			if tt.want == "" {
				assert.Nil(t, sym)
				return
			}
			require.NotNil(t, sym)
			assert.Equal(t, tt.want, sym.Name)
		})
	}
}

func TestDocumentSymbolsCharacterColumns(t *testing.T) {
	b := newBackend(t)
	const uri = "file:///src/a/Umlaut.java"
	b.Open(uri, "package a;\nclass Ä { void ö() {} }\n")

	tree, err := b.DocumentSymbols(context.Background(), uri)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)

	method := tree[0].Children[0]
	assert.Equal(t, "ö()", method.Name)
	assert.Equal(t, types.NewPosition(1, 15), method.SelectionRange.Start)
	assert.Equal(t, types.NewPosition(1, 10), method.Range.Start)
}

func TestDocumentSymbolsToleratesSyntaxErrors(t *testing.T) {
	b := newBackend(t)
	const uri = "file:///src/a/Broken.java"
	b.Open(uri, "package a;\nclass Broken {\n  void ok() {}\n  int x = ;\n}\n")

	tree, err := b.DocumentSymbols(context.Background(), uri)
	require.NoError(t, err)
	assert.Contains(t, outline(tree), "1 Method ok()")
}

func TestOpenDocument(t *testing.T) {
	b := newBackend(t)
	path := filepath.Join(t.TempDir(), "Account.java")
	require.NoError(t, os.WriteFile(path, []byte(account), 0o644))
	uri := types.URIFromPath(path)

	text, err := b.OpenDocument(context.Background(), uri)
	require.NoError(t, err)
	assert.Equal(t, account, text)

	// later reads come from memory
	require.NoError(t, os.Remove(path))
	text, err = b.OpenDocument(context.Background(), uri)
	require.NoError(t, err)
	assert.Equal(t, account, text)

	_, err = b.OpenDocument(context.Background(), "jdt://contents/rt.jar/java.util/Map.class")
	assert.ErrorIs(t, err, lsp.ErrUnsupported)

	_, err = b.OpenDocument(context.Background(), types.URIFromPath(filepath.Join(t.TempDir(), "Missing.java")))
	assert.Error(t, err)
}

func TestServerOnlyQueries(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	pos := types.NewPosition(0, 0)

	_, err := b.Definition(ctx, "file:///a.java", pos)
	assert.ErrorIs(t, err, lsp.ErrUnsupported)
	_, err = b.Hover(ctx, "file:///a.java", pos)
	assert.ErrorIs(t, err, lsp.ErrUnsupported)
	_, err = b.TypeHierarchy(ctx, "file:///a.java", pos)
	assert.ErrorIs(t, err, lsp.ErrUnsupported)
}

func TestEraseGenerics(t *testing.T) {
	assert.Equal(t, "Map", eraseGenerics("Map<String, List<Integer>>"))
	assert.Equal(t, "int[]", eraseGenerics("int[]"))
}
