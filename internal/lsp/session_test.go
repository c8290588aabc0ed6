package lsp

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spachava753/arthas-copy/internal/lsp/types"
)

func newTestSession(t *testing.T, server *fakeServer, conn net.Conn, opts SessionOptions) *Session {
	t.Helper()
	server.mu.Lock()
	_, ok := server.handlers[types.MethodInitialize]
	server.mu.Unlock()
	if !ok {
		server.result(types.MethodInitialize, javaCapabilities())
	}
	client := NewClient(conn)
	t.Cleanup(func() { client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	session, err := NewSession(ctx, client, opts)
	require.NoError(t, err)
	return session
}

func TestNewSessionAppliesInitPatch(t *testing.T) {
	server, conn := newFakeServer(t)
	received := make(chan json.RawMessage, 1)
	server.handle(types.MethodInitialize, func(params json.RawMessage) (any, *types.ResponseError) {
		received <- params
		return javaCapabilities(), nil
	})

	session := newTestSession(t, server, conn, SessionOptions{
		RootDir: t.TempDir(),
		InitPatch: []map[string]any{
			{"op": "add", "path": "/initializationOptions", "value": map[string]any{"bundles": []string{}}},
			{"op": "replace", "path": "/clientInfo/name", "value": "patched"},
		},
	})

	var params map[string]any
	require.NoError(t, json.Unmarshal(<-received, &params))
	assert.Equal(t, "patched", params["clientInfo"].(map[string]any)["name"])
	assert.Contains(t, params, "initializationOptions")
	assert.Contains(t, params["rootUri"], "file://")

	server.waitNotification(t, types.Initialized)
	assert.True(t, types.Supports(session.Capabilities().HoverProvider))
}

func TestNewSessionRejectsBadPatch(t *testing.T) {
	server, conn := newFakeServer(t)
	server.result(types.MethodInitialize, javaCapabilities())
	client := NewClient(conn)
	t.Cleanup(func() { client.Close() })

	_, err := NewSession(context.Background(), client, SessionOptions{
		InitPatch: []map[string]any{{"op": "replace", "path": "/does/not/exist", "value": 1}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "applying initialize patch")
}

func TestSessionAnswersWorkspaceConfiguration(t *testing.T) {
	server, conn := newFakeServer(t)
	newTestSession(t, server, conn, SessionOptions{})

	req, err := types.NewRequest(7, types.WorkspaceConfiguration, map[string]any{
		"items": []map[string]string{{"section": "java"}, {"section": "java.format"}},
	})
	require.NoError(t, err)
	go server.send(req)

	select {
	case raw := <-server.replied:
		var resp types.ResponseMessage
		require.NoError(t, json.Unmarshal(raw, &resp))
		assert.JSONEq(t, `[null,null]`, string(resp.Result))
	case <-time.After(2 * time.Second):
		t.Fatal("workspace/configuration not answered")
	}
}

func TestSessionDefinitionShapes(t *testing.T) {
	rng := types.NewRange(types.NewPosition(4, 2), types.NewPosition(4, 9))
	tests := []struct {
		name   string
		result any
		want   []types.Location
	}{
		{name: "null", result: nil, want: nil},
		{
			name:   "single location",
			result: types.NewLocation("file:///a/Foo.java", rng),
			want:   []types.Location{types.NewLocation("file:///a/Foo.java", rng)},
		},
		{
			name:   "location list",
			result: []types.Location{types.NewLocation("file:///a/Foo.java", rng), types.NewLocation("file:///a/Bar.java", rng)},
			want:   []types.Location{types.NewLocation("file:///a/Foo.java", rng), types.NewLocation("file:///a/Bar.java", rng)},
		},
		{
			name: "location links",
			result: []types.LocationLink{{
				TargetURI:            "jdt://contents/rt.jar/java.util/HashMap.class",
				TargetRange:          types.NewRange(types.NewPosition(0, 0), types.NewPosition(90, 0)),
				TargetSelectionRange: rng,
			}},
			want: []types.Location{types.NewLocation("jdt://contents/rt.jar/java.util/HashMap.class", rng)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, conn := newFakeServer(t)
			server.result(types.MethodDefinition, tt.result)
			session := newTestSession(t, server, conn, SessionOptions{})

			got, err := session.Definition(context.Background(), "file:///a/Main.java", types.NewPosition(1, 1))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Definition() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSessionUnsupportedProviders(t *testing.T) {
	server, conn := newFakeServer(t)
	server.result(types.MethodInitialize, map[string]any{"capabilities": map[string]any{"definitionProvider": false}})
	session := newTestSession(t, server, conn, SessionOptions{})

	_, err := session.Definition(context.Background(), "file:///a/Main.java", types.Position{})
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = session.Hover(context.Background(), "file:///a/Main.java", types.Position{})
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = session.DocumentSymbols(context.Background(), "file:///a/Main.java")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestSessionHover(t *testing.T) {
	server, conn := newFakeServer(t)
	server.result(types.MethodHover, map[string]any{
		"contents": map[string]any{"kind": "markdown", "value": "```java\nV java.util.Map.get(Object key)\n```"},
	})
	session := newTestSession(t, server, conn, SessionOptions{})

	hover, err := session.Hover(context.Background(), "file:///a/Main.java", types.NewPosition(3, 10))
	require.NoError(t, err)
	require.NotNil(t, hover)
	require.Len(t, hover.Contents.Parts, 1)
	assert.Contains(t, hover.Contents.Parts[0].Value, "java.util.Map.get")
}

func TestSessionDocumentSymbolShapes(t *testing.T) {
	method := types.DocumentSymbol{
		Name:           "run()",
		Kind:           types.SymbolKindMethod,
		Range:          types.NewRange(types.NewPosition(2, 0), types.NewPosition(5, 1)),
		SelectionRange: types.NewRange(types.NewPosition(2, 7), types.NewPosition(2, 10)),
	}

	t.Run("hierarchical", func(t *testing.T) {
		server, conn := newFakeServer(t)
		server.result(types.MethodDocumentSymbol, []types.DocumentSymbol{{
			Name:     "Main",
			Kind:     types.SymbolKindClass,
			Range:    types.NewRange(types.NewPosition(0, 0), types.NewPosition(6, 1)),
			Children: []types.DocumentSymbol{method},
		}})
		session := newTestSession(t, server, conn, SessionOptions{})

		got, err := session.DocumentSymbols(context.Background(), "file:///a/Main.java")
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Len(t, got[0].Children, 1)
		assert.Equal(t, "run()", got[0].Children[0].Name)
	})

	t.Run("flat symbol information", func(t *testing.T) {
		server, conn := newFakeServer(t)
		server.result(types.MethodDocumentSymbol, []types.SymbolInformation{{
			Name:     "run",
			Kind:     types.SymbolKindMethod,
			Location: types.NewLocation("file:///a/Main.java", method.Range),
		}})
		session := newTestSession(t, server, conn, SessionOptions{})

		got, err := session.DocumentSymbols(context.Background(), "file:///a/Main.java")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "run", got[0].Name)
		assert.Equal(t, method.Range, got[0].Range)
		assert.Empty(t, got[0].Children)
	})
}

func TestSessionTypeHierarchy(t *testing.T) {
	tests := []struct {
		name   string
		result any
		want   []types.TypeHierarchyEntry
	}{
		{name: "null", result: nil, want: nil},
		{
			name:   "single item",
			result: map[string]any{"name": "Foo", "fullyQualifiedName": "com.example.Foo"},
			want:   []types.TypeHierarchyEntry{{Name: "Foo", FullyQualifiedName: "com.example.Foo"}},
		},
		{
			name:   "list",
			result: []map[string]any{{"name": "Foo"}, {"name": "Bar", "fullyQualifiedName": "com.example.Bar"}},
			want:   []types.TypeHierarchyEntry{{Name: "Foo"}, {Name: "Bar", FullyQualifiedName: "com.example.Bar"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, conn := newFakeServer(t)
			args := make(chan types.ExecuteCommandParams, 1)
			server.handle(types.MethodExecuteCommand, func(params json.RawMessage) (any, *types.ResponseError) {
				var p types.ExecuteCommandParams
				_ = json.Unmarshal(params, &p)
				args <- p
				return tt.result, nil
			})
			session := newTestSession(t, server, conn, SessionOptions{})

			got, err := session.TypeHierarchy(context.Background(), "file:///a/Main.java", types.NewPosition(3, 4))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			p := <-args
			assert.Equal(t, types.JavaWorkspaceCommand, p.Command)
			require.Len(t, p.Arguments, 4)
			assert.Equal(t, types.JavaResolveTypeHierarchy, p.Arguments[0])
			assert.Equal(t, "file:///a/Main.java", p.Arguments[1])
		})
	}
}

func TestSessionTypeHierarchyCommandMissing(t *testing.T) {
	server, conn := newFakeServer(t)
	session := newTestSession(t, server, conn, SessionOptions{})

	_, err := session.TypeHierarchy(context.Background(), "file:///a/Main.java", types.Position{})
	require.Error(t, err)
}

func TestSessionOpenDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Target.java")
	require.NoError(t, os.WriteFile(path, []byte("package p;\nclass Target {}\n"), 0o644))

	server, conn := newFakeServer(t)
	server.result(methodClassFileContents, "package java.util;\npublic class HashMap {}\n")
	session := newTestSession(t, server, conn, SessionOptions{})

	t.Run("file uri is read and opened once", func(t *testing.T) {
		uri := types.URIFromPath(path)
		text, err := session.OpenDocument(context.Background(), uri)
		require.NoError(t, err)
		assert.Contains(t, text, "class Target")

		server.waitNotification(t, types.DidOpenTextDocument)
		_, err = session.OpenDocument(context.Background(), uri)
		require.NoError(t, err)
		assert.Len(t, server.notifications(types.DidOpenTextDocument), 1)
	})

	t.Run("jdt uri is fetched from the server", func(t *testing.T) {
		text, err := session.OpenDocument(context.Background(), "jdt://contents/rt.jar/java.util/HashMap.class")
		require.NoError(t, err)
		assert.Contains(t, text, "package java.util;")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := session.OpenDocument(context.Background(), types.URIFromPath(filepath.Join(dir, "Nope.java")))
		require.Error(t, err)
	})
}

func TestSessionClose(t *testing.T) {
	server, conn := newFakeServer(t)
	server.result(types.MethodShutdown, nil)
	session := newTestSession(t, server, conn, SessionOptions{})

	require.NoError(t, session.Close(context.Background()))
	server.waitNotification(t, types.Exit)
	assert.Len(t, server.notifications(types.Exit), 1)
}
