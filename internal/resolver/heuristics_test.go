package resolver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spachava753/arthas-copy/internal/lsp/types"
)

func TestAnalyzeCall(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
		want   CallSite
	}{
		{"inside arguments", "  map.get(", "key);", CallSite{Callee: "get", InCall: true}},
		{"after first argument", "  map.put(k, ", "v);", CallSite{Callee: "put", InCall: true}},
		{"nested call in arguments", "  map.put(key(a), ", "v);", CallSite{Callee: "put", InCall: true}},
		{"on identifier", "  helper.comp", "ute(1);", CallSite{Callee: "comp"}},
		{"empty parens", "  list.size(", ");", CallSite{Callee: "size", InCall: true}},
		{"no identifier", "  x = (", "", CallSite{}},
		{"unterminated", "  map.get(", "key", CallSite{Callee: "get"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnalyzeCall(tt.before, tt.after))
		})
	}
}

func TestBucketCollection(t *testing.T) {
	tests := []struct {
		receiver string
		want     string
		ok       bool
	}{
		{"userMap", HashMapClass, true},
		{"ConcurrentHashMap", HashMapClass, true},
		{"ArrayList", ListClass, true},
		{"idSet", SetClass, true},
		{"Collections", "", false},
		{"helper", "", false},
	}
	for _, tt := range tests {
		got, ok := BucketCollection(tt.receiver)
		assert.Equal(t, tt.ok, ok, tt.receiver)
		assert.Equal(t, tt.want, got, tt.receiver)
	}
}

func TestIsMapSource(t *testing.T) {
	assert.True(t, IsMapSource("file:///jdk/src/java/util/HashMap.java"))
	assert.True(t, IsMapSource("jdt://contents/rt.jar/java.util/AbstractMap.class?=rt"))
	assert.True(t, IsMapSource(`C:\jdk\java\util\Map.java`))
	assert.False(t, IsMapSource("file:///src/com/example/TreeMapper.java"))
	assert.False(t, IsMapSource("file:///src/com/example/SortedMap.java"))
}

func TestDeclaredAsMap(t *testing.T) {
	text := "Map<String, List<Integer>> index = new HashMap<>();\nString name = \"x\";"
	assert.True(t, declaredAsMap(text, "index"))
	assert.False(t, declaredAsMap(text, "name"))
	assert.False(t, declaredAsMap(text, "ind"))
}

func TestLooksLikeMapCall(t *testing.T) {
	assert.True(t, looksLikeMapCall("cache.get(key);"))
	assert.True(t, looksLikeMapCall("registry.remove(id)"))
	assert.False(t, looksLikeMapCall("List.get(0)"))
	assert.False(t, looksLikeMapCall("cache.load(key)"))
}

func TestReceivers(t *testing.T) {
	assert.Equal(t, "counts", receiverOf("  counts . get(id);", "get"))
	assert.Equal(t, "", receiverOf("  get(id);", "get"))
	assert.Equal(t, "java.util.Collections", qualifiedReceiver("java.util.Collections.sort(xs);", "sort"))
	assert.Equal(t, "", qualifiedReceiver("sort(xs);", "sort"))
	assert.True(t, looksLikeType("Collections"))
	assert.False(t, looksLikeType("helper"))
	assert.False(t, looksLikeType(""))
}

func TestHoverText(t *testing.T) {
	tests := []struct {
		name  string
		hover *types.Hover
		want  string
	}{
		{name: "nil", hover: nil, want: ""},
		{
			name: "plain parts joined",
			hover: &types.Hover{Contents: types.HoverContents{Parts: []types.MarkupContent{
				{Kind: types.PlainText, Value: "int size()"},
				{Kind: types.PlainText, Value: "Returns the size"},
			}}},
			want: "int size()\nReturns the size",
		},
		{
			name:  "markdown code and link",
			hover: markdownHover("```java\nV java.util.Map.get(Object key)\n```\nSee [docs](https://example.com) and `key`."),
			want:  "V java.util.Map.get(Object key)\nSee docs and key.",
		},
		{
			name:  "html dropped",
			hover: markdownHover("<div>\nbold\n</div>\n\ntext"),
			want:  "text",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HoverText(tt.hover))
		})
	}
}

func TestHoverTextFlattensBareStrings(t *testing.T) {
	var hover types.Hover
	raw := `{"contents":[{"language":"java","value":"Order find(String id)"},"Looks up an *open* [Order](jdt://contents/Order.class) by id."]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &hover))
	assert.Equal(t, "Order find(String id)\nLooks up an open Order by id.", HoverText(&hover))
}
