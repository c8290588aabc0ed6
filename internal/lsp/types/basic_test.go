package types

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeContainsIsInclusive(t *testing.T) {
	r := NewRange(NewPosition(2, 4), NewPosition(5, 1))

	tests := []struct {
		name string
		pos  Position
		want bool
	}{
		{name: "start", pos: NewPosition(2, 4), want: true},
		{name: "end", pos: NewPosition(5, 1), want: true},
		{name: "middle", pos: NewPosition(3, 0), want: true},
		{name: "before start on same line", pos: NewPosition(2, 3), want: false},
		{name: "after end on same line", pos: NewPosition(5, 2), want: false},
		{name: "earlier line", pos: NewPosition(1, 10), want: false},
		{name: "later line", pos: NewPosition(6, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.pos))
		})
	}
}

func TestURIRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src", "My Class.java")
	uri := URIFromPath(path)
	assert.Contains(t, uri, "file://")
	assert.Contains(t, uri, "My%20Class.java")
	assert.Equal(t, path, PathFromURI(uri))

	jdt := "jdt://contents/rt.jar/java.util/HashMap.class?=foo"
	assert.Equal(t, jdt, PathFromURI(jdt))
}
