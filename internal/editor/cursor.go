package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spachava753/arthas-copy/internal/lsp/types"
)

// Cursor is a 1-based line and column as shown by editors.
type Cursor struct {
	Line   int
	Column int
}

// Position converts the cursor to a zero-based LSP position.
func (c Cursor) Position() types.Position {
	line, col := c.Line-1, c.Column-1
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	return types.NewPosition(uint32(line), uint32(col))
}

func (c Cursor) String() string {
	return fmt.Sprintf("%d:%d", c.Line, c.Column)
}

// ParseLocation splits an editor location such as "src/Foo.java:12:8" into a
// path and a cursor. Missing line or column parts fall back to def. An
// empty argument returns def unchecked so callers can report the missing
// document first.
func ParseLocation(arg string, def Cursor) (string, Cursor, error) {
	if arg == "" {
		return "", def, nil
	}
	cur := def

	// Split from the right so that Windows drive letters survive.
	parts := strings.Split(arg, ":")
	var nums []int
	for len(parts) > 1 && len(nums) < 2 {
		last := parts[len(parts)-1]
		n, err := strconv.Atoi(last)
		if err != nil {
			break
		}
		nums = append([]int{n}, nums...)
		parts = parts[:len(parts)-1]
	}
	path := strings.Join(parts, ":")

	switch len(nums) {
	case 2:
		cur = Cursor{Line: nums[0], Column: nums[1]}
	case 1:
		cur = Cursor{Line: nums[0], Column: def.Column}
	}

	if cur.Line < 1 {
		return "", Cursor{}, fmt.Errorf("invalid line %d in %q: lines start at 1", cur.Line, arg)
	}
	if cur.Column < 1 {
		return "", Cursor{}, fmt.Errorf("invalid column %d in %q: columns start at 1", cur.Column, arg)
	}
	return path, cur, nil
}
