package javasyntax

import (
	"strings"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/spachava753/arthas-copy/internal/lsp/types"
)

var typeKinds = map[string]types.SymbolKind{
	"class_declaration":           types.SymbolKindClass,
	"record_declaration":          types.SymbolKindClass,
	"interface_declaration":       types.SymbolKindInterface,
	"annotation_type_declaration": types.SymbolKindInterface,
	"enum_declaration":            types.SymbolKindEnum,
}

// source maps tree-sitter byte columns to the character columns used in
// positions.
type source struct {
	src   []byte
	lines []int // byte offset of each line start
}

func newSource(src []byte) *source {
	s := &source{src: src, lines: []int{0}}
	for i, c := range src {
		if c == '\n' {
			s.lines = append(s.lines, i+1)
		}
	}
	return s
}

func (s *source) position(p sitter.Point) types.Position {
	if int(p.Row) >= len(s.lines) {
		return types.NewPosition(uint32(p.Row), uint32(p.Column))
	}
	start := s.lines[p.Row]
	end := min(start+int(p.Column), len(s.src))
	return types.NewPosition(uint32(p.Row), uint32(utf8.RuneCount(s.src[start:end])))
}

func (s *source) rangeOf(n *sitter.Node) types.Range {
	return types.NewRange(s.position(n.StartPosition()), s.position(n.EndPosition()))
}

func (s *source) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(s.src)
}

// collect returns the symbols declared beneath n.
func collect(n *sitter.Node, s *source) []types.DocumentSymbol {
	var out []types.DocumentSymbol
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		out = append(out, symbolsOf(child, s)...)
	}
	return out
}

func symbolsOf(n *sitter.Node, s *source) []types.DocumentSymbol {
	kind := n.Kind()
	if k, ok := typeKinds[kind]; ok {
		return []types.DocumentSymbol{declared(n, s, s.text(n.ChildByFieldName("name")), k)}
	}

	switch kind {
	case "method_declaration":
		name := s.text(n.ChildByFieldName("name")) + "(" + strings.Join(parameterTypes(n, s), ", ") + ")"
		return []types.DocumentSymbol{declared(n, s, name, types.SymbolKindMethod)}
	case "constructor_declaration", "compact_constructor_declaration":
		name := s.text(n.ChildByFieldName("name")) + "(" + strings.Join(parameterTypes(n, s), ", ") + ")"
		return []types.DocumentSymbol{declared(n, s, name, types.SymbolKindConstructor)}
	case "object_creation_expression":
		body := childOfKind(n, "class_body")
		if body == nil {
			break
		}
		sym := types.DocumentSymbol{
			Name:           "new " + s.text(n.ChildByFieldName("type")) + "() {...}",
			Kind:           types.SymbolKindClass,
			Range:          s.rangeOf(n),
			SelectionRange: s.rangeOf(n),
			Children:       collect(body, s),
		}
		// arguments may hold further declarations
		if args := n.ChildByFieldName("arguments"); args != nil {
			return append(collect(args, s), sym)
		}
		return []types.DocumentSymbol{sym}
	case "field_declaration", "constant_declaration":
		var fields []types.DocumentSymbol
		for i := uint(0); i < n.NamedChildCount(); i++ {
			d := n.NamedChild(i)
			if d == nil || d.Kind() != "variable_declarator" {
				continue
			}
			nameNode := d.ChildByFieldName("name")
			fields = append(fields, types.DocumentSymbol{
				Name:           s.text(nameNode),
				Kind:           types.SymbolKindField,
				Range:          s.rangeOf(d),
				SelectionRange: s.rangeOf(nameNode),
				Children:       collect(d, s),
			})
		}
		return fields
	case "enum_constant":
		nameNode := n.ChildByFieldName("name")
		sym := types.DocumentSymbol{
			Name:           s.text(nameNode),
			Kind:           types.SymbolKindEnumMember,
			Range:          s.rangeOf(n),
			SelectionRange: s.rangeOf(nameNode),
		}
		if body := n.ChildByFieldName("body"); body != nil {
			sym.Children = collect(body, s)
		}
		return []types.DocumentSymbol{sym}
	}
	return collect(n, s)
}

func declared(n *sitter.Node, s *source, name string, kind types.SymbolKind) types.DocumentSymbol {
	sel := s.rangeOf(n)
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		sel = s.rangeOf(nameNode)
	}
	return types.DocumentSymbol{
		Name:           name,
		Kind:           kind,
		Range:          s.rangeOf(n),
		SelectionRange: sel,
		Children:       collect(n, s),
	}
}

// parameterTypes lists the declared parameter types of a method or
// constructor with type arguments erased.
func parameterTypes(n *sitter.Node, s *source) []string {
	params := n.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	var out []string
	for i := uint(0); i < params.NamedChildCount(); i++ {
		p := params.NamedChild(i)
		if p == nil {
			continue
		}
		switch p.Kind() {
		case "formal_parameter":
			out = append(out, eraseGenerics(s.text(p.ChildByFieldName("type"))))
		case "spread_parameter":
			for j := uint(0); j < p.NamedChildCount(); j++ {
				c := p.NamedChild(j)
				if c == nil || c.Kind() == "modifiers" || c.Kind() == "variable_declarator" {
					continue
				}
				out = append(out, eraseGenerics(s.text(c))+"...")
				break
			}
		}
	}
	return out
}

func eraseGenerics(t string) string {
	var b strings.Builder
	depth := 0
	for _, r := range t {
		switch {
		case r == '<':
			depth++
		case r == '>':
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func childOfKind(n *sitter.Node, kind string) *sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if c := n.NamedChild(i); c != nil && c.Kind() == kind {
			return c
		}
	}
	return nil
}
