package resolver

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/spachava753/arthas-copy/internal/lsp/types"
)

// HoverText flattens hover contents to plain text, one part per line.
// Markdown parts are reduced to their literal text: code blocks and code
// spans keep their content, links keep their label and lose their target.
func HoverText(h *types.Hover) string {
	if h == nil {
		return ""
	}
	parts := make([]string, 0, len(h.Contents.Parts))
	for _, p := range h.Contents.Parts {
		if p.IsMarkdown() {
			parts = append(parts, flattenMarkdown(p.Value))
			continue
		}
		parts = append(parts, p.Value)
	}
	return strings.Join(parts, "\n")
}

func flattenMarkdown(md string) string {
	src := []byte(md)
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))

	var b strings.Builder
	newline := func() {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteByte('\n')
		}
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if entering {
				newline()
				lines := node.Lines()
				for i := 0; i < lines.Len(); i++ {
					seg := lines.At(i)
					b.Write(seg.Value(src))
				}
				newline()
			}
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			if entering {
				b.Write(node.Segment.Value(src))
				if node.SoftLineBreak() || node.HardLineBreak() {
					b.WriteByte('\n')
				}
			}
		case *ast.String:
			if entering {
				b.Write(node.Value)
			}
		case *ast.AutoLink:
			if entering {
				b.Write(node.Label(src))
			}
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.Heading, *ast.ListItem, *ast.ThematicBreak:
			newline()
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
