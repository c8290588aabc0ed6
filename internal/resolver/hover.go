package resolver

import (
	"context"
	"errors"
	"strings"

	"github.com/spachava753/arthas-copy/internal/javasrc"
)

// HoverStrategy reads the method out of the hover text at the cursor.
type HoverStrategy struct {
	Services Services
}

// Name implements Strategy.
func (s *HoverStrategy) Name() string { return StrategyHover }

// Resolve implements Strategy.
func (s *HoverStrategy) Resolve(ctx context.Context, q Query) (MethodReference, bool, error) {
	hover, err := s.Services.Hover(ctx, q.Doc.URI, q.Pos)
	if err != nil {
		return MethodReference{}, false, err
	}
	text := HoverText(hover)
	if strings.TrimSpace(text) == "" {
		return MethodReference{}, false, errors.New("empty hover")
	}
	return fromHoverText(text, q.Doc.Text)
}

func fromHoverText(hover, docText string) (MethodReference, bool, error) {
	if strings.Contains(hover, "Map") {
		if m := hoverMapMethodRe.FindStringSubmatch(hover); m != nil {
			return MethodReference{FullClassName: HashMapClass, MethodName: m[1]}, true, nil
		}
	}

	// Lombok accessors have no source declaration, so they belong to the
	// class being edited.
	if hasLombokMarker(hover) {
		if m := hoverMethodRe.FindStringSubmatch(hover); m != nil {
			if class, ok := javasrc.ExtractFullClassName(docText); ok {
				return MethodReference{FullClassName: class, MethodName: m[1]}, true, nil
			}
		}
	}

	m := hoverMethodRe.FindStringSubmatch(hover)
	if m == nil {
		return MethodReference{}, false, errors.New("no method call in hover")
	}
	if cm := hoverClassRe.FindStringSubmatch(hover); cm != nil && cm[1] != "" {
		return MethodReference{FullClassName: cm[1], MethodName: m[1]}, true, nil
	}
	if class, ok := javasrc.ExtractFullClassName(docText); ok {
		return MethodReference{FullClassName: class, MethodName: m[1]}, true, nil
	}
	return MethodReference{}, false, errors.New("no class name for hover method")
}
