package resolver

import (
	"context"
	"errors"
	"fmt"
)

// TypeHierarchyStrategy asks the server for the type at the cursor and
// pairs it with the first call on the cursor line. The command is optional
// in JDT LS builds, so its absence is an ordinary miss.
type TypeHierarchyStrategy struct {
	Services Services
}

// Name implements Strategy.
func (s *TypeHierarchyStrategy) Name() string { return StrategyTypeHierarchy }

// Resolve implements Strategy.
func (s *TypeHierarchyStrategy) Resolve(ctx context.Context, q Query) (MethodReference, bool, error) {
	entries, err := s.Services.TypeHierarchy(ctx, q.Doc.URI, q.Pos)
	if err != nil {
		return MethodReference{}, false, fmt.Errorf("type hierarchy unavailable: %w", err)
	}

	var class string
	for _, e := range entries {
		if e.FullyQualifiedName != "" {
			class = e.FullyQualifiedName
			break
		}
	}
	if class == "" {
		return MethodReference{}, false, errors.New("no fully qualified type in hierarchy")
	}

	m := lineMethodRe.FindStringSubmatch(q.Doc.LineAt(int(q.Pos.Line)))
	if m == nil {
		return MethodReference{}, false, errors.New("no call on cursor line")
	}
	return MethodReference{FullClassName: class, MethodName: m[1]}, true, nil
}
