package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spachava753/arthas-copy/internal/javasrc"
	"github.com/spachava753/arthas-copy/internal/lsp/types"
	"github.com/spachava753/arthas-copy/internal/symbols"
)

// DefinitionStrategy resolves the call under the cursor through
// go-to-definition, with Map shortcuts before the query and line based
// guesses after it.
type DefinitionStrategy struct {
	Services Services
}

// Name implements Strategy.
func (s *DefinitionStrategy) Name() string { return StrategyDefinition }

// Resolve implements Strategy.
func (s *DefinitionStrategy) Resolve(ctx context.Context, q Query) (MethodReference, bool, error) {
	line := q.Doc.LineAt(int(q.Pos.Line))
	call := AnalyzeCall(q.Doc.Split(q.Pos))

	if call.InCall && mapFastPathMethods[call.Callee] {
		if recv := receiverOf(line, call.Callee); recv != "" && declaredAsMap(q.Doc.Text, recv) {
			return MethodReference{FullClassName: HashMapClass, MethodName: call.Callee}, true, nil
		}
		if looksLikeMapCall(line) {
			return MethodReference{FullClassName: HashMapClass, MethodName: call.Callee}, true, nil
		}
	}

	var errs []error
	defs, err := s.Services.Definition(ctx, q.Doc.URI, q.Pos)
	if err != nil {
		errs = append(errs, fmt.Errorf("definition: %w", err))
	}
	if len(defs) > 0 {
		ref, ok, err := s.fromTarget(ctx, defs[0], call)
		if ok {
			return ref, true, nil
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	if call.InCall {
		if ref, ok := guessFromLine(q.Doc.Text, line, call.Callee); ok {
			return ref, true, nil
		}
	}
	if len(errs) == 0 {
		return MethodReference{}, false, errors.New("no definition matched")
	}
	return MethodReference{}, false, errors.Join(errs...)
}

// fromTarget reads the method declared at the definition target. Map,
// HashMap and AbstractMap sources are reported as java.util.HashMap.
func (s *DefinitionStrategy) fromTarget(ctx context.Context, target types.Location, call CallSite) (MethodReference, bool, error) {
	mapSource := IsMapSource(target.URI)
	if mapSource && call.InCall {
		return MethodReference{FullClassName: HashMapClass, MethodName: call.Callee}, true, nil
	}

	text, err := s.Services.OpenDocument(ctx, target.URI)
	if err != nil {
		return MethodReference{}, false, fmt.Errorf("opening definition target: %w", err)
	}

	var errs []error
	tree, err := s.Services.DocumentSymbols(ctx, target.URI)
	if err != nil {
		errs = append(errs, fmt.Errorf("definition target symbols: %w", err))
	}
	if sym := symbols.FindMethodAt(tree, target.Range.Start); sym != nil {
		name := symbols.StripParams(sym.Name)
		if mapSource {
			return MethodReference{FullClassName: HashMapClass, MethodName: name}, true, nil
		}
		if class, ok := javasrc.ExtractFullClassName(text); ok {
			return MethodReference{FullClassName: class, MethodName: name}, true, nil
		}
	}

	// The symbol tree did not help: read the declaration line itself and
	// take the class name from the file name.
	declLine := lineOf(text, int(target.Range.Start.Line))
	name, ok := javasrc.MethodNameFromSignature(declLine)
	if !ok {
		errs = append(errs, fmt.Errorf("no method declaration on line %d of %s", target.Range.Start.Line+1, target.URI))
		return MethodReference{}, false, errors.Join(errs...)
	}
	pkg, ok := javasrc.ExtractPackage(text)
	if !ok {
		errs = append(errs, fmt.Errorf("no package declaration in %s", target.URI))
		return MethodReference{}, false, errors.Join(errs...)
	}
	if mapSource {
		return MethodReference{FullClassName: HashMapClass, MethodName: name}, true, nil
	}
	return MethodReference{FullClassName: pkg + "." + javasrc.BaseName(target.URI), MethodName: name}, true, nil
}

func lineOf(text string, n int) string {
	for i := 0; i < n; i++ {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			return ""
		}
		text = text[idx+1:]
	}
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSuffix(text, "\r")
}

// guessFromLine infers the target of a call from the call line alone.
func guessFromLine(text, line, callee string) (MethodReference, bool) {
	if mapLineMethods[callee] && !nonMapCallRe.MatchString(line) {
		return MethodReference{FullClassName: HashMapClass, MethodName: callee}, true
	}

	if recv := qualifiedReceiver(line, callee); recv != "" && recv != "this" && recv != "super" {
		if class, ok := BucketCollection(recv); ok {
			return MethodReference{FullClassName: class, MethodName: callee}, true
		}
		if looksLikeType(recv) && !strings.Contains(recv, ".") {
			if class, ok := javasrc.ResolveImported(text, recv); ok {
				return MethodReference{FullClassName: class, MethodName: callee}, true
			}
		}
	}

	if strings.Contains(line, "this."+callee) {
		if class, ok := javasrc.ExtractFullClassName(text); ok {
			return MethodReference{FullClassName: class, MethodName: callee}, true
		}
	}
	return MethodReference{}, false
}
