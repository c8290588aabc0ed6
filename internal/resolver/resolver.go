// Package resolver infers the Java class and method under a cursor by
// chaining language server queries with text heuristics.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/spachava753/arthas-copy/internal/editor"
	"github.com/spachava753/arthas-copy/internal/lsp/types"
)

// Services are the language queries the strategies build on. Any method may
// return an error; strategies treat errors as missing data.
type Services interface {
	Definition(ctx context.Context, uri string, pos types.Position) ([]types.Location, error)
	Hover(ctx context.Context, uri string, pos types.Position) (*types.Hover, error)
	TypeHierarchy(ctx context.Context, uri string, pos types.Position) ([]types.TypeHierarchyEntry, error)
	DocumentSymbols(ctx context.Context, uri string) ([]types.DocumentSymbol, error)
	// OpenDocument returns the text of uri, making it known to the server.
	OpenDocument(ctx context.Context, uri string) (string, error)
}

// Query is the cursor a strategy resolves.
type Query struct {
	Doc *editor.Document
	Pos types.Position
}

// Strategy is one resolution attempt. It reports ok=false when it has no
// answer; err explains why for logging and never reaches the user.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, q Query) (ref MethodReference, ok bool, err error)
}

// Strategy names, in default order.
const (
	StrategyDefinition     = "definition"
	StrategyHover          = "hover"
	StrategyTypeHierarchy  = "type-hierarchy"
	StrategyDocumentSymbol = "document-symbol"
)

// DefaultOrder is the order strategies run in unless configured.
var DefaultOrder = []string{StrategyDefinition, StrategyHover, StrategyTypeHierarchy, StrategyDocumentSymbol}

// Attempt records one strategy run.
type Attempt struct {
	Strategy  string
	Reference MethodReference
	OK        bool
	Err       error
	Elapsed   time.Duration
}

// Result is the outcome of a resolution with the attempts that led to it.
type Result struct {
	Reference MethodReference
	Strategy  string
	Attempts  []Attempt
}

// OK reports whether a strategy produced a reference.
func (r Result) OK() bool {
	return r.Strategy != ""
}

// Resolver runs strategies in order and keeps the first success.
type Resolver struct {
	strategies []Strategy
	logger     *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger strategy failures are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// WithStrategies replaces the strategy chain.
func WithStrategies(s ...Strategy) Option {
	return func(r *Resolver) { r.strategies = s }
}

// New returns a resolver running the default chain against services.
func New(services Services, opts ...Option) *Resolver {
	r := &Resolver{logger: slog.Default()}
	r.strategies, _ = StrategiesByName(services, DefaultOrder)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// StrategiesByName builds the named strategies in the given order.
func StrategiesByName(services Services, names []string) ([]Strategy, error) {
	out := make([]Strategy, 0, len(names))
	for _, name := range names {
		switch name {
		case StrategyDefinition:
			out = append(out, &DefinitionStrategy{Services: services})
		case StrategyHover:
			out = append(out, &HoverStrategy{Services: services})
		case StrategyTypeHierarchy:
			out = append(out, &TypeHierarchyStrategy{Services: services})
		case StrategyDocumentSymbol:
			out = append(out, &DocumentSymbolStrategy{Services: services})
		default:
			return nil, fmt.Errorf("unknown strategy %q", name)
		}
	}
	return out, nil
}

// Resolve returns the first reference any strategy produces. It never fails
// loudly: strategy errors and panics are logged and skipped.
func (r *Resolver) Resolve(ctx context.Context, doc *editor.Document, pos types.Position) (MethodReference, bool) {
	res := r.run(ctx, Query{Doc: doc, Pos: pos}, false)
	return res.Reference, res.OK()
}

// Explain runs every strategy, recording each outcome. The reported
// reference is the one Resolve would return.
func (r *Resolver) Explain(ctx context.Context, doc *editor.Document, pos types.Position) Result {
	return r.run(ctx, Query{Doc: doc, Pos: pos}, true)
}

func (r *Resolver) run(ctx context.Context, q Query, all bool) Result {
	var res Result
	for _, s := range r.strategies {
		if ctx.Err() != nil {
			res.Attempts = append(res.Attempts, Attempt{Strategy: s.Name(), Err: ctx.Err()})
			break
		}

		start := time.Now()
		ref, ok, err := attempt(ctx, s, q)
		a := Attempt{Strategy: s.Name(), Reference: ref, OK: ok, Err: err, Elapsed: time.Since(start)}
		res.Attempts = append(res.Attempts, a)

		if !ok {
			r.logger.Debug("strategy produced nothing", "strategy", s.Name(), "error", err, "elapsed", a.Elapsed)
			continue
		}
		r.logger.Debug("strategy resolved method", "strategy", s.Name(), "class", ref.FullClassName, "method", ref.MethodName)
		if !res.OK() {
			res.Reference = ref
			res.Strategy = s.Name()
		}
		if !all {
			break
		}
	}
	return res
}

var errPanic = errors.New("strategy panicked")

// attempt runs s, turning panics and incomplete references into misses.
func attempt(ctx context.Context, s Strategy, q Query) (ref MethodReference, ok bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			ref, ok = MethodReference{}, false
			err = fmt.Errorf("%w: %v\n%s", errPanic, p, debug.Stack())
		}
	}()

	ref, ok, err = s.Resolve(ctx, q)
	if ok && !ref.Valid() {
		return ref, false, fmt.Errorf("incomplete reference %q", ref.String())
	}
	return ref, ok, err
}
