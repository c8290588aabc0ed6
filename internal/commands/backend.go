package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spachava753/arthas-copy/internal/editor"
	"github.com/spachava753/arthas-copy/internal/javasyntax"
	"github.com/spachava753/arthas-copy/internal/lsp"
	"github.com/spachava753/arthas-copy/internal/resolver"
)

// Services are language services opened for one invocation.
type Services interface {
	resolver.Services
	Close(ctx context.Context) error
}

// Connector opens language services with doc already known to them.
type Connector interface {
	// Check fails with lsp.ErrServerNotInstalled when no server can be found.
	Check() error
	Connect(ctx context.Context, doc *editor.Document) (Services, error)
}

// LSPConnector starts or dials a Java language server.
type LSPConnector struct {
	Launcher       *lsp.Launcher
	Session        lsp.SessionOptions
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// Check implements Connector.
func (c *LSPConnector) Check() error {
	return c.Launcher.Check()
}

// Connect implements Connector.
func (c *LSPConnector) Connect(ctx context.Context, doc *editor.Document) (Services, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := c.Launcher.Start(ctx)
	if err != nil {
		return nil, fmt.Errorf("starting language server: %w", err)
	}

	opts := []lsp.ClientOption{lsp.WithLogger(logger)}
	if c.RequestTimeout > 0 {
		opts = append(opts, lsp.WithRequestTimeout(c.RequestTimeout))
	}
	client := lsp.NewClient(conn, opts...)

	sessionOpts := c.Session
	sessionOpts.Logger = logger
	session, err := lsp.NewSession(ctx, client, sessionOpts)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("initializing language server: %w", err), client.Close())
	}
	if err := session.Open(doc.URI, doc.LanguageID, doc.Text); err != nil {
		return nil, errors.Join(fmt.Errorf("opening %s: %w", doc.Path, err), session.Close(ctx))
	}
	return session, nil
}

// TreeSitterConnector parses documents locally.
type TreeSitterConnector struct {
	Logger *slog.Logger
}

// Check implements Connector. The parser is built in.
func (c *TreeSitterConnector) Check() error { return nil }

// Connect implements Connector.
func (c *TreeSitterConnector) Connect(_ context.Context, doc *editor.Document) (Services, error) {
	b, err := javasyntax.New(c.Logger)
	if err != nil {
		return nil, err
	}
	b.Open(doc.URI, doc.Text)
	return treeSitterServices{b}, nil
}

type treeSitterServices struct {
	*javasyntax.Backend
}

func (s treeSitterServices) Close(context.Context) error {
	return s.Backend.Close()
}
