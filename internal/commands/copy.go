package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spachava753/arthas-copy/internal/arthas"
	"github.com/spachava753/arthas-copy/internal/clipboard"
	"github.com/spachava753/arthas-copy/internal/editor"
	"github.com/spachava753/arthas-copy/internal/javasrc"
	"github.com/spachava753/arthas-copy/internal/resolver"
)

// CommandOptions contains parameters for building one Arthas command
type CommandOptions struct {
	// Mode is watch, jad or a configured template name
	Mode string
	// Path is the Java source file. Empty means no file is open.
	Path   string
	Cursor editor.Cursor
	// Formatter renders the command. Nil means built-in modes only.
	Formatter *arthas.Formatter
	// Connector opens language services. Only used for modes that need a
	// method.
	Connector Connector
	// Strategies names the resolution strategies in order. Empty means
	// the default order.
	Strategies []string
	Logger     *slog.Logger
}

func (o CommandOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o CommandOptions) formatter() (*arthas.Formatter, error) {
	if o.Formatter != nil {
		return o.Formatter, nil
	}
	return arthas.NewFormatter(nil)
}

// BuildCommand loads the document, resolves what the mode needs and
// formats the command. Errors map to user messages through UserMessage.
func BuildCommand(ctx context.Context, opts CommandOptions) (string, error) {
	formatter, err := opts.formatter()
	if err != nil {
		return "", err
	}
	if !formatter.Has(opts.Mode) {
		return "", fmt.Errorf("%w: %s", arthas.ErrUnknownMode, opts.Mode)
	}

	doc, err := loadJava(opts.Path)
	if err != nil {
		return "", err
	}

	if !formatter.NeedsMethod(opts.Mode) {
		class, ok := javasrc.ExtractFullClassName(doc.Text)
		if !ok {
			return "", ErrClassNotRecognized
		}
		return formatter.Format(opts.Mode, resolver.MethodReference{FullClassName: class})
	}

	var ref resolver.MethodReference
	var ok bool
	err = withResolver(ctx, opts, doc, func(r *resolver.Resolver) {
		ref, ok = r.Resolve(ctx, doc, opts.Cursor.Position())
	})
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrMethodNotRecognized
	}
	return formatter.Format(opts.Mode, ref)
}

func loadJava(path string) (*editor.Document, error) {
	doc, err := editor.Load(path)
	if err != nil {
		return nil, err
	}
	if !doc.IsJava() {
		return nil, editor.ErrNotJava
	}
	return doc, nil
}

// withResolver opens language services for doc and runs fn with a resolver
// over them. A server that is not installed is an error; one that fails to
// start only leaves the method unrecognized.
func withResolver(ctx context.Context, opts CommandOptions, doc *editor.Document, fn func(*resolver.Resolver)) error {
	logger := opts.logger()
	if opts.Connector == nil {
		return fmt.Errorf("no language services configured")
	}
	if err := opts.Connector.Check(); err != nil {
		return err
	}

	names := opts.Strategies
	if len(names) == 0 {
		names = resolver.DefaultOrder
	}

	services, err := opts.Connector.Connect(ctx, doc)
	if err != nil {
		logger.Warn("language services failed to start", "error", err)
		return ErrMethodNotRecognized
	}
	defer func() {
		if err := services.Close(context.WithoutCancel(ctx)); err != nil {
			logger.Debug("closing language services", "error", err)
		}
	}()

	strategies, err := resolver.StrategiesByName(services, names)
	if err != nil {
		return err
	}
	fn(resolver.New(services, resolver.WithLogger(logger), resolver.WithStrategies(strategies...)))
	return nil
}

// CopyOptions contains parameters for the copy commands
type CopyOptions struct {
	CommandOptions
	Clipboard clipboard.Writer
	Notifier  editor.Notifier
}

// Copy builds the command for opts.Mode and writes it to the clipboard.
// Every invocation shows exactly one message: an error, or the copied
// command after exactly one clipboard write. Returned errors have already
// been shown.
func Copy(ctx context.Context, opts CopyOptions) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%v", p)
			opts.logger().Error("copy command panicked", "panic", p)
			opts.Notifier.Error(UserMessage(err))
			err = &reportedError{err}
		}
	}()

	command, err := BuildCommand(ctx, opts.CommandOptions)
	if err != nil {
		opts.logger().Debug("command not built", "mode", opts.Mode, "error", err)
		opts.Notifier.Error(UserMessage(err))
		return &reportedError{err}
	}

	if err := opts.Clipboard.WriteText(command); err != nil {
		opts.Notifier.Error(UserMessage(err))
		return &reportedError{err}
	}
	opts.Notifier.Info(fmt.Sprintf("Arthas %s command copied: %s", opts.Mode, command))
	return nil
}
