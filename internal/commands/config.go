package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spachava753/arthas-copy/internal/arthas"
	"github.com/spachava753/arthas-copy/internal/config"
)

// ConfigLintOptions contains parameters for config validation
type ConfigLintOptions struct {
	Config *config.Config
	// Path is the file the config came from, empty for defaults
	Path   string
	Writer io.Writer
}

// ConfigLint reports a loaded configuration
func ConfigLint(ctx context.Context, opts ConfigLintOptions) error {
	// Config is already loaded and validated, just report the results
	cfg := opts.Config
	if opts.Path == "" {
		fmt.Fprintln(opts.Writer, "No configuration file found, using defaults")
	} else {
		fmt.Fprintf(opts.Writer, "✓ Configuration is valid: %s\n", opts.Path)
	}
	fmt.Fprintf(opts.Writer, "  Backend: %s\n", cfg.Backend)
	fmt.Fprintf(opts.Writer, "  Strategies: %s\n", strings.Join(cfg.Strategies, ", "))

	formatter, err := arthas.NewFormatter(cfg.Templates)
	if err != nil {
		return err
	}
	fmt.Fprintf(opts.Writer, "  Modes: %s\n", strings.Join(formatter.Modes(), ", "))

	if !cfg.ClipboardEnabled() {
		fmt.Fprintln(opts.Writer, "  Clipboard: disabled")
	}
	return nil
}
