package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/cobra"

	"github.com/spachava753/arthas-copy/internal/arthas"
	"github.com/spachava753/arthas-copy/internal/commands"
	"github.com/spachava753/arthas-copy/internal/config"
	"github.com/spachava753/arthas-copy/internal/editor"
	"github.com/spachava753/arthas-copy/internal/lsp"
	"github.com/spachava753/arthas-copy/internal/version"
)

var (
	configPath string
	backend    string
	line       int
	column     int
	printOnly  bool
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "arthas-copy",
	Short: "Build Arthas commands for the Java method under a cursor",
	Long: `arthas-copy finds the Java class and method at a cursor position and
builds the matching Arthas watch or jad command, copying it to the clipboard.

Methods are resolved through the Eclipse JDT Language Server (jdtls), or with
the built-in tree-sitter parser when the backend is set to treesitter.`,
	Version:       version.Get(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Listen for cancellation
	// - in shells for user-initiated interruption SIGINT
	// - in system sent/container environments, SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !commands.IsReported(err) {
			fmt.Fprintln(os.Stderr, commands.UserMessage(err))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file (default: ./arthas-copy.yaml or the user config directory)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Resolution backend: lsp or treesitter (overrides the configuration)")
	rootCmd.PersistentFlags().IntVarP(&line, "line", "l", 1, "1-based cursor line, unless given as file:line:column")
	rootCmd.PersistentFlags().IntVarP(&column, "column", "c", 1, "1-based cursor column, unless given as file:line:column")
	rootCmd.PersistentFlags().BoolVarP(&printOnly, "print", "p", false, "Print the command instead of copying it to the clipboard")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log resolution details to stderr")
}

// loadConfig loads the configuration and applies flag overrides
func loadConfig() (*config.Config, string, error) {
	cfg, path, err := config.Load(configPath)
	if err != nil {
		return nil, "", err
	}
	if backend != "" {
		if backend != config.BackendLSP && backend != config.BackendTreeSitter {
			return nil, "", fmt.Errorf("invalid --backend %q: must be %s or %s", backend, config.BackendLSP, config.BackendTreeSitter)
		}
		cfg.Backend = backend
	}
	return cfg, path, nil
}

// newLogger returns a stderr logger tagged with a fresh invocation id
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level := cfg.LogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("invocation", gonanoid.Must(8)))
}

// newConnector builds the language services for the configured backend
func newConnector(cfg *config.Config, logger *slog.Logger) (commands.Connector, error) {
	if cfg.Backend == config.BackendTreeSitter {
		return &commands.TreeSitterConnector{Logger: logger}, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	session, err := cfg.LanguageServer.Session(wd, logger)
	if err != nil {
		return nil, err
	}
	return &commands.LSPConnector{
		Launcher:       lsp.NewLauncher(cfg.LanguageServer.Launcher(session.RootDir), logger),
		Session:        session,
		RequestTimeout: cfg.LanguageServer.Timeout(),
		Logger:         logger,
	}, nil
}

// commandOptions assembles everything a mode needs except the document
func commandOptions(cmd *cobra.Command, mode string) (commands.CommandOptions, *config.Config, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return commands.CommandOptions{}, nil, err
	}
	logger := newLogger(cfg, cmd.ErrOrStderr())
	formatter, err := arthas.NewFormatter(cfg.Templates)
	if err != nil {
		return commands.CommandOptions{}, nil, err
	}
	connector, err := newConnector(cfg, logger)
	if err != nil {
		return commands.CommandOptions{}, nil, err
	}
	return commands.CommandOptions{
		Mode:       mode,
		Formatter:  formatter,
		Connector:  connector,
		Strategies: cfg.Strategies,
		Logger:     logger,
	}, cfg, nil
}

// location reads the document and cursor from args and the cursor flags
func location(cmd *cobra.Command, args []string) (string, editor.Cursor, error) {
	def := editor.Cursor{Line: line, Column: column}
	if len(args) == 0 {
		return "", def, nil
	}
	path, cur, err := editor.ParseLocation(args[0], def)
	if err != nil {
		return "", editor.Cursor{}, err
	}
	// Explicit flags win over the location suffix.
	if cmd.Flags().Changed("line") {
		cur.Line = line
	}
	if cmd.Flags().Changed("column") {
		cur.Column = column
	}
	return path, cur, nil
}

// messenger writes to the command's streams, styled only on a real terminal
func messenger(cmd *cobra.Command) *editor.Messenger {
	m := editor.NewMessenger()
	m.Out = cmd.OutOrStdout()
	m.Err = cmd.ErrOrStderr()
	m.Styled = m.Styled && m.Out == io.Writer(os.Stdout)
	return m
}
