package config

import (
	"cmp"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/spachava753/arthas-copy/internal/lsp"
	"github.com/spachava753/arthas-copy/internal/resolver"
)

// Default returns the configuration used when no file is found.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendLSP
	}
	if len(c.Strategies) == 0 {
		c.Strategies = slices.Clone(resolver.DefaultOrder)
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
}

// ClipboardEnabled reports whether commands go to the clipboard.
func (c *Config) ClipboardEnabled() bool {
	return c.Clipboard.Enabled == nil || *c.Clipboard.Enabled
}

// LogLevel returns the configured level, warn when unparseable.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelWarn
	}
	return level
}

// Timeout returns the per-request timeout, zero when unset.
func (l LanguageServerConfig) Timeout() time.Duration {
	d, _ := parseDuration(l.RequestTimeout)
	return d
}

// Launcher converts the configuration for lsp.NewLauncher. The server runs
// in rootDir unless WorkspaceRoot is set, matching Session.
func (l LanguageServerConfig) Launcher(rootDir string) lsp.LauncherConfig {
	dialTimeout, _ := parseDuration(l.DialTimeout)
	env := make([]string, 0, len(l.Env))
	for _, k := range slices.Sorted(maps.Keys(l.Env)) {
		env = append(env, k+"="+l.Env[k])
	}
	return lsp.LauncherConfig{
		Address:     l.Address,
		DialTries:   l.DialTries,
		DialTimeout: dialTimeout,
		Command:     l.Command,
		Args:        l.Args,
		Env:         env,
		JdtlsHome:   l.JdtlsHome,
		JavaExec:    l.JavaExec,
		LombokPath:  l.LombokPath,
		DataDir:     l.DataDir,
		WorkDir:     cmp.Or(l.WorkspaceRoot, rootDir),
	}
}

// Session converts the configuration for lsp.NewSession.
func (l LanguageServerConfig) Session(rootDir string, logger *slog.Logger) (lsp.SessionOptions, error) {
	opts := lsp.SessionOptions{RootDir: rootDir, InitPatch: l.InitPatch, Logger: logger}
	if l.WorkspaceRoot != "" {
		opts.RootDir = l.WorkspaceRoot
	}
	if len(l.InitializationOptions) > 0 {
		raw, err := json.Marshal(l.InitializationOptions)
		if err != nil {
			return lsp.SessionOptions{}, fmt.Errorf("languageServer.initializationOptions: %w", err)
		}
		opts.InitializationOptions = raw
	}
	return opts, nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", s)
	}
	return d, nil
}
