package lsp

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// ErrServerNotInstalled means no language server could be located. It is the
// equivalent of a missing editor extension and is terminal for an invocation.
var ErrServerNotInstalled = errors.New("language server not installed")

// ServerDisplayName names the server in user facing messages.
const ServerDisplayName = "Eclipse JDT Language Server (jdtls)"

// LauncherConfig describes how to reach the language server. Exactly one of
// Address, Command or JdtlsHome is used, in that order of preference.
type LauncherConfig struct {
	Address     string
	DialTries   uint
	DialTimeout time.Duration

	Command string
	Args    []string
	Env     []string

	JdtlsHome  string
	JavaExec   string
	LombokPath string
	DataDir    string

	WorkDir string
}

// Launcher starts or connects to a language server.
type Launcher struct {
	cfg    LauncherConfig
	logger *slog.Logger

	lookPath func(string) (string, error)
	dial     func(ctx context.Context, address string) (net.Conn, error)
}

// NewLauncher returns a launcher for cfg.
func NewLauncher(cfg LauncherConfig, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		cfg:      cfg,
		logger:   logger,
		lookPath: exec.LookPath,
		dial: func(ctx context.Context, address string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "tcp", address)
		},
	}
}

// Config returns the configuration the launcher was built with.
func (l *Launcher) Config() LauncherConfig {
	return l.cfg
}

// Check reports ErrServerNotInstalled when the configured server cannot be
// found. A configured address is assumed reachable until dialed.
func (l *Launcher) Check() error {
	switch {
	case l.cfg.Address != "":
		return nil
	case l.cfg.Command != "":
		if _, err := l.lookPath(l.cfg.Command); err != nil {
			return fmt.Errorf("%w: %s not found: %v", ErrServerNotInstalled, l.cfg.Command, err)
		}
		return nil
	case l.cfg.JdtlsHome != "":
		if _, err := findLauncherJar(filepath.Join(l.cfg.JdtlsHome, "plugins")); err != nil {
			return fmt.Errorf("%w: %v", ErrServerNotInstalled, err)
		}
		if _, err := l.lookPath(l.javaExec()); err != nil {
			return fmt.Errorf("%w: java executable %s not found: %v", ErrServerNotInstalled, l.javaExec(), err)
		}
		return nil
	default:
		if _, err := l.lookPath("jdtls"); err != nil {
			return fmt.Errorf("%w: no language server configured and jdtls not on PATH", ErrServerNotInstalled)
		}
		return nil
	}
}

// Start connects to the server and returns the byte stream to speak LSP over.
func (l *Launcher) Start(ctx context.Context) (io.ReadWriteCloser, error) {
	if err := l.Check(); err != nil {
		return nil, err
	}
	if l.cfg.Address != "" {
		return l.connect(ctx)
	}

	cmd, err := l.buildCmd()
	if err != nil {
		return nil, err
	}
	return startProcess(cmd, l.logger)
}

func (l *Launcher) connect(ctx context.Context) (io.ReadWriteCloser, error) {
	tries := l.cfg.DialTries
	if tries == 0 {
		tries = 5
	}
	opts := []backoff.RetryOption{backoff.WithMaxTries(tries)}
	if l.cfg.DialTimeout > 0 {
		opts = append(opts, backoff.WithMaxElapsedTime(l.cfg.DialTimeout))
	}

	operation := func() (net.Conn, error) {
		conn, err := l.dial(ctx, l.cfg.Address)
		if err != nil {
			l.logger.Debug("language server dial failed", "address", l.cfg.Address, "error", err)
			return nil, err
		}
		return conn, nil
	}

	conn, err := backoff.Retry(ctx, operation, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to language server at %s: %w", l.cfg.Address, err)
	}
	return conn, nil
}

func (l *Launcher) javaExec() string {
	if l.cfg.JavaExec != "" {
		return l.cfg.JavaExec
	}
	if home := os.Getenv("JAVA_HOME"); home != "" {
		return filepath.Join(home, "bin", "java")
	}
	return "java"
}

func (l *Launcher) buildCmd() (*exec.Cmd, error) {
	var cmd *exec.Cmd
	switch {
	case l.cfg.Command != "":
		cmd = exec.Command(l.cfg.Command, l.cfg.Args...)
	case l.cfg.JdtlsHome != "":
		args, err := l.jdtlsArgs()
		if err != nil {
			return nil, err
		}
		cmd = exec.Command(l.javaExec(), args...)
	default:
		cmd = exec.Command("jdtls", l.cfg.Args...)
	}
	cmd.Env = append(os.Environ(), l.cfg.Env...)
	cmd.Dir = l.cfg.WorkDir
	return cmd, nil
}

func (l *Launcher) jdtlsArgs() ([]string, error) {
	launcherJar, err := findLauncherJar(filepath.Join(l.cfg.JdtlsHome, "plugins"))
	if err != nil {
		return nil, err
	}

	dataDir := l.cfg.DataDir
	if dataDir == "" {
		cache, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("locating cache directory for jdtls data: %w", err)
		}
		dataDir, err = workspaceDataDir(cache, l.cfg.WorkDir)
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating jdtls data directory: %w", err)
	}

	args := []string{
		"-Declipse.application=org.eclipse.jdt.ls.core.id1",
		"-Dosgi.bundles.defaultStartLevel=4",
		"-Declipse.product=org.eclipse.jdt.ls.core.product",
		"-Xmx1G",
		"--add-modules=ALL-SYSTEM",
		"--add-opens", "java.base/java.util=ALL-UNNAMED",
		"--add-opens", "java.base/java.lang=ALL-UNNAMED",
	}
	if l.cfg.LombokPath != "" {
		args = append(args, "-javaagent:"+l.cfg.LombokPath)
	}
	args = append(args,
		"-jar", launcherJar,
		"-configuration", jdtlsConfigDir(l.cfg.JdtlsHome),
		"-data", dataDir,
	)
	return args, nil
}

// workspaceDataDir returns the jdtls -data directory for a workspace root.
// jdtls locks its data directory, so every root gets its own, keyed on the
// absolute path. An empty root means the current directory.
func workspaceDataDir(cache, root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving workspace root: %w", err)
	}
	sum := sha256.Sum256([]byte(abs))
	name := filepath.Base(abs) + "-" + hex.EncodeToString(sum[:])[:12]
	return filepath.Join(cache, "arthas-copy", "jdtls-data", name), nil
}

func jdtlsConfigDir(home string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "config_mac")
	case "windows":
		return filepath.Join(home, "config_win")
	default:
		return filepath.Join(home, "config_linux")
	}
}

func findLauncherJar(dir string) (string, error) {
	matches, _ := filepath.Glob(filepath.Join(dir, "org.eclipse.equinox.launcher_*.jar"))
	if len(matches) == 0 {
		return "", fmt.Errorf("launcher jar not found in %s", dir)
	}
	return matches[0], nil
}

// processConn is the stdio of a running server process.
type processConn struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr *bytes.Buffer
	logger *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

func startProcess(cmd *exec.Cmd, logger *slog.Logger) (*processConn, error) {
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	logger.Debug("starting language server", "command", cmd.Path, "args", cmd.Args[1:])
	if err := cmd.Start(); err != nil {
		stdin.Close()
		return nil, fmt.Errorf("failed to start language server: %w", err)
	}

	return &processConn{cmd: cmd, stdin: stdin, stdout: stdout, stderr: &stderrBuf, logger: logger}, nil
}

func (p *processConn) Read(b []byte) (int, error)  { return p.stdout.Read(b) }
func (p *processConn) Write(b []byte) (int, error) { return p.stdin.Write(b) }

// Close closes stdin and gives the process a moment to exit after the exit
// notification before killing it.
func (p *processConn) Close() error {
	p.closeOnce.Do(func() {
		p.stdin.Close()

		waited := make(chan error, 1)
		go func() { waited <- p.cmd.Wait() }()

		select {
		case err := <-waited:
			var exitErr *exec.ExitError
			if err != nil && !errors.As(err, &exitErr) {
				p.closeErr = fmt.Errorf("language server exited with error: %w", err)
			}
		case <-time.After(3 * time.Second):
			_ = p.cmd.Process.Kill()
			<-waited
		}
		if p.stderr.Len() > 0 {
			p.logger.Debug("language server stderr", "output", p.stderr.String())
		}
	})
	return p.closeErr
}
