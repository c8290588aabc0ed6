package lsp

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeJdtlsHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	plugins := filepath.Join(home, "plugins")
	require.NoError(t, os.MkdirAll(plugins, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(plugins, "org.eclipse.equinox.launcher_1.6.900.jar"), nil, 0o644))
	return home
}

func TestLauncherCheck(t *testing.T) {
	onPath := func(string) (string, error) { return "/usr/bin/found", nil }
	notOnPath := func(name string) (string, error) { return "", errors.New("executable file not found in $PATH") }

	tests := []struct {
		name     string
		cfg      LauncherConfig
		lookPath func(string) (string, error)
		wantErr  bool
	}{
		{name: "address needs no lookup", cfg: LauncherConfig{Address: "127.0.0.1:5036"}, lookPath: notOnPath},
		{name: "command found", cfg: LauncherConfig{Command: "jdtls"}, lookPath: onPath},
		{name: "command missing", cfg: LauncherConfig{Command: "jdtls"}, lookPath: notOnPath, wantErr: true},
		{name: "jdtls home with launcher", cfg: LauncherConfig{JdtlsHome: fakeJdtlsHome(t)}, lookPath: onPath},
		{name: "jdtls home without launcher", cfg: LauncherConfig{JdtlsHome: t.TempDir()}, lookPath: onPath, wantErr: true},
		{name: "jdtls home without java", cfg: LauncherConfig{JdtlsHome: fakeJdtlsHome(t)}, lookPath: notOnPath, wantErr: true},
		{name: "default jdtls on path", cfg: LauncherConfig{}, lookPath: onPath},
		{name: "nothing configured", cfg: LauncherConfig{}, lookPath: notOnPath, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLauncher(tt.cfg, nil)
			l.lookPath = tt.lookPath
			err := l.Check()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrServerNotInstalled)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLauncherJdtlsArgs(t *testing.T) {
	home := fakeJdtlsHome(t)
	data := filepath.Join(t.TempDir(), "data")
	l := NewLauncher(LauncherConfig{
		JdtlsHome:  home,
		JavaExec:   "/opt/java/bin/java",
		LombokPath: "/opt/lombok.jar",
		DataDir:    data,
	}, nil)

	cmd, err := l.buildCmd()
	require.NoError(t, err)
	assert.Equal(t, "/opt/java/bin/java", cmd.Args[0])
	assert.Contains(t, cmd.Args, "-javaagent:/opt/lombok.jar")
	assert.Contains(t, cmd.Args, filepath.Join(home, "plugins", "org.eclipse.equinox.launcher_1.6.900.jar"))
	assert.Contains(t, cmd.Args, data)
	assert.DirExists(t, data)
}

func TestWorkspaceDataDir(t *testing.T) {
	cache := t.TempDir()
	teamA := filepath.Join(t.TempDir(), "team-a", "app")
	teamB := filepath.Join(t.TempDir(), "team-b", "app")

	dirA, err := workspaceDataDir(cache, teamA)
	require.NoError(t, err)
	dirB, err := workspaceDataDir(cache, teamB)
	require.NoError(t, err)
	again, err := workspaceDataDir(cache, teamA)
	require.NoError(t, err)

	assert.NotEqual(t, dirA, dirB, "same-named roots must not share a data dir")
	assert.Equal(t, dirA, again)
	assert.Equal(t, filepath.Join(cache, "arthas-copy", "jdtls-data"), filepath.Dir(dirA))
	assert.Regexp(t, `^app-[0-9a-f]{12}$`, filepath.Base(dirA))

	wd, err := os.Getwd()
	require.NoError(t, err)
	fromEmpty, err := workspaceDataDir(cache, "")
	require.NoError(t, err)
	fromWd, err := workspaceDataDir(cache, wd)
	require.NoError(t, err)
	assert.Equal(t, fromWd, fromEmpty)
}

func TestLauncherDefaultDataDirPerWorkspace(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	home := fakeJdtlsHome(t)

	dataArg := func(workDir string) string {
		l := NewLauncher(LauncherConfig{JdtlsHome: home, WorkDir: workDir}, nil)
		args, err := l.jdtlsArgs()
		require.NoError(t, err)
		for i, arg := range args {
			if arg == "-data" {
				return args[i+1]
			}
		}
		t.Fatalf("no -data argument in %v", args)
		return ""
	}

	a := dataArg(filepath.Join(t.TempDir(), "team-a", "app"))
	b := dataArg(filepath.Join(t.TempDir(), "team-b", "app"))
	assert.NotEqual(t, a, b)
	assert.DirExists(t, a)
	assert.DirExists(t, b)
}

func TestLauncherConnect(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			conn.Close()
		}
	}()

	l := NewLauncher(LauncherConfig{Address: ln.Addr().String()}, nil)
	conn, err := l.Start(context.Background())
	require.NoError(t, err)
	require.NoError(t, conn.Close())
}

func TestLauncherConnectRetries(t *testing.T) {
	attempts := 0
	l := NewLauncher(LauncherConfig{Address: "127.0.0.1:1", DialTries: 3, DialTimeout: 10 * time.Second}, nil)
	l.dial = func(context.Context, string) (net.Conn, error) {
		attempts++
		return nil, errors.New("connection refused")
	}

	_, err := l.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.NotErrorIs(t, err, ErrServerNotInstalled)
}
