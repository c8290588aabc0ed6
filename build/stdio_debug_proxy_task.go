package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/goyek/goyek/v2"
)

// StdioDebugProxy runs a stdio server and logs the traffic in both
// directions. Point languageServer.command at it to trace jdtls, or wrap
// arthas-copy mcp serve in an MCP client configuration.
var StdioDebugProxy = goyek.Define(goyek.Task{
	Name:  "stdio-debug-proxy",
	Usage: "Stdio debug proxy for jdtls or the MCP server. Use -log=FILE -cmd='command args'",
	Action: func(a *goyek.A) {
		if *logFile == "" || *proxyCmd == "" {
			a.Fatal("Usage: go run ./build -log=<file> -cmd='<command>' stdio-debug-proxy")
		}

		cmdArgs := strings.Fields(*proxyCmd)
		if len(cmdArgs) == 0 {
			a.Fatal("-cmd cannot be empty")
		}

		lf, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			a.Fatalf("Failed to open log file: %v", err)
		}
		defer lf.Close()
		log := &trafficLog{w: lf}

		log.printf("=== Stdio Debug Proxy Started at %s ===\n", time.Now().Format(time.RFC3339))
		log.printf("Command: %s\n\n", strings.Join(cmdArgs, " "))

		cmd := exec.Command(cmdArgs[0], cmdArgs[1:]...)
		stdinPipe, err := cmd.StdinPipe()
		if err != nil {
			a.Fatalf("Failed to get stdin pipe: %v", err)
		}
		stdoutPipe, err := cmd.StdoutPipe()
		if err != nil {
			a.Fatalf("Failed to get stdout pipe: %v", err)
		}
		cmd.Stderr = os.Stderr

		if err := cmd.Start(); err != nil {
			a.Fatalf("Failed to start command: %v", err)
		}

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigChan
			log.printf("[%s] Received signal: %v, propagating to child...\n", timestamp(), sig)
			if cmd.Process != nil {
				cmd.Process.Signal(sig)
			}
		}()

		var wg sync.WaitGroup
		wg.Add(2)

		// LSP bodies are not newline terminated, so traffic is relayed
		// chunk by chunk instead of line by line.
		go func() {
			defer wg.Done()
			defer stdinPipe.Close()
			if _, err := io.Copy(stdinPipe, io.TeeReader(os.Stdin, log.direction("-->"))); err != nil {
				log.printf("[%s] STDIN ERROR: %v\n", timestamp(), err)
			}
		}()

		go func() {
			defer wg.Done()
			if _, err := io.Copy(os.Stdout, io.TeeReader(stdoutPipe, log.direction("<--"))); err != nil {
				log.printf("[%s] STDOUT ERROR: %v\n", timestamp(), err)
			}
		}()

		err = cmd.Wait()
		log.printf("[%s] Child process exited: %v\n", timestamp(), err)

		wg.Wait()
		log.printf("[%s] === Stdio Debug Proxy Shutdown ===\n", timestamp())
	},
})

// trafficLog serializes writes from both relay goroutines.
type trafficLog struct {
	mu sync.Mutex
	w  *os.File
}

func (l *trafficLog) printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, format, args...)
	l.w.Sync()
}

func (l *trafficLog) direction(arrow string) io.Writer {
	return writerFunc(func(p []byte) (int, error) {
		l.printf("[%s] %s %s\n", timestamp(), arrow, p)
		return len(p), nil
	})
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

func timestamp() string {
	return time.Now().Format("15:04:05.000")
}
