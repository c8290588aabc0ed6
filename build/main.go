package main

import (
	"flag"

	"github.com/goyek/goyek/v2"
)

// Flags for stdio-debug-proxy task
var (
	logFile  = flag.String("log", "", "Log file path (for stdio-debug-proxy)")
	proxyCmd = flag.String("cmd", "", "Command to run, e.g. jdtls or 'arthas-copy mcp serve' (for stdio-debug-proxy)")
)

// Flags for lint task
var (
	lintFix     = flag.Bool("lint-fix", false, "Auto-fix linting issues")
	lintVerbose = flag.Bool("lint-verbose", false, "Verbose linting output")
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		args = []string{"list"}
	}
	goyek.Main(args)
}
