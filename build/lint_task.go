package main

import (
	"os"
	"os/exec"

	"github.com/goyek/goyek/v2"
)

// Lint runs golangci-lint over the module
var Lint = goyek.Define(goyek.Task{
	Name:  "lint",
	Usage: "Run golangci-lint. Use -lint-fix to apply fixes, -lint-verbose for details",
	Action: func(a *goyek.A) {
		args := []string{"run", "./..."}
		if *lintFix {
			args = append(args, "--fix")
		}
		if *lintVerbose {
			args = append(args, "-v")
		}

		cmd := exec.CommandContext(a.Context(), "golangci-lint", args...)
		cmd.Stdout = a.Output()
		cmd.Stderr = a.Output()
		cmd.Env = os.Environ()
		a.Logf("Exec: golangci-lint %v", args)
		if err := cmd.Run(); err != nil {
			a.Fatalf("golangci-lint failed: %v", err)
		}
	},
})
