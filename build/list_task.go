package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/goyek/goyek/v2"
)

// List prints all registered tasks with their usage descriptions
var List = goyek.Define(goyek.Task{
	Name:  "list",
	Usage: "List all available tasks",
	Action: func(a *goyek.A) {
		w := tabwriter.NewWriter(a.Output(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "Available tasks (go run ./build [flags] <task>):")
		fmt.Fprintln(w)
		for _, task := range goyek.Tasks() {
			fmt.Fprintf(w, "  %s\t%s\n", task.Name(), task.Usage())
		}
		if err := w.Flush(); err != nil {
			a.Fatalf("Failed to write task list: %v", err)
		}
	},
})
