package main

import "github.com/spachava753/arthas-copy/cmd"

func main() {
	cmd.Execute()
}
