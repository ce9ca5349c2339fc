package main

import (
	"os"

	"github.com/kndndrj/sparqlbench/cmd"
)

func main() {
	if err := cmd.NewRootCommand(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
