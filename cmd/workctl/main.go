// Package main is the entry point for the workfolio CLI tool.
package main

import (
	"os"

	"github.com/good-yellow-bee/workfolio/cmd/workctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
