// Package main is the entry point for the tpt CLI tool.
package main

import (
	"os"

	"github.com/mhutch/taskpilot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
