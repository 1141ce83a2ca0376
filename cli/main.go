// ABOUTME: Entry point for the smallworld CLI
// ABOUTME: Delegates to the cmd package for command dispatch

package main

import (
	"os"

	"github.com/topologylab/smallworld/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
