// Package main provides the doclet CLI.
package main

import (
	"os"

	"github.com/doclet-labs/doclet/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
