// Package main is the entry point for the drange CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/daterange/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
