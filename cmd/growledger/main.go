// Package main is the entry point for the growledger CLI.
package main

import (
	"os"

	"github.com/growfinance/growledger/cmd/growledger/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
