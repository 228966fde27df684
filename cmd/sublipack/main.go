// Package main is the entry point for the sublipack CLI.
package main

import (
	"fmt"
	"os"

	"github.com/sublipack/sublipack/cmd/sublipack/commands"
	"github.com/sublipack/sublipack/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "%s\n", exitErr.Suggestion)
		}
		os.Exit(exitErr.Code)
	}
	os.Exit(errors.ExitSystem)
}
