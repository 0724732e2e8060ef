// Package main is the entry point for the kforge CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/kubeforge/cli/internal/cmd"
	kferrors "github.com/kubeforge/cli/internal/errors"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		// Commands that already rendered their failure mark it Printed.
		var exitErr *kferrors.ExitError
		if errors.As(err, &exitErr) && exitErr.Printed {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cmd.ExitCodeFromError(err))
	}
}
