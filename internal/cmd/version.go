package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kubeforge/cli/internal/output"
	"github.com/kubeforge/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show kforge version information: CLI version, commit, build date,
Go version and the embedded CUE SDK version.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(outputFlag)
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "text",
		"Output format: text or json")
	return cmd
}

// runVersion executes the version command.
func runVersion(format string) error {
	info := version.Get()

	switch format {
	case "json":
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding version info: %w", err)
		}
		output.Println(string(data))
	case "text", "":
		output.Println(info.String())
	default:
		return fmt.Errorf("invalid output format %q (valid: text, json)", format)
	}
	return nil
}
