// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kubeforge/cli/internal/output"
)

// Global flags shared by every subcommand.
var (
	configFlag  string
	verboseFlag bool
)

// NewRootCmd creates the root command for the kforge CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kforge",
		Short: "Kubernetes descriptor generator",
		Long: `kforge assembles Kubernetes resource descriptors from hand-authored
fragments and project configuration, enriches them with project identity,
and writes a single deployable descriptor.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetupLogging(verboseFlag)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"Path to config file (default: kforge.yaml in the project directory)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewDiffCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}
