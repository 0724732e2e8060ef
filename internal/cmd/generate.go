package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/kubeforge/cli/internal/output"
	"github.com/kubeforge/cli/internal/pipeline"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	var gf GenerateFlags

	// Generate-specific flags
	var (
		skipFlag    bool
		dryRunFlag  bool
		summaryFlag string
	)

	cmd := &cobra.Command{
		Use:     "generate [dir]",
		Aliases: []string{"gen"},
		Short:   "Generate the resource descriptor",
		Long: `Generate the Kubernetes resource descriptor for a project.

Fragments from the resource directory are filtered and parsed, resources
declared in kforge.yaml are synthesized, and the combined set is enriched
with project identity labels and selectors. The result is written as a
single descriptor plus one file per resource.

Arguments:
  dir    Project directory (default: current directory)

Examples:
  # Generate in the current directory
  kforge generate

  # Generate for OpenShift as JSON
  kforge generate --mode openshift --format json

  # Inspect the descriptor without writing anything
  kforge generate --dry-run

  # Machine-readable summary for build tooling
  kforge generate -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(args, &gf, skipFlag, dryRunFlag, summaryFlag)
		},
	}

	gf.AddTo(cmd)
	cmd.Flags().BoolVar(&skipFlag, "skip", false,
		"Skip descriptor generation (env: KFORGE_SKIP)")
	cmd.Flags().BoolVar(&dryRunFlag, "dry-run", false,
		"Print the descriptor to stdout without writing files")
	cmd.Flags().StringVarP(&summaryFlag, "output", "o", "text",
		"Summary format: text or json")
	return cmd
}

// runGenerate executes the generate command.
func runGenerate(args []string, gf *GenerateFlags, skip, dryRun bool, summaryFormat string) error {
	ctx := context.Background()
	projectDir := projectDirFromArgs(args)

	bctx, err := resolveBuildContext(projectDir, gf)
	if err != nil {
		return err
	}

	if skip || bctx.Config.Skip {
		output.Info("descriptor generation skipped")
		return nil
	}

	result, err := pipeline.Build(ctx, bctx.pipelineOptions())
	if err != nil {
		return err
	}

	if dryRun {
		data, err := output.RenderDescriptor(result.Model, bctx.Format)
		if err != nil {
			return err
		}
		output.Print(string(data))
		return nil
	}

	descriptorPath, err := output.WriteDescriptor(result.Model, output.DescriptorOptions{
		Dir:    bctx.Paths.TargetDir,
		Mode:   bctx.Config.Mode,
		Format: bctx.Format,
	})
	if err != nil {
		return err
	}

	if err := output.WriteEnriched(result.Model, output.SplitOptions{
		OutDir: bctx.Paths.EnrichedDir,
		Format: bctx.Format,
	}); err != nil {
		return err
	}

	summary := output.BuildSummary(bctx.Project, bctx.Config.Mode, descriptorPath, result.Model, result.Warnings)
	return output.WriteSummary(summary, output.SummaryOptions{
		JSON:   summaryFormat == "json",
		Writer: os.Stdout,
	})
}
