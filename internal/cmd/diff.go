package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/kubeforge/cli/internal/errors"
	"github.com/kubeforge/cli/internal/output"
	"github.com/kubeforge/cli/internal/pipeline"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd() *cobra.Command {
	var gf GenerateFlags

	// Diff-specific flags
	var (
		exitCodeFlag bool
		noColorFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "diff [dir]",
		Short: "Compare the descriptor on disk with a fresh generation",
		Long: `Compare the previously written descriptor with a fresh in-memory
generation.

The project is regenerated without writing anything, then compared against
the descriptor in the target directory using semantic YAML diff (via dyff).
Resources are categorized as added, removed or modified. A missing previous
descriptor reports every resource as added.

Arguments:
  dir    Project directory (default: current directory)

Examples:
  # Diff the project in the current directory
  kforge diff

  # Fail the build when the descriptor is stale
  kforge diff --exit-code`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args, &gf, exitCodeFlag, noColorFlag)
		},
	}

	gf.AddTo(cmd)
	cmd.Flags().BoolVar(&exitCodeFlag, "exit-code", false,
		"Exit with code 1 when differences are found")
	cmd.Flags().BoolVar(&noColorFlag, "no-color", false,
		"Disable colored output")
	return cmd
}

// runDiff executes the diff command.
func runDiff(args []string, gf *GenerateFlags, exitCode, noColor bool) error {
	ctx := context.Background()
	projectDir := projectDirFromArgs(args)

	bctx, err := resolveBuildContext(projectDir, gf)
	if err != nil {
		return err
	}

	result, err := pipeline.Build(ctx, bctx.pipelineOptions())
	if err != nil {
		return err
	}

	previous, err := readPreviousDescriptor(bctx)
	if err != nil {
		return err
	}

	// Identical digests mean an identical descriptor; skip the
	// per-resource comparison.
	if output.DigestObjects(previous) == output.Digest(result.Model) {
		output.Println("No changes detected.")
		return nil
	}

	useColor := output.UseColor(noColor)
	diff, err := output.CompareModel(previous, result.Model, useColor)
	if err != nil {
		return err
	}

	output.Print(output.RenderDiffResult(diff, useColor))

	if exitCode && diff.HasChanges {
		return &errors.ExitError{
			Err:     fmt.Errorf("descriptor differs from a fresh generation: %s", diff.Summary()),
			Code:    ExitGeneralError,
			Printed: true,
		}
	}
	return nil
}

// readPreviousDescriptor loads the descriptor written by the last
// generate run. A missing file yields no items, so everything shows up
// as added.
func readPreviousDescriptor(bctx *buildContext) ([]*unstructured.Unstructured, error) {
	path := output.DescriptorPath(output.DescriptorOptions{
		Dir:    bctx.Paths.TargetDir,
		Mode:   bctx.Config.Mode,
		Format: bctx.Format,
	})

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			output.Debug("no previous descriptor", "path", path)
			return nil, nil
		}
		return nil, errors.NewIOError("cannot read previous descriptor", path, err)
	}

	return output.DecodeDescriptor(data)
}
