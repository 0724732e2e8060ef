package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kubeforge/cli/internal/config"
	"github.com/kubeforge/cli/internal/errors"
	"github.com/kubeforge/cli/internal/output"
	"github.com/kubeforge/cli/internal/templates"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	var (
		nameFlag  string
		forceFlag bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Scaffold a kforge project",
		Long: `Scaffold a kforge project: a starter kforge.yaml plus an example
resource fragment.

Arguments:
  dir    Project directory (default: current directory)

Examples:
  # Initialize the current directory
  kforge init

  # Initialize a new directory with an explicit project name
  kforge init ./shop --name shop

  # Replace previously scaffolded files
  kforge init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args, nameFlag, forceFlag)
		},
	}

	cmd.Flags().StringVar(&nameFlag, "name", "",
		"Project name (default: directory name)")
	cmd.Flags().BoolVar(&forceFlag, "force", false,
		"Overwrite existing files")
	return cmd
}

// runInit executes the init command.
func runInit(args []string, name string, force bool) error {
	targetDir := projectDirFromArgs(args)

	absDir, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolving target directory: %w", err)
	}

	if name == "" {
		name = sanitizeProjectName(filepath.Base(absDir))
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return errors.NewIOError("cannot create project directory", targetDir, err)
	}

	created, err := templates.Scaffold(targetDir, templates.Data{
		ProjectName: name,
		Version:     "0.1.0-SNAPSHOT",
		Mode:        "kubernetes",
		ResourceDir: config.DefaultConfig().ResourceDir,
	}, force)
	if err != nil {
		return err
	}

	output.Println(fmt.Sprintf("Initialized project %q in %s\n", name, absDir))

	files := make(map[string]string, len(created))
	for _, f := range created {
		files[f] = fileDescription(f)
	}
	output.Print(output.RenderFileTree(filepath.Base(absDir), files))
	return nil
}

// fileDescription returns the tree annotation for a scaffolded file.
func fileDescription(path string) string {
	switch {
	case path == config.ConfigFileName:
		return "Project configuration"
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return "Resource fragment"
	default:
		return ""
	}
}

// sanitizeProjectName turns a directory name into a usable project name:
// lowercased, separators mapped to hyphens, anything else dropped.
func sanitizeProjectName(name string) string {
	name = strings.ToLower(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == '_' || r == '.' || r == ' ':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
