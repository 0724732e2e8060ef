package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kubeforge/cli/internal/config"
	"github.com/kubeforge/cli/internal/core"
	"github.com/kubeforge/cli/internal/errors"
	"github.com/kubeforge/cli/internal/output"
	"github.com/kubeforge/cli/internal/pipeline"
	"github.com/kubeforge/cli/pkg/kinds"
)

// GenerateFlags is the flag group shared by commands that run the
// generation pipeline.
type GenerateFlags struct {
	ResourceDir string
	TargetDir   string
	WorkDir     string
	Mode        string
	Format      string
}

// AddTo registers the flag group on a command.
func (f *GenerateFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ResourceDir, "resource-dir", "",
		"Directory holding resource fragments (env: KFORGE_RESOURCE_DIR)")
	cmd.Flags().StringVar(&f.TargetDir, "target-dir", "",
		"Directory receiving the descriptor (env: KFORGE_TARGET_DIR)")
	cmd.Flags().StringVar(&f.WorkDir, "work-dir", "",
		"Directory for intermediate files (env: KFORGE_WORK_DIR)")
	cmd.Flags().StringVar(&f.Mode, "mode", "",
		"Target cluster flavor: kubernetes or openshift (env: KFORGE_MODE)")
	cmd.Flags().StringVar(&f.Format, "format", "",
		"Descriptor format: yaml or json (env: KFORGE_FORMAT)")
}

// buildContext carries everything a pipeline-running command needs.
type buildContext struct {
	Config  *config.Config
	Project core.Project
	Dialect kinds.Dialect
	Paths   *config.Paths
	Format  output.Format
}

// resolveBuildContext loads the project configuration, applies flag
// precedence on top of environment and file values, validates the result
// and resolves the project paths.
func resolveBuildContext(projectDir string, flags *GenerateFlags) (*buildContext, error) {
	cfg, err := config.NewLoader().Load(projectDir, configFlag)
	if err != nil {
		return nil, err
	}

	// The loader already merged env over file values, so ConfigValue
	// carries the env winner and Resolve reports its true source.
	defaults := config.DefaultConfig()
	resolved := []config.ResolvedValue{
		config.Resolve(config.ResolveOptions{Key: "mode", FlagValue: flags.Mode,
			EnvVar: "KFORGE_MODE", ConfigValue: cfg.Mode, Default: defaults.Mode}),
		config.Resolve(config.ResolveOptions{Key: "resourceDir", FlagValue: flags.ResourceDir,
			EnvVar: "KFORGE_RESOURCE_DIR", ConfigValue: cfg.ResourceDir, Default: defaults.ResourceDir}),
		config.Resolve(config.ResolveOptions{Key: "targetDir", FlagValue: flags.TargetDir,
			EnvVar: "KFORGE_TARGET_DIR", ConfigValue: cfg.TargetDir, Default: defaults.TargetDir}),
		config.Resolve(config.ResolveOptions{Key: "workDir", FlagValue: flags.WorkDir,
			EnvVar: "KFORGE_WORK_DIR", ConfigValue: cfg.WorkDir, Default: defaults.WorkDir}),
		config.Resolve(config.ResolveOptions{Key: "format", FlagValue: flags.Format,
			EnvVar: "KFORGE_FORMAT", ConfigValue: cfg.Format, Default: defaults.Format}),
	}
	config.LogResolvedValues(resolved)

	cfg.Mode = resolved[0].Value
	cfg.ResourceDir = resolved[1].Value
	cfg.TargetDir = resolved[2].Value
	cfg.WorkDir = resolved[3].Value
	cfg.Format = resolved[4].Value

	cfg = cfg.WithDefaults()

	if errs := config.Validate(cfg); errs != nil {
		return nil, errors.WrapConfiguration(errs, "invalid configuration")
	}
	config.LintVersion(cfg.Project.Version)

	dialect, _ := kinds.DialectFor(cfg.Mode)

	return &buildContext{
		Config:  cfg,
		Project: cfg.ProjectIdentity(),
		Dialect: dialect,
		Paths:   config.ProjectPaths(projectDir, cfg),
		Format:  output.Format(cfg.Format),
	}, nil
}

// pipelineOptions maps the build context onto pipeline options.
func (b *buildContext) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Config:      b.Config,
		Project:     b.Project,
		Dialect:     b.Dialect,
		FragmentDir: b.Paths.ResourceDir,
		WorkDir:     b.Paths.WorkDir,
	}
}

// projectDirFromArgs returns the optional project directory argument,
// defaulting to the current directory.
func projectDirFromArgs(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
