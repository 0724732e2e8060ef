// Package pipeline orchestrates descriptor assembly: fragments first,
// synthesized resources second, duplicate warnings, then enrichment. It
// performs no output I/O; writing the descriptor is the command layer's
// job.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/kubeforge/cli/internal/config"
	"github.com/kubeforge/cli/internal/core"
	"github.com/kubeforge/cli/internal/enrich"
	"github.com/kubeforge/cli/internal/fragment"
	"github.com/kubeforge/cli/internal/output"
	"github.com/kubeforge/cli/internal/resource"
	"github.com/kubeforge/cli/internal/synth"
	"github.com/kubeforge/cli/pkg/kinds"
)

// Options configures one descriptor build.
type Options struct {
	// Config is the effective project configuration, defaults applied.
	Config *config.Config

	// Project is the identity stamped onto generated resources.
	Project core.Project

	// Dialect supplies default API versions for fragments.
	Dialect kinds.Dialect

	// FragmentDir holds the resource fragments.
	FragmentDir string

	// WorkDir receives intermediate files such as filtered fragments.
	WorkDir string
}

// Result is the outcome of a build.
type Result struct {
	// Model is the enriched descriptor content.
	Model *resource.Model

	// Warnings lists non-fatal findings, e.g. duplicate resources.
	Warnings []string
}

// Build assembles and enriches the descriptor model:
//
//	Phase 1: fragment loading (list, filter, parse)
//	Phase 2: synthesis from configuration
//	Phase 3: duplicate detection
//	Phase 4: enrichment
//
// An empty project (no fragments, nothing configured) yields an empty
// model, not an error.
func Build(ctx context.Context, opts Options) (*Result, error) {
	model := resource.NewModel()

	// PHASE 1: fragments keep file order and always precede synthesis.
	fragments, err := fragment.Load(ctx, opts.FragmentDir, opts.WorkDir, opts.Project, opts.Dialect)
	if err != nil {
		return nil, err
	}
	model.Append(fragments...)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// PHASE 2: synthesized services, then the controller.
	synthesized, err := synth.Synthesize(opts.Config, opts.Project)
	if err != nil {
		return nil, err
	}
	model.Append(synthesized...)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	output.Debug("descriptor model assembled",
		"fragments", len(fragments),
		"synthesized", len(synthesized),
	)

	// PHASE 3: duplicates are kept, but each group is worth a warning.
	warnings := duplicateWarnings(model)
	for _, w := range warnings {
		output.Warn(w)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// PHASE 4: enrichment.
	chain, err := enrich.DefaultChain(opts.Project, opts.Config.Enrichers)
	if err != nil {
		return nil, err
	}
	if err := chain.Enrich(model); err != nil {
		return nil, err
	}

	return &Result{Model: model, Warnings: warnings}, nil
}

// duplicateWarnings renders one warning per kind/name group that appears
// more than once, naming every source involved.
func duplicateWarnings(model *resource.Model) []string {
	var warnings []string
	for _, group := range model.Duplicates() {
		sources := make([]string, 0, len(group))
		for _, res := range group {
			sources = append(sources, fmt.Sprintf("%s (%s)", res.Source, res.Origin))
		}
		warnings = append(warnings, fmt.Sprintf(
			"duplicate resource %s defined %d times: %s",
			group[0].ID(), len(group), strings.Join(sources, ", "),
		))
	}
	return warnings
}
