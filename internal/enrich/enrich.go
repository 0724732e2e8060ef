// Package enrich completes descriptor resources after assembly. Stages
// run in a fixed order and share one rule: declared values are never
// overwritten, so running a chain on its own output changes nothing.
package enrich

import (
	"github.com/kubeforge/cli/internal/config"
	"github.com/kubeforge/cli/internal/core"
	"github.com/kubeforge/cli/internal/errors"
	"github.com/kubeforge/cli/internal/output"
	"github.com/kubeforge/cli/internal/resource"
)

// Enricher is one enrichment stage.
type Enricher interface {
	// Name identifies the stage in errors and logs.
	Name() string

	// Enrich mutates the model in place.
	Enrich(model *resource.Model) error
}

// Chain runs enrichers strictly in order; the first failure aborts the
// rest.
type Chain struct {
	stages []Enricher
}

// NewChain builds a chain over the given stages.
func NewChain(stages ...Enricher) *Chain {
	return &Chain{stages: stages}
}

// DefaultChain assembles the standard stages: identity labels, selector
// completion, then the configured customizers. An unknown customizer name
// fails here, before anything runs.
func DefaultChain(project core.Project, cfg config.EnricherConfig) (*Chain, error) {
	customize, err := NewCustomize(cfg)
	if err != nil {
		return nil, err
	}

	return NewChain(
		NewLabels(project),
		NewSelectors(),
		customize,
	), nil
}

// Enrich runs every stage over the model.
func (c *Chain) Enrich(model *resource.Model) error {
	for _, stage := range c.stages {
		output.Debug("running enricher", "stage", stage.Name(), "resources", model.Len())
		if err := stage.Enrich(model); err != nil {
			return errors.NewEnrichmentError("enricher "+stage.Name()+" failed", stage.Name(), err)
		}
	}
	return nil
}
