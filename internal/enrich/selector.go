package enrich

import (
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/kubeforge/cli/internal/core"
	"github.com/kubeforge/cli/internal/resource"
	"github.com/kubeforge/cli/pkg/kinds"
)

// selectorEnricher completes missing pod selectors from each resource's
// own labels, filtered to the identity keys. Runs after the labels stage,
// so synthesized and enriched labels are both visible. A declared
// selector, including one using matchExpressions, is left untouched.
type selectorEnricher struct{}

// NewSelectors returns the selector completion stage.
func NewSelectors() Enricher {
	return &selectorEnricher{}
}

func (e *selectorEnricher) Name() string { return "selectors" }

func (e *selectorEnricher) Enrich(model *resource.Model) error {
	for _, res := range model.Resources() {
		if kinds.Shape(res.Kind()) == kinds.SelectorNone {
			continue
		}

		declared, found, err := unstructured.NestedMap(res.Object.Object, "spec", "selector")
		if err != nil {
			return fmt.Errorf("reading selector of %s: %w", res.ID(), err)
		}
		if found && len(declared) > 0 {
			continue
		}

		selector := identitySelector(res.Labels())
		if len(selector) == 0 {
			continue
		}

		path := kinds.SelectorPath(res.Kind())
		if err := unstructured.SetNestedStringMap(res.Object.Object, selector, path...); err != nil {
			return fmt.Errorf("writing selector of %s: %w", res.ID(), err)
		}
	}
	return nil
}

// identitySelector filters labels down to the project identity keys.
func identitySelector(labels map[string]string) map[string]string {
	if len(labels) == 0 {
		return nil
	}

	selector := make(map[string]string, len(core.IdentityKeys()))
	for _, key := range core.IdentityKeys() {
		if v, ok := labels[key]; ok {
			selector[key] = v
		}
	}
	return selector
}
