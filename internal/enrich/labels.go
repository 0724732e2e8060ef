package enrich

import (
	"github.com/kubeforge/cli/internal/core"
	"github.com/kubeforge/cli/internal/resource"
)

// labelsEnricher stamps the project identity labels onto every resource.
// Keys a resource already declares are left alone.
type labelsEnricher struct {
	labels map[string]string
}

// NewLabels returns the identity label stage for the given project.
func NewLabels(project core.Project) Enricher {
	return &labelsEnricher{labels: project.Labels()}
}

func (e *labelsEnricher) Name() string { return "labels" }

func (e *labelsEnricher) Enrich(model *resource.Model) error {
	for _, res := range model.Resources() {
		labels := res.Object.GetLabels()
		if labels == nil {
			labels = make(map[string]string, len(e.labels))
		}

		changed := false
		for k, v := range e.labels {
			if _, ok := labels[k]; !ok {
				labels[k] = v
				changed = true
			}
		}
		if changed {
			res.Object.SetLabels(labels)
		}
	}
	return nil
}
