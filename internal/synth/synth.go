// Package synth turns project configuration into resource model entries:
// one Service per configured service entry plus a single workload
// controller covering the configured images. Synthesized entries follow
// the fragment entries in the descriptor.
package synth

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/kubeforge/cli/internal/config"
	"github.com/kubeforge/cli/internal/core"
	"github.com/kubeforge/cli/internal/errors"
	"github.com/kubeforge/cli/internal/resource"
)

// Synthesize builds all configured resources: services first, then the
// controller. A config without services and images yields nothing.
func Synthesize(cfg *config.Config, project core.Project) ([]*resource.Resource, error) {
	services, err := Services(cfg.Resources.Services, cfg.Resources.Annotations.Service, project)
	if err != nil {
		return nil, err
	}

	controller, err := Controller(cfg.Resources.Controller, cfg.Resources.Annotations.Controller, cfg.Images, project)
	if err != nil {
		return nil, err
	}

	out := services
	if controller != nil {
		out = append(out, controller)
	}
	return out, nil
}

// toUnstructured lowers a typed object into the unstructured form the
// model carries, stamping the type information and dropping server-side
// fields a descriptor must not declare.
func toUnstructured(obj runtime.Object, apiVersion, kind, source string) (*resource.Resource, error) {
	raw, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return nil, errors.WrapConfiguration(err, "converting synthesized "+kind)
	}

	u := &unstructured.Unstructured{Object: raw}
	u.SetAPIVersion(apiVersion)
	u.SetKind(kind)

	unstructured.RemoveNestedField(raw, "status")
	unstructured.RemoveNestedField(raw, "metadata", "creationTimestamp")
	unstructured.RemoveNestedField(raw, "spec", "template", "metadata", "creationTimestamp")

	return &resource.Resource{
		Object: u,
		Origin: resource.OriginSynthesized,
		Source: source,
	}, nil
}
