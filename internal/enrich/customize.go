package enrich

import (
	"fmt"
	"maps"
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/kubeforge/cli/internal/config"
	"github.com/kubeforge/cli/internal/errors"
	"github.com/kubeforge/cli/internal/output"
	"github.com/kubeforge/cli/internal/resource"
)

// customizeFunc is one configured customizer, parameters already bound.
type customizeFunc func(model *resource.Model) error

// builtinCustomizers maps customizer names to their constructors. A
// constructor validates its parameter map up front so misconfiguration
// fails before anything runs.
var builtinCustomizers = map[string]func(params map[string]string) (customizeFunc, error){
	"namespace":       newNamespaceCustomizer,
	"annotations":     newAnnotationsCustomizer,
	"imagePullPolicy": newPullPolicyCustomizer,
}

// KnownCustomizers returns the built-in customizer names, sorted.
func KnownCustomizers() []string {
	names := make([]string, 0, len(builtinCustomizers))
	for name := range builtinCustomizers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// customizeEnricher runs the configured customizers in config order.
type customizeEnricher struct {
	steps []customizeStep
}

type customizeStep struct {
	name  string
	apply customizeFunc
}

// NewCustomize binds the configured customizer list to the built-ins.
// Unknown names and invalid parameters are configuration errors.
func NewCustomize(cfg config.EnricherConfig) (Enricher, error) {
	steps := make([]customizeStep, 0, len(cfg.Customize))
	for _, name := range cfg.Customize {
		build, ok := builtinCustomizers[name]
		if !ok {
			return nil, errors.NewConfigurationError(
				fmt.Sprintf("unknown customizer %q", name),
				"enrichers.customize",
				"known customizers: "+strings.Join(KnownCustomizers(), ", "),
			)
		}

		apply, err := build(cfg.Config[name])
		if err != nil {
			return nil, err
		}
		steps = append(steps, customizeStep{name: name, apply: apply})
	}
	return &customizeEnricher{steps: steps}, nil
}

func (e *customizeEnricher) Name() string { return "customize" }

func (e *customizeEnricher) Enrich(model *resource.Model) error {
	for _, step := range e.steps {
		output.Debug("applying customizer", "name", step.name)
		if err := step.apply(model); err != nil {
			return fmt.Errorf("customizer %s: %w", step.name, err)
		}
	}
	return nil
}

// namespace sets metadata.namespace on every resource that has none.
func newNamespaceCustomizer(params map[string]string) (customizeFunc, error) {
	name := params["name"]
	if name == "" {
		return nil, errors.NewConfigurationError(
			"namespace customizer needs a name parameter",
			"enrichers.config.namespace.name",
			`set enrichers.config.namespace.name, e.g. "staging"`,
		)
	}

	return func(model *resource.Model) error {
		for _, res := range model.Resources() {
			if res.Object.GetNamespace() == "" {
				res.Object.SetNamespace(name)
			}
		}
		return nil
	}, nil
}

// annotations adds each configured key missing from metadata.annotations.
func newAnnotationsCustomizer(params map[string]string) (customizeFunc, error) {
	if len(params) == 0 {
		return nil, errors.NewConfigurationError(
			"annotations customizer has no annotations configured",
			"enrichers.config.annotations",
			"add key/value pairs under enrichers.config.annotations",
		)
	}
	annotations := maps.Clone(params)

	return func(model *resource.Model) error {
		for _, res := range model.Resources() {
			current := res.Object.GetAnnotations()
			if current == nil {
				current = make(map[string]string, len(annotations))
			}

			changed := false
			for k, v := range annotations {
				if _, ok := current[k]; !ok {
					current[k] = v
					changed = true
				}
			}
			if changed {
				res.Object.SetAnnotations(current)
			}
		}
		return nil
	}, nil
}

// imagePullPolicy sets the policy on every pod template container that
// declares none.
func newPullPolicyCustomizer(params map[string]string) (customizeFunc, error) {
	policy := params["policy"]
	switch policy {
	case "Always", "IfNotPresent", "Never":
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unknown image pull policy %q", policy),
			"enrichers.config.imagePullPolicy.policy",
			"use Always, IfNotPresent or Never",
		)
	}

	return func(model *resource.Model) error {
		for _, res := range model.Resources() {
			if err := fillPullPolicy(res, policy); err != nil {
				return err
			}
		}
		return nil
	}, nil
}

func fillPullPolicy(res *resource.Resource, policy string) error {
	containers, found, err := unstructured.NestedSlice(res.Object.Object, "spec", "template", "spec", "containers")
	if err != nil {
		return fmt.Errorf("reading containers of %s: %w", res.ID(), err)
	}
	if !found {
		return nil
	}

	changed := false
	for _, c := range containers {
		container, ok := c.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := container["imagePullPolicy"]; !ok {
			container["imagePullPolicy"] = policy
			changed = true
		}
	}

	if !changed {
		return nil
	}
	if err := unstructured.SetNestedSlice(res.Object.Object, containers, "spec", "template", "spec", "containers"); err != nil {
		return fmt.Errorf("writing containers of %s: %w", res.ID(), err)
	}
	return nil
}
