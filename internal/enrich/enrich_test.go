package enrich

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/kubeforge/cli/internal/config"
	"github.com/kubeforge/cli/internal/core"
	"github.com/kubeforge/cli/internal/errors"
	"github.com/kubeforge/cli/internal/resource"
)

// obj builds a minimal unstructured-backed model entry for enrichment
// tests.
func obj(kind, name string, mutate ...func(map[string]any)) *resource.Resource {
	object := map[string]any{
		"apiVersion": "v1",
		"kind":       kind,
		"metadata":   map[string]any{"name": name},
	}
	for _, m := range mutate {
		m(object)
	}
	return &resource.Resource{
		Object: &unstructured.Unstructured{Object: object},
		Origin: resource.OriginFragment,
		Source: "test",
	}
}

func modelOf(items ...*resource.Resource) *resource.Model {
	m := resource.NewModel()
	m.Append(items...)
	return m
}

// withPodTemplate adds a pod template with the given containers.
func withPodTemplate(containers ...map[string]any) func(map[string]any) {
	return func(o map[string]any) {
		list := make([]any, 0, len(containers))
		for _, c := range containers {
			list = append(list, c)
		}
		o["spec"] = map[string]any{
			"template": map[string]any{
				"metadata": map[string]any{},
				"spec":     map[string]any{"containers": list},
			},
		}
	}
}

// recordingEnricher tracks invocation order for chain tests.
type recordingEnricher struct {
	name string
	log  *[]string
	err  error
}

func (e *recordingEnricher) Name() string { return e.name }

func (e *recordingEnricher) Enrich(*resource.Model) error {
	*e.log = append(*e.log, e.name)
	return e.err
}

func TestChain(t *testing.T) {
	t.Run("runs stages in order", func(t *testing.T) {
		var log []string
		chain := NewChain(
			&recordingEnricher{name: "first", log: &log},
			&recordingEnricher{name: "second", log: &log},
			&recordingEnricher{name: "third", log: &log},
		)

		require.NoError(t, chain.Enrich(modelOf()))
		assert.Equal(t, []string{"first", "second", "third"}, log)
	})

	t.Run("first failure aborts the rest", func(t *testing.T) {
		var log []string
		boom := stderrors.New("boom")
		chain := NewChain(
			&recordingEnricher{name: "first", log: &log},
			&recordingEnricher{name: "second", log: &log, err: boom},
			&recordingEnricher{name: "third", log: &log},
		)

		err := chain.Enrich(modelOf())

		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrEnrichment))
		assert.True(t, stderrors.Is(err, boom))
		assert.Contains(t, err.Error(), "second")
		assert.Equal(t, []string{"first", "second"}, log)
	})
}

func TestDefaultChain(t *testing.T) {
	project := core.Project{Name: "shop", Version: "1.4.0-SNAPSHOT", Group: "acme"}

	t.Run("unknown customizer fails before anything runs", func(t *testing.T) {
		_, err := DefaultChain(project, config.EnricherConfig{
			Customize: []string{"seccomp"},
		})

		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrConfiguration))
		assert.Contains(t, err.Error(), "seccomp")
		assert.Contains(t, err.Error(), "annotations, imagePullPolicy, namespace")
	})

	t.Run("enriches labels then selectors then customizers", func(t *testing.T) {
		chain, err := DefaultChain(project, config.EnricherConfig{
			Customize: []string{"namespace"},
			Config:    map[string]map[string]string{"namespace": {"name": "staging"}},
		})
		require.NoError(t, err)

		model := modelOf(obj("Service", "api"))
		require.NoError(t, chain.Enrich(model))

		svc := model.Resources()[0]
		assert.Equal(t, "shop", svc.Labels()["app"])
		assert.Equal(t, "latest", svc.Labels()["version"])
		assert.Equal(t, "staging", svc.Namespace())

		selector, _, err := unstructured.NestedStringMap(svc.Object.Object, "spec", "selector")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"app": "shop", "version": "latest", "group": "acme"}, selector)
	})

	t.Run("chain is idempotent", func(t *testing.T) {
		chain, err := DefaultChain(project, config.EnricherConfig{
			Customize: []string{"namespace", "annotations", "imagePullPolicy"},
			Config: map[string]map[string]string{
				"namespace":       {"name": "staging"},
				"annotations":     {"team": "checkout"},
				"imagePullPolicy": {"policy": "IfNotPresent"},
			},
		})
		require.NoError(t, err)

		model := modelOf(
			obj("Service", "api"),
			obj("Deployment", "api", withPodTemplate(map[string]any{"name": "app", "image": "shop:1.0"})),
			obj("ConfigMap", "settings"),
		)

		require.NoError(t, chain.Enrich(model))
		snapshot := model.Clone()

		require.NoError(t, chain.Enrich(model))
		assert.Equal(t, snapshot.Objects(), model.Objects())
	})
}
