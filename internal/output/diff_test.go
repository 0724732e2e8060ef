package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDescriptor(t *testing.T) {
	data := []byte(`apiVersion: v1
kind: List
items:
  - apiVersion: v1
    kind: Service
    metadata:
      name: api
  - apiVersion: apps/v1
    kind: Deployment
    metadata:
      name: api
`)

	items, err := DecodeDescriptor(data)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Service", items[0].GetKind())
	assert.Equal(t, "Deployment", items[1].GetKind())
}

func TestDecodeDescriptorEmpty(t *testing.T) {
	items, err := DecodeDescriptor([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDecodeDescriptorInvalid(t *testing.T) {
	_, err := DecodeDescriptor([]byte("{not yaml"))
	assert.Error(t, err)
}

func TestCompareModelNoChanges(t *testing.T) {
	model := testModel(t)

	data, err := RenderDescriptor(model, FormatYAML)
	require.NoError(t, err)
	previous, err := DecodeDescriptor(data)
	require.NoError(t, err)

	result, err := CompareModel(previous, model, false)
	require.NoError(t, err)
	assert.False(t, result.HasChanges)
	assert.True(t, result.IsEmpty())
	assert.Equal(t, "No changes", result.Summary())
}

func TestCompareModelDetectsChanges(t *testing.T) {
	model := testModel(t)

	data, err := RenderDescriptor(model, FormatYAML)
	require.NoError(t, err)
	previous, err := DecodeDescriptor(data)
	require.NoError(t, err)

	// Mutate the generated model after snapshotting the previous state
	model.Resources()[0].Object.SetLabels(map[string]string{"app": "renamed"})

	result, err := CompareModel(previous, model, false)
	require.NoError(t, err)
	assert.True(t, result.HasChanges)
	require.Len(t, result.Modified, 1)
	assert.Equal(t, "Service/api", result.Modified[0].Name)
	assert.NotEmpty(t, result.Modified[0].Diff)
}

func TestCompareModelAddedAndRemoved(t *testing.T) {
	model := testModel(t)

	// Previous descriptor has one resource the model no longer generates
	previous, err := DecodeDescriptor([]byte(`apiVersion: v1
kind: List
items:
  - apiVersion: v1
    kind: ConfigMap
    metadata:
      name: stale
`))
	require.NoError(t, err)

	result, err := CompareModel(previous, model, false)
	require.NoError(t, err)
	assert.True(t, result.HasChanges)
	assert.Contains(t, result.Added, "Service/api")
	assert.Contains(t, result.Added, "ReplicationController/api")
	assert.Contains(t, result.Removed, "ConfigMap/stale")
	assert.Contains(t, result.Summary(), "2 added")
	assert.Contains(t, result.Summary(), "1 removed")
}

func TestRenderDiffResult(t *testing.T) {
	result := &DiffResult{
		HasChanges: true,
		Added:      []string{"Service/api"},
		Removed:    []string{"ConfigMap/stale"},
		Modified:   []ModifiedResource{{Name: "Deployment/api", Diff: "spec.replicas\n  1 -> 3"}},
	}

	out := RenderDiffResult(result, false)
	assert.Contains(t, out, "Added:")
	assert.Contains(t, out, "+ Service/api")
	assert.Contains(t, out, "Removed:")
	assert.Contains(t, out, "- ConfigMap/stale")
	assert.Contains(t, out, "Modified:")
	assert.Contains(t, out, "~ Deployment/api")
	assert.Contains(t, out, "spec.replicas")
}

func TestRenderDiffResultEmpty(t *testing.T) {
	assert.Equal(t, "No changes detected.", RenderDiffResult(&DiffResult{}, false))
}
