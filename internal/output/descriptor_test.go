package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/kubeforge/cli/internal/resource"
)

func testModel(t *testing.T) *resource.Model {
	t.Helper()

	m := resource.NewModel()
	m.Append(
		&resource.Resource{
			Object: &unstructured.Unstructured{Object: map[string]any{
				"apiVersion": "v1",
				"kind":       "Service",
				"metadata":   map[string]any{"name": "api", "labels": map[string]any{"app": "api"}},
			}},
			Origin: resource.OriginFragment,
			Source: "service.yaml",
		},
		&resource.Resource{
			Object: &unstructured.Unstructured{Object: map[string]any{
				"apiVersion": "v1",
				"kind":       "ReplicationController",
				"metadata":   map[string]any{"name": "api"},
			}},
			Origin: resource.OriginSynthesized,
			Source: "images",
		},
	)
	return m
}

func TestDescriptorPath(t *testing.T) {
	tests := []struct {
		name string
		opts DescriptorOptions
		want string
	}{
		{
			name: "kubernetes yaml",
			opts: DescriptorOptions{Dir: "dist", Mode: "kubernetes", Format: FormatYAML},
			want: filepath.Join("dist", "kubernetes.yaml"),
		},
		{
			name: "openshift json",
			opts: DescriptorOptions{Dir: "dist", Mode: "openshift", Format: FormatJSON},
			want: filepath.Join("dist", "openshift.json"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DescriptorPath(tt.opts))
		})
	}
}

func TestRenderDescriptorYAML(t *testing.T) {
	data, err := RenderDescriptor(testModel(t), FormatYAML)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "apiVersion: v1")
	assert.Contains(t, out, "kind: List")
	assert.Contains(t, out, "kind: Service")
	assert.Contains(t, out, "kind: ReplicationController")
	// yaml.v3 with indent 2
	assert.Contains(t, out, "items:\n")
}

func TestRenderDescriptorJSON(t *testing.T) {
	data, err := RenderDescriptor(testModel(t), FormatJSON)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "List", doc["kind"])

	items, ok := doc["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestWriteDescriptor(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteDescriptor(testModel(t), DescriptorOptions{
		Dir:    filepath.Join(dir, "dist"),
		Mode:   "kubernetes",
		Format: FormatYAML,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dist", "kubernetes.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	items, err := DecodeDescriptor(data)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "Service", items[0].GetKind())
}

func TestWriteDescriptorEmptyModel(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteDescriptor(resource.NewModel(), DescriptorOptions{
		Dir:    dir,
		Mode:   "openshift",
		Format: FormatYAML,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kind: List")
	assert.Contains(t, string(data), "items: []")
}
