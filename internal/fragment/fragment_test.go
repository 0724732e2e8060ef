package fragment

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/kubeforge/cli/internal/core"
	"github.com/kubeforge/cli/pkg/kinds"
)

// writeFragment creates one fragment file inside dir.
func writeFragment(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func kubernetesDialect(t *testing.T) kinds.Dialect {
	t.Helper()
	d, ok := kinds.DialectFor("kubernetes")
	require.True(t, ok)
	return d
}

func TestList(t *testing.T) {
	t.Run("returns fragment files sorted by name", func(t *testing.T) {
		dir := t.TempDir()
		writeFragment(t, dir, "zz-last.yaml", "")
		writeFragment(t, dir, "aa-first.yml", "")
		writeFragment(t, dir, "mm-middle.json", "")
		writeFragment(t, dir, "nn-cue.cue", "")

		files, err := List(dir)

		require.NoError(t, err)
		require.Len(t, files, 4)
		assert.Equal(t, filepath.Join(dir, "aa-first.yml"), files[0])
		assert.Equal(t, filepath.Join(dir, "mm-middle.json"), files[1])
		assert.Equal(t, filepath.Join(dir, "nn-cue.cue"), files[2])
		assert.Equal(t, filepath.Join(dir, "zz-last.yaml"), files[3])
	})

	t.Run("ignores unknown extensions and subdirectories", func(t *testing.T) {
		dir := t.TempDir()
		writeFragment(t, dir, "service.yaml", "")
		writeFragment(t, dir, "README.md", "")
		writeFragment(t, dir, "notes.txt", "")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
		writeFragment(t, filepath.Join(dir, "nested"), "ignored.yaml", "")

		files, err := List(dir)

		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, filepath.Join(dir, "service.yaml"), files[0])
	})

	t.Run("missing directory yields empty list", func(t *testing.T) {
		files, err := List(filepath.Join(t.TempDir(), "does-not-exist"))

		require.NoError(t, err)
		assert.Empty(t, files)
	})
}

func TestLoad(t *testing.T) {
	project := core.Project{Name: "shop", Version: "1.4.0-SNAPSHOT", Group: "acme"}

	t.Run("filters and parses fragments in file order", func(t *testing.T) {
		dir := t.TempDir()
		workDir := t.TempDir()
		writeFragment(t, dir, "10-service.yaml", `
kind: Service
metadata:
  name: {{.Project.Name}}
`)
		writeFragment(t, dir, "20-config.yaml", `
kind: ConfigMap
metadata:
  name: {{.Project.Name}}-settings
data:
  version: "{{.Project.Label}}"
`)

		resources, err := Load(context.Background(), dir, workDir, project, kubernetesDialect(t))

		require.NoError(t, err)
		require.Len(t, resources, 2)
		assert.Equal(t, "Service", resources[0].Kind())
		assert.Equal(t, "shop", resources[0].Name())
		assert.Equal(t, "v1", resources[0].Object.GetAPIVersion())
		assert.Equal(t, "ConfigMap", resources[1].Kind())
		assert.Equal(t, "shop-settings", resources[1].Name())

		version, found, err := unstructured.NestedString(resources[1].Object.Object, "data", "version")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "latest", version)
	})

	t.Run("empty resource directory yields no resources", func(t *testing.T) {
		resources, err := Load(context.Background(), filepath.Join(t.TempDir(), "k8s"), t.TempDir(), project, kubernetesDialect(t))

		require.NoError(t, err)
		assert.Empty(t, resources)
	})
}
