package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubeforge/cli/pkg/kinds"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "kubernetes", cfg.Mode)
	assert.Equal(t, "k8s", cfg.ResourceDir)
	assert.Equal(t, "dist", cfg.TargetDir)
	assert.Equal(t, ".kforge", cfg.WorkDir)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, kinds.KindReplicationController, cfg.Resources.Controller.Kind)
	require.NotNil(t, cfg.Resources.Controller.Replicas)
	assert.Equal(t, int32(1), *cfg.Resources.Controller.Replicas)

	// No project identity by default
	assert.Empty(t, cfg.Project.Name)
	assert.Empty(t, cfg.Images)
}

func TestWithDefaults(t *testing.T) {
	t.Run("fills unset fields", func(t *testing.T) {
		cfg := (&Config{}).WithDefaults()

		assert.Equal(t, "kubernetes", cfg.Mode)
		assert.Equal(t, "k8s", cfg.ResourceDir)
		assert.Equal(t, "dist", cfg.TargetDir)
		assert.Equal(t, filepath.Join("dist", "enriched"), cfg.EnrichedDir)
		assert.Equal(t, kinds.KindReplicationController, cfg.Resources.Controller.Kind)
		require.NotNil(t, cfg.Resources.Controller.Replicas)
		assert.Equal(t, int32(1), *cfg.Resources.Controller.Replicas)
	})

	t.Run("preserves explicit values", func(t *testing.T) {
		cfg := (&Config{
			Mode:      "openshift",
			TargetDir: "build",
			Resources: ResourcesConfig{
				Controller: ControllerConfig{Kind: kinds.KindReplicaSet},
			},
		}).WithDefaults()

		assert.Equal(t, "openshift", cfg.Mode)
		assert.Equal(t, "build", cfg.TargetDir)
		assert.Equal(t, filepath.Join("build", "enriched"), cfg.EnrichedDir)
		assert.Equal(t, kinds.KindReplicaSet, cfg.Resources.Controller.Kind)
	})

	t.Run("preserves explicit zero replicas", func(t *testing.T) {
		zero := int32(0)
		cfg := (&Config{
			Resources: ResourcesConfig{
				Controller: ControllerConfig{Replicas: &zero},
			},
		}).WithDefaults()

		require.NotNil(t, cfg.Resources.Controller.Replicas)
		assert.Equal(t, int32(0), *cfg.Resources.Controller.Replicas)
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		original := &Config{}
		_ = original.WithDefaults()

		assert.Empty(t, original.Mode)
		assert.Empty(t, original.TargetDir)
	})
}

func TestProjectIdentity(t *testing.T) {
	cfg := &Config{
		Project: ProjectConfig{
			Name:    "shop",
			Version: "1.4.0-SNAPSHOT",
			Group:   "acme",
		},
	}

	p := cfg.ProjectIdentity()

	assert.Equal(t, "shop", p.Name)
	assert.Equal(t, "1.4.0-SNAPSHOT", p.Version)
	assert.Equal(t, "acme", p.Group)
	assert.True(t, p.Snapshot())
}
