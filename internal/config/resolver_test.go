package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_FlagPrecedence(t *testing.T) {
	t.Setenv("KFORGE_MODE", "env-mode")

	result := Resolve(ResolveOptions{
		Key:         "mode",
		FlagValue:   "flag-mode",
		EnvVar:      "KFORGE_MODE",
		ConfigValue: "config-mode",
		Default:     "kubernetes",
	})

	assert.Equal(t, "flag-mode", result.Value)
	assert.Equal(t, SourceFlag, result.Source)
	assert.Equal(t, "env-mode", result.Shadowed[SourceEnv])
	assert.Equal(t, "config-mode", result.Shadowed[SourceConfig])
	assert.Equal(t, "kubernetes", result.Shadowed[SourceDefault])
}

func TestResolve_EnvPrecedence(t *testing.T) {
	t.Setenv("KFORGE_MODE", "env-mode")

	result := Resolve(ResolveOptions{
		Key:         "mode",
		EnvVar:      "KFORGE_MODE",
		ConfigValue: "config-mode",
		Default:     "kubernetes",
	})

	assert.Equal(t, "env-mode", result.Value)
	assert.Equal(t, SourceEnv, result.Source)
	assert.Equal(t, "config-mode", result.Shadowed[SourceConfig])
	assert.NotContains(t, result.Shadowed, SourceFlag)
}

func TestResolve_ConfigPrecedence(t *testing.T) {
	result := Resolve(ResolveOptions{
		Key:         "mode",
		EnvVar:      "KFORGE_UNSET_FOR_TEST",
		ConfigValue: "config-mode",
		Default:     "kubernetes",
	})

	assert.Equal(t, "config-mode", result.Value)
	assert.Equal(t, SourceConfig, result.Source)
	assert.Equal(t, "kubernetes", result.Shadowed[SourceDefault])
}

func TestResolve_DefaultFallback(t *testing.T) {
	result := Resolve(ResolveOptions{
		Key:     "mode",
		EnvVar:  "KFORGE_UNSET_FOR_TEST",
		Default: "kubernetes",
	})

	assert.Equal(t, "kubernetes", result.Value)
	assert.Equal(t, SourceDefault, result.Source)
	assert.Empty(t, result.Shadowed)
}

func TestResolve_NoValueAnywhere(t *testing.T) {
	result := Resolve(ResolveOptions{
		Key:    "format",
		EnvVar: "KFORGE_UNSET_FOR_TEST",
	})

	assert.Empty(t, result.Value)
	assert.Equal(t, SourceDefault, result.Source)
}
