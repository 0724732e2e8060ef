package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFilePath(t *testing.T) {
	assert.Equal(t, ConfigFileName, ConfigFile(""))
	assert.Equal(t, filepath.Join("proj", ConfigFileName), ConfigFile("proj"))
	assert.Equal(t, filepath.Join("/abs/proj", ConfigFileName), ConfigFile("/abs/proj"))
}

func TestResolveDir(t *testing.T) {
	tests := []struct {
		name       string
		projectDir string
		dir        string
		expected   string
	}{
		{
			name:       "relative dir joins project dir",
			projectDir: "/proj",
			dir:        "k8s",
			expected:   filepath.Join("/proj", "k8s"),
		},
		{
			name:       "absolute dir kept as-is",
			projectDir: "/proj",
			dir:        "/elsewhere/k8s",
			expected:   "/elsewhere/k8s",
		},
		{
			name:       "empty dir stays empty",
			projectDir: "/proj",
			dir:        "",
			expected:   "",
		},
		{
			name:       "empty project dir keeps relative dir",
			projectDir: "",
			dir:        "k8s",
			expected:   "k8s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveDir(tt.projectDir, tt.dir))
		})
	}
}

func TestProjectPaths(t *testing.T) {
	cfg := (&Config{TargetDir: "build"}).WithDefaults()

	paths := ProjectPaths("/proj", cfg)

	assert.Equal(t, filepath.Join("/proj", ConfigFileName), paths.ConfigFile)
	assert.Equal(t, filepath.Join("/proj", "k8s"), paths.ResourceDir)
	assert.Equal(t, filepath.Join("/proj", "build"), paths.TargetDir)
	assert.Equal(t, filepath.Join("/proj", ".kforge"), paths.WorkDir)
	assert.Equal(t, filepath.Join("/proj", "build", "enriched"), paths.EnrichedDir)
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty path",
			input:    "",
			expected: "",
		},
		{
			name:     "absolute path",
			input:    "/absolute/path",
			expected: "/absolute/path",
		},
		{
			name:     "relative path",
			input:    "relative/path",
			expected: "relative/path",
		},
		{
			name:     "home directory only",
			input:    "~",
			expected: homeDir,
		},
		{
			name:     "path with tilde",
			input:    "~/some/path",
			expected: filepath.Join(homeDir, "some/path"),
		},
		{
			name:     "tilde username pattern (not expanded)",
			input:    "~username/file",
			expected: "~username/file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}
