package config

import (
	"os"
	"path/filepath"
)

// ConfigFileName is the per-project configuration file name.
const ConfigFileName = "kforge.yaml"

// Paths contains the resolved filesystem paths of a project. All directory
// fields are absolute or relative to the process working directory, never
// relative to each other.
type Paths struct {
	// ConfigFile is the path to the project config file.
	ConfigFile string

	// ResourceDir holds the resource fragments.
	ResourceDir string

	// TargetDir receives the generated descriptor.
	TargetDir string

	// WorkDir holds intermediate files.
	WorkDir string

	// EnrichedDir receives per-resource output files.
	EnrichedDir string
}

// ConfigFile returns the path of the config file inside projectDir.
func ConfigFile(projectDir string) string {
	if projectDir == "" {
		return ConfigFileName
	}
	return filepath.Join(projectDir, ConfigFileName)
}

// ProjectPaths resolves the configured directories against the project
// directory. Absolute paths in the config are kept as-is.
func ProjectPaths(projectDir string, cfg *Config) *Paths {
	return &Paths{
		ConfigFile:  ConfigFile(projectDir),
		ResourceDir: ResolveDir(projectDir, cfg.ResourceDir),
		TargetDir:   ResolveDir(projectDir, cfg.TargetDir),
		WorkDir:     ResolveDir(projectDir, cfg.WorkDir),
		EnrichedDir: ResolveDir(projectDir, cfg.EnrichedDir),
	}
}

// ResolveDir resolves dir against projectDir unless dir is absolute.
func ResolveDir(projectDir, dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	if projectDir == "" {
		return dir
	}
	return filepath.Join(projectDir, dir)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}
