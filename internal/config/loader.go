package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/kubeforge/cli/internal/errors"
)

// Environment variable prefix for kforge configuration.
const envPrefix = "KFORGE"

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	// Set up environment variable bindings
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind specific environment variables
	_ = v.BindEnv("mode", "KFORGE_MODE")
	_ = v.BindEnv("resourceDir", "KFORGE_RESOURCE_DIR")
	_ = v.BindEnv("targetDir", "KFORGE_TARGET_DIR")
	_ = v.BindEnv("workDir", "KFORGE_WORK_DIR")
	_ = v.BindEnv("format", "KFORGE_FORMAT")
	_ = v.BindEnv("skip", "KFORGE_SKIP")
	_ = v.BindEnv("project.name", "KFORGE_PROJECT_NAME")
	_ = v.BindEnv("project.version", "KFORGE_PROJECT_VERSION")
	_ = v.BindEnv("project.group", "KFORGE_PROJECT_GROUP")

	return &Loader{v: v}
}

// Load loads configuration for a project directory. If configFile is empty,
// it reads kforge.yaml from the project directory; a missing default file is
// fine and yields an env-only configuration. An explicitly named file must
// exist. Environment variables take precedence over file values.
func (l *Loader) Load(projectDir, configFile string) (*Config, error) {
	explicit := configFile != ""

	path := configFile
	if path == "" {
		path = ConfigFile(projectDir)
	}

	expandedPath, err := ExpandPath(path)
	if err != nil {
		return nil, errors.WrapConfiguration(err, "expanding config path")
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		notFound := false
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			notFound = true
		} else if os.IsNotExist(err) {
			notFound = true
		}
		if !notFound {
			return nil, errors.NewConfigurationError(
				"reading config file: "+err.Error(),
				expandedPath,
				"check the YAML syntax of "+expandedPath,
			)
		}
		if explicit {
			return nil, errors.NewConfigurationError(
				"config file not found: "+expandedPath,
				"config",
				"create the file or drop the --config flag",
			)
		}
		// Default config file not found is OK, use defaults + env vars.
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapConfiguration(err, "unmarshaling config")
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration and applies defaults.
func (l *Loader) LoadWithDefaults(projectDir, configFile string) (*Config, error) {
	cfg, err := l.Load(projectDir, configFile)
	if err != nil {
		return nil, err
	}

	return cfg.WithDefaults(), nil
}

// ConfigFileExists checks whether the project has a config file.
func ConfigFileExists(projectDir string) (bool, error) {
	expandedPath, err := ExpandPath(ConfigFile(projectDir))
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
