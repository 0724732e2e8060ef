package config

import (
	"os"

	"github.com/kubeforge/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolveOptions describes one configuration value and its candidates.
type ResolveOptions struct {
	// Key is the config file key, e.g. "mode".
	Key string
	// FlagValue is the command-line flag value (empty if not set).
	FlagValue string
	// EnvVar is the environment variable name, e.g. "KFORGE_MODE".
	EnvVar string
	// ConfigValue is the value from the config file (empty if not set).
	ConfigValue string
	// Default is the built-in fallback.
	Default string
}

// ResolvedValue is the outcome of resolving one configuration value.
type ResolvedValue struct {
	// Key is the config file key.
	Key string
	// Value is the effective value.
	Value string
	// Source indicates where the value came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// Resolve picks the effective value using precedence:
// (1) flag, (2) environment variable, (3) config file, (4) default.
// Lower-precedence values that were set are recorded in Shadowed.
func Resolve(opts ResolveOptions) ResolvedValue {
	result := ResolvedValue{
		Key:      opts.Key,
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := ""
	if opts.EnvVar != "" {
		envValue = os.Getenv(opts.EnvVar)
	}

	record := func(source ConfigSource, value string) {
		if value != "" {
			result.Shadowed[source] = value
		}
	}

	switch {
	case opts.FlagValue != "":
		result.Value = opts.FlagValue
		result.Source = SourceFlag
		record(SourceEnv, envValue)
		record(SourceConfig, opts.ConfigValue)
		record(SourceDefault, opts.Default)
	case envValue != "":
		result.Value = envValue
		result.Source = SourceEnv
		record(SourceConfig, opts.ConfigValue)
		record(SourceDefault, opts.Default)
	case opts.ConfigValue != "":
		result.Value = opts.ConfigValue
		result.Source = SourceConfig
		record(SourceDefault, opts.Default)
	default:
		result.Value = opts.Default
		result.Source = SourceDefault
	}

	return result
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
