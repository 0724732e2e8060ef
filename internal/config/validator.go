package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/kubeforge/cli/internal/core"
	"github.com/kubeforge/cli/internal/output"
	"github.com/kubeforge/cli/pkg/kinds"
)

// nameRegex validates Kubernetes resource names per RFC 1123.
var nameRegex = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks the configuration for values the pipeline cannot work
// with. It reports every problem it finds, not just the first one. The
// config should have defaults applied before validation.
func Validate(cfg *Config) ValidationErrors {
	var errs ValidationErrors

	add := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if _, ok := kinds.DialectFor(cfg.Mode); !ok {
		add("mode", "unknown mode %q, must be one of: kubernetes, openshift", cfg.Mode)
	}

	if cfg.Format != "" && cfg.Format != "yaml" && cfg.Format != "json" {
		add("format", "unknown format %q, must be yaml or json", cfg.Format)
	}

	// Synthesis derives resource names and selectors from the project
	// name; fragment-only projects can do without one.
	if cfg.Project.Name == "" {
		if len(cfg.Resources.Services) > 0 || len(cfg.Images) > 0 {
			add("project.name", "is required when services or images are configured")
		}
	} else {
		validateName("project.name", cfg.Project.Name, &errs)
	}

	kind := cfg.Resources.Controller.Kind
	if kind != "" && kind != kinds.KindReplicationController && kind != kinds.KindReplicaSet {
		add("resources.controller.kind", "unknown controller kind %q, must be %s or %s",
			kind, kinds.KindReplicationController, kinds.KindReplicaSet)
	}
	if r := cfg.Resources.Controller.Replicas; r != nil && *r < 0 {
		add("resources.controller.replicas", "must not be negative, got %d", *r)
	}
	if name := cfg.Resources.Controller.Name; name != "" {
		validateName("resources.controller.name", name, &errs)
	}

	for i, svc := range cfg.Resources.Services {
		field := fmt.Sprintf("resources.services[%d]", i)
		if svc.Name != "" {
			validateName(field+".name", svc.Name, &errs)
		}
		if svc.Type != "" && svc.Type != "ClusterIP" && svc.Type != "NodePort" && svc.Type != "LoadBalancer" {
			add(field+".type", "unknown service type %q", svc.Type)
		}
		for j, port := range svc.Ports {
			portField := fmt.Sprintf("%s.ports[%d]", field, j)
			if port.Port < 1 || port.Port > 65535 {
				add(portField+".port", "must be between 1 and 65535, got %d", port.Port)
			}
			if port.TargetPort < 0 || port.TargetPort > 65535 {
				add(portField+".targetPort", "must be between 0 and 65535, got %d", port.TargetPort)
			}
			if p := port.Protocol; p != "" && p != "TCP" && p != "UDP" && p != "SCTP" {
				add(portField+".protocol", "unknown protocol %q, must be TCP, UDP or SCTP", p)
			}
			if port.NodePort != 0 && svc.Type != "NodePort" && svc.Type != "LoadBalancer" {
				add(portField+".nodePort", "requires service type NodePort or LoadBalancer")
			}
			if len(svc.Ports) > 1 && port.Name == "" {
				add(portField+".name", "is required when a service exposes several ports")
			}
		}
	}

	for i, img := range cfg.Images {
		field := fmt.Sprintf("images[%d]", i)
		if img.Name == "" {
			add(field+".name", "is required")
		}
		if p := img.ImagePullPolicy; p != "" && p != "Always" && p != "IfNotPresent" && p != "Never" {
			add(field+".imagePullPolicy", "unknown policy %q, must be Always, IfNotPresent or Never", p)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// validateName checks a value against RFC 1123 resource name rules.
func validateName(field, name string, errs *ValidationErrors) {
	if !nameRegex.MatchString(name) {
		*errs = append(*errs, ValidationError{
			Field:   field,
			Message: "must be a valid resource name (lowercase alphanumeric with hyphens)",
		})
	}
	if len(name) > 63 {
		*errs = append(*errs, ValidationError{
			Field:   field,
			Message: "must be at most 63 characters",
		})
	}
}

// LintVersion logs a diagnostic when the project version does not parse as
// semantic versioning. Any version string is accepted; only the -SNAPSHOT
// suffix carries meaning.
func LintVersion(version string) {
	if version == "" {
		return
	}
	base := strings.TrimSuffix(version, core.SnapshotSuffix)
	if _, err := semver.NewVersion(base); err != nil {
		output.Debug("project version is not semantic versioning",
			"version", version)
	}
}
