// Package config provides configuration loading and management.
//
// Configuration is read from kforge.yaml in the project directory,
// overridden by KFORGE_* environment variables and command-line flags.
package config

import (
	"path/filepath"

	"dario.cat/mergo"

	"github.com/kubeforge/cli/internal/core"
	"github.com/kubeforge/cli/pkg/kinds"
)

// Config represents the full project configuration. Every field is
// optional; unset values are filled by WithDefaults.
type Config struct {
	// Project identifies the application being packaged.
	Project ProjectConfig `json:"project,omitempty" mapstructure:"project"`

	// Mode selects the target cluster flavor.
	// Env: KFORGE_MODE, Default: "kubernetes"
	Mode string `json:"mode,omitempty" mapstructure:"mode"`

	// ResourceDir holds the resource fragments, relative to the project
	// directory unless absolute.
	// Env: KFORGE_RESOURCE_DIR, Default: "k8s"
	ResourceDir string `json:"resourceDir,omitempty" mapstructure:"resourceDir"`

	// TargetDir receives the generated descriptor.
	// Env: KFORGE_TARGET_DIR, Default: "dist"
	TargetDir string `json:"targetDir,omitempty" mapstructure:"targetDir"`

	// WorkDir holds intermediate files such as filtered fragments.
	// Env: KFORGE_WORK_DIR, Default: ".kforge"
	WorkDir string `json:"workDir,omitempty" mapstructure:"workDir"`

	// EnrichedDir receives one file per enriched resource.
	// Default: "<targetDir>/enriched"
	EnrichedDir string `json:"enrichedDir,omitempty" mapstructure:"enrichedDir"`

	// Format selects the descriptor encoding (yaml or json).
	// Env: KFORGE_FORMAT, Default: "yaml"
	Format string `json:"format,omitempty" mapstructure:"format"`

	// Skip disables descriptor generation entirely.
	// Env: KFORGE_SKIP
	Skip bool `json:"skip,omitempty" mapstructure:"skip"`

	// Resources configures synthesized services and the controller.
	Resources ResourcesConfig `json:"resources,omitempty" mapstructure:"resources"`

	// Images lists the container images the controller runs.
	Images []ImageConfig `json:"images,omitempty" mapstructure:"images"`

	// Enrichers configures the enrichment chain.
	Enrichers EnricherConfig `json:"enrichers,omitempty" mapstructure:"enrichers"`
}

// ProjectConfig identifies the project. Name and Version feed the identity
// labels stamped on every resource.
type ProjectConfig struct {
	// Name is the project name.
	// Env: KFORGE_PROJECT_NAME
	Name string `json:"name,omitempty" mapstructure:"name"`

	// Version is the project version. A -SNAPSHOT suffix marks a
	// development build.
	// Env: KFORGE_PROJECT_VERSION
	Version string `json:"version,omitempty" mapstructure:"version"`

	// Group is an optional grouping identifier, e.g. an organization name.
	// Env: KFORGE_PROJECT_GROUP
	Group string `json:"group,omitempty" mapstructure:"group"`
}

// ResourcesConfig configures resource synthesis.
type ResourcesConfig struct {
	// Annotations are applied to synthesized resources by category.
	Annotations AnnotationsConfig `json:"annotations,omitempty" mapstructure:"annotations"`

	// Services lists the Services to synthesize.
	Services []ServiceConfig `json:"services,omitempty" mapstructure:"services"`

	// Controller configures the synthesized workload controller.
	Controller ControllerConfig `json:"controller,omitempty" mapstructure:"controller"`
}

// AnnotationsConfig carries annotations for synthesized resources.
type AnnotationsConfig struct {
	Service    map[string]string `json:"service,omitempty" mapstructure:"service"`
	Controller map[string]string `json:"controller,omitempty" mapstructure:"controller"`
}

// ServiceConfig describes one Service to synthesize.
type ServiceConfig struct {
	// Name is the service name. Defaults to the project name.
	Name string `json:"name,omitempty" mapstructure:"name"`

	// Headless sets clusterIP: None.
	Headless bool `json:"headless,omitempty" mapstructure:"headless"`

	// Type is the service type, e.g. ClusterIP or NodePort.
	Type string `json:"type,omitempty" mapstructure:"type"`

	// Labels override the identity labels on the service metadata.
	Labels map[string]string `json:"labels,omitempty" mapstructure:"labels"`

	// Selector overrides the identity-derived pod selector.
	Selector map[string]string `json:"selector,omitempty" mapstructure:"selector"`

	// Ports lists the exposed ports.
	Ports []ServicePortConfig `json:"ports,omitempty" mapstructure:"ports"`
}

// ServicePortConfig describes one exposed service port.
type ServicePortConfig struct {
	// Port is the port exposed by the service.
	Port int32 `json:"port,omitempty" mapstructure:"port"`

	// TargetPort is the container port traffic is sent to. Defaults to Port.
	TargetPort int32 `json:"targetPort,omitempty" mapstructure:"targetPort"`

	// Protocol is TCP, UDP or SCTP. Default: "TCP"
	Protocol string `json:"protocol,omitempty" mapstructure:"protocol"`

	// Name names the port. Required when a service exposes several ports.
	Name string `json:"name,omitempty" mapstructure:"name"`

	// NodePort pins the node port for NodePort services.
	NodePort int32 `json:"nodePort,omitempty" mapstructure:"nodePort"`
}

// ControllerConfig describes the synthesized workload controller.
type ControllerConfig struct {
	// Kind is ReplicationController or ReplicaSet.
	// Default: "ReplicationController"
	Kind string `json:"kind,omitempty" mapstructure:"kind"`

	// Name overrides the controller name. Defaults to the project name.
	Name string `json:"name,omitempty" mapstructure:"name"`

	// Replicas is the desired replica count. Nil means 1; zero is a valid
	// explicit value.
	Replicas *int32 `json:"replicas,omitempty" mapstructure:"replicas"`
}

// ImageConfig describes one container image run by the controller.
type ImageConfig struct {
	// Name is the full image reference, e.g. registry/app:1.4.0.
	Name string `json:"name,omitempty" mapstructure:"name"`

	// Alias names the container. Defaults to the image basename without tag.
	Alias string `json:"alias,omitempty" mapstructure:"alias"`

	// Ports lists container ports as "8080" or "8080/udp".
	Ports []string `json:"ports,omitempty" mapstructure:"ports"`

	// Env sets container environment variables.
	Env map[string]string `json:"env,omitempty" mapstructure:"env"`

	// ImagePullPolicy overrides the version-derived pull policy.
	ImagePullPolicy string `json:"imagePullPolicy,omitempty" mapstructure:"imagePullPolicy"`
}

// EnricherConfig configures the enrichment chain.
type EnricherConfig struct {
	// Customize lists customizer enrichers appended to the chain, in order.
	Customize []string `json:"customize,omitempty" mapstructure:"customize"`

	// Config carries per-enricher settings, keyed by enricher name.
	Config map[string]map[string]string `json:"config,omitempty" mapstructure:"config"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `kforge init` to generate the initial config file.
func DefaultConfig() *Config {
	replicas := int32(1)
	return &Config{
		Mode:        "kubernetes",
		ResourceDir: "k8s",
		TargetDir:   "dist",
		WorkDir:     ".kforge",
		Format:      "yaml",
		Resources: ResourcesConfig{
			Controller: ControllerConfig{
				Kind:     kinds.KindReplicationController,
				Replicas: &replicas,
			},
		},
	}
}

// ProjectIdentity returns the project identity carried by the config.
func (c *Config) ProjectIdentity() core.Project {
	return core.Project{
		Name:    c.Project.Name,
		Version: c.Project.Version,
		Group:   c.Project.Group,
	}
}

// WithDefaults returns a copy of the config with unset fields filled from
// DefaultConfig. Explicit values, including zero replicas, are preserved.
func (c *Config) WithDefaults() *Config {
	merged := *c
	if err := mergo.Merge(&merged, DefaultConfig()); err != nil {
		// Merging two values of the same struct type cannot fail; keep the
		// explicit values on the off chance it ever does.
		return &merged
	}
	if merged.EnrichedDir == "" {
		merged.EnrichedDir = filepath.Join(merged.TargetDir, "enriched")
	}
	return &merged
}
