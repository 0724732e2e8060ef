package synth

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/kubeforge/cli/internal/config"
	"github.com/kubeforge/cli/internal/core"
	"github.com/kubeforge/cli/internal/errors"
	"github.com/kubeforge/cli/internal/resource"
	"github.com/kubeforge/cli/pkg/kinds"
)

// Controller builds the single workload controller covering the
// configured images. No images means no controller.
func Controller(cfg config.ControllerConfig, annotations map[string]string, images []config.ImageConfig, project core.Project) (*resource.Resource, error) {
	if len(images) == 0 {
		return nil, nil
	}

	name := cfg.Name
	if name == "" {
		name = project.Name
	}

	replicas := int32(1)
	if cfg.Replicas != nil {
		replicas = *cfg.Replicas
	}

	containers, err := buildContainers(images, project)
	if err != nil {
		return nil, err
	}

	meta := metav1.ObjectMeta{
		Name:        name,
		Labels:      project.Labels(),
		Annotations: annotations,
	}
	template := corev1.PodTemplateSpec{
		ObjectMeta: metav1.ObjectMeta{Labels: project.Labels()},
		Spec: corev1.PodSpec{
			Containers:    containers,
			RestartPolicy: corev1.RestartPolicyAlways,
		},
	}

	switch cfg.Kind {
	case "", kinds.KindReplicationController:
		rc := &corev1.ReplicationController{
			ObjectMeta: meta,
			Spec: corev1.ReplicationControllerSpec{
				Replicas: &replicas,
				Template: &template,
			},
		}
		return toUnstructured(rc, "v1", kinds.KindReplicationController, "resources.controller")

	case kinds.KindReplicaSet:
		rs := &appsv1.ReplicaSet{
			ObjectMeta: meta,
			Spec: appsv1.ReplicaSetSpec{
				Replicas: &replicas,
				Template: template,
			},
		}
		return toUnstructured(rs, "apps/v1", kinds.KindReplicaSet, "resources.controller")

	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unknown controller kind %q", cfg.Kind),
			"resources.controller.kind",
			"use ReplicationController or ReplicaSet",
		)
	}
}

func buildContainers(images []config.ImageConfig, project core.Project) ([]corev1.Container, error) {
	containers := make([]corev1.Container, 0, len(images))
	for i, img := range images {
		if img.Name == "" {
			return nil, errors.NewConfigurationError(
				fmt.Sprintf("image %d has no name", i),
				fmt.Sprintf("images[%d].name", i),
				"set the full image reference, e.g. registry.example.com/app:1.0.0",
			)
		}

		ports, err := containerPorts(i, img)
		if err != nil {
			return nil, err
		}

		containers = append(containers, corev1.Container{
			Name:            containerName(img),
			Image:           img.Name,
			Ports:           ports,
			Env:             envVars(img.Env),
			ImagePullPolicy: pullPolicy(img, project),
		})
	}
	return containers, nil
}

// containerName derives the container name: the alias when set, else the
// image path basename with any digest and tag stripped.
func containerName(img config.ImageConfig) string {
	if img.Alias != "" {
		return img.Alias
	}

	name := img.Name
	if i := strings.LastIndex(name, "@"); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, ":"); i >= 0 {
		name = name[:i]
	}
	return name
}

func containerPorts(index int, img config.ImageConfig) ([]corev1.ContainerPort, error) {
	if len(img.Ports) == 0 {
		return nil, nil
	}

	ports := make([]corev1.ContainerPort, 0, len(img.Ports))
	for j, spec := range img.Ports {
		port, protocol, err := parsePort(spec)
		if err != nil {
			return nil, errors.NewConfigurationError(
				fmt.Sprintf("invalid container port %q: %s", spec, err),
				fmt.Sprintf("images[%d].ports[%d]", index, j),
				`declare container ports as "8080" or "8080/udp"`,
			)
		}
		ports = append(ports, corev1.ContainerPort{ContainerPort: port, Protocol: protocol})
	}
	return ports, nil
}

// parsePort splits a "8080" or "8080/udp" declaration.
func parsePort(spec string) (int32, corev1.Protocol, error) {
	portPart := spec
	protocol := corev1.ProtocolTCP

	if i := strings.Index(spec, "/"); i >= 0 {
		portPart = spec[:i]
		switch strings.ToLower(spec[i+1:]) {
		case "tcp":
			protocol = corev1.ProtocolTCP
		case "udp":
			protocol = corev1.ProtocolUDP
		case "sctp":
			protocol = corev1.ProtocolSCTP
		default:
			return 0, "", fmt.Errorf("unknown protocol %q", spec[i+1:])
		}
	}

	port, err := strconv.ParseInt(portPart, 10, 32)
	if err != nil {
		return 0, "", fmt.Errorf("port is not a number")
	}
	if port < 1 || port > 65535 {
		return 0, "", fmt.Errorf("port %d out of range", port)
	}
	return int32(port), protocol, nil
}

// envVars maps environment settings to sorted EnvVar entries so output
// stays deterministic.
func envVars(env map[string]string) []corev1.EnvVar {
	if len(env) == 0 {
		return nil
	}

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	vars := make([]corev1.EnvVar, 0, len(keys))
	for _, k := range keys {
		vars = append(vars, corev1.EnvVar{Name: k, Value: env[k]})
	}
	return vars
}

// pullPolicy picks the image pull policy: the per-image override when
// set, Always for snapshot versions, IfNotPresent otherwise.
func pullPolicy(img config.ImageConfig, project core.Project) corev1.PullPolicy {
	if img.ImagePullPolicy != "" {
		return corev1.PullPolicy(img.ImagePullPolicy)
	}
	if project.Snapshot() {
		return corev1.PullAlways
	}
	return corev1.PullIfNotPresent
}
