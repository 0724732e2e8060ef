package synth

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/kubeforge/cli/internal/config"
	"github.com/kubeforge/cli/internal/core"
	"github.com/kubeforge/cli/internal/resource"
	"github.com/kubeforge/cli/pkg/kinds"
)

// Services builds one Service per configured entry, in config order.
func Services(entries []config.ServiceConfig, annotations map[string]string, project core.Project) ([]*resource.Resource, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	out := make([]*resource.Resource, 0, len(entries))
	for i, entry := range entries {
		svc := buildService(entry, annotations, project)
		res, err := toUnstructured(svc, "v1", kinds.KindService, fmt.Sprintf("resources.services[%d]", i))
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

func buildService(entry config.ServiceConfig, annotations map[string]string, project core.Project) *corev1.Service {
	name := entry.Name
	if name == "" {
		name = project.Name
	}

	labels := entry.Labels
	if len(labels) == 0 {
		labels = project.Labels()
	}

	selector := entry.Selector
	if len(selector) == 0 {
		selector = project.SelectorLabels()
	}

	svc := &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:        name,
			Labels:      labels,
			Annotations: annotations,
		},
		Spec: corev1.ServiceSpec{
			Selector: selector,
			Ports:    servicePorts(entry.Ports),
		},
	}

	if entry.Type != "" {
		svc.Spec.Type = corev1.ServiceType(entry.Type)
	}
	if entry.Headless {
		svc.Spec.ClusterIP = corev1.ClusterIPNone
	}

	return svc
}

func servicePorts(entries []config.ServicePortConfig) []corev1.ServicePort {
	if len(entries) == 0 {
		return nil
	}

	ports := make([]corev1.ServicePort, 0, len(entries))
	for _, entry := range entries {
		port := corev1.ServicePort{
			Name:     entry.Name,
			Port:     entry.Port,
			Protocol: corev1.ProtocolTCP,
		}
		if entry.Protocol != "" {
			port.Protocol = corev1.Protocol(entry.Protocol)
		}

		target := entry.TargetPort
		if target == 0 {
			target = entry.Port
		}
		port.TargetPort = intstr.FromInt32(target)

		if entry.NodePort != 0 {
			port.NodePort = entry.NodePort
		}

		ports = append(ports, port)
	}
	return ports
}
