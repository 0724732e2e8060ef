package kinds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectFor(t *testing.T) {
	tests := []struct {
		name string
		mode string
		want Dialect
		ok   bool
	}{
		{
			name: "kubernetes",
			mode: "kubernetes",
			want: Dialect{Core: "v1", Apps: "apps/v1"},
			ok:   true,
		},
		{
			name: "openshift",
			mode: "openshift",
			want: Dialect{Core: "v1", Apps: "apps.openshift.io/v1"},
			ok:   true,
		},
		{
			name: "unknown mode",
			mode: "nomad",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DialectFor(tt.mode)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultAPIVersion(t *testing.T) {
	k8s, ok := DialectFor("kubernetes")
	require.True(t, ok)
	oc, ok := DialectFor("openshift")
	require.True(t, ok)

	tests := []struct {
		name    string
		kind    string
		dialect Dialect
		want    string
	}{
		{
			name:    "Service gets core version",
			kind:    "Service",
			dialect: k8s,
			want:    "v1",
		},
		{
			name:    "ConfigMap gets core version",
			kind:    "ConfigMap",
			dialect: k8s,
			want:    "v1",
		},
		{
			name:    "ReplicationController gets core version",
			kind:    "ReplicationController",
			dialect: k8s,
			want:    "v1",
		},
		{
			name:    "Deployment gets apps version",
			kind:    "Deployment",
			dialect: k8s,
			want:    "apps/v1",
		},
		{
			name:    "ReplicaSet gets apps version",
			kind:    "ReplicaSet",
			dialect: k8s,
			want:    "apps/v1",
		},
		{
			name:    "DeploymentConfig gets openshift apps version",
			kind:    "DeploymentConfig",
			dialect: oc,
			want:    "apps.openshift.io/v1",
		},
		{
			name:    "StatefulSet gets openshift apps version",
			kind:    "StatefulSet",
			dialect: oc,
			want:    "apps.openshift.io/v1",
		},
		{
			name:    "unknown kind gets core version",
			kind:    "MyResource",
			dialect: k8s,
			want:    "v1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultAPIVersion(tt.kind, tt.dialect)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShape(t *testing.T) {
	tests := []struct {
		name string
		kind string
		want SelectorShape
	}{
		{name: "Service", kind: "Service", want: SelectorMap},
		{name: "ReplicationController", kind: "ReplicationController", want: SelectorMap},
		{name: "DeploymentConfig", kind: "DeploymentConfig", want: SelectorMap},
		{name: "Deployment", kind: "Deployment", want: SelectorSet},
		{name: "ReplicaSet", kind: "ReplicaSet", want: SelectorSet},
		{name: "StatefulSet", kind: "StatefulSet", want: SelectorSet},
		{name: "DaemonSet", kind: "DaemonSet", want: SelectorSet},
		{name: "ConfigMap", kind: "ConfigMap", want: SelectorNone},
		{name: "unknown kind", kind: "MyResource", want: SelectorNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Shape(tt.kind))
		})
	}
}

func TestSelectorPath(t *testing.T) {
	assert.Equal(t, []string{"spec", "selector"}, SelectorPath("Service"))
	assert.Equal(t, []string{"spec", "selector"}, SelectorPath("ReplicationController"))
	assert.Equal(t, []string{"spec", "selector", "matchLabels"}, SelectorPath("Deployment"))
	assert.Equal(t, []string{"spec", "selector", "matchLabels"}, SelectorPath("ReplicaSet"))
	assert.Nil(t, SelectorPath("ConfigMap"))
}

func TestIsController(t *testing.T) {
	assert.True(t, IsController("Deployment"))
	assert.True(t, IsController("DeploymentConfig"))
	assert.False(t, IsController("ReplicationController"))
	assert.False(t, IsController("Service"))
}
