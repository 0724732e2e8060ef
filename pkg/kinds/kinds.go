// Package kinds classifies Kubernetes resource kinds for descriptor
// generation: which API version a kind defaults to when a fragment omits
// one, and where a kind declares its pod selector.
package kinds

// Controller kinds that default to the dialect's apps API version.
// Everything else defaults to the dialect's core version.
const (
	KindDeployment            = "Deployment"
	KindReplicaSet            = "ReplicaSet"
	KindStatefulSet           = "StatefulSet"
	KindDaemonSet             = "DaemonSet"
	KindDeploymentConfig      = "DeploymentConfig"
	KindReplicationController = "ReplicationController"
	KindService               = "Service"
)

// Dialect is the pair of default API versions a generation mode writes
// into resources that do not declare one.
type Dialect struct {
	// Core is the default for plain kinds (Service, ConfigMap, ...).
	Core string
	// Apps is the default for controller kinds.
	Apps string
}

// SelectorShape describes where a kind declares its pod selector.
type SelectorShape int

const (
	// SelectorNone marks kinds without a pod selector.
	SelectorNone SelectorShape = iota
	// SelectorMap marks kinds whose selector is a plain label map at
	// spec.selector.
	SelectorMap
	// SelectorSet marks kinds whose selector is a LabelSelector at
	// spec.selector.matchLabels.
	SelectorSet
)

// dialects maps generation mode names to their API version defaults.
var dialects = map[string]Dialect{
	"kubernetes": {Core: "v1", Apps: "apps/v1"},
	"openshift":  {Core: "v1", Apps: "apps.openshift.io/v1"},
}

// controllerKinds are the kinds whose missing apiVersion resolves to the
// dialect's apps version rather than the core version.
var controllerKinds = map[string]bool{
	KindDeployment:       true,
	KindReplicaSet:       true,
	KindStatefulSet:      true,
	KindDaemonSet:        true,
	KindDeploymentConfig: true,
}

// selectorShapes maps kinds to the shape of their pod selector.
var selectorShapes = map[string]SelectorShape{
	// Plain label map at spec.selector
	KindService:               SelectorMap,
	KindReplicationController: SelectorMap,
	KindDeploymentConfig:      SelectorMap,

	// LabelSelector at spec.selector.matchLabels
	KindDeployment:  SelectorSet,
	KindReplicaSet:  SelectorSet,
	KindStatefulSet: SelectorSet,
	KindDaemonSet:   SelectorSet,
}

// DialectFor returns the API version dialect for a generation mode.
func DialectFor(mode string) (Dialect, bool) {
	d, ok := dialects[mode]
	return d, ok
}

// IsController reports whether kind defaults to the apps API version.
func IsController(kind string) bool {
	return controllerKinds[kind]
}

// DefaultAPIVersion returns the API version written into a resource of
// the given kind when it does not declare one.
func DefaultAPIVersion(kind string, d Dialect) string {
	if controllerKinds[kind] {
		return d.Apps
	}
	return d.Core
}

// Shape returns the selector shape for kind. Kinds without a pod
// selector return SelectorNone.
func Shape(kind string) SelectorShape {
	return selectorShapes[kind]
}

// SelectorPath returns the unstructured field path of the selector label
// map for kind, or nil for kinds without a selector.
func SelectorPath(kind string) []string {
	switch selectorShapes[kind] {
	case SelectorMap:
		return []string{"spec", "selector"}
	case SelectorSet:
		return []string{"spec", "selector", "matchLabels"}
	default:
		return nil
	}
}
