// Package core defines shared domain types used across kforge packages.
// It depends only on stdlib, with no Kubernetes machinery and no internal
// packages.
package core

import "strings"

// Project identity label keys applied to generated resources.
const (
	// LabelApp carries the project name.
	LabelApp = "app"

	// LabelVersion carries the project version label.
	LabelVersion = "version"

	// LabelGroup carries the project group, when one is configured.
	LabelGroup = "group"
)

// SnapshotSuffix marks a version as a moving pre-release. Such versions
// collapse to SnapshotLabel in labels and image handling.
const (
	SnapshotSuffix = "-SNAPSHOT"
	SnapshotLabel  = "latest"
)

// Project is the read-only identity of the project a descriptor is
// generated for. It is computed once per invocation and passed explicitly
// into fragment loading, synthesis, and every enricher.
type Project struct {
	// Name identifies the project. Required whenever resources are
	// synthesized from configuration.
	Name string

	// Version is the project version as configured, e.g. "1.4.0-SNAPSHOT".
	Version string

	// Group is an optional coarse grouping, e.g. a team or product name.
	Group string
}

// Snapshot reports whether the project version denotes a moving
// pre-release state.
func (p Project) Snapshot() bool {
	return strings.HasSuffix(p.Version, SnapshotSuffix)
}

// Label returns the version label value: snapshot versions collapse to
// "latest", anything else is used verbatim.
func (p Project) Label() string {
	if p.Snapshot() {
		return SnapshotLabel
	}
	return p.Version
}

// Labels returns the computed project label set. Empty identity parts
// are omitted rather than written as empty values.
func (p Project) Labels() map[string]string {
	labels := make(map[string]string, 3)
	if p.Name != "" {
		labels[LabelApp] = p.Name
	}
	if v := p.Label(); v != "" {
		labels[LabelVersion] = v
	}
	if p.Group != "" {
		labels[LabelGroup] = p.Group
	}
	return labels
}

// SelectorLabels returns the identity labels used for synthesized Service
// selectors and selector completion. Identical key set to Labels.
func (p Project) SelectorLabels() map[string]string {
	return p.Labels()
}

// IdentityKeys returns the label keys that make up the project identity,
// in a fixed order.
func IdentityKeys() []string {
	return []string{LabelApp, LabelVersion, LabelGroup}
}
