// Package resource holds the descriptor resource model: an ordered,
// heterogeneous collection of Kubernetes objects assembled from fragment
// files and synthesized project configuration.
package resource

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// Origin identifies where a descriptor resource came from.
type Origin string

const (
	// OriginFragment marks resources parsed from hand-authored fragment files.
	OriginFragment Origin = "fragment"

	// OriginSynthesized marks resources synthesized from project configuration.
	OriginSynthesized Origin = "config"
)

// Resource is a single descriptor entry.
type Resource struct {
	Object *unstructured.Unstructured

	// Origin records whether the resource was parsed or synthesized.
	Origin Origin

	// Source names the fragment file or configuration section the
	// resource came from. Used in warnings and error messages.
	Source string
}

// GVK returns the GroupVersionKind of the resource.
func (r *Resource) GVK() schema.GroupVersionKind {
	return r.Object.GroupVersionKind()
}

// Kind returns the resource kind (e.g., "Deployment").
func (r *Resource) Kind() string {
	return r.Object.GetKind()
}

// Name returns the resource name from metadata.
func (r *Resource) Name() string {
	return r.Object.GetName()
}

// Namespace returns the resource namespace from metadata.
// Empty string for cluster-scoped or unplaced resources.
func (r *Resource) Namespace() string {
	return r.Object.GetNamespace()
}

// Labels returns the resource labels.
func (r *Resource) Labels() map[string]string {
	return r.Object.GetLabels()
}

// ID returns the kind/name pair used for duplicate detection.
func (r *Resource) ID() string {
	return r.Kind() + "/" + r.Name()
}

// Model is the ordered descriptor content. Fragment entries precede
// synthesized entries; within each origin, insertion order is authoring
// order. The model never deduplicates.
type Model struct {
	items []*Resource
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{}
}

// Append adds resources to the end of the model.
func (m *Model) Append(items ...*Resource) {
	m.items = append(m.items, items...)
}

// Len returns the number of resources in the model.
func (m *Model) Len() int {
	return len(m.items)
}

// Resources returns the entries in insertion order.
func (m *Model) Resources() []*Resource {
	out := make([]*Resource, len(m.items))
	copy(out, m.items)
	return out
}

// Objects returns the underlying unstructured objects in insertion order.
func (m *Model) Objects() []*unstructured.Unstructured {
	out := make([]*unstructured.Unstructured, 0, len(m.items))
	for _, r := range m.items {
		out = append(out, r.Object)
	}
	return out
}

// ByKind returns the entries of the given kind in insertion order.
func (m *Model) ByKind(kind string) []*Resource {
	var out []*Resource
	for _, r := range m.items {
		if r.Kind() == kind {
			out = append(out, r)
		}
	}
	return out
}

// Clone returns a deep copy of the model. Enrichment runs on a clone in
// dry runs so the caller's model stays untouched.
func (m *Model) Clone() *Model {
	clone := &Model{items: make([]*Resource, 0, len(m.items))}
	for _, r := range m.items {
		clone.items = append(clone.items, &Resource{
			Object: r.Object.DeepCopy(),
			Origin: r.Origin,
			Source: r.Source,
		})
	}
	return clone
}

// GroupedByKind returns the entries regrouped for output: kinds appear in
// order of first appearance, and entries keep insertion order within
// their kind.
func (m *Model) GroupedByKind() []*Resource {
	byKind := make(map[string][]*Resource, len(m.items))
	var order []string
	for _, r := range m.items {
		kind := r.Kind()
		if _, seen := byKind[kind]; !seen {
			order = append(order, kind)
		}
		byKind[kind] = append(byKind[kind], r)
	}

	out := make([]*Resource, 0, len(m.items))
	for _, kind := range order {
		out = append(out, byKind[kind]...)
	}
	return out
}

// Duplicates returns groups of entries sharing a kind/name pair, in order
// of first appearance. Duplicates are legal but worth a warning.
func (m *Model) Duplicates() [][]*Resource {
	byID := make(map[string][]*Resource, len(m.items))
	var order []string
	for _, r := range m.items {
		id := r.ID()
		if _, seen := byID[id]; !seen {
			order = append(order, id)
		}
		byID[id] = append(byID[id], r)
	}

	var out [][]*Resource
	for _, id := range order {
		if group := byID[id]; len(group) > 1 {
			out = append(out, group)
		}
	}
	return out
}

// ListDocument returns the descriptor document: a v1 List whose items are
// the grouped model entries.
func (m *Model) ListDocument() map[string]any {
	items := make([]any, 0, len(m.items))
	for _, r := range m.GroupedByKind() {
		items = append(items, r.Object.Object)
	}
	return map[string]any{
		"apiVersion": "v1",
		"kind":       "List",
		"items":      items,
	}
}
