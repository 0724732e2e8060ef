package output

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/kubeforge/cli/internal/resource"
)

// Digest computes a deterministic SHA256 digest over the descriptor
// content.
//
// Algorithm:
//  1. Take the model entries in descriptor order (GroupedByKind)
//  2. json.Marshal each resource's Object (Go sorts map keys alphabetically)
//  3. Concatenate serialized bytes with newline separators
//  4. SHA256 the result → "sha256:<hex>"
//
// Two models with the same resources in the same authoring order produce
// the same digest regardless of serialization format.
func Digest(model *resource.Model) string {
	grouped := model.GroupedByKind()
	items := make([]*unstructured.Unstructured, 0, len(grouped))
	for _, r := range grouped {
		items = append(items, r.Object)
	}
	return DigestObjects(items)
}

// DigestObjects computes the digest over descriptor items in the given
// order. Diff uses it to detect an unchanged descriptor without a
// per-resource comparison.
func DigestObjects(items []*unstructured.Unstructured) string {
	h := sha256.New()
	for i, obj := range items {
		b, err := json.Marshal(obj.Object)
		if err != nil {
			// json.Marshal on map[string]interface{} should never fail in
			// practice but fall back to a stable string form if it does
			b = []byte(fmt.Sprintf("%v", obj.Object))
		}
		h.Write(b)
		if i < len(items)-1 {
			h.Write([]byte("\n"))
		}
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil))
}
