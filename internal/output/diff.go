package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"golang.org/x/term"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/yaml"

	"github.com/kubeforge/cli/internal/errors"
	"github.com/kubeforge/cli/internal/resource"
)

// DiffResult represents differences between the descriptor on disk and a
// freshly generated model.
type DiffResult struct {
	// HasChanges indicates if there are differences.
	HasChanges bool

	// Added resources (generated now, absent from the previous descriptor).
	Added []string

	// Removed resources (in the previous descriptor, no longer generated).
	Removed []string

	// Modified resources (present in both with differing content).
	Modified []ModifiedResource
}

// ModifiedResource represents a resource with changes.
type ModifiedResource struct {
	// Name is the resource identifier (kind/name).
	Name string

	// Diff is the rendered diff output.
	Diff string
}

// IsEmpty returns true if there are no changes.
func (r *DiffResult) IsEmpty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Modified) == 0
}

// Summary returns a one-line summary of changes.
func (r *DiffResult) Summary() string {
	if r.IsEmpty() {
		return "No changes"
	}

	parts := make([]string, 0, 3)
	if len(r.Added) > 0 {
		parts = append(parts, fmt.Sprintf("%d added", len(r.Added)))
	}
	if len(r.Removed) > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", len(r.Removed)))
	}
	if len(r.Modified) > 0 {
		parts = append(parts, fmt.Sprintf("%d modified", len(r.Modified)))
	}

	return strings.Join(parts, ", ")
}

// UseColor decides whether diff output should be colorized: only on a
// terminal, and never when explicitly disabled.
func UseColor(noColor bool) bool {
	if noColor {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// DecodeDescriptor parses a previously written descriptor document into
// its item objects. Both YAML and JSON descriptors decode here since the
// parser is JSON-semantics YAML.
func DecodeDescriptor(data []byte) ([]*unstructured.Unstructured, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var doc struct {
		Items []map[string]any `json:"items"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse(err, "decoding descriptor")
	}

	items := make([]*unstructured.Unstructured, 0, len(doc.Items))
	for _, item := range doc.Items {
		items = append(items, &unstructured.Unstructured{Object: item})
	}
	return items, nil
}

// CompareModel computes the difference between a previous descriptor's
// items and a freshly generated model.
func CompareModel(previous []*unstructured.Unstructured, model *resource.Model, useColor bool) (*DiffResult, error) {
	result := &DiffResult{}

	previousByKey := make(map[string]*unstructured.Unstructured, len(previous))
	var previousOrder []string
	for _, obj := range previous {
		key := diffKey(obj)
		if _, seen := previousByKey[key]; !seen {
			previousOrder = append(previousOrder, key)
		}
		previousByKey[key] = obj
	}

	nextByKey := make(map[string]*unstructured.Unstructured, model.Len())
	for _, res := range model.GroupedByKind() {
		key := diffKey(res.Object)
		nextByKey[key] = res.Object

		prevObj, exists := previousByKey[key]
		if !exists {
			result.Added = append(result.Added, key)
			result.HasChanges = true
			continue
		}

		diff, err := compareObjects(prevObj, res.Object, useColor)
		if err != nil {
			return nil, fmt.Errorf("comparing %s: %w", key, err)
		}
		if diff != "" {
			result.Modified = append(result.Modified, ModifiedResource{Name: key, Diff: diff})
			result.HasChanges = true
		}
	}

	for _, key := range previousOrder {
		if _, exists := nextByKey[key]; !exists {
			result.Removed = append(result.Removed, key)
			result.HasChanges = true
		}
	}

	return result, nil
}

// diffKey generates a unique key for a resource (kind/name, with the
// namespace in between when one is set).
func diffKey(obj *unstructured.Unstructured) string {
	if ns := obj.GetNamespace(); ns != "" {
		return fmt.Sprintf("%s/%s/%s", obj.GetKind(), ns, obj.GetName())
	}
	return fmt.Sprintf("%s/%s", obj.GetKind(), obj.GetName())
}

// compareObjects compares two resource documents and returns a rendered
// diff, or an empty string when they are equal.
func compareObjects(previous, next *unstructured.Unstructured, useColor bool) (string, error) {
	previousYAML, err := yaml.Marshal(previous.Object)
	if err != nil {
		return "", fmt.Errorf("serializing previous resource: %w", err)
	}

	nextYAML, err := yaml.Marshal(next.Object)
	if err != nil {
		return "", fmt.Errorf("serializing generated resource: %w", err)
	}

	previousInput, err := parseYAMLInput("previous", previousYAML)
	if err != nil {
		return "", fmt.Errorf("parsing previous YAML: %w", err)
	}

	nextInput, err := parseYAMLInput("generated", nextYAML)
	if err != nil {
		return "", fmt.Errorf("parsing generated YAML: %w", err)
	}

	report, err := dyff.CompareInputFiles(previousInput, nextInput)
	if err != nil {
		return "", fmt.Errorf("comparing YAML: %w", err)
	}

	if len(report.Diffs) == 0 {
		return "", nil
	}

	return renderDyffReport(report, useColor)
}

// parseYAMLInput parses YAML bytes into a dyff input file.
func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{Location: name, Documents: nil}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{Location: name, Documents: docs}, nil
}

// renderDyffReport renders a dyff report to a string.
func renderDyffReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}

	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	result := buf.String()

	// Trim trailing whitespace dyff leaves on alignment padding
	lines := strings.Split(result, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// RenderDiffResult renders a DiffResult for terminal display.
func RenderDiffResult(result *DiffResult, useColor bool) string {
	if result.IsEmpty() {
		return "No changes detected."
	}

	added := lipgloss.NewStyle().Foreground(ColorGreen)
	removed := lipgloss.NewStyle().Foreground(ColorRed)
	modified := lipgloss.NewStyle().Foreground(ColorYellow)
	if !useColor {
		added = lipgloss.NewStyle()
		removed = lipgloss.NewStyle()
		modified = lipgloss.NewStyle()
	}

	var sb strings.Builder

	if len(result.Added) > 0 {
		sb.WriteString(added.Render("Added:"))
		sb.WriteString("\n")
		for _, name := range result.Added {
			sb.WriteString("  + ")
			sb.WriteString(added.Render(name))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(result.Removed) > 0 {
		sb.WriteString(removed.Render("Removed:"))
		sb.WriteString("\n")
		for _, name := range result.Removed {
			sb.WriteString("  - ")
			sb.WriteString(removed.Render(name))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(result.Modified) > 0 {
		sb.WriteString(modified.Render("Modified:"))
		sb.WriteString("\n")
		for _, mod := range result.Modified {
			sb.WriteString("  ~ ")
			sb.WriteString(modified.Render(mod.Name))
			sb.WriteString("\n")
			if mod.Diff != "" {
				for _, line := range strings.Split(mod.Diff, "\n") {
					if line != "" {
						sb.WriteString("    ")
						sb.WriteString(line)
						sb.WriteString("\n")
					}
				}
			}
			sb.WriteString("\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}
