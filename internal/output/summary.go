package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kubeforge/cli/internal/core"
	"github.com/kubeforge/cli/internal/resource"
)

// SummaryOptions controls generation summary output.
type SummaryOptions struct {
	// JSON outputs structured JSON instead of human-readable text.
	JSON bool
	// Writer is the output destination.
	Writer io.Writer
}

// GenerateSummary is the structured result of a generate run.
type GenerateSummary struct {
	Project    summaryProject    `json:"project"`
	Mode       string            `json:"mode"`
	Descriptor string            `json:"descriptor,omitempty"`
	Digest     string            `json:"digest"`
	Resources  []summaryResource `json:"resources"`
	Warnings   []string          `json:"warnings,omitempty"`
}

// summaryProject carries the project identity for summary output.
type summaryProject struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Group   string `json:"group,omitempty"`
}

// summaryResource describes a generated resource.
type summaryResource struct {
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	Origin string `json:"origin"`
	Source string `json:"source,omitempty"`
}

// BuildSummary assembles the generation summary from an enriched model.
// Resources follow the descriptor's grouped ordering.
func BuildSummary(project core.Project, mode, descriptorPath string, model *resource.Model, warnings []string) *GenerateSummary {
	s := &GenerateSummary{
		Project: summaryProject{
			Name:    project.Name,
			Version: project.Version,
			Group:   project.Group,
		},
		Mode:       mode,
		Descriptor: descriptorPath,
		Digest:     Digest(model),
		Resources:  make([]summaryResource, 0, model.Len()),
		Warnings:   warnings,
	}

	for _, res := range model.GroupedByKind() {
		s.Resources = append(s.Resources, summaryResource{
			Kind:   res.Kind(),
			Name:   res.Name(),
			Origin: string(res.Origin),
			Source: res.Source,
		})
	}

	return s
}

// WriteSummary writes the generation summary.
func WriteSummary(s *GenerateSummary, opts SummaryOptions) error {
	if opts.JSON {
		encoder := json.NewEncoder(opts.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(s)
	}
	return writeSummaryHuman(s, opts.Writer)
}

// writeSummaryHuman writes the summary in human-readable format.
func writeSummaryHuman(s *GenerateSummary, w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("Project:\n")
	sb.WriteString(fmt.Sprintf("  Name:    %s\n", s.Project.Name))
	if s.Project.Version != "" {
		sb.WriteString(fmt.Sprintf("  Version: %s\n", s.Project.Version))
	}
	if s.Project.Group != "" {
		sb.WriteString(fmt.Sprintf("  Group:   %s\n", s.Project.Group))
	}
	sb.WriteString(fmt.Sprintf("  Mode:    %s\n", s.Mode))
	sb.WriteString("\n")

	sb.WriteString("Resources:\n")
	if len(s.Resources) == 0 {
		sb.WriteString("  (none)\n")
	}
	for _, res := range s.Resources {
		sb.WriteString("  ")
		sb.WriteString(FormatResourceLine(res.Kind, res.Name, res.Origin))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	for _, warning := range s.Warnings {
		sb.WriteString(StyleDim.Render("warning: "))
		sb.WriteString(warning)
		sb.WriteString("\n")
	}

	if s.Descriptor != "" {
		sb.WriteString(FormatCheckmark(fmt.Sprintf("descriptor written to %s", StyleNoun.Render(s.Descriptor))))
		sb.WriteString("\n")
	}
	sb.WriteString(StyleDim.Render("digest: " + s.Digest))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
