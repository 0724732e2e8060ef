package fragment

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"

	"github.com/kubeforge/cli/internal/core"
	"github.com/kubeforge/cli/internal/errors"
)

// filteredDirName is the work dir subdirectory for filtered fragments.
const filteredDirName = "filtered"

// FilteredFile is a fragment after property substitution.
type FilteredFile struct {
	// Path is the filtered copy under the work dir.
	Path string

	// Source is the original fragment file, used in messages.
	Source string

	// Data is the substituted content.
	Data []byte
}

// templateData is the property set visible to fragment templates.
type templateData struct {
	Project projectProperties
}

type projectProperties struct {
	Name    string
	Version string
	Group   string
	Label   string
}

// Filter substitutes project properties into each fragment and writes the
// results under the work dir. Fragments reference properties with actions
// such as {{.Project.Name}}; referencing an unknown property fails.
func Filter(paths []string, workDir string, project core.Project) ([]FilteredFile, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	data := templateData{
		Project: projectProperties{
			Name:    project.Name,
			Version: project.Version,
			Group:   project.Group,
			Label:   project.Label(),
		},
	}

	outDir := filepath.Join(workDir, filteredDirName)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, errors.NewIOError("creating filter output directory", outDir, err)
	}

	out := make([]FilteredFile, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.NewIOError("reading fragment", path, err)
		}

		filtered, err := substitute(path, raw, data)
		if err != nil {
			return nil, err
		}

		target := filepath.Join(outDir, filepath.Base(path))
		if err := os.WriteFile(target, filtered, 0o644); err != nil {
			return nil, errors.NewIOError("writing filtered fragment", target, err)
		}

		out = append(out, FilteredFile{Path: target, Source: path, Data: filtered})
	}
	return out, nil
}

// substitute runs one fragment through text/template.
func substitute(path string, raw []byte, data templateData) ([]byte, error) {
	tmpl, err := template.New(filepath.Base(path)).
		Option("missingkey=error").
		Parse(string(raw))
	if err != nil {
		return nil, errors.NewParseError(
			"invalid property reference: "+err.Error(),
			path,
			"fragments may reference {{.Project.Name}}, {{.Project.Version}}, {{.Project.Group}} and {{.Project.Label}}",
			err,
		)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.NewParseError(
			"property substitution failed: "+err.Error(),
			path,
			"fragments may reference {{.Project.Name}}, {{.Project.Version}}, {{.Project.Group}} and {{.Project.Label}}",
			err,
		)
	}
	return buf.Bytes(), nil
}
