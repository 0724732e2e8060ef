// Package templates provides the embedded project scaffold for kforge init.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/kubeforge/cli/internal/errors"
	"github.com/kubeforge/cli/internal/output"
)

//go:embed scaffold
var scaffoldFS embed.FS

// scaffoldRoot is the template directory inside the embedded filesystem.
const scaffoldRoot = "scaffold"

// Data holds the values substituted into scaffold templates.
type Data struct {
	// ProjectName is the project name written into kforge.yaml.
	ProjectName string

	// Version is the initial project version.
	Version string

	// Mode is the default generation mode.
	Mode string

	// ResourceDir is the fragment directory name.
	ResourceDir string
}

// scaffoldFile is one entry of the embedded scaffold.
type scaffoldFile struct {
	// source is the path inside the embedded filesystem.
	source string

	// target is the output path relative to the project directory, with
	// the .tmpl suffix stripped.
	target string
}

// Scaffold renders the embedded project scaffold into targetDir. Existing
// files abort the run before anything is written, unless force is set. It
// returns the created files relative to targetDir, in walk order.
func Scaffold(targetDir string, data Data, force bool) ([]string, error) {
	files, err := listScaffold()
	if err != nil {
		return nil, err
	}

	if !force {
		for _, f := range files {
			targetPath := filepath.Join(targetDir, filepath.FromSlash(f.target))
			if _, err := os.Stat(targetPath); err == nil {
				return nil, &errors.DetailError{
					Type:     "init aborted",
					Message:  "file already exists",
					Location: targetPath,
					Hint:     "re-run with --force to overwrite scaffolded files",
					Cause:    errors.ErrIO,
				}
			}
		}
	}

	created := make([]string, 0, len(files))
	for _, f := range files {
		content, err := fs.ReadFile(scaffoldFS, f.source)
		if err != nil {
			return nil, fmt.Errorf("reading scaffold %s: %w", f.source, err)
		}

		rendered, err := render(filepath.Base(f.source), content, data)
		if err != nil {
			return nil, err
		}

		targetPath := filepath.Join(targetDir, filepath.FromSlash(f.target))
		if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
			return nil, errors.NewIOError("cannot create scaffold directory", filepath.Dir(targetPath), err)
		}
		if err := os.WriteFile(targetPath, rendered, 0o644); err != nil {
			return nil, errors.NewIOError("cannot write scaffold file", targetPath, err)
		}

		output.Debug("created file", "path", targetPath)
		created = append(created, f.target)
	}

	return created, nil
}

// listScaffold collects the scaffold files in walk order.
func listScaffold() ([]scaffoldFile, error) {
	var files []scaffoldFile

	err := fs.WalkDir(scaffoldFS, scaffoldRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(scaffoldRoot, path)
		if err != nil {
			return err
		}

		files = append(files, scaffoldFile{
			source: path,
			target: filepath.ToSlash(strings.TrimSuffix(relPath, ".tmpl")),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// render executes one scaffold template.
func render(name string, content []byte, data Data) ([]byte, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing scaffold template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering scaffold template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
