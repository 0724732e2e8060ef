// Package fragment loads hand-authored resource fragments: YAML, JSON or
// CUE files in the project's resource directory. Fragments pass through
// property filtering and parsing and end up at the front of the
// descriptor, before any synthesized resource.
package fragment

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kubeforge/cli/internal/core"
	"github.com/kubeforge/cli/internal/errors"
	"github.com/kubeforge/cli/internal/output"
	"github.com/kubeforge/cli/internal/resource"
	"github.com/kubeforge/cli/pkg/kinds"
)

// Load runs the full fragment path: list the resource directory, filter
// project properties into each file, and parse the results into model
// entries. The returned resources keep file order.
func Load(ctx context.Context, dir, workDir string, project core.Project, dialect kinds.Dialect) ([]*resource.Resource, error) {
	files, err := List(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		output.Debug("no resource fragments found", "dir", dir)
		return nil, nil
	}
	output.Debug("loading resource fragments", "dir", dir, "files", len(files))

	filtered, err := Filter(files, workDir, project)
	if err != nil {
		return nil, err
	}

	return Parse(ctx, filtered, dialect)
}

// List returns the fragment files of dir sorted by filename. A missing
// directory yields an empty list; subdirectories are not descended into.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewIOError("reading resource directory", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml", ".json", ".cue":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
