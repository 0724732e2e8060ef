package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kubeforge/cli/internal/errors"
	"github.com/kubeforge/cli/internal/resource"
)

// SplitOptions controls per-resource file output.
type SplitOptions struct {
	// OutDir is the directory for the individual resource files.
	OutDir string
	// Format specifies output format: yaml or json.
	Format Format
}

// WriteEnriched writes each enriched resource to its own file under
// opts.OutDir. Files are named <lowercase-kind>-<resource-name>.<ext> and
// follow the descriptor's grouped ordering.
func WriteEnriched(model *resource.Model, opts SplitOptions) error {
	if model.Len() == 0 {
		return nil
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return errors.NewIOError("cannot create enriched resource directory", opts.OutDir, err)
	}

	// Track filenames to handle collisions
	usedNames := make(map[string]int)

	for _, res := range model.GroupedByKind() {
		filename := buildFilename(res, opts.Format, usedNames)
		path := filepath.Join(opts.OutDir, filename)

		if err := writeResourceFile(res, path, opts.Format); err != nil {
			return errors.NewIOError("cannot write enriched resource", path, err)
		}

		Debug("wrote resource file",
			"kind", res.Kind(),
			"name", res.Name(),
			"file", path,
		)
	}

	return nil
}

// buildFilename creates a filename for a resource.
func buildFilename(res *resource.Resource, format Format, usedNames map[string]int) string {
	kind := strings.ToLower(res.Kind())
	name := sanitizeName(res.Name())
	baseName := kind + "-" + name

	count, exists := usedNames[baseName]
	if exists {
		usedNames[baseName] = count + 1
		return fmt.Sprintf("%s-%d%s", baseName, count+1, format.Ext())
	}

	usedNames[baseName] = 1
	return baseName + format.Ext()
}

// sanitizeName makes a name safe for use in filenames.
func sanitizeName(name string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"\"", "",
		"<", "",
		">", "",
		"|", "-",
	)
	return replacer.Replace(name)
}

// writeResourceFile writes a single resource to a file.
func writeResourceFile(res *resource.Resource, destPath string, format Format) error {
	f, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return writeObject(res.Object, format, f)
}
