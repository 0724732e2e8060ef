package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/kubeforge/cli/internal/errors"
	"github.com/kubeforge/cli/internal/resource"
)

// DescriptorOptions controls where and how the descriptor is written.
type DescriptorOptions struct {
	// Dir is the target directory.
	Dir string
	// Mode names the descriptor file: kubernetes or openshift.
	Mode string
	// Format is the serialization format.
	Format Format
}

// DescriptorPath returns the descriptor file path for the options.
func DescriptorPath(opts DescriptorOptions) string {
	return filepath.Join(opts.Dir, opts.Mode+opts.Format.Ext())
}

// RenderDescriptor encodes the model's List document in the given format.
func RenderDescriptor(model *resource.Model, format Format) ([]byte, error) {
	doc := model.ListDocument()

	if format == FormatJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding JSON: %w", err)
		}
		return append(data, '\n'), nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("closing YAML encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDescriptor renders the descriptor and writes it to
// <dir>/<mode>.<ext>, creating the directory when needed.
// It returns the written path.
func WriteDescriptor(model *resource.Model, opts DescriptorOptions) (string, error) {
	data, err := RenderDescriptor(model, opts.Format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return "", errors.NewIOError("cannot create target directory", opts.Dir, err)
	}

	path := DescriptorPath(opts)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.NewIOError("cannot write descriptor", path, err)
	}

	Debug("wrote descriptor", "path", path, "resources", model.Len())
	return path, nil
}

// writeObject writes a single resource object to the writer.
func writeObject(obj *unstructured.Unstructured, format Format, w io.Writer) error {
	if format == FormatJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(obj.Object)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	err := encoder.Encode(obj.Object)
	if closeErr := encoder.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
