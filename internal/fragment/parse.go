package fragment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	goyaml "gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/kubeforge/cli/internal/errors"
	"github.com/kubeforge/cli/internal/resource"
	"github.com/kubeforge/cli/pkg/kinds"
)

// parseResult carries one worker's output back to the collector.
type parseResult struct {
	index     int
	resources []*resource.Resource
	err       error
}

// Parse decodes filtered fragments into model entries. Files are parsed
// concurrently and reassembled strictly in file order; when several files
// fail, the error of the first failing file in that order is returned.
func Parse(ctx context.Context, files []FilteredFile, dialect kinds.Dialect) ([]*resource.Resource, error) {
	if len(files) == 0 {
		return nil, nil
	}

	resultChan := make(chan parseResult, len(files))
	var wg sync.WaitGroup

	for i, file := range files {
		wg.Add(1)
		go func(index int, f FilteredFile) {
			defer wg.Done()
			resources, err := parseFile(f, dialect)
			resultChan <- parseResult{index: index, resources: resources, err: err}
		}(i, file)
	}

	// Close channel when all workers complete
	go func() {
		wg.Wait()
		close(resultChan)
	}()

	collected := make([]parseResult, len(files))
	for result := range resultChan {
		collected[result.index] = result
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []*resource.Resource
	for _, result := range collected {
		if result.err != nil {
			return nil, result.err
		}
		out = append(out, result.resources...)
	}
	return out, nil
}

// parseFile decodes one fragment by extension.
func parseFile(f FilteredFile, dialect kinds.Dialect) ([]*resource.Resource, error) {
	var docs []map[string]any
	var err error

	switch strings.ToLower(filepath.Ext(f.Source)) {
	case ".yaml", ".yml":
		docs, err = decodeYAML(f)
	case ".json":
		docs, err = decodeJSON(f)
	case ".cue":
		docs, err = decodeCUE(f)
	default:
		// List only hands over known extensions.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []*resource.Resource
	for _, doc := range docs {
		flattened, err := flatten(f.Source, doc)
		if err != nil {
			return nil, err
		}
		for _, obj := range flattened {
			res, err := toResource(f.Source, obj, dialect)
			if err != nil {
				return nil, err
			}
			out = append(out, res)
		}
	}
	return out, nil
}

// decodeYAML splits a fragment into documents and converts each to a
// JSON-typed object. The yaml.v3 decoder handles the document stream; the
// re-marshal through sigs.k8s.io/yaml keeps value types JSON-compatible,
// which the unstructured machinery requires.
func decodeYAML(f FilteredFile) ([]map[string]any, error) {
	var docs []map[string]any

	decoder := goyaml.NewDecoder(bytes.NewReader(f.Data))
	for {
		var node any
		err := decoder.Decode(&node)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParseError("invalid YAML: "+err.Error(), f.Source, "", err)
		}
		if node == nil {
			// Empty document, e.g. a trailing separator.
			continue
		}

		raw, err := goyaml.Marshal(node)
		if err != nil {
			return nil, errors.NewParseError("re-encoding YAML document: "+err.Error(), f.Source, "", err)
		}

		var obj map[string]any
		if err := sigsyaml.Unmarshal(raw, &obj); err != nil {
			return nil, errors.NewParseError(
				"YAML document is not an object: "+err.Error(),
				f.Source,
				"each fragment document must be a resource object",
				err,
			)
		}
		if len(obj) == 0 {
			continue
		}
		docs = append(docs, obj)
	}
	return docs, nil
}

// decodeJSON parses a single-document JSON fragment.
func decodeJSON(f FilteredFile) ([]map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal(f.Data, &obj); err != nil {
		return nil, errors.NewParseError("invalid JSON: "+err.Error(), f.Source, "", err)
	}
	if len(obj) == 0 {
		return nil, nil
	}
	return []map[string]any{obj}, nil
}

// decodeCUE compiles a CUE fragment and exports its concrete value. The
// round trip through JSON both enforces concreteness and yields the value
// types the unstructured machinery requires.
func decodeCUE(f FilteredFile) ([]map[string]any, error) {
	cuectx := cuecontext.New()
	val := cuectx.CompileBytes(f.Data, cue.Filename(f.Source))
	if err := val.Err(); err != nil {
		return nil, errors.NewParseError("invalid CUE: "+err.Error(), f.Source, "", err)
	}

	raw, err := val.MarshalJSON()
	if err != nil {
		return nil, errors.NewParseError(
			"CUE fragment is not concrete: "+err.Error(),
			f.Source,
			"fragments must evaluate to a single concrete resource object",
			err,
		)
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, errors.NewParseError("CUE fragment is not an object: "+err.Error(), f.Source, "", err)
	}
	return []map[string]any{obj}, nil
}

// flatten expands List documents into their items. Items follow the same
// rules as top-level documents, so nested Lists flatten too.
func flatten(source string, doc map[string]any) ([]map[string]any, error) {
	kind, _ := doc["kind"].(string)
	if kind != "List" {
		return []map[string]any{doc}, nil
	}

	rawItems, ok := doc["items"]
	if !ok || rawItems == nil {
		return nil, nil
	}
	items, ok := rawItems.([]any)
	if !ok {
		return nil, errors.NewParseError("List items must be an array", source, "", nil)
	}

	var out []map[string]any
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, errors.NewParseError(fmt.Sprintf("List item %d is not an object", i), source, "", nil)
		}
		nested, err := flatten(source, obj)
		if err != nil {
			return nil, err
		}
		out = append(out, nested...)
	}
	return out, nil
}

// toResource wraps a parsed document as a fragment model entry, filling
// in the dialect's API version when the document does not declare one.
func toResource(source string, doc map[string]any, dialect kinds.Dialect) (*resource.Resource, error) {
	kind, ok := doc["kind"].(string)
	if !ok || kind == "" {
		return nil, errors.NewParseError(
			"fragment document has no kind",
			source,
			"every fragment document needs a string kind field",
			nil,
		)
	}

	if v, _ := doc["apiVersion"].(string); v == "" {
		doc["apiVersion"] = kinds.DefaultAPIVersion(kind, dialect)
	}

	return &resource.Resource{
		Object: &unstructured.Unstructured{Object: doc},
		Origin: resource.OriginFragment,
		Source: source,
	}, nil
}
