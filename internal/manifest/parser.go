package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/agentx-labs/assetctl/internal/asset"
	"go.yaml.in/yaml/v3"
)

// ParseBody decodes a JSON asset body.
func ParseBody(data []byte) (*asset.Body, error) {
	var body asset.Body
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("parsing asset body: %w", err)
	}
	return &body, nil
}

// ParseFile reads an asset body from a YAML or JSON file. The file is
// validated against the schema first; the returned result lists any issues
// and the body is nil when the file is invalid.
func ParseFile(path string) (*asset.Body, *ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading asset file %s: %w", path, err)
	}

	// YAML is a superset of JSON: decode generically and re-encode as JSON
	// so the schema and the json tags of asset.Body both apply.
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	jsonData, err := json.Marshal(jsonCompatible(raw))
	if err != nil {
		return nil, nil, fmt.Errorf("converting %s to JSON: %w", path, err)
	}

	result, err := validateJSON(jsonData)
	if err != nil {
		return nil, nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		return nil, result, nil
	}
	body, err := ParseBody(jsonData)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return body, result, nil
}

// jsonCompatible rebuilds YAML-decoded maps and slices so they marshal as
// JSON objects and arrays.
func jsonCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = jsonCompatible(item)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, item := range val {
			a[i] = jsonCompatible(item)
		}
		return a
	default:
		return val
	}
}
