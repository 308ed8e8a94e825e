package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// readJSON decodes JSON, optionally narrowing it with a jq row selector.
func (e *Engine) readJSON(data []byte, selector string) (*table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return e.valueToTable(v, selector)
}

// readYAML decodes YAML into JSON-compatible values before selecting rows.
func (e *Engine) readYAML(data []byte, selector string) (*table, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return e.valueToTable(convertYAMLToJSON(v), selector)
}

func (e *Engine) valueToTable(v any, selector string) (*table, error) {
	if selector != "" {
		selected, err := e.jq.Apply(v, selector)
		if err != nil {
			return nil, fmt.Errorf("row selector: %w", err)
		}
		v = selected
	}

	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an array of rows, got %s; use row_selector to pick it (e.g. .data)", ErrNoRows, describe(v))
	}

	t := &table{items: arr}
	var names []string
	seen := make(map[string]bool)
	for _, item := range arr {
		if obj, ok := item.(map[string]any); ok {
			for k := range obj {
				if !seen[k] {
					seen[k] = true
					names = append(names, k)
				}
			}
		}
	}
	sort.Strings(names)
	t.columns = names
	return t, nil
}

// convertYAMLToJSON recursively converts YAML-parsed values to JSON-compatible
// types. yaml.v3 produces map[string]any for mappings with string keys but
// map[any]any when any key is not a string.
func convertYAMLToJSON(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v := range val {
			result[k] = convertYAMLToJSON(v)
		}
		return result
	case map[any]any:
		result := make(map[string]any, len(val))
		for k, v := range val {
			result[fmt.Sprintf("%v", k)] = convertYAMLToJSON(v)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v := range val {
			result[i] = convertYAMLToJSON(v)
		}
		return result
	default:
		return v
	}
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	default:
		return "a number"
	}
}
