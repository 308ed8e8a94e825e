// Package query provides JQ-based filtering of keyword input before validation.
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/itchyny/gojq"
)

// Engine executes JQ expressions against decoded JSON values.
type Engine struct{}

// NewEngine creates a new query engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Apply runs expression against value and returns its single result.
// Typical expressions reshape or narrow the keyword array, e.g.
// `map(select(.search_volume >= 1000))` or `.data`.
// An expression producing zero or several values is an error.
func (e *Engine) Apply(value any, expression string) (any, error) {
	code, err := compile(expression)
	if err != nil {
		return nil, err
	}

	iter := code.Run(normalize(value))

	var results []any
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}

		if err, isErr := v.(error); isErr {
			return nil, errors.New(formatJQError(err))
		}

		results = append(results, v)
		if len(results) > 1 {
			return nil, fmt.Errorf("filter must produce exactly one value, got more (wrap the expression in [...] to collect results)")
		}
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("filter produced no value")
	}
	return results[0], nil
}

// ValidateExpression checks if a JQ expression is valid without executing it.
func (e *Engine) ValidateExpression(expression string) error {
	_, err := compile(expression)
	return err
}

func compile(expression string) (*gojq.Code, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}
	return code, nil
}

// normalize converts json.Number values, which gojq rejects, into int or
// float64. Overflowing numbers become ±Inf and are rejected later by
// validation.
func normalize(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil && i >= math.MinInt && i <= math.MaxInt {
			return int(i)
		}
		f, _ := val.Float64()
		return f
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	default:
		return v
	}
}

// formatJQError creates a helpful error message for JQ execution errors.
//
// Runtime JQ errors (like "cannot iterate over: null") are plain errors
// without typed wrappers in gojq, so string matching is used for hints.
func formatJQError(err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return "filter halted"
		}
		return fmt.Sprintf("filter halted with: %v", haltErr.Value())
	}

	errStr := err.Error()

	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the path may not exist in this input)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(errStr, "expected an object but got: array"),
		strings.Contains(errStr, "array") && strings.Contains(errStr, "cannot be indexed"):
		hint = " (expected object but got array, try map(...) or '.[]')"
	}

	return "filter error: " + errStr + hint
}
