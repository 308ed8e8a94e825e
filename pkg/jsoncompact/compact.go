// Package jsoncompact shortens JSON values for display, trimming long arrays
// and strings so that an offending input element can be echoed back safely.
package jsoncompact

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Options controls JSON compaction behavior.
type Options struct {
	MaxArrayItems int // Trim arrays to N items (0 = no limit)
	MaxStringLen  int // Truncate strings longer than N runes (0 = no limit)
	MaxDepth      int // Max recursion depth (0 = unlimited)
}

// Default values for compaction options.
const (
	DefaultMaxArrayItems = 3
	DefaultMaxStringLen  = 120
	DefaultMaxDepth      = 4
)

// DefaultOptions returns the default compaction settings.
func DefaultOptions() *Options {
	return &Options{
		MaxArrayItems: DefaultMaxArrayItems,
		MaxStringLen:  DefaultMaxStringLen,
		MaxDepth:      DefaultMaxDepth,
	}
}

// Compact compresses JSON bytes by trimming arrays and strings.
// Returns error if input is not valid JSON.
// If opts is nil, DefaultOptions() is used.
func Compact(data []byte, opts *Options) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	return json.Marshal(CompactValue(v, opts))
}

// CompactValue compresses a parsed JSON value (any type from json.Unmarshal).
// If opts is nil, DefaultOptions() is used.
func CompactValue(v any, opts *Options) any {
	if opts == nil {
		opts = DefaultOptions()
	}
	return compactRecursive(v, opts, 0)
}

// Preview renders a compacted value as a single line of JSON.
func Preview(v any, opts *Options) string {
	b, err := json.Marshal(CompactValue(v, opts))
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func compactRecursive(v any, opts *Options, depth int) any {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return "[max depth]"
	}

	switch val := v.(type) {
	case []any:
		return compactArray(val, opts, depth)
	case map[string]any:
		return compactObject(val, opts, depth)
	case string:
		return compactString(val, opts)
	default:
		return v
	}
}

func compactString(s string, opts *Options) string {
	if opts.MaxStringLen <= 0 {
		return s
	}
	n := utf8.RuneCountInString(s)
	if n <= opts.MaxStringLen {
		return s
	}

	cut := 0
	for i := 0; i < opts.MaxStringLen; i++ {
		_, size := utf8.DecodeRuneInString(s[cut:])
		cut += size
	}
	return s[:cut] + fmt.Sprintf("... (%d more chars)", n-opts.MaxStringLen)
}

func compactArray(arr []any, opts *Options, depth int) []any {
	if len(arr) == 0 {
		return arr
	}

	if opts.MaxArrayItems <= 0 || len(arr) <= opts.MaxArrayItems {
		result := make([]any, len(arr))
		for i, item := range arr {
			result[i] = compactRecursive(item, opts, depth+1)
		}
		return result
	}

	result := make([]any, opts.MaxArrayItems+1)
	for i := 0; i < opts.MaxArrayItems; i++ {
		result[i] = compactRecursive(arr[i], opts, depth+1)
	}
	result[opts.MaxArrayItems] = fmt.Sprintf("... (%d more items)", len(arr)-opts.MaxArrayItems)
	return result
}

func compactObject(obj map[string]any, opts *Options, depth int) map[string]any {
	result := make(map[string]any, len(obj))
	for k, v := range obj {
		result[k] = compactRecursive(v, opts, depth+1)
	}
	return result
}
