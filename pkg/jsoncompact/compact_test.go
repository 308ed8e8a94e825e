package jsoncompact

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompact_BasicArrayTrimming(t *testing.T) {
	input := `{"items": [1, 2, 3, 4, 5, 6, 7, 8, 9, 10]}`
	opts := &Options{MaxArrayItems: 3}

	result, err := Compact([]byte(input), opts)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(result, &parsed))

	items := parsed["items"].([]any)
	assert.Len(t, items, 4) // 3 items + indicator
	assert.Equal(t, float64(1), items[0])
	assert.Equal(t, "... (7 more items)", items[3])
}

func TestCompact_ArrayWithinLimit(t *testing.T) {
	result, err := Compact([]byte(`{"items": [1, 2, 3]}`), &Options{MaxArrayItems: 5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"items": [1, 2, 3]}`, string(result))
}

func TestCompact_EmptyInput(t *testing.T) {
	result, err := Compact(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestCompact_InvalidJSON(t *testing.T) {
	_, err := Compact([]byte(`{"keyword": `), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestCompact_MaxDepth(t *testing.T) {
	result, err := Compact([]byte(`{"a": {"b": {"c": 1}}}`), &Options{MaxDepth: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": {"b": "[max depth]"}}`, string(result))
}

func TestCompactValue_StringTruncationIsRuneSafe(t *testing.T) {
	v := CompactValue("kata✓kunci", &Options{MaxStringLen: 5})
	assert.Equal(t, "kata✓... (5 more chars)", v)
}

func TestCompactValue_StringWithinLimit(t *testing.T) {
	assert.Equal(t, "short", CompactValue("short", &Options{MaxStringLen: 10}))
	assert.Equal(t, strings.Repeat("x", 50), CompactValue(strings.Repeat("x", 50), &Options{}))
}

func TestPreview_OffendingElement(t *testing.T) {
	item := map[string]any{
		"keyword":       strings.Repeat("a", 10),
		"search_volume": json.Number("12"),
		"tags":          []any{"x", "y", "z", "w"},
	}

	got := Preview(item, &Options{MaxArrayItems: 2, MaxStringLen: 4})
	assert.JSONEq(t, `{"keyword":"aaaa... (6 more chars)","search_volume":12,"tags":["x","y","... (2 more items)"]}`, got)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, DefaultMaxArrayItems, opts.MaxArrayItems)
	assert.Equal(t, DefaultMaxStringLen, opts.MaxStringLen)
	assert.Equal(t, DefaultMaxDepth, opts.MaxDepth)
}
