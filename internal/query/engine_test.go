package query

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}

func TestEngine_Apply_SelectByVolume(t *testing.T) {
	engine := NewEngine()
	input := decode(t, `[{"keyword":"a","search_volume":500},{"keyword":"b","search_volume":1500},{"keyword":"c","search_volume":2500.5}]`)

	out, err := engine.Apply(input, `map(select(.search_volume >= 1000))`)
	require.NoError(t, err)

	assert.Equal(t, []any{
		map[string]any{"keyword": "b", "search_volume": 1500},
		map[string]any{"keyword": "c", "search_volume": 2500.5},
	}, out)
}

func TestEngine_Apply_UnwrapsEnvelope(t *testing.T) {
	engine := NewEngine()
	input := decode(t, `{"data":[{"keyword":"x","search_volume":1}]}`)

	out, err := engine.Apply(input, `.data`)
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"keyword": "x", "search_volume": 1}}, out)
}

func TestEngine_Apply_RenamesFields(t *testing.T) {
	engine := NewEngine()
	input := decode(t, `[{"term":"x","volume":7}]`)

	out, err := engine.Apply(input, `map({keyword: .term, search_volume: .volume})`)
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"keyword": "x", "search_volume": 7}}, out)
}

func TestEngine_Apply_MultipleResults(t *testing.T) {
	engine := NewEngine()
	input := decode(t, `[1, 2]`)

	_, err := engine.Apply(input, `.[]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one value")
}

func TestEngine_Apply_NoResults(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Apply(decode(t, `[]`), `empty`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no value")
}

func TestEngine_Apply_RuntimeErrorHint(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Apply(decode(t, `[1]`), `.keyword`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filter error")
}

func TestEngine_Apply_Halt(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Apply(decode(t, `[]`), `"stop" | halt_error`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "halted")
}

func TestEngine_ValidateExpression(t *testing.T) {
	engine := NewEngine()

	assert.NoError(t, engine.ValidateExpression(`map(select(.search_volume > 0))`))

	err := engine.ValidateExpression(`map(select(`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid jq expression")

	err = engine.ValidateExpression(`undefined_fn(1)`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile")
}

func TestNormalize_LargeNumbers(t *testing.T) {
	out := normalize([]any{json.Number("1e400"), json.Number("12"), json.Number("0.5")}).([]any)

	assert.Equal(t, 12, out[1])
	assert.Equal(t, 0.5, out[2])
	f, ok := out[0].(float64)
	require.True(t, ok)
	assert.True(t, f > 1e308)
}
