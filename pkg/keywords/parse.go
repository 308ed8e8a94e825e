package keywords

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"math/big"
	"strings"
)

// Parse decodes raw JSON text and validates it as a keyword array.
// Failures are returned as *ValidationError.
func Parse(raw string) (Set, error) {
	v, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return Validate(v)
}

// Decode parses raw into a generic JSON value. Numbers are kept as
// json.Number so that out-of-range values can be reported per field
// instead of failing the whole document.
func Decode(raw string) (any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, emptyInputError()
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, syntaxError(err)
	}

	// Reject anything after the first value.
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("invalid character after top-level value")
		}
		return nil, syntaxError(err)
	}

	return v, nil
}

// Validate checks a decoded JSON value against the keyword schema. Elements
// are checked in order and the first failure is returned.
func Validate(v any) (Set, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, structuralError()
	}

	set := make(Set, 0, len(items))
	for i, item := range items {
		var obj map[string]any
		switch e := item.(type) {
		case map[string]any:
			obj = e
		case []any:
			// Arrays pass the element check and fail on their first field.
		default:
			return nil, elementTypeError(i)
		}

		keyword, ok := obj[FieldKeyword].(string)
		if !ok {
			return nil, fieldTypeError(i, FieldKeyword)
		}

		volume, ok := toFloat(obj[FieldSearchVolume])
		if !ok {
			return nil, fieldTypeError(i, FieldSearchVolume)
		}

		set = append(set, Record{Keyword: keyword, SearchVolume: volume})
	}

	return set, nil
}

// toFloat accepts the number representations produced by encoding/json and
// gojq. Non-finite results are rejected.
func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case *big.Int:
		f, _ = new(big.Float).SetInt(n).Float64()
	default:
		return 0, false
	}

	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
