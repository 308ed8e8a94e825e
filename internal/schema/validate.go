// Package schema publishes the JSON Schema of the keyword input and validates
// documents against it, reporting every violation rather than the first.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/keywordcsv-mcp/pkg/keywords"
	"github.com/usestring/keywordcsv-mcp/pkg/types"
)

const resourceName = "keywords.schema.json"

// Validator validates keyword documents against the generated schema.
type Validator struct {
	schema *jsonschema.Schema
	doc    []byte
}

// KeywordsSchema reflects the schema of keywords.Set: an array of objects
// with a string "keyword" and a number "search_volume". Extra properties
// are allowed, matching the converter which ignores them.
func KeywordsSchema() *invopop.Schema {
	r := &invopop.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}
	s := r.Reflect(keywords.Set{})
	s.Title = "Keywords"
	s.Description = "Array of keyword records converted to CSV rows in input order"
	return s
}

// NewValidator compiles the keyword schema.
func NewValidator() (*Validator, error) {
	doc, err := json.Marshal(KeywordsSchema())
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}

	schemaValue, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resourceName, schemaValue); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}

	compiled, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}

	return &Validator{schema: compiled, doc: doc}, nil
}

// SchemaJSON returns the schema document.
func (v *Validator) SchemaJSON() []byte {
	return v.doc
}

// Lint decodes raw and reports all problems with it. Schema violations are
// listed first; a document that passes the schema is also run through
// keywords.Validate so both agree on what converts.
func (v *Validator) Lint(raw string) *types.ValidationResult {
	value, err := keywords.Decode(raw)
	if err != nil {
		return &types.ValidationResult{
			Valid:  false,
			Errors: []string{err.Error()},
		}
	}

	result := v.ValidateValue(value)
	if !result.Valid {
		return result
	}

	if _, err := keywords.Validate(value); err != nil {
		return &types.ValidationResult{
			Valid:  false,
			Errors: []string{err.Error()},
		}
	}
	return result
}

// ValidateValue validates an already-decoded value against the schema.
func (v *Validator) ValidateValue(value any) *types.ValidationResult {
	err := v.schema.Validate(value)
	if err == nil {
		return &types.ValidationResult{Valid: true}
	}

	return &types.ValidationResult{
		Valid:  false,
		Errors: extractValidationErrors(err),
	}
}

// extractValidationErrors extracts human-readable error messages from a validation error.
func extractValidationErrors(err error) []string {
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		return extractDetailedErrors(validationErr)
	}
	return []string{err.Error()}
}

// printer is a default English printer for localized error messages.
var printer = message.NewPrinter(language.English)

// extractDetailedErrors flattens a ValidationError into "path: message"
// lines ordered by instance location.
func extractDetailedErrors(err *jsonschema.ValidationError) []string {
	errorsByPath := make(map[string][]string)
	collectErrors(err, errorsByPath)

	paths := make([]string, 0, len(errorsByPath))
	for path := range errorsByPath {
		paths = append(paths, path)
	}
	sort.Slice(paths, func(i, j int) bool {
		return lessPath(paths[i], paths[j])
	})

	var result []string
	for _, path := range paths {
		seen := make(map[string]bool)
		for _, msg := range errorsByPath[path] {
			if seen[msg] {
				continue
			}
			seen[msg] = true
			if path != "" {
				result = append(result, fmt.Sprintf("%s: %s", path, msg))
			} else {
				result = append(result, msg)
			}
		}
	}
	return result
}

// collectErrors recursively collects leaf errors (those without causes).
func collectErrors(err *jsonschema.ValidationError, errorsByPath map[string][]string) {
	instancePath := ""
	if len(err.InstanceLocation) > 0 {
		instancePath = "/" + strings.Join(err.InstanceLocation, "/")
	}

	if err.ErrorKind != nil && len(err.Causes) == 0 {
		errMsg := err.ErrorKind.LocalizedString(printer)
		if !strings.HasPrefix(errMsg, "$ref ") && !strings.HasPrefix(errMsg, "doesn't validate with") {
			errorsByPath[instancePath] = append(errorsByPath[instancePath], errMsg)
		}
	}

	for _, cause := range err.Causes {
		collectErrors(cause, errorsByPath)
	}
}

// lessPath orders JSON pointer paths segment by segment, comparing array
// indices numerically so "/2" sorts before "/10".
func lessPath(a, b string) bool {
	as, bs := strings.Split(a, "/"), strings.Split(b, "/")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] == bs[i] {
			continue
		}
		ai, aErr := strconv.Atoi(as[i])
		bi, bErr := strconv.Atoi(bs[i])
		if aErr == nil && bErr == nil {
			return ai < bi
		}
		return as[i] < bs[i]
	}
	return len(as) < len(bs)
}
