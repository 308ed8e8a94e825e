package keywords

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a validation failure.
type ErrorKind string

// Validation error kinds.
const (
	KindEmptyInput  ErrorKind = "empty_input"
	KindSyntax      ErrorKind = "syntax_error"
	KindStructural  ErrorKind = "structural_error"
	KindElementType ErrorKind = "element_type_error"
	KindFieldType   ErrorKind = "field_type_error"
)

// Field names checked on every element.
const (
	FieldKeyword      = "keyword"
	FieldSearchVolume = "search_volume"
)

const noIndex = -1

// ErrNothingToExport is returned by Export when the CSV document is empty.
var ErrNothingToExport = errors.New("nothing to export")

// ValidationError describes why an input could not be converted.
// Index is -1 when the failure is not tied to an array element.
type ValidationError struct {
	Kind   ErrorKind
	Index  int
	Field  string
	Detail string
	Err    error
}

func (e *ValidationError) Error() string {
	return e.Detail
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// HasIndex reports whether the error points at a specific array element.
func (e *ValidationError) HasIndex() bool {
	return e.Index >= 0
}

func emptyInputError() *ValidationError {
	return &ValidationError{Kind: KindEmptyInput, Index: noIndex, Detail: "Please enter some data"}
}

func syntaxError(err error) *ValidationError {
	return &ValidationError{Kind: KindSyntax, Index: noIndex, Detail: err.Error(), Err: err}
}

func structuralError() *ValidationError {
	return &ValidationError{Kind: KindStructural, Index: noIndex, Detail: "Input must be an array"}
}

func elementTypeError(i int) *ValidationError {
	return &ValidationError{
		Kind:   KindElementType,
		Index:  i,
		Detail: fmt.Sprintf("Item at index %d is not an object", i),
	}
}

func fieldTypeError(i int, field string) *ValidationError {
	return &ValidationError{
		Kind:   KindFieldType,
		Index:  i,
		Field:  field,
		Detail: fmt.Sprintf("Item at index %d missing or invalid '%s' field", i, field),
	}
}
