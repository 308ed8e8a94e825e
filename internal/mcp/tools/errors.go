package tools

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/usestring/keywordcsv-mcp/internal/convert"
	"github.com/usestring/keywordcsv-mcp/internal/export"
	"github.com/usestring/keywordcsv-mcp/pkg/keywords"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeValidation      = "VALIDATION_FAILED"
	ErrCodeNothingToExport = "NOTHING_TO_EXPORT"
	ErrCodeExportFailed    = "EXPORT_FAILED"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapServiceError converts errors from the conversion service, the core
// package and the savers into coded errors.
func WrapServiceError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}

	var vErr *keywords.ValidationError
	switch {
	case errors.As(err, &vErr):
		coded = &CodedError{Code: ErrCodeValidation, Message: vErr.Detail, Cause: err}
	case errors.Is(err, convert.ErrNoConversion):
		coded = &CodedError{Code: ErrCodeNotFound, Message: "no conversion yet, call keywords_convert first"}
	case errors.Is(err, convert.ErrUnknownConversion):
		coded = &CodedError{Code: ErrCodeNotFound, Message: err.Error()}
	case errors.Is(err, keywords.ErrNothingToExport):
		coded = &CodedError{Code: ErrCodeNothingToExport, Message: "the CSV is empty, there is nothing to download"}
	case errors.Is(err, convert.ErrInputTooLarge),
		errors.Is(err, convert.ErrInvalidFilter),
		errors.Is(err, export.ErrInvalidName):
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: err.Error()}
	default:
		coded = &CodedError{Code: ErrCodeExportFailed, Message: "saving the CSV failed", Cause: err}
	}

	slog.Warn("tool error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)

	return coded
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
