// internal/core/errors.go
package core

import (
	"fmt"
	"strings"
)

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field  string `json:"field"`
	Value  any    `json:"value,omitempty"`
	Reason string `json:"reason"`
}

func (f FieldError) String() string {
	return f.Field + ": " + f.Reason
}

// ValidationError collects every field violation found in a single input.
// It matches ErrInvalidInput under errors.Is.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError creates a ValidationError with a single field violation.
func NewValidationError(field string, value any, reason string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Value: value, Reason: reason}}}
}

// Add appends a field violation.
func (v *ValidationError) Add(field string, value any, reason string) {
	v.Fields = append(v.Fields, FieldError{Field: field, Value: value, Reason: reason})
}

// HasErrors reports whether any violation was recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.Fields) > 0
}

// Err returns v as an error, or nil when nothing was recorded.
func (v *ValidationError) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return v
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	parts := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("[%s] %s: %s", ErrInvalidInput.Code, ErrInvalidInput.Message, strings.Join(parts, "; "))
}

// Unwrap exposes ErrInvalidInput so callers can match on the code.
func (v *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Predefined errors
var (
	// Input errors
	ErrInvalidInput      = &Error{Code: "INVALID_INPUT", Message: "invalid strategy input"}
	ErrCommodityNotFound = &Error{Code: "COMMODITY_NOT_FOUND", Message: "commodity not found"}
	ErrUnsupportedFormat = &Error{Code: "UNSUPPORTED_FORMAT", Message: "unsupported report format"}

	// Export errors
	ErrExportFailed   = &Error{Code: "EXPORT_FAILED", Message: "report export failed"}
	ErrExportDisabled = &Error{Code: "EXPORT_DISABLED", Message: "report export is not configured"}

	// HTTP errors
	ErrUnauthorized = &Error{Code: "UNAUTHORIZED", Message: "missing or invalid API key"}
	ErrRateLimited  = &Error{Code: "RATE_LIMITED", Message: "too many requests"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}
)
