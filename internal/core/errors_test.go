// internal/core/errors_test.go
package core

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	err := &Error{Code: "TEST_ERROR", Message: "test message"}
	if err.Error() != "[TEST_ERROR] test message" {
		t.Errorf("unexpected error string: %s", err.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{Code: "WRAP", Message: "wrapped", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("Unwrap should return cause")
	}
}

func TestError_Is(t *testing.T) {
	if !errors.Is(ErrCommodityNotFound, ErrCommodityNotFound) {
		t.Error("same error should match")
	}
	if errors.Is(ErrCommodityNotFound, ErrInvalidInput) {
		t.Error("different codes should not match")
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("original")
	wrapped := WrapError(ErrExportFailed, cause)
	if wrapped.Cause != cause {
		t.Error("cause not set")
	}
	if wrapped.Code != ErrExportFailed.Code {
		t.Error("code not preserved")
	}
	if !errors.Is(wrapped, ErrExportFailed) {
		t.Error("wrapped error should match its base by code")
	}
}

func TestValidationError_MatchesInvalidInput(t *testing.T) {
	v := NewValidationError("buyInterval", 0.0, "must be greater than zero")

	var err error = v
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("validation error should match ErrInvalidInput")
	}

	var coreErr *Error
	if !errors.As(err, &coreErr) || coreErr.Code != "INVALID_INPUT" {
		t.Errorf("expected INVALID_INPUT core error, got %v", coreErr)
	}
}

func TestValidationError_CollectsFields(t *testing.T) {
	v := &ValidationError{}
	if v.Err() != nil {
		t.Fatal("empty validation error should be nil")
	}

	v.Add("currentPrice", nil, "is required")
	v.Add("buyInterval", -5.0, "must be greater than zero")

	err := v.Err()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"INVALID_INPUT", "currentPrice: is required", "buyInterval: must be greater than zero"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestValidationError_NilReceiver(t *testing.T) {
	var v *ValidationError
	if v.HasErrors() {
		t.Error("nil validation error has no fields")
	}
	if v.Err() != nil {
		t.Error("nil validation error should produce nil error")
	}
}
