// internal/api/response/response_test.go
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/newthinker/stagger/internal/core"
)

func TestJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]string{"hello": "world"}

	JSON(w, http.StatusOK, data)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("expected application/json content type")
	}

	var resp SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data == nil {
		t.Error("expected data in response")
	}
	if resp.Meta.Timestamp.IsZero() {
		t.Error("expected timestamp in meta")
	}
}

func TestJSON_UnencodableData(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusOK, map[string]float64{"total": math.Inf(1)})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body is not JSON: %v (%q)", err, w.Body.String())
	}
	if resp.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("expected INTERNAL_ERROR, got %s", resp.Error.Code)
	}
}

func TestError_WithCoreError(t *testing.T) {
	w := httptest.NewRecorder()
	err := core.ErrConfigInvalid

	Error(w, http.StatusBadRequest, err)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}

	var resp ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error.Code != "CONFIG_INVALID" {
		t.Errorf("expected CONFIG_INVALID, got %s", resp.Error.Code)
	}
}

func TestError_WithCause(t *testing.T) {
	w := httptest.NewRecorder()
	err := core.WrapError(core.ErrCommodityNotFound, fmt.Errorf("%q", "platinum"))

	Error(w, http.StatusNotFound, err)

	var resp ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error.Code != "COMMODITY_NOT_FOUND" {
		t.Errorf("expected COMMODITY_NOT_FOUND, got %s", resp.Error.Code)
	}
	if resp.Error.Cause != `"platinum"` {
		t.Errorf("expected cause, got %q", resp.Error.Cause)
	}
}

func TestError_WithStandardError(t *testing.T) {
	w := httptest.NewRecorder()

	Error(w, http.StatusInternalServerError, errors.New("boom"))

	var resp ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("expected INTERNAL_ERROR, got %s", resp.Error.Code)
	}
	if resp.Error.Cause != "" {
		t.Errorf("internal error text leaked: %q", resp.Error.Cause)
	}
}

func TestFail_ValidationFields(t *testing.T) {
	verr := core.NewValidationError("minPrice", -1.0, "must be greater than 0")
	verr.Add("buyInterval", 0.0, "must be greater than 0")
	w := httptest.NewRecorder()

	Fail(w, verr)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}

	var resp ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error.Code != "INVALID_INPUT" {
		t.Errorf("expected INVALID_INPUT, got %s", resp.Error.Code)
	}
	if len(resp.Error.Fields) != 2 || resp.Error.Fields[0].Field != "minPrice" {
		t.Errorf("unexpected fields: %+v", resp.Error.Fields)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{core.ErrInvalidInput, http.StatusBadRequest},
		{core.WrapError(core.ErrUnsupportedFormat, nil), http.StatusBadRequest},
		{core.ErrCommodityNotFound, http.StatusNotFound},
		{core.ErrUnauthorized, http.StatusUnauthorized},
		{core.ErrRateLimited, http.StatusTooManyRequests},
		{core.ErrExportDisabled, http.StatusServiceUnavailable},
		{core.WrapError(core.ErrExportFailed, errors.New("s3 down")), http.StatusBadGateway},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
