// internal/api/response/response.go
package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/newthinker/stagger/internal/core"
)

// Meta contains response metadata.
type Meta struct {
	Timestamp time.Time `json:"timestamp"`
}

// SuccessResponse is the standard success response format.
type SuccessResponse struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Cause   string            `json:"cause,omitempty"`
	Fields  []core.FieldError `json:"fields,omitempty"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// JSON writes a success response with data.
func JSON(w http.ResponseWriter, status int, data any) {
	resp := SuccessResponse{
		Data: data,
		Meta: Meta{Timestamp: time.Now().UTC()},
	}
	write(w, status, resp)
}

// Error writes an error response.
func Error(w http.ResponseWriter, status int, err error) {
	resp := ErrorResponse{Error: Detail(err)}
	write(w, status, resp)
}

// write encodes v before touching w, so a value that cannot be encoded
// becomes a 500 INTERNAL_ERROR instead of an empty success.
func write(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{Error: Detail(err)})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// Fail writes err with the status from StatusFor.
func Fail(w http.ResponseWriter, err error) {
	Error(w, StatusFor(err), err)
}

// Detail converts err to its wire form. Unknown errors are reported as
// INTERNAL_ERROR without their text.
func Detail(err error) ErrorDetail {
	detail := ErrorDetail{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
	}

	var coreErr *core.Error
	if errors.As(err, &coreErr) {
		detail.Code = coreErr.Code
		detail.Message = coreErr.Message
		if coreErr.Cause != nil {
			detail.Cause = coreErr.Cause.Error()
		}
	}

	var verr *core.ValidationError
	if errors.As(err, &verr) {
		detail.Fields = verr.Fields
	}
	return detail
}

// StatusFor maps an error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidInput), errors.Is(err, core.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrCommodityNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, core.ErrExportDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, core.ErrExportFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
