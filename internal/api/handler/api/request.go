// internal/api/handler/api/request.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/newthinker/stagger/internal/core"
	"github.com/newthinker/stagger/internal/strategy"
)

const maxBodyBytes = 64 << 10

// AnalyzeRequest is the request body for analysis and export.
type AnalyzeRequest struct {
	Commodity string          `json:"commodity,omitempty"`
	Params    strategy.Params `json:"params"`
	Format    string          `json:"format,omitempty"`
}

// decodeRequest reads an AnalyzeRequest. An empty body is an empty request;
// unknown fields are rejected.
func decodeRequest(w http.ResponseWriter, r *http.Request) (AnalyzeRequest, error) {
	var req AnalyzeRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, core.WrapError(core.ErrInvalidInput, fmt.Errorf("decoding request body: %w", err))
	}
	return req, nil
}
