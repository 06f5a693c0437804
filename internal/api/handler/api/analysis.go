// internal/api/handler/api/analysis.go
package api

import (
	"context"
	"net/http"

	"github.com/newthinker/stagger/internal/api/response"
	"github.com/newthinker/stagger/internal/app"
	"github.com/newthinker/stagger/internal/strategy"
)

// AnalysisApp defines the interface needed from app.App.
type AnalysisApp interface {
	Analyze(ctx context.Context, key string, over strategy.Params) (*app.Analysis, error)
}

// AnalysisHandler handles strategy analysis API requests.
type AnalysisHandler struct {
	app AnalysisApp
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(app AnalysisApp) *AnalysisHandler {
	return &AnalysisHandler{app: app}
}

// Analyze computes a report for the requested commodity and parameters.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r)
	if err != nil {
		response.Fail(w, err)
		return
	}

	an, err := h.app.Analyze(r.Context(), req.Commodity, req.Params)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.JSON(w, http.StatusOK, an.Document())
}
