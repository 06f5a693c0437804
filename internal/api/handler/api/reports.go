// internal/api/handler/api/reports.go
package api

import (
	"context"
	"net/http"

	"github.com/newthinker/stagger/internal/api/response"
	"github.com/newthinker/stagger/internal/app"
	"github.com/newthinker/stagger/internal/commodity"
	"github.com/newthinker/stagger/internal/export"
	"github.com/newthinker/stagger/internal/strategy"
)

// ReportsApp defines the interface needed from app.App.
type ReportsApp interface {
	Export(ctx context.Context, key string, over strategy.Params, format string) (*app.Analysis, export.Result, error)
	Exporter() (*export.Exporter, error)
}

// ReportsHandler handles report export API requests.
type ReportsHandler struct {
	app ReportsApp
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(app ReportsApp) *ReportsHandler {
	return &ReportsHandler{app: app}
}

// Create analyzes and exports a report.
func (h *ReportsHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r)
	if err != nil {
		response.Fail(w, err)
		return
	}

	an, res, err := h.app.Export(r.Context(), req.Commodity, req.Params, req.Format)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, map[string]any{
		"id":        res.ID,
		"path":      res.Path,
		"commodity": an.Commodity.Key,
		"warnings":  an.Report.Warnings,
	})
}

// List returns exported report paths, optionally for one commodity.
func (h *ReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	exp, err := h.app.Exporter()
	if err != nil {
		response.Fail(w, err)
		return
	}

	key := r.URL.Query().Get("commodity")
	if key != "" {
		key = commodity.Normalize(key)
	}
	paths, err := exp.List(r.Context(), key)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"reports": paths,
		"count":   len(paths),
	})
}
