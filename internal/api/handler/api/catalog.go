// internal/api/handler/api/catalog.go
package api

import (
	"net/http"

	"github.com/newthinker/stagger/internal/api/response"
	"github.com/newthinker/stagger/internal/report"
)

// MetricCatalog returns the labels and descriptions of every report metric.
func MetricCatalog(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]any{
		"metrics": report.Metrics,
		"count":   len(report.Metrics),
	})
}

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
