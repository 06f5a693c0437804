// internal/api/handler/api/commodities.go
package api

import (
	"net/http"

	"github.com/newthinker/stagger/internal/api/response"
	"github.com/newthinker/stagger/internal/commodity"
)

// CommodityCatalog defines the interface needed from commodity.Catalog.
type CommodityCatalog interface {
	List() []commodity.Commodity
	Get(key string) (commodity.Commodity, error)
	Default() (commodity.Commodity, bool)
}

// CommoditiesHandler serves the commodity presets.
type CommoditiesHandler struct {
	catalog CommodityCatalog
}

// NewCommoditiesHandler creates a new commodities handler.
func NewCommoditiesHandler(catalog CommodityCatalog) *CommoditiesHandler {
	return &CommoditiesHandler{catalog: catalog}
}

// List returns all presets and the default key.
func (h *CommoditiesHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.catalog.List()
	data := map[string]any{
		"commodities": items,
		"count":       len(items),
	}
	if d, ok := h.catalog.Default(); ok {
		data["default"] = d.Key
	}
	response.JSON(w, http.StatusOK, data)
}

// Get returns one preset.
func (h *CommoditiesHandler) Get(w http.ResponseWriter, r *http.Request) {
	cm, err := h.catalog.Get(r.PathValue("key"))
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, cm)
}
