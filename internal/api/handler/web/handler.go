// internal/api/handler/web/handler.go
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/newthinker/stagger/internal/app"
	"github.com/newthinker/stagger/internal/commodity"
	"github.com/newthinker/stagger/internal/strategy"
)

//go:embed templates/*
var templateFS embed.FS

// pages lists the page templates; each is parsed together with layout.html.
var pages = []string{"analyzer.html"}

// Analyzer runs analyses for the page.
type Analyzer interface {
	Analyze(ctx context.Context, key string, over strategy.Params) (*app.Analysis, error)
}

// CommodityLister provides the presets offered in the selector.
type CommodityLister interface {
	List() []commodity.Commodity
	Get(key string) (commodity.Commodity, error)
	Default() (commodity.Commodity, bool)
}

// Handler provides web UI handlers with template rendering
type Handler struct {
	// pageTemplates holds separate template instances for each page
	// Each instance contains layout.html + the specific page template
	pageTemplates map[string]*template.Template
	analyzer      Analyzer
	commodities   CommodityLister
	logger        *zap.Logger
}

// NewHandler creates a new web handler with templates loaded from the given directory.
// If templatesDir is empty, it falls back to embedded templates.
func NewHandler(templatesDir string, analyzer Analyzer, commodities CommodityLister, logger *zap.Logger) (*Handler, error) {
	var fsys fs.FS
	if templatesDir != "" {
		fsys = os.DirFS(templatesDir)
	} else {
		fsys = TemplateFS()
	}
	return NewHandlerWithFS(fsys, analyzer, commodities, logger)
}

// NewHandlerWithFS creates a new web handler using a custom filesystem.
// This is useful for testing or custom template sources.
func NewHandlerWithFS(fsys fs.FS, analyzer Analyzer, commodities CommodityLister, logger *zap.Logger) (*Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	pageTemplates := make(map[string]*template.Template)

	for _, page := range pages {
		// Parse layout first, then the page template
		tmpl, err := template.ParseFS(fsys, "layout.html", page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		pageTemplates[page] = tmpl
	}

	return &Handler{
		pageTemplates: pageTemplates,
		analyzer:      analyzer,
		commodities:   commodities,
		logger:        logger,
	}, nil
}

// render executes the specified page template with the given data
func (h *Handler) render(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := h.pageTemplates[page]
	if !ok {
		http.Error(w, "template not found: "+page, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		h.logger.Error("rendering page", zap.String("page", page), zap.Error(err))
	}
}

// TemplateFS returns the embedded template filesystem for external use.
func TemplateFS() fs.FS {
	subFS, err := fs.Sub(templateFS, "templates")
	if err != nil {
		// This should never happen with valid embed directive
		return templateFS
	}
	return subFS
}
