package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/newthinker/stagger/internal/commodity"
	"github.com/newthinker/stagger/internal/config"
	"github.com/newthinker/stagger/internal/core"
	"github.com/newthinker/stagger/internal/export"
	"github.com/newthinker/stagger/internal/metrics"
	"github.com/newthinker/stagger/internal/report"
	"github.com/newthinker/stagger/internal/storage/archive"
	"github.com/newthinker/stagger/internal/strategy"
	"go.uber.org/zap"
)

// Analysis is one resolved and computed strategy.
type Analysis struct {
	Commodity commodity.Commodity
	Params    strategy.Params
	Input     strategy.Input
	Report    *strategy.Report
}

// Document wraps the analysis for rendering or export. Params carry the
// effective values, defaults included.
func (a *Analysis) Document() report.Document {
	return report.Document{
		Commodity: a.Commodity.Key,
		Params:    strategy.ParamsFromInput(a.Input),
		Report:    a.Report,
	}
}

// App is the main application orchestrator shared by the CLI, the JSON API
// and the web page.
type App struct {
	logger   *zap.Logger
	catalog  *commodity.Catalog
	engine   *strategy.Engine
	exporter *export.Exporter
	format   report.Format
}

// New creates a new App instance
func New(catalog *commodity.Catalog, engine *strategy.Engine, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if catalog == nil {
		catalog = commodity.NewCatalog()
	}
	if engine == nil {
		engine = strategy.NewEngine(logger)
	}
	return &App{
		logger:  logger,
		catalog: catalog,
		engine:  engine,
		format:  report.FormatJSON,
	}
}

// FromConfig wires an App from configuration. reg may be nil.
func FromConfig(cfg *config.Config, logger *zap.Logger, reg *metrics.Registry) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	catalog, err := commodity.FromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("building commodity catalog: %w", err)
	}

	engine := strategy.NewEngine(logger.Named("strategy"))
	if reg != nil {
		engine.SetRecorder(reg)
	}

	a := New(catalog, engine, logger)

	store, err := archive.New(cfg.Export)
	switch {
	case errors.Is(err, core.ErrExportDisabled):
		logger.Debug("report export disabled")
	case err != nil:
		return nil, fmt.Errorf("creating export storage: %w", err)
	default:
		exp := export.New(store, logger.Named("export"))
		if reg != nil {
			exp.SetRecorder(reg)
		}
		format, err := report.ParseFormat(cfg.Export.Format)
		if err != nil {
			return nil, err
		}
		a.SetExporter(exp, format)
		logger.Info("report export enabled",
			zap.String("backend", store.Name()),
			zap.String("format", string(format)),
		)
	}

	return a, nil
}

// SetExporter enables report export with a default format.
func (a *App) SetExporter(e *export.Exporter, format report.Format) {
	a.exporter = e
	if format != "" {
		a.format = format
	}
}

// ExportEnabled reports whether an export backend is configured.
func (a *App) ExportEnabled() bool {
	return a.exporter != nil
}

// Exporter returns the configured exporter, or core.ErrExportDisabled.
func (a *App) Exporter() (*export.Exporter, error) {
	if a.exporter == nil {
		return nil, core.ErrExportDisabled
	}
	return a.exporter, nil
}

// Catalog returns the commodity catalog.
func (a *App) Catalog() *commodity.Catalog {
	return a.catalog
}

// Analyze resolves key (empty means the default commodity), overlays over
// on its preset and runs the analysis.
func (a *App) Analyze(ctx context.Context, key string, over strategy.Params) (*Analysis, error) {
	cm, params, err := a.catalog.Resolve(key, over)
	if err != nil {
		return nil, err
	}

	rep, in, err := a.engine.RunParams(ctx, cm.Key, params)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Commodity: cm,
		Params:    params,
		Input:     in,
		Report:    rep,
	}, nil
}

// Export analyzes and writes the report to the archive. An empty format
// uses the configured default.
func (a *App) Export(ctx context.Context, key string, over strategy.Params, format string) (*Analysis, export.Result, error) {
	if _, err := a.Exporter(); err != nil {
		return nil, export.Result{}, err
	}

	an, err := a.Analyze(ctx, key, over)
	if err != nil {
		return nil, export.Result{}, err
	}

	doc := an.Document()
	doc.GeneratedAt = time.Now().UTC()
	res, err := a.ExportDocument(ctx, doc, format)
	if err != nil {
		return an, export.Result{}, err
	}
	return an, res, nil
}

// ExportDocument writes an already computed document to the archive, keeping
// its ID and timestamp when set. An empty format uses the configured default.
func (a *App) ExportDocument(ctx context.Context, doc report.Document, format string) (export.Result, error) {
	exp, err := a.Exporter()
	if err != nil {
		return export.Result{}, err
	}

	f := a.format
	if format != "" {
		if f, err = report.ParseFormat(format); err != nil {
			return export.Result{}, err
		}
	}

	return exp.Export(ctx, export.Record{Document: doc, Format: f})
}
