// Package export writes analysis reports to the configured archive.
package export

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/newthinker/stagger/internal/core"
	"github.com/newthinker/stagger/internal/report"
	"github.com/newthinker/stagger/internal/storage/archive"
)

// Root is the top-level directory of every exported report.
const Root = "reports"

// Export outcomes reported to the Recorder.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Recorder receives one observation per export attempt.
type Recorder interface {
	RecordExport(backend, status string)
}

// Record is one report to export.
type Record struct {
	Document report.Document
	Format   report.Format
}

// Result locates an exported report.
type Result struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// Exporter encodes reports and writes them to an archive.
type Exporter struct {
	storage  archive.Storage
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// New creates an exporter backed by storage.
func New(storage archive.Storage, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// SetRecorder attaches a metrics recorder.
func (e *Exporter) SetRecorder(r Recorder) {
	e.recorder = r
}

// Backend returns the storage backend name.
func (e *Exporter) Backend() string {
	return e.storage.Name()
}

// Export encodes rec and writes it to reports/<commodity>/<YYYY-MM-DD>/<id>.<ext>.
// A missing ID or timestamp on the document is filled in.
func (e *Exporter) Export(ctx context.Context, rec Record) (Result, error) {
	switch rec.Format {
	case report.FormatJSON, report.FormatCSV:
	default:
		return Result{}, core.WrapError(core.ErrUnsupportedFormat,
			fmt.Errorf("export format must be json or csv, got %q", rec.Format))
	}
	if rec.Document.Report == nil {
		return Result{}, core.WrapError(core.ErrExportFailed, fmt.Errorf("document has no report"))
	}

	doc := rec.Document
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.GeneratedAt.IsZero() {
		doc.GeneratedAt = e.now().UTC()
	}

	p := Path(doc.Commodity, doc.GeneratedAt, doc.ID, rec.Format)

	var buf bytes.Buffer
	if err := report.Write(&buf, rec.Format, doc); err != nil {
		e.record(StatusError)
		return Result{}, core.WrapError(core.ErrExportFailed, fmt.Errorf("encoding report: %w", err))
	}

	if err := e.storage.Write(ctx, p, buf.Bytes()); err != nil {
		e.record(StatusError)
		e.logger.Error("report export failed",
			zap.String("backend", e.storage.Name()),
			zap.String("path", p),
			zap.Error(err),
		)
		return Result{}, core.WrapError(core.ErrExportFailed, err)
	}

	e.record(StatusOK)
	e.logger.Info("report exported",
		zap.String("backend", e.storage.Name()),
		zap.String("path", p),
		zap.Int("bytes", buf.Len()),
	)
	return Result{ID: doc.ID, Path: p}, nil
}

// List returns exported report paths, optionally limited to one commodity.
func (e *Exporter) List(ctx context.Context, commodity string) ([]string, error) {
	prefix := Root
	if commodity != "" {
		prefix = path.Join(Root, commodity)
	}
	paths, err := e.storage.List(ctx, prefix)
	if err != nil {
		return nil, core.WrapError(core.ErrExportFailed, err)
	}
	if paths == nil {
		paths = []string{}
	}
	return paths, nil
}

// Open reads back a previously exported report.
func (e *Exporter) Open(ctx context.Context, p string) ([]byte, error) {
	data, err := e.storage.Read(ctx, p)
	if err != nil {
		return nil, core.WrapError(core.ErrExportFailed, err)
	}
	return data, nil
}

func (e *Exporter) record(status string) {
	if e.recorder != nil {
		e.recorder.RecordExport(e.storage.Name(), status)
	}
}

// Path builds the archive path of an exported report.
func Path(commodity string, at time.Time, id string, f report.Format) string {
	if commodity == "" {
		commodity = "custom"
	}
	return path.Join(Root, commodity, at.UTC().Format("2006-01-02"), id+"."+f.Extension())
}
