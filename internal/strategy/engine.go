package strategy

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/newthinker/stagger/internal/core"
	"go.uber.org/zap"
)

// Analysis outcomes reported to a Recorder.
const (
	OutcomeOK         = "ok"
	OutcomeInvalid    = "invalid"
	OutcomeDegenerate = "degenerate"
)

// Recorder receives analysis telemetry. metrics.Registry satisfies it.
type Recorder interface {
	RecordAnalysis(outcome string, duration float64, positions int)
	RecordDegenerate(reason string)
}

// Engine runs Analyze for the delivery surfaces and adds logging and metrics.
// The computation itself stays in Analyze; Engine holds no per-call state.
type Engine struct {
	mu       sync.RWMutex
	logger   *zap.Logger
	recorder Recorder
}

// NewEngine creates a new strategy engine
func NewEngine(logger ...*zap.Logger) *Engine {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.NewNop()
	}
	return &Engine{logger: l}
}

// SetRecorder attaches a telemetry sink.
func (e *Engine) SetRecorder(r Recorder) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recorder = r
}

// Run analyzes in on behalf of the named commodity. A cancelled context
// returns before any work is done.
func (e *Engine) Run(ctx context.Context, commodity string, in Input) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	rec := e.recorder
	e.mu.RUnlock()

	start := time.Now()
	report, err := Analyze(in)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			e.logger.Info("strategy input rejected",
				zap.String("commodity", commodity),
				zap.Error(err),
			)
			if rec != nil {
				rec.RecordAnalysis(OutcomeInvalid, elapsed, 0)
			}
		}
		return nil, err
	}

	outcome := OutcomeOK
	for _, w := range report.Warnings {
		outcome = OutcomeDegenerate
		e.logger.Warn("degenerate strategy input",
			zap.String("commodity", commodity),
			zap.String("code", w.Code),
			zap.String("message", w.Message),
		)
		if rec != nil {
			rec.RecordDegenerate(w.Code)
		}
	}

	e.logger.Debug("strategy analyzed",
		zap.String("commodity", commodity),
		zap.Int("positions", report.TotalPositions),
		zap.Float64("capital_needed", report.TotalCapitalNeeded),
		zap.Float64("duration_seconds", elapsed),
	)
	if rec != nil {
		rec.RecordAnalysis(outcome, elapsed, report.TotalPositions)
	}

	return report, nil
}

// RunParams resolves p and runs the analysis.
func (e *Engine) RunParams(ctx context.Context, commodity string, p Params) (*Report, Input, error) {
	in, err := p.Input()
	if err != nil {
		e.mu.RLock()
		rec := e.recorder
		e.mu.RUnlock()
		if rec != nil {
			rec.RecordAnalysis(OutcomeInvalid, 0, 0)
		}
		e.logger.Info("strategy params rejected",
			zap.String("commodity", commodity),
			zap.Error(err),
		)
		return nil, Input{}, err
	}
	report, err := e.Run(ctx, commodity, in)
	return report, in, err
}
