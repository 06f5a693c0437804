package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	if reg == nil {
		t.Fatal("expected non-nil registry")
	}
}

func TestRegistry_HTTPMetrics(t *testing.T) {
	reg := NewRegistry()

	// Verify HTTP metrics are registered
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	// Should have go runtime metrics at minimum
	if len(mfs) == 0 {
		t.Error("expected some metrics to be registered")
	}
}

func TestRegistry_RecordRequest(t *testing.T) {
	reg := NewRegistry()

	reg.RecordRequest("GET", "/api/v1/analyze", 200, 0.05)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	found := false
	for _, mf := range mfs {
		if mf.GetName() == "http_requests_total" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected http_requests_total metric")
	}
}

func TestRegistry_RecordRequest_StatusCodes(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			reg := NewRegistry()
			reg.RecordRequest("GET", "/test", tt.status, 0.01)

			mfs, err := reg.Gather()
			if err != nil {
				t.Fatalf("gather failed: %v", err)
			}

			found := false
			for _, mf := range mfs {
				if mf.GetName() == "http_requests_total" {
					for _, m := range mf.GetMetric() {
						for _, label := range m.GetLabel() {
							if label.GetName() == "status" && label.GetValue() == tt.expected {
								found = true
							}
						}
					}
				}
			}
			if !found {
				t.Errorf("expected status label %s for status code %d", tt.expected, tt.status)
			}
		})
	}
}

func TestRegistry_InFlight(t *testing.T) {
	reg := NewRegistry()

	reg.InFlightInc()
	reg.InFlightInc()
	reg.InFlightDec()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	found := false
	for _, mf := range mfs {
		if mf.GetName() == "http_requests_in_flight" {
			found = true
			for _, m := range mf.GetMetric() {
				if m.GetGauge().GetValue() != 1 {
					t.Errorf("expected in-flight gauge to be 1, got %v", m.GetGauge().GetValue())
				}
			}
		}
	}
	if !found {
		t.Error("expected http_requests_in_flight metric")
	}
}

func TestRegistry_DurationHistogram(t *testing.T) {
	reg := NewRegistry()

	reg.RecordRequest("POST", "/api/v1/analyze", 200, 0.123)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	found := false
	for _, mf := range mfs {
		if mf.GetName() == "http_request_duration_seconds" {
			found = true
			for _, m := range mf.GetMetric() {
				hist := m.GetHistogram()
				if hist.GetSampleCount() != 1 {
					t.Errorf("expected sample count 1, got %d", hist.GetSampleCount())
				}
				if hist.GetSampleSum() < 0.12 || hist.GetSampleSum() > 0.13 {
					t.Errorf("expected sample sum ~0.123, got %v", hist.GetSampleSum())
				}
			}
		}
	}
	if !found {
		t.Error("expected http_request_duration_seconds metric")
	}
}

// Ensure the registry implements prometheus.Gatherer interface
func TestRegistry_ImplementsGatherer(t *testing.T) {
	reg := NewRegistry()
	var _ prometheus.Gatherer = reg
}

func counterValue(t *testing.T, reg *Registry, name string, labels map[string]string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			matched := 0
			for _, label := range m.GetLabel() {
				if v, ok := labels[label.GetName()]; ok && v == label.GetValue() {
					matched++
				}
			}
			if matched == len(labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestRegistry_RecordAnalysis(t *testing.T) {
	reg := NewRegistry()

	reg.RecordAnalysis("ok", 0.0001, 21)
	reg.RecordAnalysis("ok", 0.0002, 5)
	reg.RecordAnalysis("invalid", 0.00001, 0)

	if got := counterValue(t, reg, "stagger_analyses_total", map[string]string{"outcome": "ok"}); got != 2 {
		t.Errorf("expected 2 ok analyses, got %v", got)
	}
	if got := counterValue(t, reg, "stagger_analyses_total", map[string]string{"outcome": "invalid"}); got != 1 {
		t.Errorf("expected 1 invalid analysis, got %v", got)
	}

	mfs, _ := reg.Gather()
	for _, mf := range mfs {
		if mf.GetName() == "stagger_ladder_positions" {
			hist := mf.GetMetric()[0].GetHistogram()
			if hist.GetSampleCount() != 2 {
				t.Errorf("expected 2 ladder observations, got %d", hist.GetSampleCount())
			}
			if hist.GetSampleSum() != 26 {
				t.Errorf("expected ladder sum 26, got %v", hist.GetSampleSum())
			}
		}
	}
}

func TestRegistry_RecordDegenerateAndExport(t *testing.T) {
	reg := NewRegistry()

	reg.RecordDegenerate("NO_BUY_LEVELS")
	reg.RecordExport("localfs", "ok")
	reg.RecordExport("localfs", "ok")
	reg.RecordExport("s3", "error")
	reg.RecordRateLimited()

	if got := counterValue(t, reg, "stagger_degenerate_inputs_total", map[string]string{"reason": "NO_BUY_LEVELS"}); got != 1 {
		t.Errorf("expected 1 degenerate input, got %v", got)
	}
	if got := counterValue(t, reg, "stagger_exports_total", map[string]string{"backend": "localfs", "status": "ok"}); got != 2 {
		t.Errorf("expected 2 localfs exports, got %v", got)
	}
	if got := counterValue(t, reg, "stagger_exports_total", map[string]string{"backend": "s3", "status": "error"}); got != 1 {
		t.Errorf("expected 1 failed s3 export, got %v", got)
	}
	if got := counterValue(t, reg, "stagger_rate_limited_total", nil); got != 1 {
		t.Errorf("expected 1 rate limited request, got %v", got)
	}
}

func TestRegistry_Handler(t *testing.T) {
	reg := NewRegistry()
	reg.RecordAnalysis("ok", 0.0001, 21)

	w := httptest.NewRecorder()
	reg.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `stagger_analyses_total{outcome="ok"} 1`) {
		t.Errorf("exposition missing analyses counter:\n%s", w.Body.String())
	}
}
