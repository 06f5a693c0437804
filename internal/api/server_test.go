// internal/api/server_test.go
package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/newthinker/stagger/internal/app"
	"github.com/newthinker/stagger/internal/commodity"
	"github.com/newthinker/stagger/internal/metrics"
	"go.uber.org/zap"
)

func testDeps() Dependencies {
	return Dependencies{
		App:     app.New(commodity.Builtin(), nil, nil),
		Metrics: metrics.NewRegistry(),
	}
}

func TestServer_Health(t *testing.T) {
	srv, err := NewServer(Config{
		Host: "localhost",
		Port: 0,
	}, testDeps(), zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestServer_RequiresApp(t *testing.T) {
	if _, err := NewServer(Config{}, Dependencies{}, zap.NewNop()); err == nil {
		t.Error("expected error without app")
	}
}

func TestServer_APIAuth_Required(t *testing.T) {
	srv, _ := NewServer(Config{
		Host:   "localhost",
		Port:   0,
		APIKey: "test-key",
	}, testDeps(), zap.NewNop())

	// Without API key
	req := httptest.NewRequest("GET", "/api/v1/commodities", nil)
	w := httptest.NewRecorder()
	srv.mux.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without key, got %d", w.Code)
	}

	// Health stays open
	w = httptest.NewRecorder()
	srv.mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for health, got %d", w.Code)
	}
}

func TestServer_APIAuth_ValidKey(t *testing.T) {
	srv, _ := NewServer(Config{
		Host:   "localhost",
		Port:   0,
		APIKey: "test-key",
	}, testDeps(), zap.NewNop())

	// With API key
	req := httptest.NewRequest("GET", "/api/v1/commodities", nil)
	req.Header.Set("X-API-Key", "test-key")
	w := httptest.NewRecorder()
	srv.mux.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with key, got %d", w.Code)
	}
}

func TestServer_APIAuth_Disabled(t *testing.T) {
	// Empty APIKey = disabled auth
	srv, _ := NewServer(Config{
		Host:   "localhost",
		Port:   0,
		APIKey: "",
	}, testDeps(), zap.NewNop())

	req := httptest.NewRequest("POST", "/api/v1/analyze", strings.NewReader(`{"commodity":"gold"}`))
	w := httptest.NewRecorder()
	srv.mux.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with disabled auth, got %d", w.Code)
	}
}

func TestServer_Routes(t *testing.T) {
	srv, err := NewServer(Config{MetricsPath: "/metrics"}, testDeps(), zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/", http.StatusOK},
		{"GET", "/api/v1/commodities/silver", http.StatusOK},
		{"GET", "/api/v1/metrics/catalog", http.StatusOK},
		{"POST", "/api/v1/reports", http.StatusServiceUnavailable},
		{"GET", "/metrics", http.StatusOK},
		{"GET", "/signals", http.StatusNotFound},
		{"DELETE", "/api/v1/analyze", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestServer_RequestIDAndRateLimit(t *testing.T) {
	srv, _ := NewServer(Config{RequestsPerSecond: 0.001, Burst: 1}, testDeps(), zap.NewNop())

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get(metrics.RequestIDHeader) == "" {
		t.Error("expected X-Request-ID header")
	}

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/health", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
}
