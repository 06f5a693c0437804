package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	analysesTotal    *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	ladderPositions  prometheus.Histogram
	degenerateInputs *prometheus.CounterVec
	exportsTotal     *prometheus.CounterVec
	rateLimited      prometheus.Counter
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stagger_analyses_total",
			Help: "Total number of strategy analyses by outcome",
		},
		[]string{"outcome"},
	)
	r.analysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stagger_analysis_duration_seconds",
			Help:    "Strategy analysis duration in seconds",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		},
	)
	r.ladderPositions = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stagger_ladder_positions",
			Help:    "Number of buy positions in analyzed ladders",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 500, 1000, 10000},
		},
	)
	r.degenerateInputs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stagger_degenerate_inputs_total",
			Help: "Analyses that produced an empty ladder, by warning code",
		},
		[]string{"reason"},
	)
	r.exportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stagger_exports_total",
			Help: "Total number of report exports",
		},
		[]string{"backend", "status"},
	)
	r.rateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stagger_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	reg.MustRegister(r.analysesTotal)
	reg.MustRegister(r.analysisDuration)
	reg.MustRegister(r.ladderPositions)
	reg.MustRegister(r.degenerateInputs)
	reg.MustRegister(r.exportsTotal)
	reg.MustRegister(r.rateLimited)

	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{Registry: r.Registry})
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordAnalysis records one analyzer run. Positions are observed only
// for runs that produced a report.
func (r *Registry) RecordAnalysis(outcome string, duration float64, positions int) {
	r.analysesTotal.WithLabelValues(outcome).Inc()
	r.analysisDuration.Observe(duration)
	if outcome != "invalid" {
		r.ladderPositions.Observe(float64(positions))
	}
}

// RecordDegenerate records a degenerate input by warning code.
func (r *Registry) RecordDegenerate(reason string) {
	r.degenerateInputs.WithLabelValues(reason).Inc()
}

// RecordExport records a report export attempt.
func (r *Registry) RecordExport(backend, status string) {
	r.exportsTotal.WithLabelValues(backend, status).Inc()
}

// RecordRateLimited counts a rejected request.
func (r *Registry) RecordRateLimited() {
	r.rateLimited.Inc()
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
