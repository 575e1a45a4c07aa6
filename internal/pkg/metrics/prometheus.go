package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "backoffice",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "backoffice",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "backoffice",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Rule evaluation metrics
	ruleEvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "backoffice",
			Subsystem: "rules",
			Name:      "evaluations_total",
			Help:      "Total number of rule evaluations",
		},
		[]string{"rule_type", "outcome"},
	)

	ruleEvaluationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "backoffice",
			Subsystem: "rules",
			Name:      "evaluation_duration_seconds",
			Help:      "Duration of rule evaluation in seconds",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"rule_type"},
	)

	ruleMatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "backoffice",
			Subsystem: "rules",
			Name:      "matches_total",
			Help:      "Total number of entities flagged by rule evaluations",
		},
		[]string{"rule_type"},
	)

	alertsFiredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "backoffice",
			Subsystem: "alerts",
			Name:      "fired_total",
			Help:      "Total number of alerts recorded by the scanner",
		},
		[]string{"rule_type"},
	)

	openAlerts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "backoffice",
			Subsystem: "alerts",
			Name:      "open_count",
			Help:      "Number of open alerts",
		},
	)
)

// RecordEvaluation records a rule evaluation outcome and duration.
func RecordEvaluation(ruleType string, matches int, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	ruleEvaluationsTotal.WithLabelValues(ruleType, outcome).Inc()
	ruleEvaluationDuration.WithLabelValues(ruleType).Observe(duration.Seconds())
	if err == nil && matches > 0 {
		ruleMatchesTotal.WithLabelValues(ruleType).Add(float64(matches))
	}
}

// RecordAlertFired increments the fired alert counter.
func RecordAlertFired(ruleType string) {
	alertsFiredTotal.WithLabelValues(ruleType).Inc()
}

// SetOpenAlerts sets the open alert gauge.
func SetOpenAlerts(n int) {
	openAlerts.Set(float64(n))
}

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware instruments HTTP handlers with request metrics. The route
// pattern, not the raw path, is used as the label to keep cardinality down.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		status := strconv.Itoa(sw.status)
		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
