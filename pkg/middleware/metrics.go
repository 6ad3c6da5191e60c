package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures Prometheus. Collector names are
// Namespace_Subsystem_name, "sprig_http_" unless changed.
type MetricsConfig struct {
	Namespace   string
	Subsystem   string
	ConstLabels prometheus.Labels

	// Buckets bound the latency histogram; prometheus.DefBuckets by default.
	Buckets []float64

	// Registry receives the collectors; prometheus.DefaultRegisterer by
	// default.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "sprig",
		Subsystem: "http",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

type metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
	responseBytes   *prometheus.CounterVec
}

func newMetrics(cfg MetricsConfig) *metrics {
	factory := promauto.With(cfg.Registry)
	opts := func(name, help string) prometheus.Opts {
		return prometheus.Opts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: cfg.ConstLabels,
		}
	}
	latency := opts("request_duration_seconds", "Page and endpoint latency in seconds.")

	return &metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts(opts("requests_total", "Requests served, by route pattern, method and status code.")),
			[]string{"route", "method", "code"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   latency.Namespace,
			Subsystem:   latency.Subsystem,
			Name:        latency.Name,
			Help:        latency.Help,
			ConstLabels: latency.ConstLabels,
			Buckets:     cfg.Buckets,
		}, []string{"route"}),
		inFlight:      factory.NewGauge(prometheus.GaugeOpts(opts("requests_in_flight", "Requests currently being served."))),
		responseBytes: factory.NewCounterVec(prometheus.CounterOpts(opts("response_bytes_total", "Response body bytes, by route pattern.")), []string{"route"}),
	}
}

// Prometheus creates middleware that collects request metrics.
//
// Metrics collected:
//   - sprig_http_requests_total: requests by route pattern, method and code
//   - sprig_http_request_duration_seconds: latency by route pattern
//   - sprig_http_requests_in_flight: requests being served
//   - sprig_http_response_bytes_total: body bytes by route pattern
//
// The collectors are registered when Prometheus is called, so call it once
// per registry.
func Prometheus(opts ...MetricsOption) func(http.Handler) http.Handler {
	cfg := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	m := newMetrics(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.inFlight.Inc()
			defer m.inFlight.Dec()

			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := routePattern(r)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
			m.requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
			m.responseBytes.WithLabelValues(route).Add(float64(ww.BytesWritten()))
		})
	}
}

// routePattern returns the matched chi pattern, or "unmatched".
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
