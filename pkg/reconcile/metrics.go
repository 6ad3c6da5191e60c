package reconcile

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DOM write operations, as counted by sprig_reconcile_dom_writes_total.
const (
	opCreate      = "create"
	opInsert      = "insert"
	opMove        = "move"
	opRemove      = "remove"
	opReplace     = "replace"
	opSetText     = "set_text"
	opSetAttr     = "set_attr"
	opRemoveAttr  = "remove_attr"
	opSetProp     = "set_prop"
	opSetStyle    = "set_style"
	opRemoveStyle = "remove_style"
	opListen      = "listen"
	opUnlisten    = "unlisten"
)

// MetricsConfig configures reconciler metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "sprig").
	Namespace string

	// Buckets are the histogram buckets for patch duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures reconciler metrics.
type MetricsOption func(*MetricsConfig)

// WithMetricsNamespace sets the metrics namespace.
func WithMetricsNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
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

// Metrics holds the reconciler's Prometheus collectors. A nil *Metrics
// records nothing.
type Metrics struct {
	patches  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	writes   *prometheus.CounterVec
	renders  *prometheus.CounterVec
}

// NewMetrics registers the reconciler collectors.
//
// Metrics collected:
//   - sprig_reconcile_patches_total: patches by operation and status
//   - sprig_reconcile_patch_duration_seconds: patch duration by operation
//   - sprig_reconcile_dom_writes_total: DOM writes by kind
//   - sprig_reconcile_component_renders_total: render function calls by component
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace: "sprig",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		patches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: "reconcile",
			Name:      "patches_total",
			Help:      "Total number of patches applied to a document",
		}, []string{"op", "status"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Subsystem: "reconcile",
			Name:      "patch_duration_seconds",
			Help:      "Patch duration in seconds, including rendering",
			Buckets:   config.Buckets,
		}, []string{"op"}),

		writes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: "reconcile",
			Name:      "dom_writes_total",
			Help:      "Total number of DOM writes by kind",
		}, []string{"kind"}),

		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: "reconcile",
			Name:      "component_renders_total",
			Help:      "Total number of component render function calls",
		}, []string{"component"}),
	}
}

func (m *Metrics) observe(op string, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.patches.WithLabelValues(op, status).Inc()
	m.duration.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Metrics) write(kind string) {
	if m == nil {
		return
	}
	m.writes.WithLabelValues(kind).Inc()
}

func (m *Metrics) rendered(component string) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(component).Inc()
}
