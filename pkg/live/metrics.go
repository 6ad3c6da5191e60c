package live

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds live session collectors. A nil *Metrics records nothing.
type Metrics struct {
	sessions prometheus.Gauge
	messages *prometheus.CounterVec
}

// NewMetrics registers the live session collectors with reg.
//
// Metrics collected:
//   - sprig_live_sessions: open sessions
//   - sprig_live_messages_total: messages by direction and type
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		sessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "sprig",
			Subsystem: "live",
			Name:      "sessions",
			Help:      "Number of open live sessions",
		}),
		messages: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sprig",
			Subsystem: "live",
			Name:      "messages_total",
			Help:      "Total number of live session messages",
		}, []string{"direction", "type"}),
	}
}

func (m *Metrics) active(open bool) {
	if m == nil {
		return
	}
	if open {
		m.sessions.Inc()
	} else {
		m.sessions.Dec()
	}
}

func (m *Metrics) received(typ string) {
	if m == nil {
		return
	}
	m.messages.WithLabelValues("in", typ).Inc()
}

func (m *Metrics) sent(typ string) {
	if m == nil {
		return
	}
	m.messages.WithLabelValues("out", typ).Inc()
}
