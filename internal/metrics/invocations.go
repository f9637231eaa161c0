package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/edvin/ri-utilization/internal/reservation"
)

var _ reservation.Observer = (*Invocations)(nil)

// Invocations records bridge invocation outcomes.
type Invocations struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	lastRun  prometheus.Gauge
}

// NewInvocations creates the invocation collectors and registers them with reg.
func NewInvocations(reg prometheus.Registerer) *Invocations {
	m := &Invocations{
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ri_bridge_invocations_total",
				Help: "Total number of bridge invocations by outcome (success or failing phase)",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ri_bridge_invocation_duration_seconds",
				Help:    "Bridge invocation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ri_bridge_last_success_timestamp_seconds",
			Help: "Unix time of the last invocation that published a metric",
		}),
	}
	reg.MustRegister(m.total, m.duration, m.lastRun)
	return m
}

func (m *Invocations) ObserveInvocation(outcome string, d time.Duration) {
	m.total.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(d.Seconds())
	if outcome == reservation.OutcomeSuccess {
		m.lastRun.SetToCurrentTime()
	}
}
