package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IngestMetrics records lead submission outcomes and latency.
type IngestMetrics struct {
	duration *prometheus.HistogramVec
	accepted *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// NewIngestMetrics registers the ingestion metrics on the provided registerer.
func NewIngestMetrics(reg prometheus.Registerer) *IngestMetrics {
	if reg == nil {
		return &IngestMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lead_ingest_duration_seconds",
		Help:    "Duration of lead submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	accepted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "leads_accepted_total",
		Help: "Accepted lead submissions.",
	}, []string{"plan"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "leads_rejected_total",
		Help: "Rejected lead submissions.",
	}, []string{"reason"})
	reg.MustRegister(duration, accepted, rejected)
	return &IngestMetrics{
		duration: duration,
		accepted: accepted,
		rejected: rejected,
	}
}

// ObserveDuration records how long one submission took.
func (m *IngestMetrics) ObserveDuration(outcome string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncAccepted increments the accepted counter for the store's plan.
func (m *IngestMetrics) IncAccepted(plan string) {
	if m == nil || m.accepted == nil {
		return
	}
	m.accepted.WithLabelValues(normalizeLabel(plan)).Inc()
}

// IncRejected increments the rejected counter for the given reason.
func (m *IngestMetrics) IncRejected(reason string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
