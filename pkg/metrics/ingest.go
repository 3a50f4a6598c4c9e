package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// IngestMetrics records outcomes of sale ingestion attempts.
type IngestMetrics struct {
	accepted *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// NewIngestMetrics registers the ingestion metrics on the provided registerer.
func NewIngestMetrics(reg prometheus.Registerer) *IngestMetrics {
	if reg == nil {
		return &IngestMetrics{}
	}
	accepted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_ingested_total",
		Help: "Sales accepted and written to the ledger.",
	}, []string{"source"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_rejected_total",
		Help: "Sale submissions rejected before reaching the ledger.",
	}, []string{"reason"})
	reg.MustRegister(accepted, rejected)
	return &IngestMetrics{
		accepted: accepted,
		rejected: rejected,
	}
}

// IncAccepted increments the accepted counter for the given source.
func (m *IngestMetrics) IncAccepted(source string) {
	if m == nil || m.accepted == nil {
		return
	}
	m.accepted.WithLabelValues(source).Inc()
}

// IncRejected increments the rejected counter for the given reason.
func (m *IngestMetrics) IncRejected(reason string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(reason).Inc()
}
