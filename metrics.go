package main

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	aiRequests  *prometheus.CounterVec
	catalogSize *prometheus.GaugeVec
	merged      prometheus.Counter
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		aiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "suplementos_ai_requests_total",
			Help: "AI calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		catalogSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "suplementos_catalog_records",
			Help: "Records in the catalog by source.",
		}, []string{"source"}),
		merged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "suplementos_ai_records_merged_total",
			Help: "AI records appended to the catalog.",
		}),
	}
	reg.MustRegister(m.aiRequests, m.catalogSize, m.merged)
	return m
}

func (m *Metrics) observeAI(operation, outcome string) {
	if m == nil {
		return
	}
	m.aiRequests.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) observeCatalog(records []Supplement, added int) {
	if m == nil {
		return
	}
	counts := map[string]int{SourceLocal: 0, SourceAI: 0}
	for _, s := range records {
		counts[s.Source]++
	}
	for source, n := range counts {
		m.catalogSize.WithLabelValues(source).Set(float64(n))
	}
	m.merged.Add(float64(added))
}
