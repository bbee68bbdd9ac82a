// ABOUTME: Prometheus instrumentation for the record store
// ABOUTME: Counts mutations and persistence failures and tracks collection sizes
package crm

import (
	"github.com/harperreed/hookline/models"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the store's collectors. A nil *Metrics records nothing.
type Metrics struct {
	Mutations       *prometheus.CounterVec
	PersistFailures *prometheus.CounterVec
	Records         *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg when it is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hookline",
			Name:      "mutations_total",
			Help:      "Committed record store mutations.",
		}, []string{"entity", "op"}),
		PersistFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hookline",
			Name:      "persist_failures_total",
			Help:      "Snapshot writes that failed after an in-memory mutation.",
		}, []string{"key"}),
		Records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "hookline",
			Name:      "records",
			Help:      "Records currently held, by kind.",
		}, []string{"kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.Mutations, m.PersistFailures, m.Records)
	}
	return m
}

func (m *Metrics) mutation(entity, op string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(entity, op).Inc()
}

func (m *Metrics) persistFailure(key string) {
	if m == nil {
		return
	}
	m.PersistFailures.WithLabelValues(key).Inc()
}

func (m *Metrics) setRecords(s models.Snapshot) {
	if m == nil {
		return
	}
	m.Records.WithLabelValues("contacts").Set(float64(len(s.Contacts)))
	m.Records.WithLabelValues("deals").Set(float64(len(s.Deals)))
	m.Records.WithLabelValues("activities").Set(float64(len(s.Activities)))
}
