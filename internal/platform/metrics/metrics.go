package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Note mutation outcomes recorded on NoteMutations.
const (
	OutcomeCreated   = "created"
	OutcomeUpdated   = "updated"
	OutcomeUnchanged = "unchanged"
	OutcomeDeleted   = "deleted"
	OutcomeNotFound  = "not_found"
)

// Metrics holds the record service's Prometheus metrics.
type Metrics struct {
	NoteMutations *prometheus.CounterVec
	StoreErrors   *prometheus.CounterVec
	RecordsServed *prometheus.CounterVec
}

// New creates the metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		NoteMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "applicant_records_note_mutations_total",
			Help: "Note create/update/delete calls, labelled by outcome",
		}, []string{"outcome"}),
		StoreErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "applicant_records_store_errors_total",
			Help: "Record store failures, labelled by collection",
		}, []string{"collection"}),
		RecordsServed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "applicant_records_documents_served_total",
			Help: "Documents returned by read endpoints, labelled by collection",
		}, []string{"collection"}),
	}
}

func (m *Metrics) IncNoteMutation(outcome string) {
	if m == nil {
		return
	}
	m.NoteMutations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncStoreError(collection string) {
	if m == nil {
		return
	}
	m.StoreErrors.WithLabelValues(collection).Inc()
}

func (m *Metrics) AddRecordsServed(collection string, n int) {
	if m == nil {
		return
	}
	m.RecordsServed.WithLabelValues(collection).Add(float64(n))
}
