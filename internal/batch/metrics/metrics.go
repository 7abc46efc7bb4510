// Package metrics provides observability for batch compliance runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics covers the batch aggregator: fetch behavior, per-facility
// processing, and verdict outcomes. All methods are nil-safe.
type Metrics struct {
	FetchDuration      *prometheus.HistogramVec
	FacilitiesTotal    *prometheus.CounterVec
	VerdictsTotal      *prometheus.CounterVec
	BatchDuration      prometheus.Histogram
	FacilitiesPerBatch prometheus.Histogram
}

// New registers and returns the batch metric set.
func New() *Metrics {
	return &Metrics{
		FetchDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "methanewatch_fetch_duration_seconds",
			Help:    "Duration of facility record fetches by outcome",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"outcome"}), // outcome: "ok", "error"

		FacilitiesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "methanewatch_facilities_total",
			Help: "Facilities processed by outcome",
		}, []string{"outcome"}),

		VerdictsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "methanewatch_verdicts_total",
			Help: "Rule verdicts by status",
		}, []string{"status"}),

		BatchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "methanewatch_batch_duration_seconds",
			Help:    "Duration of full batch runs",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),

		FacilitiesPerBatch: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "methanewatch_batch_facilities",
			Help:    "Facilities per batch run",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}),
	}
}

// ObserveFetch records one fetch attempt's duration and outcome.
func (m *Metrics) ObserveFetch(outcome string, d time.Duration) {
	if m != nil {
		m.FetchDuration.WithLabelValues(outcome).Observe(d.Seconds())
	}
}

// IncrementFacility records one processed facility by outcome.
func (m *Metrics) IncrementFacility(outcome string) {
	if m != nil {
		m.FacilitiesTotal.WithLabelValues(outcome).Inc()
	}
}

// IncrementVerdict records one rule verdict by status.
func (m *Metrics) IncrementVerdict(status string) {
	if m != nil {
		m.VerdictsTotal.WithLabelValues(status).Inc()
	}
}

// ObserveBatch records a completed batch run.
func (m *Metrics) ObserveBatch(facilities int, d time.Duration) {
	if m != nil {
		m.BatchDuration.Observe(d.Seconds())
		m.FacilitiesPerBatch.Observe(float64(facilities))
	}
}
