package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Posting metrics
	PostingsCompleted *prometheus.CounterVec
	PostingErrors     *prometheus.CounterVec
	PostingDuration   *prometheus.HistogramVec
	EntriesWritten    prometheus.Counter

	// Sequence metrics
	NumbersAllocated     *prometheus.CounterVec
	AllocationCollisions prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Consistency metrics
	ConsistencyChecks *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		PostingsCompleted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "posledger_postings_completed_total",
				Help: "Total number of completed ledger postings by source document",
			},
			[]string{"source"},
		),
		PostingErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "posledger_posting_errors_total",
				Help: "Total number of failed ledger postings by source document",
			},
			[]string{"source"},
		),
		PostingDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "posledger_posting_duration_seconds",
				Help:    "Duration of ledger posting operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		EntriesWritten: promauto.NewCounter(prometheus.CounterOpts{
			Name: "posledger_ledger_entries_written_total",
			Help: "Total number of ledger entry legs written",
		}),

		NumbersAllocated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "posledger_document_numbers_allocated_total",
				Help: "Total document numbers allocated by kind",
			},
			[]string{"kind"},
		),
		AllocationCollisions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "posledger_document_number_collisions_total",
			Help: "Total lost document number allocation races",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "posledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "posledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		ConsistencyChecks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "posledger_consistency_checks_total",
				Help: "Total ledger consistency checks by result",
			},
			[]string{"result"},
		),
	}
}
