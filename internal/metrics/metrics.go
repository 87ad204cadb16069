package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "conomy",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "conomy",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	LedgerOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "conomy",
			Subsystem: "ledger",
			Name:      "operations_total",
			Help:      "Ledger, referral and settlement operations by outcome.",
		},
		[]string{"operation", "outcome"},
	)

	TransactionAttempts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "conomy",
			Subsystem: "store",
			Name:      "transaction_attempts",
			Help:      "Attempts needed to commit a transaction, including conflict retries.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13},
		},
	)
)

// RecordOperation counts one service operation with its outcome label.
func RecordOperation(operation, outcome string) {
	LedgerOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordTransaction observes how many attempts a committed or abandoned transaction used.
func RecordTransaction(attempts int) {
	TransactionAttempts.Observe(float64(attempts))
}
