// Package metrics defines the prometheus collectors for the tracker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ledger metrics
var (
	// LedgerOpsTotal tracks ledger operations by operation and status
	LedgerOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_operations_total",
			Help: "Total session ledger operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// ActiveSessionGauge is 1 while a session is running, 0 otherwise
	ActiveSessionGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_active_session",
			Help: "Whether a session is currently running (0 or 1)",
		},
	)
)

// Category metrics
var (
	// CategoryOpsTotal tracks category store operations by operation and status
	CategoryOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "category_operations_total",
			Help: "Total category store operations by operation and status",
		},
		[]string{"operation", "status"},
	)
)

// HTTP metrics
var (
	// HTTPRequestDuration tracks request latency by method and path
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// CSVExportsTotal tracks CSV export downloads
	CSVExportsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "csv_exports_total",
			Help: "Total CSV export downloads",
		},
	)
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RecordLedgerOp increments the ledger operation counter.
func RecordLedgerOp(operation string, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	LedgerOpsTotal.WithLabelValues(operation, status).Inc()
}

// RecordCategoryOp increments the category operation counter.
func RecordCategoryOp(operation string, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	CategoryOpsTotal.WithLabelValues(operation, status).Inc()
}
