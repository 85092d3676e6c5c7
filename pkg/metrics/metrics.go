// Package metrics exposes Prometheus collectors for recstore activity.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the record stores.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Record metrics
	recordsAppended *prometheus.CounterVec
	recordsRemoved  *prometheus.CounterVec

	// Arena metrics
	bufferBytes         *prometheus.GaugeVec
	bufferCapacityBytes *prometheus.GaugeVec
	reallocationsTotal  *prometheus.CounterVec

	// Failure metrics
	failuresTotal *prometheus.CounterVec

	// Operation metrics
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

// NewMetrics creates all store metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		recordsAppended: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recstore_records_appended_total",
				Help: "Total number of records appended to a store",
			},
			[]string{"store"},
		),

		recordsRemoved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recstore_records_removed_total",
				Help: "Total number of records removed from a store",
			},
			[]string{"store"},
		),

		bufferBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "recstore_buffer_bytes",
				Help: "Bytes of the arena currently holding records",
			},
			[]string{"store"},
		),

		bufferCapacityBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "recstore_buffer_capacity_bytes",
				Help: "Bytes currently allocated for the arena",
			},
			[]string{"store"},
		),

		reallocationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recstore_reallocations_total",
				Help: "Total number of arena reallocations",
			},
			[]string{"store"},
		),

		failuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recstore_failures_total",
				Help: "Total number of store failures by kind",
			},
			[]string{"store", "kind"},
		),

		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recstore_operations_total",
				Help: "Total number of store operations",
			},
			[]string{"store", "operation", "status"},
		),

		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "recstore_operation_duration_seconds",
				Help:    "Store operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"store", "operation"},
		),
	}
}

// RecordAppended counts one appended record
func (m *Metrics) RecordAppended(store string) {
	if m == nil {
		return
	}
	m.recordsAppended.WithLabelValues(store).Inc()
}

// RecordRemoved counts one removed record
func (m *Metrics) RecordRemoved(store string) {
	if m == nil {
		return
	}
	m.recordsRemoved.WithLabelValues(store).Inc()
}

// UpdateBufferStats updates the arena gauges
func (m *Metrics) UpdateBufferStats(store string, length, capacity int) {
	if m == nil {
		return
	}
	m.bufferBytes.WithLabelValues(store).Set(float64(length))
	m.bufferCapacityBytes.WithLabelValues(store).Set(float64(capacity))
}

// RecordReallocation counts one arena reallocation
func (m *Metrics) RecordReallocation(store string) {
	if m == nil {
		return
	}
	m.reallocationsTotal.WithLabelValues(store).Inc()
}

// RecordFailure counts a failure of the given kind
func (m *Metrics) RecordFailure(store, kind string) {
	if m == nil {
		return
	}
	m.failuresTotal.WithLabelValues(store, kind).Inc()
}

// RecordOperation records the outcome and duration of a store operation
func (m *Metrics) RecordOperation(store, operation string, success bool, duration time.Duration) {
	if m == nil {
		return
	}
	status := statusSuccess
	if !success {
		status = statusError
	}

	m.operationsTotal.WithLabelValues(store, operation, status).Inc()
	m.operationDuration.WithLabelValues(store, operation).Observe(duration.Seconds())
}

// WriteToFile writes every metric gathered by g to path in the Prometheus
// text exposition format
func WriteToFile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
