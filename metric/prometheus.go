// Package metric exports snapshot metrics to Prometheus.
//
// PrometheusCollector implements snapgo.MetricsCollector:
//
//	reg := prometheus.NewRegistry()
//	p := snapgo.New[*lexical.Index](lexical.Engine{},
//	    snapgo.WithMetricsCollector(metric.NewPrometheusCollector(reg, "snapgo")),
//	)
package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/snapgo/codec"
)

// Operation label values.
const (
	OpPersist = "persist"
	OpRestore = "restore"
	OpExport  = "export"
	OpImport  = "import"
)

// PrometheusCollector records persister operations as Prometheus metrics.
type PrometheusCollector struct {
	// OperationsTotal counts operations by operation, format and status.
	OperationsTotal *prometheus.CounterVec
	// OperationLatency observes operation duration in seconds.
	OperationLatency *prometheus.HistogramVec
	// ArtifactBytes observes the encoded size of successful operations.
	ArtifactBytes *prometheus.HistogramVec
}

// NewPrometheusCollector registers the collector's metrics on reg under
// namespace. A nil reg registers nothing, which is handy in tests.
func NewPrometheusCollector(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	factory := promauto.With(reg)
	return &PrometheusCollector{
		OperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of snapshot operations",
			},
			[]string{"operation", "format", "status"}, // status: success/error
		),
		OperationLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_latency_seconds",
				Help:      "Latency of snapshot operations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation", "format"},
		),
		ArtifactBytes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "artifact_size_bytes",
				Help:      "Encoded size of persisted and restored snapshots",
				Buckets:   prometheus.ExponentialBuckets(256, 4, 10), // 256B .. 64MB
			},
			[]string{"operation", "format"},
		),
	}
}

func (c *PrometheusCollector) record(op string, f codec.Format, size int, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.OperationsTotal.WithLabelValues(op, string(f), status).Inc()
	c.OperationLatency.WithLabelValues(op, string(f)).Observe(d.Seconds())
	if err == nil {
		c.ArtifactBytes.WithLabelValues(op, string(f)).Observe(float64(size))
	}
}

// RecordPersist implements snapgo.MetricsCollector.
func (c *PrometheusCollector) RecordPersist(f codec.Format, size int, d time.Duration, err error) {
	c.record(OpPersist, f, size, d, err)
}

// RecordRestore implements snapgo.MetricsCollector.
func (c *PrometheusCollector) RecordRestore(f codec.Format, size int, d time.Duration, err error) {
	c.record(OpRestore, f, size, d, err)
}

// RecordExport implements snapgo.MetricsCollector.
func (c *PrometheusCollector) RecordExport(f codec.Format, size int, d time.Duration, err error) {
	c.record(OpExport, f, size, d, err)
}

// RecordImport implements snapgo.MetricsCollector.
func (c *PrometheusCollector) RecordImport(f codec.Format, size int, d time.Duration, err error) {
	c.record(OpImport, f, size, d, err)
}
