// Package metrics provides Prometheus counters for the datajanitor CLI. A
// run writes them to a node_exporter textfile when asked to.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	dj "github.com/reoring/datajanitor"
)

const namespace = "datajanitor"

// Validation results.
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// Metrics holds the CLI counters on a private registry.
type Metrics struct {
	reg *prometheus.Registry

	Validations      *prometheus.CounterVec
	ColumnViolations *prometheus.CounterVec
	RowsRemoved      *prometheus.CounterVec
	DatasetsLoaded   *prometheus.CounterVec
}

// New creates and registers all metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		Validations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Total number of schema validations by result",
		}, []string{"result"}),
		ColumnViolations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "column_violations_total",
			Help:      "Total number of column violations by issue code",
		}, []string{"code"}),
		RowsRemoved: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_removed_total",
			Help:      "Total number of rows removed by cleaning step",
		}, []string{"step"}),
		DatasetsLoaded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "datasets_loaded_total",
			Help:      "Total number of datasets loaded by file format",
		}, []string{"format"}),
	}
}

// Registry exposes the private registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// RecordValidation classifies the result of datajanitor.Validate.
func (m *Metrics) RecordValidation(err error) {
	if err == nil {
		m.Validations.WithLabelValues(ResultValid).Inc()
		return
	}
	sve, ok := dj.AsSchemaValidationError(err)
	if !ok {
		m.Validations.WithLabelValues(ResultError).Inc()
		return
	}
	m.Validations.WithLabelValues(ResultInvalid).Inc()
	for _, is := range sve.Issues {
		m.ColumnViolations.WithLabelValues(is.Code).Inc()
	}
}

// RecordRowsRemoved adds the rows a cleaning step dropped.
func (m *Metrics) RecordRowsRemoved(step string, before, after int64) {
	if before > after {
		m.RowsRemoved.WithLabelValues(step).Add(float64(before - after))
	}
}

// RecordDatasetLoaded counts a dataset read from disk.
func (m *Metrics) RecordDatasetLoaded(format string) {
	m.DatasetsLoaded.WithLabelValues(format).Inc()
}

// WriteTextfile writes every metric in the text exposition format. The
// file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
