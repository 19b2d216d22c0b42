package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/threatflux/cot/pkg/logger"
)

// PrometheusMetrics implements Collector using the client_golang default
// registry. A caller that wants to expose these (e.g. as a snapshot
// file) gathers them through prometheus.DefaultGatherer.
type PrometheusMetrics struct {
	packagesOpened  *prometheus.CounterVec
	packageWriteDur *prometheus.HistogramVec
	editsApplied    *prometheus.CounterVec
	warnings        *prometheus.CounterVec
	helperCalls     *prometheus.CounterVec
	helperDuration  *prometheus.HistogramVec

	logger logger.Logger
}

// NewPrometheusMetrics registers and returns a PrometheusMetrics.
func NewPrometheusMetrics(log logger.Logger) *PrometheusMetrics {
	m := &PrometheusMetrics{logger: log}

	m.packagesOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cot_packages_opened_total",
			Help: "Total number of OVF/OVA packages opened for reading, by form.",
		},
		[]string{"form"},
	)

	m.packageWriteDur = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cot_package_write_duration_seconds",
			Help:    "Duration of package write operations in seconds, by form.",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 180},
		},
		[]string{"form"},
	)

	m.editsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cot_edits_applied_total",
			Help: "Total number of edit operations applied, by operation and outcome.",
		},
		[]string{"operation", "status"},
	)

	m.warnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cot_warnings_total",
			Help: "Total number of warnings raised, by code.",
		},
		[]string{"code"},
	)

	m.helperCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cot_helper_invocations_total",
			Help: "Total number of external helper tool invocations, by tool and outcome.",
		},
		[]string{"tool", "status"},
	)

	m.helperDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cot_helper_invocation_duration_seconds",
			Help:    "Duration of external helper tool invocations in seconds, by tool.",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
		[]string{"tool"},
	)

	return m
}

// RecordPackageOpened records that a package of the given form was opened.
func (m *PrometheusMetrics) RecordPackageOpened(form string) {
	m.packagesOpened.With(prometheus.Labels{"form": form}).Inc()
}

// RecordPackageWritten records a package write's duration.
func (m *PrometheusMetrics) RecordPackageWritten(form string, duration time.Duration) {
	m.packageWriteDur.With(prometheus.Labels{"form": form}).Observe(duration.Seconds())
}

// RecordEditApplied records an edit operation's outcome.
func (m *PrometheusMetrics) RecordEditApplied(operation string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.editsApplied.With(prometheus.Labels{
		"operation": operation,
		"status":    status,
	}).Inc()
}

// RecordWarning records a warning of the given code.
func (m *PrometheusMetrics) RecordWarning(code string) {
	m.warnings.With(prometheus.Labels{"code": code}).Inc()
}

// RecordHelperInvocation records an external helper tool invocation.
func (m *PrometheusMetrics) RecordHelperInvocation(tool string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.helperCalls.With(prometheus.Labels{
		"tool":   tool,
		"status": status,
	}).Inc()
	m.helperDuration.With(prometheus.Labels{"tool": tool}).Observe(duration.Seconds())
}
