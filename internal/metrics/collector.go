package metrics

import (
	"time"

	"github.com/threatflux/cot/pkg/logger"
)

// Collector provides an interface for recording the operational
// counters a single cot invocation produces. There is no HTTP server in
// the core; a Collector only accumulates in-process counters that a
// caller may dump on exit.
type Collector interface {
	// RecordPackageOpened records that a package of the given form
	// ("directory" or "ova") was opened for reading.
	RecordPackageOpened(form string)

	// RecordPackageWritten records that a package of the given form was
	// written, along with the wall-clock duration of the write.
	RecordPackageWritten(form string, duration time.Duration)

	// RecordEditApplied records an edit operation's outcome.
	RecordEditApplied(operation string, success bool)

	// RecordWarning records that a warning of the given code was
	// raised (e.g. "descriptor-not-first", "unknown-element-preserved").
	RecordWarning(code string)

	// RecordHelperInvocation records an external helper tool invocation
	// (qemu-img, mkisofs, fatdisk, vmdktool, isoinfo, ovftool).
	RecordHelperInvocation(tool string, success bool, duration time.Duration)
}

// NewCollector creates a Collector. impl selects the backend:
// "prometheus" registers real collectors against the default registry,
// anything else (including "" and "noop") returns a NoopCollector.
func NewCollector(impl string, log logger.Logger) Collector {
	switch impl {
	case "prometheus":
		return NewPrometheusMetrics(log)
	default:
		return &NoopCollector{}
	}
}

// NoopCollector discards every recorded metric. It is the collector a
// session.Session uses unless WithMetrics supplies another.
type NoopCollector struct{}

func (n *NoopCollector) RecordPackageOpened(form string)                         {}
func (n *NoopCollector) RecordPackageWritten(form string, duration time.Duration) {}
func (n *NoopCollector) RecordEditApplied(operation string, success bool)         {}
func (n *NoopCollector) RecordWarning(code string)                                {}
func (n *NoopCollector) RecordHelperInvocation(tool string, success bool, d time.Duration) {
}
