// Package helpers shims the external tools cot delegates to by
// capability name: qemu-img, mkisofs, fatdisk, vmdktool, isoinfo,
// ovftool. The core never bundles or execs these itself beyond what is
// listed here — discovery and invocation semantics belong to the
// external tool collaborator; this package only resolves a configured
// name to a PATH location and runs it through the mockable
// command-execution plumbing.
package helpers

import (
	"context"
	"time"

	"github.com/threatflux/cot/internal/config"
	"github.com/threatflux/cot/internal/errors"
	"github.com/threatflux/cot/internal/metrics"
	"github.com/threatflux/cot/pkg/utils/exec"
)

// Capability names one of the external tools cot can invoke.
type Capability string

const (
	CapabilityQemuImg  Capability = "qemu-img"
	CapabilityMkisofs  Capability = "mkisofs"
	CapabilityFatdisk  Capability = "fatdisk"
	CapabilityVmdktool Capability = "vmdktool"
	CapabilityIsoinfo  Capability = "isoinfo"
	CapabilityOvftool  Capability = "ovftool"
)

// Registry resolves capabilities to configured binary names and runs
// them, caching PATH resolution per name for the lifetime of a session.
type Registry struct {
	cfg      config.HelpersConfig
	resolved map[Capability]string
	metrics  metrics.Collector
}

// NewRegistry builds a Registry from the session's helper configuration.
func NewRegistry(cfg config.HelpersConfig) *Registry {
	return &Registry{cfg: cfg, resolved: make(map[Capability]string)}
}

// WithMetrics attaches a Collector that Invoke reports each helper
// invocation's outcome and duration to. Returns r for chaining at the
// call site.
func (r *Registry) WithMetrics(m metrics.Collector) *Registry {
	r.metrics = m
	return r
}

func (r *Registry) nameFor(cap Capability) string {
	switch cap {
	case CapabilityQemuImg:
		return r.cfg.QemuImg
	case CapabilityMkisofs:
		return r.cfg.Mkisofs
	case CapabilityFatdisk:
		return r.cfg.Fatdisk
	case CapabilityVmdktool:
		return r.cfg.Vmdktool
	case CapabilityIsoinfo:
		return r.cfg.Isoinfo
	case CapabilityOvftool:
		return r.cfg.Ovftool
	default:
		return ""
	}
}

// Resolve finds the absolute path for a capability via PATH lookup,
// returning a Capability error if it is not installed.
func (r *Registry) Resolve(cap Capability) (string, error) {
	if path, ok := r.resolved[cap]; ok {
		return path, nil
	}
	name := r.nameFor(cap)
	if name == "" {
		return "", errors.WrapWithKind(errors.ErrHelperNotFound, errors.KindCapability, "unknown helper capability %q", string(cap))
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", errors.WrapWithKind(errors.ErrHelperNotFound, errors.KindCapability, "helper %q (%s) not found on PATH", cap, name)
	}
	r.resolved[cap] = path
	return path, nil
}

// Invoke resolves cap and runs it with args, returning combined stdout.
func (r *Registry) Invoke(ctx context.Context, cap Capability, args ...string) ([]byte, error) {
	path, err := r.Resolve(cap)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := exec.ExecuteCommand(ctx, path, args, exec.CommandOptions{CombinedOutput: true})
	if r.metrics != nil {
		r.metrics.RecordHelperInvocation(string(cap), err == nil, time.Since(start))
	}
	if err != nil {
		return out, errors.Wrap(err, "invoking helper %q", cap)
	}
	return out, nil
}
