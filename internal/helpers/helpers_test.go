package helpers

import (
	"context"
	"testing"

	"github.com/threatflux/cot/internal/config"
	"github.com/threatflux/cot/internal/errors"
	"github.com/threatflux/cot/pkg/utils/exec"
)

func TestRegistry_ResolveUnknownCapability(t *testing.T) {
	r := NewRegistry(config.HelpersConfig{})
	if _, err := r.Resolve(Capability("bogus")); errors.GetKind(err) != errors.KindCapability {
		t.Fatalf("expected capability error, got %v", err)
	}
}

func TestRegistry_ResolveMissingBinary(t *testing.T) {
	r := NewRegistry(config.HelpersConfig{QemuImg: "definitely-not-a-real-binary-xyz"})
	if _, err := r.Resolve(CapabilityQemuImg); errors.GetKind(err) != errors.KindCapability {
		t.Fatalf("expected capability error for missing binary, got %v", err)
	}
}

func TestRegistry_InvokeUsesExecuteCommand(t *testing.T) {
	orig := exec.ExecuteCommand
	defer func() { exec.ExecuteCommand = orig }()

	var gotArgs []string
	exec.ExecuteCommand = func(ctx context.Context, name string, args []string, opts exec.CommandOptions) ([]byte, error) {
		gotArgs = args
		return []byte("ok"), nil
	}

	r := &Registry{cfg: config.HelpersConfig{QemuImg: "qemu-img"}, resolved: map[Capability]string{CapabilityQemuImg: "/usr/bin/qemu-img"}}
	out, err := r.Invoke(context.Background(), CapabilityQemuImg, "info", "disk.vmdk")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if string(out) != "ok" {
		t.Fatalf("expected stubbed output, got %q", out)
	}
	if len(gotArgs) != 2 || gotArgs[0] != "info" {
		t.Fatalf("expected args passed through, got %v", gotArgs)
	}
}
