package editops

import (
	"context"
	"encoding/json"

	"github.com/threatflux/cot/internal/errors"
	"github.com/threatflux/cot/internal/helpers"
)

// qemuImgInfo mirrors the fields `qemu-img info --output=json` emits
// that this package cares about.
type qemuImgInfo struct {
	VirtualSize uint64 `json:"virtual-size"`
	Format      string `json:"format"`
}

// probeVirtualSize shells out to qemu-img to learn a disk image's
// virtual (guest-visible) capacity, the value DiskSection/Disk needs —
// distinct from the host file's on-disk size, which streamOptimized and
// sparse formats compress away. Returns ok=false (no error) if the
// helper is not installed, letting the caller fall back with a warning
// rather than fail outright, matching the capability-warning
// policy.
func probeVirtualSize(reg *helpers.Registry, path string) (size uint64, format string, ok bool, err error) {
	out, err := reg.Invoke(context.Background(), helpers.CapabilityQemuImg, "info", "--output=json", path)
	if err != nil {
		if errors.GetKind(err) == errors.KindCapability {
			return 0, "", false, nil
		}
		return 0, "", false, err
	}

	var info qemuImgInfo
	if jsonErr := json.Unmarshal(out, &info); jsonErr != nil {
		return 0, "", false, errors.WrapWithKind(jsonErr, errors.KindEnvironmental, "parse qemu-img output for %q", path)
	}
	return info.VirtualSize, info.Format, true, nil
}
