package editops

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/threatflux/cot/internal/errors"
	"github.com/threatflux/cot/internal/hardware"
	"github.com/threatflux/cot/internal/helpers"
	"github.com/threatflux/cot/internal/resources"
)

// AddDiskRequest describes one add-disk invocation: attach hostPath as
// a new disk drive on the bus-th controller of controllerType
// ("scsi"/"ide"), at AddressOnParent unit.
type AddDiskRequest struct {
	HostPath       string
	ControllerType string
	Bus            int
	Unit           int
	Force          bool
}

// AddDisk stages hostPath into the session workspace's file set, probes
// its virtual capacity via qemu-img when available, and attaches it as
// a disk-drive Item at the requested controller/address. stagedPaths
// accumulates file-id -> on-disk-path entries for WriteOutput to
// stream from later.
func (c *Context) AddDisk(req AddDiskRequest, helperReg *helpers.Registry, stagedPaths map[string]string) (err error) {
	defer func() { c.Session.Metrics.RecordEditApplied("add-disk", err == nil) }()

	controller, err := c.findController(req.ControllerType, req.Bus)
	if err != nil {
		return err
	}

	fi, err := os.Stat(req.HostPath)
	if err != nil {
		return errors.WrapWithKind(err, errors.KindInvalidInput, "stat disk image %q", req.HostPath)
	}

	capacity := uint64(fi.Size())
	formatURI := vmdkFormatURI
	if size, format, ok, perr := probeVirtualSize(helperReg, req.HostPath); perr != nil {
		return perr
	} else if ok {
		capacity = size
		formatURI = formatURIForQemuFormat(format)
	} else if !c.Session.Confirm(fmt.Sprintf("qemu-img not available; using host file size (%d bytes) as %q's virtual capacity", capacity, req.HostPath)) {
		return errors.WrapWithKind(errors.ErrCancelled, errors.KindCancelled, "add-disk cancelled: capacity could not be verified")
	}

	href := filepath.Base(req.HostPath)
	fileID := c.nextFileID()
	file := resources.File{ID: fileID, Href: href, Size: fi.Size()}
	if err := c.Files.Add(file, req.Force); err != nil {
		return err
	}

	diskID := "vmdisk" + strconv.Itoa(len(c.Disks.List())+1)
	disk := resources.Disk{ID: diskID, CapacityBytes: capacity, FileRef: fileID, FormatURI: formatURI}
	if err := c.Disks.Add(disk); err != nil {
		return err
	}

	if _, _, err := c.Hardware.AddOrReplaceDiskDrive(controller.InstanceID, req.Unit, "ovf:/disk/"+diskID); err != nil {
		return err
	}

	stagedPaths[fileID] = req.HostPath
	return nil
}

// AddFile stages an arbitrary auxiliary file (not a disk image) into
// the References collection without any corresponding hardware item.
func (c *Context) AddFile(hostPath string, force bool, stagedPaths map[string]string) (err error) {
	defer func() { c.Session.Metrics.RecordEditApplied("add-file", err == nil) }()

	fi, err := os.Stat(hostPath)
	if err != nil {
		return errors.WrapWithKind(err, errors.KindInvalidInput, "stat file %q", hostPath)
	}
	href := filepath.Base(hostPath)
	fileID := c.nextFileID()
	if err := c.Files.Add(resources.File{ID: fileID, Href: href, Size: fi.Size()}, force); err != nil {
		return err
	}
	stagedPaths[fileID] = hostPath
	return nil
}

// RemoveFile removes a File identified by fileID and/or href (the
// filename clients pass on the command line) — exactly one is normally
// given; if both are given they must refer to the same entry, per
// resources.ResolveFileTarget. If a Disk referenced that file, the Disk
// entry is removed and every disk-drive Item attached to it is
// converted to an empty placeholder (HostResource cleared) rather than
// removed outright.
func (c *Context) RemoveFile(fileID, href string) (err error) {
	defer func() { c.Session.Metrics.RecordEditApplied("remove-file", err == nil) }()

	f, err := resources.ResolveFileTarget(c.Files, fileID, href)
	if err != nil {
		return err
	}
	if err := c.Files.Remove(f.ID); err != nil {
		return err
	}

	disk, ok := c.Disks.FindByFileRef(f.ID)
	if !ok {
		return nil
	}
	hostResource := "ovf:/disk/" + disk.ID
	for _, li := range c.Hardware.ByResourceType(hardware.ResourceTypeDiskDrive) {
		for _, p := range c.Hardware.Universe.Sorted() {
			if v, ok := li.Get("HostResource", p); ok && v == hostResource {
				delete(li.Attributes, "HostResource")
				break
			}
		}
	}
	return c.Disks.Remove(disk.ID)
}

func (c *Context) nextFileID() string {
	n := len(c.Files.List()) + 1
	for {
		id := "file" + strconv.Itoa(n)
		if _, exists := c.Files.Get(id); !exists {
			return id
		}
		n++
	}
}

func (c *Context) findController(controllerType string, bus int) (*hardware.LogicalItem, error) {
	var rt hardware.ResourceType
	switch controllerType {
	case "scsi":
		rt = hardware.ResourceTypeSCSIController
	case "ide":
		rt = hardware.ResourceTypeIDEController
	default:
		return nil, errors.WrapWithKind(fmt.Errorf("controller type %q", controllerType), errors.KindInvalidInput, "add disk")
	}

	controllers := c.Hardware.ByResourceType(rt)
	if bus < 0 || bus >= len(controllers) {
		return nil, errors.WrapWithKind(fmt.Errorf("%s bus %d", controllerType, bus), errors.KindNotFound, "controller not found")
	}
	return controllers[bus], nil
}

const vmdkFormatURI = "http://www.vmware.com/interfaces/specifications/vmdk.html#streamOptimized"

func formatURIForQemuFormat(format string) string {
	switch format {
	case "qcow2":
		return "http://www.gnome.org/~markmc/qcow-image-format.html"
	default:
		return vmdkFormatURI
	}
}
