package editops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/threatflux/cot/internal/errors"
	"github.com/threatflux/cot/internal/hardware"
	"github.com/threatflux/cot/internal/helpers"
	"github.com/threatflux/cot/internal/platform"
	"github.com/threatflux/cot/internal/resources"
)

// InjectConfigRequest targets a controller slot for the bootstrap
// configuration medium; the medium itself (FAT disk vs ISO 9660) is
// chosen from the descriptor's product-class platform.
type InjectConfigRequest struct {
	ConfigBytes    []byte
	ControllerType string
	Bus            int
	Unit           int
}

// InjectConfig writes configBytes to the per-product-class bootstrap
// filename, builds the platform's expected medium (a FAT disk image
// via fatdisk, or an ISO 9660 image via mkisofs) in the session
// workspace, and attaches it at the requested controller slot — a hard
// disk drive or CD-ROM drive depending on platform.BootstrapMedium,
// including the "replacing a CD-ROM with a hard disk" boundary
// behavior when the target platform changes.
func (c *Context) InjectConfig(req InjectConfigRequest, helperReg *helpers.Registry, stagedPaths map[string]string) (err error) {
	defer func() { c.Session.Metrics.RecordEditApplied("inject-config", err == nil) }()

	p := platform.Lookup(c.Product.ProductClass)
	filename := p.BootstrapFilename()

	stagingDir := c.Session.Workspace.Path("inject-config-staging")
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return errors.WrapWithKind(err, errors.KindEnvironmental, "create staging directory")
	}
	if err := os.WriteFile(filepath.Join(stagingDir, filename), req.ConfigBytes, 0o644); err != nil {
		return errors.WrapWithKind(err, errors.KindEnvironmental, "stage bootstrap file %q", filename)
	}

	controller, err := c.findController(req.ControllerType, req.Bus)
	if err != nil {
		return err
	}

	var (
		imagePath string
		rt        hardware.ResourceType
		formatURI string
	)

	switch p.BootstrapMedium() {
	case platform.CDROM:
		imagePath = c.Session.Workspace.Path("config.iso")
		if _, err := helperReg.Invoke(context.Background(), helpers.CapabilityMkisofs,
			"-o", imagePath, "-V", "config", "-J", "-r", stagingDir); err != nil {
			return err
		}
		rt = hardware.ResourceTypeCDDrive
		formatURI = "http://www.iso.org/standard/iso9660"
	default:
		imagePath = c.Session.Workspace.Path("config.vmdk")
		if _, err := helperReg.Invoke(context.Background(), helpers.CapabilityFatdisk,
			imagePath, "format", "-s", "4M", "-t", "fat", "-F", "-i", stagingDir); err != nil {
			return err
		}
		rt = hardware.ResourceTypeDiskDrive
		formatURI = vmdkFormatURI
	}

	fi, err := os.Stat(imagePath)
	if err != nil {
		return errors.WrapWithKind(err, errors.KindEnvironmental, "stat built bootstrap image %q", imagePath)
	}

	fileID := c.nextFileID()
	href := filepath.Base(imagePath)
	if err := c.Files.Add(resources.File{ID: fileID, Href: href, Size: fi.Size()}, true); err != nil {
		return err
	}

	diskID := "vmdisk" + fmt.Sprintf("%d", len(c.Disks.List())+1)
	if err := c.Disks.Add(resources.Disk{ID: diskID, CapacityBytes: uint64(fi.Size()), FileRef: fileID, FormatURI: formatURI}); err != nil {
		return err
	}

	elementName := "Bootstrap configuration"
	if _, _, err := c.Hardware.AddOrReplaceMediaDrive(rt, controller.InstanceID, req.Unit, "ovf:/disk/"+diskID, elementName); err != nil {
		return err
	}

	stagedPaths[fileID] = imagePath
	return nil
}
