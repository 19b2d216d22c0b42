// Package editops implements the high-level operations a client drives
// a package edit through: add-disk, add-file, remove-file,
// edit-hardware, edit-product, edit-properties, inject-config. Each
// operation loads a Context once, mutates its in-memory resource and
// hardware state, and Flush writes the accumulated state back into the
// descriptor tree and (on WriteOutput) a new package on disk.
package editops

import (
	"os"
	"path/filepath"
	"time"

	"github.com/threatflux/cot/internal/descriptor"
	"github.com/threatflux/cot/internal/errors"
	"github.com/threatflux/cot/internal/hardware"
	"github.com/threatflux/cot/internal/ovfpkg"
	"github.com/threatflux/cot/internal/resources"
	"github.com/threatflux/cot/internal/session"
)

// Context bundles one opened package, its parsed descriptor, and the
// decoded resource collections an edit operation reads and mutates. It
// is not safe for concurrent use: one Context owns one package edit
// from Load through WriteOutput.
type Context struct {
	Session *session.Session
	Package *ovfpkg.Package

	Descriptor *descriptor.Descriptor
	Files      *resources.FileSet
	Disks      *resources.DiskSet
	Networks   *resources.NetworkSet
	Profiles   *resources.ProfileSet
	Product    resources.ProductInfo
	Properties *resources.PropertySet
	Hardware   *hardware.Model
}

// Load opens pkgPath, parses its descriptor, and decodes every
// resource collection into an editable Context.
func Load(sess *session.Session, pkgPath string) (*Context, error) {
	pkg, err := ovfpkg.Open(pkgPath)
	if err != nil {
		return nil, err
	}

	raw, err := pkg.ReadMember(pkg.DescriptorMember)
	if err != nil {
		return nil, err
	}

	d, err := descriptor.Parse(raw)
	if err != nil {
		return nil, err
	}

	hw, err := d.HardwareModel()
	if err != nil {
		return nil, err
	}

	sess.Metrics.RecordPackageOpened(packageFormName(pkg.Form))

	return &Context{
		Session:    sess,
		Package:    pkg,
		Descriptor: d,
		Files:      d.LoadFiles(),
		Disks:      d.LoadDisks(),
		Networks:   d.LoadNetworks(),
		Profiles:   d.LoadProfiles(),
		Product:    d.LoadProductInfo(),
		Properties: d.LoadProperties(),
		Hardware:   hw,
	}, nil
}

// packageFormName renders a Form the way Collector implementations
// label it.
func packageFormName(f ovfpkg.Form) string {
	if f == ovfpkg.FormTAR {
		return "ova"
	}
	return "directory"
}

// Flush writes every in-memory resource collection and the hardware
// model back into the descriptor tree, in preparation for Serialize or
// WriteOutput. Every recognized section is rewritten from its
// collection on each call, whether or not an operation changed it.
func (c *Context) Flush() {
	c.Descriptor.SaveFiles(c.Files)
	c.Descriptor.SaveDisks(c.Disks)
	c.Descriptor.SaveNetworks(c.Networks)
	c.Descriptor.SaveProfiles(c.Profiles)
	c.Descriptor.SaveProductInfo(c.Product)
	c.Descriptor.SaveProperties(c.Properties)
	c.Descriptor.SaveHardwareModel(c.Hardware)
}

// memberSource resolves where a File's bytes should be read from when
// writing output: the workspace scratch copy if the file was staged
// there by this session (add-disk, add-file, inject-config), otherwise
// the still-open input package.
func (c *Context) memberSource(f *resources.File, stagedPaths map[string]string) (ovfpkg.MemberSource, error) {
	if path, ok := stagedPaths[f.ID]; ok {
		return ovfpkg.MemberSource{Name: f.Href, Path: path}, nil
	}

	if c.Package.Form == ovfpkg.FormDirectory {
		return ovfpkg.MemberSource{Name: f.Href, Path: filepath.Join(filepath.Dir(c.Package.DescriptorPath()), f.Href)}, nil
	}

	// TAR form: materialize the member into the session's scratch
	// workspace so write.go can stream it from a plain file path same as
	// any staged member, keeping write.go decoupled from package read
	// internals.
	data, err := c.Package.ReadMember(f.Href)
	if err != nil {
		return ovfpkg.MemberSource{}, err
	}
	scratchPath := c.Session.Workspace.Path(f.ID + "-" + f.Href)
	if err := os.WriteFile(scratchPath, data, 0o644); err != nil {
		return ovfpkg.MemberSource{}, errors.WrapWithKind(err, errors.KindEnvironmental, "stage member %q", f.Href)
	}
	return ovfpkg.MemberSource{Name: f.Href, Path: scratchPath}, nil
}

// WriteOutput flushes pending edits, computes a fresh manifest, and
// writes the package to targetPath in the requested form. stagedPaths
// maps newly-added File IDs to their on-disk source so new members are
// picked up from the session workspace rather than the (not yet
// existing) output.
func (c *Context) WriteOutput(targetPath string, form ovfpkg.Form, stagedPaths map[string]string) error {
	start := time.Now()
	defer func() { c.Session.Metrics.RecordPackageWritten(packageFormName(form), time.Since(start)) }()

	c.Flush()

	descBytes, err := c.Descriptor.Serialize()
	if err != nil {
		return err
	}

	var members []ovfpkg.MemberSource
	for _, f := range c.Files.List() {
		ms, err := c.memberSource(f, stagedPaths)
		if err != nil {
			return err
		}
		members = append(members, ms)
	}

	algo := ovfpkg.AlgoForVersion(c.Descriptor.Version)
	descriptorName := c.Package.DescriptorMember
	if descriptorName == "" {
		descriptorName = "descriptor.ovf"
	}

	return ovfpkg.Write(c.Package, targetPath, form, descriptorName, descBytes, members, algo, c.Session.Confirm)
}
