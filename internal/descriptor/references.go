package descriptor

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/threatflux/cot/internal/resources"
)

// LoadFiles parses the References section into a FileSet.
func (d *Descriptor) LoadFiles() *resources.FileSet {
	fs := resources.NewFileSet()
	refs := d.Envelope.SelectElement("References")
	if refs == nil {
		return fs
	}
	for _, fe := range refs.SelectElements("File") {
		f := resources.File{
			ID:   fe.SelectAttrValue(ovfAttr("id"), ""),
			Href: fe.SelectAttrValue(ovfAttr("href"), ""),
		}
		if sizeStr := fe.SelectAttrValue(ovfAttr("size"), ""); sizeStr != "" {
			if n, err := strconv.ParseInt(sizeStr, 10, 64); err == nil {
				f.Size = n
			}
		}
		_ = fs.Add(f, true)
	}
	return fs
}

// SaveFiles rewrites the References section's File children from fs.
func (d *Descriptor) SaveFiles(fs *resources.FileSet) {
	refs := d.section("References")
	clearChildren(refs, "File")
	for _, f := range fs.List() {
		fe := etree.NewElement("File")
		fe.CreateAttr(ovfAttr("id"), f.ID)
		fe.CreateAttr(ovfAttr("href"), f.Href)
		if f.Size > 0 {
			fe.CreateAttr(ovfAttr("size"), strconv.FormatInt(f.Size, 10))
		}
		refs.AddChild(fe)
	}
}

// LoadDisks parses DiskSection into a DiskSet. Capacity is normalized
// to bytes from the `capacity`/`capacityAllocationUnits` attribute
// pair (e.g. capacity="8", units="byte * 2^30" -> 8*2^30 bytes).
func (d *Descriptor) LoadDisks() *resources.DiskSet {
	ds := resources.NewDiskSet()
	section := d.Envelope.SelectElement("DiskSection")
	if section == nil {
		return ds
	}
	for _, de := range section.SelectElements("Disk") {
		disk := resources.Disk{
			ID:        de.SelectAttrValue(ovfAttr("diskId"), ""),
			FileRef:   de.SelectAttrValue(ovfAttr("fileRef"), ""),
			FormatURI: de.SelectAttrValue(ovfAttr("format"), ""),
		}
		capacity := de.SelectAttrValue(ovfAttr("capacity"), "0")
		units := de.SelectAttrValue(ovfAttr("capacityAllocationUnits"), "byte")
		disk.CapacityBytes = toBytes(capacity, units)
		if popStr := de.SelectAttrValue(ovfAttr("populatedSize"), ""); popStr != "" {
			if n, err := strconv.ParseUint(popStr, 10, 64); err == nil {
				disk.PopulatedSizeBytes = &n
			}
		}
		_ = ds.Add(disk)
	}
	return ds
}

// SaveDisks rewrites DiskSection's Disk children from ds. Capacity is
// always emitted in raw bytes with unit "byte" for simplicity; this is
// schema-legal (capacityAllocationUnits defaults to "byte") even though
// round-tripped descriptors may have used a larger unit originally.
// editops.Context.Flush calls SaveDisks on every write, so such a unit
// is rewritten as bytes even when the disk set was not edited.
func (d *Descriptor) SaveDisks(ds *resources.DiskSet) {
	section := d.section("DiskSection")
	clearChildren(section, "Disk")
	for _, disk := range ds.List() {
		de := etree.NewElement("Disk")
		de.CreateAttr(ovfAttr("diskId"), disk.ID)
		if disk.FileRef != "" {
			de.CreateAttr(ovfAttr("fileRef"), disk.FileRef)
		}
		de.CreateAttr(ovfAttr("capacity"), strconv.FormatUint(disk.CapacityBytes, 10))
		de.CreateAttr(ovfAttr("capacityAllocationUnits"), "byte")
		if disk.FormatURI != "" {
			de.CreateAttr(ovfAttr("format"), disk.FormatURI)
		}
		if disk.PopulatedSizeBytes != nil {
			de.CreateAttr(ovfAttr("populatedSize"), strconv.FormatUint(*disk.PopulatedSizeBytes, 10))
		}
		section.AddChild(de)
	}
}

// toBytes evaluates an OVF capacity/value-units pair such as
// ("8", "byte * 2^30") into a raw byte count.
func toBytes(valueStr, units string) uint64 {
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		return 0
	}
	return value * unitsMultiplier(units)
}

// unitsMultiplier parses the DMTF "byte * 2^N" / "byte * 10^N" unit
// grammar (CIM PUnit) used throughout DiskSection and
// VirtualHardwareSection AllocationUnits values.
func unitsMultiplier(units string) uint64 {
	var base, exp uint64
	n, err := fmt.Sscanf(units, "byte * %d^%d", &base, &exp)
	if err != nil || n < 2 {
		return 1
	}
	result := uint64(1)
	for i := uint64(0); i < exp; i++ {
		result *= base
	}
	return result
}
