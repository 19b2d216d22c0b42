package descriptor

import (
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/threatflux/cot/internal/errors"
	"github.com/threatflux/cot/internal/hardware"
)

// LoadHardwareItems parses VirtualHardwareSection's flat Item elements
// into hardware.FlatItem values, ready for hardware.Ingest. InstanceID
// and ResourceType are lifted out of their rasd: child elements since
// the hardware package treats them as identity, not ordinary
// per-profile attributes.
func (d *Descriptor) LoadHardwareItems() ([]hardware.FlatItem, error) {
	vhs := d.VirtualSystem.SelectElement("VirtualHardwareSection")
	if vhs == nil {
		return nil, errors.WrapWithKind(errors.ErrMissingSection, errors.KindInvalidInput, "descriptor has no VirtualHardwareSection")
	}

	var out []hardware.FlatItem
	for _, item := range vhs.SelectElements("Item") {
		fi := hardware.FlatItem{Attributes: make(map[string]string)}

		if cfg := item.SelectAttrValue(ovfAttr("configuration"), ""); cfg != "" {
			for _, id := range strings.Split(cfg, ",") {
				fi.Configuration = append(fi.Configuration, strings.TrimSpace(id))
			}
		}

		for _, child := range item.ChildElements() {
			switch child.Tag {
			case "InstanceID":
				n, err := strconv.Atoi(strings.TrimSpace(child.Text()))
				if err != nil {
					return nil, errors.WrapWithKind(err, errors.KindInvalidInput, "parse InstanceID")
				}
				fi.InstanceID = n
			case "ResourceType":
				n, err := strconv.Atoi(strings.TrimSpace(child.Text()))
				if err != nil {
					return nil, errors.WrapWithKind(err, errors.KindInvalidInput, "parse ResourceType")
				}
				fi.ResourceType = hardware.ResourceType(n)
			default:
				fi.Attributes[child.Tag] = child.Text()
			}
		}

		out = append(out, fi)
	}
	return out, nil
}

// SaveHardwareItems rebuilds VirtualHardwareSection's Item children
// from flat items, in the order given (hardware.Model.Emit preserves
// first-seen InstanceID order, so callers get stable output).
func (d *Descriptor) SaveHardwareItems(items []hardware.FlatItem) {
	vhs := d.VirtualSystem.SelectElement("VirtualHardwareSection")
	if vhs == nil {
		vhs = etree.NewElement("VirtualHardwareSection")
		d.VirtualSystem.AddChild(vhs)
	}
	clearChildren(vhs, "Item")

	for _, fi := range items {
		item := etree.NewElement("Item")
		if len(fi.Configuration) > 0 {
			item.CreateAttr(ovfAttr("configuration"), strings.Join(fi.Configuration, ", "))
		}

		instanceID := etree.NewElement(rasdTag("InstanceID"))
		instanceID.SetText(strconv.Itoa(fi.InstanceID))
		item.AddChild(instanceID)

		resourceType := etree.NewElement(rasdTag("ResourceType"))
		resourceType.SetText(strconv.Itoa(int(fi.ResourceType)))
		item.AddChild(resourceType)

		names := make([]string, 0, len(fi.Attributes))
		for name := range fi.Attributes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			e := etree.NewElement(rasdTag(name))
			e.SetText(fi.Attributes[name])
			item.AddChild(e)
		}

		vhs.AddChild(item)
	}
}

// HardwareModel ingests the descriptor's current VirtualHardwareSection
// and DeploymentOptionSection into an in-memory hardware.Model.
func (d *Descriptor) HardwareModel() (*hardware.Model, error) {
	flat, err := d.LoadHardwareItems()
	if err != nil {
		return nil, err
	}
	universe := hardware.NewProfileSet(d.ProfileIDs()...)
	return hardware.Ingest(flat, universe)
}

// SaveHardwareModel emits model back into VirtualHardwareSection.
func (d *Descriptor) SaveHardwareModel(model *hardware.Model) {
	d.SaveHardwareItems(model.Emit())
}
