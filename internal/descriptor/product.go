package descriptor

import (
	"github.com/beevik/etree"

	"github.com/threatflux/cot/internal/resources"
)

// primaryProductSection returns the first ProductSection under
// VirtualSystem, creating one if none exists.
func (d *Descriptor) primaryProductSection() *etree.Element {
	if ps := d.VirtualSystem.SelectElement("ProductSection"); ps != nil {
		return ps
	}
	ps := etree.NewElement("ProductSection")
	d.VirtualSystem.AddChild(ps)
	return ps
}

// LoadProductInfo reads the primary ProductSection's descriptive fields.
func (d *Descriptor) LoadProductInfo() resources.ProductInfo {
	ps := d.VirtualSystem.SelectElement("ProductSection")
	info := resources.ProductInfo{}
	if ps == nil {
		return info
	}
	info.ProductClass = ps.SelectAttrValue(ovfAttr("class"), "")
	if e := ps.SelectElement("Product"); e != nil {
		info.Product = e.Text()
	}
	if e := ps.SelectElement("Vendor"); e != nil {
		info.Vendor = e.Text()
	}
	if e := ps.SelectElement("Version"); e != nil {
		info.Version = e.Text()
	}
	if e := ps.SelectElement("FullVersion"); e != nil {
		info.FullVersion = e.Text()
	}
	return info
}

// SaveProductInfo writes info's fields into the primary ProductSection,
// leaving Property children and everything else untouched.
func (d *Descriptor) SaveProductInfo(info resources.ProductInfo) {
	ps := d.primaryProductSection()
	if info.ProductClass != "" {
		ps.CreateAttr(ovfAttr("class"), info.ProductClass)
	}
	setChildText(ps, "Product", info.Product)
	setChildText(ps, "Vendor", info.Vendor)
	setChildText(ps, "Version", info.Version)
	setChildText(ps, "FullVersion", info.FullVersion)
}

// setChildText sets (creating if absent) the text of parent's tag
// child, appending new elements as the last child of parent.
func setChildText(parent *etree.Element, tag, text string) {
	if text == "" {
		return
	}
	e := parent.SelectElement(tag)
	if e == nil {
		e = etree.NewElement(tag)
		parent.AddChild(e)
	}
	e.SetText(text)
}

// LoadProperties parses every Property child of the primary
// ProductSection into a PropertySet.
func (d *Descriptor) LoadProperties() *resources.PropertySet {
	out := resources.NewPropertySet()
	ps := d.VirtualSystem.SelectElement("ProductSection")
	if ps == nil {
		return out
	}
	for _, pe := range ps.SelectElements("Property") {
		p := resources.Property{
			Key:        pe.SelectAttrValue(ovfAttr("key"), ""),
			Type:       resources.PropertyType(pe.SelectAttrValue(ovfAttr("type"), string(resources.PropertyTypeString))),
			Qualifiers: pe.SelectAttrValue(ovfAttr("qualifiers"), ""),
		}
		if attr := pe.SelectAttr(ovfAttr("value")); attr != nil {
			p.Value = attr.Value
			p.ValueSet = true
		}
		p.UserConfigurable = pe.SelectAttrValue(ovfAttr("userConfigurable"), "false") == "true"
		p.Password = pe.SelectAttrValue(ovfAttr("password"), "false") == "true"
		if e := pe.SelectElement("Label"); e != nil {
			p.Label = e.Text()
		}
		if e := pe.SelectElement("Description"); e != nil {
			p.Description = e.Text()
		}
		out.Put(p)
	}
	return out
}

// SaveProperties rewrites every Property child of the primary
// ProductSection from props.
func (d *Descriptor) SaveProperties(props *resources.PropertySet) {
	ps := d.primaryProductSection()
	clearChildren(ps, "Property")
	for _, p := range props.List() {
		pe := etree.NewElement("Property")
		pe.CreateAttr(ovfAttr("key"), p.Key)
		pe.CreateAttr(ovfAttr("type"), string(p.Type))
		if p.ValueSet {
			pe.CreateAttr(ovfAttr("value"), p.Value)
		}
		if p.Qualifiers != "" {
			pe.CreateAttr(ovfAttr("qualifiers"), p.Qualifiers)
		}
		if p.UserConfigurable {
			pe.CreateAttr(ovfAttr("userConfigurable"), "true")
		}
		if p.Password {
			pe.CreateAttr(ovfAttr("password"), "true")
		}
		if p.Label != "" {
			label := etree.NewElement("Label")
			label.SetText(p.Label)
			pe.AddChild(label)
		}
		if p.Description != "" {
			desc := etree.NewElement("Description")
			desc.SetText(p.Description)
			pe.AddChild(desc)
		}
		ps.AddChild(pe)
	}
}
