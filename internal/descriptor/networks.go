package descriptor

import (
	"github.com/beevik/etree"

	"github.com/threatflux/cot/internal/resources"
)

// LoadNetworks parses NetworkSection into a NetworkSet.
func (d *Descriptor) LoadNetworks() *resources.NetworkSet {
	ns := resources.NewNetworkSet()
	section := d.Envelope.SelectElement("NetworkSection")
	if section == nil {
		return ns
	}
	for _, ne := range section.SelectElements("Network") {
		n := resources.Network{Name: ne.SelectAttrValue(ovfAttr("name"), "")}
		if desc := ne.SelectElement("Description"); desc != nil {
			n.Description = desc.Text()
		}
		_ = ns.Add(n)
	}
	return ns
}

// SaveNetworks rewrites NetworkSection's Network children from ns.
func (d *Descriptor) SaveNetworks(ns *resources.NetworkSet) {
	section := d.section("NetworkSection")
	clearChildren(section, "Network")
	for _, n := range ns.List() {
		ne := etree.NewElement("Network")
		ne.CreateAttr(ovfAttr("name"), n.Name)
		if n.Description != "" {
			desc := etree.NewElement("Description")
			desc.SetText(n.Description)
			ne.AddChild(desc)
		}
		section.AddChild(ne)
	}
}
