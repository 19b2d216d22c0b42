package descriptor

import (
	"github.com/beevik/etree"

	"github.com/threatflux/cot/internal/resources"
)

// LoadProfiles parses DeploymentOptionSection into a ProfileSet.
func (d *Descriptor) LoadProfiles() *resources.ProfileSet {
	ps := resources.NewProfileSet()
	section := d.Envelope.SelectElement("DeploymentOptionSection")
	if section == nil {
		return ps
	}
	for _, ce := range section.SelectElements("Configuration") {
		p := resources.Profile{
			ID:      ce.SelectAttrValue(ovfAttr("id"), ""),
			Default: ce.SelectAttrValue(ovfAttr("default"), "false") == "true",
		}
		if label := ce.SelectElement("Label"); label != nil {
			p.Label = label.Text()
		}
		if desc := ce.SelectElement("Description"); desc != nil {
			p.Description = desc.Text()
		}
		_ = ps.Add(p)
	}
	return ps
}

// SaveProfiles rewrites DeploymentOptionSection's Configuration
// children from ps.
func (d *Descriptor) SaveProfiles(ps *resources.ProfileSet) {
	section := d.section("DeploymentOptionSection")
	clearChildren(section, "Configuration")
	for _, p := range ps.List() {
		ce := etree.NewElement("Configuration")
		ce.CreateAttr(ovfAttr("id"), p.ID)
		if p.Default {
			ce.CreateAttr(ovfAttr("default"), "true")
		}
		if p.Label != "" {
			label := etree.NewElement("Label")
			label.SetText(p.Label)
			ce.AddChild(label)
		}
		if p.Description != "" {
			desc := etree.NewElement("Description")
			desc.SetText(p.Description)
			ce.AddChild(desc)
		}
		section.AddChild(ce)
	}
}

// ProfileIDs returns every configuration profile ID declared in
// DeploymentOptionSection, or the implicit no-profile sentinel if the
// descriptor declares none.
func (d *Descriptor) ProfileIDs() []string {
	ids := d.LoadProfiles().IDs()
	if len(ids) == 0 {
		return []string{""}
	}
	return ids
}
