package hardware

// ResourceType mirrors the CIM_ResourceAllocationSettingData ResourceType
// codes used in OVF VirtualHardwareSection Items.
type ResourceType int

const (
	ResourceTypeOther           ResourceType = 1
	ResourceTypeCPU             ResourceType = 3
	ResourceTypeMemory          ResourceType = 4
	ResourceTypeIDEController   ResourceType = 5
	ResourceTypeSCSIController  ResourceType = 6
	ResourceTypeEthernetAdapter ResourceType = 10
	ResourceTypeCDDrive         ResourceType = 15
	ResourceTypeDiskDrive       ResourceType = 17
	ResourceTypeSerialPort      ResourceType = 21
)

// LogicalItem is the conceptual hardware piece aggregating every flat
// Item element that shares an InstanceID.
type LogicalItem struct {
	InstanceID   int
	ResourceType ResourceType

	// Attributes maps child-element name (VirtualQuantity, Connection,
	// ElementName, Parent, AddressOnParent, ...) to its per-profile
	// factored value map.
	Attributes map[string]*AttributeMap
}

// NewLogicalItem returns an empty LogicalItem for the given identity.
func NewLogicalItem(instanceID int, resourceType ResourceType) *LogicalItem {
	return &LogicalItem{
		InstanceID:   instanceID,
		ResourceType: resourceType,
		Attributes:   make(map[string]*AttributeMap),
	}
}

// Get resolves attr's value for profile, if the item defines that
// attribute at all.
func (li *LogicalItem) Get(attr, profile string) (string, bool) {
	am, ok := li.Attributes[attr]
	if !ok {
		return "", false
	}
	return am.Get(profile)
}

// Set applies value_replace_wildcards to attr, scoped to target. If the
// item does not yet define attr, a fresh AttributeMap is created.
func (li *LogicalItem) Set(attr string, target ProfileSet, value string) {
	am, ok := li.Attributes[attr]
	if !ok {
		am = NewAttributeMap()
		li.Attributes[attr] = am
	}
	am.Replace(target, value)
}

// Clone returns a deep copy of li with a new InstanceID, for the
// clone-from-sibling behavior when growing a set of like items (new
// items are cloned from an existing sibling).
func (li *LogicalItem) Clone(newInstanceID int) *LogicalItem {
	out := NewLogicalItem(newInstanceID, li.ResourceType)
	for name, am := range li.Attributes {
		clone := NewAttributeMap()
		for _, e := range am.Entries() {
			clone.Seed(e.Profiles, e.Value)
		}
		out.Attributes[name] = clone
	}
	return out
}

// AttributeNames returns the set of child-element names li currently
// defines, in no particular order.
func (li *LogicalItem) AttributeNames() []string {
	out := make([]string, 0, len(li.Attributes))
	for name := range li.Attributes {
		out = append(out, name)
	}
	return out
}
