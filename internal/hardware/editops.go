package hardware

import (
	"fmt"
	"strconv"
)

// SetCPUCount applies VirtualQuantity=count to the CPU logical item
// under target, synthesizing a CPU item from platform defaults if the
// descriptor has none yet.
func (m *Model) SetCPUCount(target ProfileSet, count int) error {
	li := m.soleItemOf(ResourceTypeCPU)
	if li == nil {
		li = NewLogicalItem(m.NextInstanceID(), ResourceTypeCPU)
		li.Set("AllocationUnits", m.Universe, "hertz * 10^6")
		li.Set("ElementName", m.Universe, "Virtual CPU")
		if err := m.Add(li); err != nil {
			return err
		}
	}
	li.Set("VirtualQuantity", target, strconv.Itoa(count))
	return nil
}

// SetMemoryMB applies VirtualQuantity=megabytes to the memory logical
// item under target, synthesizing one if none exists.
func (m *Model) SetMemoryMB(target ProfileSet, megabytes int) error {
	li := m.soleItemOf(ResourceTypeMemory)
	if li == nil {
		li = NewLogicalItem(m.NextInstanceID(), ResourceTypeMemory)
		li.Set("AllocationUnits", m.Universe, "byte * 2^20")
		li.Set("ElementName", m.Universe, "Memory")
		if err := m.Add(li); err != nil {
			return err
		}
	}
	li.Set("VirtualQuantity", target, strconv.Itoa(megabytes))
	return nil
}

// soleItemOf returns the first item of rt, or nil if none exists.
func (m *Model) soleItemOf(rt ResourceType) *LogicalItem {
	items := m.ByResourceType(rt)
	if len(items) == 0 {
		return nil
	}
	return items[0]
}

// SetNICCount grows or shrinks the number of ethernet adapter items to
// count, cloning the last existing NIC as a template for new ones (or
// synthesizing from resourceSubType if there are none yet), and
// dropping the highest-numbered NICs on shrink. networkName is called
// once per newly added NIC with a 0-based index counting only the NICs
// this call adds (0 for the first one added, 1 for the second, ...),
// and supplies the Connection value to set on it — callers extend a
// discernible network-naming sequence this way instead of pointing
// every new NIC at the same network. It returns the InstanceIDs of any
// newly added NICs.
func (m *Model) SetNICCount(count int, resourceSubType string, networkName func(addedIndex int) string) ([]int, error) {
	nics := m.ByResourceType(ResourceTypeEthernetAdapter)
	var added []int
	addedIndex := 0

	for len(nics) < count {
		newID := m.NextInstanceID()
		var li *LogicalItem
		if len(nics) > 0 {
			li = nics[len(nics)-1].Clone(newID)
		} else {
			li = NewLogicalItem(newID, ResourceTypeEthernetAdapter)
			li.Set("ResourceSubType", m.Universe, resourceSubType)
			li.Set("AutomaticAllocation", m.Universe, "true")
		}
		li.Set("Connection", m.Universe, networkName(addedIndex))
		li.Set("ElementName", m.Universe, fmt.Sprintf("Network adapter %d", len(nics)+1))
		if err := m.Add(li); err != nil {
			return added, err
		}
		RematerializeDependents(li, "Connection", m.Universe)
		nics = append(nics, li)
		added = append(added, newID)
		addedIndex++
	}

	for len(nics) > count {
		last := nics[len(nics)-1]
		m.Remove(last.InstanceID)
		nics = nics[:len(nics)-1]
	}

	return added, nil
}

// SetSerialCount grows or shrinks the number of serial port items to
// count, symmetrically with SetNICCount.
func (m *Model) SetSerialCount(count int) ([]int, error) {
	ports := m.ByResourceType(ResourceTypeSerialPort)
	var added []int

	for len(ports) < count {
		newID := m.NextInstanceID()
		var li *LogicalItem
		if len(ports) > 0 {
			li = ports[len(ports)-1].Clone(newID)
		} else {
			li = NewLogicalItem(newID, ResourceTypeSerialPort)
		}
		li.Set("ElementName", m.Universe, fmt.Sprintf("Serial port %d", len(ports)+1))
		if err := m.Add(li); err != nil {
			return added, err
		}
		ports = append(ports, li)
		added = append(added, newID)
	}

	for len(ports) > count {
		last := ports[len(ports)-1]
		m.Remove(last.InstanceID)
		ports = ports[:len(ports)-1]
	}

	return added, nil
}

// SetNICNetworks assigns the Connection attribute of each ethernet
// adapter item, in InstanceID order, from names. If fewer names than
// NICs are given, the last name is reused for the remainder (N names
// given for M NICs with N<M). It returns the set of
// network names actually referenced afterward, so the caller can
// reconcile the NetworkSection (delete networks no NIC uses anymore).
func (m *Model) SetNICNetworks(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	nics := m.ByResourceType(ResourceTypeEthernetAdapter)
	used := make(map[string]struct{})
	for i, nic := range nics {
		name := names[len(names)-1]
		if i < len(names) {
			name = names[i]
		}
		nic.Set("Connection", m.Universe, name)
		RematerializeDependents(nic, "Connection", m.Universe)
		used[name] = struct{}{}
	}
	out := make([]string, 0, len(used))
	for name := range used {
		out = append(out, name)
	}
	return out
}

// FindDiskDriveAt returns the disk drive item attached at
// (controllerInstanceID, addressOnParent), under the item's default
// resolution profile, if one exists.
func (m *Model) FindDiskDriveAt(controllerInstanceID, addressOnParent int) (*LogicalItem, bool) {
	return m.findDriveAt(ResourceTypeDiskDrive, controllerInstanceID, addressOnParent)
}

func (m *Model) findDriveAt(rt ResourceType, controllerInstanceID, addressOnParent int) (*LogicalItem, bool) {
	profile, ok := m.Universe.Any()
	if !ok {
		return nil, false
	}
	for _, li := range m.ByResourceType(rt) {
		parentStr, ok := li.Get("Parent", profile)
		if !ok {
			continue
		}
		addrStr, ok := li.Get("AddressOnParent", profile)
		if !ok {
			continue
		}
		if parentStr == strconv.Itoa(controllerInstanceID) && addrStr == strconv.Itoa(addressOnParent) {
			return li, true
		}
	}
	return nil, false
}

// AddOrReplaceDiskDrive attaches a disk drive referencing fileRef at
// (controllerInstanceID, addressOnParent), replacing whatever is
// already attached there, or creating a new item if the slot is free.
// It reports whether an existing item was replaced.
func (m *Model) AddOrReplaceDiskDrive(controllerInstanceID, addressOnParent int, fileRef string) (*LogicalItem, bool, error) {
	if existing, found := m.FindDiskDriveAt(controllerInstanceID, addressOnParent); found {
		existing.Set("HostResource", m.Universe, fileRef)
		return existing, true, nil
	}

	newID := m.NextInstanceID()
	li := NewLogicalItem(newID, ResourceTypeDiskDrive)
	li.Set("Parent", m.Universe, strconv.Itoa(controllerInstanceID))
	li.Set("AddressOnParent", m.Universe, strconv.Itoa(addressOnParent))
	li.Set("HostResource", m.Universe, fileRef)
	li.Set("ElementName", m.Universe, fmt.Sprintf("Hard disk %d", addressOnParent+1))
	if err := m.Add(li); err != nil {
		return nil, false, err
	}
	return li, false, nil
}

// AddOrReplaceMediaDrive generalizes AddOrReplaceDiskDrive to an
// arbitrary drive resource type, used by the bootstrap-configuration
// injection operation to attach either a hard disk or a CD-ROM
// depending on the target platform's BootstrapMedium.
// Replacing a CD-ROM with a hard disk (or vice versa) at the same slot
// goes through RemoveDriveAt first so the stale ResourceType/Parent
// pairing never lingers.
func (m *Model) AddOrReplaceMediaDrive(rt ResourceType, controllerInstanceID, addressOnParent int, hostResource, elementName string) (*LogicalItem, bool, error) {
	if existing, found := m.findDriveAt(rt, controllerInstanceID, addressOnParent); found {
		existing.Set("HostResource", m.Universe, hostResource)
		return existing, true, nil
	}

	m.RemoveDriveAt(controllerInstanceID, addressOnParent)

	newID := m.NextInstanceID()
	li := NewLogicalItem(newID, rt)
	li.Set("Parent", m.Universe, strconv.Itoa(controllerInstanceID))
	li.Set("AddressOnParent", m.Universe, strconv.Itoa(addressOnParent))
	li.Set("HostResource", m.Universe, hostResource)
	li.Set("ElementName", m.Universe, elementName)
	if err := m.Add(li); err != nil {
		return nil, false, err
	}
	return li, false, nil
}

// RemoveDriveAt removes whichever disk-drive or CD-ROM item occupies
// (controllerInstanceID, addressOnParent), if any.
func (m *Model) RemoveDriveAt(controllerInstanceID, addressOnParent int) {
	for _, rt := range []ResourceType{ResourceTypeDiskDrive, ResourceTypeCDDrive} {
		if li, found := m.findDriveAt(rt, controllerInstanceID, addressOnParent); found {
			m.Remove(li.InstanceID)
		}
	}
}

// DeleteAllOtherProfiles collapses the model onto a single surviving
// profile: every attribute keeps the value it resolved to for keep,
// the model's universe shrinks to {keep}, and that single remaining
// profile-set now equals the (new, smaller) universe, so it is emitted
// without a `configuration` attribute.
func (m *Model) DeleteAllOtherProfiles(keep string) {
	newUniverse := NewProfileSet(keep)
	for _, li := range m.Items() {
		for name := range li.Attributes {
			val, ok := li.Get(name, keep)
			if !ok {
				continue
			}
			fresh := NewAttributeMap()
			fresh.Seed(newUniverse, val)
			li.Attributes[name] = fresh
		}
	}
	m.Universe = newUniverse
}
