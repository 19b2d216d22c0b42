package hardware

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/threatflux/cot/internal/errors"
)

// NoProfileSentinel stands in for the profile universe of a virtual
// system that declares no DeploymentOptionSection at all: every Item
// implicitly applies to this single pseudo-profile.
const NoProfileSentinel = ""

// Model is the in-memory factored form of one VirtualHardwareSection:
// a set of LogicalItems plus the profile universe they are factored
// over. Ingest builds a Model from flat Items; Emit reverses that.
type Model struct {
	Universe ProfileSet

	items map[int]*LogicalItem
	order []int // InstanceIDs in first-seen order, for stable Emit output
}

// NewModel returns an empty Model scoped to universe.
func NewModel(universe ProfileSet) *Model {
	return &Model{
		Universe: universe,
		items:    make(map[int]*LogicalItem),
	}
}

// Ingest groups flatItems by InstanceID into LogicalItems and factors
// each attribute's per-item values across universe.
// An Item's own `configuration` attribute (if present) gives the
// explicit profile-set its values apply to; Items without one apply to
// whatever remains of universe once every sibling's explicit set is
// removed (the "default/complement item").
func Ingest(flatItems []FlatItem, universe ProfileSet) (*Model, error) {
	m := NewModel(universe)

	groups := make(map[int][]FlatItem)
	var order []int
	for _, fi := range flatItems {
		if _, seen := groups[fi.InstanceID]; !seen {
			order = append(order, fi.InstanceID)
		}
		groups[fi.InstanceID] = append(groups[fi.InstanceID], fi)
	}

	for _, id := range order {
		group := groups[id]
		for _, fi := range group {
			if fi.ResourceType != group[0].ResourceType {
				return nil, errors.WrapWithKind(
					fmt.Errorf("instance id %d", id),
					errors.KindInternal,
					"conflicting resource types for the same instance id")
			}
		}

		li := NewLogicalItem(id, group[0].ResourceType)

		explicitUnion := NewProfileSet()
		for _, fi := range group {
			if len(fi.Configuration) > 0 {
				explicitUnion = explicitUnion.Union(NewProfileSet(fi.Configuration...))
			}
		}
		defaultProfiles := universe.Minus(explicitUnion)

		attrNames := make(map[string]struct{})
		for _, fi := range group {
			for name := range fi.Attributes {
				attrNames[name] = struct{}{}
			}
		}

		for name := range attrNames {
			am := NewAttributeMap()
			for _, fi := range group {
				val, ok := fi.Attributes[name]
				if !ok {
					continue
				}
				var profiles ProfileSet
				if len(fi.Configuration) > 0 {
					profiles = NewProfileSet(fi.Configuration...)
				} else {
					profiles = defaultProfiles
				}
				if profiles.IsEmpty() {
					continue
				}
				am.Seed(profiles, val)
			}
			li.Attributes[name] = am
		}

		m.items[id] = li
		m.order = append(m.order, id)
	}

	return m, nil
}

// Emit reverses Ingest: it computes the common refinement of every
// item's attribute-map boundaries (its "shards"), then produces one
// flat Item per shard. The largest shard (on a tie, the last in sorted
// order) is emitted without a `configuration` attribute; every other
// shard carries one. Values containing a "{N}" wildcard
// are substituted with a sequence counter, one per shard the attribute
// is actually emitted in.
func (m *Model) Emit() []FlatItem {
	var out []FlatItem
	for _, id := range m.order {
		li := m.items[id]
		shards := computeShards(li.Attributes, m.Universe)

		sort.Slice(shards, func(i, j int) bool {
			return strings.Join(shards[i].Sorted(), ",") < strings.Join(shards[j].Sorted(), ",")
		})

		// Exactly one shard per item is emitted without a `configuration`
		// attribute — the implicit "default" item the DMTF schema allows,
		// applying to whatever its siblings' explicit configuration sets
		// don't cover. The largest shard is the natural pick.
		defaultIdx := 0
		for i, s := range shards {
			if len(s) >= len(shards[defaultIdx]) {
				defaultIdx = i
			}
		}

		wildcardCounters := make(map[string]int)

		for i, shard := range shards {
			profile, ok := shard.Any()
			if !ok {
				continue
			}

			fi := FlatItem{
				InstanceID:   li.InstanceID,
				ResourceType: li.ResourceType,
				Attributes:   make(map[string]string),
			}
			if i != defaultIdx {
				fi.Configuration = shard.Sorted()
			}

			for _, name := range li.AttributeNames() {
				val, ok := li.Get(name, profile)
				if !ok {
					continue
				}
				if HasWildcard(val) {
					counter := wildcardCounters[name]
					val = SubstituteWildcard(val, counter)
					wildcardCounters[name] = counter + 1
				}
				fi.Attributes[name] = val
			}
			out = append(out, fi)
		}
	}
	return out
}

// computeShards finds the coarsest partition of universe such that
// every entry in every attribute map is a union of whole shards — the
// standard partition-refinement construction, needed because an
// attribute's distinct profile-sets can straddle another attribute's
// boundaries instead of nesting cleanly.
func computeShards(attrs map[string]*AttributeMap, universe ProfileSet) []ProfileSet {
	shards := []ProfileSet{universe.Clone()}
	for _, am := range attrs {
		for _, e := range am.Entries() {
			var next []ProfileSet
			for _, s := range shards {
				inter := s.Intersect(e.Profiles)
				diff := s.Minus(e.Profiles)
				if !inter.IsEmpty() {
					next = append(next, inter)
				}
				if !diff.IsEmpty() {
					next = append(next, diff)
				}
			}
			shards = next
		}
	}
	if len(shards) == 0 {
		shards = []ProfileSet{universe.Clone()}
	}
	return shards
}

// Items returns every logical item in first-seen order.
func (m *Model) Items() []*LogicalItem {
	out := make([]*LogicalItem, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id])
	}
	return out
}

// Get looks up a logical item by InstanceID.
func (m *Model) Get(instanceID int) (*LogicalItem, bool) {
	li, ok := m.items[instanceID]
	return li, ok
}

// ByResourceType returns every logical item of the given type, in
// first-seen order.
func (m *Model) ByResourceType(rt ResourceType) []*LogicalItem {
	var out []*LogicalItem
	for _, id := range m.order {
		if li := m.items[id]; li.ResourceType == rt {
			out = append(out, li)
		}
	}
	return out
}

// NextInstanceID returns the smallest InstanceID strictly greater than
// every InstanceID currently in use, so new items get a strictly
// increasing id.
func (m *Model) NextInstanceID() int {
	max := 0
	for id := range m.items {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// Add inserts li, which must carry an InstanceID not already in use.
func (m *Model) Add(li *LogicalItem) error {
	if _, exists := m.items[li.InstanceID]; exists {
		return errors.WrapWithKind(
			fmt.Errorf("instance id %d", li.InstanceID),
			errors.KindConflict,
			"add hardware item")
	}
	m.items[li.InstanceID] = li
	m.order = append(m.order, li.InstanceID)
	return nil
}

// Remove deletes the logical item with the given InstanceID, if any.
func (m *Model) Remove(instanceID int) {
	if _, ok := m.items[instanceID]; !ok {
		return
	}
	delete(m.items, instanceID)
	for i, id := range m.order {
		if id == instanceID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// ValidateReferences checks that every NIC's Connection names a known
// network and every disk drive's Parent names an existing controller
// instance.
func (m *Model) ValidateReferences(networkExists func(name string) bool) error {
	for _, id := range m.order {
		li := m.items[id]
		switch li.ResourceType {
		case ResourceTypeEthernetAdapter:
			for _, p := range m.Universe.Sorted() {
				conn, ok := li.Get("Connection", p)
				if !ok {
					continue
				}
				if !networkExists(conn) {
					return errors.WrapWithKind(
						fmt.Errorf("nic instance %d references network %q", li.InstanceID, conn),
						errors.KindInvalidInput,
						"validate hardware references")
				}
			}
		case ResourceTypeDiskDrive:
			for _, p := range m.Universe.Sorted() {
				parentStr, ok := li.Get("Parent", p)
				if !ok {
					continue
				}
				parentID, err := strconv.Atoi(parentStr)
				if err != nil {
					continue
				}
				if _, exists := m.items[parentID]; !exists {
					return errors.WrapWithKind(
						fmt.Errorf("disk drive instance %d references parent %d", li.InstanceID, parentID),
						errors.KindInvalidInput,
						"validate hardware references")
				}
			}
		}
	}
	return nil
}
