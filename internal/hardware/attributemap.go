package hardware

// AttributeMap holds, for one logical item's one attribute (e.g.
// VirtualQuantity), a partition of the profile universe into disjoint
// profile-sets each mapped to a value.
type AttributeMap struct {
	entries []attrEntry
}

type attrEntry struct {
	Profiles ProfileSet
	Value    string
}

// NewAttributeMap returns an empty AttributeMap.
func NewAttributeMap() *AttributeMap {
	return &AttributeMap{}
}

// Get returns the value that applies to profile, and whether any entry
// covers it.
func (m *AttributeMap) Get(profile string) (string, bool) {
	for _, e := range m.entries {
		if e.Profiles.Contains(profile) {
			return e.Value, true
		}
	}
	return "", false
}

// Entries returns the map's current (disjoint) profile-set/value pairs.
func (m *AttributeMap) Entries() []struct {
	Profiles ProfileSet
	Value    string
} {
	out := make([]struct {
		Profiles ProfileSet
		Value    string
	}, len(m.entries))
	for i, e := range m.entries {
		out[i] = struct {
			Profiles ProfileSet
			Value    string
		}{Profiles: e.Profiles, Value: e.Value}
	}
	return out
}

// Seed adds an initial (profiles, value) entry during Ingest, without
// the split logic Replace uses for edits — Ingest already guarantees
// disjointness by construction per-item. Entries that share a value are
// still merged.
func (m *AttributeMap) Seed(profiles ProfileSet, value string) {
	m.entries = append(m.entries, attrEntry{Profiles: profiles.Clone(), Value: value})
	m.normalize()
}

// Replace overwrites the resolution for every profile in target: after
// this call, every profile in target resolves to value, every profile
// outside target keeps its prior resolution, and the entry count is
// minimized by merging entries that end up sharing a value.
func (m *AttributeMap) Replace(target ProfileSet, value string) {
	next := make([]attrEntry, 0, len(m.entries)+1)
	for _, e := range m.entries {
		overlap := e.Profiles.Intersect(target)
		if overlap.IsEmpty() {
			next = append(next, e)
			continue
		}
		remainder := e.Profiles.Minus(target)
		if !remainder.IsEmpty() {
			next = append(next, attrEntry{Profiles: remainder, Value: e.Value})
		}
	}
	if !target.IsEmpty() {
		next = append(next, attrEntry{Profiles: target.Clone(), Value: value})
	}
	m.entries = next
	m.normalize()
}

// normalize merges entries sharing an equal value, so that after this
// call no two entries in m share a value.
func (m *AttributeMap) normalize() {
	var order []string
	merged := make(map[string]ProfileSet)
	for _, e := range m.entries {
		if existing, ok := merged[e.Value]; ok {
			merged[e.Value] = existing.Union(e.Profiles)
		} else {
			merged[e.Value] = e.Profiles
			order = append(order, e.Value)
		}
	}

	next := make([]attrEntry, 0, len(order))
	for _, v := range order {
		if merged[v].IsEmpty() {
			continue
		}
		next = append(next, attrEntry{Profiles: merged[v], Value: v})
	}
	m.entries = next
}
