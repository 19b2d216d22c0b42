// Package hardware implements the factorization engine: grouping flat
// VirtualHardwareSection Item elements into logical items whose
// attribute values are factored across configuration profiles.
package hardware

import "sort"

// ProfileSet is a set of configuration profile IDs. A ProfileSet equal
// to the full profile universe is emitted without a `configuration`
// attribute — the "ALL" case in the specification's vocabulary. This
// package represents that case as an ordinary set that happens to equal
// the universe, rather than a distinct sentinel value, which keeps the
// set algebra in value_replace_wildcards (§4.3.3) uniform.
type ProfileSet map[string]struct{}

// NewProfileSet builds a ProfileSet from the given profile IDs.
func NewProfileSet(ids ...string) ProfileSet {
	s := make(ProfileSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is a member of s.
func (s ProfileSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// IsEmpty reports whether s has no members.
func (s ProfileSet) IsEmpty() bool {
	return len(s) == 0
}

// Clone returns an independent copy of s.
func (s ProfileSet) Clone() ProfileSet {
	out := make(ProfileSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Union returns the set of profiles in s or o.
func (s ProfileSet) Union(o ProfileSet) ProfileSet {
	out := make(ProfileSet, len(s)+len(o))
	for id := range s {
		out[id] = struct{}{}
	}
	for id := range o {
		out[id] = struct{}{}
	}
	return out
}

// Intersect returns the set of profiles in both s and o.
func (s ProfileSet) Intersect(o ProfileSet) ProfileSet {
	out := make(ProfileSet)
	small, big := s, o
	if len(o) < len(s) {
		small, big = o, s
	}
	for id := range small {
		if _, ok := big[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// Minus returns the set of profiles in s but not in o.
func (s ProfileSet) Minus(o ProfileSet) ProfileSet {
	out := make(ProfileSet)
	for id := range s {
		if _, ok := o[id]; !ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// Equals reports whether s and o contain exactly the same profiles.
func (s ProfileSet) Equals(o ProfileSet) bool {
	if len(s) != len(o) {
		return false
	}
	for id := range s {
		if _, ok := o[id]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns s's members in deterministic ascending order, for
// stable serialization and test assertions.
func (s ProfileSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Any returns one arbitrary (but deterministic, given equal input)
// member of s, used to pick a representative profile when reading an
// attribute's value for an entire shard.
func (s ProfileSet) Any() (string, bool) {
	sorted := s.Sorted()
	if len(sorted) == 0 {
		return "", false
	}
	return sorted[0], true
}
