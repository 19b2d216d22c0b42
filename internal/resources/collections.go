package resources

import (
	"fmt"

	"github.com/threatflux/cot/internal/errors"
)

// FileSet is an order-preserving collection of Files keyed by ID.
type FileSet struct {
	order []string
	byID  map[string]*File
}

// NewFileSet returns an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{byID: make(map[string]*File)}
}

// Add inserts f. Returns ErrDuplicateFileID if force is false and an
// entry with the same ID already exists; with force true the existing
// entry is replaced in place (its position in emission order preserved).
func (s *FileSet) Add(f File, force bool) error {
	if _, exists := s.byID[f.ID]; exists {
		if !force {
			return errors.WrapWithKind(fmt.Errorf("file id %q: %w", f.ID, errors.ErrDuplicateFileID), errors.KindConflict, "add file")
		}
		s.byID[f.ID] = &f
		return nil
	}
	s.order = append(s.order, f.ID)
	s.byID[f.ID] = &f
	return nil
}

// Remove deletes the File with the given ID. Returns ErrFileNotFound if
// no such entry exists.
func (s *FileSet) Remove(id string) error {
	if _, ok := s.byID[id]; !ok {
		return errors.WrapWithKind(fmt.Errorf("file id %q: %w", id, errors.ErrFileNotFound), errors.KindNotFound, "remove file")
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the File with the given ID.
func (s *FileSet) Get(id string) (*File, bool) {
	f, ok := s.byID[id]
	return f, ok
}

// FindByHref returns the File whose Href matches href, if any.
func (s *FileSet) FindByHref(href string) (*File, bool) {
	for _, id := range s.order {
		if s.byID[id].Href == href {
			return s.byID[id], true
		}
	}
	return nil, false
}

// List returns Files in declaration order.
func (s *FileSet) List() []*File {
	out := make([]*File, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// DiskSet is an order-preserving collection of Disks keyed by ID.
type DiskSet struct {
	order []string
	byID  map[string]*Disk
}

// NewDiskSet returns an empty DiskSet.
func NewDiskSet() *DiskSet {
	return &DiskSet{byID: make(map[string]*Disk)}
}

// Add inserts d, erroring if its ID already exists.
func (s *DiskSet) Add(d Disk) error {
	if _, exists := s.byID[d.ID]; exists {
		return errors.WrapWithKind(fmt.Errorf("disk id %q", d.ID), errors.KindConflict, "add disk")
	}
	s.order = append(s.order, d.ID)
	s.byID[d.ID] = &d
	return nil
}

// Remove deletes the Disk with the given ID.
func (s *DiskSet) Remove(id string) error {
	if _, ok := s.byID[id]; !ok {
		return errors.WrapWithKind(fmt.Errorf("disk id %q", id), errors.KindNotFound, "remove disk")
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the Disk with the given ID.
func (s *DiskSet) Get(id string) (*Disk, bool) {
	d, ok := s.byID[id]
	return d, ok
}

// FindByFileRef returns the Disk referencing the given File ID, if any.
func (s *DiskSet) FindByFileRef(fileID string) (*Disk, bool) {
	for _, id := range s.order {
		if s.byID[id].FileRef == fileID {
			return s.byID[id], true
		}
	}
	return nil, false
}

// List returns Disks in declaration order.
func (s *DiskSet) List() []*Disk {
	out := make([]*Disk, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// NetworkSet is an order-preserving collection of Networks keyed by name.
type NetworkSet struct {
	order []string
	byName map[string]*Network
}

// NewNetworkSet returns an empty NetworkSet.
func NewNetworkSet() *NetworkSet {
	return &NetworkSet{byName: make(map[string]*Network)}
}

// Add inserts n, erroring if its name already exists.
func (s *NetworkSet) Add(n Network) error {
	if _, exists := s.byName[n.Name]; exists {
		return errors.WrapWithKind(fmt.Errorf("network %q", n.Name), errors.KindConflict, "add network")
	}
	s.order = append(s.order, n.Name)
	s.byName[n.Name] = &n
	return nil
}

// Remove deletes the Network with the given name.
func (s *NetworkSet) Remove(name string) error {
	if _, ok := s.byName[name]; !ok {
		return errors.WrapWithKind(fmt.Errorf("network %q", name), errors.KindNotFound, "remove network")
	}
	delete(s.byName, name)
	for i, existing := range s.order {
		if existing == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the Network with the given name.
func (s *NetworkSet) Get(name string) (*Network, bool) {
	n, ok := s.byName[name]
	return n, ok
}

// List returns Networks in declaration order.
func (s *NetworkSet) List() []*Network {
	out := make([]*Network, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byName[name])
	}
	return out
}

// ProfileSet is an order-preserving collection of configuration profiles.
type ProfileSet struct {
	order []string
	byID  map[string]*Profile
}

// NewProfileSet returns an empty ProfileSet.
func NewProfileSet() *ProfileSet {
	return &ProfileSet{byID: make(map[string]*Profile)}
}

// Add inserts p, erroring if its ID already exists or if p.Default is
// true while another profile is already marked default.
func (s *ProfileSet) Add(p Profile) error {
	if _, exists := s.byID[p.ID]; exists {
		return errors.WrapWithKind(fmt.Errorf("profile id %q", p.ID), errors.KindConflict, "add profile")
	}
	if p.Default {
		for _, existing := range s.byID {
			if existing.Default {
				return errors.WrapWithKind(fmt.Errorf("profile %q already default", existing.ID), errors.KindConflict, "add profile")
			}
		}
	}
	s.order = append(s.order, p.ID)
	s.byID[p.ID] = &p
	return nil
}

// Remove deletes the Profile with the given ID.
func (s *ProfileSet) Remove(id string) error {
	if _, ok := s.byID[id]; !ok {
		return errors.WrapWithKind(fmt.Errorf("profile id %q", id), errors.KindNotFound, "remove profile")
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the Profile with the given ID.
func (s *ProfileSet) Get(id string) (*Profile, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// IDs returns every profile ID in declaration order.
func (s *ProfileSet) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// List returns Profiles in declaration order.
func (s *ProfileSet) List() []*Profile {
	out := make([]*Profile, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// RetainOnly removes every profile except keepID, returning
// ErrProfileNotFound if keepID is not present. Used by the
// delete-all-other-profiles edit operation.
func (s *ProfileSet) RetainOnly(keepID string) error {
	if _, ok := s.byID[keepID]; !ok {
		return errors.WrapWithKind(fmt.Errorf("profile id %q: %w", keepID, errors.ErrProfileNotFound), errors.KindNotFound, "retain profile")
	}
	for _, id := range s.order {
		if id != keepID {
			delete(s.byID, id)
		}
	}
	s.order = []string{keepID}
	return nil
}

// PropertySet is an order-preserving collection of ProductSection
// properties keyed by Key.
type PropertySet struct {
	order []string
	byKey map[string]*Property
}

// NewPropertySet returns an empty PropertySet.
func NewPropertySet() *PropertySet {
	return &PropertySet{byKey: make(map[string]*Property)}
}

// Get returns the Property with the given key.
func (s *PropertySet) Get(key string) (*Property, bool) {
	p, ok := s.byKey[key]
	return p, ok
}

// Put inserts p if its key is new, or overwrites the existing entry in
// place (preserving declaration order) if it already exists.
func (s *PropertySet) Put(p Property) {
	if _, exists := s.byKey[p.Key]; !exists {
		s.order = append(s.order, p.Key)
	}
	s.byKey[p.Key] = &p
}

// List returns Properties in declaration order.
func (s *PropertySet) List() []*Property {
	out := make([]*Property, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.byKey[key])
	}
	return out
}
