package descriptor

import (
	"github.com/beevik/etree"

	"github.com/threatflux/cot/internal/errors"
)

// Descriptor is the parsed OVF XML document plus a pointer to its
// Envelope root and VirtualSystem element. Typed accessors
// (LoadFiles/SaveFiles, LoadDisks/SaveDisks, ...) translate between
// this live etree tree and the plain Go structs in internal/resources
// and internal/hardware. A section is only rewritten in the tree when
// its Save* counterpart is called, so an unedited Parse→Serialize
// round-trip reproduces the input byte-for-byte.
type Descriptor struct {
	doc           *etree.Document
	Envelope      *etree.Element
	VirtualSystem *etree.Element
	Version       Version
}

// Parse reads an OVF descriptor from data.
func Parse(data []byte) (*Descriptor, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.WrapWithKind(err, errors.KindInvalidInput, "parse ovf descriptor xml")
	}

	root := doc.Root()
	if root == nil || root.Tag != "Envelope" {
		return nil, errors.WrapWithKind(errors.ErrMalformedXML, errors.KindInvalidInput, "descriptor has no Envelope root")
	}

	vs := root.SelectElement("VirtualSystem")
	if vs == nil {
		return nil, errors.WrapWithKind(errors.ErrMissingSection, errors.KindInvalidInput, "descriptor has no VirtualSystem element")
	}

	return &Descriptor{
		doc:           doc,
		Envelope:      root,
		VirtualSystem: vs,
		Version:       detectVersion(root.NamespaceURI()),
	}, nil
}

// Serialize re-renders the current document state to bytes. Sections
// never loaded through a Save* call keep their original bytes
// verbatim; no global re-indent is performed, since that would disturb
// whitespace in untouched subtrees.
func (d *Descriptor) Serialize() ([]byte, error) {
	out, err := d.doc.WriteToBytes()
	if err != nil {
		return nil, errors.WrapWithKind(err, errors.KindInvalidInput, "serialize ovf descriptor")
	}
	return out, nil
}

// section returns the named direct child of Envelope, creating and
// appending it if absent. New sections are appended at the end of the
// Envelope's children; the schema tolerates this, and every section
// present in the original input keeps its original position since this
// path is only taken for a section the input never had.
func (d *Descriptor) section(tag string) *etree.Element {
	if e := d.Envelope.SelectElement(tag); e != nil {
		return e
	}
	e := etree.NewElement(tag)
	d.Envelope.AddChild(e)
	return e
}

// clearChildren removes every direct child element named tag from
// parent, used by Save* functions that fully rebuild a section.
func clearChildren(parent *etree.Element, tag string) {
	for _, child := range parent.SelectElements(tag) {
		parent.RemoveChild(child)
	}
}
