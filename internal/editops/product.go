package editops

import (
	"github.com/threatflux/cot/internal/errors"
	"github.com/threatflux/cot/internal/resources"
)

// ProductEdit carries only the ProductInfo fields a caller wants to
// change; empty strings leave the existing value untouched (descriptor
// SaveProductInfo already skips blank fields).
type ProductEdit struct {
	Product      string
	Vendor       string
	Version      string
	FullVersion  string
	ProductClass string
}

// EditProduct merges e into the context's product info.
func (c *Context) EditProduct(e ProductEdit) {
	defer c.Session.Metrics.RecordEditApplied("edit-product", true)
	if e.Product != "" {
		c.Product.Product = e.Product
	}
	if e.Vendor != "" {
		c.Product.Vendor = e.Vendor
	}
	if e.Version != "" {
		c.Product.Version = e.Version
	}
	if e.FullVersion != "" {
		c.Product.FullVersion = e.FullVersion
	}
	if e.ProductClass != "" {
		c.Product.ProductClass = e.ProductClass
	}
}

// PropertyEdit is one `-p key[=value]` argument: ValueSet distinguishes
// `-p key=` (explicit empty string) from `-p key` (clear the value).
type PropertyEdit struct {
	Key      string
	Value    string
	ValueSet bool
}

// EditProperties applies edits to the context's ProductSection
// properties, validating each new value against the property's
// existing qualifiers before committing any of them — an all-or-
// nothing batch, so a mid-batch qualifier violation never leaves a
// partially-applied edit.
func (c *Context) EditProperties(edits []PropertyEdit) (err error) {
	defer func() { c.Session.Metrics.RecordEditApplied("edit-properties", err == nil) }()

	type pending struct {
		prop resources.Property
	}
	var batch []pending

	for _, e := range edits {
		prop, ok := c.Properties.Get(e.Key)
		if !ok {
			return errors.WrapWithKind(errors.ErrPropertyNotFound, errors.KindNotFound, "property %q", e.Key)
		}

		next := *prop
		next.Value = e.Value
		next.ValueSet = e.ValueSet

		if next.ValueSet && next.Qualifiers != "" {
			qualifiers, err := resources.ParseQualifiers(next.Qualifiers)
			if err != nil {
				return err
			}
			if err := resources.ValidateValue(next.Value, qualifiers); err != nil {
				return err
			}
		}

		batch = append(batch, pending{prop: next})
	}

	for _, p := range batch {
		c.Properties.Put(p.prop)
	}
	return nil
}
