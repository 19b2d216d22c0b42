package resources

import (
	"fmt"

	"github.com/threatflux/cot/internal/errors"
)

// SetProduct applies the edit-product operation: set product, vendor,
// short-version, full-version, and product-class on the primary
// ProductSection.
func SetProduct(info *ProductInfo, product, vendor, version, fullVersion, productClass string) {
	if product != "" {
		info.Product = product
	}
	if vendor != "" {
		info.Vendor = vendor
	}
	if version != "" {
		info.Version = version
	}
	if fullVersion != "" {
		info.FullVersion = fullVersion
	}
	if productClass != "" {
		info.ProductClass = productClass
	}
}

// EditProperty applies the edit-properties operation: find the matching
// Property by key; if absent, create it with the default type "string".
// value==nil means "no default" (ValueSet stays false if newly created);
// a non-nil value (including an explicit empty string) sets ValueSet
// true, matching the -p key= vs -p key distinction.
func EditProperty(set *PropertySet, key string, value *string, typ *PropertyType) error {
	existing, found := set.Get(key)

	p := Property{Key: key}
	if found {
		p = *existing
	} else {
		p.Type = PropertyTypeString
	}

	if typ != nil {
		p.Type = *typ
	}

	if value != nil {
		p.Value = *value
		p.ValueSet = true
	}

	if err := ValidateShape(p); err != nil {
		return err
	}

	if p.ValueSet && p.Qualifiers != "" {
		qualifiers, err := ParseQualifiers(p.Qualifiers)
		if err != nil {
			return err
		}
		if err := ValidateValue(p.Value, qualifiers); err != nil {
			return err
		}
	}

	set.Put(p)
	return nil
}

// ResolveFileTarget finds the single File that a remove-file invocation
// identifies: exactly one of fileID, filePath should be given (filePath
// is matched against each File's Href); if both are given they must
// refer to the same entry. Shared by RemoveFile and
// editops.Context.RemoveFile so the disambiguation rule has one
// implementation regardless of which hardware cleanup the caller then
// performs.
func ResolveFileTarget(files *FileSet, fileID, filePath string) (*File, error) {
	var byID, byPath *File
	if fileID != "" {
		byID, _ = files.Get(fileID)
	}
	if filePath != "" {
		byPath, _ = files.FindByHref(filePath)
	}

	switch {
	case fileID != "" && filePath != "":
		if byID == nil || byPath == nil || byID.ID != byPath.ID {
			return nil, errors.WrapWithKind(
				fmt.Errorf("file id %q and path %q do not refer to the same entry", fileID, filePath),
				errors.KindInvalidInput,
				"remove file",
			)
		}
		return byID, nil
	case fileID != "":
		if byID == nil {
			return nil, errors.WrapWithKind(fmt.Errorf("file id %q", fileID), errors.KindNotFound, "remove file")
		}
		return byID, nil
	case filePath != "":
		if byPath == nil {
			return nil, errors.WrapWithKind(fmt.Errorf("file path %q", filePath), errors.KindNotFound, "remove file")
		}
		return byPath, nil
	default:
		return nil, errors.WrapWithKind(fmt.Errorf("neither file id nor file path given"), errors.KindInvalidInput, "remove file")
	}
}

// RemoveFile applies the remove-file operation: resolves the target via
// ResolveFileTarget, then removes the File and any Disk referencing it.
func RemoveFile(files *FileSet, disks *DiskSet, fileID, filePath string) error {
	target, err := ResolveFileTarget(files, fileID, filePath)
	if err != nil {
		return err
	}

	if disk, ok := disks.FindByFileRef(target.ID); ok {
		_ = disks.Remove(disk.ID)
	}

	return files.Remove(target.ID)
}
