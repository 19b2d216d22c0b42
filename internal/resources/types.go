// Package resources models the descriptor's flat resource collections:
// Files, Disks, Networks, configuration profiles, and ProductSection
// properties, along with property qualifier validation.
package resources

// File is a References/File entry: a package member plus its identity
// and, once written, its checksum.
type File struct {
	ID           string
	Href         string
	Size         int64
	ChecksumAlgo string // "SHA1" or "SHA256", empty if not yet computed
	Checksum     string // lowercase hex, empty if not yet computed
}

// Disk is a DiskSection/Disk entry.
type Disk struct {
	ID                string
	CapacityBytes     uint64
	FileRef           string // File.ID, empty if the disk has no backing file yet
	FormatURI         string
	PopulatedSizeBytes *uint64
}

// Network is a NetworkSection/Network entry.
type Network struct {
	Name        string
	Description string
}

// Profile is a DeploymentOptionSection/Configuration entry.
type Profile struct {
	ID          string
	Label       string
	Description string
	Default     bool
}

// PropertyType enumerates ProductSection property value types.
type PropertyType string

const (
	PropertyTypeString  PropertyType = "string"
	PropertyTypeBoolean PropertyType = "boolean"
	PropertyTypeInt     PropertyType = "int"
)

// Property is a ProductSection/Property entry.
type Property struct {
	Key              string
	Type             PropertyType
	Value            string
	ValueSet         bool // distinguishes "" (explicit empty) from "unset"
	Label            string
	Description      string
	Qualifiers       string // raw qualifier expression, e.g. "MaxLen(20)"
	UserConfigurable bool
	Password         bool
}

// ProductInfo holds the primary ProductSection's descriptive fields.
type ProductInfo struct {
	Product      string
	Vendor       string
	Version      string // short-version
	FullVersion  string
	ProductClass string // product-class, drives platform.Lookup
}
