package hardware

// FlatItem is the wire-level shape of one VirtualHardwareSection Item
// element: the unit Ingest consumes and Emit produces. The descriptor
// package translates between this and live etree elements.
type FlatItem struct {
	InstanceID    int
	ResourceType  ResourceType
	Configuration []string // profile IDs from the `configuration` attribute; empty means unscoped
	Attributes    map[string]string
}
