package platform

// unknownProductClass is the dispatch key for products with no
// registered entry; it resolves to a permissive default.
const unknownProductClass = "Unknown"

var registry = map[string]Platform{
	"com.cisco.csr1000v": &basePlatform{
		productClass: "com.cisco.csr1000v",
		nicSubType:   "E1000",
		bounds: Bounds{
			AllowedCPUs: []int{1, 2, 4, 8},
			MinRAMMB:    2560,
			MaxRAMMB:    16384,
			MaxNICs:     10,
			MaxSerial:   2,
		},
		medium:    HardDisk,
		bootstrap: "iosxe_config.txt",
	},
	"com.cisco.csr1000v.vrouter": &basePlatform{
		productClass: "com.cisco.csr1000v.vrouter",
		nicSubType:   "VMXNET3",
		bounds: Bounds{
			AllowedCPUs: []int{1, 2, 4, 8},
			MinRAMMB:    4096,
			MaxRAMMB:    16384,
			MaxNICs:     26,
			MaxSerial:   2,
		},
		medium:    HardDisk,
		bootstrap: "iosxe_config.txt",
	},
	unknownProductClass: &basePlatform{
		productClass: unknownProductClass,
		nicSubType:   "E1000",
		bounds:       Bounds{},
		medium:       CDROM,
		bootstrap:    "config.iso",
	},
}

// Lookup returns the registered Platform for productClass, or the
// Unknown permissive default if none is registered.
func Lookup(productClass string) Platform {
	if p, ok := registry[productClass]; ok {
		return p
	}
	return registry[unknownProductClass]
}

// Register adds or replaces a platform's registry entry. Exposed so a
// client collaborator (outside this package's scope per the
// specification) can extend the registry without forking it.
func Register(p Platform) {
	registry[p.ProductClass()] = p
}
