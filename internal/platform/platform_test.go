package platform

import "testing"

func TestLookup_KnownProductClass(t *testing.T) {
	p := Lookup("com.cisco.csr1000v")
	if p.ProductClass() != "com.cisco.csr1000v" {
		t.Fatalf("unexpected product class %q", p.ProductClass())
	}
	if p.BootstrapMedium() != HardDisk {
		t.Fatalf("expected HardDisk medium, got %v", p.BootstrapMedium())
	}
}

func TestLookup_UnknownFallsBackToPermissiveDefault(t *testing.T) {
	p := Lookup("com.example.doesnotexist")
	if p.ProductClass() != unknownProductClass {
		t.Fatalf("expected Unknown fallback, got %q", p.ProductClass())
	}

	ok, warning := p.Validate(Request{CPUs: 999, RAMMB: 999999, NICs: 999, Serial: 999})
	if !ok {
		t.Fatalf("expected permissive default to allow any request, got warning %q", warning)
	}
}

func TestValidate_CSR1000V(t *testing.T) {
	p := Lookup("com.cisco.csr1000v")

	if ok, warn := p.Validate(Request{CPUs: 2, RAMMB: 4096, NICs: 3, Serial: 1}); !ok {
		t.Fatalf("expected valid request to pass, got warning %q", warn)
	}

	if ok, warn := p.Validate(Request{CPUs: 3, RAMMB: 4096, NICs: 3, Serial: 1}); ok {
		t.Fatalf("expected invalid CPU count to fail, got ok with warning %q", warn)
	} else if warn == "" {
		t.Fatal("expected a non-empty warning message")
	}

	if ok, _ := p.Validate(Request{CPUs: 2, RAMMB: 1024, NICs: 3, Serial: 1}); ok {
		t.Fatal("expected RAM below minimum to fail")
	}

	if ok, _ := p.Validate(Request{CPUs: 2, RAMMB: 4096, NICs: 50, Serial: 1}); ok {
		t.Fatal("expected NIC count above maximum to fail")
	}
}

func TestRegister_OverridesEntry(t *testing.T) {
	custom := &basePlatform{
		productClass: "com.example.custom",
		nicSubType:   "VMXNET3",
		bounds:       Bounds{AllowedCPUs: []int{1}},
		medium:       CDROM,
		bootstrap:    "custom.iso",
	}
	Register(custom)
	defer delete(registry, "com.example.custom")

	got := Lookup("com.example.custom")
	if got.ProductClass() != "com.example.custom" {
		t.Fatalf("expected registered platform, got %q", got.ProductClass())
	}
}
