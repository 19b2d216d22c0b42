package descriptor

import (
	"strings"
	"testing"
)

const sampleOVF = `<?xml version="1.0" encoding="UTF-8"?>
<Envelope xmlns="http://schemas.dmtf.org/ovf/envelope/1" xmlns:ovf="http://schemas.dmtf.org/ovf/envelope/1" xmlns:rasd="http://schemas.dmtf.org/wbem/wscim/1/cim-schema/2/CIM_ResourceAllocationSettingData">
  <References>
    <File ovf:id="file1" ovf:href="disk1.vmdk" ovf:size="1024"/>
  </References>
  <DiskSection>
    <Info>Virtual disks</Info>
    <Disk ovf:diskId="vmdisk1" ovf:fileRef="file1" ovf:capacity="8" ovf:capacityAllocationUnits="byte * 2^30" ovf:format="http://vmware.com/streamOptimized"/>
  </DiskSection>
  <NetworkSection>
    <Info>Logical networks</Info>
    <Network ovf:name="VM Network"><Description>The network</Description></Network>
  </NetworkSection>
  <DeploymentOptionSection>
    <Configuration ovf:id="1CPU-4GB" ovf:default="true"><Label>1 vCPU 4GB</Label></Configuration>
    <Configuration ovf:id="2CPU-4GB"><Label>2 vCPU 4GB</Label></Configuration>
  </DeploymentOptionSection>
  <VirtualSystem ovf:id="vm">
    <Info>A virtual machine</Info>
    <Name>router1</Name>
    <ProductSection ovf:class="com.cisco.csr1000v">
      <Info/>
      <Product>CSR1000V</Product>
      <Vendor>Cisco</Vendor>
      <Property ovf:key="mgmt-ipv4-addr" ovf:type="string" ovf:value="10.1.1.100/24"/>
    </ProductSection>
    <VirtualHardwareSection>
      <Info>Virtual hardware</Info>
      <Item ovf:configuration="1CPU-4GB">
        <rasd:InstanceID>1</rasd:InstanceID>
        <rasd:ResourceType>3</rasd:ResourceType>
        <rasd:VirtualQuantity>1</rasd:VirtualQuantity>
      </Item>
      <Item ovf:configuration="2CPU-4GB">
        <rasd:InstanceID>1</rasd:InstanceID>
        <rasd:ResourceType>3</rasd:ResourceType>
        <rasd:VirtualQuantity>2</rasd:VirtualQuantity>
      </Item>
      <Item>
        <rasd:InstanceID>2</rasd:InstanceID>
        <rasd:ResourceType>4</rasd:ResourceType>
        <rasd:VirtualQuantity>4096</rasd:VirtualQuantity>
        <rasd:AllocationUnits>byte * 2^20</rasd:AllocationUnits>
      </Item>
    </VirtualHardwareSection>
  </VirtualSystem>
</Envelope>`

func TestParse_DetectsVersionAndSections(t *testing.T) {
	d, err := Parse([]byte(sampleOVF))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.Version != Version1x {
		t.Fatalf("expected Version1x, got %v", d.Version)
	}
}

func TestParse_MissingEnvelopeIsInvalid(t *testing.T) {
	if _, err := Parse([]byte("<NotAnEnvelope/>")); err == nil {
		t.Fatalf("expected error for non-Envelope root")
	}
}

func TestSerialize_UnmodifiedRoundTrips(t *testing.T) {
	d, err := Parse([]byte(sampleOVF))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := d.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if !strings.Contains(string(out), `ovf:href="disk1.vmdk"`) {
		t.Fatalf("expected serialized output to retain original attributes, got:\n%s", out)
	}
}

func TestLoadFiles_ParsesFileEntry(t *testing.T) {
	d, err := Parse([]byte(sampleOVF))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fs := d.LoadFiles()
	f, ok := fs.Get("file1")
	if !ok || f.Href != "disk1.vmdk" || f.Size != 1024 {
		t.Fatalf("unexpected file entry: %+v ok=%v", f, ok)
	}
}

func TestLoadDisks_ParsesCapacityUnits(t *testing.T) {
	d, err := Parse([]byte(sampleOVF))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	disks := d.LoadDisks()
	disk, ok := disks.Get("vmdisk1")
	if !ok {
		t.Fatalf("expected vmdisk1 to be found")
	}
	want := uint64(8) << 30
	if disk.CapacityBytes != want {
		t.Fatalf("expected %d bytes, got %d", want, disk.CapacityBytes)
	}
}

func TestLoadProductInfo(t *testing.T) {
	d, err := Parse([]byte(sampleOVF))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	info := d.LoadProductInfo()
	if info.ProductClass != "com.cisco.csr1000v" || info.Product != "CSR1000V" || info.Vendor != "Cisco" {
		t.Fatalf("unexpected product info: %+v", info)
	}
}

func TestLoadProperties(t *testing.T) {
	d, err := Parse([]byte(sampleOVF))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	props := d.LoadProperties()
	p, ok := props.Get("mgmt-ipv4-addr")
	if !ok || p.Value != "10.1.1.100/24" || !p.ValueSet {
		t.Fatalf("unexpected property: %+v ok=%v", p, ok)
	}
}

func TestHardwareModel_IngestsCPUFactoredAcrossProfiles(t *testing.T) {
	d, err := Parse([]byte(sampleOVF))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	model, err := d.HardwareModel()
	if err != nil {
		t.Fatalf("HardwareModel: %v", err)
	}
	cpu, ok := model.Get(1)
	if !ok {
		t.Fatalf("expected instance 1 (CPU) to exist")
	}
	if v, _ := cpu.Get("VirtualQuantity", "1CPU-4GB"); v != "1" {
		t.Fatalf("expected 1CPU-4GB profile to have VirtualQuantity=1, got %q", v)
	}
	if v, _ := cpu.Get("VirtualQuantity", "2CPU-4GB"); v != "2" {
		t.Fatalf("expected 2CPU-4GB profile to have VirtualQuantity=2, got %q", v)
	}
}

func TestHardwareModel_SaveRoundTripsThroughXML(t *testing.T) {
	d, err := Parse([]byte(sampleOVF))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	model, err := d.HardwareModel()
	if err != nil {
		t.Fatalf("HardwareModel: %v", err)
	}
	if err := model.SetMemoryMB(model.Universe, 8192); err != nil {
		t.Fatalf("SetMemoryMB: %v", err)
	}
	d.SaveHardwareModel(model)

	reloaded, err := d.HardwareModel()
	if err != nil {
		t.Fatalf("HardwareModel after save: %v", err)
	}
	mem, ok := reloaded.Get(2)
	if !ok {
		t.Fatalf("expected memory item instance 2 to survive the round trip")
	}
	if v, _ := mem.Get("VirtualQuantity", ""); v != "8192" {
		if v2, _ := mem.Get("VirtualQuantity", "1CPU-4GB"); v2 != "8192" {
			t.Fatalf("expected VirtualQuantity=8192 after edit, got %q / %q", v, v2)
		}
	}
}
