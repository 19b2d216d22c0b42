package editops

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/threatflux/cot/internal/config"
	"github.com/threatflux/cot/internal/hardware"
	"github.com/threatflux/cot/internal/helpers"
	"github.com/threatflux/cot/internal/ovfpkg"
	"github.com/threatflux/cot/internal/resources"
	"github.com/threatflux/cot/internal/session"
	"github.com/threatflux/cot/pkg/logger"
	"github.com/threatflux/cot/pkg/utils/exec"
)

const fixtureOVF = `<?xml version="1.0" encoding="UTF-8"?>
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
  <VirtualSystem ovf:id="vm">
    <Info>A virtual machine</Info>
    <Name>router1</Name>
    <ProductSection ovf:class="com.cisco.csr1000v">
      <Info/>
      <Product>CSR1000V</Product>
      <Vendor>Cisco</Vendor>
      <Property ovf:key="mgmt-ipv4-addr" ovf:type="string" ovf:value="10.1.1.100/24" ovf:qualifiers="MaxLen(18)"/>
    </ProductSection>
    <VirtualHardwareSection>
      <Info>Virtual hardware</Info>
      <Item>
        <rasd:InstanceID>1</rasd:InstanceID>
        <rasd:ResourceType>3</rasd:ResourceType>
        <rasd:VirtualQuantity>2</rasd:VirtualQuantity>
      </Item>
      <Item>
        <rasd:InstanceID>2</rasd:InstanceID>
        <rasd:ResourceType>4</rasd:ResourceType>
        <rasd:VirtualQuantity>4096</rasd:VirtualQuantity>
      </Item>
      <Item>
        <rasd:InstanceID>3</rasd:InstanceID>
        <rasd:ResourceType>6</rasd:ResourceType>
        <rasd:ElementName>SCSI Controller</rasd:ElementName>
      </Item>
      <Item>
        <rasd:InstanceID>4</rasd:InstanceID>
        <rasd:ResourceType>17</rasd:ResourceType>
        <rasd:Parent>3</rasd:Parent>
        <rasd:AddressOnParent>0</rasd:AddressOnParent>
        <rasd:HostResource>ovf:/disk/vmdisk1</rasd:HostResource>
      </Item>
    </VirtualHardwareSection>
  </VirtualSystem>
</Envelope>`

func newTestContext(t *testing.T) (*Context, string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "vm.ovf"), []byte(fixtureOVF), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "disk1.vmdk"), make([]byte, 1024), 0o644); err != nil {
		t.Fatal(err)
	}

	sess, err := session.New(config.Default(), logger.NewNoopLogger(), session.WithAutoConfirm(true))
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	t.Cleanup(func() { sess.Close() })

	ctx, err := Load(sess, dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return ctx, dir
}

func TestEditProperties_UpdatesValueAndValidatesQualifier(t *testing.T) {
	ctx, _ := newTestContext(t)
	err := ctx.EditProperties([]PropertyEdit{{Key: "mgmt-ipv4-addr", Value: "10.1.1.101/24", ValueSet: true}})
	if err != nil {
		t.Fatalf("EditProperties: %v", err)
	}
	p, _ := ctx.Properties.Get("mgmt-ipv4-addr")
	if p.Value != "10.1.1.101/24" {
		t.Fatalf("unexpected value %q", p.Value)
	}
}

func TestEditProperties_RejectsQualifierViolation(t *testing.T) {
	ctx, _ := newTestContext(t)
	err := ctx.EditProperties([]PropertyEdit{{Key: "mgmt-ipv4-addr", Value: "this-value-is-far-too-long-for-maxlen18", ValueSet: true}})
	if err == nil {
		t.Fatalf("expected MaxLen qualifier violation")
	}
}

func TestEditProperties_UnknownKeyErrors(t *testing.T) {
	ctx, _ := newTestContext(t)
	if err := ctx.EditProperties([]PropertyEdit{{Key: "nope", Value: "x", ValueSet: true}}); err == nil {
		t.Fatalf("expected not-found error")
	}
}

func TestEditProduct_MergesNonEmptyFields(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.EditProduct(ProductEdit{Version: "17.3"})
	if ctx.Product.Version != "17.3" || ctx.Product.Product != "CSR1000V" {
		t.Fatalf("unexpected product info: %+v", ctx.Product)
	}
}

func TestEditHardware_CPUAndMemory(t *testing.T) {
	ctx, _ := newTestContext(t)
	cpus, mem := 1, 8192
	if err := ctx.EditHardware(HardwareEdit{CPUs: &cpus, MemoryMB: &mem}); err != nil {
		t.Fatalf("EditHardware: %v", err)
	}
	cpu, _ := ctx.Hardware.Get(1)
	profile, _ := ctx.Hardware.Universe.Any()
	v, _ := cpu.Get("VirtualQuantity", profile)
	if v != "1" {
		t.Fatalf("expected VirtualQuantity=1, got %q", v)
	}
}

func TestEditHardware_AddingFirstNICCreatesDefaultNetwork(t *testing.T) {
	ctx, _ := newTestContext(t)
	n := 1
	if err := ctx.EditHardware(HardwareEdit{NICs: &n}); err != nil {
		t.Fatalf("EditHardware: %v", err)
	}
	if _, ok := ctx.Networks.Get("VM Network"); !ok {
		t.Fatalf("expected default network to be materialized")
	}
}

func TestEditHardware_NICsExtendDiscernibleNetworkSequence(t *testing.T) {
	ctx, _ := newTestContext(t)
	if err := ctx.Networks.Remove("VM Network"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := ctx.Networks.Add(resources.Network{Name: "GigabitEthernet1"}); err != nil {
		t.Fatalf("seed network: %v", err)
	}
	if err := ctx.Networks.Add(resources.Network{Name: "GigabitEthernet2"}); err != nil {
		t.Fatalf("seed network: %v", err)
	}

	n := 2
	if err := ctx.EditHardware(HardwareEdit{NICs: &n}); err != nil {
		t.Fatalf("EditHardware: %v", err)
	}
	if _, ok := ctx.Networks.Get("GigabitEthernet3"); !ok {
		t.Fatalf("expected the sequence to extend with GigabitEthernet3")
	}
	if _, ok := ctx.Networks.Get("GigabitEthernet4"); !ok {
		t.Fatalf("expected the sequence to extend with GigabitEthernet4")
	}
}

func TestEditHardware_NICsWithoutDiscernibleSequenceFallBackToFirstNetwork(t *testing.T) {
	ctx, _ := newTestContext(t)
	n := 2
	if err := ctx.EditHardware(HardwareEdit{NICs: &n}); err != nil {
		t.Fatalf("EditHardware: %v", err)
	}
	nics := ctx.Hardware.ByResourceType(hardware.ResourceTypeEthernetAdapter)
	if len(nics) != 2 {
		t.Fatalf("expected 2 nics, got %d", len(nics))
	}
	profile, _ := ctx.Hardware.Universe.Any()
	for _, nic := range nics {
		if v, ok := nic.Get("Connection", profile); !ok || v != "VM Network" {
			t.Fatalf("expected every NIC to fall back to VM Network, got %q ok=%v", v, ok)
		}
	}
}

func TestEditHardware_NICNetworksRemovesUnusedNetworks(t *testing.T) {
	ctx, _ := newTestContext(t)
	if err := ctx.Networks.Add(resources.Network{Name: "unused-net"}); err != nil {
		t.Fatalf("seed network: %v", err)
	}
	n := 1
	if err := ctx.EditHardware(HardwareEdit{NICs: &n}); err != nil {
		t.Fatalf("EditHardware: %v", err)
	}

	if err := ctx.EditHardware(HardwareEdit{NICNetworks: []string{"VM Network"}}); err != nil {
		t.Fatalf("EditHardware: %v", err)
	}
	if _, ok := ctx.Networks.Get("unused-net"); ok {
		t.Fatalf("expected unused network to be removed")
	}
	if _, ok := ctx.Networks.Get("VM Network"); !ok {
		t.Fatalf("expected referenced network to survive")
	}
}

func TestRemoveFile_ConvertsDriveToEmptyPlaceholder(t *testing.T) {
	ctx, _ := newTestContext(t)
	if err := ctx.RemoveFile("", "disk1.vmdk"); err != nil {
		t.Fatalf("RemoveFile: %v", err)
	}
	if _, ok := ctx.Disks.Get("vmdisk1"); ok {
		t.Fatalf("expected disk entry to be removed")
	}
	drive, ok := ctx.Hardware.Get(4)
	if !ok {
		t.Fatalf("expected disk drive item to survive")
	}
	if _, ok := drive.Attributes["HostResource"]; ok {
		t.Fatalf("expected HostResource to be cleared")
	}
}

func TestRemoveFile_NotFoundErrors(t *testing.T) {
	ctx, _ := newTestContext(t)
	if err := ctx.RemoveFile("", "README.txt"); err == nil {
		t.Fatalf("expected not-found error")
	}
}

func TestRemoveFile_ByFileIDAlone(t *testing.T) {
	ctx, _ := newTestContext(t)
	if err := ctx.RemoveFile("file1", ""); err != nil {
		t.Fatalf("RemoveFile: %v", err)
	}
	if _, ok := ctx.Files.Get("file1"); ok {
		t.Fatalf("expected file1 to be removed")
	}
}

func TestRemoveFile_MismatchedIDAndHrefErrors(t *testing.T) {
	ctx, _ := newTestContext(t)
	if err := ctx.RemoveFile("file1", "README.txt"); err == nil {
		t.Fatalf("expected mismatched file id/href to be rejected")
	}
}

func TestAddDisk_AttachesNewDiskDriveAndStagesFile(t *testing.T) {
	orig := exec.ExecuteCommand
	defer func() { exec.ExecuteCommand = orig }()
	exec.ExecuteCommand = func(ctx context.Context, name string, args []string, opts exec.CommandOptions) ([]byte, error) {
		return []byte(`{"virtual-size": 2147483648, "format": "vmdk"}`), nil
	}

	ctx, dir := newTestContext(t)
	newDiskPath := filepath.Join(dir, "new.vmdk")
	if err := os.WriteFile(newDiskPath, make([]byte, 256), 0o644); err != nil {
		t.Fatal(err)
	}

	reg := helpers.NewRegistry(config.Default().Helpers)
	staged := make(map[string]string)
	req := AddDiskRequest{HostPath: newDiskPath, ControllerType: "scsi", Bus: 0, Unit: 1}
	if err := ctx.AddDisk(req, reg, staged); err != nil {
		t.Fatalf("AddDisk: %v", err)
	}

	found := false
	for _, li := range ctx.Hardware.ByResourceType(17) {
		profile, _ := ctx.Hardware.Universe.Any()
		if parent, _ := li.Get("Parent", profile); parent == "3" {
			if addr, _ := li.Get("AddressOnParent", profile); addr == "1" {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected a new disk drive at controller 3 address 1")
	}
	if len(staged) != 1 {
		t.Fatalf("expected one staged file, got %d", len(staged))
	}
}

func TestContext_WriteOutputDirectoryForm(t *testing.T) {
	ctx, _ := newTestContext(t)
	outDir := filepath.Join(t.TempDir(), "out")
	if err := ctx.WriteOutput(outDir, ovfpkg.FormDirectory, map[string]string{}); err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "vm.ovf")); err != nil {
		t.Fatalf("expected descriptor written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "vm.mf")); err != nil {
		t.Fatalf("expected manifest written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "disk1.vmdk")); err != nil {
		t.Fatalf("expected member copied: %v", err)
	}
}
