package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/threatflux/cot/internal/ovfpkg"
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
    </VirtualHardwareSection>
  </VirtualSystem>
</Envelope>`

func writeFixturePackage(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vm.ovf"), []byte(fixtureOVF), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "disk1.vmdk"), make([]byte, 1024), 0o644))
	return dir
}

// resetFlags clears every persistent/global flag variable for a
// subcommand test, with flagForce set to true, and restores all of them
// to their zero values when the test ends, so subcommand tests don't
// leak state through the shared package-level rootCmd between runs.
func resetFlags(t *testing.T) {
	t.Helper()
	flagConfig, flagForce, flagQuiet, flagVerbose, flagDebug, flagOutput = "", true, false, false, false, ""
	t.Cleanup(func() {
		flagConfig, flagForce, flagQuiet, flagVerbose, flagDebug, flagOutput = "", false, false, false, false, ""
	})
}

// captureStdout runs fn and returns whatever it wrote to os.Stdout.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	orig := os.Stdout
	os.Stdout = w
	runErr := fn()
	w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String(), runErr
}

func TestParseAddress(t *testing.T) {
	bus, unit, err := parseAddress("0:1")
	require.NoError(t, err)
	require.Equal(t, 0, bus)
	require.Equal(t, 1, unit)

	_, _, err = parseAddress("nope")
	require.Error(t, err)

	_, _, err = parseAddress("a:1")
	require.Error(t, err)
}

func TestParsePropertyEdit(t *testing.T) {
	cases := []struct {
		raw     string
		wantKey string
		wantVal string
		wantSet bool
	}{
		{"mgmt-ip=10.1.1.1", "mgmt-ip", "10.1.1.1", true},
		{"mgmt-ip=", "mgmt-ip", "", true},
		{"mgmt-ip", "mgmt-ip", "", false},
	}
	for _, c := range cases {
		got := parsePropertyEdit(c.raw)
		require.Equal(t, c.wantKey, got.Key)
		require.Equal(t, c.wantVal, got.Value)
		require.Equal(t, c.wantSet, got.ValueSet)
	}
}

func TestResolveOutput(t *testing.T) {
	flagOutput = ""
	path, form := resolveOutput("/pkg/in.ova", ovfpkg.FormTAR)
	require.Equal(t, "/pkg/in.ova", path)
	require.Equal(t, ovfpkg.FormTAR, form)

	flagOutput = "/tmp/out.ova"
	path, form = resolveOutput("/pkg/in", ovfpkg.FormDirectory)
	require.Equal(t, "/tmp/out.ova", path)
	require.Equal(t, ovfpkg.FormTAR, form)

	flagOutput = "/tmp/outdir"
	path, form = resolveOutput("/pkg/in.ova", ovfpkg.FormTAR)
	require.Equal(t, "/tmp/outdir", path)
	require.Equal(t, ovfpkg.FormDirectory, form)
	flagOutput = ""
}

func TestFormName(t *testing.T) {
	require.Equal(t, "directory", formName(ovfpkg.FormDirectory))
	require.Equal(t, "OVA", formName(ovfpkg.FormTAR))
}

func TestTargetLocator(t *testing.T) {
	deployHost, deployUsername, deployPassword = "esxi.example.com", "", ""
	require.Equal(t, "vi://esxi.example.com", targetLocator())

	deployUsername, deployPassword = "root", "secret"
	require.Equal(t, "vi://root:secret@esxi.example.com", targetLocator())
	deployHost, deployUsername, deployPassword = "", "", ""
}

func TestInfoCommand_ReportsManifestOK(t *testing.T) {
	resetFlags(t)
	dir := writeFixturePackage(t)

	rootCmd.SetArgs([]string{"info", dir})
	out, err := captureStdout(t, rootCmd.Execute)
	require.NoError(t, err)
	require.Contains(t, out, "Product: CSR1000V")
	require.Contains(t, out, "Manifest:")
}

func TestEditProductCommand_WritesNewOutput(t *testing.T) {
	resetFlags(t)
	dir := writeFixturePackage(t)
	outDir := filepath.Join(t.TempDir(), "out")
	flagOutput = outDir

	rootCmd.SetArgs([]string{"edit-product", dir, "--version", "17.3"})
	require.NoError(t, rootCmd.Execute())

	_, err := os.Stat(filepath.Join(outDir, "vm.ovf"))
	require.NoError(t, err)
	flagOutput = ""
}

func TestEditProductCommand_InPlaceOverwritesInput(t *testing.T) {
	resetFlags(t)
	dir := writeFixturePackage(t)

	rootCmd.SetArgs([]string{"edit-product", dir, "--version", "17.3"})
	require.NoError(t, rootCmd.Execute())

	raw, err := os.ReadFile(filepath.Join(dir, "vm.ovf"))
	require.NoError(t, err)
	require.Contains(t, string(raw), "17.3")

	_, err = os.Stat(filepath.Join(dir, "disk1.vmdk"))
	require.NoError(t, err, "in-place write must not lose sibling members")
}

func TestEditPropertiesCommand_RejectsUnknownKey(t *testing.T) {
	resetFlags(t)
	dir := writeFixturePackage(t)

	rootCmd.SetArgs([]string{"edit-properties", dir, "-p", "does-not-exist=1"})
	require.Error(t, rootCmd.Execute())
}

func TestRemoveFileCommand_NotFoundErrors(t *testing.T) {
	resetFlags(t)
	dir := writeFixturePackage(t)

	rootCmd.SetArgs([]string{"remove-file", "no-such-file.vmdk", dir})
	require.Error(t, rootCmd.Execute())
}

func TestRemoveFileCommand_ByFileIDAlone(t *testing.T) {
	resetFlags(t)
	dir := writeFixturePackage(t)
	outDir := filepath.Join(t.TempDir(), "out")
	flagOutput = outDir

	rootCmd.SetArgs([]string{"remove-file", "--file-id", "file1", dir})
	require.NoError(t, rootCmd.Execute())

	raw, err := os.ReadFile(filepath.Join(outDir, "vm.ovf"))
	require.NoError(t, err)
	require.NotContains(t, string(raw), "disk1.vmdk")
	flagOutput = ""
}
