package ovfpkg

import (
	"archive/tar"
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/threatflux/cot/internal/descriptor"
)

func writeTestDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "vm.ovf"), []byte("<Envelope/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "disk1.vmdk"), []byte("disk-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func writeTestTAR(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vm.ova")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	tw := tar.NewWriter(f)
	entries := []struct {
		name string
		data []byte
	}{
		{"vm.ovf", []byte("<Envelope/>")},
		{"vm.mf", []byte("SHA1(vm.ovf)= " + mustDigest(t, AlgoSHA1, []byte("<Envelope/>")) + "\nSHA1(disk1.vmdk)= " + mustDigest(t, AlgoSHA1, []byte("disk-bytes")) + "\n")},
		{"disk1.vmdk", []byte("disk-bytes")},
	}
	for _, e := range entries {
		hdr := &tar.Header{Name: e.name, Mode: 0o644, Size: int64(len(e.data)), ModTime: time.Unix(0, 0)}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write(e.data); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func mustDigest(t *testing.T, algo ManifestAlgo, data []byte) string {
	t.Helper()
	d, err := Digest(algo, data)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestOpen_DirectoryForm(t *testing.T) {
	dir := writeTestDir(t)
	p, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if p.Form != FormDirectory {
		t.Fatalf("expected FormDirectory, got %v", p.Form)
	}
	if p.DescriptorMember != "vm.ovf" {
		t.Fatalf("unexpected descriptor member %q", p.DescriptorMember)
	}
}

func TestOpen_TARForm(t *testing.T) {
	path := writeTestTAR(t)
	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if p.Form != FormTAR {
		t.Fatalf("expected FormTAR, got %v", p.Form)
	}
	data, err := p.ReadMember("disk1.vmdk")
	if err != nil {
		t.Fatalf("ReadMember: %v", err)
	}
	if string(data) != "disk-bytes" {
		t.Fatalf("unexpected member contents %q", data)
	}
}

func TestVerifyManifest_UntouchedArchiveHasNoMismatches(t *testing.T) {
	path := writeTestTAR(t)
	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	mismatches, err := p.VerifyManifest()
	if err != nil {
		t.Fatalf("VerifyManifest: %v", err)
	}
	if len(mismatches) != 0 {
		t.Fatalf("expected no mismatches on an untouched archive, got %+v", mismatches)
	}
}

func TestWrite_InPlaceOverwritesInput(t *testing.T) {
	dir := writeTestDir(t)
	p, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	members := []MemberSource{{Name: "disk1.vmdk", Path: filepath.Join(dir, "disk1.vmdk")}}
	if err := Write(p, dir, FormDirectory, "vm.ovf", []byte("<Envelope edited=\"1\"/>"), members, AlgoSHA1, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "vm.ovf"))
	if err != nil {
		t.Fatalf("read descriptor: %v", err)
	}
	if string(got) != `<Envelope edited="1"/>` {
		t.Fatalf("expected descriptor to be overwritten in place, got %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "disk1.vmdk")); err != nil {
		t.Fatalf("expected disk member to survive in-place write: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "vm.mf")); err != nil {
		t.Fatalf("expected manifest to be written in place: %v", err)
	}
}

func TestWrite_InPlaceOverwritesInputTAR(t *testing.T) {
	path := writeTestTAR(t)
	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	raw, err := p.ReadMember("disk1.vmdk")
	if err != nil {
		t.Fatalf("ReadMember: %v", err)
	}
	scratch := filepath.Join(t.TempDir(), "disk1.vmdk")
	if err := os.WriteFile(scratch, raw, 0o644); err != nil {
		t.Fatalf("stage member: %v", err)
	}
	members := []MemberSource{{Name: "disk1.vmdk", Path: scratch}}

	if err := Write(p, path, FormTAR, "vm.ovf", []byte("<Envelope edited=\"1\"/>"), members, AlgoSHA1, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	desc, err := out.ReadMember("vm.ovf")
	if err != nil {
		t.Fatalf("ReadMember after rewrite: %v", err)
	}
	if string(desc) != `<Envelope edited="1"/>` {
		t.Fatalf("expected rewritten descriptor, got %q", desc)
	}
}

func TestWrite_DirectoryFormProducesManifest(t *testing.T) {
	dir := writeTestDir(t)
	p, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	outDir := filepath.Join(t.TempDir(), "out")
	members := []MemberSource{{Name: "disk1.vmdk", Path: filepath.Join(dir, "disk1.vmdk")}}
	if err := Write(p, outDir, FormDirectory, "vm.ovf", []byte("<Envelope/>"), members, AlgoSHA1, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	mf, err := os.ReadFile(filepath.Join(outDir, "vm.mf"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if !bytes.Contains(mf, []byte("SHA1(vm.ovf)")) {
		t.Fatalf("expected manifest to cover descriptor, got:\n%s", mf)
	}
	if !bytes.Contains(mf, []byte("SHA1(disk1.vmdk)")) {
		t.Fatalf("expected manifest to cover disk member, got:\n%s", mf)
	}
}

func TestWrite_TARFormOrdersDescriptorAndManifestFirst(t *testing.T) {
	dir := writeTestDir(t)
	p, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	outPath := filepath.Join(t.TempDir(), "out.ova")
	members := []MemberSource{{Name: "disk1.vmdk", Path: filepath.Join(dir, "disk1.vmdk")}}
	if err := Write(p, outPath, FormTAR, "vm.ovf", []byte("<Envelope/>"), members, AlgoSHA1, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out, err := Open(outPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if out.Members[0] != "vm.ovf" || out.Members[1] != "vm.mf" || out.Members[2] != "disk1.vmdk" {
		t.Fatalf("unexpected member order: %v", out.Members)
	}
}

func TestAlgoForVersion(t *testing.T) {
	if AlgoForVersion(descriptor.Version1x) != AlgoSHA1 {
		t.Fatalf("expected SHA1 for OVF 1.x")
	}
	if AlgoForVersion(descriptor.Version2x) != AlgoSHA256 {
		t.Fatalf("expected SHA256 for OVF 2.x")
	}
}
