package ovfpkg

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/threatflux/cot/internal/errors"
)

// MemberSource names one non-descriptor, non-manifest member to carry
// into a written package, and where its bytes come from on disk.
type MemberSource struct {
	Name string
	Path string
}

// Confirm is asked before a write proceeds despite a non-fatal warning
// (e.g. a disk space estimate the host could not verify). Returning
// false aborts the write with errors.ErrCancelled.
type Confirm func(warning string) bool

// alwaysConfirm treats every warning as accepted; used when the caller
// passes a nil Confirm (e.g. the --force CLI flag).
func alwaysConfirm(string) bool { return true }

// Write renders a package to targetPath in the requested form,
// computing a fresh manifest over descriptorBytes and members. When
// targetPath resolves to the same path this Package was opened from,
// every member and the descriptor/manifest are still routed through a
// sibling temp file in the destination directory and renamed into place
// (writeDirectory/writeTAR already write this way unconditionally), so
// an in-place edit replaces the input atomically instead of being
// rejected. It estimates free space before committing.
func Write(p *Package, targetPath string, form Form, descriptorName string, descriptorBytes []byte, members []MemberSource, algo ManifestAlgo, confirm Confirm) error {
	if confirm == nil {
		confirm = alwaysConfirm
	}

	total := int64(len(descriptorBytes))
	for _, m := range members {
		fi, err := os.Stat(m.Path)
		if err != nil {
			return errors.WrapWithKind(err, errors.KindInvalidInput, "stat member source %q", m.Path)
		}
		total += fi.Size()
	}
	if free, known := freeSpaceAt(filepath.Dir(targetPath)); known && free < uint64(total)*2 {
		// A 2x margin covers the temp file existing alongside the final
		// output during an atomic rename.
		if !confirm("estimated package size (" + strconv.FormatInt(total, 10) + " bytes) is close to or exceeds free space at the destination") {
			return errors.WrapWithKind(errors.ErrCancelled, errors.KindCancelled, "write cancelled: insufficient free space")
		}
	}

	manifest, err := buildManifest(algo, descriptorName, descriptorBytes, members)
	if err != nil {
		return err
	}

	switch form {
	case FormDirectory:
		return writeDirectory(targetPath, descriptorName, descriptorBytes, members, manifest)
	case FormTAR:
		return writeTAR(targetPath, descriptorName, descriptorBytes, members, manifest)
	default:
		return errors.WrapWithKind(errors.ErrMalformedXML, errors.KindInvalidInput, "unknown output form")
	}
}

func buildManifest(algo ManifestAlgo, descriptorName string, descriptorBytes []byte, members []MemberSource) ([]byte, error) {
	var entries []ManifestEntry
	dd, err := Digest(algo, descriptorBytes)
	if err != nil {
		return nil, err
	}
	entries = append(entries, ManifestEntry{Algo: algo, Name: descriptorName, Digest: dd})

	for _, m := range members {
		data, err := os.ReadFile(m.Path)
		if err != nil {
			return nil, errors.WrapWithKind(err, errors.KindEnvironmental, "read member %q for manifest", m.Path)
		}
		d, err := Digest(algo, data)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ManifestEntry{Algo: algo, Name: m.Name, Digest: d})
	}
	return RenderManifest(entries), nil
}

func manifestName(descriptorName string) string {
	ext := filepath.Ext(descriptorName)
	return descriptorName[:len(descriptorName)-len(ext)] + ".mf"
}

func writeDirectory(targetDir, descriptorName string, descriptorBytes []byte, members []MemberSource, manifest []byte) error {
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return errors.WrapWithKind(err, errors.KindEnvironmental, "create output directory %q", targetDir)
	}
	if err := atomicWriteFile(filepath.Join(targetDir, descriptorName), descriptorBytes); err != nil {
		return err
	}
	if err := atomicWriteFile(filepath.Join(targetDir, manifestName(descriptorName)), manifest); err != nil {
		return err
	}
	for _, m := range members {
		if err := copyFileAtomic(m.Path, filepath.Join(targetDir, m.Name)); err != nil {
			return err
		}
	}
	return nil
}

func atomicWriteFile(path string, data []byte) error {
	tmp := path + ".tmp-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.WrapWithKind(err, errors.KindEnvironmental, "write %q", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.WrapWithKind(err, errors.KindEnvironmental, "rename into place %q", path)
	}
	return nil
}

func copyFileAtomic(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.WrapWithKind(err, errors.KindEnvironmental, "open %q", src)
	}
	defer in.Close()

	tmp := dst + ".tmp-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	out, err := os.Create(tmp)
	if err != nil {
		return errors.WrapWithKind(err, errors.KindEnvironmental, "create %q", tmp)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return errors.WrapWithKind(err, errors.KindEnvironmental, "copy %q to %q", src, tmp)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return errors.WrapWithKind(err, errors.KindEnvironmental, "close %q", tmp)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return errors.WrapWithKind(err, errors.KindEnvironmental, "rename into place %q", dst)
	}
	return nil
}

// writeTAR streams a new OVA: descriptor first, manifest second, then
// every other member in caller-supplied order (the order editops
// derives from References), matching the conventional OVA layout most
// readers (including the reference ovftool) expect for streaming
// validation.
func writeTAR(targetPath, descriptorName string, descriptorBytes []byte, members []MemberSource, manifest []byte) error {
	dir := filepath.Dir(targetPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapWithKind(err, errors.KindEnvironmental, "create output directory %q", dir)
	}
	tmp := filepath.Join(dir, filepath.Base(targetPath)+".tmp-"+strconv.FormatInt(time.Now().UnixNano(), 36))
	f, err := os.Create(tmp)
	if err != nil {
		return errors.WrapWithKind(err, errors.KindEnvironmental, "create %q", tmp)
	}

	tw := tar.NewWriter(f)
	writeErr := func() error {
		if err := writeTAREntry(tw, descriptorName, descriptorBytes); err != nil {
			return err
		}
		if err := writeTAREntry(tw, manifestName(descriptorName), manifest); err != nil {
			return err
		}
		for _, m := range members {
			data, err := os.ReadFile(m.Path)
			if err != nil {
				return errors.WrapWithKind(err, errors.KindEnvironmental, "read member %q", m.Path)
			}
			if err := writeTAREntry(tw, m.Name, data); err != nil {
				return err
			}
		}
		return nil
	}()

	closeErr := tw.Close()
	syncErr := f.Sync()
	fcloseErr := f.Close()

	if writeErr != nil || closeErr != nil || syncErr != nil || fcloseErr != nil {
		os.Remove(tmp)
		for _, e := range []error{writeErr, closeErr, syncErr, fcloseErr} {
			if e != nil {
				return errors.WrapWithKind(e, errors.KindEnvironmental, "write OVA %q", targetPath)
			}
		}
	}

	if err := os.Rename(tmp, targetPath); err != nil {
		os.Remove(tmp)
		return errors.WrapWithKind(err, errors.KindEnvironmental, "rename into place %q", targetPath)
	}
	return nil
}

func writeTAREntry(tw *tar.Writer, name string, data []byte) error {
	hdr := &tar.Header{
		Name:    name,
		Mode:    0o644,
		Size:    int64(len(data)),
		ModTime: time.Unix(0, 0),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := tw.Write(data)
	return err
}
