// Package ovfpkg abstracts over the two physical forms an OVF package
// can take — a directory holding a bare descriptor plus sibling files,
// or a single uncompressed OVA TAR archive. Tar handling uses the
// standard library's archive/tar (ustar); no third-party library
// available to this project implements TAR, so this is the one place
// this module falls back to stdlib for a domain concern (see DESIGN.md).
package ovfpkg

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/threatflux/cot/internal/errors"
)

// Form is the on-disk shape of a package.
type Form int

const (
	FormUnknown Form = iota
	FormDirectory
	FormTAR
)

// member describes one entry located during Open: its name and, for
// TAR form, its byte offset/size within the archive.
type member struct {
	name   string
	offset int64
	size   int64
}

// Package is an opened OVF/OVA container: enough information to stream
// any member's bytes and to know the canonical member order.
type Package struct {
	Path             string
	Form             Form
	Members          []string // in on-disk order
	DescriptorMember string
	ManifestMember   string // "" if the package carries no manifest

	dir      string            // Directory form: sibling directory
	offsets  map[string]member // TAR form: name -> location
}

// Open determines a package's form and locates its descriptor member.
func Open(path string) (*Package, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, errors.WrapWithKind(err, errors.KindInvalidInput, "open package %q", path)
	}

	if fi.IsDir() || strings.HasSuffix(strings.ToLower(path), ".ovf") {
		return openDirectory(path, fi)
	}
	return openTAR(path)
}

func openDirectory(path string, fi os.FileInfo) (*Package, error) {
	p := &Package{Path: path, Form: FormDirectory}
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, errors.WrapWithKind(err, errors.KindEnvironmental, "list package directory %q", path)
		}
		p.dir = path
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			p.Members = append(p.Members, e.Name())
			if strings.HasSuffix(strings.ToLower(e.Name()), ".ovf") && p.DescriptorMember == "" {
				p.DescriptorMember = e.Name()
			}
			if strings.HasSuffix(strings.ToLower(e.Name()), ".mf") && p.ManifestMember == "" {
				p.ManifestMember = e.Name()
			}
		}
	} else {
		p.dir = filepath.Dir(path)
		p.DescriptorMember = filepath.Base(path)
		p.Members = []string{p.DescriptorMember}
	}

	if p.DescriptorMember == "" {
		return nil, errors.WrapWithKind(errors.ErrMissingSection, errors.KindInvalidInput, "no .ovf descriptor found under %q", path)
	}
	return p, nil
}

func openTAR(path string) (*Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapWithKind(err, errors.KindInvalidInput, "open package %q", path)
	}
	defer f.Close()

	p := &Package{Path: path, Form: FormTAR, offsets: make(map[string]member)}
	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapWithKind(err, errors.KindInvalidInput, "read TAR entries of %q", path)
		}
		offset, err := f.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, errors.WrapWithKind(err, errors.KindEnvironmental, "seek in %q", path)
		}
		p.Members = append(p.Members, hdr.Name)
		p.offsets[hdr.Name] = member{name: hdr.Name, offset: offset, size: hdr.Size}

		if strings.HasSuffix(strings.ToLower(hdr.Name), ".ovf") && p.DescriptorMember == "" {
			p.DescriptorMember = hdr.Name
		}
		if strings.HasSuffix(strings.ToLower(hdr.Name), ".mf") && p.ManifestMember == "" {
			p.ManifestMember = hdr.Name
		}
	}

	if p.DescriptorMember == "" {
		return nil, errors.WrapWithKind(errors.ErrMalformedTAR, errors.KindInvalidInput, "no .ovf entry found in TAR %q", path)
	}
	return p, nil
}

// ReadMember returns the full contents of the named member.
func (p *Package) ReadMember(name string) ([]byte, error) {
	switch p.Form {
	case FormDirectory:
		data, err := os.ReadFile(filepath.Join(p.dir, name))
		if err != nil {
			return nil, errors.WrapWithKind(err, errors.KindNotFound, "read member %q", name)
		}
		return data, nil
	case FormTAR:
		m, ok := p.offsets[name]
		if !ok {
			return nil, errors.WrapWithKind(errors.ErrFileNotFound, errors.KindNotFound, "member %q not present in %q", name, p.Path)
		}
		f, err := os.Open(p.Path)
		if err != nil {
			return nil, errors.WrapWithKind(err, errors.KindEnvironmental, "open %q", p.Path)
		}
		defer f.Close()
		if _, err := f.Seek(m.offset, io.SeekStart); err != nil {
			return nil, errors.WrapWithKind(err, errors.KindEnvironmental, "seek to member %q", name)
		}
		data := make([]byte, m.size)
		if _, err := io.ReadFull(f, data); err != nil {
			return nil, errors.WrapWithKind(err, errors.KindEnvironmental, "read member %q", name)
		}
		return data, nil
	default:
		return nil, errors.WrapWithKind(errors.ErrMalformedTAR, errors.KindInvalidInput, "package form not recognized")
	}
}

// DescriptorPath returns the filesystem path read_member would use for
// the descriptor in Directory form; only meaningful for FormDirectory.
func (p *Package) DescriptorPath() string {
	if p.Form == FormDirectory {
		return filepath.Join(p.dir, p.DescriptorMember)
	}
	return p.Path
}

// ReferencedMembers returns every member besides the descriptor and
// manifest, in on-disk order — the files a caller typically needs to
// stream through unchanged on write.
func (p *Package) ReferencedMembers() []string {
	out := make([]string, 0, len(p.Members))
	for _, name := range p.Members {
		if name == p.DescriptorMember || name == p.ManifestMember {
			continue
		}
		out = append(out, name)
	}
	return out
}
