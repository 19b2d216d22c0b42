package ovfpkg

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"hash"
	"strings"

	"github.com/threatflux/cot/internal/descriptor"
	"github.com/threatflux/cot/internal/errors"
)

// ManifestAlgo is the digest algorithm a .mf manifest uses. OVF 1.x
// packages use SHA-1; OVF 2.x packages use SHA-256.
type ManifestAlgo string

const (
	AlgoSHA1   ManifestAlgo = "SHA1"
	AlgoSHA256 ManifestAlgo = "SHA256"
)

// AlgoForVersion picks the manifest digest algorithm conventionally
// paired with an OVF descriptor version.
func AlgoForVersion(v descriptor.Version) ManifestAlgo {
	if v == descriptor.Version2x {
		return AlgoSHA256
	}
	return AlgoSHA1
}

func newHash(algo ManifestAlgo) (hash.Hash, error) {
	switch algo {
	case AlgoSHA1:
		return sha1.New(), nil
	case AlgoSHA256:
		return sha256.New(), nil
	default:
		return nil, errors.WrapWithKind(errors.ErrMalformedXML, errors.KindInvalidInput, "unsupported manifest algorithm %q", algo)
	}
}

// Digest computes algo's digest of data, formatted as lowercase hex.
func Digest(algo ManifestAlgo, data []byte) (string, error) {
	h, err := newHash(algo)
	if err != nil {
		return "", err
	}
	h.Write(data)
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// ManifestEntry is one parsed "ALGO(name) = hex" line.
type ManifestEntry struct {
	Algo   ManifestAlgo
	Name   string
	Digest string
}

// ParseManifest parses a .mf file's contents.
func ParseManifest(data []byte) ([]ManifestEntry, error) {
	var entries []ManifestEntry
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		open := strings.IndexByte(line, '(')
		close := strings.IndexByte(line, ')')
		eq := strings.Index(line, "=")
		if open <= 0 || close <= open || eq <= close {
			return nil, errors.WrapWithKind(errors.ErrMalformedXML, errors.KindInvalidInput, "malformed manifest line %q", line)
		}
		entries = append(entries, ManifestEntry{
			Algo:   ManifestAlgo(strings.TrimSpace(line[:open])),
			Name:   strings.TrimSpace(line[open+1 : close]),
			Digest: strings.TrimSpace(line[eq+1:]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.WrapWithKind(err, errors.KindInvalidInput, "scan manifest")
	}
	return entries, nil
}

// RenderManifest formats entries back into .mf line format, one entry
// per line in the order given.
func RenderManifest(entries []ManifestEntry) []byte {
	var buf bytes.Buffer
	for _, e := range entries {
		fmt.Fprintf(&buf, "%s(%s)= %s\n", e.Algo, e.Name, e.Digest)
	}
	return buf.Bytes()
}

// Mismatch describes one manifest entry whose recorded digest does not
// match the member's actual contents, or whose member is altogether
// missing. Returned as a structured record per member rather than a
// single yes/no, per SPEC_FULL.md's richer VerifyManifest contract.
type Mismatch struct {
	Name     string
	Expected string
	Actual   string
	Missing  bool
}

// VerifyManifest reads the package's manifest member, if any, and
// checks every entry's digest against the member's actual bytes.
// Returns (nil, nil) when the package carries no manifest.
func (p *Package) VerifyManifest() ([]Mismatch, error) {
	if p.ManifestMember == "" {
		return nil, nil
	}
	data, err := p.ReadMember(p.ManifestMember)
	if err != nil {
		return nil, err
	}
	entries, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}

	var mismatches []Mismatch
	for _, e := range entries {
		member, err := p.ReadMember(e.Name)
		if err != nil {
			mismatches = append(mismatches, Mismatch{Name: e.Name, Expected: e.Digest, Missing: true})
			continue
		}
		got, err := Digest(e.Algo, member)
		if err != nil {
			return nil, err
		}
		if !strings.EqualFold(got, e.Digest) {
			mismatches = append(mismatches, Mismatch{Name: e.Name, Expected: e.Digest, Actual: got})
		}
	}
	return mismatches, nil
}
