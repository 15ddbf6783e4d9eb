package htf

import (
	"github.com/helios-forge/hnfconv/errs"
	"github.com/helios-forge/hnfconv/internal/xhash"
)

// DomainSpec is one input domain to Build. Payload is opaque to this
// layer; the Has* flags and VocabSize describe it for the domain-table
// entry without this package inspecting the bytes, per spec.md §4.3.
type DomainSpec struct {
	Type          DomainType
	IsPrimary     bool
	Payload       []byte
	VocabSize     uint32
	HasVocab      bool
	HasMerges     bool
	HasCodebook   bool
	SharedSpecial bool
}

func (s DomainSpec) flags() uint8 {
	var f uint8
	if s.HasVocab {
		f |= flagHasVocab
	}
	if s.HasMerges {
		f |= flagHasMerges
	}
	if s.HasCodebook {
		f |= flagHasCodebook
	}
	if s.IsPrimary {
		f |= flagIsPrimary
	}
	if s.SharedSpecial {
		f |= flagSharedSpecial
	}

	return f
}

func validateDomains(domains []DomainSpec) error {
	n := len(domains)
	if n < 1 {
		return errs.ErrTooFewDomains
	}
	if n > MaxDomains {
		return errs.ErrTooManyDomains
	}

	primaries := 0
	for _, d := range domains {
		if !d.Type.valid() {
			return errs.ErrUnknownDomainName
		}
		if d.IsPrimary {
			primaries++
		}
	}

	if primaries == 0 {
		return errs.ErrNoPrimaryDomain
	}
	if primaries > 1 {
		return errs.ErrMultiplePrimary
	}
	if n == 1 && (domains[0].Type != DomainText || !domains[0].IsPrimary) {
		return errs.ErrSingleDomainNotText
	}

	return nil
}

func padTo(buf []byte, align int) []byte {
	rem := len(buf) % align
	if rem == 0 {
		return buf
	}

	return append(buf, make([]byte, align-rem)...)
}

// Build packages domains into a single self-framed HTF blob: header,
// domain table, 16-byte-aligned payloads in input order, and a
// 32-byte trailing pad, with the whole-blob content hash filled in,
// per spec.md §4.3.
func Build(domains []DomainSpec) ([]byte, error) {
	if err := validateDomains(domains); err != nil {
		return nil, err
	}

	n := len(domains)
	buf := make([]byte, HeaderSize+n*DomainEntrySize)
	buf = padTo(buf, DataAlignment)

	entries := make([]DomainEntry, n)
	for i, d := range domains {
		buf = padTo(buf, DataAlignment)
		offset := uint64(len(buf))
		buf = append(buf, d.Payload...)

		entries[i] = DomainEntry{
			Type:       d.Type,
			Flags:      d.flags(),
			VocabSize:  d.VocabSize,
			DataOffset: offset,
			DataSize:   uint64(len(d.Payload)),
			NameHash:   xhash.Sum64String(d.Type.canonicalName()),
		}
	}

	buf = padTo(buf, BlobAlignment)

	var headerFlags uint16
	for _, e := range entries {
		if e.HasCodebook() {
			headerFlags |= headerFlagHasCodebook
		}
		if e.HasMerges() {
			headerFlags |= headerFlagHasMerges
		}
	}

	header := Header{
		Magic:       MagicV13,
		Version:     Version,
		HeaderFlags: headerFlags,
		DomainCount: uint8(n),
		TotalSize:   uint64(len(buf)),
	}
	header.PutBytes(buf[0:HeaderSize])

	for i, e := range entries {
		off := HeaderSize + i*DomainEntrySize
		e.PutBytes(buf[off : off+DomainEntrySize])
	}

	hash := contentHash(buf)
	header.ContentHash = hash
	header.PutBytes(buf[0:HeaderSize])

	return buf, nil
}

// contentHash computes the whole-blob hash per spec.md §6.3's strict
// composition: the 24-byte header prefix, then eight zero bytes
// standing in for the hash slot, then everything from byte 32 on.
func contentHash(blob []byte) uint64 {
	scratch := make([]byte, len(blob))
	copy(scratch, blob)
	for i := 24; i < 32; i++ {
		scratch[i] = 0
	}

	return xhash.Sum64(scratch)
}

// VerifyContentHash recomputes the content hash over blob and reports
// whether it matches the value stored in the header, per spec.md §8
// property 9.
func VerifyContentHash(blob []byte) (bool, error) {
	if len(blob) < HeaderSize {
		return false, errs.ErrShortBundleHeader
	}

	h, err := ParseHeader(blob[:HeaderSize])
	if err != nil {
		return false, err
	}

	return contentHash(blob) == h.ContentHash, nil
}
