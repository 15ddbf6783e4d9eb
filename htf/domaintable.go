package htf

import (
	"encoding/binary"

	"github.com/helios-forge/hnfconv/errs"
)

// MaxDomains is the largest number of domains one bundle may carry.
const MaxDomains = 8

// DomainEntrySize is the byte size of one domain-table entry.
const DomainEntrySize = 32

// DataAlignment is the byte boundary every domain payload's
// data_offset is rounded up to.
const DataAlignment = 16

// BlobAlignment is the byte boundary the whole blob's trailing pad
// rounds total size up to.
const BlobAlignment = 32

// DomainEntry is one 32-byte domain-table row.
type DomainEntry struct {
	Type       DomainType
	Flags      uint8
	VocabSize  uint32
	DataOffset uint64
	DataSize   uint64
	NameHash   uint64
}

// IsPrimary reports whether this entry carries the primary flag.
func (e DomainEntry) IsPrimary() bool { return e.Flags&flagIsPrimary != 0 }

// HasVocab reports whether this entry's payload carries a vocabulary block.
func (e DomainEntry) HasVocab() bool { return e.Flags&flagHasVocab != 0 }

// HasMerges reports whether this entry's payload carries a merges block.
func (e DomainEntry) HasMerges() bool { return e.Flags&flagHasMerges != 0 }

// HasCodebook reports whether this entry's payload carries a codebook.
func (e DomainEntry) HasCodebook() bool { return e.Flags&flagHasCodebook != 0 }

// PutBytes serializes e into the first DomainEntrySize bytes of b.
func (e DomainEntry) PutBytes(b []byte) {
	b[0] = uint8(e.Type)
	b[1] = e.Flags
	b[2] = 0
	b[3] = 0
	binary.LittleEndian.PutUint32(b[4:8], e.VocabSize)
	binary.LittleEndian.PutUint64(b[8:16], e.DataOffset)
	binary.LittleEndian.PutUint64(b[16:24], e.DataSize)
	binary.LittleEndian.PutUint64(b[24:32], e.NameHash)
}

// ParseDomainEntry decodes one 32-byte domain-table row from b.
func ParseDomainEntry(b []byte) (DomainEntry, error) {
	if len(b) != DomainEntrySize {
		return DomainEntry{}, errs.ErrShortBundleHeader
	}

	if b[2] != 0 || b[3] != 0 {
		return DomainEntry{}, errs.ErrReservedNonZero
	}

	e := DomainEntry{
		Type:       DomainType(b[0]),
		Flags:      b[1],
		VocabSize:  binary.LittleEndian.Uint32(b[4:8]),
		DataOffset: binary.LittleEndian.Uint64(b[8:16]),
		DataSize:   binary.LittleEndian.Uint64(b[16:24]),
		NameHash:   binary.LittleEndian.Uint64(b[24:32]),
	}

	return e, nil
}
