package hnf

import (
	"encoding/binary"

	"github.com/helios-forge/hnfconv/errs"
)

// HeaderSize is the fixed byte size of the HNF file header.
const HeaderSize = 64

// BlockTableEntrySize is the byte size of one block-table entry.
const BlockTableEntrySize = 32

// BlockTableSize is the byte size of the full 16-entry block table.
const BlockTableSize = NumSlots * BlockTableEntrySize

// PayloadStart is the file offset where the first block payload may
// begin: immediately after the header and block table.
const PayloadStart = HeaderSize + BlockTableSize

// Alignment is the byte boundary every block payload start is rounded
// up to.
const Alignment = 32

// Magic is the 8-byte HNFv9 file signature.
var Magic = [8]byte{'H', 'N', 'F', 'v', '9', 0, 0, 0}

// VersionMajor and VersionMinor are the current format version,
// written by every file this package produces.
const (
	VersionMajor uint16 = 9
	VersionMinor uint16 = 1
)

// Header is the 64-byte prefix of an HNF file.
type Header struct {
	Magic            [8]byte
	VersionMajor     uint16
	VersionMinor     uint16
	FeatureFlags     uint32
	BlockCount       uint32
	HeaderSizeField  uint32
	BlockTableOffset uint32
	ManifestOffset   uint64
	ManifestSize     uint64
	TotalFileSize    uint64
	Checksum         uint32
	Reserved         [8]byte
}

// NewHeader returns a Header with the fixed structural fields
// populated and everything layout-dependent left zero, to be filled in
// at finalize time.
func NewHeader() Header {
	return Header{
		Magic:            Magic,
		VersionMajor:     VersionMajor,
		VersionMinor:     VersionMinor,
		BlockCount:       NumSlots,
		HeaderSizeField:  HeaderSize,
		BlockTableOffset: HeaderSize,
	}
}

// Bytes serializes h as the 64-byte little-endian header.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	h.PutBytes(b)

	return b
}

// PutBytes serializes h into the first HeaderSize bytes of b.
func (h Header) PutBytes(b []byte) {
	copy(b[0:8], h.Magic[:])
	binary.LittleEndian.PutUint16(b[8:10], h.VersionMajor)
	binary.LittleEndian.PutUint16(b[10:12], h.VersionMinor)
	binary.LittleEndian.PutUint32(b[12:16], h.FeatureFlags)
	binary.LittleEndian.PutUint32(b[16:20], h.BlockCount)
	binary.LittleEndian.PutUint32(b[20:24], h.HeaderSizeField)
	binary.LittleEndian.PutUint32(b[24:28], h.BlockTableOffset)
	binary.LittleEndian.PutUint64(b[28:36], h.ManifestOffset)
	binary.LittleEndian.PutUint64(b[36:44], h.ManifestSize)
	binary.LittleEndian.PutUint64(b[44:52], h.TotalFileSize)
	binary.LittleEndian.PutUint32(b[52:56], h.Checksum)
	copy(b[56:64], h.Reserved[:])
}

// ParseHeader decodes a 64-byte HNF header and validates the
// structural fields that must hold a fixed value for every v9.1 file.
func ParseHeader(b []byte) (Header, error) {
	if len(b) != HeaderSize {
		return Header{}, errs.ErrShortHeader
	}

	var h Header
	copy(h.Magic[:], b[0:8])
	if h.Magic != Magic {
		return Header{}, errs.ErrBadMagic
	}

	h.VersionMajor = binary.LittleEndian.Uint16(b[8:10])
	h.VersionMinor = binary.LittleEndian.Uint16(b[10:12])
	h.FeatureFlags = binary.LittleEndian.Uint32(b[12:16])
	h.BlockCount = binary.LittleEndian.Uint32(b[16:20])
	h.HeaderSizeField = binary.LittleEndian.Uint32(b[20:24])
	h.BlockTableOffset = binary.LittleEndian.Uint32(b[24:28])
	h.ManifestOffset = binary.LittleEndian.Uint64(b[28:36])
	h.ManifestSize = binary.LittleEndian.Uint64(b[36:44])
	h.TotalFileSize = binary.LittleEndian.Uint64(b[44:52])
	h.Checksum = binary.LittleEndian.Uint32(b[52:56])
	copy(h.Reserved[:], b[56:64])

	if h.BlockCount != NumSlots {
		return Header{}, errs.ErrBadBlockCount
	}
	if h.HeaderSizeField != HeaderSize {
		return Header{}, errs.ErrBadHeaderSize
	}
	if h.BlockTableOffset != HeaderSize {
		return Header{}, errs.ErrBadBlockTableOffset
	}

	return h, nil
}

// IsMultimodal reports whether the given feature-flag bitmap carries
// bit 13, which the writer sets iff any of the modality bits 0..3 is
// set (spec.md §4.2).
func IsMultimodal(flags uint32) bool {
	return flags&(1<<bitMultimodal) != 0
}
