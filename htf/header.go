package htf

import (
	"encoding/binary"

	"github.com/helios-forge/hnfconv/errs"
)

// HeaderSize is the fixed byte size of the HTF bundle header.
const HeaderSize = 32

// MagicV13 is the v1.3 bundle magic this package produces.
var MagicV13 = [4]byte{'H', 'T', 'F', '3'}

// MagicV12 is the legacy v1.2 bundle magic, recognized on parse only.
var MagicV12 = [4]byte{'H', 'T', 'F', '2'}

// Version is the bundle format version this package writes.
const Version uint16 = 13

// Header is the 32-byte HTF bundle header.
type Header struct {
	Magic       [4]byte
	Version     uint16
	HeaderFlags uint16
	DomainCount uint8
	Reserved    [7]byte
	TotalSize   uint64
	ContentHash uint64
}

// Bytes serializes h as 32 little-endian bytes.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	h.PutBytes(b)

	return b
}

// PutBytes serializes h into the first HeaderSize bytes of b.
func (h Header) PutBytes(b []byte) {
	copy(b[0:4], h.Magic[:])
	binary.LittleEndian.PutUint16(b[4:6], h.Version)
	binary.LittleEndian.PutUint16(b[6:8], h.HeaderFlags)
	b[8] = h.DomainCount
	copy(b[9:16], h.Reserved[:])
	binary.LittleEndian.PutUint64(b[16:24], h.TotalSize)
	binary.LittleEndian.PutUint64(b[24:32], h.ContentHash)
}

// ParseHeader decodes the 32-byte HTF header and validates the magic,
// domain count and reserved-zero invariants.
func ParseHeader(b []byte) (Header, error) {
	if len(b) != HeaderSize {
		return Header{}, errs.ErrShortBundleHeader
	}

	var h Header
	copy(h.Magic[:], b[0:4])
	if h.Magic != MagicV13 && h.Magic != MagicV12 {
		return Header{}, errs.ErrBadBundleMagic
	}

	h.Version = binary.LittleEndian.Uint16(b[4:6])
	h.HeaderFlags = binary.LittleEndian.Uint16(b[6:8])
	h.DomainCount = b[8]
	copy(h.Reserved[:], b[9:16])
	h.TotalSize = binary.LittleEndian.Uint64(b[16:24])
	h.ContentHash = binary.LittleEndian.Uint64(b[24:32])

	if h.DomainCount < 1 {
		return Header{}, errs.ErrTooFewDomains
	}
	if h.DomainCount > MaxDomains {
		return Header{}, errs.ErrTooManyDomains
	}
	for _, r := range h.Reserved {
		if r != 0 {
			return Header{}, errs.ErrReservedNonZero
		}
	}

	return h, nil
}
