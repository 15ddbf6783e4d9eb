package hnf

import (
	"encoding/binary"

	"github.com/helios-forge/hnfconv/errs"
)

// BlockEntry is one 32-byte block-table entry. BlockType mirrors
// BlockID: the table's "slot id/type equality" invariant (spec.md
// §6.2) is satisfied by construction since the writer never assigns
// a type independent of the slot it describes.
type BlockEntry struct {
	BlockID     uint32
	BlockType   uint32
	Offset      uint64
	Size        uint64
	ContentHash uint64
}

// Empty reports whether this entry describes an unused slot.
func (e BlockEntry) Empty() bool {
	return e.Offset == 0 && e.Size == 0 && e.ContentHash == 0
}

// BlockTable is the fixed 16-entry table following the header.
type BlockTable [NumSlots]BlockEntry

// NewBlockTable returns a table with BlockID/BlockType pre-filled to
// each slot's index and everything else zero.
func NewBlockTable() BlockTable {
	var t BlockTable
	for i := range t {
		t[i] = BlockEntry{BlockID: uint32(i), BlockType: uint32(i)}
	}

	return t
}

// Bytes serializes the table as BlockTableSize little-endian bytes.
func (t BlockTable) Bytes() []byte {
	b := make([]byte, BlockTableSize)
	t.PutBytes(b)

	return b
}

// PutBytes serializes t into the first BlockTableSize bytes of b.
func (t BlockTable) PutBytes(b []byte) {
	for i, e := range t {
		off := i * BlockTableEntrySize
		binary.LittleEndian.PutUint32(b[off:off+4], e.BlockID)
		binary.LittleEndian.PutUint32(b[off+4:off+8], e.BlockType)
		binary.LittleEndian.PutUint64(b[off+8:off+16], e.Offset)
		binary.LittleEndian.PutUint64(b[off+16:off+24], e.Size)
		binary.LittleEndian.PutUint64(b[off+24:off+32], e.ContentHash)
	}
}

// ParseBlockTable decodes the 512-byte block table from b.
func ParseBlockTable(b []byte) (BlockTable, error) {
	if len(b) != BlockTableSize {
		return BlockTable{}, errs.ErrBlockTableShort
	}

	var t BlockTable
	for i := range t {
		off := i * BlockTableEntrySize
		t[i] = BlockEntry{
			BlockID:     binary.LittleEndian.Uint32(b[off : off+4]),
			BlockType:   binary.LittleEndian.Uint32(b[off+4 : off+8]),
			Offset:      binary.LittleEndian.Uint64(b[off+8 : off+16]),
			Size:        binary.LittleEndian.Uint64(b[off+16 : off+24]),
			ContentHash: binary.LittleEndian.Uint64(b[off+24 : off+32]),
		}
		if t[i].BlockID != uint32(i) {
			return BlockTable{}, errs.ErrSlotIDMismatch
		}
	}

	return t, nil
}

// FeatureFlags derives the header feature-flag bitmap from which
// slots in t are non-empty, per spec.md §4.2.
func (t BlockTable) FeatureFlags() uint32 {
	var flags uint32
	for i, e := range t {
		if e.Empty() {
			continue
		}
		if bit, ok := featureBit(Slot(i)); ok {
			flags |= 1 << bit
		}
	}

	if flags&((1<<multimodalSlotBitLen)-1) != 0 {
		flags |= 1 << bitMultimodal
	}

	return flags
}
