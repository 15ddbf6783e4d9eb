package hqs

import "github.com/helios-forge/hnfconv/errs"

// Format selects the bit width and packing of a super-block's payload.
type Format uint8

const (
	// HQ4K packs 256 4-bit indices into 128 bytes (two per byte).
	HQ4K Format = iota + 1
	// HQ5K packs 256 5-bit indices into 160 bytes (40-bit LSB-first words).
	HQ5K
)

const (
	// GroupSize is the number of source floats sharing one group descriptor.
	GroupSize = 8
	// GroupsPerBlock is the number of groups in one super-block (32*8=256).
	GroupsPerBlock = 32
	// BlockElements is the number of source floats covered by one super-block.
	BlockElements = GroupsPerBlock * GroupSize
	// HeaderSize is the byte size of the 32 group descriptors, shared by both formats.
	HeaderSize = GroupsPerBlock * groupDescriptorSize

	hq4kPayloadSize = BlockElements / 2 // 2 indices per byte at 4 bits each
	hq5kPayloadSize = (BlockElements / GroupSize) * 5 // 5 bytes per 8 indices at 5 bits each

	// HQ4KRecordSize is the total bytes of one HQ4K super-block record.
	HQ4KRecordSize = HeaderSize + hq4kPayloadSize
	// HQ5KRecordSize is the total bytes of one HQ5K super-block record.
	HQ5KRecordSize = HeaderSize + hq5kPayloadSize
)

// String renders the format's canonical name.
func (f Format) String() string {
	switch f {
	case HQ4K:
		return "HQ4K"
	case HQ5K:
		return "HQ5K"
	default:
		return "Unknown"
	}
}

// Bits returns the number of bits used per quantized element.
func (f Format) Bits() int {
	switch f {
	case HQ4K:
		return 4
	case HQ5K:
		return 5
	default:
		return 0
	}
}

// QMax returns 2^bits - 1, the maximum unsigned quantized index value.
func (f Format) QMax() int {
	return (1 << f.Bits()) - 1
}

// RecordSize returns the byte size of one super-block record for f.
func (f Format) RecordSize() int {
	switch f {
	case HQ4K:
		return HQ4KRecordSize
	case HQ5K:
		return HQ5KRecordSize
	default:
		return 0
	}
}

func (f Format) payloadSize() int {
	return f.RecordSize() - HeaderSize
}

func (f Format) valid() bool {
	return f == HQ4K || f == HQ5K
}

// SizeFor returns the exact byte length encode(data, f, _) produces for
// a source of count elements: ceil(count/256) * recordSize(f).
func SizeFor(count int, f Format) (int, error) {
	if !f.valid() {
		return 0, errs.ErrInvalidFormat
	}

	blocks := blockCount(count)

	return blocks * f.RecordSize(), nil
}

func blockCount(count int) int {
	if count <= 0 {
		return 0
	}

	return (count + BlockElements - 1) / BlockElements
}
