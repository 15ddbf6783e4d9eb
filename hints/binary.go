package hints

import (
	"encoding/binary"
	"math"

	"github.com/helios-forge/hnfconv/errs"
)

// floatBits and floatFromBits convert a float32 hyperparameter to/from
// its raw IEEE-754 bit pattern for storage in a little-endian uint32
// field. TextModelConfig/VisionModelConfig store full-precision
// float32 values, unlike the HQS group descriptors which deliberately
// round-trip through half precision (internal/f16).
func floatBits(v float32) uint32 {
	return math.Float32bits(v)
}

func floatFromBits(b uint32) float32 {
	return math.Float32frombits(b)
}

// HeaderSize is the fixed byte size of the packed-binary hints header.
const HeaderSize = 64

// Magic is the packed-binary hints block signature.
var Magic = [4]byte{'H', 'I', 'N', 'T'}

// Version is the packed-binary hints format version.
const (
	VersionMajor uint16 = 1
	VersionMinor uint16 = 0
)

// Modality identifies one of the six per-model config records a
// Header may point to.
type Modality int

const (
	ModalityText Modality = iota
	ModalityVision
	ModalityAudio
	ModalityCode
	ModalityCortex
	ModalitySpatial

	numModalities = 6
)

// Header is the 64-byte prefix of the packed-binary hints block: six
// byte-offsets into the rest of the block (zero when that modality is
// absent), a per-modality record count, and an enabled-feature
// bitmap, per spec.md §4.4.
//
// The trailing reserved region is 16 bytes, not the 20 spec.md's prose
// literally states: the six offsets (24 bytes), six counts (12 bytes)
// and the feature bitmap (4 bytes) already bring the header to 48
// bytes after the 8-byte magic+version prefix, so 16 reserved bytes is
// what closes the structure out to the fixed 64-byte size.
type Header struct {
	Magic          [4]byte
	VersionMajor   uint16
	VersionMinor   uint16
	Offsets        [numModalities]uint32
	Counts         [numModalities]uint16
	EnabledFeatures uint32
	Reserved       [16]byte
}

// NewHeader returns a Header with the magic/version fixed and
// everything else zero.
func NewHeader() Header {
	return Header{Magic: Magic, VersionMajor: VersionMajor, VersionMinor: VersionMinor}
}

// Bytes serializes h as HeaderSize little-endian bytes.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	h.PutBytes(b)

	return b
}

// PutBytes serializes h into the first HeaderSize bytes of b.
func (h Header) PutBytes(b []byte) {
	copy(b[0:4], h.Magic[:])
	binary.LittleEndian.PutUint16(b[4:6], h.VersionMajor)
	binary.LittleEndian.PutUint16(b[6:8], h.VersionMinor)
	for i, off := range h.Offsets {
		binary.LittleEndian.PutUint32(b[8+i*4:12+i*4], off)
	}
	countsStart := 8 + numModalities*4
	for i, c := range h.Counts {
		binary.LittleEndian.PutUint16(b[countsStart+i*2:countsStart+2+i*2], c)
	}
	flagsOff := countsStart + numModalities*2
	binary.LittleEndian.PutUint32(b[flagsOff:flagsOff+4], h.EnabledFeatures)
	copy(b[flagsOff+4:HeaderSize], h.Reserved[:])
}

// ParseHeader decodes the 64-byte packed-binary hints header.
func ParseHeader(b []byte) (Header, error) {
	if len(b) != HeaderSize {
		return Header{}, errs.ErrShortHintsHeader
	}

	var h Header
	copy(h.Magic[:], b[0:4])
	if h.Magic != Magic {
		return Header{}, errs.ErrBadHintsMagic
	}

	h.VersionMajor = binary.LittleEndian.Uint16(b[4:6])
	h.VersionMinor = binary.LittleEndian.Uint16(b[6:8])
	for i := range h.Offsets {
		h.Offsets[i] = binary.LittleEndian.Uint32(b[8+i*4 : 12+i*4])
	}
	countsStart := 8 + numModalities*4
	for i := range h.Counts {
		h.Counts[i] = binary.LittleEndian.Uint16(b[countsStart+i*2 : countsStart+2+i*2])
	}
	flagsOff := countsStart + numModalities*2
	h.EnabledFeatures = binary.LittleEndian.Uint32(b[flagsOff : flagsOff+4])
	copy(h.Reserved[:], b[flagsOff+4:HeaderSize])

	return h, nil
}

// TextModelConfigSize is the fixed byte size of a TextModelConfig record.
const TextModelConfigSize = 128

// TextModelConfig is the 128-byte packed text-model hyperparameter
// record, per spec.md §4.4.
type TextModelConfig struct {
	RopeBase     float32
	RopeScaling  float32
	RopeEps      float32
	NormEps      float32
	AttnNormEps  float32
	FfnNormEps   float32

	NumLayers        uint32
	HiddenSize       uint32
	IntermediateSize uint32
	VocabSize        uint32
	MaxPositions     uint32
	RopeDim          uint32

	AttentionHeads   uint32
	KVHeads          uint32
	HeadDim          uint32
	AttentionType    AttentionType
	QKVLayout        QKVLayout

	Architecture Architecture
	Dtype        Dtype
	MLPType      MLPType
	ActivationFn Activation
	NormType     NormType
	RopeType     RopeType

	BoolFlags uint32
}

// Bytes serializes c as TextModelConfigSize little-endian bytes.
func (c TextModelConfig) Bytes() []byte {
	b := make([]byte, TextModelConfigSize)

	binary.LittleEndian.PutUint32(b[0:4], floatBits(c.RopeBase))
	binary.LittleEndian.PutUint32(b[4:8], floatBits(c.RopeScaling))
	binary.LittleEndian.PutUint32(b[8:12], floatBits(c.RopeEps))
	binary.LittleEndian.PutUint32(b[12:16], floatBits(c.NormEps))
	binary.LittleEndian.PutUint32(b[16:20], floatBits(c.AttnNormEps))
	binary.LittleEndian.PutUint32(b[20:24], floatBits(c.FfnNormEps))

	binary.LittleEndian.PutUint32(b[24:28], c.NumLayers)
	binary.LittleEndian.PutUint32(b[28:32], c.HiddenSize)
	binary.LittleEndian.PutUint32(b[32:36], c.IntermediateSize)
	binary.LittleEndian.PutUint32(b[36:40], c.VocabSize)
	binary.LittleEndian.PutUint32(b[40:44], c.MaxPositions)
	binary.LittleEndian.PutUint32(b[44:48], c.RopeDim)

	binary.LittleEndian.PutUint32(b[48:52], c.AttentionHeads)
	binary.LittleEndian.PutUint32(b[52:56], c.KVHeads)
	binary.LittleEndian.PutUint32(b[56:60], c.HeadDim)
	binary.LittleEndian.PutUint32(b[60:64], uint32(c.AttentionType))
	binary.LittleEndian.PutUint32(b[64:68], uint32(c.QKVLayout))

	binary.LittleEndian.PutUint32(b[68:72], uint32(c.Architecture))
	binary.LittleEndian.PutUint32(b[72:76], uint32(c.Dtype))
	binary.LittleEndian.PutUint32(b[76:80], uint32(c.MLPType))
	binary.LittleEndian.PutUint32(b[80:84], uint32(c.ActivationFn))
	binary.LittleEndian.PutUint32(b[84:88], uint32(c.NormType))
	binary.LittleEndian.PutUint32(b[88:92], uint32(c.RopeType))

	binary.LittleEndian.PutUint32(b[92:96], c.BoolFlags)
	// b[96:128] reserved, zero.

	return b
}

// ParseTextModelConfig decodes a 128-byte TextModelConfig.
func ParseTextModelConfig(b []byte) (TextModelConfig, error) {
	if len(b) < TextModelConfigSize {
		return TextModelConfig{}, errs.ErrShortHintsRecord
	}

	return TextModelConfig{
		RopeBase:    floatFromBits(binary.LittleEndian.Uint32(b[0:4])),
		RopeScaling: floatFromBits(binary.LittleEndian.Uint32(b[4:8])),
		RopeEps:     floatFromBits(binary.LittleEndian.Uint32(b[8:12])),
		NormEps:     floatFromBits(binary.LittleEndian.Uint32(b[12:16])),
		AttnNormEps: floatFromBits(binary.LittleEndian.Uint32(b[16:20])),
		FfnNormEps:  floatFromBits(binary.LittleEndian.Uint32(b[20:24])),

		NumLayers:        binary.LittleEndian.Uint32(b[24:28]),
		HiddenSize:       binary.LittleEndian.Uint32(b[28:32]),
		IntermediateSize: binary.LittleEndian.Uint32(b[32:36]),
		VocabSize:        binary.LittleEndian.Uint32(b[36:40]),
		MaxPositions:     binary.LittleEndian.Uint32(b[40:44]),
		RopeDim:          binary.LittleEndian.Uint32(b[44:48]),

		AttentionHeads: binary.LittleEndian.Uint32(b[48:52]),
		KVHeads:        binary.LittleEndian.Uint32(b[52:56]),
		HeadDim:        binary.LittleEndian.Uint32(b[56:60]),
		AttentionType:  AttentionType(binary.LittleEndian.Uint32(b[60:64])),
		QKVLayout:      QKVLayout(binary.LittleEndian.Uint32(b[64:68])),

		Architecture: Architecture(binary.LittleEndian.Uint32(b[68:72])),
		Dtype:        Dtype(binary.LittleEndian.Uint32(b[72:76])),
		MLPType:      MLPType(binary.LittleEndian.Uint32(b[76:80])),
		ActivationFn: Activation(binary.LittleEndian.Uint32(b[80:84])),
		NormType:     NormType(binary.LittleEndian.Uint32(b[84:88])),
		RopeType:     RopeType(binary.LittleEndian.Uint32(b[88:92])),

		BoolFlags: binary.LittleEndian.Uint32(b[92:96]),
	}, nil
}

// VisionModelConfigSize is the fixed byte size of a VisionModelConfig record.
const VisionModelConfigSize = 64

// VisionModelConfig is the 64-byte packed vision-encoder
// hyperparameter record, per spec.md §4.4.
type VisionModelConfig struct {
	EncoderFamily    EncoderFamily
	ImageSize        uint32
	PatchSize        uint32
	NumChannels      uint32
	HiddenSize       uint32
	NumLayers        uint32
	NumHeads         uint32
	IntermediateSize uint32
	LayerNormEps     float32
	ProjectionDim    uint32
	ProjectorType    ProjectorType
	ImageTokenCount  uint32
	ImageTokenID     uint32
}

// Bytes serializes c as VisionModelConfigSize little-endian bytes.
func (c VisionModelConfig) Bytes() []byte {
	b := make([]byte, VisionModelConfigSize)

	binary.LittleEndian.PutUint32(b[0:4], uint32(c.EncoderFamily))
	binary.LittleEndian.PutUint32(b[4:8], c.ImageSize)
	binary.LittleEndian.PutUint32(b[8:12], c.PatchSize)
	binary.LittleEndian.PutUint32(b[12:16], c.NumChannels)
	binary.LittleEndian.PutUint32(b[16:20], c.HiddenSize)
	binary.LittleEndian.PutUint32(b[20:24], c.NumLayers)
	binary.LittleEndian.PutUint32(b[24:28], c.NumHeads)
	binary.LittleEndian.PutUint32(b[28:32], c.IntermediateSize)
	binary.LittleEndian.PutUint32(b[32:36], floatBits(c.LayerNormEps))
	binary.LittleEndian.PutUint32(b[36:40], c.ProjectionDim)
	binary.LittleEndian.PutUint32(b[40:44], uint32(c.ProjectorType))
	binary.LittleEndian.PutUint32(b[44:48], c.ImageTokenCount)
	binary.LittleEndian.PutUint32(b[48:52], c.ImageTokenID)
	// b[52:64] reserved, zero.

	return b
}

// ParseVisionModelConfig decodes a 64-byte VisionModelConfig.
func ParseVisionModelConfig(b []byte) (VisionModelConfig, error) {
	if len(b) < VisionModelConfigSize {
		return VisionModelConfig{}, errs.ErrShortHintsRecord
	}

	return VisionModelConfig{
		EncoderFamily:    EncoderFamily(binary.LittleEndian.Uint32(b[0:4])),
		ImageSize:        binary.LittleEndian.Uint32(b[4:8]),
		PatchSize:        binary.LittleEndian.Uint32(b[8:12]),
		NumChannels:      binary.LittleEndian.Uint32(b[12:16]),
		HiddenSize:       binary.LittleEndian.Uint32(b[16:20]),
		NumLayers:        binary.LittleEndian.Uint32(b[20:24]),
		NumHeads:         binary.LittleEndian.Uint32(b[24:28]),
		IntermediateSize: binary.LittleEndian.Uint32(b[28:32]),
		LayerNormEps:     floatFromBits(binary.LittleEndian.Uint32(b[32:36])),
		ProjectionDim:    binary.LittleEndian.Uint32(b[36:40]),
		ProjectorType:    ProjectorType(binary.LittleEndian.Uint32(b[40:44])),
		ImageTokenCount:  binary.LittleEndian.Uint32(b[44:48]),
		ImageTokenID:     binary.LittleEndian.Uint32(b[48:52]),
	}, nil
}
