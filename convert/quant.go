package convert

import (
	"encoding/binary"
	"fmt"

	"github.com/helios-forge/hnfconv/errs"
	"github.com/helios-forge/hnfconv/hqs"
	"github.com/helios-forge/hnfconv/internal/f16"
	"github.com/helios-forge/hnfconv/mapping"
)

// resolveFormat turns a mapper's quantization hint (plus the writer's
// configured default) into a concrete tag string, failing at start-up
// for an unrecognized default tag — spec.md §7's "unknown quantization
// format string" disposition.
func resolveFormat(hint mapping.QuantizationHint, defaultTag string) (string, error) {
	tag := string(hint)
	if hint == mapping.HintDefault {
		tag = defaultTag
	}

	switch tag {
	case "FP16", "HQ4K", "HQ5K":
		return tag, nil
	default:
		return "", fmt.Errorf("%w: %q", errs.ErrUnknownQuantFormat, tag)
	}
}

// encodeValues quantizes values according to tag, the shared encode
// path every model-input tensor goes through regardless of source
// dtype, per spec.md §4.1's format split.
func encodeValues(values []float32, tag string) ([]byte, error) {
	switch tag {
	case "FP16":
		return encodeFP16(values), nil
	case "HQ4K":
		return hqs.Encode(values, hqs.HQ4K, false)
	case "HQ5K":
		return hqs.Encode(values, hqs.HQ5K, false)
	default:
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownQuantFormat, tag)
	}
}

// encodeFP16 packs values as raw little-endian half-precision floats,
// the uncompressed storage option alongside the two HQS formats.
func encodeFP16(values []float32) []byte {
	out := make([]byte, len(values)*2)
	for i, v := range values {
		binary.LittleEndian.PutUint16(out[i*2:i*2+2], f16.Bits(v))
	}

	return out
}
