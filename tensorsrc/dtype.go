package tensorsrc

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/d4l3k/go-bfloat16"

	"github.com/helios-forge/hnfconv/internal/f16"
)

// ToFloat32 widens raw little-endian tensor bytes of the given
// safetensors dtype tag to []float32, per spec.md §6.1's "F32/F16/BF16"
// source dtype set.
func ToFloat32(dtype string, raw []byte) ([]float32, error) {
	switch dtype {
	case "F32":
		return decodeF32(raw), nil
	case "F16":
		return decodeF16(raw), nil
	case "BF16":
		// go-bfloat16.DecodeFloat32 widens a raw BF16 byte buffer
		// directly, the same call gitgoblin0426-ollama's ReadSafeTensors
		// uses to convert a safetensors BF16 tensor before re-encoding it.
		return bfloat16.DecodeFloat32(raw), nil
	default:
		return nil, fmt.Errorf("tensorsrc: unsupported source dtype %q", dtype)
	}
}

func decodeF32(raw []byte) []float32 {
	out := make([]float32, len(raw)/4)
	for i := range out {
		bits := binary.LittleEndian.Uint32(raw[i*4 : i*4+4])
		out[i] = math.Float32frombits(bits)
	}

	return out
}

func decodeF16(raw []byte) []float32 {
	out := make([]float32, len(raw)/2)
	for i := range out {
		bits := binary.LittleEndian.Uint16(raw[i*2 : i*2+2])
		out[i] = f16.FromBits(bits)
	}

	return out
}
