// Package f16 provides the half-precision round-trip helpers the HQS
// codec and the safetensors reader need: converting a
// float32 to its nearest float16 representation and back, and walking
// the integer ULP neighborhood of a float16 bit pattern for the HQS
// precise grid search (spec.md §4.1).
package f16

import "github.com/x448/float16"

// RoundTrip rounds v to the nearest float16 value and returns the
// float32 that float16 value represents. This is the "round-trip
// through half-precision" operation spec.md §3.1 and §4.1 require for
// every group descriptor (min, scale).
func RoundTrip(v float32) float32 {
	return float16.Fromfloat32(v).Float32()
}

// Bits returns the float16 bit pattern nearest to v.
func Bits(v float32) uint16 {
	return uint16(float16.Fromfloat32(v))
}

// FromBits reconstructs the float32 value represented by a float16 bit
// pattern.
func FromBits(bits uint16) float32 {
	return float16.Frombits(bits).Float32()
}

// Neighbor returns the float32 value of the float16 bit pattern ulp
// steps away from bits, saturating at the representable range instead
// of wrapping. ulp may be negative.
func Neighbor(bits uint16, ulp int) float32 {
	n := int32(bits) + int32(ulp)
	if n < 0 {
		n = 0
	}
	if n > 0xFFFF {
		n = 0xFFFF
	}

	return FromBits(uint16(n))
}
