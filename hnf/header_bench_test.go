package hnf

import "testing"

// Benchmark serializing the 64-byte file header, the step
// Writer.Finalize performs once per file to rewrite the header in place.
func BenchmarkHeader_PutBytes(b *testing.B) {
	h := NewHeader()
	h.FeatureFlags = 1<<bitTokenizer | 1<<bitVision
	h.ManifestOffset = 4096
	h.ManifestSize = 128
	h.TotalFileSize = 4224
	h.Checksum = 0xDEADBEEF

	buf := make([]byte, HeaderSize)

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		h.PutBytes(buf)
	}
}

// Benchmark the allocating Bytes wrapper, for comparison with the
// pooled scratch buffer Finalize serializes the header into.
func BenchmarkHeader_Bytes(b *testing.B) {
	h := NewHeader()
	h.FeatureFlags = 1 << bitTokenizer
	h.TotalFileSize = 4224

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		_ = h.Bytes()
	}
}
