// Package hqs implements the block-floating-point quantization codec: a
// pure, deterministic transform between a dense []float32 tensor and a
// sequence of fixed-size super-block records.
//
// Each super-block covers exactly 256 source floats, split into 32
// groups of 8 values that each share one (min, scale) descriptor stored
// at half precision. Two variants are defined: HQ4K (4 bits per
// element, 256-byte records) and HQ5K (5 bits per element, 288-byte
// records). Both share the same 128-byte group-descriptor header and
// differ only in how the quantized indices are packed into the payload.
//
// # Layout
//
//	┌──────────────────────────────────────────┐
//	│ Header (128 bytes, fixed)                 │
//	│  - 32 group descriptors: half(min),       │
//	│    half(scale), little-endian             │
//	├──────────────────────────────────────────┤
//	│ Payload (128 or 160 bytes)                │
//	│  - HQ4K: 256 x 4-bit indices, 2/byte      │
//	│  - HQ5K: 32 x (8 indices -> 40-bit word)  │
//	└──────────────────────────────────────────┘
//
// Encode and Decode are both pure functions with no shared mutable
// state: super-blocks are independent and are fanned out across a
// worker pool sized to available parallelism, then gathered back into
// source order before being returned.
package hqs
