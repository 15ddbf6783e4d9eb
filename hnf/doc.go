// Package hnf implements the HNFv9 container writer: a 64-byte header,
// a 512-byte 16-entry block table, 32-byte-aligned block payloads, and
// a tail JSON manifest.
//
// Writer is a single-writer, single-threaded, append-only state
// machine: tensors and raw blocks are appended to one of sixteen fixed
// slots in ascending slot order, each slot accumulating its own
// incremental content hash, and Finalize rewrites the header and
// block table once every offset, size and hash is known.
//
// # Layout
//
//	┌────────────────────────────┐  offset 0
//	│ Header (64 bytes)          │
//	├────────────────────────────┤  offset 64
//	│ Block table (512 bytes)    │
//	├────────────────────────────┤  offset 576
//	│ Block payloads, slot order │  (32-byte aligned)
//	├────────────────────────────┤
//	│ Manifest (JSON)             │
//	└────────────────────────────┘
package hnf
