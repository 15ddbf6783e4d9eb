// Package xhash wraps the XXH3-64 implementation used for every content
// hash in the HNF container and the HTF tokenizer bundle.
//
// A single seed-0 64-bit hash is used throughout: HNF per-block content
// hashes, the HTF whole-blob content hash, and the HTF canonical
// domain-name hash. Centralizing it here keeps the seed and algorithm
// choice in one place.
package xhash

import "github.com/zeebo/xxh3"

// Sum64 returns the seed-0 XXH3-64 hash of data.
func Sum64(data []byte) uint64 {
	return xxh3.Hash(data)
}

// Sum64String returns the seed-0 XXH3-64 hash of s without allocating a copy.
func Sum64String(s string) uint64 {
	return xxh3.HashString(s)
}

// Digest is an incremental XXH3-64 hasher used by the HNF writer to hash
// a block's bytes as they are written, rather than buffering the whole
// block and hashing it in one shot at finalize time.
type Digest struct {
	h *xxh3.Hasher
}

// NewDigest creates an incremental hasher seeded the same way as Sum64.
func NewDigest() *Digest {
	return &Digest{h: xxh3.New()}
}

// Write feeds bytes into the running hash. It never returns an error.
func (d *Digest) Write(p []byte) (int, error) {
	return d.h.Write(p)
}

// Sum64 returns the current digest without resetting the hasher.
func (d *Digest) Sum64() uint64 {
	return d.h.Sum64()
}
