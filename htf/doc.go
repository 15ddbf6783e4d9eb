// Package htf implements the self-framed multi-domain tokenizer
// bundle: a 32-byte header, an N-entry domain table, contiguous
// 16-byte-aligned domain payloads, and a 32-byte trailing pad.
//
// Build is a pure function: it never inspects a domain's payload
// bytes, taking the vocabulary/merges/codebook/primary facts needed
// for the domain-table entry as explicit fields on DomainSpec instead.
//
// # Layout
//
//	┌───────────────────────────┐
//	│ Header (32 bytes)         │
//	├───────────────────────────┤
//	│ Domain table (32*N bytes) │
//	├───────────────────────────┤
//	│ Domain payloads, 16-byte  │
//	│ aligned, in table order   │
//	├───────────────────────────┤
//	│ Trailing pad to 32 bytes  │
//	└───────────────────────────┘
package htf
