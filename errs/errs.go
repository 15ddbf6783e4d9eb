// Package errs holds the sentinel errors shared by the hqs, hnf, htf,
// hints and convert packages, following the teacher's narrow
// tagged-error convention: a fixed set of sentinels wrapped with
// fmt.Errorf("%w: ...") at the call site rather than ad hoc string
// errors.
package errs

import "errors"

// HQS codec errors.
var (
	ErrInvalidFormat      = errors.New("hqs: invalid quantization format")
	ErrInvalidRecordBytes = errors.New("hqs: byte length not a multiple of record size")
)

// HNF writer / reader errors.
var (
	ErrInvalidSlot         = errors.New("hnf: invalid slot id")
	ErrSlotAlreadyFinal    = errors.New("hnf: slot already finalized")
	ErrSlotOutOfOrder      = errors.New("hnf: slots must be written in ascending id order")
	ErrSlotEmpty           = errors.New("hnf: slot has no data")
	ErrWriterFinalized     = errors.New("hnf: writer already finalized")
	ErrShortHeader         = errors.New("hnf: header shorter than 64 bytes")
	ErrBadMagic            = errors.New("hnf: bad magic number")
	ErrBadBlockCount       = errors.New("hnf: block_count is not 16")
	ErrBadHeaderSize       = errors.New("hnf: header_size is not 64")
	ErrBadBlockTableOffset = errors.New("hnf: block_table_offset is not 64")
	ErrBlockTableShort     = errors.New("hnf: block table shorter than 512 bytes")
	ErrSlotIDMismatch      = errors.New("hnf: block table entry block_id does not equal its slot index")
	ErrManifestMisaligned  = errors.New("hnf: manifest_offset + manifest_size != file_size")
	ErrSizeCeilingExceeded = errors.New("hnf: block exceeds its size ceiling")
	ErrContentHashMismatch = errors.New("hnf: stored content hash does not match block bytes")
)

// HTF bundle errors.
var (
	ErrTooFewDomains      = errors.New("htf: must have at least 1 domain")
	ErrTooManyDomains     = errors.New("htf: must have at most 8 domains")
	ErrNoPrimaryDomain    = errors.New("htf: exactly one domain must be primary")
	ErrMultiplePrimary    = errors.New("htf: more than one domain marked primary")
	ErrSingleDomainNotText = errors.New("htf: a single-domain bundle must be text and primary")
	ErrShortBundleHeader  = errors.New("htf: header shorter than 32 bytes")
	ErrBadBundleMagic     = errors.New("htf: bad magic number")
	ErrReservedNonZero    = errors.New("htf: reserved bytes are non-zero")
	ErrBundleHashMismatch = errors.New("htf: stored content hash does not match blob bytes")
	ErrUnknownDomainName  = errors.New("htf: domain name hash does not match a canonical domain name")
)

// Hints packed-binary errors.
var (
	ErrShortHintsHeader = errors.New("hints: header shorter than 64 bytes")
	ErrShortHintsRecord = errors.New("hints: record shorter than its fixed size")
	ErrBadHintsMagic    = errors.New("hints: bad magic number")
)

// Orchestration / hints errors.
var (
	ErrMissingTensor       = errors.New("convert: mapper referenced a tensor that does not exist in the source")
	ErrUnknownQuantFormat  = errors.New("convert: unknown quantization format string")
	ErrNameOutsideVocab    = errors.New("convert: mapper returned a name outside the vocabulary")
	ErrMalformedShardHeader = errors.New("tensorsrc: malformed safetensors shard header")
)
