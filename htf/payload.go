package htf

import (
	"encoding/binary"

	"github.com/helios-forge/hnfconv/errs"
)

// EncodingFamily is the tokenizer algorithm family tag stored in a
// TextDomainConfig, per spec.md §6.4.
type EncodingFamily uint8

const (
	EncodingBPE EncodingFamily = iota
	EncodingSentencePiece
	EncodingWordPiece
	EncodingUnigram
)

// Text-domain config flag bits.
const (
	textFlagByteLevel       = 1 << 0
	textFlagAddPrefixSpace  = 1 << 1
	textFlagTrimOffsets     = 1 << 2
	textFlagLegacyBehaviour = 1 << 3
)

// TextDomainConfigSize is the fixed byte size of a TextDomainConfig record.
const TextDomainConfigSize = 32

// TextDomainConfig is the 32-byte record every text/code domain
// payload begins with.
type TextDomainConfig struct {
	BOS             int32
	EOS             int32
	PAD             int32
	UNK             int32
	VocabSize       uint32
	AddedTokenCount uint16
	Encoding        EncodingFamily
	ByteLevel       bool
	AddPrefixSpace  bool
	TrimOffsets     bool
	LegacyBehaviour bool
}

func (c TextDomainConfig) flags() uint8 {
	var f uint8
	if c.ByteLevel {
		f |= textFlagByteLevel
	}
	if c.AddPrefixSpace {
		f |= textFlagAddPrefixSpace
	}
	if c.TrimOffsets {
		f |= textFlagTrimOffsets
	}
	if c.LegacyBehaviour {
		f |= textFlagLegacyBehaviour
	}

	return f
}

// Bytes serializes c as TextDomainConfigSize little-endian bytes.
func (c TextDomainConfig) Bytes() []byte {
	b := make([]byte, TextDomainConfigSize)
	binary.LittleEndian.PutUint32(b[0:4], uint32(c.BOS))
	binary.LittleEndian.PutUint32(b[4:8], uint32(c.EOS))
	binary.LittleEndian.PutUint32(b[8:12], uint32(c.PAD))
	binary.LittleEndian.PutUint32(b[12:16], uint32(c.UNK))
	binary.LittleEndian.PutUint32(b[16:20], c.VocabSize)
	binary.LittleEndian.PutUint16(b[20:22], c.AddedTokenCount)
	b[22] = uint8(c.Encoding)
	b[23] = c.flags()
	// b[24:32] reserved, zero.

	return b
}

// ParseTextDomainConfig decodes a 32-byte TextDomainConfig.
func ParseTextDomainConfig(b []byte) (TextDomainConfig, error) {
	if len(b) < TextDomainConfigSize {
		return TextDomainConfig{}, errs.ErrShortBundleHeader
	}

	flags := b[23]

	return TextDomainConfig{
		BOS:             int32(binary.LittleEndian.Uint32(b[0:4])),
		EOS:             int32(binary.LittleEndian.Uint32(b[4:8])),
		PAD:             int32(binary.LittleEndian.Uint32(b[8:12])),
		UNK:             int32(binary.LittleEndian.Uint32(b[12:16])),
		VocabSize:       binary.LittleEndian.Uint32(b[16:20]),
		AddedTokenCount: binary.LittleEndian.Uint16(b[20:22]),
		Encoding:        EncodingFamily(b[22]),
		ByteLevel:       flags&textFlagByteLevel != 0,
		AddPrefixSpace:  flags&textFlagAddPrefixSpace != 0,
		TrimOffsets:     flags&textFlagTrimOffsets != 0,
		LegacyBehaviour: flags&textFlagLegacyBehaviour != 0,
	}, nil
}

// CodeDomainConfigSize is the fixed byte size of a CodeDomainConfig record.
const CodeDomainConfigSize = 32

// CodeDomainConfig is the optional 32-byte record following a
// TextDomainConfig in a code domain's payload.
type CodeDomainConfig struct {
	FillInMiddle    bool
	PrefixTokenID   int32
	MiddleTokenID   int32
	SuffixTokenID   int32
	EndOfMiddleID   int32
}

// Bytes serializes c as CodeDomainConfigSize little-endian bytes.
func (c CodeDomainConfig) Bytes() []byte {
	b := make([]byte, CodeDomainConfigSize)
	if c.FillInMiddle {
		b[0] = 1
	}
	binary.LittleEndian.PutUint32(b[4:8], uint32(c.PrefixTokenID))
	binary.LittleEndian.PutUint32(b[8:12], uint32(c.MiddleTokenID))
	binary.LittleEndian.PutUint32(b[12:16], uint32(c.SuffixTokenID))
	binary.LittleEndian.PutUint32(b[16:20], uint32(c.EndOfMiddleID))

	return b
}

// ParseCodeDomainConfig decodes a 32-byte CodeDomainConfig.
func ParseCodeDomainConfig(b []byte) (CodeDomainConfig, error) {
	if len(b) < CodeDomainConfigSize {
		return CodeDomainConfig{}, errs.ErrShortBundleHeader
	}

	return CodeDomainConfig{
		FillInMiddle:  b[0] != 0,
		PrefixTokenID: int32(binary.LittleEndian.Uint32(b[4:8])),
		MiddleTokenID: int32(binary.LittleEndian.Uint32(b[8:12])),
		SuffixTokenID: int32(binary.LittleEndian.Uint32(b[12:16])),
		EndOfMiddleID: int32(binary.LittleEndian.Uint32(b[16:20])),
	}, nil
}

// Token-flag bits, per spec.md §6.4.
const (
	TokenFlagSpecial       = 0x01
	TokenFlagUnknown       = 0x02
	TokenFlagControl       = 0x04
	TokenFlagByte          = 0x08
	TokenFlagAddedFromConf = 0x10
)

// AddedToken is one entry in the added-tokens array following the
// domain config record(s).
type AddedToken struct {
	ID      uint32
	Content string
	Flags   uint8
}

func padLen(n, align int) int {
	rem := n % align
	if rem == 0 {
		return 0
	}

	return align - rem
}

// PutBytes appends t's packed record to b and returns the extended slice.
func (t AddedToken) PutBytes(b []byte) []byte {
	head := make([]byte, 8)
	binary.LittleEndian.PutUint32(head[0:4], t.ID)
	binary.LittleEndian.PutUint16(head[4:6], uint16(len(t.Content)))
	head[6] = t.Flags
	head[7] = 0

	b = append(b, head...)
	b = append(b, t.Content...)
	b = append(b, make([]byte, padLen(8+len(t.Content), 4))...)

	return b
}

// ParseAddedToken decodes one added-token record starting at b[0],
// returning the token and the number of bytes it consumed.
func ParseAddedToken(b []byte) (AddedToken, int, error) {
	if len(b) < 8 {
		return AddedToken{}, 0, errs.ErrShortBundleHeader
	}

	id := binary.LittleEndian.Uint32(b[0:4])
	length := int(binary.LittleEndian.Uint16(b[4:6]))
	flags := b[6]

	total := 8 + length
	if len(b) < total {
		return AddedToken{}, 0, errs.ErrShortBundleHeader
	}

	content := string(b[8:total])
	total += padLen(total, 4)

	return AddedToken{ID: id, Content: content, Flags: flags}, total, nil
}

// VocabEntry is one row of the vocabulary block.
type VocabEntry struct {
	ID        uint32
	Content   string
	Flags     uint8
	ScoreType uint8
}

// PutBytes appends e's packed record to b and returns the extended slice.
func (e VocabEntry) PutBytes(b []byte) []byte {
	head := make([]byte, 8)
	binary.LittleEndian.PutUint32(head[0:4], e.ID)
	binary.LittleEndian.PutUint16(head[4:6], uint16(len(e.Content)))
	head[6] = e.Flags
	head[7] = e.ScoreType

	b = append(b, head...)
	b = append(b, e.Content...)
	b = append(b, make([]byte, padLen(8+len(e.Content), 4))...)

	return b
}

// ParseVocabEntry decodes one vocab-entry record starting at b[0],
// returning the entry and the number of bytes it consumed.
func ParseVocabEntry(b []byte) (VocabEntry, int, error) {
	if len(b) < 8 {
		return VocabEntry{}, 0, errs.ErrShortBundleHeader
	}

	id := binary.LittleEndian.Uint32(b[0:4])
	length := int(binary.LittleEndian.Uint16(b[4:6]))
	flags := b[6]
	scoreType := b[7]

	total := 8 + length
	if len(b) < total {
		return VocabEntry{}, 0, errs.ErrShortBundleHeader
	}

	content := string(b[8:total])
	total += padLen(total, 4)

	return VocabEntry{ID: id, Content: content, Flags: flags, ScoreType: scoreType}, total, nil
}

// MergePair is one BPE merge rule, referencing two vocab ids.
type MergePair struct {
	Left  uint32
	Right uint32
}

// PackAddedTokens serializes a 32-bit count followed by each token's
// packed record, per spec.md §6.4.
func PackAddedTokens(tokens []AddedToken) []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(tokens)))
	for _, t := range tokens {
		out = t.PutBytes(out)
	}

	return out
}

// PackVocab serializes the vocab block: a 32-bit count followed by
// each entry's packed record. It adds no alignment padding of its own;
// the block's 8-byte alignment within a payload is not applied here.
func PackVocab(entries []VocabEntry) []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(entries)))
	for _, e := range entries {
		out = e.PutBytes(out)
	}

	return out
}

// PackMerges serializes the merges block: a 32-bit pair count
// followed by pair-count pairs of (left, right) vocab ids.
func PackMerges(pairs []MergePair) []byte {
	out := make([]byte, 4+8*len(pairs))
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(pairs)))
	for i, p := range pairs {
		off := 4 + i*8
		binary.LittleEndian.PutUint32(out[off:off+4], p.Left)
		binary.LittleEndian.PutUint32(out[off+4:off+8], p.Right)
	}

	return out
}
