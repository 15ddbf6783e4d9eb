package htf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextDomainConfig_RoundTrip(t *testing.T) {
	c := TextDomainConfig{
		BOS: 1, EOS: 2, PAD: -1, UNK: 0,
		VocabSize:       32000,
		AddedTokenCount: 12,
		Encoding:        EncodingSentencePiece,
		ByteLevel:       true,
		TrimOffsets:     true,
	}

	parsed, err := ParseTextDomainConfig(c.Bytes())
	require.NoError(t, err)
	require.Equal(t, c, parsed)
}

func TestCodeDomainConfig_RoundTrip(t *testing.T) {
	c := CodeDomainConfig{
		FillInMiddle:  true,
		PrefixTokenID: 100,
		MiddleTokenID: 101,
		SuffixTokenID: 102,
		EndOfMiddleID: 103,
	}

	parsed, err := ParseCodeDomainConfig(c.Bytes())
	require.NoError(t, err)
	require.Equal(t, c, parsed)
}

func TestAddedToken_RoundTrip(t *testing.T) {
	tokens := []AddedToken{
		{ID: 1, Content: "<|endoftext|>", Flags: TokenFlagSpecial},
		{ID: 2, Content: "<0xFF>", Flags: TokenFlagByte},
	}

	packed := PackAddedTokens(tokens)

	cursor := packed[4:]
	for _, want := range tokens {
		got, n, err := ParseAddedToken(cursor)
		require.NoError(t, err)
		require.Equal(t, want, got)
		cursor = cursor[n:]
	}
	require.Empty(t, cursor)
}

func TestVocabEntry_RoundTrip(t *testing.T) {
	entries := []VocabEntry{
		{ID: 0, Content: "<unk>", Flags: TokenFlagUnknown, ScoreType: 0},
		{ID: 1, Content: "hello", Flags: 0, ScoreType: 1},
	}

	packed := PackVocab(entries)

	cursor := packed[4:]
	for _, want := range entries {
		got, n, err := ParseVocabEntry(cursor)
		require.NoError(t, err)
		require.Equal(t, want, got)
		cursor = cursor[n:]
	}
	require.Empty(t, cursor)
}

func TestPackMerges(t *testing.T) {
	pairs := []MergePair{{Left: 1, Right: 2}, {Left: 3, Right: 4}}

	packed := PackMerges(pairs)
	require.Len(t, packed, 4+2*8)
}

func TestPadLen(t *testing.T) {
	require.Equal(t, 0, padLen(8, 4))
	require.Equal(t, 2, padLen(10, 4))
	require.Equal(t, 3, padLen(9, 4))
}
