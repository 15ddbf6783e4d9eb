package hnf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/helios-forge/hnfconv/errs"
)

func TestHeader_RoundTrip(t *testing.T) {
	h := NewHeader()
	h.FeatureFlags = 1<<bitTokenizer | 1<<bitVision
	h.ManifestOffset = 4096
	h.ManifestSize = 128
	h.TotalFileSize = 4224
	h.Checksum = 0xDEADBEEF

	parsed, err := ParseHeader(h.Bytes())
	require.NoError(t, err)
	require.Equal(t, h, parsed)
}

func TestHeader_BadMagic(t *testing.T) {
	h := NewHeader()
	b := h.Bytes()
	b[0] = 'X'

	_, err := ParseHeader(b)
	require.ErrorIs(t, err, errs.ErrBadMagic)
}

func TestHeader_ShortInput(t *testing.T) {
	_, err := ParseHeader(make([]byte, 10))
	require.ErrorIs(t, err, errs.ErrShortHeader)
}

func TestHeader_BadBlockCount(t *testing.T) {
	h := NewHeader()
	b := h.Bytes()
	b[16] = 5 // clobber block_count

	_, err := ParseHeader(b)
	require.ErrorIs(t, err, errs.ErrBadBlockCount)
}

func TestIsMultimodal(t *testing.T) {
	require.False(t, IsMultimodal(1<<bitTokenizer))
	require.True(t, IsMultimodal(1<<bitVision))
	require.True(t, IsMultimodal(1<<bitAudio))
}
