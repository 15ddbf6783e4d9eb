package htf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/helios-forge/hnfconv/errs"
)

func TestHeader_RoundTrip(t *testing.T) {
	h := Header{
		Magic:       MagicV13,
		Version:     Version,
		HeaderFlags: headerFlagHasMerges,
		DomainCount: 3,
		TotalSize:   4096,
		ContentHash: 0xABCDEF,
	}

	parsed, err := ParseHeader(h.Bytes())
	require.NoError(t, err)
	require.Equal(t, h, parsed)
}

func TestHeader_AcceptsLegacyMagic(t *testing.T) {
	h := Header{Magic: MagicV12, Version: 12, DomainCount: 1, TotalSize: 64}

	_, err := ParseHeader(h.Bytes())
	require.NoError(t, err)
}

func TestHeader_BadMagic(t *testing.T) {
	h := Header{Magic: [4]byte{'X', 'X', 'X', 'X'}, DomainCount: 1}

	_, err := ParseHeader(h.Bytes())
	require.ErrorIs(t, err, errs.ErrBadBundleMagic)
}

func TestHeader_ReservedNonZero(t *testing.T) {
	h := Header{Magic: MagicV13, DomainCount: 1}
	b := h.Bytes()
	b[10] = 1 // clobber a reserved byte

	_, err := ParseHeader(b)
	require.ErrorIs(t, err, errs.ErrReservedNonZero)
}

func TestHeader_DomainCountOutOfRange(t *testing.T) {
	h := Header{Magic: MagicV13, DomainCount: 0}

	_, err := ParseHeader(h.Bytes())
	require.ErrorIs(t, err, errs.ErrTooFewDomains)
}
