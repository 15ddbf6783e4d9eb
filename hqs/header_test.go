package hqs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeader_RoundTrip(t *testing.T) {
	var h Header
	for i := range h {
		h[i] = GroupDescriptor{
			Min:   float32(i) * 0.5,
			Scale: float32(i) + 1.0,
		}
	}

	b := h.Bytes()
	require.Len(t, b, HeaderSize)

	parsed := ParseHeader(b)
	for i := range h {
		require.InDelta(t, float64(h[i].Min), float64(parsed[i].Min), 0.05, "group %d min", i)
		require.InDelta(t, float64(h[i].Scale), float64(parsed[i].Scale), 0.05, "group %d scale", i)
	}
}

func TestRoundedScale_Epsilon(t *testing.T) {
	require.Equal(t, float32(epsilon), roundedScale(0))
	require.Greater(t, roundedScale(10), float32(epsilon))
}

func TestSanitize(t *testing.T) {
	require.Equal(t, float32(0), sanitize(float32(math.NaN())))
	require.Equal(t, float32(0), sanitize(float32(math.Inf(1))))
	require.Equal(t, float32(0), sanitize(float32(math.Inf(-1))))
	require.Equal(t, float32(1.5), sanitize(1.5))
}
