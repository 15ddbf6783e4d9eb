package hqs

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode_SizeLaw(t *testing.T) {
	tests := []struct {
		count int
		f     Format
	}{
		{256, HQ4K}, {256, HQ5K},
		{300, HQ4K}, {300, HQ5K},
		{1, HQ4K}, {0, HQ5K},
	}

	for _, tt := range tests {
		data := make([]float32, tt.count)
		for i := range data {
			data[i] = float32(i)
		}

		out, err := Encode(data, tt.f, false)
		require.NoError(t, err)

		want, err := SizeFor(tt.count, tt.f)
		require.NoError(t, err)
		require.Len(t, out, want)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	data := randomData(2048, 1)

	a, err := Encode(data, HQ5K, true)
	require.NoError(t, err)
	b, err := Encode(data, HQ5K, true)
	require.NoError(t, err)

	require.Equal(t, a, b)
}

// S1: all-zero super-block in HQ4K.
func TestEncode_ScenarioS1_AllZeros(t *testing.T) {
	data := make([]float32, BlockElements)
	out, err := Encode(data, HQ4K, false)
	require.NoError(t, err)
	require.Len(t, out, HQ4KRecordSize)

	payload := out[HeaderSize:]
	for _, b := range payload {
		require.EqualValues(t, 0, b)
	}

	header := ParseHeader(out[:HeaderSize])
	for _, g := range header {
		require.InDelta(t, 0.0, float64(g.Min), 1e-6)
		require.InDelta(t, epsilon, float64(g.Scale), 1e-6)
	}
}

// S2: alternating +-1 in HQ5K.
func TestEncode_ScenarioS2_Alternating(t *testing.T) {
	data := make([]float32, 256)
	for i := range data {
		if i%2 == 0 {
			data[i] = -1.0
		} else {
			data[i] = 1.0
		}
	}

	out, err := Encode(data, HQ5K, true)
	require.NoError(t, err)
	require.Len(t, out, 288)

	decoded, err := Decode(out, HQ5K, 256)
	require.NoError(t, err)

	for i, v := range data {
		require.InDelta(t, float64(v), float64(decoded[i]), 1e-2)
	}
	require.Greater(t, pearson(data, decoded), 0.9999)
}

// S5: 300-float vector, not a multiple of 256, HQ4K.
func TestEncode_ScenarioS5_Padding(t *testing.T) {
	data := randomData(300, 5)

	out, err := Encode(data, HQ4K, true)
	require.NoError(t, err)
	require.Len(t, out, 512)

	decoded, err := Decode(out, HQ4K, 300)
	require.NoError(t, err)
	require.Len(t, decoded, 300)

	require.Greater(t, pearson(data, decoded), 0.99)
}

func TestEncode_NaNInfSanitized(t *testing.T) {
	data := make([]float32, BlockElements)
	data[0] = float32(math.NaN())
	data[1] = float32(math.Inf(1))
	data[2] = float32(math.Inf(-1))

	out, err := Encode(data, HQ4K, true)
	require.NoError(t, err)

	decoded, err := Decode(out, HQ4K, BlockElements)
	require.NoError(t, err)
	require.InDelta(t, 0.0, float64(decoded[0]), 0.2)
	require.InDelta(t, 0.0, float64(decoded[1]), 0.2)
	require.InDelta(t, 0.0, float64(decoded[2]), 0.2)
}

func TestPrecisionMonotonicity(t *testing.T) {
	data := randomData(4096, 42)

	fastOut, err := Encode(data, HQ4K, false)
	require.NoError(t, err)
	preciseOut, err := Encode(data, HQ4K, true)
	require.NoError(t, err)

	fastDecoded, err := Decode(fastOut, HQ4K, len(data))
	require.NoError(t, err)
	preciseDecoded, err := Decode(preciseOut, HQ4K, len(data))
	require.NoError(t, err)

	require.LessOrEqual(t, mse(preciseDecoded, data), mse(fastDecoded, data)+1e-9)
}

func TestQualityFloors(t *testing.T) {
	data := randomUniform(10240, -2, 2, 7)

	tests := []struct {
		f          Format
		minCorr    float64
		maxRelRMSE float64
	}{
		{HQ4K, 0.997, 0.05},
		{HQ5K, 0.999, 0.03},
	}

	for _, tt := range tests {
		out, err := Encode(data, tt.f, true)
		require.NoError(t, err)
		decoded, err := Decode(out, tt.f, len(data))
		require.NoError(t, err)

		corr := pearson(data, decoded)
		require.GreaterOrEqualf(t, corr, tt.minCorr, "format %s correlation", tt.f)

		relRMSE := math.Sqrt(mse(decoded, data)) / stddev(data)
		require.LessOrEqualf(t, relRMSE, tt.maxRelRMSE, "format %s relative RMSE", tt.f)
	}
}

func TestDecode_EmptyInput(t *testing.T) {
	out, err := Decode(nil, HQ4K, 10)
	require.NoError(t, err)
	require.Len(t, out, 10)
	for _, v := range out {
		require.Equal(t, float32(0), v)
	}
}

func TestDecode_TruncatesPartialRecord(t *testing.T) {
	out, err := Encode(randomData(256, 3), HQ4K, false)
	require.NoError(t, err)

	partial := append(out, make([]byte, 10)...) // 10 extra bytes, not a whole record
	decoded, err := Decode(partial, HQ4K, 256)
	require.NoError(t, err)
	require.Len(t, decoded, 256)
}

func TestPack4K_RoundTrip(t *testing.T) {
	var idx [BlockElements]int
	for i := range idx {
		idx[i] = i % 16
	}

	out := make([]byte, hq4kPayloadSize)
	packHQ4K(idx, out)
	got := unpackHQ4K(out)
	require.Equal(t, idx, got)
}

func TestPack5K_RoundTrip(t *testing.T) {
	var idx [BlockElements]int
	for i := range idx {
		idx[i] = i % 32
	}

	out := make([]byte, hq5kPayloadSize)
	packHQ5K(idx, out)
	got := unpackHQ5K(out)
	require.Equal(t, idx, got)
}

// --- test helpers ---

func randomData(n int, seed int64) []float32 {
	r := rand.New(rand.NewSource(seed))
	data := make([]float32, n)
	for i := range data {
		data[i] = float32(r.NormFloat64())
	}

	return data
}

func randomUniform(n int, lo, hi float64, seed int64) []float32 {
	r := rand.New(rand.NewSource(seed))
	data := make([]float32, n)
	for i := range data {
		data[i] = float32(lo + r.Float64()*(hi-lo))
	}

	return data
}

func mse(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i] - b[i])
		sum += d * d
	}

	return sum / float64(len(a))
}

func stddev(a []float32) float64 {
	var mean float64
	for _, v := range a {
		mean += float64(v)
	}
	mean /= float64(len(a))

	var sum float64
	for _, v := range a {
		d := float64(v) - mean
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(a)))
}

func pearson(a, b []float32) float64 {
	n := float64(len(a))
	var sumA, sumB float64
	for i := range a {
		sumA += float64(a[i])
		sumB += float64(b[i])
	}
	meanA, meanB := sumA/n, sumB/n

	var cov, varA, varB float64
	for i := range a {
		da := float64(a[i]) - meanA
		db := float64(b[i]) - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	return cov / math.Sqrt(varA*varB)
}
