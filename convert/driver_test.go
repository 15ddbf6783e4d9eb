package convert

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/helios-forge/hnfconv/hints"
	"github.com/helios-forge/hnfconv/hnf"
	"github.com/helios-forge/hnfconv/htf"
	"github.com/helios-forge/hnfconv/mapping"
	"github.com/helios-forge/hnfconv/tensorsrc"
)

// writeFixtureShard builds a minimal single-tensor F32 safetensors shard
// for driver tests, using the same wire shape tensorsrc's own fixture
// helper builds.
func writeFixtureShard(t *testing.T, dir string) string {
	t.Helper()

	type meta struct {
		DType       string  `json:"dtype"`
		Shape       []int   `json:"shape"`
		DataOffsets []int64 `json:"data_offsets"`
	}

	values := make([]float32, 512)
	for i := range values {
		values[i] = float32(i%7) - 3
	}
	payload := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(payload[i*4:i*4+4], math.Float32bits(v))
	}

	index := map[string]meta{
		"model.embed.weight": {DType: "F32", Shape: []int{512}, DataOffsets: []int64{0, int64(len(payload))}},
	}
	headerJSON, err := json.Marshal(index)
	require.NoError(t, err)

	path := filepath.Join(dir, "model.safetensors")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, binary.Write(f, binary.LittleEndian, uint64(len(headerJSON))))
	_, err = f.Write(headerJSON)
	require.NoError(t, err)
	_, err = f.Write(payload)
	require.NoError(t, err)

	return path
}

func TestConvert_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	shardPath := writeFixtureShard(t, dir)

	shard, err := tensorsrc.Open(shardPath)
	require.NoError(t, err)

	models := []ModelInput{
		{Slot: hnf.SlotTextWeights, Shard: shard, Mapper: mapping.NewDefaultMapper("generic", 1, 100, 512)},
	}

	textPayload := htf.TextDomainConfig{VocabSize: 100, Encoding: htf.EncodingBPE, ByteLevel: true}.Bytes()
	domains := []htf.DomainSpec{
		{Type: htf.DomainText, IsPrimary: true, Payload: textPayload, VocabSize: 100, HasVocab: true},
	}

	tree := hints.ExecutionHints{
		Text: &hints.TextHints{Architecture: "generic", NumLayers: 1, HiddenSize: 512, VocabSize: 100},
	}

	outPath := filepath.Join(dir, "out.hnf")
	out, err := os.Create(outPath)
	require.NoError(t, err)
	defer out.Close()

	stats, err := Convert(out, models, domains, tree, "HQ4K")
	require.NoError(t, err)
	require.Equal(t, 1, stats.TensorsWritten)
	require.Zero(t, stats.TensorsSkipped)

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)

	header, err := hnf.ParseHeader(raw[:hnf.HeaderSize])
	require.NoError(t, err)
	require.Equal(t, uint64(len(raw)), header.TotalFileSize)

	table, err := hnf.ParseBlockTable(raw[hnf.HeaderSize : hnf.HeaderSize+hnf.BlockTableSize])
	require.NoError(t, err)
	require.False(t, table[hnf.SlotTextWeights].Empty())
	require.False(t, table[hnf.SlotTokenizer].Empty())
	require.False(t, table[hnf.SlotExecHintsJSON].Empty())
	require.False(t, table[hnf.SlotExecHintsBinary].Empty())
	require.True(t, table[hnf.SlotVision].Empty())
}

func TestConvert_UnknownDefaultQuantizationFailsAtStartup(t *testing.T) {
	dir := t.TempDir()
	out, err := os.Create(filepath.Join(dir, "out.hnf"))
	require.NoError(t, err)
	defer out.Close()

	_, err = Convert(out, nil, nil, hints.ExecutionHints{}, "NOT_A_FORMAT")
	require.Error(t, err)
}

func TestConvert_SkipsUnmappedTensors(t *testing.T) {
	dir := t.TempDir()
	shardPath := writeFixtureShard(t, dir)

	shard, err := tensorsrc.Open(shardPath)
	require.NoError(t, err)

	models := []ModelInput{
		{Slot: hnf.SlotTextWeights, Shard: shard, Mapper: skipAllMapper{}},
	}

	out, err := os.Create(filepath.Join(dir, "out.hnf"))
	require.NoError(t, err)
	defer out.Close()

	stats, err := Convert(out, models, nil, hints.ExecutionHints{}, "HQ4K")
	require.NoError(t, err)
	require.Equal(t, 0, stats.TensorsWritten)
	require.Equal(t, 1, stats.TensorsSkipped)
}

type skipAllMapper struct{}

func (skipAllMapper) Name() string                              { return "skip-all" }
func (skipAllMapper) Map(string) (mapping.Mapping, bool)         { return mapping.Mapping{}, false }
func (skipAllMapper) NumLayers() int                             { return 0 }
func (skipAllMapper) VocabSize() int                             { return 0 }
func (skipAllMapper) HiddenSize() int                            { return 0 }
