package hnf

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/helios-forge/hnfconv/errs"
	"github.com/helios-forge/hnfconv/hqs"
	"github.com/helios-forge/hnfconv/internal/xhash"
)

// ScenarioS3: a container with only block 0 (one HQ5K tensor, shape
// [4, 256]), block 0x9 (a stand-in tokenizer blob) and block 0xA (the
// empty JSON hints document), per spec.md §8.
func TestWriter_ScenarioS3(t *testing.T) {
	f := &memFile{}
	w, err := Create(f)
	require.NoError(t, err)

	data := make([]float32, 4*256)
	for i := range data {
		data[i] = float32(i%17) - 8
	}
	encoded, err := hqs.Encode(data, hqs.HQ5K, false)
	require.NoError(t, err)
	require.Len(t, encoded, 4*288)

	require.NoError(t, w.AppendTensor(SlotTextWeights, "layer.0.weight", "HQ5K", []int{4, 256}, encoded))
	require.NoError(t, w.FinalizeSlot(SlotTextWeights))

	require.NoError(t, w.AppendRawBlock(SlotTokenizer, []byte("stand-in tokenizer blob")))
	require.NoError(t, w.AppendRawBlock(SlotExecHintsJSON, []byte("{}")))

	require.NoError(t, w.Finalize())

	fileBytes := f.Bytes()
	header, err := ParseHeader(fileBytes[:HeaderSize])
	require.NoError(t, err)
	require.Equal(t, uint64(len(fileBytes)), header.TotalFileSize)
	require.Equal(t, header.ManifestOffset+header.ManifestSize, header.TotalFileSize)
	require.Zero(t, header.ManifestOffset%Alignment)

	table, err := ParseBlockTable(fileBytes[HeaderSize:PayloadStart])
	require.NoError(t, err)
	require.EqualValues(t, 576, table[SlotTextWeights].Offset)
	require.EqualValues(t, 4*288, table[SlotTextWeights].Size)

	require.NotZero(t, header.FeatureFlags&(1<<bitTokenizer))
	require.Zero(t, header.FeatureFlags&(1<<bitVision))

	var manifest Manifest
	manifestBytes := fileBytes[header.ManifestOffset : header.ManifestOffset+header.ManifestSize]
	require.NoError(t, json.Unmarshal(manifestBytes, &manifest))
	require.Equal(t, "HNFv9", manifest.Format)
	require.Len(t, manifest.Tensors, 1)
	require.Equal(t, "text_weights", manifest.Tensors[0].Block)
}

// ScenarioS6: block 0x5 at exactly the 20 MiB personality ceiling is
// accepted; one byte over is rejected.
func TestWriter_ScenarioS6_SizeCeiling(t *testing.T) {
	f := &memFile{}
	w, err := Create(f)
	require.NoError(t, err)

	require.NoError(t, w.AppendRawBlock(SlotPersonality, make([]byte, MaxPersonalityBytes)))
	require.NoError(t, w.AppendRawBlock(SlotMemory, make([]byte, MaxMemoryBytes)))
	require.NoError(t, w.Finalize())
}

func TestWriter_ScenarioS6_SizeCeilingExceeded(t *testing.T) {
	f := &memFile{}
	w, err := Create(f)
	require.NoError(t, err)

	err = w.AppendRawBlock(SlotPersonality, make([]byte, MaxPersonalityBytes+1))
	require.ErrorIs(t, err, errs.ErrSizeCeilingExceeded)
}

func TestWriter_SlotsOutOfOrder(t *testing.T) {
	f := &memFile{}
	w, err := Create(f)
	require.NoError(t, err)

	require.NoError(t, w.AppendRawBlock(SlotVision, []byte("vision bytes")))
	err = w.AppendRawBlock(SlotTextWeights, []byte("too late"))
	require.ErrorIs(t, err, errs.ErrSlotOutOfOrder)
}

func TestWriter_InvalidSlot(t *testing.T) {
	f := &memFile{}
	w, err := Create(f)
	require.NoError(t, err)

	err = w.AppendRawBlock(Slot(200), []byte("x"))
	require.ErrorIs(t, err, errs.ErrInvalidSlot)
}

func TestWriter_WriteAfterFinalize(t *testing.T) {
	f := &memFile{}
	w, err := Create(f)
	require.NoError(t, err)
	require.NoError(t, w.Finalize())

	err = w.AppendRawBlock(SlotVision, []byte("x"))
	require.ErrorIs(t, err, errs.ErrWriterFinalized)

	err = w.Finalize()
	require.ErrorIs(t, err, errs.ErrWriterFinalized)
}

// ContentHashCoherence: the stored per-slot hash must equal the hash
// over the exact bytes written for that slot, per spec.md §8 property 8.
func TestWriter_ContentHashCoherence(t *testing.T) {
	f := &memFile{}
	w, err := Create(f)
	require.NoError(t, err)

	payload := []byte("deterministic tool-call schema bytes")
	require.NoError(t, w.AppendRawBlock(SlotTools, payload))
	require.NoError(t, w.Finalize())

	fileBytes := f.Bytes()
	table, err := ParseBlockTable(fileBytes[HeaderSize:PayloadStart])
	require.NoError(t, err)

	entry := table[SlotTools]
	got := fileBytes[entry.Offset : entry.Offset+entry.Size]
	require.True(t, bytes.Equal(payload, got))
	require.Equal(t, xhash.Sum64(payload), entry.ContentHash)
}

func TestWriter_BlockTableInvariants(t *testing.T) {
	f := &memFile{}
	w, err := Create(f)
	require.NoError(t, err)

	require.NoError(t, w.AppendRawBlock(SlotVision, make([]byte, 10)))
	require.NoError(t, w.AppendRawBlock(SlotAudio, make([]byte, 20)))
	require.NoError(t, w.Finalize())

	fileBytes := f.Bytes()
	table, err := ParseBlockTable(fileBytes[HeaderSize:PayloadStart])
	require.NoError(t, err)

	var prevEnd uint64
	for i, e := range table {
		require.EqualValues(t, i, e.BlockID)
		if e.Empty() {
			continue
		}
		require.Zero(t, e.Offset%Alignment)
		require.GreaterOrEqual(t, e.Offset, prevEnd)
		prevEnd = e.Offset + e.Size
	}
}
