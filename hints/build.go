package hints

// Enabled-feature bitmap bits, one per modality present in the block.
const (
	featureHasText = 1 << iota
	featureHasVision
	featureHasAudio
	featureHasCode
	featureHasCortex
	featureHasSpatial
)

// BuildBinaryBlock lowers h into the packed-offset alternative to the
// JSON hints tree, per spec.md §4.4: a 64-byte header followed by one
// fixed-size config record per present modality, the whole block
// padded to 32 bytes. Audio and cortex models reuse TextModelConfig's
// layout (both are text-token sequence models at the hyperparameter
// level this block cares about); spatial reuses VisionModelConfig.
func BuildBinaryBlock(h ExecutionHints) []byte {
	hdr := NewHeader()
	var body []byte

	place := func(modality Modality, feature uint32, encoded []byte) {
		hdr.Offsets[modality] = HeaderSize + uint32(len(body))
		hdr.Counts[modality] = 1
		hdr.EnabledFeatures |= feature
		body = append(body, encoded...)
	}

	if h.Text != nil {
		place(ModalityText, featureHasText, h.Text.ToTextModelConfig().Bytes())
	}
	if h.Vision != nil {
		place(ModalityVision, featureHasVision, h.Vision.ToVisionModelConfig().Bytes())
	}
	if h.Audio != nil {
		place(ModalityAudio, featureHasAudio, h.Audio.ToTextModelConfig().Bytes())
	}
	if h.Code != nil {
		place(ModalityCode, featureHasCode, h.Code.ToTextModelConfig().Bytes())
	}
	if h.Cortex != nil {
		place(ModalityCortex, featureHasCortex, h.Cortex.ToTextModelConfig().Bytes())
	}
	if h.Spatial != nil {
		place(ModalitySpatial, featureHasSpatial, h.Spatial.ToVisionModelConfig().Bytes())
	}

	out := append(hdr.Bytes(), body...)
	if pad := padLen(len(out), 32); pad > 0 {
		out = append(out, make([]byte, pad)...)
	}

	return out
}

func padLen(n, align int) int {
	rem := n % align
	if rem == 0 {
		return 0
	}

	return align - rem
}
