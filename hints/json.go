package hints

// TextHints is the JSON form of TextModelConfig, field-for-field, in
// the snake_case struct-tag style HuggingFace config.json derivatives
// use (grounded on modelconfig.GptOssConfig).
type TextHints struct {
	Architecture string `json:"architecture"`
	Dtype        string `json:"dtype,omitempty"`

	RopeBase    float32 `json:"rope_base"`
	RopeScaling float32 `json:"rope_scaling,omitempty"`
	RopeEps     float32 `json:"rope_eps,omitempty"`
	NormEps     float32 `json:"norm_eps"`
	AttnNormEps float32 `json:"attn_norm_eps,omitempty"`
	FfnNormEps  float32 `json:"ffn_norm_eps,omitempty"`

	NumLayers        uint32 `json:"num_layers"`
	HiddenSize       uint32 `json:"hidden_size"`
	IntermediateSize uint32 `json:"intermediate_size"`
	VocabSize        uint32 `json:"vocab_size"`
	MaxPositions     uint32 `json:"max_positions"`
	RopeDim          uint32 `json:"rope_dim,omitempty"`

	AttentionHeads uint32 `json:"attention_heads"`
	KVHeads        uint32 `json:"kv_heads"`
	HeadDim        uint32 `json:"head_dim"`
	AttentionType  string `json:"attention_type"`
	QKVLayout      string `json:"qkv_layout"`

	MLPType      string `json:"mlp_type"`
	Activation   string `json:"activation"`
	NormType     string `json:"norm_type"`
	RopeType     string `json:"rope_type,omitempty"`

	AttentionBias      bool `json:"attention_bias,omitempty"`
	MLPBias            bool `json:"mlp_bias,omitempty"`
	NormBias           bool `json:"norm_bias,omitempty"`
	QKNorm             bool `json:"qk_norm,omitempty"`
	ParallelAttention  bool `json:"parallel_attention,omitempty"`
	TiedEmbeddings     bool `json:"tied_embeddings,omitempty"`
	PartialRope        bool `json:"partial_rope,omitempty"`
}

// VisionHints is the JSON form of VisionModelConfig.
type VisionHints struct {
	EncoderFamily    string  `json:"encoder_family"`
	ImageSize        uint32  `json:"image_size"`
	PatchSize        uint32  `json:"patch_size"`
	NumChannels      uint32  `json:"num_channels"`
	HiddenSize       uint32  `json:"hidden_size"`
	NumLayers        uint32  `json:"num_layers"`
	NumHeads         uint32  `json:"num_heads"`
	IntermediateSize uint32  `json:"intermediate_size"`
	LayerNormEps     float32 `json:"layer_norm_eps"`
	ProjectionDim    uint32  `json:"projection_dim,omitempty"`
	ProjectorType    string  `json:"projector_type,omitempty"`
	ImageTokenCount  uint32  `json:"image_token_count,omitempty"`
	ImageTokenID     uint32  `json:"image_token_id,omitempty"`
}

// ExecutionHints is the full JSON tree a hints source produces
// (spec.md §6.1), one optional sub-tree per cooperating model.
type ExecutionHints struct {
	Text    *TextHints   `json:"text,omitempty"`
	Vision  *VisionHints `json:"vision,omitempty"`
	Audio   *TextHints   `json:"audio,omitempty"`
	Code    *TextHints   `json:"code,omitempty"`
	Cortex  *TextHints   `json:"cortex,omitempty"`
	Spatial *VisionHints `json:"spatial,omitempty"`
}

var attentionTypeLabels = map[AttentionType]string{
	AttentionMHA: "mha", AttentionMQA: "mqa", AttentionGQA: "gqa", AttentionMLA: "mla",
}

var qkvLayoutLabels = map[QKVLayout]string{
	QKVSeparate: "separate", QKVFused: "fused",
}

var mlpTypeLabels = map[MLPType]string{
	MLPDense: "dense", MLPMoE: "moe", MLPGated: "gated",
}

var activationLabels = map[Activation]string{
	ActivationGELU: "gelu", ActivationSiLU: "silu", ActivationReLU: "relu",
	ActivationSwiGLU: "swiglu", ActivationGeGLU: "geglu",
}

var normTypeLabels = map[NormType]string{
	NormLayerNorm: "layernorm", NormRMSNorm: "rmsnorm",
}

var ropeTypeLabels = map[RopeType]string{
	RopeNone: "none", RopeStandard: "standard", RopeLinear: "linear",
	RopeNTK: "ntk", RopeYaRN: "yarn",
}

var encoderFamilyLabels = map[EncoderFamily]string{
	EncoderUnknown: "unknown", EncoderCLIP: "clip", EncoderSigLIP: "siglip", EncoderConvNeXt: "convnext",
}

var projectorTypeLabels = map[ProjectorType]string{
	ProjectorLinear: "linear", ProjectorMLP: "mlp", ProjectorResampler: "resampler",
}

// ToTextModelConfig lowers the JSON text-hints tree to its packed
// binary record, resolving every enum label to its wire value via
// ArchitectureFromLabel and this file's label tables.
func (t TextHints) ToTextModelConfig() TextModelConfig {
	var flags uint32
	if t.AttentionBias {
		flags |= FlagAttentionBias
	}
	if t.MLPBias {
		flags |= FlagMLPBias
	}
	if t.NormBias {
		flags |= FlagNormBias
	}
	if t.QKNorm {
		flags |= FlagQKNorm
	}
	if t.ParallelAttention {
		flags |= FlagParallelAttention
	}
	if t.TiedEmbeddings {
		flags |= FlagTiedEmbeddings
	}
	if t.PartialRope {
		flags |= FlagPartialRope
	}

	return TextModelConfig{
		RopeBase: t.RopeBase, RopeScaling: t.RopeScaling, RopeEps: t.RopeEps,
		NormEps: t.NormEps, AttnNormEps: t.AttnNormEps, FfnNormEps: t.FfnNormEps,

		NumLayers: t.NumLayers, HiddenSize: t.HiddenSize, IntermediateSize: t.IntermediateSize,
		VocabSize: t.VocabSize, MaxPositions: t.MaxPositions, RopeDim: t.RopeDim,

		AttentionHeads: t.AttentionHeads, KVHeads: t.KVHeads, HeadDim: t.HeadDim,
		AttentionType: attentionTypeFromLabel(t.AttentionType),
		QKVLayout:     qkvLayoutFromLabel(t.QKVLayout),

		Architecture: ArchitectureFromLabel(t.Architecture),
		Dtype:        dtypeFromLabel(t.Dtype),
		MLPType:      mlpTypeFromLabel(t.MLPType),
		ActivationFn: activationFromLabel(t.Activation),
		NormType:     normTypeFromLabel(t.NormType),
		RopeType:     ropeTypeFromLabel(t.RopeType),

		BoolFlags: flags,
	}
}

// ToVisionModelConfig lowers the JSON vision-hints tree to its packed
// binary record.
func (v VisionHints) ToVisionModelConfig() VisionModelConfig {
	return VisionModelConfig{
		EncoderFamily:    encoderFamilyFromLabel(v.EncoderFamily),
		ImageSize:        v.ImageSize,
		PatchSize:        v.PatchSize,
		NumChannels:      v.NumChannels,
		HiddenSize:       v.HiddenSize,
		NumLayers:        v.NumLayers,
		NumHeads:         v.NumHeads,
		IntermediateSize: v.IntermediateSize,
		LayerNormEps:     v.LayerNormEps,
		ProjectionDim:    v.ProjectionDim,
		ProjectorType:    projectorTypeFromLabel(v.ProjectorType),
		ImageTokenCount:  v.ImageTokenCount,
		ImageTokenID:     v.ImageTokenID,
	}
}

func reverseLookup[K comparable](labels map[K]string, want string, zero K) K {
	for k, v := range labels {
		if v == want {
			return k
		}
	}

	return zero
}

func attentionTypeFromLabel(s string) AttentionType { return reverseLookup(attentionTypeLabels, s, AttentionMHA) }
func qkvLayoutFromLabel(s string) QKVLayout         { return reverseLookup(qkvLayoutLabels, s, QKVSeparate) }
func mlpTypeFromLabel(s string) MLPType             { return reverseLookup(mlpTypeLabels, s, MLPDense) }
func activationFromLabel(s string) Activation       { return reverseLookup(activationLabels, s, ActivationGELU) }
func normTypeFromLabel(s string) NormType            { return reverseLookup(normTypeLabels, s, NormLayerNorm) }
func ropeTypeFromLabel(s string) RopeType            { return reverseLookup(ropeTypeLabels, s, RopeNone) }
func encoderFamilyFromLabel(s string) EncoderFamily  { return reverseLookup(encoderFamilyLabels, s, EncoderUnknown) }
func projectorTypeFromLabel(s string) ProjectorType  { return reverseLookup(projectorTypeLabels, s, ProjectorLinear) }

func dtypeFromLabel(s string) Dtype {
	switch s {
	case "f32":
		return DtypeF32
	case "f16":
		return DtypeF16
	case "bf16":
		return DtypeBF16
	case "int8":
		return DtypeInt8
	case "int4":
		return DtypeInt4
	default:
		return DtypeUnknown
	}
}
