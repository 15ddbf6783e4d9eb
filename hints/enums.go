package hints

// Architecture identifies a text-model family. Values are stable wire
// constants; llama3 and qwen2 keep the exact numeric mapping spec.md
// §4.4 gives as an example.
type Architecture uint32

const (
	ArchUnknown Architecture = iota
	ArchLlama
	ArchLlama2
	ArchLlama3
	ArchQwen
	ArchQwen2
	ArchMistral
	ArchMixtral
	ArchGemma
	ArchGemma2
	ArchPhi
	ArchPhi3
	ArchGPT2
	ArchGPTNeoX
	ArchFalcon
	ArchGPTOSS
)

var archByLabel = map[string]Architecture{
	"llama":    ArchLlama,
	"llama2":   ArchLlama2,
	"llama3":   ArchLlama3,
	"qwen":     ArchQwen,
	"qwen2":    ArchQwen2,
	"mistral":  ArchMistral,
	"mixtral":  ArchMixtral,
	"gemma":    ArchGemma,
	"gemma2":   ArchGemma2,
	"phi":      ArchPhi,
	"phi3":     ArchPhi3,
	"gpt2":     ArchGPT2,
	"gptneox":  ArchGPTNeoX,
	"falcon":   ArchFalcon,
	"gpt_oss":  ArchGPTOSS,
}

// ArchitectureFromLabel maps a source architecture string label (as
// found in a HuggingFace config.json's "model_type"/"architectures"
// field) to its wire enum, defaulting to ArchUnknown.
func ArchitectureFromLabel(label string) Architecture {
	if a, ok := archByLabel[label]; ok {
		return a
	}

	return ArchUnknown
}

// Dtype is a tensor storage dtype tag.
type Dtype uint32

const (
	DtypeUnknown Dtype = iota
	DtypeF32
	DtypeF16
	DtypeBF16
	DtypeInt8
	DtypeInt4
)

// AttentionType identifies the attention variant a text model uses.
type AttentionType uint32

const (
	AttentionMHA AttentionType = iota
	AttentionMQA
	AttentionGQA
	AttentionMLA
)

// QKVLayout identifies whether Q/K/V projections are separate weight
// matrices or fused into one.
type QKVLayout uint32

const (
	QKVSeparate QKVLayout = iota
	QKVFused
)

// MLPType identifies the feed-forward block's structure.
type MLPType uint32

const (
	MLPDense MLPType = iota
	MLPMoE
	MLPGated
)

// Activation identifies the feed-forward activation function.
type Activation uint32

const (
	ActivationGELU Activation = iota
	ActivationSiLU
	ActivationReLU
	ActivationSwiGLU
	ActivationGeGLU
)

// NormType identifies the normalization layer's mathematical form.
type NormType uint32

const (
	NormLayerNorm NormType = iota
	NormRMSNorm
)

// RopeType identifies the rotary-position-embedding scaling scheme.
type RopeType uint32

const (
	RopeNone RopeType = iota
	RopeStandard
	RopeLinear
	RopeNTK
	RopeYaRN
)

// Boolean-flag bitmap bits for TextModelConfig, per spec.md §4.4.
const (
	FlagAttentionBias     = 1 << 0
	FlagMLPBias           = 1 << 1
	FlagNormBias          = 1 << 2
	FlagQKNorm            = 1 << 3
	FlagParallelAttention = 1 << 4
	FlagTiedEmbeddings    = 1 << 5
	FlagPartialRope       = 1 << 6
)

// EncoderFamily identifies a vision encoder backbone family.
type EncoderFamily uint32

const (
	EncoderUnknown EncoderFamily = iota
	EncoderCLIP
	EncoderSigLIP
	EncoderConvNeXt
)

// ProjectorType identifies the vision-to-text projection module.
type ProjectorType uint32

const (
	ProjectorLinear ProjectorType = iota
	ProjectorMLP
	ProjectorResampler
)
