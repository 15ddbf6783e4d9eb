// Package mapping defines the architecture mapper capability set
// spec.md §6.1/§9 describes: given an original tensor name, decide
// whether to keep it and, if so, what canonical name and quantization
// hint it gets. The source couples this behind per-architecture
// renaming tables (Llama/Qwen/Phi/CLIP); those tables are an explicit
// Non-goal (spec.md §1). This package carries only the shared
// interface and one architecture-agnostic default.
package mapping

// QuantizationHint names one of the storage encodings a mapped tensor
// may request, per spec.md §6.1.
type QuantizationHint string

const (
	HintFP16    QuantizationHint = "FP16"
	HintHQ4K    QuantizationHint = "HQ4K"
	HintHQ5K    QuantizationHint = "HQ5K"
	HintDefault QuantizationHint = "default"
)

// Mapping is what a Mapper returns for one kept tensor.
type Mapping struct {
	CanonicalName    string
	QuantizationHint QuantizationHint
	LayerIndex       int
	HasLayerIndex    bool
}

// Mapper is the architecture mapper capability set: spec.md §9 models
// the source's per-architecture renamer tables as "a variant set or an
// interface with value-returning methods; there is no mutable state to
// share" — this is that interface. Implementations hold no state
// beyond what NewXxxMapper captures at construction.
type Mapper interface {
	// Name identifies the architecture this mapper targets (e.g. "llama3").
	Name() string

	// Map decides what becomes of an original tensor name: ok is false
	// to skip the tensor entirely (spec.md §7's "missing tensor" and
	// "invalid vocabulary name" skip dispositions are orchestration-level
	// reactions to what Map and the mapped-name check decide).
	Map(tensorName string) (m Mapping, ok bool)

	// NumLayers, VocabSize and HiddenSize report the model dimensions
	// the caller needs to build this architecture's execution-hints
	// JSON sub-tree (spec.md §6.1's "Hints source" collaborator); the
	// hints tree itself is built and passed into Convert separately.
	NumLayers() int
	VocabSize() int
	HiddenSize() int
}

// DefaultMapper passes every tensor name through unchanged with
// QuantizationHint = default, requesting no renaming at all. It exists
// so the conversion pipeline is exercisable end-to-end without any
// architecture-specific table; real deployments supply their own
// Mapper.
type DefaultMapper struct {
	ArchName              string
	Layers, Vocab, Hidden int
}

var _ Mapper = DefaultMapper{}

// NewDefaultMapper returns a DefaultMapper reporting the given model
// dimensions, used verbatim by Hints-tree callers and left blank (0)
// when unknown.
func NewDefaultMapper(archName string, layers, vocab, hidden int) DefaultMapper {
	return DefaultMapper{ArchName: archName, Layers: layers, Vocab: vocab, Hidden: hidden}
}

func (m DefaultMapper) Name() string { return m.ArchName }

func (m DefaultMapper) Map(tensorName string) (Mapping, bool) {
	return Mapping{CanonicalName: tensorName, QuantizationHint: HintDefault}, true
}

func (m DefaultMapper) NumLayers() int  { return m.Layers }
func (m DefaultMapper) VocabSize() int  { return m.Vocab }
func (m DefaultMapper) HiddenSize() int { return m.Hidden }
