package hnf

// TensorEntry describes one converted tensor's location inside the
// finished file, per spec.md §6.5.
type TensorEntry struct {
	Name   string `json:"name"`
	Block  string `json:"block"`
	Offset uint64 `json:"offset"`
	Size   uint64 `json:"size"`
	Dtype  string `json:"dtype"`
	Shape  []int  `json:"shape"`
}

// Stats tallies tensors by quantization format tag.
type Stats struct {
	Counts map[string]int `json:"counts"`
}

// Quantization carries the default quantization tag applied to
// tensors without an explicit per-tensor hint.
type Quantization struct {
	Default string `json:"default"`
}

// Manifest is the tail JSON document, per spec.md §6.5.
type Manifest struct {
	Format       string       `json:"format"`
	Version      string       `json:"version"`
	Generator    string       `json:"generator"`
	Quantization Quantization `json:"quantization"`
	Stats        Stats        `json:"stats"`
	Tensors      []TensorEntry `json:"tensors"`
}

// NewManifest returns an empty manifest for a file produced by
// generator, tagged with the given default quantization format.
func NewManifest(generator, defaultQuant string) *Manifest {
	return &Manifest{
		Format:       "HNFv9",
		Version:      versionString(),
		Generator:    generator,
		Quantization: Quantization{Default: defaultQuant},
		Stats:        Stats{Counts: make(map[string]int)},
		Tensors:      make([]TensorEntry, 0, 64),
	}
}

func versionString() string {
	return "9.1"
}

// addTensor records one tensor entry and bumps its dtype's count.
func (m *Manifest) addTensor(e TensorEntry) {
	m.Tensors = append(m.Tensors, e)
	m.Stats.Counts[e.Dtype]++
}
