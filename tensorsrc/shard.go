// Package tensorsrc reads HuggingFace-style safetensors shards: an
// 8-byte little-endian JSON header length, that many bytes of JSON
// enumerating {name -> {dtype, shape, data_offsets:[start,end]}}, then
// raw tensor bytes (spec.md §6.1). It is generic over source dtype —
// F32/F16/BF16 are widened to []float32 — and carries no
// architecture-specific tensor-naming knowledge; that is the
// mapping package's job.
package tensorsrc

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/helios-forge/hnfconv/errs"
)

// entryMeta mirrors one value of a safetensors shard's JSON index.
// Field names follow the convention gitgoblin0426-ollama's
// convert.MetaData uses for the same wire shape.
type entryMeta struct {
	DType       string  `json:"dtype"`
	Shape       []int   `json:"shape"`
	DataOffsets []int64 `json:"data_offsets"`
}

// metadataKey is the one non-tensor entry safetensors indices may
// carry; it has no shape/offsets and is skipped during iteration.
const metadataKey = "__metadata__"

// Entry describes one tensor's location within a shard, resolved at
// Open time.
type Entry struct {
	Name  string
	Dtype string
	Shape []int
	start int64
	end   int64
}

// Shard is an opened safetensors file: its header has been parsed and
// its tensor index resolved, but tensor bytes are read lazily.
type Shard struct {
	path       string
	dataStart  int64
	entries    []Entry
	entryIndex map[string]int
}

// Open parses path's safetensors header and returns a Shard ready for
// per-tensor reads. Entries are sorted by name so iteration order is
// deterministic across runs, matching the sorted-key convention
// gitgoblin0426-ollama's ReadSafeTensors uses for the same reason.
func Open(path string) (*Shard, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tensorsrc: open shard: %w", err)
	}
	defer f.Close()

	var headerLen uint64
	if err := binary.Read(f, binary.LittleEndian, &headerLen); err != nil {
		return nil, fmt.Errorf("%w: reading header length: %w", errs.ErrMalformedShardHeader, err)
	}

	raw := make([]byte, headerLen)
	if _, err := io.ReadFull(f, raw); err != nil {
		return nil, fmt.Errorf("%w: reading header json: %w", errs.ErrMalformedShardHeader, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	var index map[string]entryMeta
	if err := dec.Decode(&index); err != nil {
		return nil, fmt.Errorf("%w: parsing header json: %w", errs.ErrMalformedShardHeader, err)
	}

	names := make([]string, 0, len(index))
	for name := range index {
		if name == metadataKey {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	s := &Shard{
		path:       path,
		dataStart:  8 + int64(headerLen),
		entries:    make([]Entry, 0, len(names)),
		entryIndex: make(map[string]int, len(names)),
	}

	for _, name := range names {
		meta := index[name]
		if len(meta.DataOffsets) != 2 {
			return nil, fmt.Errorf("%w: tensor %q has malformed data_offsets", errs.ErrMalformedShardHeader, name)
		}

		s.entryIndex[name] = len(s.entries)
		s.entries = append(s.entries, Entry{
			Name:  name,
			Dtype: meta.DType,
			Shape: meta.Shape,
			start: meta.DataOffsets[0],
			end:   meta.DataOffsets[1],
		})
	}

	return s, nil
}

// Names returns the shard's tensor names in deterministic (sorted)
// order.
func (s *Shard) Names() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}

	return names
}

// Entry returns the named tensor's metadata, or false if absent.
func (s *Shard) Entry(name string) (Entry, bool) {
	i, ok := s.entryIndex[name]
	if !ok {
		return Entry{}, false
	}

	return s.entries[i], true
}

// Read loads one tensor's raw bytes and converts them to []float32
// per its source dtype (F32/F16/BF16).
func (s *Shard) Read(name string) ([]float32, []int, error) {
	e, ok := s.Entry(name)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", errs.ErrMissingTensor, name)
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, nil, fmt.Errorf("tensorsrc: open shard: %w", err)
	}
	defer f.Close()

	n := e.end - e.start
	raw := make([]byte, n)
	if _, err := f.ReadAt(raw, s.dataStart+e.start); err != nil {
		return nil, nil, fmt.Errorf("tensorsrc: reading tensor %q: %w", name, err)
	}

	values, err := ToFloat32(e.Dtype, raw)
	if err != nil {
		return nil, nil, fmt.Errorf("tensorsrc: tensor %q: %w", name, err)
	}

	return values, e.Shape, nil
}

// Each calls fn for every tensor in the shard, in sorted name order,
// stopping at the first error fn returns.
func (s *Shard) Each(fn func(name string, values []float32, shape []int) error) error {
	for _, e := range s.entries {
		values, shape, err := s.Read(e.Name)
		if err != nil {
			return err
		}
		if err := fn(e.Name, values, shape); err != nil {
			return err
		}
	}

	return nil
}
