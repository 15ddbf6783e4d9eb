package hnf

import (
	"encoding/json"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/helios-forge/hnfconv/errs"
	"github.com/helios-forge/hnfconv/internal/options"
	"github.com/helios-forge/hnfconv/internal/pool"
	"github.com/helios-forge/hnfconv/internal/xhash"
)

// WriterOption configures a Writer at construction time.
type WriterOption = options.Option[*Writer]

// WithGenerator sets the manifest's generator tag. Defaults to
// "hnfconv".
func WithGenerator(name string) WriterOption {
	return options.NoError(func(w *Writer) {
		w.generator = name
	})
}

// WithDefaultQuantization sets the manifest's quantization.default tag.
// Defaults to "HQ4K".
func WithDefaultQuantization(tag string) WriterOption {
	return options.NoError(func(w *Writer) {
		w.defaultQuant = tag
	})
}

type slotState struct {
	started     bool
	finalized   bool
	offset      int64
	runningSize int64
	hasher      *xhash.Digest
}

// Writer produces a single HNFv9 file from a sequence of per-slot
// tensor/raw-block writes, finalized into a header, block table and
// tail manifest. Single-writer, single-threaded: concurrent calls on
// the same instance are undefined, per spec.md §5.
type Writer struct {
	out    io.WriteSeeker
	cursor int64

	table    BlockTable
	slots    [NumSlots]slotState
	manifest *Manifest

	generator    string
	defaultQuant string

	finalized bool
}

// Create opens a Writer over out, writing the zero-filled header and
// block-table placeholders and positioning the cursor at
// PayloadStart, per spec.md §4.2 step 1.
func Create(out io.WriteSeeker, opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		out:          out,
		table:        NewBlockTable(),
		generator:    "hnfconv",
		defaultQuant: "HQ4K",
	}

	if err := options.Apply(w, opts...); err != nil {
		return nil, err
	}

	w.manifest = NewManifest(w.generator, w.defaultQuant)

	placeholder := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(placeholder)
	if _, err := out.Write(placeholder.ExtendOrGrow(PayloadStart)); err != nil {
		return nil, fmt.Errorf("hnf: writing header/table placeholder: %w", err)
	}
	w.cursor = PayloadStart

	return w, nil
}

func (w *Writer) padToAlignment() error {
	rem := w.cursor % Alignment
	if rem == 0 {
		return nil
	}

	pad := make([]byte, Alignment-rem)
	if _, err := w.out.Write(pad); err != nil {
		return fmt.Errorf("hnf: alignment padding: %w", err)
	}
	w.cursor += int64(len(pad))

	return nil
}

func (w *Writer) checkSlotWritable(s Slot) error {
	if w.finalized {
		return errs.ErrWriterFinalized
	}
	if !s.Valid() {
		return errs.ErrInvalidSlot
	}
	if w.slots[s].finalized {
		return errs.ErrSlotAlreadyFinal
	}
	for i := Slot(0); i < s; i++ {
		if w.slots[i].started && !w.slots[i].finalized {
			return errs.ErrSlotOutOfOrder
		}
	}
	for i := s + 1; i < NumSlots; i++ {
		if w.slots[i].started {
			return errs.ErrSlotOutOfOrder
		}
	}

	return nil
}

// AppendTensor writes one tensor's quantized bytes into slot s,
// recording a manifest entry for it. Per spec.md §4.2 step 2: the
// first write to a slot pads to the next 32-byte boundary and starts
// that slot's incremental content hasher.
func (w *Writer) AppendTensor(s Slot, name, dtype string, shape []int, data []byte) error {
	if err := w.checkSlotWritable(s); err != nil {
		return err
	}

	st := &w.slots[s]
	if !st.started {
		if err := w.padToAlignment(); err != nil {
			return err
		}
		st.started = true
		st.offset = w.cursor
		st.hasher = xhash.NewDigest()
	}

	if _, err := w.out.Write(data); err != nil {
		return fmt.Errorf("hnf: writing tensor %q to slot %s: %w", name, s, err)
	}
	if _, err := st.hasher.Write(data); err != nil {
		return fmt.Errorf("hnf: hashing tensor %q: %w", name, err)
	}

	entryOffset := st.offset + st.runningSize
	st.runningSize += int64(len(data))
	w.cursor += int64(len(data))

	w.manifest.addTensor(TensorEntry{
		Name:   name,
		Block:  s.String(),
		Offset: uint64(entryOffset),
		Size:   uint64(len(data)),
		Dtype:  dtype,
		Shape:  append([]int(nil), shape...),
	})

	return nil
}

// FinalizeSlot commits the slot's running content hash into the block
// table and forbids further writes to it, per spec.md §4.2 step 3.
func (w *Writer) FinalizeSlot(s Slot) error {
	if !s.Valid() {
		return errs.ErrInvalidSlot
	}

	st := &w.slots[s]
	if st.finalized {
		return errs.ErrSlotAlreadyFinal
	}
	if !st.started {
		return errs.ErrSlotEmpty
	}

	if ceiling, ok := sizeCeiling(s); ok && st.runningSize > ceiling {
		return fmt.Errorf("hnf: slot %s: %w", s, errs.ErrSizeCeilingExceeded)
	}

	w.table[s] = BlockEntry{
		BlockID:     uint32(s),
		BlockType:   uint32(s),
		Offset:      uint64(st.offset),
		Size:        uint64(st.runningSize),
		ContentHash: st.hasher.Sum64(),
	}
	st.finalized = true

	return nil
}

// AppendRawBlock writes data as a single opaque payload into slot s
// and implicitly finalizes it, per spec.md §4.2 step 4.
func (w *Writer) AppendRawBlock(s Slot, data []byte) error {
	if err := w.checkSlotWritable(s); err != nil {
		return err
	}

	if err := w.padToAlignment(); err != nil {
		return err
	}

	st := &w.slots[s]
	st.started = true
	st.offset = w.cursor
	st.hasher = xhash.NewDigest()

	if _, err := w.out.Write(data); err != nil {
		return fmt.Errorf("hnf: writing raw block to slot %s: %w", s, err)
	}
	if _, err := st.hasher.Write(data); err != nil {
		return fmt.Errorf("hnf: hashing raw block: %w", err)
	}

	st.runningSize = int64(len(data))
	w.cursor += int64(len(data))

	return w.FinalizeSlot(s)
}

// Finalize pads to 32 bytes, writes the JSON manifest, computes the
// header/block-table checksum, and rewrites the header and block
// table in place, per spec.md §4.2 step 5.
func (w *Writer) Finalize() error {
	if w.finalized {
		return errs.ErrWriterFinalized
	}

	if err := w.padToAlignment(); err != nil {
		return err
	}

	manifestBytes, err := json.Marshal(w.manifest)
	if err != nil {
		return fmt.Errorf("hnf: marshaling manifest: %w", err)
	}

	manifestOffset := w.cursor
	if _, err := w.out.Write(manifestBytes); err != nil {
		return fmt.Errorf("hnf: writing manifest: %w", err)
	}
	w.cursor += int64(len(manifestBytes))

	header := NewHeader()
	header.ManifestOffset = uint64(manifestOffset)
	header.ManifestSize = uint64(len(manifestBytes))
	header.TotalFileSize = uint64(w.cursor)
	header.FeatureFlags = w.table.FeatureFlags()

	prefixBuf := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(prefixBuf)
	prefix := prefixBuf.ExtendOrGrow(PayloadStart)
	header.PutBytes(prefix[:HeaderSize])
	w.table.PutBytes(prefix[HeaderSize:])
	header.Checksum = crc32.ChecksumIEEE(prefix)
	header.PutBytes(prefix[:HeaderSize]) // re-embed the checksum field

	if _, err := w.out.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("hnf: seeking to rewrite header: %w", err)
	}
	if _, err := w.out.Write(prefix); err != nil {
		return fmt.Errorf("hnf: rewriting header/table: %w", err)
	}

	if flusher, ok := w.out.(interface{ Sync() error }); ok {
		if err := flusher.Sync(); err != nil {
			return fmt.Errorf("hnf: flushing output: %w", err)
		}
	}

	w.finalized = true

	return nil
}
