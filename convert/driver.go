// Package convert orchestrates the three cores into the pipeline
// spec.md §2's "Composition" paragraph describes: for each logical
// model, stream per-tensor quantized bytes into its block; build and
// write the HTF tokenizer blob; build and write the execution-hints
// JSON and packed-binary blocks; finalize.
package convert

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/helios-forge/hnfconv/errs"
	"github.com/helios-forge/hnfconv/hints"
	"github.com/helios-forge/hnfconv/hnf"
	"github.com/helios-forge/hnfconv/htf"
	"github.com/helios-forge/hnfconv/mapping"
	"github.com/helios-forge/hnfconv/tensorsrc"
)

// ModelInput is one logical model (text LLM, vision encoder, ...) to
// stream into a chosen HNF block.
type ModelInput struct {
	Slot   hnf.Slot
	Shard  *tensorsrc.Shard
	Mapper mapping.Mapper
}

// Stats counts the dispositions spec.md §7 assigns to per-tensor
// skips, returned to the caller instead of silently dropped.
type Stats struct {
	TensorsWritten     int
	TensorsSkipped     int // mapper declined the tensor
	InvalidNameSkipped int // mapper returned a name outside the vocabulary
}

// tensorJob is one kept tensor, already read and mapped, pending
// concurrent quantization.
type tensorJob struct {
	name      string
	canonical string
	shape     []int
	values    []float32
	format    string
	encoded   []byte
}

// Convert runs the full pipeline, writing an HNFv9 container to out.
// defaultQuantization resolves any mapper.HintDefault quantization
// hint and is validated up front — spec.md §7's "unknown quantization
// format string" fails at start-up, before any bytes are written.
func Convert(
	out io.WriteSeeker,
	models []ModelInput,
	domains []htf.DomainSpec,
	tree hints.ExecutionHints,
	defaultQuantization string,
	opts ...hnf.WriterOption,
) (Stats, error) {
	var stats Stats

	if _, err := resolveFormat(mapping.HintDefault, defaultQuantization); err != nil {
		return stats, err
	}

	allOpts := append([]hnf.WriterOption{hnf.WithDefaultQuantization(defaultQuantization)}, opts...)
	w, err := hnf.Create(out, allOpts...)
	if err != nil {
		return stats, fmt.Errorf("convert: creating writer: %w", err)
	}

	for _, model := range models {
		if err := streamModel(w, model, defaultQuantization, &stats); err != nil {
			return stats, err
		}
	}

	if len(domains) > 0 {
		blob, err := htf.Build(domains)
		if err != nil {
			return stats, fmt.Errorf("convert: building tokenizer bundle: %w", err)
		}
		if err := w.AppendRawBlock(hnf.SlotTokenizer, blob); err != nil {
			return stats, fmt.Errorf("convert: writing tokenizer block: %w", err)
		}
	}

	hintsJSON, err := json.Marshal(tree)
	if err != nil {
		return stats, fmt.Errorf("convert: marshaling execution hints: %w", err)
	}
	if err := w.AppendRawBlock(hnf.SlotExecHintsJSON, hintsJSON); err != nil {
		return stats, fmt.Errorf("convert: writing execution-hints json block: %w", err)
	}

	if err := w.AppendRawBlock(hnf.SlotExecHintsBinary, hints.BuildBinaryBlock(tree)); err != nil {
		return stats, fmt.Errorf("convert: writing execution-hints binary block: %w", err)
	}

	if err := w.Finalize(); err != nil {
		return stats, fmt.Errorf("convert: finalizing container: %w", err)
	}

	logrus.Infof("[convert] wrote %d tensors, skipped %d (unmapped) + %d (invalid name)",
		stats.TensorsWritten, stats.TensorsSkipped, stats.InvalidNameSkipped)

	return stats, nil
}

// streamModel maps, quantizes and appends one logical model's tensors
// into its chosen slot, finalizing the slot once all tensors are
// written. Quantization is fanned out across a worker pool sized to
// available parallelism (spec.md §5's "data-parallel worker pool")
// while writer appends stay strictly in mapper-decision order, per
// spec.md §5's "tensor writes are appended in call order".
func streamModel(w *hnf.Writer, model ModelInput, defaultQuantization string, stats *Stats) error {
	var jobs []*tensorJob

	for _, name := range model.Shard.Names() {
		m, ok := model.Mapper.Map(name)
		if !ok {
			stats.TensorsSkipped++
			logrus.Debugf("[convert] slot %s: skipping unmapped tensor %q", model.Slot, name)
			continue
		}
		if m.CanonicalName == "" {
			stats.InvalidNameSkipped++
			logrus.Warnf("[convert] slot %s: %v for source tensor %q", model.Slot, errs.ErrNameOutsideVocab, name)
			continue
		}

		format, err := resolveFormat(m.QuantizationHint, defaultQuantization)
		if err != nil {
			return err
		}

		values, shape, err := model.Shard.Read(name)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", errs.ErrMissingTensor, name, err)
		}

		jobs = append(jobs, &tensorJob{name: name, canonical: m.CanonicalName, shape: shape, values: values, format: format})
	}

	if err := encodeJobs(jobs); err != nil {
		return err
	}

	for _, j := range jobs {
		if err := w.AppendTensor(model.Slot, j.canonical, j.format, j.shape, j.encoded); err != nil {
			return fmt.Errorf("convert: appending tensor %q to slot %s: %w", j.name, model.Slot, err)
		}
		stats.TensorsWritten++
	}

	if len(jobs) > 0 {
		if err := w.FinalizeSlot(model.Slot); err != nil {
			return fmt.Errorf("convert: finalizing slot %s: %w", model.Slot, err)
		}
	}

	return nil
}

// encodeJobs quantizes every job concurrently, bounded to available
// hardware parallelism the same way hqs.Encode bounds its own
// super-block fan-out.
func encodeJobs(jobs []*tensorJob) error {
	if len(jobs) == 0 {
		return nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(jobs) {
		workers = len(jobs)
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for _, j := range jobs {
		j := j
		g.Go(func() error {
			encoded, err := encodeValues(j.values, j.format)
			if err != nil {
				return fmt.Errorf("convert: quantizing tensor %q: %w", j.name, err)
			}
			j.encoded = encoded

			return nil
		})
	}

	return g.Wait()
}
