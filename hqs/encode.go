package hqs

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/helios-forge/hnfconv/errs"
	"github.com/helios-forge/hnfconv/internal/pool"
)

// Encode quantizes data into a sequence of format f super-block
// records. precise selects the MSE-optimizing grid search per group;
// otherwise the min/max fast path is used. NaN/Inf elements are
// replaced by zero and a source whose length isn't a multiple of 256
// is zero-padded, per spec.md §3.1/§4.1.
//
// Encode is a pure function: identical inputs always produce identical
// output bytes, regardless of how the underlying worker pool schedules
// the per-super-block work (spec.md §5, §8 property 1).
func Encode(data []float32, f Format, precise bool) ([]byte, error) {
	if !f.valid() {
		return nil, errs.ErrInvalidFormat
	}

	nblocks := blockCount(len(data))
	recordSize := f.RecordSize()

	scratch := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(scratch)
	staged := scratch.ExtendOrGrow(nblocks * recordSize)

	if err := encodeBlocks(data, f, precise, staged, recordSize); err != nil {
		return nil, err
	}

	result := make([]byte, len(staged))
	copy(result, staged)

	return result, nil
}

// encodeBlocks fans super-block work out across a worker pool sized to
// available parallelism, gathering results in source order before
// returning (spec.md §5 scheduling model).
func encodeBlocks(data []float32, f Format, precise bool, out []byte, recordSize int) error {
	nblocks := blockCount(len(data))
	if nblocks == 0 {
		return nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > nblocks {
		workers = nblocks
	}
	if workers < 1 {
		workers = 1
	}

	var g errgroup.Group
	chunk := (nblocks + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= nblocks {
			break
		}
		if end > nblocks {
			end = nblocks
		}

		g.Go(func() error {
			for b := start; b < end; b++ {
				encodeOneBlock(data, b, f, precise, out[b*recordSize:(b+1)*recordSize])
			}

			return nil
		})
	}

	return g.Wait()
}

func encodeOneBlock(data []float32, blockIdx int, f Format, precise bool, record []byte) {
	var header Header
	var allIdx [BlockElements]int
	qMax := f.QMax()

	base := blockIdx * BlockElements
	for gi := 0; gi < GroupsPerBlock; gi++ {
		var group [GroupSize]float32
		for j := 0; j < GroupSize; j++ {
			src := base + gi*GroupSize + j
			if src < len(data) {
				group[j] = sanitize(data[src])
			}
			// else zero-padded, the group element is already 0.
		}

		var desc GroupDescriptor
		if precise {
			desc = preciseDescriptor(group, qMax)
		} else {
			desc = fastPathDescriptor(group)
		}
		header[gi] = desc

		idx := quantizeGroup(group, desc, qMax)
		for j := 0; j < GroupSize; j++ {
			allIdx[gi*GroupSize+j] = idx[j]
		}
	}

	header.PutBytes(record[:HeaderSize])
	payload := record[HeaderSize:]
	switch f {
	case HQ4K:
		packHQ4K(allIdx, payload)
	case HQ5K:
		packHQ5K(allIdx, payload)
	}
}
