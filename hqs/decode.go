package hqs

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/helios-forge/hnfconv/errs"
)

// Decode reconstructs wantedLen float32 values from data, which must
// hold whole format f records. A byte length that is not a multiple of
// the record size is truncated at the last whole record, per spec.md
// §4.1 failure semantics. Empty input decodes to wantedLen zeros.
func Decode(data []byte, f Format, wantedLen int) ([]float32, error) {
	if !f.valid() {
		return nil, errs.ErrInvalidFormat
	}
	if wantedLen < 0 {
		wantedLen = 0
	}

	recordSize := f.RecordSize()
	nblocks := len(data) / recordSize
	data = data[:nblocks*recordSize]

	out := make([]float32, wantedLen)
	if nblocks == 0 || wantedLen == 0 {
		return out, nil
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
	qMax := f.QMax()

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
				decodeOneBlock(data[b*recordSize:(b+1)*recordSize], f, qMax, b, out)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func decodeOneBlock(record []byte, f Format, qMax, blockIdx int, out []float32) {
	header := ParseHeader(record[:HeaderSize])
	payload := record[HeaderSize:]

	var idx [BlockElements]int
	switch f {
	case HQ4K:
		idx = unpackHQ4K(payload)
	case HQ5K:
		idx = unpackHQ5K(payload)
	}

	base := blockIdx * BlockElements
	for gi := 0; gi < GroupsPerBlock; gi++ {
		g := header[gi]
		if g.Scale < epsilon {
			g.Scale = epsilon
		}
		for j := 0; j < GroupSize; j++ {
			dst := base + gi*GroupSize + j
			if dst >= len(out) {
				return
			}
			q := idx[gi*GroupSize+j]
			out[dst] = g.Min + (float32(q)/float32(qMax))*g.Scale
		}
	}
}
