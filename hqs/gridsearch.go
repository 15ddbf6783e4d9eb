package hqs

import "github.com/helios-forge/hnfconv/internal/f16"

// fastPathDescriptor computes the min/max group descriptor: round-trip
// the group's raw min through half precision for Min, and round-trip
// (and epsilon-floor) the raw range for Scale. spec.md §4.1 "Fast path".
func fastPathDescriptor(group [GroupSize]float32) GroupDescriptor {
	rawMin, rawMax := group[0], group[0]
	for _, v := range group[1:] {
		if v < rawMin {
			rawMin = v
		}
		if v > rawMax {
			rawMax = v
		}
	}

	return GroupDescriptor{
		Min:   f16.RoundTrip(rawMin),
		Scale: roundedScale(rawMax - rawMin),
	}
}

// quantizeGroup encodes one group under descriptor g, returning the
// q_max-clamped unsigned index for each element using round-to-nearest.
func quantizeGroup(group [GroupSize]float32, g GroupDescriptor, qMax int) [GroupSize]int {
	var out [GroupSize]int
	inv := float32(qMax) / g.Scale
	for i, v := range group {
		q := int((v-g.Min)*inv + 0.5)
		if q < 0 {
			q = 0
		}
		if q > qMax {
			q = qMax
		}
		out[i] = q
	}

	return out
}

// groupMSE returns the mean squared reconstruction error of group under
// descriptor g at the given bit width.
func groupMSE(group [GroupSize]float32, g GroupDescriptor, qMax int) float64 {
	idx := quantizeGroup(group, g, qMax)
	var sum float64
	for i, v := range group {
		recon := g.Min + (float32(idx[i])/float32(qMax))*g.Scale
		d := float64(v - recon)
		sum += d * d
	}

	return sum / float64(GroupSize)
}

// preciseDescriptor runs the ±4-ULP, 9x9 grid search around the
// fast-path descriptor and returns the candidate with the lowest group
// MSE, first-wins on ties. spec.md §4.1 "Precise path" guarantees this
// is never worse than the fast path, since the fast-path candidate
// itself (offset 0,0) is always a member of the grid.
func preciseDescriptor(group [GroupSize]float32, qMax int) GroupDescriptor {
	base := fastPathDescriptor(group)
	minBits := f16.Bits(base.Min)
	scaleBits := f16.Bits(base.Scale)

	best := base
	bestMSE := groupMSE(group, base, qMax)

	for dMin := -4; dMin <= 4; dMin++ {
		candMinBits := int32(minBits) + int32(dMin)
		if candMinBits < 0 {
			continue // spec.md: "min bits >= 0"
		}

		for dScale := -4; dScale <= 4; dScale++ {
			if dMin == 0 && dScale == 0 {
				continue // already evaluated as the base candidate
			}

			candScaleBits := int32(scaleBits) + int32(dScale)
			if candScaleBits <= 0 {
				continue // spec.md: "scale bits > 0"
			}

			cand := GroupDescriptor{
				Min:   f16.Neighbor(minBits, dMin),
				Scale: f16.Neighbor(scaleBits, dScale),
			}
			if cand.Scale < epsilon {
				continue // spec.md: "scale >= epsilon"
			}

			mse := groupMSE(group, cand, qMax)
			if mse < bestMSE {
				bestMSE = mse
				best = cand
			}
		}
	}

	return best
}
