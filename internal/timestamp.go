package internal

import "math"

// ReconstructResult carries per-sample timestamps and the number of
// monotonicity clamps that were applied while producing them.
type ReconstructResult struct {
	Timestamps []float64
	Violations int
}

// Reconstruct assigns a Unix timestamp to each of n samples from the sparse
// anchors embedded in the stream. Between anchors, samples advance by the
// nominal interval. When an anchor disagrees with the extrapolated time by
// more than tolerance, the sequence resynchronizes to the anchor: a locally
// accurate timestamp beats a globally consistent but stale one. Any local
// decrease is clamped to the previous timestamp plus one interval and counted
// as a monotonicity violation, so the output is always non-decreasing.
//
// fallbackStart seeds the sequence when the stream carries no anchors at all
// (zero is acceptable; relative spacing is still correct).
func Reconstruct(n int, anchors []Anchor, interval, tolerance, fallbackStart float64) ReconstructResult {
	res := ReconstructResult{Timestamps: make([]float64, n)}
	if n == 0 {
		return res
	}

	if len(anchors) == 0 {
		for i := range res.Timestamps {
			res.Timestamps[i] = fallbackStart + float64(i)*interval
		}
		return res
	}

	// Samples before the first anchor extrapolate backwards from it.
	first := anchors[0]
	start := first.Time - float64(min(first.Index, n-1))*interval

	next := 0
	var prev float64
	for i := 0; i < n; i++ {
		var t float64
		switch {
		case i == 0:
			t = start
		default:
			t = prev + interval
		}

		for next < len(anchors) && anchors[next].Index == i {
			a := anchors[next]
			next++
			if i == 0 || math.Abs(a.Time-t) > tolerance {
				t = a.Time
			}
		}

		if i > 0 && t < prev {
			t = prev + interval
			res.Violations++
		}
		res.Timestamps[i] = t
		prev = t
	}
	return res
}
