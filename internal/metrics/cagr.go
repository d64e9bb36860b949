// Package metrics holds the pure derivation math: CAGR, growth screens,
// leaderboard ranking and the portfolio suggestion. Everything here is
// deterministic and side-effect free.
package metrics

import "math"

// CAGR computes the compound annual growth rate over the given number of
// years from a most-recent-first revenue series. NaN entries are gaps in
// the reported history and are dropped first.
//
// The result is undefined (ok=false) when:
//   - years < 1
//   - fewer than years+1 usable data points remain
//   - the beginning value is non-positive
//   - the ending value is negative (a fractional exponent of a negative
//     base has no real result; such companies are excluded rather than
//     given a wrong number)
func CAGR(series []float64, years int) (float64, bool) {
	if years < 1 {
		return 0, false
	}

	s := dropGaps(series)
	if len(s) < years+1 {
		return 0, false
	}

	ending := s[0]
	beginning := s[years]
	if beginning <= 0 {
		return 0, false
	}
	if ending < 0 {
		return 0, false
	}

	return math.Pow(ending/beginning, 1/float64(years)) - 1, true
}

// dropGaps removes NaN entries, preserving order
func dropGaps(series []float64) []float64 {
	out := make([]float64, 0, len(series))
	for _, v := range series {
		if math.IsNaN(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
