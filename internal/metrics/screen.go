package metrics

import (
	"math"
	"sort"

	"github.com/mkale/spyglass/internal/contracts"
)

// ConsistentGrowth reports whether every one of the most recent `years`
// year-over-year revenue growth rates is at least requiredRate.
//
// The window is the years+1 most recent entries of the series (most
// recent first). A gap (NaN) or a zero revenue figure anywhere in the
// window fails the screen: zero is treated as missing data, never as a
// valid denominator. Companies fail closed; a failed screen excludes,
// it does not error.
func ConsistentGrowth(series []float64, years int, requiredRate float64) bool {
	if years < 1 || len(series) < years+1 {
		return false
	}

	window := series[:years+1]
	for _, v := range window {
		if math.IsNaN(v) || v == 0 {
			return false
		}
	}

	for i := 0; i < years; i++ {
		growth := window[i]/window[i+1] - 1
		if growth < requiredRate {
			return false
		}
	}

	return true
}

// ConsistentGrowthTable runs the screen over the admitted universe and
// returns every passing company ranked by its window CAGR, with the
// trailing P/E carried along for display.
func ConsistentGrowthTable(universe []contracts.CompanyFacts, years int, requiredRate float64) []contracts.RankedEntry {
	entries := make([]contracts.RankedEntry, 0)

	for _, f := range universe {
		if !ConsistentGrowth(f.AnnualRevenue, years, requiredRate) {
			continue
		}

		// A passing window has no gaps, so this is the window CAGR
		cagr, ok := CAGR(f.AnnualRevenue, years)
		if !ok {
			continue
		}

		entries = append(entries, contracts.RankedEntry{
			Ticker:     f.Ticker,
			Name:       f.Name,
			CAGR:       cagr,
			TrailingPE: f.TrailingPE,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CAGR > entries[j].CAGR
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}
