package metrics

import (
	"sort"

	"github.com/mkale/spyglass/internal/contracts"
)

// GARPCandidate is a company whose multi-year revenue CAGR is defined and
// already at or above the growth threshold.
type GARPCandidate struct {
	Facts contracts.CompanyFacts
	CAGR  float64
}

// GrowthCandidates selects the companies whose multi-year revenue CAGR is
// defined and at or above minGrowth. Companies without enough history are
// simply not candidates; they stay eligible for the other tables.
func GrowthCandidates(universe []contracts.CompanyFacts, years int, minGrowth float64) []GARPCandidate {
	candidates := make([]GARPCandidate, 0, len(universe))
	for _, f := range universe {
		cagr, ok := CAGR(f.AnnualRevenue, years)
		if !ok || cagr < minGrowth {
			continue
		}
		candidates = append(candidates, GARPCandidate{Facts: f, CAGR: cagr})
	}
	return candidates
}

// GARPRatio relates growth to price: CAGR divided by trailing P/E.
// Without a positive P/E the ratio is exactly zero - the company ranks
// last instead of being excluded.
func GARPRatio(cagr, trailingPE float64) float64 {
	if trailingPE > 0 {
		return cagr / trailingPE
	}
	return 0
}

// GARPLeaderboard ranks growth candidates by their growth/value ratio,
// descending, and returns the top entries.
func GARPLeaderboard(candidates []GARPCandidate) []contracts.RankedEntry {
	type scored struct {
		candidate GARPCandidate
		ratio     float64
	}

	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, scored{
			candidate: c,
			ratio:     GARPRatio(c.CAGR, c.Facts.TrailingPE),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ratio > ranked[j].ratio
	})

	entries := make([]contracts.RankedEntry, 0, TopN)
	for i := 0; i < len(ranked) && i < TopN; i++ {
		c := ranked[i]
		entries = append(entries, contracts.RankedEntry{
			Rank:       i + 1,
			Ticker:     c.candidate.Facts.Ticker,
			Name:       c.candidate.Facts.Name,
			CAGR:       c.candidate.CAGR,
			TrailingPE: c.candidate.Facts.TrailingPE,
			GARPRatio:  c.ratio,
		})
	}

	return entries
}
