package metrics

import (
	"sort"

	"github.com/mkale/spyglass/internal/contracts"
)

// TopN is the leaderboard size for every top table
const TopN = 10

// MarketCapLeaderboard ranks the admitted universe by market cap and
// returns the top entries with their index weight. The weight denominator
// is the market cap of the whole admitted universe, not just the top rows,
// so the weights of all admitted companies sum to 1.
func MarketCapLeaderboard(universe []contracts.CompanyFacts) []contracts.RankedEntry {
	var totalCap float64
	for i := range universe {
		totalCap += universe[i].MarketCap
	}

	sorted := make([]contracts.CompanyFacts, len(universe))
	copy(sorted, universe)

	// Stable: equal caps keep input order
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MarketCap > sorted[j].MarketCap
	})

	entries := make([]contracts.RankedEntry, 0, TopN)
	for i := 0; i < len(sorted) && i < TopN; i++ {
		f := sorted[i]

		var weight float64
		if totalCap > 0 {
			weight = f.MarketCap / totalCap
		}

		entries = append(entries, contracts.RankedEntry{
			Rank:        i + 1,
			Ticker:      f.Ticker,
			Name:        f.Name,
			MarketCap:   f.MarketCap,
			IndexWeight: weight,
		})
	}

	return entries
}

// RevenueGrowthLeaderboard ranks the admitted universe by the most recent
// quarterly revenue growth. Companies with absent or exactly-zero growth
// are dropped before ranking.
func RevenueGrowthLeaderboard(universe []contracts.CompanyFacts) []contracts.RankedEntry {
	candidates := make([]contracts.CompanyFacts, 0, len(universe))
	for _, f := range universe {
		if f.QuarterlyRevenueGrowth == 0 {
			continue
		}
		candidates = append(candidates, f)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].QuarterlyRevenueGrowth > candidates[j].QuarterlyRevenueGrowth
	})

	entries := make([]contracts.RankedEntry, 0, TopN)
	for i := 0; i < len(candidates) && i < TopN; i++ {
		f := candidates[i]
		entries = append(entries, contracts.RankedEntry{
			Rank:            i + 1,
			Ticker:          f.Ticker,
			Name:            f.Name,
			QuarterlyGrowth: f.QuarterlyRevenueGrowth,
		})
	}

	return entries
}

// TotalMarketCap sums the market cap of the given universe
func TotalMarketCap(universe []contracts.CompanyFacts) float64 {
	var total float64
	for i := range universe {
		total += universe[i].MarketCap
	}
	return total
}
