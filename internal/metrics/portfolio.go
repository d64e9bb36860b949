package metrics

import "github.com/mkale/spyglass/internal/contracts"

// Fixed allocation weights. Core market-cap holdings get the larger slice;
// growth and GARP picks are satellites.
const (
	CoreAllocationPercent      = 5.0
	SatelliteAllocationPercent = 1.0
)

// SuggestPortfolio builds the fixed-weight allocation from the three
// leaderboards. Assignment is first-writer-wins in priority order: market
// cap, then revenue growth, then GARP - a ticker on several boards keeps
// only its highest-priority reason. The total is a plain sum and is not
// normalized to 100.
func SuggestPortfolio(marketCapTop, growthTop, garpTop []contracts.RankedEntry) contracts.PortfolioSuggestion {
	assigned := make(map[string]bool)
	holdings := make([]contracts.PortfolioAllocation, 0, len(marketCapTop)+len(growthTop)+len(garpTop))

	add := func(entry contracts.RankedEntry, percent float64, reason string) {
		if assigned[entry.Ticker] {
			return
		}
		assigned[entry.Ticker] = true
		holdings = append(holdings, contracts.PortfolioAllocation{
			Ticker:            entry.Ticker,
			Name:              entry.Name,
			AllocationPercent: percent,
			Reason:            reason,
		})
	}

	for _, entry := range marketCapTop {
		add(entry, CoreAllocationPercent, contracts.ReasonCoreMarketCap)
	}
	for _, entry := range growthTop {
		add(entry, SatelliteAllocationPercent, contracts.ReasonTopGrowth)
	}
	for _, entry := range garpTop {
		add(entry, SatelliteAllocationPercent, contracts.ReasonTopGARP)
	}

	var total float64
	for _, h := range holdings {
		total += h.AllocationPercent
	}

	return contracts.PortfolioSuggestion{
		Holdings:     holdings,
		TotalPercent: total,
	}
}
