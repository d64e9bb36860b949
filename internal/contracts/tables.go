package contracts

import "time"

// RankedEntry is one row of a derived leaderboard. Rank is 1-based and
// dense; which computed fields are set depends on the table.
type RankedEntry struct {
	Rank   int    `json:"rank"`
	Ticker string `json:"ticker"`
	Name   string `json:"name"`

	MarketCap       float64 `json:"market_cap,omitempty"`
	IndexWeight     float64 `json:"index_weight,omitempty"`
	QuarterlyGrowth float64 `json:"quarterly_growth,omitempty"`
	CAGR            float64 `json:"cagr,omitempty"`
	TrailingPE      float64 `json:"trailing_pe,omitempty"`

	// GARPRatio is serialized even at zero: a zero ratio is a real value
	// that ranks P/E-less companies last rather than excluding them.
	GARPRatio float64 `json:"garp_ratio"`
}

// Allocation reason strings, assigned in priority order
const (
	ReasonCoreMarketCap = "core holding by market cap"
	ReasonTopGrowth     = "top quarterly growth"
	ReasonTopGARP       = "top growth/value"
)

// PortfolioAllocation is one suggested holding
type PortfolioAllocation struct {
	Ticker            string  `json:"ticker"`
	Name              string  `json:"name"`
	AllocationPercent float64 `json:"allocation_percent"`
	Reason            string  `json:"reason"`
}

// PortfolioSuggestion is the fixed-weight allocation built from the three
// leaderboards. TotalPercent is a plain sum and need not equal 100; this
// is advisory, not a constraint-satisfying allocator.
type PortfolioSuggestion struct {
	Holdings     []PortfolioAllocation `json:"holdings"`
	TotalPercent float64               `json:"total_percent"`
}

// ScanParams are the explicit pipeline parameters, threaded through every
// call instead of living in ambient UI state.
type ScanParams struct {
	// Years is the CAGR lookback and screener window length
	Years int `json:"years"`

	// MinGrowth is the minimum required growth rate as a fraction
	MinGrowth float64 `json:"min_growth"`
}

// ScanStats summarizes how the fetch-and-filter step went
type ScanStats struct {
	Tickers  int `json:"tickers"`  // universe size from the lister
	Fetched  int `json:"fetched"`  // successful per-ticker fetches
	Failed   int `json:"failed"`   // per-ticker fetch failures (excluded)
	Admitted int `json:"admitted"` // companies with positive market cap
}

// Dashboard holds every derived table for one pipeline invocation
type Dashboard struct {
	GeneratedAt time.Time  `json:"generated_at"`
	Params      ScanParams `json:"params"`

	TotalMarketCap float64 `json:"total_market_cap"`

	MarketCapTop     []RankedEntry `json:"market_cap_top"`
	RevenueGrowthTop []RankedEntry `json:"revenue_growth_top"`

	// ConsistentGrowth lists every company whose year-over-year revenue
	// growth met the threshold in each of the last Years years.
	ConsistentGrowth []RankedEntry `json:"consistent_growth"`

	// GARPMatches counts companies with CAGR at or above the threshold;
	// GARPTop is the ten best of those by growth/value ratio.
	GARPMatches int           `json:"garp_matches"`
	GARPTop     []RankedEntry `json:"garp_top"`

	Portfolio PortfolioSuggestion `json:"portfolio"`

	Stats ScanStats `json:"stats"`
}
