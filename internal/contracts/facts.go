package contracts

import "math"

// CompanyFacts is the raw per-ticker snapshot the facts provider returns.
// Absent numeric fields are zero (market cap, trailing P/E, quarterly
// growth) or NaN (revenue history entries); downstream code treats
// non-positive market cap and P/E as absent.
type CompanyFacts struct {
	Ticker     string  `json:"ticker"`
	Name       string  `json:"name"`
	MarketCap  float64 `json:"market_cap"`
	TrailingPE float64 `json:"trailing_pe"`

	// QuarterlyRevenueGrowth is the most recent quarterly year-over-year
	// revenue growth as a fraction. Zero means absent; absent and
	// exactly-zero growth rank identically everywhere.
	QuarterlyRevenueGrowth float64 `json:"quarterly_revenue_growth"`

	// AnnualRevenue is the annual total revenue series, most recent first.
	// Gaps in the reported history are NaN entries.
	AnnualRevenue Series `json:"annual_revenue"`
}

// Admitted reports whether the company enters the analysis universe.
// A positive market cap is the admission filter for every derived table.
func (f *CompanyFacts) Admitted() bool {
	return f.MarketCap > 0
}

// HasTrailingPE reports whether the trailing P/E is defined and usable
func (f *CompanyFacts) HasTrailingPE() bool {
	return f.TrailingPE > 0 && !math.IsNaN(f.TrailingPE)
}

// FactsResult is the per-ticker outcome of a fetch. A failed fetch keeps
// its error so the pipeline can distinguish "no data" from a logic bug,
// while still excluding the ticker from every table.
type FactsResult struct {
	Ticker string
	Facts  *CompanyFacts
	Err    error
}

// OK reports whether the fetch produced usable facts
func (r *FactsResult) OK() bool {
	return r.Err == nil && r.Facts != nil
}
