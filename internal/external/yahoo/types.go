package yahoo

// Wire types for the quote-summary endpoint. Numeric fields arrive as
// {"raw": n, "fmt": "..."} objects; absent facts are missing keys, so
// every field is a pointer.

type rawValue struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *apiError            `json:"error"`
	} `json:"quoteSummary"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type quoteSummaryResult struct {
	Price *struct {
		ShortName string    `json:"shortName"`
		MarketCap *rawValue `json:"marketCap"`
	} `json:"price"`

	SummaryDetail *struct {
		TrailingPE *rawValue `json:"trailingPE"`
	} `json:"summaryDetail"`

	FinancialData *struct {
		RevenueGrowth *rawValue `json:"revenueGrowth"`
	} `json:"financialData"`

	IncomeStatementHistory *struct {
		Statements []incomeStatement `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistory"`
}

type incomeStatement struct {
	EndDate      *rawValue `json:"endDate"`
	TotalRevenue *rawValue `json:"totalRevenue"`
}
