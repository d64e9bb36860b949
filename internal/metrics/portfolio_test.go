package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkale/spyglass/internal/contracts"
)

func entry(ticker string) contracts.RankedEntry {
	return contracts.RankedEntry{Ticker: ticker, Name: ticker + " Inc"}
}

func TestSuggestPortfolio(t *testing.T) {
	mcTop := []contracts.RankedEntry{entry("AAPL"), entry("MSFT")}
	growthTop := []contracts.RankedEntry{entry("NVDA")}
	garpTop := []contracts.RankedEntry{entry("GOOG")}

	suggestion := SuggestPortfolio(mcTop, growthTop, garpTop)
	require.Len(t, suggestion.Holdings, 4)

	byTicker := make(map[string]contracts.PortfolioAllocation)
	for _, h := range suggestion.Holdings {
		byTicker[h.Ticker] = h
	}

	assert.Equal(t, 5.0, byTicker["AAPL"].AllocationPercent)
	assert.Equal(t, contracts.ReasonCoreMarketCap, byTicker["AAPL"].Reason)

	assert.Equal(t, 1.0, byTicker["NVDA"].AllocationPercent)
	assert.Equal(t, contracts.ReasonTopGrowth, byTicker["NVDA"].Reason)

	assert.Equal(t, 1.0, byTicker["GOOG"].AllocationPercent)
	assert.Equal(t, contracts.ReasonTopGARP, byTicker["GOOG"].Reason)

	// 5 + 5 + 1 + 1
	assert.InDelta(t, 12.0, suggestion.TotalPercent, 1e-12)
}

func TestSuggestPortfolio_FirstWriterWins(t *testing.T) {
	// NVDA appears on all three boards; the market-cap assignment wins
	mcTop := []contracts.RankedEntry{entry("NVDA")}
	growthTop := []contracts.RankedEntry{entry("NVDA")}
	garpTop := []contracts.RankedEntry{entry("NVDA")}

	suggestion := SuggestPortfolio(mcTop, growthTop, garpTop)
	require.Len(t, suggestion.Holdings, 1, "a ticker appears exactly once")

	holding := suggestion.Holdings[0]
	assert.Equal(t, "NVDA", holding.Ticker)
	assert.Equal(t, 5.0, holding.AllocationPercent)
	assert.Equal(t, contracts.ReasonCoreMarketCap, holding.Reason)
	assert.InDelta(t, 5.0, suggestion.TotalPercent, 1e-12)
}

func TestSuggestPortfolio_GARPOverlapWithGrowth(t *testing.T) {
	// Ticker on the growth and GARP boards keeps the growth reason
	suggestion := SuggestPortfolio(nil,
		[]contracts.RankedEntry{entry("NVDA")},
		[]contracts.RankedEntry{entry("NVDA"), entry("GOOG")},
	)
	require.Len(t, suggestion.Holdings, 2)

	assert.Equal(t, contracts.ReasonTopGrowth, suggestion.Holdings[0].Reason)
	assert.Equal(t, contracts.ReasonTopGARP, suggestion.Holdings[1].Reason)
}

func TestSuggestPortfolio_Empty(t *testing.T) {
	suggestion := SuggestPortfolio(nil, nil, nil)
	assert.Empty(t, suggestion.Holdings)
	assert.Zero(t, suggestion.TotalPercent)
}
