package metrics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkale/spyglass/internal/contracts"
)

func company(ticker string, cap, growth float64) contracts.CompanyFacts {
	return contracts.CompanyFacts{
		Ticker:                 ticker,
		Name:                   ticker + " Inc",
		MarketCap:              cap,
		QuarterlyRevenueGrowth: growth,
	}
}

func TestMarketCapLeaderboard(t *testing.T) {
	universe := []contracts.CompanyFacts{
		company("MID", 300, 0),
		company("BIG", 500, 0),
		company("SML", 200, 0),
	}

	entries := MarketCapLeaderboard(universe)
	require.Len(t, entries, 3)

	// Sorted descending with dense 1-based ranks
	assert.Equal(t, "BIG", entries[0].Ticker)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "MID", entries[1].Ticker)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "SML", entries[2].Ticker)
	assert.Equal(t, 3, entries[2].Rank)

	// Weight denominator is the whole universe: 500/1000
	assert.InDelta(t, 0.5, entries[0].IndexWeight, 1e-12)
	assert.InDelta(t, 0.3, entries[1].IndexWeight, 1e-12)
	assert.InDelta(t, 0.2, entries[2].IndexWeight, 1e-12)
}

func TestMarketCapLeaderboard_WeightsSumToOne(t *testing.T) {
	universe := make([]contracts.CompanyFacts, 0, 25)
	for i := 0; i < 25; i++ {
		universe = append(universe, company(fmt.Sprintf("T%02d", i), float64(100+i*37), 0))
	}

	entries := MarketCapLeaderboard(universe)
	require.Len(t, entries, TopN, "leaderboard is capped at top 10")

	// Top-10 weights sum to at most 1; recomputing over the whole
	// universe must give exactly 1 within floating tolerance.
	var topSum float64
	for _, e := range entries {
		topSum += e.IndexWeight
	}
	assert.LessOrEqual(t, topSum, 1.0+1e-9)

	total := TotalMarketCap(universe)
	var fullSum float64
	for _, f := range universe {
		fullSum += f.MarketCap / total
	}
	assert.InDelta(t, 1.0, fullSum, 1e-9)
}

func TestMarketCapLeaderboard_StableOnTies(t *testing.T) {
	universe := []contracts.CompanyFacts{
		company("AAA", 100, 0),
		company("BBB", 100, 0),
		company("CCC", 100, 0),
	}

	entries := MarketCapLeaderboard(universe)
	require.Len(t, entries, 3)

	// Equal caps retain input order
	assert.Equal(t, "AAA", entries[0].Ticker)
	assert.Equal(t, "BBB", entries[1].Ticker)
	assert.Equal(t, "CCC", entries[2].Ticker)
}

func TestMarketCapLeaderboard_Empty(t *testing.T) {
	entries := MarketCapLeaderboard(nil)
	assert.Empty(t, entries)
}

func TestRevenueGrowthLeaderboard(t *testing.T) {
	universe := []contracts.CompanyFacts{
		company("SLOW", 100, 0.02),
		company("FAST", 100, 0.40),
		company("NONE", 100, 0), // absent or exactly zero: dropped
		company("DOWN", 100, -0.10),
	}

	entries := RevenueGrowthLeaderboard(universe)
	require.Len(t, entries, 3)

	assert.Equal(t, "FAST", entries[0].Ticker)
	assert.InDelta(t, 0.40, entries[0].QuarterlyGrowth, 1e-12)
	assert.Equal(t, "SLOW", entries[1].Ticker)
	assert.Equal(t, "DOWN", entries[2].Ticker)

	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestRevenueGrowthLeaderboard_TopNCut(t *testing.T) {
	universe := make([]contracts.CompanyFacts, 0, 15)
	for i := 0; i < 15; i++ {
		universe = append(universe, company(fmt.Sprintf("G%02d", i), 100, 0.01*float64(i+1)))
	}

	entries := RevenueGrowthLeaderboard(universe)
	require.Len(t, entries, TopN)
	assert.Equal(t, "G14", entries[0].Ticker, "highest growth first")
}
