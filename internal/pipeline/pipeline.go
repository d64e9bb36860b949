// Package pipeline orchestrates one dashboard computation: list the index
// constituents, fetch per-company facts, and derive every table the
// presentation layer displays. Parameters are explicit; nothing is read
// from ambient state.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/mkale/spyglass/internal/contracts"
	"github.com/mkale/spyglass/internal/metrics"
	"github.com/mkale/spyglass/pkg/cache"
	"github.com/mkale/spyglass/pkg/logger"
)

// ErrEmptyUniverse is returned when the constituent source yields no
// tickers; the pipeline does not run against an empty universe.
var ErrEmptyUniverse = errors.New("constituent universe is empty")

// ConstituentLister returns the current set of index ticker symbols
type ConstituentLister interface {
	ListConstituents(ctx context.Context) ([]string, error)
}

// FactsProvider returns the financial facts for one ticker. A per-ticker
// failure is an error return or nil facts; the pipeline excludes the
// ticker and keeps going.
type FactsProvider interface {
	GetFacts(ctx context.Context, ticker string) (*contracts.CompanyFacts, error)
}

// ProgressFunc is invoked after each per-ticker fetch so callers can
// render a progress indicator. done counts from 1 to total.
type ProgressFunc func(done, total int, ticker string)

// Pipeline derives the dashboard tables from raw company facts
type Pipeline struct {
	lister   ConstituentLister
	provider FactsProvider
	cache    *cache.Cache
	factsTTL time.Duration
	logger   *logger.Logger
}

// New creates a pipeline. cache may be nil to disable fetch memoization.
func New(lister ConstituentLister, provider FactsProvider, c *cache.Cache, factsTTL time.Duration, log *logger.Logger) *Pipeline {
	return &Pipeline{
		lister:   lister,
		provider: provider,
		cache:    c,
		factsTTL: factsTTL,
		logger:   log,
	}
}

// scanSnapshot is the cacheable result of the fetch-and-filter step.
// It is parameter-independent: the derived tables are cheap to recompute,
// so only the expensive fetch is memoized.
type scanSnapshot struct {
	Facts []contracts.CompanyFacts `json:"facts"`
	Stats contracts.ScanStats      `json:"stats"`
}

// Run executes one full pipeline invocation
func (p *Pipeline) Run(ctx context.Context, params contracts.ScanParams, progress ProgressFunc) (*contracts.Dashboard, error) {
	if params.Years < 1 {
		return nil, fmt.Errorf("lookback years must be at least 1, got %d", params.Years)
	}

	tickers, err := p.lister.ListConstituents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list constituents: %w", err)
	}
	if len(tickers) == 0 {
		return nil, ErrEmptyUniverse
	}

	snap, err := p.scan(ctx, tickers, progress)
	if err != nil {
		return nil, err
	}

	// Positive market cap is the admission filter for everything below.
	// Input order is preserved so equal-value ties sort deterministically.
	admitted := make([]contracts.CompanyFacts, 0, len(snap.Facts))
	for _, f := range snap.Facts {
		if f.Admitted() {
			admitted = append(admitted, f)
		}
	}

	stats := snap.Stats
	stats.Admitted = len(admitted)

	marketCapTop := metrics.MarketCapLeaderboard(admitted)
	growthTop := metrics.RevenueGrowthLeaderboard(admitted)
	consistent := metrics.ConsistentGrowthTable(admitted, params.Years, params.MinGrowth)

	candidates := metrics.GrowthCandidates(admitted, params.Years, params.MinGrowth)
	garpTop := metrics.GARPLeaderboard(candidates)

	portfolio := metrics.SuggestPortfolio(marketCapTop, growthTop, garpTop)

	p.logger.WithFields(map[string]interface{}{
		"tickers":      stats.Tickers,
		"fetched":      stats.Fetched,
		"failed":       stats.Failed,
		"admitted":     stats.Admitted,
		"garp_matches": len(candidates),
		"years":        params.Years,
		"min_growth":   params.MinGrowth,
	}).Info("Pipeline run completed")

	return &contracts.Dashboard{
		GeneratedAt:      time.Now().UTC(),
		Params:           params,
		TotalMarketCap:   metrics.TotalMarketCap(admitted),
		MarketCapTop:     marketCapTop,
		RevenueGrowthTop: growthTop,
		ConsistentGrowth: consistent,
		GARPMatches:      len(candidates),
		GARPTop:          garpTop,
		Portfolio:        portfolio,
		Stats:            stats,
	}, nil
}

// scan fetches facts for every ticker, one at a time. Per-ticker failures
// are logged and excluded; only context cancellation aborts the batch.
func (p *Pipeline) scan(ctx context.Context, tickers []string, progress ProgressFunc) (*scanSnapshot, error) {
	key := cache.Key("scan", universeDigest(tickers))

	var snap scanSnapshot
	if p.cache != nil {
		found, err := p.cache.Get(ctx, key, &snap)
		if err != nil {
			p.logger.WithError(err).Warn("Facts cache read failed, refetching")
		} else if found {
			p.logger.WithField("companies", len(snap.Facts)).Debug("Facts served from cache")
			return &snap, nil
		}
	}

	total := len(tickers)
	snap = scanSnapshot{
		Facts: make([]contracts.CompanyFacts, 0, total),
		Stats: contracts.ScanStats{Tickers: total},
	}

	for i, ticker := range tickers {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		facts, err := p.provider.GetFacts(ctx, ticker)
		result := contracts.FactsResult{Ticker: ticker, Facts: facts, Err: err}
		if result.OK() {
			snap.Stats.Fetched++
			snap.Facts = append(snap.Facts, *result.Facts)
		} else {
			// No data for this ticker, never fatal to the batch
			snap.Stats.Failed++
			log := p.logger.WithField("ticker", ticker)
			if result.Err != nil {
				log = log.WithError(result.Err)
			}
			log.Debug("Facts fetch failed, excluding ticker")
		}

		if progress != nil {
			progress(i+1, total, ticker)
		}
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, key, snap, p.factsTTL); err != nil {
			p.logger.WithError(err).Warn("Facts cache write failed")
		}
	}

	return &snap, nil
}

// universeDigest keys the facts cache by the ticker universe, so a changed
// constituent list never serves a stale scan.
func universeDigest(tickers []string) string {
	h := fnv.New64a()
	h.Write([]byte(strings.Join(tickers, ",")))
	return fmt.Sprintf("%x", h.Sum64())
}
