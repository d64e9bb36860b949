// Package universe provides the cached index constituent lister.
package universe

import (
	"context"
	"time"

	"github.com/mkale/spyglass/pkg/cache"
	"github.com/mkale/spyglass/pkg/logger"
)

// constituentsKey is the cache identity of the constituent fetch
var constituentsKey = cache.Key("constituents")

// Source fetches the constituent symbols from the upstream page
type Source interface {
	FetchConstituents(ctx context.Context) ([]string, error)
}

// Lister returns the current index constituents, fetching upstream at
// most once per TTL. Source unavailability is logged and reported as an
// empty universe, never raised to the caller.
type Lister struct {
	source Source
	cache  *cache.Cache
	ttl    time.Duration
	logger *logger.Logger
}

// NewLister creates a cached constituent lister
func NewLister(source Source, c *cache.Cache, ttl time.Duration, log *logger.Logger) *Lister {
	return &Lister{
		source: source,
		cache:  c,
		ttl:    ttl,
		logger: log,
	}
}

// ListConstituents returns the constituent symbols, served from cache
// while fresh.
func (l *Lister) ListConstituents(ctx context.Context) ([]string, error) {
	var tickers []string

	if l.cache != nil {
		found, err := l.cache.Get(ctx, constituentsKey, &tickers)
		if err != nil {
			l.logger.WithError(err).Warn("Constituents cache read failed, refetching")
		} else if found {
			return tickers, nil
		}
	}

	return l.refresh(ctx)
}

// Refresh fetches upstream unconditionally and repopulates the cache.
// Used by the scheduled warm-up job.
func (l *Lister) Refresh(ctx context.Context) ([]string, error) {
	return l.refresh(ctx)
}

func (l *Lister) refresh(ctx context.Context) ([]string, error) {
	tickers, err := l.source.FetchConstituents(ctx)
	if err != nil {
		l.logger.WithError(err).Error("Constituent fetch failed, reporting empty universe")
		return []string{}, nil
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, constituentsKey, tickers, l.ttl); err != nil {
			l.logger.WithError(err).Warn("Constituents cache write failed")
		}
	}

	l.logger.WithField("count", len(tickers)).Info("Constituent universe refreshed")
	return tickers, nil
}
