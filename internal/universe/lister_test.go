package universe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkale/spyglass/pkg/cache"
	"github.com/mkale/spyglass/pkg/config"
	"github.com/mkale/spyglass/pkg/logger"
)

type fakeSource struct {
	tickers []string
	err     error
	calls   int
}

func (f *fakeSource) FetchConstituents(ctx context.Context) ([]string, error) {
	f.calls++
	return f.tickers, f.err
}

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func TestLister_CachesFetch(t *testing.T) {
	source := &fakeSource{tickers: []string{"AAPL", "MSFT"}}
	c := cache.New(cache.NewMemoryStore())
	lister := NewLister(source, c, 24*time.Hour, testLogger())

	ctx := context.Background()

	tickers, err := lister.ListConstituents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, tickers)
	assert.Equal(t, 1, source.calls)

	// Second call within the TTL hits the cache
	tickers, err = lister.ListConstituents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, tickers)
	assert.Equal(t, 1, source.calls)
}

func TestLister_SourceFailureYieldsEmptyUniverse(t *testing.T) {
	source := &fakeSource{err: errors.New("upstream unavailable")}
	lister := NewLister(source, cache.New(cache.NewMemoryStore()), 24*time.Hour, testLogger())

	tickers, err := lister.ListConstituents(context.Background())
	require.NoError(t, err, "source failure is logged, not raised")
	assert.Empty(t, tickers)
}

func TestLister_FailureIsNotCached(t *testing.T) {
	source := &fakeSource{err: errors.New("upstream unavailable")}
	c := cache.New(cache.NewMemoryStore())
	lister := NewLister(source, c, 24*time.Hour, testLogger())

	ctx := context.Background()
	_, err := lister.ListConstituents(ctx)
	require.NoError(t, err)

	// Once the source recovers, the next call fetches again
	source.err = nil
	source.tickers = []string{"AAPL"}

	tickers, err := lister.ListConstituents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL"}, tickers)
	assert.Equal(t, 2, source.calls)
}

func TestLister_RefreshBypassesCache(t *testing.T) {
	source := &fakeSource{tickers: []string{"AAPL"}}
	c := cache.New(cache.NewMemoryStore())
	lister := NewLister(source, c, 24*time.Hour, testLogger())

	ctx := context.Background()
	_, err := lister.ListConstituents(ctx)
	require.NoError(t, err)

	source.tickers = []string{"AAPL", "NEWCO"}

	tickers, err := lister.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "NEWCO"}, tickers)
	assert.Equal(t, 2, source.calls)

	// The refreshed list is what later cached reads serve
	tickers, err = lister.ListConstituents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "NEWCO"}, tickers)
	assert.Equal(t, 2, source.calls)
}

func TestLister_WorksWithoutCache(t *testing.T) {
	source := &fakeSource{tickers: []string{"AAPL"}}
	lister := NewLister(source, nil, 0, testLogger())

	tickers, err := lister.ListConstituents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL"}, tickers)
}
