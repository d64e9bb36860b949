package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		fn   string
		args []interface{}
		want string
	}{
		{name: "no args", fn: "constituents", args: nil, want: "constituents"},
		{name: "one arg", fn: "facts", args: []interface{}{3}, want: "facts(3)"},
		{name: "multiple args", fn: "facts", args: []interface{}{"AAPL", 3}, want: "facts(AAPL,3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.fn, tt.args...))
		})
	}
}

func TestCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())

	require.NoError(t, c.Set(ctx, "tickers", []string{"AAPL", "MSFT"}, time.Minute))

	var got []string
	found, err := c.Get(ctx, "tickers", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"AAPL", "MSFT"}, got)
}

func TestCache_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	c := New(store)
	require.NoError(t, c.Set(ctx, "tickers", []string{"AAPL"}, time.Hour))

	// Still fresh just before the TTL
	now = now.Add(59 * time.Minute)
	var got []string
	found, err := c.Get(ctx, "tickers", &got)
	require.NoError(t, err)
	assert.True(t, found)

	// Stale after the TTL
	now = now.Add(2 * time.Minute)
	found, err = c.Get(ctx, "tickers", &got)
	require.NoError(t, err)
	assert.False(t, found, "entry should expire after TTL")
	assert.Equal(t, 0, store.Len(), "expired entry should be dropped on read")
}

func TestCache_ExpiredDropSparesRenewedEntry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }

	c := New(store)
	require.NoError(t, c.Set(ctx, "tickers", []string{"AAPL"}, time.Hour))

	// The unlocked expiry check can race a concurrent Set that renews
	// the entry before the write lock is held. Model that interleave
	// with a clock where the entry is stale on the first check and
	// fresh again on the locked recheck.
	calls := 0
	store.now = func() time.Time {
		calls++
		if calls == 1 {
			return base.Add(2 * time.Hour)
		}
		return base
	}

	var got []string
	found, err := c.Get(ctx, "tickers", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 1, store.Len(), "a renewed entry must survive the expired-read drop")
}

func TestCache_GetOrSet(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return map[string]float64{"AAPL": 0.12}, nil
	}

	var got map[string]float64
	require.NoError(t, c.GetOrSet(ctx, "growth", &got, time.Minute, fetch))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0.12, got["AAPL"])

	// Second call is served from cache
	got = nil
	require.NoError(t, c.GetOrSet(ctx, "growth", &got, time.Minute, fetch))
	assert.Equal(t, 1, calls, "fn should not run on cache hit")
	assert.Equal(t, 0.12, got["AAPL"])
}

func TestCache_GetOrSetPropagatesError(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())

	wantErr := errors.New("source unavailable")
	var got []string
	err := c.GetOrSet(ctx, "tickers", &got, time.Minute, func() (interface{}, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestCache_InvalidateAll(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c := New(store)

	require.NoError(t, c.Set(ctx, "tickers", []string{"AAPL"}, time.Hour))
	require.NoError(t, c.Set(ctx, "facts(3)", map[string]int{"n": 500}, time.Hour))
	require.Equal(t, 2, store.Len())

	require.NoError(t, c.InvalidateAll(ctx))

	var got []string
	found, err := c.Get(ctx, "tickers", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, store.Len())
}
