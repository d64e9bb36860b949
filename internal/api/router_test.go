package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkale/spyglass/internal/api/handlers"
	"github.com/mkale/spyglass/internal/contracts"
	"github.com/mkale/spyglass/internal/pipeline"
	"github.com/mkale/spyglass/pkg/cache"
	"github.com/mkale/spyglass/pkg/config"
	"github.com/mkale/spyglass/pkg/logger"
)

type staticLister struct{ tickers []string }

func (l *staticLister) ListConstituents(ctx context.Context) ([]string, error) {
	return l.tickers, nil
}

type staticProvider struct{ facts map[string]*contracts.CompanyFacts }

func (p *staticProvider) GetFacts(ctx context.Context, ticker string) (*contracts.CompanyFacts, error) {
	return p.facts[ticker], nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	log := logger.New(&config.Config{LogLevel: "error", LogFormat: "console"})
	lister := &staticLister{tickers: []string{"ONE"}}
	provider := &staticProvider{facts: map[string]*contracts.CompanyFacts{
		"ONE": {Ticker: "ONE", Name: "One Corp", MarketCap: 100},
	}}
	p := pipeline.New(lister, provider, nil, time.Hour, log)

	bounds := config.PipelineConfig{
		DefaultYears: 3, MinYears: 2, MaxYears: 5,
		DefaultMinGrowth: 20, MinGrowthFloor: 5, MinGrowthCeil: 50,
	}
	dashboardHandler := handlers.NewDashboardHandler(p, bounds, log)
	streamHandler := handlers.NewStreamHandler(dashboardHandler, log)
	adminHandler := handlers.NewAdminHandler(cache.New(cache.NewMemoryStore()), nil, log)

	return NewRouter(dashboardHandler, streamHandler, adminHandler, log)
}

func TestRouterHealth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRouterRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/api/dashboard", http.StatusOK},
		{"GET", "/api/leaderboards/marketcap", http.StatusOK},
		{"GET", "/api/leaderboards/growth", http.StatusOK},
		{"GET", "/api/screener", http.StatusOK},
		{"GET", "/api/garp", http.StatusOK},
		{"GET", "/api/portfolio", http.StatusOK},
		{"POST", "/api/cache/clear", http.StatusOK},
		{"GET", "/api/jobs", http.StatusOK},
		{"GET", "/api/cache/clear", http.StatusMethodNotAllowed},
		{"GET", "/api/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
