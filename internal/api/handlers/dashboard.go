package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mkale/spyglass/internal/contracts"
	"github.com/mkale/spyglass/internal/pipeline"
	"github.com/mkale/spyglass/pkg/config"
	"github.com/mkale/spyglass/pkg/logger"
)

// DashboardHandler serves the derived tables. Every endpoint runs the
// same pipeline; the table endpoints return one slice of the result.
type DashboardHandler struct {
	pipeline *pipeline.Pipeline
	bounds   config.PipelineConfig
	logger   *logger.Logger
}

func NewDashboardHandler(p *pipeline.Pipeline, bounds config.PipelineConfig, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		pipeline: p,
		bounds:   bounds,
		logger:   log,
	}
}

// parseParams reads years and min_growth from the query string, falling
// back to the configured defaults and clamping to the configured bounds.
// min_growth is accepted as a percentage and converted to a fraction.
func (h *DashboardHandler) parseParams(r *http.Request) contracts.ScanParams {
	years := h.bounds.DefaultYears
	if raw := r.URL.Query().Get("years"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			years = v
		}
	}
	if years < h.bounds.MinYears {
		years = h.bounds.MinYears
	}
	if years > h.bounds.MaxYears {
		years = h.bounds.MaxYears
	}

	growthPct := h.bounds.DefaultMinGrowth
	if raw := r.URL.Query().Get("min_growth"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			growthPct = v
		}
	}
	if growthPct < h.bounds.MinGrowthFloor {
		growthPct = h.bounds.MinGrowthFloor
	}
	if growthPct > h.bounds.MinGrowthCeil {
		growthPct = h.bounds.MinGrowthCeil
	}

	return contracts.ScanParams{
		Years:     years,
		MinGrowth: growthPct / 100,
	}
}

// run executes the pipeline and maps pipeline errors to HTTP responses.
// A nil dashboard means the error was already written.
func (h *DashboardHandler) run(w http.ResponseWriter, r *http.Request) *contracts.Dashboard {
	params := h.parseParams(r)

	dashboard, err := h.pipeline.Run(r.Context(), params, nil)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyUniverse) {
			respondError(w, http.StatusServiceUnavailable, "Constituent list unavailable")
			return nil
		}
		h.logger.WithError(err).Error("Pipeline run failed")
		respondError(w, http.StatusInternalServerError, "Failed to build dashboard")
		return nil
	}

	return dashboard
}

// GetDashboard returns every derived table in one response
// GET /api/dashboard?years=3&min_growth=20
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	if dashboard := h.run(w, r); dashboard != nil {
		respondJSON(w, http.StatusOK, dashboard)
	}
}

// GetMarketCapTop returns the market-cap leaderboard
// GET /api/leaderboards/marketcap
func (h *DashboardHandler) GetMarketCapTop(w http.ResponseWriter, r *http.Request) {
	dashboard := h.run(w, r)
	if dashboard == nil {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total_market_cap": dashboard.TotalMarketCap,
		"entries":          dashboard.MarketCapTop,
	})
}

// GetRevenueGrowthTop returns the quarterly revenue growth leaderboard
// GET /api/leaderboards/growth
func (h *DashboardHandler) GetRevenueGrowthTop(w http.ResponseWriter, r *http.Request) {
	dashboard := h.run(w, r)
	if dashboard == nil {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"entries": dashboard.RevenueGrowthTop,
	})
}

// GetConsistentGrowth returns the consistent-growth screen
// GET /api/screener?years=3&min_growth=20
func (h *DashboardHandler) GetConsistentGrowth(w http.ResponseWriter, r *http.Request) {
	dashboard := h.run(w, r)
	if dashboard == nil {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"params":  dashboard.Params,
		"entries": dashboard.ConsistentGrowth,
	})
}

// GetGARP returns the growth-at-reasonable-price leaderboard
// GET /api/garp?years=3&min_growth=20
func (h *DashboardHandler) GetGARP(w http.ResponseWriter, r *http.Request) {
	dashboard := h.run(w, r)
	if dashboard == nil {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"params":  dashboard.Params,
		"matches": dashboard.GARPMatches,
		"entries": dashboard.GARPTop,
	})
}

// GetPortfolio returns the suggested allocation
// GET /api/portfolio?years=3&min_growth=20
func (h *DashboardHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	dashboard := h.run(w, r)
	if dashboard == nil {
		return
	}
	respondJSON(w, http.StatusOK, dashboard.Portfolio)
}
