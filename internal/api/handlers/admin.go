package handlers

import (
	"net/http"

	"github.com/mkale/spyglass/internal/scheduler"
	"github.com/mkale/spyglass/pkg/cache"
	"github.com/mkale/spyglass/pkg/logger"
)

// AdminHandler serves the operational endpoints.
type AdminHandler struct {
	cache     *cache.Cache
	scheduler *scheduler.Scheduler
	logger    *logger.Logger
}

func NewAdminHandler(c *cache.Cache, sched *scheduler.Scheduler, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		cache:     c,
		scheduler: sched,
		logger:    log,
	}
}

// ClearCache drops every cached entry so the next request refetches
// POST /api/cache/clear
func (h *AdminHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.cache.InvalidateAll(r.Context()); err != nil {
		h.logger.WithError(err).Error("Failed to clear cache")
		respondError(w, http.StatusInternalServerError, "Failed to clear cache")
		return
	}

	h.logger.Info("Cache cleared by request")
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Cache cleared",
	})
}

// GetJobStats returns run statistics for the scheduled jobs
// GET /api/jobs
func (h *AdminHandler) GetJobStats(w http.ResponseWriter, r *http.Request) {
	if h.scheduler == nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{})
		return
	}
	respondJSON(w, http.StatusOK, h.scheduler.GetJobStats())
}
