package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mkale/spyglass/internal/api/handlers"
	"github.com/mkale/spyglass/pkg/logger"
)

// NewRouter configures all routes and middleware.
func NewRouter(dashboardHandler *handlers.DashboardHandler, streamHandler *handlers.StreamHandler, adminHandler *handlers.AdminHandler, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Derived tables
	api.HandleFunc("/dashboard", dashboardHandler.GetDashboard).Methods("GET")
	api.HandleFunc("/leaderboards/marketcap", dashboardHandler.GetMarketCapTop).Methods("GET")
	api.HandleFunc("/leaderboards/growth", dashboardHandler.GetRevenueGrowthTop).Methods("GET")
	api.HandleFunc("/screener", dashboardHandler.GetConsistentGrowth).Methods("GET")
	api.HandleFunc("/garp", dashboardHandler.GetGARP).Methods("GET")
	api.HandleFunc("/portfolio", dashboardHandler.GetPortfolio).Methods("GET")

	// Live scan progress
	api.HandleFunc("/scan/stream", streamHandler.StreamScan).Methods("GET")

	// Operations
	api.HandleFunc("/cache/clear", adminHandler.ClearCache).Methods("POST")
	api.HandleFunc("/jobs", adminHandler.GetJobStats).Methods("GET")

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "spyglass-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
