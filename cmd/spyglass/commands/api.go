package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkale/spyglass/internal/api"
	"github.com/mkale/spyglass/internal/api/handlers"
	"github.com/mkale/spyglass/internal/scheduler"
	"github.com/mkale/spyglass/internal/scheduler/jobs"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server with the background refresh jobs.

Endpoints:
  GET  /health                     - Health check
  GET  /api/dashboard              - Every derived table in one response
  GET  /api/leaderboards/marketcap - Top ten by market cap
  GET  /api/leaderboards/growth    - Top ten by quarterly revenue growth
  GET  /api/screener               - Consistent-growth screen
  GET  /api/garp                   - Growth-at-reasonable-price ranking
  GET  /api/portfolio              - Suggested allocation
  GET  /api/scan/stream            - Websocket scan with live progress
  GET  /api/jobs                   - Scheduled job statistics
  POST /api/cache/clear            - Drop all cached data

Example:
  go run ./cmd/spyglass api
  go run ./cmd/spyglass api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	if apiPort != "" {
		a.config.Port = apiPort
	}

	log := a.logger
	log.WithFields(map[string]interface{}{
		"port": a.config.Port,
		"env":  a.config.Env,
	}).Info("Initializing API server")

	// Background refresh keeps the caches warm between requests.
	sched := scheduler.New(log)
	if err := sched.AddJob(jobs.NewConstituentsRefreshJob(a.lister, log)); err != nil {
		return fmt.Errorf("add constituents job: %w", err)
	}
	if err := sched.AddJob(jobs.NewDashboardWarmJob(a.pipeline, a.config.Pipeline, log)); err != nil {
		return fmt.Errorf("add warm job: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	dashboardHandler := handlers.NewDashboardHandler(a.pipeline, a.config.Pipeline, log)
	streamHandler := handlers.NewStreamHandler(dashboardHandler, log)
	adminHandler := handlers.NewAdminHandler(a.cache, sched, log)

	router := api.NewRouter(dashboardHandler, streamHandler, adminHandler, log)
	server := api.New(a.config, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", a.config.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
