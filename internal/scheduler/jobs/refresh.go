package jobs

import (
	"context"
	"fmt"

	"github.com/mkale/spyglass/internal/contracts"
	"github.com/mkale/spyglass/internal/pipeline"
	"github.com/mkale/spyglass/internal/universe"
	"github.com/mkale/spyglass/pkg/config"
	"github.com/mkale/spyglass/pkg/logger"
)

// ConstituentsRefreshJob re-scrapes the index constituent list so the
// cached copy never goes stale between scans.
type ConstituentsRefreshJob struct {
	lister *universe.Lister
	logger *logger.Logger
}

func NewConstituentsRefreshJob(lister *universe.Lister, log *logger.Logger) *ConstituentsRefreshJob {
	return &ConstituentsRefreshJob{lister: lister, logger: log}
}

func (j *ConstituentsRefreshJob) Name() string {
	return "constituents_refresh"
}

// Schedule returns the cron schedule (6 AM UTC daily, before US open).
func (j *ConstituentsRefreshJob) Schedule() string {
	return "0 0 6 * * *"
}

func (j *ConstituentsRefreshJob) Run(ctx context.Context) error {
	tickers, err := j.lister.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh constituents: %w", err)
	}
	if len(tickers) == 0 {
		return fmt.Errorf("refresh constituents: empty list")
	}

	j.logger.WithField("count", len(tickers)).Info("Constituent list refreshed")
	return nil
}

// DashboardWarmJob runs a full scan with the default parameters so the
// facts cache is warm when a request arrives.
type DashboardWarmJob struct {
	pipeline *pipeline.Pipeline
	params   contracts.ScanParams
	logger   *logger.Logger
}

func NewDashboardWarmJob(p *pipeline.Pipeline, cfg config.PipelineConfig, log *logger.Logger) *DashboardWarmJob {
	return &DashboardWarmJob{
		pipeline: p,
		params: contracts.ScanParams{
			Years:     cfg.DefaultYears,
			MinGrowth: cfg.DefaultMinGrowth / 100,
		},
		logger: log,
	}
}

func (j *DashboardWarmJob) Name() string {
	return "dashboard_warm"
}

// Schedule returns the cron schedule (hourly at minute 5, just after
// the facts TTL expires).
func (j *DashboardWarmJob) Schedule() string {
	return "0 5 * * * *"
}

func (j *DashboardWarmJob) Run(ctx context.Context) error {
	dashboard, err := j.pipeline.Run(ctx, j.params, nil)
	if err != nil {
		return fmt.Errorf("warm dashboard: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"admitted": dashboard.Stats.Admitted,
		"failed":   dashboard.Stats.Failed,
	}).Info("Dashboard cache warmed")
	return nil
}
