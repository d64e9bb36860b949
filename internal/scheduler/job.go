package scheduler

import (
	"context"
	"time"
)

// Job is a unit of scheduled work.
type Job interface {
	// Name returns the job name, unique within a scheduler.
	Name() string

	// Run executes the job.
	Run(ctx context.Context) error

	// Schedule returns the cron expression (six fields, with seconds).
	Schedule() string
}

// JobResult records one execution of a job.
type JobResult struct {
	JobName   string        `json:"jobName"`
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Duration  time.Duration `json:"duration"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
}

// JobHistory keeps the most recent executions of a job.
type JobHistory struct {
	Results []JobResult
}

const historyLimit = 100

func (h *JobHistory) AddResult(result JobResult) {
	h.Results = append(h.Results, result)
	if len(h.Results) > historyLimit {
		h.Results = h.Results[len(h.Results)-historyLimit:]
	}
}

func (h *JobHistory) LastResult() (JobResult, bool) {
	if len(h.Results) == 0 {
		return JobResult{}, false
	}
	return h.Results[len(h.Results)-1], true
}

// SuccessRate returns the fraction of retained runs that succeeded.
func (h *JobHistory) SuccessRate() float64 {
	if len(h.Results) == 0 {
		return 0.0
	}

	succeeded := 0
	for _, result := range h.Results {
		if result.Success {
			succeeded++
		}
	}
	return float64(succeeded) / float64(len(h.Results))
}
