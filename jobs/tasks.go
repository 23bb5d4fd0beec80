package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskAnalyticsWarmup precomputes the dashboard reports into the cache.
	TaskAnalyticsWarmup = "analytics:warmup"
	// TaskInventoryExpiryScan flags expired and soon-to-expire stock.
	TaskInventoryExpiryScan = "inventory:expiry_scan"
)

// ExpiryScanPayload configures the inventory expiry scan.
type ExpiryScanPayload struct {
	WindowDays int `json:"window_days"`
}

// NewAnalyticsWarmupTask constructs the warmup task.
func NewAnalyticsWarmupTask() *asynq.Task {
	return asynq.NewTask(TaskAnalyticsWarmup, nil)
}

// NewExpiryScanTask constructs the expiry scan task.
func NewExpiryScanTask(payload ExpiryScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInventoryExpiryScan, data), nil
}
