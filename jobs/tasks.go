// Package jobs defines the background task surface: insights cache
// warmup and the overdue-document scan, scheduled over asynq.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskInsightsWarmup pre-populates the dashboard caches.
	TaskInsightsWarmup = "insights:warmup"
	// TaskOverdueScan surveys unpaid documents past their grace window.
	TaskOverdueScan = "billing:overdue_scan"
)

// InsightsWarmupPayload configures a warmup run.
type InsightsWarmupPayload struct {
	Months int `json:"months"`
}

// NewInsightsWarmupTask constructs the warmup task.
func NewInsightsWarmupTask(months int) (*asynq.Task, error) {
	data, err := json.Marshal(InsightsWarmupPayload{Months: months})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInsightsWarmup, data), nil
}

// OverdueScanPayload configures an overdue scan run.
type OverdueScanPayload struct {
	GraceDays int `json:"grace_days"`
}

// NewOverdueScanTask constructs the overdue-scan task.
func NewOverdueScanTask(graceDays int) (*asynq.Task, error) {
	data, err := json.Marshal(OverdueScanPayload{GraceDays: graceDays})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOverdueScan, data), nil
}
