package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Dixith12/Billing-App-sub001/internal/insights"
	jobmetrics "github.com/Dixith12/Billing-App-sub001/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// InsightsWarmupJob pre-populates the dashboard caches so the first
// morning request does not pay the aggregate query cost.
type InsightsWarmupJob struct {
	Insights *insights.Service
	Logger   *slog.Logger
	Metrics  *jobmetrics.Metrics
}

// NewInsightsWarmupJob wires dependencies for the warmup handler.
func NewInsightsWarmupJob(insightsSvc *insights.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *InsightsWarmupJob {
	return &InsightsWarmupJob{Insights: insightsSvc, Logger: logger, Metrics: metrics}
}

// Handle processes warmup tasks.
func (j *InsightsWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Insights == nil {
		return errors.New("insights warmup: handler not configured")
	}
	var payload InsightsWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Months <= 0 {
		payload.Months = 6
	}

	tracker := j.metrics().Track(TaskInsightsWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	start := time.Now()
	logger.Info("starting insights warmup", slog.Int("months", payload.Months))

	runCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := j.Insights.Warm(runCtx); err != nil {
		resultErr = err
		logger.Error("warm dashboard", slog.Any("error", err))
		return resultErr
	}
	if _, err := j.Insights.GetMonthlyRevenue(runCtx, payload.Months); err != nil {
		resultErr = err
		logger.Error("warm revenue trend", slog.Any("error", err))
		return resultErr
	}

	logger.Info("completed insights warmup", slog.Duration("duration", time.Since(start)))
	return resultErr
}

func (j *InsightsWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskInsightsWarmup))
	}
	return slog.Default().With(slog.String("job", TaskInsightsWarmup))
}

func (j *InsightsWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
