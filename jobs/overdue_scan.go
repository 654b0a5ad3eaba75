package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	jobmetrics "github.com/Dixith12/Billing-App-sub001/internal/jobs"
)

// OverdueScanJob surveys invoices and purchases that still carry an
// unpaid balance past the grace window and publishes the counts as
// gauges.
type OverdueScanJob struct {
	Pool    *pgxpool.Pool
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewOverdueScanJob wires dependencies for the scan handler.
func NewOverdueScanJob(pool *pgxpool.Pool, logger *slog.Logger, metrics *jobmetrics.Metrics) *OverdueScanJob {
	return &OverdueScanJob{Pool: pool, Logger: logger, Metrics: metrics}
}

// Handle processes overdue-scan tasks.
func (j *OverdueScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Pool == nil {
		return errors.New("overdue scan: handler not configured")
	}
	var payload OverdueScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.GraceDays <= 0 {
		payload.GraceDays = 30
	}

	tracker := j.metrics().Track(TaskOverdueScan)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.Int("grace_days", payload.GraceDays))

	for _, table := range []string{"invoices", "purchases"} {
		count, balance, err := j.scanTable(ctx, table, payload.GraceDays)
		if err != nil {
			resultErr = fmt.Errorf("scan %s: %w", table, err)
			logger.Error("overdue scan", slog.Any("error", resultErr))
			return resultErr
		}
		j.metrics().SetOverdue(table, count)
		logger.Info("overdue documents",
			slog.String("kind", table),
			slog.Int("count", count),
			slog.Float64("balance", balance),
		)
	}
	return resultErr
}

func (j *OverdueScanJob) scanTable(ctx context.Context, table string, graceDays int) (int, float64, error) {
	scanCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	var count int
	var balance float64
	err := j.Pool.QueryRow(scanCtx, fmt.Sprintf(`
		SELECT COUNT(*), COALESCE(SUM(net_amount - paid_amount), 0)
		FROM %s
		WHERE paid_amount < net_amount
		  AND doc_date < NOW() - ($1 || ' days')::interval
	`, table), graceDays).Scan(&count, &balance)
	if err != nil {
		return 0, 0, err
	}
	return count, balance, nil
}

func (j *OverdueScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskOverdueScan))
	}
	return slog.Default().With(slog.String("job", TaskOverdueScan))
}

func (j *OverdueScanJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
