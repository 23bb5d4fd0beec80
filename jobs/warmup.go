package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// AnalyticsWarmupJob precomputes the dashboard reports so the first
// request after a cache bump is served warm.
type AnalyticsWarmupJob struct {
	Warm   func(ctx context.Context) error
	Logger *slog.Logger
}

// NewAnalyticsWarmupJob initialises the warmup handler. warm should load
// every report the dashboard serves.
func NewAnalyticsWarmupJob(warm func(ctx context.Context) error, logger *slog.Logger) *AnalyticsWarmupJob {
	return &AnalyticsWarmupJob{Warm: warm, Logger: logger}
}

// Handle executes the warmup.
func (j *AnalyticsWarmupJob) Handle(ctx context.Context, _ *asynq.Task) error {
	if j == nil || j.Warm == nil {
		return errors.New("analytics warmup: handler not configured")
	}
	logger := j.logger()
	start := time.Now()
	logger.Info("starting analytics warmup")
	if err := j.Warm(ctx); err != nil {
		logger.Error("warmup failed", slog.Any("error", err))
		return err
	}
	logger.Info("completed analytics warmup", slog.Duration("duration", time.Since(start)))
	return nil
}

func (j *AnalyticsWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskAnalyticsWarmup))
	}
	return slog.Default().With(slog.String("job", TaskAnalyticsWarmup))
}
