package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/clarity-clinic/clarity/internal/analytics"
	"github.com/clarity-clinic/clarity/internal/app"
	"github.com/clarity-clinic/clarity/internal/platform/cache"
	"github.com/clarity-clinic/clarity/internal/store"
	"github.com/clarity-clinic/clarity/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	backend, err := store.OpenBackend(ctx, *cfg)
	if err != nil {
		logger.Error("open storage backend", slog.Any("error", err))
		os.Exit(1)
	}
	defer backend.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	snapshots := store.New(backend.Repos, redisClient, logger)
	go func() {
		if err := snapshots.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("change feed stopped", slog.Any("error", err))
		}
	}()

	analyticsCache := analytics.NewCache(redisClient, cfg.AnalyticsCacheTTL)
	analyticsService := analytics.NewService(snapshots, analyticsCache, logger)

	warmupJob := jobs.NewAnalyticsWarmupJob(func(ctx context.Context) error {
		if err := snapshots.Refresh(ctx); err != nil {
			return err
		}
		if _, err := analyticsService.Totals(ctx); err != nil {
			return err
		}
		if _, err := analyticsService.Monthly(ctx); err != nil {
			return err
		}
		_, err := analyticsService.Categories(ctx)
		return err
	}, logger)

	expiryJob := jobs.NewExpiryScanJob(backend.Repos.Inventory, logger)

	expiryTask, err := jobs.NewExpiryScanTask(jobs.ExpiryScanPayload{WindowDays: cfg.ExpiryWindowDays})
	if err != nil {
		logger.Error("build expiry task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskAnalyticsWarmup, Handler: warmupJob.Handle},
			{Type: jobs.TaskInventoryExpiryScan, Handler: expiryJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "*/10 * * * *", Task: jobs.NewAnalyticsWarmupTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "0 6 * * *", Task: expiryTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
