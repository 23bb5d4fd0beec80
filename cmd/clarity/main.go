package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clarity-clinic/clarity/internal/admin"
	"github.com/clarity-clinic/clarity/internal/analytics"
	analytichttp "github.com/clarity-clinic/clarity/internal/analytics/http"
	"github.com/clarity-clinic/clarity/internal/app"
	"github.com/clarity-clinic/clarity/internal/appointments"
	"github.com/clarity-clinic/clarity/internal/currency"
	"github.com/clarity-clinic/clarity/internal/inventory"
	"github.com/clarity-clinic/clarity/internal/ledger"
	"github.com/clarity-clinic/clarity/internal/observability"
	"github.com/clarity-clinic/clarity/internal/platform/cache"
	"github.com/clarity-clinic/clarity/internal/prescriptions"
	"github.com/clarity-clinic/clarity/internal/store"
	"github.com/clarity-clinic/clarity/internal/suggest"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	notifier := store.NewNotifier(redisClient, logger)

	transactionService := ledger.NewService(backend.Repos.Transactions, notifier, logger)
	prescriptionService := prescriptions.NewService(backend.Repos.Prescriptions, notifier, logger)
	inventoryService := inventory.NewService(backend.Repos.Inventory, transactionService, notifier, logger)
	appointmentService := appointments.NewService(backend.Repos.Appointments, notifier, logger)

	snapshots := store.New(backend.Repos, redisClient, logger)
	if err := snapshots.Refresh(ctx); err != nil {
		logger.Error("initial snapshot load", slog.Any("error", err))
		os.Exit(1)
	}

	analyticsCache := analytics.NewCache(redisClient, cfg.AnalyticsCacheTTL)
	analyticsService := analytics.NewService(snapshots, analyticsCache, logger)
	snapshots.OnChange(func(ctx context.Context, collection string) {
		if collection == ledger.Collection {
			analyticsService.Invalidate(ctx)
		}
	})
	go func() {
		if err := snapshots.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("change feed stopped", slog.Any("error", err))
		}
	}()

	currencySettings := currency.NewSettings(redisClient)

	suggestClient := suggest.NewClient(cfg.SuggestURL, cfg.SuggestAPIKey)
	suggestService := suggest.NewService(suggestClient, cfg.SuggestDebounce, logger)
	defer suggestService.Close()

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		TransactionHandler:  ledger.NewHandler(logger, transactionService),
		PrescriptionHandler: prescriptions.NewHandler(logger, prescriptionService),
		InventoryHandler:    inventory.NewHandler(logger, inventoryService),
		AppointmentHandler:  appointments.NewHandler(logger, appointmentService),
		AnalyticsHandler:    analytichttp.NewHandler(logger, analyticsService, snapshots, currencySettings),
		SuggestHandler:      suggest.NewHandler(logger, suggestService),
		CurrencyHandler:     currency.NewHandler(logger, currencySettings),
		AdminHandler: admin.NewHandler(logger, admin.Services{
			Transactions:  transactionService,
			Prescriptions: prescriptionService,
			Inventory:     inventoryService,
			Appointments:  appointmentService,
		}),
		Metrics: metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
