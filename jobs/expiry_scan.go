package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/clarity-clinic/clarity/internal/inventory"
)

// StockLister is the inventory surface the scan reads. The inventory
// repository satisfies it.
type StockLister interface {
	List(ctx context.Context) ([]inventory.Item, error)
}

// ExpiryScanJob flags stock that is expired, expiring inside the
// configured window, or fully depleted.
type ExpiryScanJob struct {
	Stock  StockLister
	Logger *slog.Logger
	clock  func() time.Time
}

// NewExpiryScanJob initialises the expiry scan handler.
func NewExpiryScanJob(stock StockLister, logger *slog.Logger) *ExpiryScanJob {
	return &ExpiryScanJob{
		Stock:  stock,
		Logger: logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the expiry scan.
func (j *ExpiryScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Stock == nil {
		return errors.New("expiry scan: handler not configured")
	}
	var payload ExpiryScanPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}
	if payload.WindowDays <= 0 {
		payload.WindowDays = 30
	}

	logger := j.logger().With(slog.Int("window_days", payload.WindowDays))
	logger.Info("starting expiry scan")
	start := j.now()

	items, err := j.Stock.List(ctx)
	if err != nil {
		logger.Error("scan failed", slog.Any("error", err))
		return err
	}

	today := start.Format("2006-01-02")
	horizon := start.AddDate(0, 0, payload.WindowDays).Format("2006-01-02")

	expired, expiring, depleted := 0, 0, 0
	for _, item := range items {
		switch {
		case item.Expiry < today:
			expired++
			logger.Warn("stock expired",
				slog.String("name", item.Name),
				slog.String("batch", item.Batch),
				slog.String("expiry", item.Expiry))
		case item.Expiry <= horizon:
			expiring++
			logger.Warn("stock expiring soon",
				slog.String("name", item.Name),
				slog.String("batch", item.Batch),
				slog.String("expiry", item.Expiry))
		}
		if item.Quantity == 0 {
			depleted++
			logger.Warn("stock depleted",
				slog.String("name", item.Name),
				slog.String("batch", item.Batch))
		}
	}

	logger.Info("completed expiry scan",
		slog.Int("items", len(items)),
		slog.Int("expired", expired),
		slog.Int("expiring", expiring),
		slog.Int("depleted", depleted),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (j *ExpiryScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskInventoryExpiryScan))
	}
	return slog.Default().With(slog.String("job", TaskInventoryExpiryScan))
}

func (j *ExpiryScanJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
