package jobs

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/clarity-clinic/clarity/internal/inventory"
)

type stubStock struct {
	items []inventory.Item
	err   error
}

func (s *stubStock) List(context.Context) ([]inventory.Item, error) {
	return s.items, s.err
}

func TestExpiryScanHandlesStock(t *testing.T) {
	stock := &stubStock{items: []inventory.Item{
		{Name: "Gauze", Batch: "B-1", Expiry: "2023-01-01", Quantity: 5},
		{Name: "Gloves", Batch: "B-2", Expiry: "2024-03-20", Quantity: 0},
		{Name: "Saline", Batch: "B-3", Expiry: "2030-01-01", Quantity: 10},
	}}
	job := NewExpiryScanJob(stock, slog.Default())
	job.clock = func() time.Time {
		return time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)
	}

	task, err := NewExpiryScanTask(ExpiryScanPayload{WindowDays: 30})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
}

func TestExpiryScanPropagatesListFailure(t *testing.T) {
	job := NewExpiryScanJob(&stubStock{err: errors.New("backend down")}, slog.Default())
	task, err := NewExpiryScanTask(ExpiryScanPayload{})
	require.NoError(t, err)
	require.Error(t, job.Handle(context.Background(), task))
}

func TestExpiryScanRejectsGarbagePayload(t *testing.T) {
	job := NewExpiryScanJob(&stubStock{}, slog.Default())
	task := asynq.NewTask(TaskInventoryExpiryScan, []byte("not json"))
	require.ErrorIs(t, job.Handle(context.Background(), task), asynq.SkipRetry)
}

func TestAnalyticsWarmupRunsWarmFunc(t *testing.T) {
	warmed := false
	job := NewAnalyticsWarmupJob(func(context.Context) error {
		warmed = true
		return nil
	}, slog.Default())

	require.NoError(t, job.Handle(context.Background(), NewAnalyticsWarmupTask()))
	require.True(t, warmed)
}
