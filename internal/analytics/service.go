package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/clarity-clinic/clarity/internal/ledger"
	"github.com/clarity-clinic/clarity/internal/shared"
)

// TransactionSource yields the current transaction snapshot.
type TransactionSource interface {
	Transactions() []ledger.Transaction
}

// Service computes derived reports over the transaction snapshot, with a
// versioned cache in front.
type Service struct {
	source TransactionSource
	cache  *Cache
	logger *slog.Logger
}

// NewService wires the snapshot source and cache.
func NewService(source TransactionSource, cache *Cache, logger *slog.Logger) *Service {
	return &Service{source: source, cache: cache, logger: logger}
}

// Totals returns the KPI tiles.
func (s *Service) Totals(ctx context.Context) (Totals, error) {
	key, err := s.cache.BuildKey(ctx, "totals")
	if err != nil {
		return Totals{}, err
	}
	var out Totals
	err = s.cache.FetchJSON(ctx, key, &out, func(context.Context) (interface{}, error) {
		return ComputeTotals(s.source.Transactions()), nil
	})
	return out, err
}

// Monthly returns the income/expense trend bucketed by calendar month.
func (s *Service) Monthly(ctx context.Context) ([]MonthlyPoint, error) {
	key, err := s.cache.BuildKey(ctx, "monthly")
	if err != nil {
		return nil, err
	}
	out := make([]MonthlyPoint, 0)
	err = s.cache.FetchJSON(ctx, key, &out, func(context.Context) (interface{}, error) {
		return MonthlySeries(s.source.Transactions()), nil
	})
	return out, err
}

// Categories returns the signed per-category breakdown.
func (s *Service) Categories(ctx context.Context) ([]CategoryPoint, error) {
	key, err := s.cache.BuildKey(ctx, "categories")
	if err != nil {
		return nil, err
	}
	out := make([]CategoryPoint, 0)
	err = s.cache.FetchJSON(ctx, key, &out, func(context.Context) (interface{}, error) {
		return CategorySeries(s.source.Transactions()), nil
	})
	return out, err
}

// Patients returns the derived patient roster.
func (s *Service) Patients(ctx context.Context) ([]PatientEntry, error) {
	key, err := s.cache.BuildKey(ctx, "patients")
	if err != nil {
		return nil, err
	}
	out := make([]PatientEntry, 0)
	err = s.cache.FetchJSON(ctx, key, &out, func(context.Context) (interface{}, error) {
		return PatientRoster(s.source.Transactions()), nil
	})
	return out, err
}

// PnL returns the profit & loss statement for an inclusive date range.
func (s *Service) PnL(ctx context.Context, from, to string) (PnLStatement, error) {
	if err := validateRange(from, to); err != nil {
		return PnLStatement{}, err
	}
	key, err := s.cache.BuildKey(ctx, "pnl", from, to)
	if err != nil {
		return PnLStatement{}, err
	}
	var out PnLStatement
	err = s.cache.FetchJSON(ctx, key, &out, func(context.Context) (interface{}, error) {
		return ProfitAndLoss(s.source.Transactions(), from, to), nil
	})
	return out, err
}

// Invalidate bumps the cache version; wired to the store change feed.
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Error("analytics cache bump failed", slog.Any("error", err))
	}
}

func validateRange(from, to string) error {
	if _, err := time.Parse("2006-01-02", from); err != nil {
		return fmt.Errorf("%w: from must be YYYY-MM-DD", shared.ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", to); err != nil {
		return fmt.Errorf("%w: to must be YYYY-MM-DD", shared.ErrValidation)
	}
	if from > to {
		return fmt.Errorf("%w: from must not be after to", shared.ErrValidation)
	}
	return nil
}
