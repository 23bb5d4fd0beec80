package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/clarity-clinic/clarity/internal/ledger"
	"github.com/clarity-clinic/clarity/internal/shared"
)

// Notifier publishes change-feed events after successful writes.
type Notifier interface {
	Changed(ctx context.Context, collection string)
}

// ExpenseRecorder records the purchase expense that accompanies a priced
// inventory item.
type ExpenseRecorder interface {
	Create(ctx context.Context, tx ledger.Transaction) (ledger.Transaction, error)
}

// Service validates and persists inventory items.
type Service struct {
	repo     Repository
	expenses ExpenseRecorder
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires a Repository with the ledger and change notifier.
func NewService(repo Repository, expenses ExpenseRecorder, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		expenses: expenses,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Create persists a new inventory item. When a positive price is supplied it
// additionally records a Supplies expense in the ledger. The two writes are
// not atomic: if the expense write fails the item persists without it and the
// failure is logged.
func (s *Service) Create(ctx context.Context, item Item) (Item, error) {
	if err := validate(item); err != nil {
		return Item{}, err
	}
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return Item{}, err
	}
	s.notify(ctx)

	if created.Price > 0 && s.expenses != nil {
		_, err := s.expenses.Create(ctx, ledger.Transaction{
			Date:     s.now().Format("2006-01-02"),
			Type:     ledger.TypeExpense,
			Amount:   created.Price,
			Category: "Supplies",
			Payment:  "Cash",
			Notes:    fmt.Sprintf("Purchased %d x %s", created.Quantity, created.Name),
		})
		if err != nil {
			s.logger.Warn("inventory expense not recorded",
				slog.String("item", created.Name),
				slog.Any("error", err))
		}
	}
	return created, nil
}

// Delete removes an inventory item by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", shared.ErrValidation)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

// List returns inventory items ordered by name ascending.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	return s.repo.List(ctx)
}

// Clear removes every inventory item.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

func (s *Service) notify(ctx context.Context) {
	if s.notifier != nil {
		s.notifier.Changed(ctx, Collection)
	}
}

func validate(item Item) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: name is required", shared.ErrValidation)
	}
	if strings.TrimSpace(item.Batch) == "" {
		return fmt.Errorf("%w: batch is required", shared.ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", item.Expiry); err != nil {
		return fmt.Errorf("%w: expiry must be YYYY-MM-DD", shared.ErrValidation)
	}
	if item.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", shared.ErrValidation)
	}
	if item.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", shared.ErrValidation)
	}
	return nil
}
