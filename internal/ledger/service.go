package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/clarity-clinic/clarity/internal/shared"
)

// Notifier publishes change-feed events after successful writes.
type Notifier interface {
	Changed(ctx context.Context, collection string)
}

// Service validates and persists transactions.
type Service struct {
	repo     Repository
	notifier Notifier
	logger   *slog.Logger
}

// NewService wires a Repository with the change notifier.
func NewService(repo Repository, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// Create persists a new transaction and publishes a change event.
func (s *Service) Create(ctx context.Context, tx Transaction) (Transaction, error) {
	if err := validate(tx); err != nil {
		return Transaction{}, err
	}
	created, err := s.repo.Create(ctx, tx)
	if err != nil {
		return Transaction{}, err
	}
	s.notify(ctx)
	return created, nil
}

// Delete removes a transaction by id.
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

// List returns the current transactions ordered by date descending.
func (s *Service) List(ctx context.Context) ([]Transaction, error) {
	return s.repo.List(ctx)
}

// Clear removes every transaction.
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

func validate(tx Transaction) error {
	if tx.Type != TypeIncome && tx.Type != TypeExpense {
		return fmt.Errorf("%w: type must be Income or Expense", shared.ErrValidation)
	}
	if tx.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", shared.ErrValidation)
	}
	if !ValidCategory(tx.Category) {
		return fmt.Errorf("%w: unknown category %q", shared.ErrValidation, tx.Category)
	}
	if _, err := time.Parse("2006-01-02", tx.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", shared.ErrValidation)
	}
	if strings.TrimSpace(tx.Payment) == "" {
		return fmt.Errorf("%w: payment method is required", shared.ErrValidation)
	}
	return nil
}
