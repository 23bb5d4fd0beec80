package prescriptions

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

// Service validates and persists prescriptions.
type Service struct {
	repo     Repository
	notifier Notifier
	logger   *slog.Logger
}

// NewService wires a Repository with the change notifier.
func NewService(repo Repository, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// Create persists a new prescription and publishes a change event.
func (s *Service) Create(ctx context.Context, p Prescription) (Prescription, error) {
	if err := validate(p); err != nil {
		return Prescription{}, err
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return Prescription{}, err
	}
	s.notify(ctx)
	return created, nil
}

// Delete removes a prescription by id.
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

// List returns prescriptions ordered by date descending.
func (s *Service) List(ctx context.Context) ([]Prescription, error) {
	return s.repo.List(ctx)
}

// Clear removes every prescription.
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

func validate(p Prescription) error {
	if _, err := time.Parse("2006-01-02", p.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", shared.ErrValidation)
	}
	if strings.TrimSpace(p.Doctor) == "" {
		return fmt.Errorf("%w: doctor is required", shared.ErrValidation)
	}
	if strings.TrimSpace(p.Patient) == "" {
		return fmt.Errorf("%w: patient is required", shared.ErrValidation)
	}
	if strings.TrimSpace(p.Medicine) == "" {
		return fmt.Errorf("%w: medicine is required", shared.ErrValidation)
	}
	return nil
}
