package appointments

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

// Service validates and persists appointments.
type Service struct {
	repo     Repository
	notifier Notifier
	logger   *slog.Logger
}

// NewService wires a Repository with the change notifier.
func NewService(repo Repository, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// Create persists a new appointment and publishes a change event.
func (s *Service) Create(ctx context.Context, a Appointment) (Appointment, error) {
	if a.Status == "" {
		a.Status = StatusConfirmed
	}
	if err := validate(a); err != nil {
		return Appointment{}, err
	}
	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return Appointment{}, err
	}
	s.notify(ctx)
	return created, nil
}

// Delete removes an appointment by id.
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

// List returns the current appointments ordered by date descending.
func (s *Service) List(ctx context.Context) ([]Appointment, error) {
	return s.repo.List(ctx)
}

// Clear removes every appointment.
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

func validate(a Appointment) error {
	if strings.TrimSpace(a.Patient) == "" {
		return fmt.Errorf("%w: patient is required", shared.ErrValidation)
	}
	if strings.TrimSpace(a.Doctor) == "" {
		return fmt.Errorf("%w: doctor is required", shared.ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", a.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", shared.ErrValidation)
	}
	if strings.TrimSpace(a.Time) == "" {
		return fmt.Errorf("%w: time is required", shared.ErrValidation)
	}
	if !ValidStatus(a.Status) {
		return fmt.Errorf("%w: unknown status %q", shared.ErrValidation, a.Status)
	}
	return nil
}
