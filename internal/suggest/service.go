package suggest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/clarity-clinic/clarity/internal/ledger"
	"github.com/clarity-clinic/clarity/internal/shared"
)

// minNotesLen is the shortest free-text input worth sending upstream.
const minNotesLen = 10

// Categorizer is the upstream suggestion contract. *Client satisfies it.
type Categorizer interface {
	SuggestCategory(ctx context.Context, details string) (string, error)
}

// Service validates suggestion input, filters responses to the known
// category set, and debounces keyed requests.
type Service struct {
	client   Categorizer
	debounce *Debouncer
	logger   *slog.Logger

	mu      sync.Mutex
	results map[string]string
}

// NewService constructs the suggestion service.
func NewService(client Categorizer, delay time.Duration, logger *slog.Logger) *Service {
	return &Service{
		client:   client,
		debounce: NewDebouncer(delay),
		logger:   logger,
		results:  make(map[string]string),
	}
}

// Suggest returns a category for the notes, or "" when the upstream
// service fails or answers outside the category set. Upstream failure is
// never an error for the caller.
func (s *Service) Suggest(ctx context.Context, notes string) (string, error) {
	notes = strings.TrimSpace(notes)
	if len(notes) < minNotesLen {
		return "", fmt.Errorf("%w: notes must be at least %d characters", shared.ErrValidation, minNotesLen)
	}

	category, err := s.client.SuggestCategory(ctx, notes)
	if err != nil {
		s.logger.Warn("category suggestion failed", slog.Any("error", err))
		return "", nil
	}
	category = strings.TrimSpace(category)
	if !ledger.ValidCategory(category) {
		s.logger.Warn("category suggestion discarded", slog.String("category", category))
		return "", nil
	}
	return category, nil
}

// Schedule debounces a keyed suggestion. The result is stored whenever
// the upstream call returns; a superseded call's late answer replaces a
// newer one if it lands afterwards.
func (s *Service) Schedule(key, notes string) error {
	notes = strings.TrimSpace(notes)
	if len(notes) < minNotesLen {
		return fmt.Errorf("%w: notes must be at least %d characters", shared.ErrValidation, minNotesLen)
	}

	s.debounce.Trigger(key, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		category, err := s.Suggest(ctx, notes)
		if err != nil {
			return
		}
		s.mu.Lock()
		s.results[key] = category
		s.mu.Unlock()
	})
	return nil
}

// Result returns the last stored suggestion for a key.
func (s *Service) Result(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.results[key]
	return category, ok
}

// Close cancels all pending debounced calls.
func (s *Service) Close() {
	s.debounce.Stop()
}
