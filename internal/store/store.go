package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/clarity-clinic/clarity/internal/appointments"
	"github.com/clarity-clinic/clarity/internal/inventory"
	"github.com/clarity-clinic/clarity/internal/ledger"
	"github.com/clarity-clinic/clarity/internal/prescriptions"
)

// Channel is the Redis pub/sub channel carrying collection change events.
// The payload of each message is the collection name that changed.
const Channel = "clinic.changed"

// Snapshot is a point-in-time copy of every collection. Snapshots are
// immutable; a changed collection is replaced wholesale, never merged.
type Snapshot struct {
	Transactions  []ledger.Transaction
	Prescriptions []prescriptions.Prescription
	Inventory     []inventory.Item
	Appointments  []appointments.Appointment
}

// Repositories bundles the per-collection repositories the store reads from.
type Repositories struct {
	Transactions  ledger.Repository
	Prescriptions prescriptions.Repository
	Inventory     inventory.Repository
	Appointments  appointments.Repository
}

// Store keeps in-memory snapshots of all collections, refreshed from the
// change feed. Reads never block writers; a snapshot is swapped atomically
// under the lock once its replacement has been fully loaded.
type Store struct {
	repos    Repositories
	client   *redis.Client
	logger   *slog.Logger
	onChange func(ctx context.Context, collection string)

	mu   sync.RWMutex
	snap Snapshot
}

// New constructs a Store over the given repositories.
func New(repos Repositories, client *redis.Client, logger *slog.Logger) *Store {
	return &Store{repos: repos, client: client, logger: logger}
}

// OnChange registers a callback invoked after a collection snapshot is
// replaced. Used to bump the analytics cache without an import cycle.
func (s *Store) OnChange(fn func(ctx context.Context, collection string)) {
	s.onChange = fn
}

// Snapshot returns the current point-in-time view.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Transactions returns the current transaction snapshot.
func (s *Store) Transactions() []ledger.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Transactions
}

// Refresh reloads every collection in parallel and swaps in the result.
func (s *Store) Refresh(ctx context.Context) error {
	var next Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		next.Transactions, err = s.repos.Transactions.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		next.Prescriptions, err = s.repos.Prescriptions.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		next.Inventory, err = s.repos.Inventory.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		next.Appointments, err = s.repos.Appointments.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	s.snap = next
	s.mu.Unlock()
	return nil
}

// Run subscribes to the change feed and reloads the named collection on
// each message. The last snapshot to load wins; failed reloads leave the
// previous snapshot in place. Run blocks until ctx is cancelled.
func (s *Store) Run(ctx context.Context) error {
	if s.client == nil {
		<-ctx.Done()
		return ctx.Err()
	}
	pubsub := s.client.Subscribe(ctx, Channel)
	defer func() { _ = pubsub.Close() }()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			s.reload(ctx, msg.Payload)
		}
	}
}

func (s *Store) reload(ctx context.Context, collection string) {
	var err error
	switch collection {
	case ledger.Collection:
		var txs []ledger.Transaction
		if txs, err = s.repos.Transactions.List(ctx); err == nil {
			s.mu.Lock()
			s.snap.Transactions = txs
			s.mu.Unlock()
		}
	case prescriptions.Collection:
		var rxs []prescriptions.Prescription
		if rxs, err = s.repos.Prescriptions.List(ctx); err == nil {
			s.mu.Lock()
			s.snap.Prescriptions = rxs
			s.mu.Unlock()
		}
	case inventory.Collection:
		var items []inventory.Item
		if items, err = s.repos.Inventory.List(ctx); err == nil {
			s.mu.Lock()
			s.snap.Inventory = items
			s.mu.Unlock()
		}
	case appointments.Collection:
		var appts []appointments.Appointment
		if appts, err = s.repos.Appointments.List(ctx); err == nil {
			s.mu.Lock()
			s.snap.Appointments = appts
			s.mu.Unlock()
		}
	default:
		s.logger.Warn("change feed: unknown collection", slog.String("collection", collection))
		return
	}
	if err != nil {
		s.logger.Error("change feed: reload failed",
			slog.String("collection", collection), slog.Any("error", err))
		return
	}
	if s.onChange != nil {
		s.onChange(ctx, collection)
	}
}
