package store

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/clarity-clinic/clarity/internal/appointments"
	"github.com/clarity-clinic/clarity/internal/inventory"
	"github.com/clarity-clinic/clarity/internal/ledger"
	"github.com/clarity-clinic/clarity/internal/prescriptions"
)

type memTransactions struct {
	mu  sync.Mutex
	txs []ledger.Transaction
}

func (m *memTransactions) Create(_ context.Context, tx ledger.Transaction) (ledger.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs = append(m.txs, tx)
	return tx, nil
}
func (m *memTransactions) Delete(context.Context, string) error { return nil }
func (m *memTransactions) List(context.Context) ([]ledger.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ledger.Transaction, len(m.txs))
	copy(out, m.txs)
	return out, nil
}
func (m *memTransactions) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs = nil
	return nil
}

type memPrescriptions struct{ rxs []prescriptions.Prescription }

func (m *memPrescriptions) Create(_ context.Context, rx prescriptions.Prescription) (prescriptions.Prescription, error) {
	m.rxs = append(m.rxs, rx)
	return rx, nil
}
func (m *memPrescriptions) Delete(context.Context, string) error { return nil }
func (m *memPrescriptions) List(context.Context) ([]prescriptions.Prescription, error) {
	return m.rxs, nil
}
func (m *memPrescriptions) Clear(context.Context) error { m.rxs = nil; return nil }

type memInventory struct{ items []inventory.Item }

func (m *memInventory) Create(_ context.Context, it inventory.Item) (inventory.Item, error) {
	m.items = append(m.items, it)
	return it, nil
}
func (m *memInventory) Delete(context.Context, string) error            { return nil }
func (m *memInventory) List(context.Context) ([]inventory.Item, error)  { return m.items, nil }
func (m *memInventory) Clear(context.Context) error                     { m.items = nil; return nil }

type memAppointments struct{ appts []appointments.Appointment }

func (m *memAppointments) Create(_ context.Context, a appointments.Appointment) (appointments.Appointment, error) {
	m.appts = append(m.appts, a)
	return a, nil
}
func (m *memAppointments) Delete(context.Context, string) error { return nil }
func (m *memAppointments) List(context.Context) ([]appointments.Appointment, error) {
	return m.appts, nil
}
func (m *memAppointments) Clear(context.Context) error { m.appts = nil; return nil }

func testRepos() (Repositories, *memTransactions) {
	txRepo := &memTransactions{}
	return Repositories{
		Transactions:  txRepo,
		Prescriptions: &memPrescriptions{},
		Inventory:     &memInventory{},
		Appointments:  &memAppointments{},
	}, txRepo
}

func TestRefreshLoadsAllCollections(t *testing.T) {
	repos, txRepo := testRepos()
	_, err := txRepo.Create(context.Background(), ledger.Transaction{ID: "t1", Date: "2024-01-10"})
	require.NoError(t, err)

	s := New(repos, nil, slog.Default())
	require.NoError(t, s.Refresh(context.Background()))

	snap := s.Snapshot()
	require.Len(t, snap.Transactions, 1)
	require.Equal(t, "t1", snap.Transactions[0].ID)
	require.Empty(t, snap.Inventory)
}

func TestRunReloadsOnChangeEvent(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repos, txRepo := testRepos()
	s := New(repos, client, slog.Default())

	var bumped sync.Map
	s.OnChange(func(_ context.Context, collection string) {
		bumped.Store(collection, true)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = s.Run(ctx)
		close(done)
	}()

	_, err := txRepo.Create(ctx, ledger.Transaction{ID: "t2", Date: "2024-02-01"})
	require.NoError(t, err)

	// Republish until the subscription is established and the reload lands.
	require.Eventually(t, func() bool {
		mr.Publish(Channel, ledger.Collection)
		return len(s.Transactions()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	_, ok := bumped.Load(ledger.Collection)
	require.True(t, ok)

	cancel()
	<-done
}

func TestRunIgnoresUnknownCollection(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repos, _ := testRepos()
	s := New(repos, client, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Run(ctx) }()

	require.Eventually(t, func() bool {
		return mr.Publish(Channel, "bogus") > 0
	}, time.Second, 10*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	require.Empty(t, s.Transactions())
}
