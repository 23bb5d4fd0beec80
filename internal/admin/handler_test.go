package admin

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/clarity-clinic/clarity/internal/appointments"
	"github.com/clarity-clinic/clarity/internal/inventory"
	"github.com/clarity-clinic/clarity/internal/ledger"
	"github.com/clarity-clinic/clarity/internal/prescriptions"
	"github.com/clarity-clinic/clarity/internal/shared"
)

type memTxRepo struct{ txs []ledger.Transaction }

func (m *memTxRepo) Create(_ context.Context, tx ledger.Transaction) (ledger.Transaction, error) {
	tx.ID = "generated"
	m.txs = append(m.txs, tx)
	return tx, nil
}
func (m *memTxRepo) Delete(context.Context, string) error { return shared.ErrNotFound }
func (m *memTxRepo) List(context.Context) ([]ledger.Transaction, error) {
	return m.txs, nil
}
func (m *memTxRepo) Clear(context.Context) error { m.txs = nil; return nil }

type memRxRepo struct{ rxs []prescriptions.Prescription }

func (m *memRxRepo) Create(_ context.Context, p prescriptions.Prescription) (prescriptions.Prescription, error) {
	m.rxs = append(m.rxs, p)
	return p, nil
}
func (m *memRxRepo) Delete(context.Context, string) error { return shared.ErrNotFound }
func (m *memRxRepo) List(context.Context) ([]prescriptions.Prescription, error) {
	return m.rxs, nil
}
func (m *memRxRepo) Clear(context.Context) error { m.rxs = nil; return nil }

type memItemRepo struct{ items []inventory.Item }

func (m *memItemRepo) Create(_ context.Context, it inventory.Item) (inventory.Item, error) {
	m.items = append(m.items, it)
	return it, nil
}
func (m *memItemRepo) Delete(context.Context, string) error { return shared.ErrNotFound }
func (m *memItemRepo) List(context.Context) ([]inventory.Item, error) {
	return m.items, nil
}
func (m *memItemRepo) Clear(context.Context) error { m.items = nil; return nil }

type memApptRepo struct{ appts []appointments.Appointment }

func (m *memApptRepo) Create(_ context.Context, a appointments.Appointment) (appointments.Appointment, error) {
	m.appts = append(m.appts, a)
	return a, nil
}
func (m *memApptRepo) Delete(context.Context, string) error { return shared.ErrNotFound }
func (m *memApptRepo) List(context.Context) ([]appointments.Appointment, error) {
	return m.appts, nil
}
func (m *memApptRepo) Clear(context.Context) error { m.appts = nil; return nil }

func newTestHandler() (*Handler, *memTxRepo, *memItemRepo) {
	logger := slog.Default()
	txRepo := &memTxRepo{}
	rxRepo := &memRxRepo{}
	itemRepo := &memItemRepo{}
	apptRepo := &memApptRepo{}

	txService := ledger.NewService(txRepo, nil, logger)
	h := NewHandler(logger, Services{
		Transactions:  txService,
		Prescriptions: prescriptions.NewService(rxRepo, nil, logger),
		Inventory:     inventory.NewService(itemRepo, txService, nil, logger),
		Appointments:  appointments.NewService(apptRepo, nil, logger),
	})
	h.WithNow(func() time.Time {
		return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	})
	return h, txRepo, itemRepo
}

func newTestRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Route("/admin", h.MountRoutes)
	return r
}

func TestSeedInsertsSampleTransactions(t *testing.T) {
	h, txRepo, _ := newTestHandler()
	router := newTestRouter(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/seed", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, txRepo.txs, 10)

	for _, tx := range txRepo.txs {
		require.True(t, ledger.ValidCategory(tx.Category))
		require.NotEmpty(t, tx.Payment)
	}
}

func TestSeedDatesRelativeToClock(t *testing.T) {
	h, txRepo, _ := newTestHandler()
	router := newTestRouter(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/seed", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, "2024-04-03", txRepo.txs[0].Date)
	require.Equal(t, "2024-06-14", txRepo.txs[len(txRepo.txs)-1].Date)
}

func TestClearEmptiesAllCollections(t *testing.T) {
	h, txRepo, itemRepo := newTestHandler()
	txRepo.txs = []ledger.Transaction{{ID: "a"}}
	itemRepo.items = []inventory.Item{{ID: "b"}}
	router := newTestRouter(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/clear", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, txRepo.txs)
	require.Empty(t, itemRepo.items)
}
