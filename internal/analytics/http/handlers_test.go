package analytichttp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/clarity-clinic/clarity/internal/analytics"
	"github.com/clarity-clinic/clarity/internal/currency"
	"github.com/clarity-clinic/clarity/internal/ledger"
)

type stubReports struct {
	totals     analytics.Totals
	monthly    []analytics.MonthlyPoint
	categories []analytics.CategoryPoint
	patients   []analytics.PatientEntry
	pnl        analytics.PnLStatement
	pnlErr     error
}

func (s *stubReports) Totals(context.Context) (analytics.Totals, error) { return s.totals, nil }
func (s *stubReports) Monthly(context.Context) ([]analytics.MonthlyPoint, error) {
	return s.monthly, nil
}
func (s *stubReports) Categories(context.Context) ([]analytics.CategoryPoint, error) {
	return s.categories, nil
}
func (s *stubReports) Patients(context.Context) ([]analytics.PatientEntry, error) {
	return s.patients, nil
}
func (s *stubReports) PnL(_ context.Context, from, to string) (analytics.PnLStatement, error) {
	if s.pnlErr != nil {
		return analytics.PnLStatement{}, s.pnlErr
	}
	stmt := s.pnl
	stmt.From, stmt.To = from, to
	return stmt, nil
}

type stubSource struct {
	txs []ledger.Transaction
}

func (s *stubSource) Transactions() []ledger.Transaction { return s.txs }

type stubCurrencies struct{}

func (stubCurrencies) Current(context.Context) currency.Currency {
	c, _ := currency.Lookup("USD")
	return c
}

func newTestRouter(reports *stubReports, source *stubSource) http.Handler {
	h := NewHandler(slog.Default(), reports, source, stubCurrencies{})
	r := chi.NewRouter()
	h.MountRoutes(r)
	r.Route("/transactions", h.MountTransactionRoutes)
	return r
}

func TestDashboardBundlesAllSeries(t *testing.T) {
	reports := &stubReports{
		totals:     analytics.Totals{Income: 800, Expense: 250, Net: 550},
		monthly:    []analytics.MonthlyPoint{{Label: "Jan 24", Income: 800, Expense: 250}},
		categories: []analytics.CategoryPoint{{Category: "Consultation", Amount: 800}},
	}
	router := newTestRouter(reports, &stubSource{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analytics/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 550.0, resp.Totals.Net)
	require.Len(t, resp.Monthly, 1)
	require.Equal(t, "Jan 24", resp.Monthly[0].Label)
	require.Len(t, resp.Categories, 1)
}

func TestPnLRequiresRangeParams(t *testing.T) {
	router := newTestRouter(&stubReports{}, &stubSource{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analytics/pnl", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analytics/pnl?from=2024-01-01", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPnLExportCSVHasAttachmentHeaders(t *testing.T) {
	reports := &stubReports{pnl: analytics.PnLStatement{
		Income:      []analytics.CategoryTotal{{Category: "Consultation", Total: 800}},
		Expense:     []analytics.CategoryTotal{},
		TotalIncome: 800,
		NetProfit:   800,
	}}
	router := newTestRouter(reports, &stubSource{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/analytics/pnl/export.csv?from=2024-01-01&to=2024-01-31", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	require.Contains(t, rec.Body.String(), "TOTAL INCOME")
}

func TestTransactionsExportEmptyIsUnprocessable(t *testing.T) {
	router := newTestRouter(&stubReports{}, &stubSource{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions/export.csv", nil))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestTransactionsExportStreamsCSV(t *testing.T) {
	source := &stubSource{txs: []ledger.Transaction{
		{Date: "2024-01-05", Type: ledger.TypeIncome, Amount: 800, Category: "Consultation", Payment: "UPI"},
	}}
	router := newTestRouter(&stubReports{}, source)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions/export.csv", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Consultation")
	require.Contains(t, rec.Body.String(), "$800.00")
}

func TestPatientsExportStreamsRoster(t *testing.T) {
	reports := &stubReports{patients: []analytics.PatientEntry{
		{Name: "Ravi Kumar", PatientID: "P-1001", Phone: "N/A", Visits: 3, LastVisit: "2024-06-01"},
	}}
	router := newTestRouter(reports, &stubSource{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analytics/patients/export.csv", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Disposition"), "patients-")
	require.Contains(t, rec.Body.String(), "Ravi Kumar")
}

func TestPatientsExportEmptyIsUnprocessable(t *testing.T) {
	router := newTestRouter(&stubReports{}, &stubSource{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analytics/patients/export.csv", nil))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
