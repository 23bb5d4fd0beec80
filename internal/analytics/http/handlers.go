package analytichttp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/clarity-clinic/clarity/internal/analytics"
	"github.com/clarity-clinic/clarity/internal/analytics/export"
	"github.com/clarity-clinic/clarity/internal/currency"
	"github.com/clarity-clinic/clarity/internal/ledger"
	"github.com/clarity-clinic/clarity/internal/platform/httpx"
	"github.com/clarity-clinic/clarity/internal/shared"
)

const requestTimeout = 2 * time.Second

// ReportService defines the report contract used by the handler.
type ReportService interface {
	Totals(ctx context.Context) (analytics.Totals, error)
	Monthly(ctx context.Context) ([]analytics.MonthlyPoint, error)
	Categories(ctx context.Context) ([]analytics.CategoryPoint, error)
	Patients(ctx context.Context) ([]analytics.PatientEntry, error)
	PnL(ctx context.Context, from, to string) (analytics.PnLStatement, error)
}

// TransactionSource yields the current transaction snapshot for exports.
type TransactionSource interface {
	Transactions() []ledger.Transaction
}

// CurrencyProvider resolves the active display currency.
type CurrencyProvider interface {
	Current(ctx context.Context) currency.Currency
}

// Handler coordinates HTTP requests for the analytics dashboard and
// report exports.
type Handler struct {
	logger     *slog.Logger
	service    ReportService
	source     TransactionSource
	currencies CurrencyProvider
	csvPool    sync.Pool
	now        func() time.Time
}

// NewHandler constructs the analytics HTTP handler.
func NewHandler(logger *slog.Logger, service ReportService, source TransactionSource, currencies CurrencyProvider) *Handler {
	h := &Handler{
		logger:     logger,
		service:    service,
		source:     source,
		currencies: currencies,
		now:        time.Now,
	}
	h.csvPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

type dashboardResponse struct {
	Totals     analytics.Totals          `json:"totals"`
	Monthly    []analytics.MonthlyPoint  `json:"monthly"`
	Categories []analytics.CategoryPoint `json:"categories"`
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var resp dashboardResponse
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		resp.Totals, err = h.service.Totals(gctx)
		return err
	})
	g.Go(func() (err error) {
		resp.Monthly, err = h.service.Monthly(gctx)
		return err
	})
	g.Go(func() (err error) {
		resp.Categories, err = h.service.Categories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.logError("load dashboard", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePatients(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	roster, err := h.service.Patients(ctx)
	if err != nil {
		h.logError("load patients", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, roster)
}

func (h *Handler) handlePnL(w http.ResponseWriter, r *http.Request) {
	from, to, err := rangeParams(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	stmt, err := h.service.PnL(ctx, from, to)
	if err != nil {
		h.logError("load pnl", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stmt)
}

func (h *Handler) handlePnLCSV(w http.ResponseWriter, r *http.Request) {
	from, to, err := rangeParams(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	stmt, err := h.service.PnL(ctx, from, to)
	if err != nil {
		h.logError("load pnl", err)
		httpx.RespondError(w, err)
		return
	}

	h.streamCSV(w, fmt.Sprintf("pnl-%s.csv", h.now().Format("2006-01-02")), func(buf *bytes.Buffer) error {
		return export.WritePnLCSV(buf, stmt, h.formatter(ctx))
	})
}

func (h *Handler) handlePatientsCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	roster, err := h.service.Patients(ctx)
	if err != nil {
		h.logError("load patients", err)
		httpx.RespondError(w, err)
		return
	}

	h.streamCSV(w, fmt.Sprintf("patients-%s.csv", h.now().Format("2006-01-02")), func(buf *bytes.Buffer) error {
		return export.WriteRosterCSV(buf, roster)
	})
}

func (h *Handler) handleTransactionsCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	h.streamCSV(w, fmt.Sprintf("transactions-%s.csv", h.now().Format("2006-01-02")), func(buf *bytes.Buffer) error {
		return export.WriteTransactionsCSV(buf, h.source.Transactions(), h.formatter(ctx))
	})
}

func (h *Handler) streamCSV(w http.ResponseWriter, filename string, write func(*bytes.Buffer) error) {
	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		h.csvPool.Put(buf)
	}()

	if err := write(buf); err != nil {
		if !errors.Is(err, shared.ErrNoData) {
			h.logError("write csv", err)
		}
		httpx.RespondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logError("stream csv", err)
	}
}

func (h *Handler) formatter(ctx context.Context) *currency.Formatter {
	return currency.NewFormatter(h.currencies.Current(ctx))
}

func rangeParams(r *http.Request) (string, string, error) {
	from := strings.TrimSpace(r.URL.Query().Get("from"))
	to := strings.TrimSpace(r.URL.Query().Get("to"))
	if from == "" || to == "" {
		return "", "", fmt.Errorf("%w: from and to are required", shared.ErrValidation)
	}
	return from, to, nil
}

func (h *Handler) logError(context string, err error) {
	if h.logger != nil {
		h.logger.Error(context, slog.Any("error", err))
	}
}
