package admin

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clarity-clinic/clarity/internal/appointments"
	"github.com/clarity-clinic/clarity/internal/inventory"
	"github.com/clarity-clinic/clarity/internal/ledger"
	"github.com/clarity-clinic/clarity/internal/platform/httpx"
	"github.com/clarity-clinic/clarity/internal/prescriptions"
)

// Services bundles the entity services the admin operations act on.
type Services struct {
	Transactions  *ledger.Service
	Prescriptions *prescriptions.Service
	Inventory     *inventory.Service
	Appointments  *appointments.Service
}

// Handler exposes the seed and clear maintenance endpoints.
type Handler struct {
	logger   *slog.Logger
	services Services
	now      func() time.Time
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, services Services) *Handler {
	return &Handler{logger: logger, services: services, now: time.Now}
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

// MountRoutes registers the admin routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/seed", h.seed)
	r.Post("/clear", h.clear)
}

func (h *Handler) seed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	inserted := 0
	for _, tx := range SampleTransactions(h.now()) {
		if _, err := h.services.Transactions.Create(ctx, tx); err != nil {
			h.logger.Error("seed transaction failed", slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}
		inserted++
	}
	httpx.JSON(w, http.StatusOK, map[string]int{"inserted": inserted})
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	for name, clearFn := range map[string]func(context.Context) error{
		ledger.Collection:        h.services.Transactions.Clear,
		prescriptions.Collection: h.services.Prescriptions.Clear,
		inventory.Collection:     h.services.Inventory.Clear,
		appointments.Collection:  h.services.Appointments.Clear,
	} {
		if err := clearFn(ctx); err != nil {
			h.logger.Error("clear collection failed",
				slog.String("collection", name), slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
