package analytichttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/clarity-clinic/clarity/internal/platform/httpx"
)

func exportLimiter() func(http.Handler) http.Handler {
	return httprate.Limit(10, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			httpx.Problem(w, http.StatusTooManyRequests, "Too Many Requests",
				"export rate limit exceeded, try again later")
		}),
	)
}

// MountRoutes registers the analytics endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Get("/analytics/dashboard", h.handleDashboard)
	r.Get("/analytics/patients", h.handlePatients)
	r.Get("/analytics/pnl", h.handlePnL)
	r.Group(func(gr chi.Router) {
		gr.Use(exportLimiter())
		gr.Get("/analytics/patients/export.csv", h.handlePatientsCSV)
		gr.Get("/analytics/pnl/export.csv", h.handlePnLCSV)
	})
}

// MountTransactionRoutes registers the transaction export under the
// transactions subtree.
func (h *Handler) MountTransactionRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Group(func(gr chi.Router) {
		gr.Use(exportLimiter())
		gr.Get("/export.csv", h.handleTransactionsCSV)
	})
}
