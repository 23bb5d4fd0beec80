package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/clarity-clinic/clarity/internal/admin"
	analytichttp "github.com/clarity-clinic/clarity/internal/analytics/http"
	"github.com/clarity-clinic/clarity/internal/appointments"
	"github.com/clarity-clinic/clarity/internal/currency"
	"github.com/clarity-clinic/clarity/internal/inventory"
	"github.com/clarity-clinic/clarity/internal/ledger"
	"github.com/clarity-clinic/clarity/internal/observability"
	"github.com/clarity-clinic/clarity/internal/prescriptions"
	"github.com/clarity-clinic/clarity/internal/suggest"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	TransactionHandler  *ledger.Handler
	PrescriptionHandler *prescriptions.Handler
	InventoryHandler    *inventory.Handler
	AppointmentHandler  *appointments.Handler
	AnalyticsHandler    *analytichttp.Handler
	SuggestHandler      *suggest.Handler
	CurrencyHandler     *currency.Handler
	AdminHandler        *admin.Handler
	Metrics             *observability.Metrics
}

// NewRouter constructs the chi.Router with Clarity defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Get("/metrics", params.Metrics.Handler().ServeHTTP)
	}

	r.Route("/transactions", func(gr chi.Router) {
		params.TransactionHandler.MountRoutes(gr)
		if params.SuggestHandler != nil {
			params.SuggestHandler.MountRoutes(gr)
		}
		params.AnalyticsHandler.MountTransactionRoutes(gr)
	})
	r.Route("/prescriptions", params.PrescriptionHandler.MountRoutes)
	r.Route("/inventory", params.InventoryHandler.MountRoutes)
	r.Route("/appointments", params.AppointmentHandler.MountRoutes)

	params.AnalyticsHandler.MountRoutes(r)

	r.Route("/settings", params.CurrencyHandler.MountRoutes)
	r.Route("/admin", params.AdminHandler.MountRoutes)

	return r
}
