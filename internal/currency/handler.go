package currency

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clarity-clinic/clarity/internal/platform/httpx"
)

// Handler exposes the currency preference endpoints.
type Handler struct {
	logger   *slog.Logger
	settings *Settings
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, settings *Settings) *Handler {
	return &Handler{logger: logger, settings: settings}
}

// MountRoutes registers the settings routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/currency", h.get)
	r.Put("/currency", h.put)
}

type currencyResponse struct {
	Active    Currency   `json:"active"`
	Supported []Currency `json:"supported"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, currencyResponse{
		Active:    h.settings.Current(r.Context()),
		Supported: Supported,
	})
}

type putRequest struct {
	Code string `json:"code"`
}

func (h *Handler) put(w http.ResponseWriter, r *http.Request) {
	var req putRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	active, err := h.settings.Set(r.Context(), req.Code)
	if err != nil {
		h.logger.Error("set currency failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, currencyResponse{Active: active, Supported: Supported})
}
