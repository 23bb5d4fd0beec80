package suggest

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/clarity-clinic/clarity/internal/platform/httpx"
)

// Handler exposes the category-suggestion endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers the suggestion routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/suggest-category", h.suggest)
	r.Get("/suggest-category/{key}", h.result)
}

type suggestBody struct {
	Notes string `json:"notes"`
	Key   string `json:"key"`
}

type suggestResult struct {
	Category string `json:"category"`
}

// suggest answers synchronously when no key is given; with a key the call
// is debounced and the result is polled via the companion GET.
func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	var req suggestBody
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}

	if key := strings.TrimSpace(req.Key); key != "" {
		if err := h.service.Schedule(key, req.Notes); err != nil {
			httpx.RespondError(w, err)
			return
		}
		w.WriteHeader(http.StatusAccepted)
		return
	}

	category, err := h.service.Suggest(r.Context(), req.Notes)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if category == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httpx.JSON(w, http.StatusOK, suggestResult{Category: category})
}

func (h *Handler) result(w http.ResponseWriter, r *http.Request) {
	category, ok := h.service.Result(chi.URLParam(r, "key"))
	if !ok || category == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httpx.JSON(w, http.StatusOK, suggestResult{Category: category})
}
