package dashboard

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/palmledger/palmledger/internal/platform/httpx"
	"github.com/palmledger/palmledger/internal/shared"
)

// Handler exposes the dashboard endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the dashboard handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers /api/dashboard.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/summary", h.Overview)
}

// Overview returns the combined farm snapshot. Defaults to the current
// month when from/to are omitted.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	from := shared.NewDate(now.Year(), now.Month(), 1)
	to := shared.DateOf(from.AddDate(0, 1, -1))

	if raw := r.URL.Query().Get("from"); raw != "" {
		d, err := shared.ParseDate(raw)
		if err != nil {
			httpx.RespondError(w, httpx.ErrValidation)
			return
		}
		from = d
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		d, err := shared.ParseDate(raw)
		if err != nil {
			httpx.RespondError(w, httpx.ErrValidation)
			return
		}
		to = d
	}

	ov, err := h.service.Overview(r.Context(), from, to)
	if err != nil {
		h.logger.Error("build dashboard overview", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ov)
}
