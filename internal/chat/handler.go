package chat

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/palmledger/palmledger/internal/platform/httpx"
)

// Handler exposes the chat endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the chat handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers /api/chat.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.Ask)
}

type askRequest struct {
	Message string `json:"message"`
}

type askResponse struct {
	Message   string `json:"message"`
	Intent    string `json:"intent"`
	Timestamp string `json:"timestamp"`
}

// Ask answers one question. An empty message is a validation error; an
// unrecognized question is not, it gets the help reply.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "message must not be empty")
		return
	}

	reply := h.service.Answer(r.Context(), req.Message)
	httpx.JSON(w, http.StatusOK, askResponse{
		Message:   reply.Message,
		Intent:    string(reply.Intent),
		Timestamp: reply.Timestamp.Format(time.RFC3339),
	})
}
