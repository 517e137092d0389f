package notes

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/palmledger/palmledger/internal/platform/httpx"
	"github.com/palmledger/palmledger/internal/shared"
)

// Handler exposes note endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the notes handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers /api/notes endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/summary", h.Summary)
	r.Get("/{id}", h.Show)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

type noteRequest struct {
	Date     string `json:"date" validate:"required"`
	Title    string `json:"title" validate:"required,max=256"`
	Content  string `json:"content" validate:"max=8192"`
	Category string `json:"category" validate:"max=32"`
	Priority string `json:"priority" validate:"max=32"`
}

func (h *Handler) decodeNote(r *http.Request) (Note, error) {
	var req noteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return Note{}, err
	}
	if err := h.validate.Struct(req); err != nil {
		return Note{}, httpx.ErrValidation
	}
	date, err := shared.ParseDate(req.Date)
	if err != nil {
		return Note{}, httpx.ErrValidation
	}
	return Note{
		Date:     date,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Priority: req.Priority,
	}, nil
}

// List searches notes; q, category, priority, on, from, to are all optional.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := SearchFilter{
		Page:     1,
		PerPage:  50,
		Keyword:  r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Priority: r.URL.Query().Get("priority"),
	}
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		filter.Page = p
	}
	if pp, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && pp > 0 && pp <= 200 {
		filter.PerPage = pp
	}
	for name, target := range map[string]**shared.Date{"on": &filter.On, "from": &filter.From, "to": &filter.To} {
		if raw := r.URL.Query().Get(name); raw != "" {
			d, err := shared.ParseDate(raw)
			if err != nil {
				httpx.RespondError(w, httpx.ErrValidation)
				return
			}
			*target = &d
		}
	}

	found, total, err := h.service.Search(r.Context(), filter)
	if err != nil {
		h.logger.Error("search notes", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if found == nil {
		found = []Note{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"notes":      found,
		"pagination": shared.NewPagination(filter.Page, filter.PerPage, total),
	})
}

// Summary returns note counts per category.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.CountByCategory(r.Context())
	if err != nil {
		h.logger.Error("summarize notes", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if summaries == nil {
		summaries = []CategorySummary{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"categories": summaries})
}

// Show returns one note.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid note id")
		return
	}
	note, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, note)
}

// Create stores a new note attributed to the caller.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	note, err := h.decodeNote(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if principal := shared.PrincipalFromContext(r.Context()); principal != nil {
		note.CreatedBy = principal.UserID
	}
	created, err := h.service.Create(r.Context(), note)
	if err != nil {
		h.logger.Error("create note", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

// Update rewrites an existing note.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid note id")
		return
	}
	note, err := h.decodeNote(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Update(r.Context(), id, note); err != nil {
		httpx.RespondError(w, err)
		return
	}
	updated, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

// Delete removes a note permanently.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid note id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}
