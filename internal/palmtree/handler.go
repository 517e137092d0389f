package palmtree

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/palmledger/palmledger/internal/platform/httpx"
	"github.com/palmledger/palmledger/internal/shared"
)

// Handler exposes palm tree record endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the palm tree handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers /api/palmtrees endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/ranking", h.Ranking)
	r.Get("/{treeID}/prediction", h.Prediction)
	r.Get("/{id:[0-9]+}", h.Show)
	r.Post("/", h.Create)
	r.Put("/{id:[0-9]+}", h.Update)
	r.Delete("/{id:[0-9]+}", h.Delete)
}

type recordRequest struct {
	TreeID      string `json:"tree_id" validate:"required,max=4"`
	HarvestDate string `json:"harvest_date" validate:"required"`
	BunchCount  int    `json:"bunch_count" validate:"gte=0"`
	Notes       string `json:"notes" validate:"max=1024"`
}

func (h *Handler) decodeRecord(r *http.Request) (Record, error) {
	var req recordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return Record{}, err
	}
	if err := h.validate.Struct(req); err != nil {
		return Record{}, httpx.ErrValidation
	}
	date, err := shared.ParseDate(req.HarvestDate)
	if err != nil {
		return Record{}, httpx.ErrValidation
	}
	return Record{
		TreeID:      req.TreeID,
		HarvestDate: date,
		BunchCount:  req.BunchCount,
		Notes:       req.Notes,
	}, nil
}

// List returns a paginated listing, filterable by tree and range.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{Page: 1, PerPage: 50, TreeID: r.URL.Query().Get("tree_id")}
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		filter.Page = p
	}
	if pp, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && pp > 0 && pp <= 200 {
		filter.PerPage = pp
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		d, err := shared.ParseDate(raw)
		if err != nil {
			httpx.RespondError(w, httpx.ErrValidation)
			return
		}
		filter.From = &d
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		d, err := shared.ParseDate(raw)
		if err != nil {
			httpx.RespondError(w, httpx.ErrValidation)
			return
		}
		filter.To = &d
	}

	records, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list palm tree records", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if records == nil {
		records = []Record{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"records":    records,
		"pagination": shared.NewPagination(filter.Page, filter.PerPage, total),
	})
}

// Ranking returns trees ordered by total bunches.
func (h *Handler) Ranking(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	var from, to *shared.Date
	if raw := r.URL.Query().Get("from"); raw != "" {
		d, err := shared.ParseDate(raw)
		if err != nil {
			httpx.RespondError(w, httpx.ErrValidation)
			return
		}
		from = &d
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		d, err := shared.ParseDate(raw)
		if err != nil {
			httpx.RespondError(w, httpx.ErrValidation)
			return
		}
		to = &d
	}

	ranks, err := h.service.Ranking(r.Context(), from, to, limit)
	if err != nil {
		h.logger.Error("rank palm trees", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if ranks == nil {
		ranks = []TreeRank{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"ranking": ranks})
}

// Prediction projects the next harvest round for one tree.
func (h *Handler) Prediction(w http.ResponseWriter, r *http.Request) {
	prediction, err := h.service.Predict(r.Context(), chi.URLParam(r, "treeID"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, prediction)
}

// Show returns one record.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid record id")
		return
	}
	rec, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

// Create stores a new record attributed to the caller.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	rec, err := h.decodeRecord(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if principal := shared.PrincipalFromContext(r.Context()); principal != nil {
		rec.CreatedBy = principal.UserID
	}
	created, err := h.service.Create(r.Context(), rec)
	if err != nil {
		h.logger.Error("create palm tree record", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

// Update rewrites an existing record.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid record id")
		return
	}
	rec, err := h.decodeRecord(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Update(r.Context(), id, rec); err != nil {
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

// Delete removes a record permanently.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid record id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}
