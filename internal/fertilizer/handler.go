package fertilizer

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/palmledger/palmledger/internal/platform/httpx"
	"github.com/palmledger/palmledger/internal/shared"
)

// Handler exposes fertilizer CRUD endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the fertilizer handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers /api/fertilizer endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Show)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

type recordRequest struct {
	Date           string  `json:"date" validate:"required"`
	FertilizerType string  `json:"fertilizer_type" validate:"required,max=128"`
	AmountBags     float64 `json:"amount_bags" validate:"gte=0"`
	CostPerBag     float64 `json:"cost_per_bag" validate:"gte=0"`
	LaborCost      float64 `json:"labor_cost" validate:"gte=0"`
	Supplier       string  `json:"supplier" validate:"max=128"`
	Notes          string  `json:"notes" validate:"max=1024"`
}

func (h *Handler) decodeRecord(r *http.Request) (Record, error) {
	var req recordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return Record{}, err
	}
	if err := h.validate.Struct(req); err != nil {
		return Record{}, httpx.ErrValidation
	}
	date, err := shared.ParseDate(req.Date)
	if err != nil {
		return Record{}, httpx.ErrValidation
	}
	return Record{
		Date:           date,
		FertilizerType: req.FertilizerType,
		AmountBags:     req.AmountBags,
		CostPerBag:     req.CostPerBag,
		LaborCost:      req.LaborCost,
		Supplier:       req.Supplier,
		Notes:          req.Notes,
	}, nil
}

// List returns a paginated listing, filterable by range and type.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{Page: 1, PerPage: 50, Type: r.URL.Query().Get("type")}
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
		h.logger.Error("list fertilizer records", slog.Any("error", err))
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
		h.logger.Error("create fertilizer record", slog.Any("error", err))
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
