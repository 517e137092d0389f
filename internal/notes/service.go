package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/palmledger/palmledger/internal/platform/httpx"
)

// Service applies note business rules on top of the repository.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Search(ctx context.Context, filter SearchFilter) ([]Note, int, error) {
	return s.repo.Search(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int64) (Note, error) {
	if id <= 0 {
		return Note{}, fmt.Errorf("%w: invalid note id", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, note Note) (Note, error) {
	note = applyDefaults(note)
	if err := validate(note); err != nil {
		return Note{}, err
	}
	return s.repo.Create(ctx, note)
}

func (s *Service) Update(ctx context.Context, id int64, note Note) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid note id", httpx.ErrValidation)
	}
	note = applyDefaults(note)
	if err := validate(note); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, note)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid note id", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

// CountByCategory returns note counts grouped by category.
func (s *Service) CountByCategory(ctx context.Context) ([]CategorySummary, error) {
	return s.repo.CountByCategory(ctx)
}

func applyDefaults(note Note) Note {
	if strings.TrimSpace(note.Category) == "" {
		note.Category = CategoryGeneral
	}
	if strings.TrimSpace(note.Priority) == "" {
		note.Priority = PriorityMedium
	}
	return note
}

func validate(note Note) error {
	switch {
	case note.Date.IsZero():
		return fmt.Errorf("%w: note date is required", httpx.ErrValidation)
	case strings.TrimSpace(note.Title) == "":
		return fmt.Errorf("%w: note title is required", httpx.ErrValidation)
	}
	switch note.Category {
	case CategoryGeneral, CategoryImportant, CategoryUrgent:
	default:
		return fmt.Errorf("%w: unknown category %q", httpx.ErrValidation, note.Category)
	}
	switch note.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return fmt.Errorf("%w: unknown priority %q", httpx.ErrValidation, note.Priority)
	}
	return nil
}
