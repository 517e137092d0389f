package fertilizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/palmledger/palmledger/internal/platform/httpx"
	"github.com/palmledger/palmledger/internal/shared"
)

// Service applies fertilizer business rules on top of the repository.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Record, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int64) (Record, error) {
	if id <= 0 {
		return Record{}, fmt.Errorf("%w: invalid record id", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// Create stores a record after recomputing the derived total cost.
func (s *Service) Create(ctx context.Context, rec Record) (Record, error) {
	if err := s.validate(rec); err != nil {
		return Record{}, err
	}
	rec.recompute()
	return s.repo.Create(ctx, rec)
}

// Update rewrites a record, recomputing the derived total cost.
func (s *Service) Update(ctx context.Context, id int64, rec Record) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid record id", httpx.ErrValidation)
	}
	if err := s.validate(rec); err != nil {
		return err
	}
	rec.recompute()
	return s.repo.Update(ctx, id, rec)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid record id", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

// TotalCost sums spend over an inclusive date range.
func (s *Service) TotalCost(ctx context.Context, from, to shared.Date) (float64, int, error) {
	if from.IsZero() || to.IsZero() || to.Before(from.Time) {
		return 0, 0, fmt.Errorf("%w: invalid date range", httpx.ErrValidation)
	}
	return s.repo.TotalCost(ctx, from, to)
}

func (s *Service) validate(rec Record) error {
	switch {
	case rec.Date.IsZero():
		return fmt.Errorf("%w: application date is required", httpx.ErrValidation)
	case strings.TrimSpace(rec.FertilizerType) == "":
		return fmt.Errorf("%w: fertilizer type is required", httpx.ErrValidation)
	case rec.AmountBags < 0 || rec.CostPerBag < 0 || rec.LaborCost < 0:
		return fmt.Errorf("%w: amounts and costs must not be negative", httpx.ErrValidation)
	}
	return nil
}
