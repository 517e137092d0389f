package palmtree

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/palmledger/palmledger/internal/platform/httpx"
	"github.com/palmledger/palmledger/internal/shared"
)

// Grid labels run A1 through L26.
var treeLabelPattern = regexp.MustCompile(`^[A-L]([1-9]|1[0-9]|2[0-6])$`)

// Service applies palm tree business rules on top of the repository.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
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

func (s *Service) Create(ctx context.Context, rec Record) (Record, error) {
	rec.TreeID = normalizeLabel(rec.TreeID)
	if err := s.validate(rec); err != nil {
		return Record{}, err
	}
	return s.repo.Create(ctx, rec)
}

func (s *Service) Update(ctx context.Context, id int64, rec Record) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid record id", httpx.ErrValidation)
	}
	rec.TreeID = normalizeLabel(rec.TreeID)
	if err := s.validate(rec); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, rec)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid record id", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

// Ranking returns the highest-producing trees by summed bunch count.
func (s *Service) Ranking(ctx context.Context, from, to *shared.Date, limit int) ([]TreeRank, error) {
	return s.repo.Ranking(ctx, from, to, limit)
}

// Predict projects the next harvest round for one tree: last recorded
// harvest plus the fixed cycle. Days remaining rounds up, so a round due
// later today reports zero.
func (s *Service) Predict(ctx context.Context, treeID string) (Prediction, error) {
	treeID = normalizeLabel(treeID)
	if !treeLabelPattern.MatchString(treeID) {
		return Prediction{}, fmt.Errorf("%w: invalid tree label", httpx.ErrValidation)
	}
	last, err := s.repo.LastHarvestByTree(ctx, treeID)
	if err != nil {
		return Prediction{}, err
	}
	next := shared.Date{Time: last.AddDate(0, 0, shared.HarvestCycleDays)}
	return Prediction{
		TreeID:        treeID,
		LastHarvest:   last,
		NextHarvest:   next,
		DaysRemaining: DaysUntil(s.now(), next),
	}, nil
}

// DaysUntil counts whole days from now to the target date, rounding up and
// clamping at zero.
func DaysUntil(now time.Time, target shared.Date) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	due := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, now.Location())
	days := int(due.Sub(today).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func normalizeLabel(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}

func (s *Service) validate(rec Record) error {
	switch {
	case !treeLabelPattern.MatchString(rec.TreeID):
		return fmt.Errorf("%w: tree label must be A1 through L26, got %q", httpx.ErrValidation, rec.TreeID)
	case rec.HarvestDate.IsZero():
		return fmt.Errorf("%w: harvest date is required", httpx.ErrValidation)
	case rec.BunchCount < 0:
		return fmt.Errorf("%w: bunch count must not be negative", httpx.ErrValidation)
	}
	return nil
}
