package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/palmledger/palmledger/internal/harvest"
	"github.com/palmledger/palmledger/internal/notes"
	"github.com/palmledger/palmledger/internal/palmtree"
	"github.com/palmledger/palmledger/internal/shared"
)

// Overview is the combined farm snapshot for one date range.
type Overview struct {
	From           shared.Date             `json:"from"`
	To             shared.Date             `json:"to"`
	Harvest        harvest.Summary         `json:"harvest"`
	FertilizerCost float64                 `json:"fertilizer_cost"`
	Applications   int                     `json:"fertilizer_applications"`
	NetProfit      float64                 `json:"net_profit"`
	TopTrees       []palmtree.TreeRank     `json:"top_trees"`
	NoteCategories []notes.CategorySummary `json:"note_categories"`
}

type HarvestSource interface {
	Summarize(ctx context.Context, from, to shared.Date) (harvest.Summary, error)
}

type FertilizerSource interface {
	TotalCost(ctx context.Context, from, to shared.Date) (float64, int, error)
}

type TreeSource interface {
	Ranking(ctx context.Context, from, to *shared.Date, limit int) ([]palmtree.TreeRank, error)
}

type NoteSource interface {
	CountByCategory(ctx context.Context) ([]notes.CategorySummary, error)
}

// Service aggregates the other modules into one overview.
type Service struct {
	harvests    HarvestSource
	fertilizers FertilizerSource
	trees       TreeSource
	notes       NoteSource
}

func NewService(h HarvestSource, f FertilizerSource, t TreeSource, n NoteSource) *Service {
	return &Service{harvests: h, fertilizers: f, trees: t, notes: n}
}

// Overview fans out the four aggregate queries concurrently and joins the
// results. Any single failure fails the whole overview.
func (s *Service) Overview(ctx context.Context, from, to shared.Date) (Overview, error) {
	ov := Overview{From: from, To: to}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sum, err := s.harvests.Summarize(ctx, from, to)
		if err != nil {
			return err
		}
		ov.Harvest = sum
		return nil
	})
	g.Go(func() error {
		cost, count, err := s.fertilizers.TotalCost(ctx, from, to)
		if err != nil {
			return err
		}
		ov.FertilizerCost = cost
		ov.Applications = count
		return nil
	})
	g.Go(func() error {
		ranks, err := s.trees.Ranking(ctx, &from, &to, 5)
		if err != nil {
			return err
		}
		if ranks == nil {
			ranks = []palmtree.TreeRank{}
		}
		ov.TopTrees = ranks
		return nil
	})
	g.Go(func() error {
		counts, err := s.notes.CountByCategory(ctx)
		if err != nil {
			return err
		}
		if counts == nil {
			counts = []notes.CategorySummary{}
		}
		ov.NoteCategories = counts
		return nil
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	ov.NetProfit = ov.Harvest.NetProfit - ov.FertilizerCost
	return ov, nil
}
