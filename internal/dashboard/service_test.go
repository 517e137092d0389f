package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palmledger/palmledger/internal/harvest"
	"github.com/palmledger/palmledger/internal/notes"
	"github.com/palmledger/palmledger/internal/palmtree"
	"github.com/palmledger/palmledger/internal/shared"
	_ "github.com/palmledger/palmledger/testing"
)

type stubHarvests struct {
	summary harvest.Summary
	err     error
}

func (s *stubHarvests) Summarize(ctx context.Context, from, to shared.Date) (harvest.Summary, error) {
	return s.summary, s.err
}

type stubFertilizers struct {
	cost  float64
	count int
	err   error
}

func (s *stubFertilizers) TotalCost(ctx context.Context, from, to shared.Date) (float64, int, error) {
	return s.cost, s.count, s.err
}

type stubTrees struct {
	ranks []palmtree.TreeRank
	err   error
}

func (s *stubTrees) Ranking(ctx context.Context, from, to *shared.Date, limit int) ([]palmtree.TreeRank, error) {
	return s.ranks, s.err
}

type stubNotes struct {
	counts []notes.CategorySummary
	err    error
}

func (s *stubNotes) CountByCategory(ctx context.Context) ([]notes.CategorySummary, error) {
	return s.counts, s.err
}

var (
	rangeFrom = shared.NewDate(2025, time.August, 1)
	rangeTo   = shared.NewDate(2025, time.August, 31)
)

func TestOverviewCombinesSources(t *testing.T) {
	svc := NewService(
		&stubHarvests{summary: harvest.Summary{Records: 3, NetProfit: 10000, TotalRevenue: 12300}},
		&stubFertilizers{cost: 8340, count: 1},
		&stubTrees{ranks: []palmtree.TreeRank{{TreeID: "B3", TotalBunches: 20}}},
		&stubNotes{counts: []notes.CategorySummary{{Category: notes.CategoryGeneral, Count: 2}}},
	)

	ov, err := svc.Overview(context.Background(), rangeFrom, rangeTo)
	require.NoError(t, err)
	assert.Equal(t, 3, ov.Harvest.Records)
	assert.InDelta(t, 8340.0, ov.FertilizerCost, 0.001)
	assert.Equal(t, 1, ov.Applications)
	assert.InDelta(t, 10000.0-8340.0, ov.NetProfit, 0.001)
	require.Len(t, ov.TopTrees, 1)
	assert.Equal(t, "B3", ov.TopTrees[0].TreeID)
	require.Len(t, ov.NoteCategories, 1)
}

func TestOverviewEmptySlicesAreNotNil(t *testing.T) {
	svc := NewService(&stubHarvests{}, &stubFertilizers{}, &stubTrees{}, &stubNotes{})

	ov, err := svc.Overview(context.Background(), rangeFrom, rangeTo)
	require.NoError(t, err)
	assert.NotNil(t, ov.TopTrees)
	assert.NotNil(t, ov.NoteCategories)
}

func TestOverviewPropagatesFailure(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewService(&stubHarvests{err: boom}, &stubFertilizers{}, &stubTrees{}, &stubNotes{})

	_, err := svc.Overview(context.Background(), rangeFrom, rangeTo)
	assert.ErrorIs(t, err, boom)
}
