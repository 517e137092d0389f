package harvest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palmledger/palmledger/internal/platform/httpx"
	"github.com/palmledger/palmledger/internal/shared"
	_ "github.com/palmledger/palmledger/testing"
)

type mockRepo struct {
	records map[int64]Record
	nextID  int64
	latest  shared.Date
	summary Summary
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[int64]Record), nextID: 1}
}

func (m *mockRepo) List(ctx context.Context, filter ListFilter) ([]Record, int, error) {
	out := make([]Record, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec)
	}
	return out, len(out), nil
}

func (m *mockRepo) Get(ctx context.Context, id int64) (Record, error) {
	rec, ok := m.records[id]
	if !ok {
		return Record{}, shared.ErrNotFound
	}
	return rec, nil
}

func (m *mockRepo) Create(ctx context.Context, rec Record) (Record, error) {
	rec.ID = m.nextID
	m.nextID++
	m.records[rec.ID] = rec
	return rec, nil
}

func (m *mockRepo) Update(ctx context.Context, id int64, rec Record) error {
	if _, ok := m.records[id]; !ok {
		return shared.ErrNotFound
	}
	rec.ID = id
	m.records[id] = rec
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.records[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *mockRepo) Summarize(ctx context.Context, from, to shared.Date) (Summary, error) {
	return m.summary, nil
}

func (m *mockRepo) LatestDate(ctx context.Context) (shared.Date, error) {
	if m.latest.IsZero() {
		return shared.Date{}, shared.ErrNotFound
	}
	return m.latest, nil
}

func TestCreateRecomputesDerivedFields(t *testing.T) {
	svc := NewService(newMockRepo())

	rec, err := svc.Create(context.Background(), Record{
		Date:             shared.NewDate(2025, time.August, 11),
		TotalWeightKg:    1960,
		PricePerKg:       6.05,
		FallenWeightKg:   140,
		FallenPricePerKg: 3.40,
		HarvestingCost:   2300,
		// Client-sent derived values are ignored.
		TotalRevenue: 1,
		NetProfit:    1,
	})
	require.NoError(t, err)

	wantRevenue := 1960*6.05 + 140*3.40
	assert.InDelta(t, wantRevenue, rec.TotalRevenue, 0.001)
	assert.InDelta(t, wantRevenue-2300, rec.NetProfit, 0.001)
}

func TestUpdateRecomputesDerivedFields(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), Record{
		Date:          shared.NewDate(2025, time.August, 11),
		TotalWeightKg: 1000,
		PricePerKg:    6,
	})
	require.NoError(t, err)

	err = svc.Update(context.Background(), created.ID, Record{
		Date:           shared.NewDate(2025, time.August, 11),
		TotalWeightKg:  1000,
		PricePerKg:     5,
		HarvestingCost: 1000,
	})
	require.NoError(t, err)

	stored := repo.records[created.ID]
	assert.InDelta(t, 5000.0, stored.TotalRevenue, 0.001)
	assert.InDelta(t, 4000.0, stored.NetProfit, 0.001)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newMockRepo())
	date := shared.NewDate(2025, time.August, 11)

	cases := []Record{
		{},
		{Date: date, TotalWeightKg: -1},
		{Date: date, PricePerKg: -0.5},
		{Date: date, FallenWeightKg: -2},
		{Date: date, HarvestingCost: -100},
	}
	for i, rec := range cases {
		_, err := svc.Create(context.Background(), rec)
		assert.ErrorIs(t, err, httpx.ErrValidation, "case %d", i)
	}
}

func TestSummarizeRejectsInvertedRange(t *testing.T) {
	svc := NewService(newMockRepo())
	from := shared.NewDate(2025, time.August, 31)
	to := shared.NewDate(2025, time.August, 1)

	_, err := svc.Summarize(context.Background(), from, to)
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestGetRejectsBadID(t *testing.T) {
	svc := NewService(newMockRepo())
	_, err := svc.Get(context.Background(), 0)
	assert.ErrorIs(t, err, httpx.ErrValidation)
}
