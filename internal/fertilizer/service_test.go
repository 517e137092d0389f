package fertilizer

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

func (m *mockRepo) TotalCost(ctx context.Context, from, to shared.Date) (float64, int, error) {
	var total float64
	count := 0
	for _, rec := range m.records {
		total += rec.TotalCost
		count++
	}
	return total, count, nil
}

func (m *mockRepo) LastApplication(ctx context.Context) (Record, error) {
	var latest Record
	for _, rec := range m.records {
		if latest.ID == 0 || rec.Date.After(latest.Date.Time) {
			latest = rec
		}
	}
	if latest.ID == 0 {
		return Record{}, shared.ErrNotFound
	}
	return latest, nil
}

func TestCreateRecomputesTotalCost(t *testing.T) {
	svc := NewService(newMockRepo())

	rec, err := svc.Create(context.Background(), Record{
		Date:           shared.NewDate(2025, time.August, 5),
		FertilizerType: "0-0-60",
		AmountBags:     8,
		CostPerBag:     980,
		LaborCost:      500,
		TotalCost:      1, // ignored
	})
	require.NoError(t, err)
	assert.InDelta(t, 8*980+500.0, rec.TotalCost, 0.001)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newMockRepo())
	date := shared.NewDate(2025, time.August, 5)

	cases := []Record{
		{FertilizerType: "21-0-0"},
		{Date: date},
		{Date: date, FertilizerType: "  "},
		{Date: date, FertilizerType: "21-0-0", AmountBags: -1},
		{Date: date, FertilizerType: "21-0-0", CostPerBag: -1},
	}
	for i, rec := range cases {
		_, err := svc.Create(context.Background(), rec)
		assert.ErrorIs(t, err, httpx.ErrValidation, "case %d", i)
	}
}

func TestTotalCostRejectsInvertedRange(t *testing.T) {
	svc := NewService(newMockRepo())
	from := shared.NewDate(2025, time.September, 1)
	to := shared.NewDate(2025, time.August, 1)

	_, _, err := svc.TotalCost(context.Background(), from, to)
	assert.ErrorIs(t, err, httpx.ErrValidation)
}
