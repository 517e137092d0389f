package notes

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
	notes  map[int64]Note
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{notes: make(map[int64]Note), nextID: 1}
}

func (m *mockRepo) Search(ctx context.Context, filter SearchFilter) ([]Note, int, error) {
	out := make([]Note, 0, len(m.notes))
	for _, n := range m.notes {
		out = append(out, n)
	}
	return out, len(out), nil
}

func (m *mockRepo) Get(ctx context.Context, id int64) (Note, error) {
	n, ok := m.notes[id]
	if !ok {
		return Note{}, shared.ErrNotFound
	}
	return n, nil
}

func (m *mockRepo) Create(ctx context.Context, note Note) (Note, error) {
	note.ID = m.nextID
	m.nextID++
	m.notes[note.ID] = note
	return note, nil
}

func (m *mockRepo) Update(ctx context.Context, id int64, note Note) error {
	if _, ok := m.notes[id]; !ok {
		return shared.ErrNotFound
	}
	note.ID = id
	m.notes[id] = note
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.notes[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.notes, id)
	return nil
}

func (m *mockRepo) CountByCategory(ctx context.Context) ([]CategorySummary, error) {
	counts := map[string]int{}
	for _, n := range m.notes {
		counts[n.Category]++
	}
	out := make([]CategorySummary, 0, len(counts))
	for cat, c := range counts {
		out = append(out, CategorySummary{Category: cat, Count: c})
	}
	return out, nil
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc := NewService(newMockRepo())

	note, err := svc.Create(context.Background(), Note{
		Date:  shared.NewDate(2025, time.August, 2),
		Title: "ซ่อมปั๊มน้ำ",
	})
	require.NoError(t, err)
	assert.Equal(t, CategoryGeneral, note.Category)
	assert.Equal(t, PriorityMedium, note.Priority)
}

func TestCreateRejectsUnknownEnums(t *testing.T) {
	svc := NewService(newMockRepo())
	date := shared.NewDate(2025, time.August, 2)

	_, err := svc.Create(context.Background(), Note{Date: date, Title: "x", Category: "พิเศษ"})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(context.Background(), Note{Date: date, Title: "x", Priority: "ด่วนมาก"})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateRequiresTitleAndDate(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Create(context.Background(), Note{Title: "x"})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(context.Background(), Note{Date: shared.NewDate(2025, time.August, 2), Title: "   "})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}
