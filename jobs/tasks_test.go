package jobs

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palmledger/palmledger/internal/notes"
	"github.com/palmledger/palmledger/internal/shared"
	_ "github.com/palmledger/palmledger/testing"
)

const reminderAuthorID int64 = 1

type stubHarvests struct {
	latest shared.Date
	err    error
}

func (s *stubHarvests) LatestDate(ctx context.Context) (shared.Date, error) {
	return s.latest, s.err
}

type stubSink struct {
	created []notes.Note
}

func (s *stubSink) Create(ctx context.Context, note notes.Note) (notes.Note, error) {
	s.created = append(s.created, note)
	return note, nil
}

func runReminder(t *testing.T, harvests *stubHarvests, sink *stubSink, daysAhead int) error {
	t.Helper()
	task, err := NewHarvestReminderTask(HarvestReminderPayload{DaysAhead: daysAhead})
	require.NoError(t, err)
	handler := NewHarvestReminderHandler(harvests, sink, reminderAuthorID, slog.Default())
	return handler(context.Background(), task)
}

func TestHarvestReminderWritesNoteWhenDue(t *testing.T) {
	// Last harvest one cycle ago puts the next round on today.
	last := shared.DateOf(time.Now().AddDate(0, 0, -shared.HarvestCycleDays))
	sink := &stubSink{}

	err := runReminder(t, &stubHarvests{latest: last}, sink, 2)
	require.NoError(t, err)
	require.Len(t, sink.created, 1)
	assert.Equal(t, notes.CategoryImportant, sink.created[0].Category)
	assert.Equal(t, notes.PriorityHigh, sink.created[0].Priority)
	// notes.created_by references users(id), so the note must carry the
	// configured author and never a zero value.
	assert.Equal(t, reminderAuthorID, sink.created[0].CreatedBy)
}

func TestHarvestReminderSkipsWhenFarOff(t *testing.T) {
	last := shared.DateOf(time.Now())
	sink := &stubSink{}

	err := runReminder(t, &stubHarvests{latest: last}, sink, 2)
	require.NoError(t, err)
	assert.Empty(t, sink.created)
}

func TestHarvestReminderSkipsWithoutHistory(t *testing.T) {
	sink := &stubSink{}

	err := runReminder(t, &stubHarvests{err: shared.ErrNotFound}, sink, 2)
	require.NoError(t, err)
	assert.Empty(t, sink.created)
}
