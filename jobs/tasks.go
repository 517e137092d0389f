package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/palmledger/palmledger/internal/notes"
	"github.com/palmledger/palmledger/internal/shared"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskHarvestReminder checks whether the next harvest round is near and
	// drops an urgent note into the farm journal when it is.
	TaskHarvestReminder = "harvest:reminder"
)

// HarvestReminderPayload configures one reminder run.
type HarvestReminderPayload struct {
	// DaysAhead is how close the predicted round must be before a reminder
	// note is written. Zero means remind on the due day only.
	DaysAhead int `json:"days_ahead"`
}

// NewHarvestReminderTask constructs an Asynq task.
func NewHarvestReminderTask(payload HarvestReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskHarvestReminder, data), nil
}

// HarvestSource is the slice of the harvest module the reminder needs.
type HarvestSource interface {
	LatestDate(ctx context.Context) (shared.Date, error)
}

// NoteSink records the reminder in the farm journal.
type NoteSink interface {
	Create(ctx context.Context, note notes.Note) (notes.Note, error)
}

// NewHarvestReminderHandler builds the handler for TaskHarvestReminder.
// authorID is the user the reminder note is attributed to; notes require a
// valid author, so system writes carry the configured operator account.
func NewHarvestReminderHandler(harvests HarvestSource, sink NoteSink, authorID int64, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload HarvestReminderPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}

		last, err := harvests.LatestDate(ctx)
		if err != nil {
			// No harvest history yet, nothing to remind about.
			logger.Info("harvest reminder skipped", slog.Any("reason", err))
			return nil
		}

		next := shared.DateOf(last.AddDate(0, 0, shared.HarvestCycleDays))
		today := shared.DateOf(time.Now())
		days := int(next.Sub(today.Time).Hours() / 24)
		if days < 0 {
			days = 0
		}
		if days > payload.DaysAhead {
			logger.Info("harvest reminder not due",
				slog.String("next", next.Format(shared.DateLayout)),
				slog.Int("days_remaining", days))
			return nil
		}

		note := notes.Note{
			CreatedBy: authorID,
			Date:      today,
			Title:     "เตรียมเก็บเกี่ยวรอบถัดไป",
			Content:   fmt.Sprintf("คาดว่าถึงรอบเก็บเกี่ยววันที่ %s (อีก %d วัน)", next.Format(shared.DateLayout), days),
			Category:  notes.CategoryImportant,
			Priority:  notes.PriorityHigh,
		}
		if _, err := sink.Create(ctx, note); err != nil {
			return fmt.Errorf("write reminder note: %w", err)
		}
		logger.Info("harvest reminder written", slog.String("next", next.Format(shared.DateLayout)))
		return nil
	}
}
