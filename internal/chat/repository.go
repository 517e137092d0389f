package chat

import (
	"context"

	"github.com/palmledger/palmledger/internal/fertilizer"
	"github.com/palmledger/palmledger/internal/harvest"
	"github.com/palmledger/palmledger/internal/notes"
	"github.com/palmledger/palmledger/internal/palmtree"
	"github.com/palmledger/palmledger/internal/shared"
)

// The dispatcher reads from the other modules through narrow interfaces so
// tests can stub each source independently. The pgx repositories satisfy
// them as-is.

type HarvestSource interface {
	Summarize(ctx context.Context, from, to shared.Date) (harvest.Summary, error)
	LatestDate(ctx context.Context) (shared.Date, error)
}

type FertilizerSource interface {
	TotalCost(ctx context.Context, from, to shared.Date) (float64, int, error)
	LastApplication(ctx context.Context) (fertilizer.Record, error)
}

type TreeSource interface {
	Ranking(ctx context.Context, from, to *shared.Date, limit int) ([]palmtree.TreeRank, error)
}

type NoteSource interface {
	Search(ctx context.Context, filter notes.SearchFilter) ([]notes.Note, int, error)
	CountByCategory(ctx context.Context) ([]notes.CategorySummary, error)
}
