package palmtree

import (
	"time"

	"github.com/palmledger/palmledger/internal/shared"
)

// Record is one per-tree harvest observation. TreeID is a grid label such
// as "A1" or "L26", not a foreign key; records for the same label accumulate
// over time.
type Record struct {
	ID          int64       `json:"id"`
	CreatedBy   int64       `json:"created_by"`
	TreeID      string      `json:"tree_id"`
	HarvestDate shared.Date `json:"harvest_date"`
	BunchCount  int         `json:"bunch_count"`
	Notes       string      `json:"notes"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// TreeRank is one row of the bunch-sum ranking.
type TreeRank struct {
	TreeID       string  `json:"tree_id"`
	TotalBunches int     `json:"total_bunches"`
	Harvests     int     `json:"harvests"`
	AvgBunches   float64 `json:"avg_bunches"`
}

// Prediction is the projected next harvest round for one tree.
type Prediction struct {
	TreeID        string      `json:"tree_id"`
	LastHarvest   shared.Date `json:"last_harvest"`
	NextHarvest   shared.Date `json:"next_harvest"`
	DaysRemaining int         `json:"days_remaining"`
}

// ListFilter scopes a palm tree record listing.
type ListFilter struct {
	TreeID  string
	From    *shared.Date
	To      *shared.Date
	Page    int
	PerPage int
}
