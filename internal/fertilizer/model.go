package fertilizer

import (
	"time"

	"github.com/palmledger/palmledger/internal/shared"
)

// Record is one fertilizer application for the farm.
//
// TotalCost is derived: bags x cost per bag plus labor. The service
// recomputes it on every write.
type Record struct {
	ID             int64       `json:"id"`
	CreatedBy      int64       `json:"created_by"`
	Date           shared.Date `json:"date"`
	FertilizerType string      `json:"fertilizer_type"`
	AmountBags     float64     `json:"amount_bags"`
	CostPerBag     float64     `json:"cost_per_bag"`
	LaborCost      float64     `json:"labor_cost"`
	TotalCost      float64     `json:"total_cost"`
	Supplier       string      `json:"supplier"`
	Notes          string      `json:"notes"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// ListFilter scopes a fertilizer listing.
type ListFilter struct {
	From    *shared.Date
	To      *shared.Date
	Type    string
	Page    int
	PerPage int
}

func (r *Record) recompute() {
	r.TotalCost = r.AmountBags*r.CostPerBag + r.LaborCost
}
