package harvest

import (
	"time"

	"github.com/palmledger/palmledger/internal/shared"
)

// Record is one harvest event for the farm.
//
// TotalRevenue and NetProfit are derived: revenue = main weight x price plus
// the fallen-fruit component, profit = revenue minus harvesting cost. The
// service recomputes both on every write, so stored values always satisfy
// the invariant regardless of what the client sent.
type Record struct {
	ID                int64       `json:"id"`
	CreatedBy         int64       `json:"created_by"`
	Date              shared.Date `json:"date"`
	TotalWeightKg     float64     `json:"total_weight_kg"`
	PricePerKg        float64     `json:"price_per_kg"`
	FallenWeightKg    float64     `json:"fallen_weight_kg"`
	FallenPricePerKg  float64     `json:"fallen_price_per_kg"`
	TotalRevenue      float64     `json:"total_revenue"`
	HarvestingCost    float64     `json:"harvesting_cost"`
	NetProfit         float64     `json:"net_profit"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// Summary aggregates harvest records over a date range.
type Summary struct {
	Records       int     `json:"records"`
	TotalWeightKg float64 `json:"total_weight_kg"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalCost     float64 `json:"total_cost"`
	NetProfit     float64 `json:"net_profit"`
	AvgPricePerKg float64 `json:"avg_price_per_kg"`
}

// ListFilter scopes a harvest listing.
type ListFilter struct {
	From    *shared.Date
	To      *shared.Date
	Page    int
	PerPage int
}

func (r *Record) recompute() {
	r.TotalRevenue = r.TotalWeightKg*r.PricePerKg + r.FallenWeightKg*r.FallenPricePerKg
	r.NetProfit = r.TotalRevenue - r.HarvestingCost
}
