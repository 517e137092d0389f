package notes

import (
	"time"

	"github.com/palmledger/palmledger/internal/shared"
)

// Category and priority values mirror the Thai labels the farm uses.
const (
	CategoryGeneral   = "ทั่วไป"
	CategoryImportant = "สำคัญ"
	CategoryUrgent    = "ด่วน"

	PriorityLow    = "ต่ำ"
	PriorityMedium = "ปานกลาง"
	PriorityHigh   = "สูง"
)

// Note is a free-form farm journal entry.
type Note struct {
	ID        int64       `json:"id"`
	CreatedBy int64       `json:"created_by"`
	Date      shared.Date `json:"date"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Category  string      `json:"category"`
	Priority  string      `json:"priority"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// SearchFilter scopes a note listing or search.
type SearchFilter struct {
	Keyword  string
	Category string
	Priority string
	On       *shared.Date
	From     *shared.Date
	To       *shared.Date
	Page     int
	PerPage  int
}

// CategorySummary is one row of the per-category note count.
type CategorySummary struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}
