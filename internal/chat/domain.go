// Package chat implements the rule-based Thai question dispatcher behind
// POST /api/chat. Each question is matched to a fixed intent, resolved to a
// date scope when one is needed, answered with one parameterized aggregate
// query, and formatted as a Thai sentence. Calls are stateless: the same
// question over unchanged data yields the same answer.
package chat

import "time"

// Intent tags the canned query/response a question maps to.
type Intent string

const (
	IntentNone           Intent = "none"
	IntentGreeting       Intent = "greeting"
	IntentHelp           Intent = "help"
	IntentNextHarvest    Intent = "next_harvest"
	IntentLastFertilizer Intent = "last_fertilizer"
	IntentTopTree        Intent = "top_tree"
	IntentProfit         Intent = "profit"
	IntentRevenue        Intent = "revenue"
	IntentCost           Intent = "cost"
	IntentWeight         Intent = "weight"
	IntentAvgPrice       Intent = "avg_price"
	IntentHarvestCount   Intent = "harvest_count"
	IntentNoteSummary    Intent = "note_summary"
	IntentNoteSearch     Intent = "note_search"
)

// Reply is the dispatcher's answer to one question.
type Reply struct {
	Message   string    `json:"message"`
	Intent    Intent    `json:"intent"`
	Timestamp time.Time `json:"timestamp"`
}
