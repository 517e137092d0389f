package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchIntent(t *testing.T) {
	cases := []struct {
		input string
		want  Intent
	}{
		{"สวัสดีครับ", IntentGreeting},
		{"hello", IntentGreeting},
		{"hi", IntentGreeting},
		{"ใช้ยังไง", IntentHelp},
		{"เก็บเกี่ยวครั้งถัดไปเมื่อไหร่", IntentNextHarvest},
		{"ตัดปาล์มรอบหน้าวันไหน", IntentNextHarvest},
		{"ใส่ปุ๋ยล่าสุดเมื่อไหร่", IntentLastFertilizer},
		{"ต้นไหนให้ผลผลิตเยอะสุด", IntentTopTree},
		{"สรุปบันทึกให้หน่อย", IntentNoteSummary},
		{"กำไรเดือนนี้เท่าไหร่", IntentProfit},
		{"รายได้เดือนที่แล้ว", IntentRevenue},
		{"ค่าใช้จ่ายปีนี้", IntentCost},
		{"ราคาเฉลี่ยเดือนนี้", IntentAvgPrice},
		{"เดือนนี้เก็บเกี่ยวกี่ครั้ง", IntentHarvestCount},
		{"น้ำหนักรวมเดือนนี้", IntentWeight},
		{"บันทึกเกี่ยวกับปั๊มน้ำ", IntentNoteSearch},
		{"ขายปาล์มที่ไหนดี", IntentNone},
		{"", IntentNone},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MatchIntent(tc.input), "input %q", tc.input)
	}
}

// Overlapping keywords resolve by rule order, so phrasing that mentions both
// fertilizer and cost must land on the more specific rule first.
func TestMatchIntentOrder(t *testing.T) {
	// "ใส่ปุ๋ยล่าสุด" contains keywords of last-fertilizer; a plain cost
	// question about fertilizer spend falls through to cost.
	assert.Equal(t, IntentLastFertilizer, MatchIntent("ใส่ปุ๋ยล่าสุดจ่ายไปเท่าไหร่"))
	assert.Equal(t, IntentCost, MatchIntent("ค่าปุ๋ยเดือนนี้เท่าไหร่"))

	// A note question about profit keeps the note intent only when nothing
	// above note-search matches first.
	assert.Equal(t, IntentProfit, MatchIntent("บันทึกกำไรเดือนนี้"))
	assert.Equal(t, IntentNoteSearch, MatchIntent("บันทึกเรื่องฝนตก"))

	// Note summary outranks plain note search.
	assert.Equal(t, IntentNoteSummary, MatchIntent("สรุปบันทึกทั้งหมด"))
}
