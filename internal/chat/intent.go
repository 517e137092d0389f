package chat

import (
	"regexp"
	"strings"
)

// rule pairs an intent with the substrings and patterns that trigger it.
// Matching is plain substring containment on the lower-cased input; Thai has
// no word boundaries, so collisions between rules are expected and resolved
// purely by position in the rules slice.
type rule struct {
	intent   Intent
	keywords []string
	patterns []*regexp.Regexp
}

// rules is the dispatch table. Order IS the priority: the first matching
// rule wins, so the more specific rules (last fertilizer, next harvest,
// note summary) sit above the broad ones that share their keywords.
var rules = []rule{
	{
		intent:   IntentGreeting,
		keywords: []string{"สวัสดี", "หวัดดี", "hello", "hi "},
		patterns: []*regexp.Regexp{regexp.MustCompile(`^hi$`)},
	},
	{
		intent:   IntentHelp,
		keywords: []string{"ช่วยเหลือ", "เมนู", "ทำอะไรได้", "ใช้ยังไง", "help"},
	},
	{
		intent:   IntentNextHarvest,
		keywords: []string{"เก็บเกี่ยวครั้งถัดไป", "เก็บเกี่ยวครั้งต่อไป", "เก็บเกี่ยวรอบถัดไป", "ตัดปาล์มครั้งต่อไป", "ตัดปาล์มรอบหน้า", "next harvest"},
	},
	{
		intent:   IntentLastFertilizer,
		keywords: []string{"ปุ๋ยล่าสุด", "ใส่ปุ๋ยครั้งล่าสุด", "ใส่ปุ๋ยเมื่อไหร่", "ใส่ปุ๋ยล่าสุด", "last fertilizer"},
	},
	{
		intent:   IntentTopTree,
		keywords: []string{"ต้นไหน", "ผลผลิตสูงสุด", "ผลผลิตมากที่สุด", "ทะลายมากที่สุด", "ต้นเด่น", "top tree"},
	},
	{
		intent:   IntentNoteSummary,
		keywords: []string{"สรุปบันทึก", "สรุปโน้ต", "บันทึกทั้งหมดกี่", "note summary"},
	},
	{
		intent:   IntentProfit,
		keywords: []string{"กำไร", "profit"},
	},
	{
		intent:   IntentRevenue,
		keywords: []string{"รายได้", "ยอดขาย", "revenue", "income"},
	},
	{
		intent:   IntentCost,
		keywords: []string{"ค่าใช้จ่าย", "ต้นทุน", "ค่าปุ๋ย", "cost"},
	},
	{
		intent:   IntentAvgPrice,
		keywords: []string{"ราคาเฉลี่ย", "average price"},
	},
	{
		intent:   IntentHarvestCount,
		keywords: []string{"เก็บเกี่ยวกี่ครั้ง", "ตัดปาล์มกี่ครั้ง", "กี่รอบ"},
	},
	{
		intent:   IntentWeight,
		keywords: []string{"น้ำหนัก", "กี่กิโล", "กี่ตัน", "weight"},
	},
	{
		intent:   IntentNoteSearch,
		keywords: []string{"บันทึก", "โน้ต", "หมายเหตุ", "note"},
	},
}

// MatchIntent classifies a question. Returns IntentNone when nothing
// matches; that is not an error, the caller answers with the help text.
func MatchIntent(input string) Intent {
	lower := strings.ToLower(input)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.intent
			}
		}
		for _, p := range r.patterns {
			if p.MatchString(strings.TrimSpace(lower)) {
				return r.intent
			}
		}
	}
	return IntentNone
}
