package chat

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/palmledger/palmledger/internal/thaidate"
)

// Period is the date window a question refers to. Both bounds are
// inclusive calendar days.
type Period struct {
	From  time.Time
	To    time.Time
	Label string
}

// explicitMonthPattern captures "เดือนสิงหาคม", "เดือน ส.ค. 2568",
// "เดือน 8 ปี 2568" and the like. Year is optional.
var explicitMonthPattern = regexp.MustCompile(`เดือน\s*(\S+)(?:\s*(?:ปี\s*)?(\d{4}))?`)

// ResolvePeriod extracts the date window a question asks about. Relative
// words win over an explicit month mention. When the question names no
// period at all the current month is assumed.
func ResolvePeriod(input string, now time.Time) Period {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if strings.Contains(input, "วันนี้") {
		return Period{From: today, To: today, Label: "วันนี้"}
	}
	if strings.Contains(input, "เดือนที่แล้ว") || strings.Contains(input, "เดือนก่อน") {
		// AddDate(0, -1, 0) normalizes forward on month-end days, so step
		// back from the first of the current month instead.
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		prev := first.AddDate(0, 0, -1)
		from, to := thaidate.MonthRange(prev.Year(), prev.Month())
		return Period{From: from, To: to, Label: "เดือนที่แล้ว"}
	}
	if strings.Contains(input, "ปีนี้") {
		from, to := thaidate.YearRange(today.Year())
		return Period{From: from, To: to, Label: "ปีนี้"}
	}

	if m := explicitMonthPattern.FindStringSubmatch(input); m != nil {
		if month, ok := thaidate.MonthFromToken(strings.TrimSuffix(m[1], "นี้")); ok {
			year := today.Year()
			if m[2] != "" {
				if y, err := strconv.Atoi(m[2]); err == nil {
					year = thaidate.ToGregorianYear(y)
				}
			}
			from, to := thaidate.MonthRange(year, month)
			label := "เดือน" + thaidate.FullMonths[month-1] + " " + strconv.Itoa(thaidate.ToBuddhistYear(year))
			return Period{From: from, To: to, Label: label}
		}
	}

	from, to := thaidate.MonthRange(today.Year(), today.Month())
	return Period{From: from, To: to, Label: "เดือนนี้"}
}
