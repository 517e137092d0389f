// Package thaidate resolves Thai-calendar text into Gregorian dates.
//
// Thai users mix Buddhist Era years (Gregorian + 543), Thai month names and
// their abbreviations, and English month names freely. Everything here is
// pure calendar arithmetic with no I/O.
package thaidate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FullMonths holds Thai month names indexed by time.Month - 1.
var FullMonths = [12]string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

// AbbrMonths holds Thai month abbreviations indexed by time.Month - 1.
var AbbrMonths = [12]string{
	"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

// Weekdays holds Thai weekday names indexed by time.Weekday.
var Weekdays = [7]string{
	"วันอาทิตย์", "วันจันทร์", "วันอังคาร", "วันพุธ", "วันพฤหัสบดี", "วันศุกร์", "วันเสาร์",
}

var englishMonths = [12]string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// monthTokens maps every accepted month spelling to its month number:
// full Thai name, Thai abbreviation (with and without trailing dot),
// English name, and English three-letter abbreviation.
var monthTokens = buildMonthTokens()

func buildMonthTokens() map[string]time.Month {
	tokens := make(map[string]time.Month, 12*5)
	for i := 0; i < 12; i++ {
		m := time.Month(i + 1)
		tokens[FullMonths[i]] = m
		tokens[AbbrMonths[i]] = m
		tokens[strings.TrimSuffix(AbbrMonths[i], ".")] = m
		tokens[englishMonths[i]] = m
		tokens[englishMonths[i][:3]] = m
	}
	return tokens
}

// MonthFromToken resolves a month token: a number 1-12, a Thai full or
// abbreviated month name, or an English name or abbreviation.
func MonthFromToken(token string) (time.Month, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(token); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), true
		}
		return 0, false
	}
	m, ok := monthTokens[token]
	return m, ok
}

// ToGregorianYear converts a Buddhist Era year to Gregorian. Years at or
// below 2400 are assumed to be Gregorian already.
func ToGregorianYear(year int) int {
	if year > 2400 {
		return year - 543
	}
	return year
}

// ToBuddhistYear converts a Gregorian year to Buddhist Era.
func ToBuddhistYear(year int) int {
	return year + 543
}

var (
	slashDatePattern = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})$`)
	namedDatePattern = regexp.MustCompile(`^(\d{1,2})\s+(\S+)\s+(\d{4})$`)
	isoDatePattern   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

// Parse normalizes a free-text date. Three formats are tried in order:
// D/M/YYYY (or D-M-YYYY), "D <month-name> YYYY", and YYYY-MM-DD. The first
// two treat Buddhist Era years as such. The boolean result is false when no
// format matches; callers must treat that as "unresolved", never as a date.
func Parse(input string) (time.Time, bool) {
	input = strings.TrimSpace(input)

	if m := slashDatePattern.FindStringSubmatch(input); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return makeDate(ToGregorianYear(year), time.Month(month), day)
	}

	if m := namedDatePattern.FindStringSubmatch(input); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, ok := MonthFromToken(m[2])
		if !ok {
			return time.Time{}, false
		}
		year, _ := strconv.Atoi(m[3])
		return makeDate(ToGregorianYear(year), month, day)
	}

	if m := isoDatePattern.FindStringSubmatch(input); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return makeDate(year, time.Month(month), day)
	}

	return time.Time{}, false
}

func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 || day > daysIn(year, month) {
		return time.Time{}, false
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local), true
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Format renders a date as a full Thai sentence fragment with weekday,
// full month name, and Buddhist Era year, e.g. "วันเสาร์ที่ 25 ตุลาคม 2568".
func Format(t time.Time) string {
	return Weekdays[t.Weekday()] + "ที่ " +
		strconv.Itoa(t.Day()) + " " +
		FullMonths[t.Month()-1] + " " +
		strconv.Itoa(ToBuddhistYear(t.Year()))
}

// FormatShort renders a date as "25 ตุลาคม 2568" without the weekday.
func FormatShort(t time.Time) string {
	return strconv.Itoa(t.Day()) + " " +
		FullMonths[t.Month()-1] + " " +
		strconv.Itoa(ToBuddhistYear(t.Year()))
}

// MonthRange returns the first and last day of the given month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// YearRange returns January 1 and December 31 of the given year.
func YearRange(year int) (time.Time, time.Time) {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local)
}
