package thaidate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBuddhistYearForms(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"8 สิงหาคม 2568", "2025-08-08"},
		{"8/8/2568", "2025-08-08"},
		{"8-8-2568", "2025-08-08"},
		{"25 ต.ค. 2568", "2025-10-25"},
		{"25 oct 2568", "2025-10-25"},
		{"1 january 2024", "2024-01-01"},
		{"2025-08-08", "2025-08-08"},
	}
	for _, tc := range cases {
		got, ok := Parse(tc.input)
		require.True(t, ok, "parse %q", tc.input)
		assert.Equal(t, tc.want, got.Format("2006-01-02"), "parse %q", tc.input)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, input := range []string{
		"",
		"พรุ่งนี้",
		"32/1/2568",
		"30 กุมภาพันธ์ 2568",
		"8 สิงหา 2568",
		"8/13/2568",
	} {
		_, ok := Parse(input)
		assert.False(t, ok, "input %q must not parse", input)
	}
}

func TestMonthFromToken(t *testing.T) {
	cases := []struct {
		token string
		want  time.Month
	}{
		{"สิงหาคม", time.August},
		{"ส.ค.", time.August},
		{"ส.ค", time.August},
		{"august", time.August},
		{"AUG", time.August},
		{"8", time.August},
		{"มกราคม", time.January},
		{"ธ.ค.", time.December},
		{"dec", time.December},
		{"12", time.December},
	}
	for _, tc := range cases {
		got, ok := MonthFromToken(tc.token)
		require.True(t, ok, "token %q", tc.token)
		assert.Equal(t, tc.want, got, "token %q", tc.token)
	}

	for _, token := range []string{"", "0", "13", "สิงหา", "augu"} {
		_, ok := MonthFromToken(token)
		assert.False(t, ok, "token %q must not resolve", token)
	}
}

func TestYearConversion(t *testing.T) {
	assert.Equal(t, 2025, ToGregorianYear(2568))
	assert.Equal(t, 2025, ToGregorianYear(2025))
	assert.Equal(t, 2400, ToGregorianYear(2400))
	assert.Equal(t, 2568, ToBuddhistYear(2025))
}

func TestFormat(t *testing.T) {
	// 2025-10-25 is a Saturday.
	d := time.Date(2025, time.October, 25, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "วันเสาร์ที่ 25 ตุลาคม 2568", Format(d))
	assert.Equal(t, "25 ตุลาคม 2568", FormatShort(d))
}

func TestMonthRange(t *testing.T) {
	first, last := MonthRange(2024, time.February)
	assert.Equal(t, "2024-02-01", first.Format("2006-01-02"))
	assert.Equal(t, "2024-02-29", last.Format("2006-01-02"))

	first, last = MonthRange(2025, time.December)
	assert.Equal(t, "2025-12-01", first.Format("2006-01-02"))
	assert.Equal(t, "2025-12-31", last.Format("2006-01-02"))
}

func TestYearRange(t *testing.T) {
	first, last := YearRange(2025)
	assert.Equal(t, "2025-01-01", first.Format("2006-01-02"))
	assert.Equal(t, "2025-12-31", last.Format("2006-01-02"))
}
