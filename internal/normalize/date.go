package normalize

import (
	"strconv"
	"strings"
	"time"
)

// DateValue is a normalized publication date. It holds exactly one variant:
// a valid calendar date, or the raw input string when no supported format
// could be parsed. The raw variant is deliberately preserved unchanged so
// that review tooling can surface it downstream.
type DateValue struct {
	date time.Time
	raw  string
	ok   bool
}

// CalendarDate builds the parsed variant. The caller is responsible for
// passing a valid Gregorian date; NormalizeDate always does.
func CalendarDate(year int, month time.Month, day int) DateValue {
	return DateValue{date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), ok: true}
}

// RawString builds the unparsed variant.
func RawString(s string) DateValue {
	return DateValue{raw: s}
}

// IsCalendar reports whether the value carries a parsed calendar date.
func (v DateValue) IsCalendar() bool { return v.ok }

// Date returns the parsed date and true, or the zero time and false for the
// raw variant.
func (v DateValue) Date() (time.Time, bool) { return v.date, v.ok }

// String renders a parsed date as YYYY-MM-DD and the raw variant verbatim.
func (v DateValue) String() string {
	if v.ok {
		return v.date.Format("2006-01-02")
	}
	return v.raw
}

const (
	yearMarker  = "年"
	monthMarker = "月"
	dayMarker   = "日"
)

// NormalizeDate parses a free-form publication date string. It is total:
// any input that fails to parse comes back unchanged as the raw variant.
//
// Formats are tried in priority order:
//  1. CJK: YYYY年MM月DD日. When all three markers are present this format
//     is exclusive; a failed parse falls back to the raw string without
//     trying the delimited form.
//  2. Delimited: three numeric parts split on "/" (preferred) or "-".
//     A 4-character first part reads as year-first; otherwise the second
//     part disambiguates (value > 12 means month-first, else day-first).
//  3. Anything else passes through as the raw string.
func NormalizeDate(input string) DateValue {
	if strings.Contains(input, yearMarker) &&
		strings.Contains(input, monthMarker) &&
		strings.Contains(input, dayMarker) {
		if v, ok := parseCJKDate(input); ok {
			return v
		}
		return RawString(input)
	}

	if strings.ContainsAny(input, "/-") {
		if v, ok := parseDelimitedDate(input); ok {
			return v
		}
	}

	return RawString(input)
}

func parseCJKDate(s string) (DateValue, bool) {
	yearPart, rest, _ := strings.Cut(s, yearMarker)
	monthPart, rest, _ := strings.Cut(rest, monthMarker)
	dayPart, _, _ := strings.Cut(rest, dayMarker)

	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return DateValue{}, false
	}
	month, err := strconv.Atoi(monthPart)
	if err != nil {
		return DateValue{}, false
	}
	day, err := strconv.Atoi(dayPart)
	if err != nil {
		return DateValue{}, false
	}
	return makeCalendarDate(year, month, day)
}

func parseDelimitedDate(s string) (DateValue, bool) {
	sep := "-"
	if strings.Contains(s, "/") {
		sep = "/"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return DateValue{}, false
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return DateValue{}, false
		}
		nums[i] = n
	}

	var year, month, day int
	switch {
	case len(parts[0]) == 4:
		year, month, day = nums[0], nums[1], nums[2]
	case nums[1] > 12:
		// second part cannot be a month, so the first must be
		month, day, year = nums[0], nums[1], nums[2]
	default:
		// ambiguous; day-first is the best-effort default
		day, month, year = nums[0], nums[1], nums[2]
	}
	return makeCalendarDate(year, month, day)
}

// makeCalendarDate validates (y,m,d) as a real Gregorian date. time.Date
// normalizes out-of-range components (month 13 rolls into the next year),
// so a round-trip comparison catches them.
func makeCalendarDate(year, month, day int) (DateValue, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return DateValue{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return DateValue{}, false
	}
	return DateValue{date: t, ok: true}, true
}
