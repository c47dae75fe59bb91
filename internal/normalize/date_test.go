package normalize

import (
	"testing"
	"time"
)

func TestNormalizeDateCalendar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		year  int
		month time.Month
		day   int
	}{
		{name: "cjk", input: "2023年5月10日", year: 2023, month: time.May, day: 10},
		{name: "cjk zero padded", input: "2023年05月10日", year: 2023, month: time.May, day: 10},
		{name: "year first slash", input: "2023/05/10", year: 2023, month: time.May, day: 10},
		{name: "year first dash", input: "2023-05-10", year: 2023, month: time.May, day: 10},
		{name: "day first", input: "25/12/2023", year: 2023, month: time.December, day: 25},
		{name: "month first when second exceeds twelve", input: "12/25/2023", year: 2023, month: time.December, day: 25},
		{name: "ambiguous resolves day first", input: "05/10/2023", year: 2023, month: time.October, day: 5},
		{name: "dash day first", input: "25-12-2023", year: 2023, month: time.December, day: 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NormalizeDate(tt.input)
			d, ok := got.Date()
			if !ok {
				t.Fatalf("NormalizeDate(%q) = raw %q, want calendar date", tt.input, got.String())
			}
			if d.Year() != tt.year || d.Month() != tt.month || d.Day() != tt.day {
				t.Errorf("NormalizeDate(%q) = %v, want %04d-%02d-%02d", tt.input, d, tt.year, tt.month, tt.day)
			}
		})
	}
}

func TestNormalizeDateRawFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "no format markers", input: "unknown date"},
		{name: "empty", input: ""},
		{name: "invalid calendar date", input: "2023/13/40"},
		{name: "day out of range", input: "2023/02/30"},
		{name: "non numeric parts", input: "aa/bb/cc"},
		{name: "two parts only", input: "2023/05"},
		{name: "four parts", input: "2023/05/10/11"},
		{name: "cjk non numeric year", input: "二〇二三年5月10日"},
		{name: "cjk invalid month stays raw", input: "2023年13月10日"},
		// markers present but unparseable: the delimited branch must not run
		{name: "cjk exclusive precedence", input: "x年y月z日 2023/05/10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NormalizeDate(tt.input)
			if got.IsCalendar() {
				d, _ := got.Date()
				t.Fatalf("NormalizeDate(%q) parsed to %v, want raw passthrough", tt.input, d)
			}
			if got.String() != tt.input {
				t.Errorf("NormalizeDate(%q) raw = %q, want input unchanged", tt.input, got.String())
			}
		})
	}
}

func TestNormalizeDatePrefersSlash(t *testing.T) {
	t.Parallel()

	// slash wins when both delimiters appear; the dash stays inside a part
	// and fails integer parsing, so the whole string falls back to raw
	got := NormalizeDate("2023/05-10/11")
	if got.IsCalendar() {
		t.Fatalf("expected raw fallback, got calendar %s", got.String())
	}
}

func TestDateValueString(t *testing.T) {
	t.Parallel()

	if s := CalendarDate(2023, time.May, 10).String(); s != "2023-05-10" {
		t.Errorf("CalendarDate String = %q, want 2023-05-10", s)
	}
	if s := RawString("circa 1950").String(); s != "circa 1950" {
		t.Errorf("RawString String = %q, want input", s)
	}
}
