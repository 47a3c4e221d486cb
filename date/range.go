package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Range represents a range of dates, boundaries included.
// A zero From or To leaves that side open.
type Range struct{ From, To Date }

// IsZero returns true if neither side of the range is bounded.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool {
	if !r.From.IsZero() && date.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && date.After(r.To) {
		return false
	}
	return true
}

// String returns a human readable form of the range.
func (r Range) String() string {
	switch {
	case r.IsZero():
		return "all dates"
	case r.From.IsZero():
		return fmt.Sprintf("up to %s", r.To)
	case r.To.IsZero():
		return fmt.Sprintf("from %s", r.From)
	default:
		return fmt.Sprintf("%s to %s", r.From, r.To)
	}
}

// FinancialYear returns the April to March financial year starting in year.
func FinancialYear(year int) Range {
	return Range{From: New(year, time.April, 1), To: New(year+1, time.March, 31)}
}

// FinancialYearOf returns the financial year that includes d.
func FinancialYearOf(d Date) Range {
	year := d.Year()
	if d.Month() < time.April {
		year--
	}
	return FinancialYear(year)
}

// ParseFinancialYear parses a financial year written either as its first year ("2021") or as
// both years ("2021-22" or "2021-2022").
func ParseFinancialYear(s string) (Range, error) {
	s = strings.TrimSpace(s)
	first, second, split := strings.Cut(s, "-")
	year, err := strconv.Atoi(first)
	if err != nil || len(first) != 4 {
		return Range{}, fmt.Errorf("invalid financial year %q, want YYYY or YYYY-YY", s)
	}
	if split {
		next := year + 1
		want := strconv.Itoa(next)
		if len(second) == 2 {
			want = fmt.Sprintf("%02d", next%100)
		}
		if second != want {
			return Range{}, fmt.Errorf("invalid financial year %q, %s must be followed by %d", s, first, next)
		}
	}
	return FinancialYear(year), nil
}
