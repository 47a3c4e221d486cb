package capgains

import "github.com/etnz/capgains/date"

const (
	// DaysPerMonth is the fixed month length used to count holding periods.
	DaysPerMonth = 30
	// LongTermMonths is the holding period from which a gain is long term.
	LongTermMonths = 12
)

// HoldingMonths returns the number of whole 30-day months between the purchase and the sale.
// It rounds toward minus infinity, so a sale dated before its purchase has a negative period.
func HoldingMonths(bought, sold date.Date) int {
	days := date.Days(bought, sold)
	months := days / DaysPerMonth
	if days%DaysPerMonth != 0 && days < 0 {
		months--
	}
	return months
}

// IsLongTerm reports whether a holding period in months qualifies as long term.
func IsLongTerm(months int) bool { return months >= LongTermMonths }
