package capgains

import "github.com/etnz/capgains/date"

// INR is a helper for test to create rupee money from const
func INR(v float64) Money { return M(v, "INR") }

// on is a helper for test to parse an ISO date.
func on(s string) date.Date { return date.MustParse(s) }

// buy is a helper for test to create a purchase where the amount is rate*quantity.
func buy(day, scrip string, quantity, rate, expenses float64) Transaction {
	return NewBuy(on(day), scrip, Q(quantity), INR(rate), INR(rate*quantity), INR(expenses))
}

// sell is a helper for test to create a sale where the amount is rate*quantity.
func sell(day, scrip string, quantity, rate, expenses float64) Transaction {
	return NewSell(on(day), scrip, Q(quantity), INR(rate), INR(rate*quantity), INR(expenses))
}
