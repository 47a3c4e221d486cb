package capgains

import (
	"slices"
	"strings"

	"github.com/etnz/capgains/date"
)

// Lot is what remains of a single purchase of a scrip, used for FIFO matching.
//
// Quantity, Amount and Expenses are the unconsumed parts of the purchase, they shrink each time a
// sale consumes part of the lot.
type Lot struct {
	Scrip    string
	Date     date.Date
	Rate     Money
	Quantity Quantity
	Amount   Money
	Expenses Money
}

func newLot(tx Transaction) *Lot {
	return &Lot{
		Scrip:    tx.Scrip,
		Date:     tx.Date,
		Rate:     tx.Rate,
		Quantity: tx.Quantity,
		Amount:   tx.Amount,
		Expenses: tx.Expenses,
	}
}

// consume takes q units out of the lot and returns the matching share of its remaining amount and expenses.
// q must not exceed the lot quantity.
func (l *Lot) consume(q Quantity) (amount, expenses Money) {
	if q.Equal(l.Quantity) {
		// The last units carry whatever is left, so that a lot is always fully accounted for.
		amount, expenses = l.Amount, l.Expenses
	} else {
		amount = l.Amount.Mul(q).Div(l.Quantity)
		expenses = l.Expenses.Mul(q).Div(l.Quantity)
	}
	l.Quantity = l.Quantity.Sub(q)
	l.Amount = l.Amount.Sub(amount)
	l.Expenses = l.Expenses.Sub(expenses)
	return amount, expenses
}

// lots is a FIFO queue of lots of the same scrip, oldest first.
type lots []*Lot

// Total returns the quantity available in all lots.
func (l lots) Total() Quantity {
	var total Quantity
	for _, current := range l {
		total = total.Add(current.Quantity)
	}
	return total
}

// lotPool holds the open lots of every scrip.
type lotPool map[string]lots

// add appends a lot to the queue of its scrip. Lots must be added oldest first.
func (p lotPool) add(l *Lot) {
	p[l.Scrip] = append(p[l.Scrip], l)
}

// sell consumes the oldest lots of the sale's scrip until the sale quantity is exhausted or no lot remains.
// It returns one record per consumed lot fragment and the quantity that could not be matched.
func (p lotPool) sell(sale Transaction) ([]MatchRecord, Quantity) {
	queue := p[sale.Scrip]
	remaining := sale.Quantity
	var records []MatchRecord

	for len(queue) > 0 && remaining.IsPositive() {
		current := queue[0]
		matched := current.Quantity.Min(remaining)
		buyAmount, buyExpense := current.consume(matched)

		records = append(records, newMatchRecord(current, sale, matched, buyAmount, buyExpense))
		remaining = remaining.Sub(matched)

		if current.Quantity.IsZero() {
			queue = queue[1:]
		}
	}

	if len(queue) == 0 {
		delete(p, sale.Scrip)
	} else {
		p[sale.Scrip] = queue
	}
	return records, remaining
}

// open returns a copy of the remaining lots ordered by scrip, then FIFO order.
func (p lotPool) open() []Lot {
	scrips := make([]string, 0, len(p))
	for scrip := range p {
		scrips = append(scrips, scrip)
	}
	slices.SortFunc(scrips, strings.Compare)

	var open []Lot
	for _, scrip := range scrips {
		for _, l := range p[scrip] {
			open = append(open, *l)
		}
	}
	return open
}
