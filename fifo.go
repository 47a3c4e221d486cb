package capgains

import (
	"slices"

	"github.com/etnz/capgains/date"
)

// MatchRecord is the realized gain of a lot fragment disposed of by a sale.
type MatchRecord struct {
	Scrip           string
	PurchaseDate    date.Date
	Quantity        Quantity
	PurchaseRate    Money
	PurchaseAmount  Money
	PurchaseExpense Money
	HoldingMonths   int
	SaleDate        date.Date
	SaleRate        Money
	SaleAmount      Money
	SaleExpense     Money
	ShortTermGain   Money
	LongTermGain    Money
}

func newMatchRecord(l *Lot, sale Transaction, matched Quantity, buyAmount, buyExpense Money) MatchRecord {
	// The sale is scaled against its original totals, unlike the lot that shrinks.
	saleAmount := sale.Amount.Mul(matched).Div(sale.Quantity)
	saleExpense := sale.Expenses.Mul(matched).Div(sale.Quantity)
	gain := saleAmount.Sub(buyAmount).Sub(saleExpense).Sub(buyExpense)

	r := MatchRecord{
		Scrip:           sale.Scrip,
		PurchaseDate:    l.Date,
		Quantity:        matched,
		PurchaseRate:    l.Rate,
		PurchaseAmount:  buyAmount,
		PurchaseExpense: buyExpense,
		HoldingMonths:   HoldingMonths(l.Date, sale.Date),
		SaleDate:        sale.Date,
		SaleRate:        sale.Rate,
		SaleAmount:      saleAmount,
		SaleExpense:     saleExpense,
		ShortTermGain:   gain.zero(),
		LongTermGain:    gain.zero(),
	}
	if IsLongTerm(r.HoldingMonths) {
		r.LongTermGain = gain
	} else {
		r.ShortTermGain = gain
	}
	return r
}

// IsLongTerm reports whether the gain of this record is a long term one.
func (r MatchRecord) IsLongTerm() bool { return IsLongTerm(r.HoldingMonths) }

// Gain returns the realized gain, whatever its term.
func (r MatchRecord) Gain() Money { return r.ShortTermGain.Add(r.LongTermGain) }

// Shortfall is the part of a sale that no purchase could cover.
type Shortfall struct {
	Sale     Transaction
	Quantity Quantity // unmatched quantity
}

// Result is the outcome of a FIFO matching run.
type Result struct {
	Records    []MatchRecord // in sale order, then FIFO order
	Shortfalls []Shortfall   // sales whose quantity exceeded the available lots
	Open       []Lot         // lots left after all sales, by scrip then FIFO order
}

// MatchFIFO matches every sale against the oldest purchases of the same scrip and returns the realized gains.
//
// Transactions are processed in date order, transactions of the same day keep their ledger order.
// Every purchase opens a lot; every sale consumes the lots of its scrip oldest first, splitting
// the last lot proportionally if needed. A sale larger than the available lots is matched as far
// as possible and the remainder is reported as a Shortfall.
//
// transactions is not modified.
func MatchFIFO(transactions []Transaction) *Result {
	ordered := slices.Clone(transactions)
	slices.SortStableFunc(ordered, func(a, b Transaction) int {
		return a.Date.Compare(b.Date)
	})

	pool := make(lotPool)
	var sales []Transaction
	for _, tx := range ordered {
		switch tx.Type {
		case Buy:
			pool.add(newLot(tx))
		case Sell:
			sales = append(sales, tx)
		}
	}

	result := &Result{}
	for _, sale := range sales {
		records, unmatched := pool.sell(sale)
		result.Records = append(result.Records, records...)
		if unmatched.IsPositive() {
			result.Shortfalls = append(result.Shortfalls, Shortfall{Sale: sale, Quantity: unmatched})
		}
	}
	result.Open = pool.open()
	return result
}
