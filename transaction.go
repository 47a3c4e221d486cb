package capgains

import (
	"errors"
	"fmt"

	"github.com/etnz/capgains/date"
)

// Transaction is a single line of the ledger: a purchase or a sale of a scrip.
//
// Amount and Rate are independent: Amount is the gross consideration actually paid or received and
// is not required to equal Rate * Quantity.
type Transaction struct {
	Scrip    string
	Type     TransactionType
	Date     date.Date
	Quantity Quantity
	Rate     Money // price per unit
	Amount   Money // gross consideration
	Expenses Money // brokerage, taxes and other transaction costs
}

// NewBuy creates a purchase transaction.
func NewBuy(on date.Date, scrip string, quantity Quantity, rate, amount, expenses Money) Transaction {
	return Transaction{Scrip: scrip, Type: Buy, Date: on, Quantity: quantity, Rate: rate, Amount: amount, Expenses: expenses}
}

// NewSell creates a sale transaction.
func NewSell(on date.Date, scrip string, quantity Quantity, rate, amount, expenses Money) Transaction {
	return Transaction{Scrip: scrip, Type: Sell, Date: on, Quantity: quantity, Rate: rate, Amount: amount, Expenses: expenses}
}

// Validate checks the transaction is usable for matching and returns all the failures found.
func (t Transaction) Validate() error {
	var errs []error
	if t.Scrip == "" {
		errs = append(errs, errors.New("scrip name is empty"))
	}
	if t.Type != Buy && t.Type != Sell {
		errs = append(errs, fmt.Errorf("invalid transaction type %d", t.Type))
	}
	if t.Date.IsZero() {
		errs = append(errs, errors.New("transaction date is missing"))
	}
	if !t.Quantity.IsPositive() {
		errs = append(errs, fmt.Errorf("quantity must be positive, got %s", t.Quantity))
	}
	if !t.Rate.IsPositive() {
		errs = append(errs, fmt.Errorf("rate must be positive, got %s", t.Rate.Decimal()))
	}
	if t.Amount.IsNegative() {
		errs = append(errs, fmt.Errorf("amount must not be negative, got %s", t.Amount.Decimal()))
	}
	if t.Expenses.IsNegative() {
		errs = append(errs, fmt.Errorf("expenses must not be negative, got %s", t.Expenses.Decimal()))
	}
	return errors.Join(errs...)
}
