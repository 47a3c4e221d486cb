package renderer

import (
	"github.com/etnz/capgains"
)

// Gains is a struct to represent a gains report for rendering.
type Gains struct {
	Period     string
	Scrips     []GainsRow
	Total      GainsRow
	Shortfalls []ShortfallRow
	Open       []LotRow
}

// GainsRow holds the realized gains of a scrip, or their total.
type GainsRow struct {
	Scrip          string
	Quantity       string
	SaleAmount     string
	PurchaseAmount string
	Expenses       string
	ShortTerm      string
	LongTerm       string
	Gain           string
}

// ShortfallRow is a sale that could not be fully matched.
type ShortfallRow struct {
	Scrip     string
	Date      string
	Sold      string
	Uncovered string
}

// LotRow is a purchase still open.
type LotRow struct {
	Scrip    string
	Date     string
	Quantity string
	Rate     string
	Amount   string
	Expenses string
}

func newGainsRow(g capgains.ScripGains) GainsRow {
	return GainsRow{
		Scrip:          cell(g.Scrip),
		Quantity:       g.Quantity.String(),
		SaleAmount:     g.SaleAmount.String(),
		PurchaseAmount: g.PurchaseAmount.String(),
		Expenses:       g.Expenses.String(),
		ShortTerm:      g.ShortTerm.SignedString(),
		LongTerm:       g.LongTerm.SignedString(),
		Gain:           g.Gain().SignedString(),
	}
}

// NewGains converts a gains report into its renderable form.
func NewGains(report *capgains.GainsReport) *Gains {
	g := &Gains{
		Period: report.Range.String(),
		Total:  newGainsRow(report.Total),
		Open:   NewLots(report.Open),
	}
	for _, s := range report.Scrips {
		g.Scrips = append(g.Scrips, newGainsRow(s))
	}
	for _, s := range report.Shortfalls {
		g.Shortfalls = append(g.Shortfalls, ShortfallRow{
			Scrip:     cell(s.Sale.Scrip),
			Date:      s.Sale.Date.String(),
			Sold:      s.Sale.Quantity.String(),
			Uncovered: s.Quantity.String(),
		})
	}
	return g
}

// NewLots converts open lots into their renderable form.
func NewLots(open []capgains.Lot) []LotRow {
	rows := make([]LotRow, 0, len(open))
	for _, l := range open {
		rows = append(rows, LotRow{
			Scrip:    cell(l.Scrip),
			Date:     l.Date.String(),
			Quantity: l.Quantity.String(),
			Rate:     l.Rate.String(),
			Amount:   l.Amount.String(),
			Expenses: l.Expenses.String(),
		})
	}
	return rows
}
