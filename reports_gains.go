package capgains

import (
	"slices"
	"strings"

	"github.com/etnz/capgains/date"
)

// GainsReport sums up realized gains per scrip.
type GainsReport struct {
	Range      date.Range // sale dates covered, zero for all
	Scrips     []ScripGains
	Total      ScripGains
	Shortfalls []Shortfall
	Open       []Lot
}

// ScripGains holds the realized gains for a single scrip.
type ScripGains struct {
	Scrip          string
	Quantity       Quantity // units sold
	SaleAmount     Money
	PurchaseAmount Money
	Expenses       Money // purchase and sale expenses
	ShortTerm      Money
	LongTerm       Money
}

// Gain returns the total realized gain.
func (g ScripGains) Gain() Money { return g.ShortTerm.Add(g.LongTerm) }

func (g *ScripGains) add(r MatchRecord) {
	g.Quantity = g.Quantity.Add(r.Quantity)
	g.SaleAmount = g.SaleAmount.Add(r.SaleAmount)
	g.PurchaseAmount = g.PurchaseAmount.Add(r.PurchaseAmount)
	g.Expenses = g.Expenses.Add(r.PurchaseExpense).Add(r.SaleExpense)
	g.ShortTerm = g.ShortTerm.Add(r.ShortTermGain)
	g.LongTerm = g.LongTerm.Add(r.LongTermGain)
}

// NewGainsReport computes the realized gains of the sales dated within period.
//
// Shortfalls are restricted to the period too, open lots are the ones left after all sales.
func NewGainsReport(result *Result, period date.Range) *GainsReport {
	report := &GainsReport{
		Range: period,
		Total: ScripGains{Scrip: "Total"},
		Open:  result.Open,
	}

	index := make(map[string]*ScripGains)
	for _, r := range result.Records {
		if !period.Contains(r.SaleDate) {
			continue
		}
		g, exists := index[r.Scrip]
		if !exists {
			g = &ScripGains{Scrip: r.Scrip}
			index[r.Scrip] = g
		}
		g.add(r)
		report.Total.add(r)
	}

	for _, g := range index {
		report.Scrips = append(report.Scrips, *g)
	}
	slices.SortFunc(report.Scrips, func(a, b ScripGains) int {
		return strings.Compare(a.Scrip, b.Scrip)
	})

	for _, s := range result.Shortfalls {
		if period.Contains(s.Sale.Date) {
			report.Shortfalls = append(report.Shortfalls, s)
		}
	}
	return report
}
