package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/date"
	"github.com/etnz/capgains/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	start string
	end   string
	fy    string
	open  bool
	raw   bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display realized gains per scrip" }
func (*summaryCmd) Usage() string {
	return `cgt summary [-fy <year> | -s <date> -d <date>] [-open] [-md] <input>

  Displays the short and long term gains realized by the sales of each scrip, and the sales
  that exceed the units bought.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "First sale date to report on (YYYY-MM-DD), unbounded if empty.")
	f.StringVar(&c.end, "d", "", "Last sale date to report on (YYYY-MM-DD), unbounded if empty.")
	f.StringVar(&c.fy, "fy", "", "Financial year to report on, from April to March (YYYY or YYYY-YY).")
	f.BoolVar(&c.open, "open", false, "Also list the lots still open after all sales.")
	f.BoolVar(&c.raw, "md", false, "Print raw markdown instead of rendering it.")
}

func (c *summaryCmd) period() (date.Range, error) {
	if c.fy != "" {
		if c.start != "" || c.end != "" {
			return date.Range{}, errors.New("-fy cannot be used with -s or -d")
		}
		return date.ParseFinancialYear(c.fy)
	}
	var (
		r   date.Range
		err error
	)
	if c.start != "" {
		if r.From, err = date.Parse(c.start); err != nil {
			return r, fmt.Errorf("start date: %w", err)
		}
	}
	if c.end != "" {
		if r.To, err = date.Parse(c.end); err != nil {
			return r, fmt.Errorf("end date: %w", err)
		}
	}
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		return r, fmt.Errorf("end date %s is before start date %s", r.To, r.From)
	}
	return r, nil
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(stderr, "summary requires an input file, got %d arguments\n", f.NArg())
		return subcommands.ExitUsageError
	}
	period, err := c.period()
	if err != nil {
		fmt.Fprintf(stderr, "Error in reporting period: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	result, err := a.match(f.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	report := capgains.NewGainsReport(result, period)
	printMarkdown(renderer.GainsMarkdown(report, renderer.GainsRenderOptions{ShowOpen: c.open}), c.raw)
	return subcommands.ExitSuccess
}
