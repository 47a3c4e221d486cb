package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/capgains"
	"github.com/google/subcommands"
)

// computeCmd writes the capital gains table of a ledger.
type computeCmd struct{}

func (*computeCmd) Name() string     { return "compute" }
func (*computeCmd) Synopsis() string { return "compute FIFO capital gains from a transaction ledger" }
func (*computeCmd) Usage() string {
	return `cgt compute <input> <output>

  Reads the buy and sell transactions from <input> (.csv or .xlsx), matches every sale against
  the oldest purchases of the same scrip, and writes one row per matched fragment to <output>.
  The output format follows its extension: .csv (default), .xlsx or .jsonl.
`
}

func (*computeCmd) SetFlags(*flag.FlagSet) {}

func (c *computeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintf(stderr, "compute requires an input and an output file, got %d arguments\n", f.NArg())
		return subcommands.ExitUsageError
	}
	input, output := f.Arg(0), f.Arg(1)

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	result, err := a.match(input)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := capgains.SaveRecords(output, result.Records); err != nil {
		fmt.Fprintf(stderr, "Error writing capital gains: %v\n", err)
		return subcommands.ExitFailure
	}

	a.log.Info().
		Str("output", output).
		Int("records", len(result.Records)).
		Int("shortfalls", len(result.Shortfalls)).
		Msg("capital gains written")
	return subcommands.ExitSuccess
}
