package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/capgains/renderer"
	"github.com/google/subcommands"
)

type lotsCmd struct {
	raw bool
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "display the purchases left unsold" }
func (*lotsCmd) Usage() string {
	return `cgt lots [-md] <input>

  Displays the remaining part of every purchase once all sales have been matched, oldest first.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "md", false, "Print raw markdown instead of rendering it.")
}

func (c *lotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(stderr, "lots requires an input file, got %d arguments\n", f.NArg())
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

	printMarkdown(renderer.OpenLotsMarkdown(result.Open), c.raw)
	return subcommands.ExitSuccess
}
