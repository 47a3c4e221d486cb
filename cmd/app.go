// Package cmd implements the cgt command line application.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/capgains"
	"github.com/etnz/capgains/config"
	"github.com/etnz/capgains/logger"
	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&computeCmd{}, "gains")
	c.Register(&summaryCmd{}, "gains")
	c.Register(&lotsCmd{}, "gains")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// app holds what every command needs: the configuration and a logger tagged with the run id.
type app struct {
	cfg *config.Config
	log zerolog.Logger
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Out: stderr}).
		With().
		Str("run", uuid.NewString()).
		Logger()
	return &app{cfg: cfg, log: log}, nil
}

// match loads the ledger at path and matches its sales against its purchases.
func (a *app) match(path string) (*capgains.Result, error) {
	txs, err := capgains.LoadTransactions(path, capgains.LoadOptions{Currency: a.cfg.Currency, Sheet: a.cfg.Sheet})
	if err != nil {
		return nil, err
	}
	a.log.Debug().Str("file", path).Int("transactions", len(txs)).Msg("ledger loaded")

	result := capgains.MatchFIFO(txs)
	for _, s := range result.Shortfalls {
		a.log.Warn().
			Str("scrip", s.Sale.Scrip).
			Str("date", s.Sale.Date.String()).
			Stringer("sold", s.Sale.Quantity).
			Stringer("uncovered", s.Quantity).
			Msg("sale exceeds the units bought, no gain reported for the uncovered units")
	}
	return result, nil
}

// printMarkdown renders md for the terminal, or prints it as is when raw is set.
func printMarkdown(md string, raw bool) {
	if raw {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
