package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/capgains/docs"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ledger = `Scrip Name,Transaction Type,Transaction Date,Quantity,Rate,Amount,Expenses
ABC,Buy,01-Jan-2020,100,10,1000,10
ABC,Sell,01-Feb-2021,100,15,1500,15
DEF,Buy,01-Jan-2021,10,20,200,2
DEF,Sell,01-Mar-2021,4,25,100,1
XYZ,Sell,01-Apr-2021,50,10,500,0
`

// setup writes the ledger in a temporary directory and configures the environment.
func setup(t *testing.T, content string) (dir, input string) {
	t.Helper()
	t.Setenv("CGT_CURRENCY", "USD")
	t.Setenv("CGT_LOG_LEVEL", "info")
	t.Setenv("CGT_LOG_PRETTY", "false")
	t.Setenv("CGT_SHEET", "")

	dir = t.TempDir()
	input = filepath.Join(dir, "ledger.csv")
	require.NoError(t, os.WriteFile(input, []byte(content), 0644))
	return dir, input
}

// run executes c with args and returns its exit status, stdout and stderr.
func run(t *testing.T, c subcommands.Command, args ...string) (subcommands.ExitStatus, string, string) {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	require.NoError(t, f.Parse(args))

	var out, errOut bytes.Buffer
	stdout, stderr = &out, &errOut
	t.Cleanup(func() { stdout, stderr = os.Stdout, os.Stderr })

	status := c.Execute(context.Background(), f)
	return status, out.String(), errOut.String()
}

func TestCompute(t *testing.T) {
	dir, input := setup(t, ledger)
	output := filepath.Join(dir, "gains.csv")

	status, _, logs := run(t, &computeCmd{}, input, output)
	require.Equal(t, subcommands.ExitSuccess, status, logs)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Scrip Name,Date of Purchase,Quantity,"))
	assert.Equal(t, "ABC,2020-01-01,100,10,1000,10,13,2021-02-01,15,1500,15,0,475", lines[1])

	// the uncovered sale is reported in the logs with the run id.
	assert.Contains(t, logs, `"scrip":"XYZ"`)
	assert.Contains(t, logs, `"uncovered":"50"`)
	assert.Contains(t, logs, `"run":`)
}

func TestCompute_Formats(t *testing.T) {
	dir, input := setup(t, ledger)
	for _, name := range []string{"gains.xlsx", "gains.jsonl"} {
		output := filepath.Join(dir, name)
		status, _, logs := run(t, &computeCmd{}, input, output)
		require.Equal(t, subcommands.ExitSuccess, status, logs)
		info, err := os.Stat(output)
		require.NoError(t, err)
		assert.NotZero(t, info.Size())
	}
}

func TestCompute_Usage(t *testing.T) {
	_, input := setup(t, ledger)
	for _, args := range [][]string{nil, {input}, {input, "a.csv", "b.csv"}} {
		status, _, _ := run(t, &computeCmd{}, args...)
		assert.Equal(t, subcommands.ExitUsageError, status, "args %q", args)
	}
}

func TestCompute_MalformedInput(t *testing.T) {
	dir, input := setup(t, ledger+"ABC,Sell,2021-13-01,1,1,1,0\n")
	output := filepath.Join(dir, "gains.csv")

	status, _, errOut := run(t, &computeCmd{}, input, output)
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut, "row 7")
	assert.Contains(t, errOut, "Transaction Date")
	assert.NoFileExists(t, output)
}

func TestCompute_MissingInput(t *testing.T) {
	dir, _ := setup(t, ledger)
	status, _, errOut := run(t, &computeCmd{}, filepath.Join(dir, "missing.csv"), filepath.Join(dir, "gains.csv"))
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut, "missing.csv")
}

func TestSummary(t *testing.T) {
	_, input := setup(t, ledger)

	status, out, logs := run(t, &summaryCmd{}, "-md", "-open", input)
	require.Equal(t, subcommands.ExitSuccess, status, logs)
	assert.Contains(t, out, "# Capital Gains Report (all dates)")
	assert.Contains(t, out, "| ABC | 100 | $1,500.00 | $1,000.00 | $25.00 | - | +$475.00 | +$475.00 |")
	assert.Contains(t, out, "## Uncovered Sales")
	assert.Contains(t, out, "## Open Lots")
}

func TestSummary_Period(t *testing.T) {
	_, input := setup(t, ledger)

	status, out, logs := run(t, &summaryCmd{}, "-md", "-s", "2021-03-01", "-d", "2021-03-31", input)
	require.Equal(t, subcommands.ExitSuccess, status, logs)
	assert.Contains(t, out, "(2021-03-01 to 2021-03-31)")
	assert.Contains(t, out, "| DEF |")
	assert.NotContains(t, out, "| ABC |")
	assert.NotContains(t, out, "Uncovered Sales")
}

func TestSummary_FinancialYear(t *testing.T) {
	_, input := setup(t, ledger)

	// ABC and DEF are sold in FY 2020-21, XYZ in FY 2021-22.
	status, out, logs := run(t, &summaryCmd{}, "-md", "-fy", "2020-21", input)
	require.Equal(t, subcommands.ExitSuccess, status, logs)
	assert.Contains(t, out, "(2020-04-01 to 2021-03-31)")
	assert.Contains(t, out, "| ABC |")
	assert.Contains(t, out, "| DEF |")
	assert.NotContains(t, out, "Uncovered Sales")
}

func TestSummary_InvalidPeriod(t *testing.T) {
	_, input := setup(t, ledger)
	testCases := [][]string{
		{"-s", "01-Jan-2021", input},
		{"-s", "2021-12-31", "-d", "2021-01-01", input},
		{"-s", "2021-01-01"},
		{"-fy", "2021-23", input},
		{"-fy", "2021", "-s", "2021-01-01", input},
	}
	for _, args := range testCases {
		status, _, _ := run(t, &summaryCmd{}, args...)
		assert.Equal(t, subcommands.ExitUsageError, status, "args %q", args)
	}
}

func TestLots(t *testing.T) {
	_, input := setup(t, ledger)

	status, out, logs := run(t, &lotsCmd{}, "-md", input)
	require.Equal(t, subcommands.ExitSuccess, status, logs)
	assert.Contains(t, out, "# Open Lots")
	assert.Contains(t, out, "| DEF | 2021-01-01 | 6 | $20.00 | $120.00 | $1.20 |")
}

func TestTopic(t *testing.T) {
	status, out, _ := run(t, &topicCmd{}, "-md")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "* ledger:")

	status, out, _ = run(t, &topicCmd{}, "-md", "gains")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "# Gains")

	status, _, errOut := run(t, &topicCmd{}, "-md", "nope")
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut, `"nope"`)
}

func TestInvalidConfiguration(t *testing.T) {
	dir, input := setup(t, ledger)
	t.Setenv("CGT_CURRENCY", "NOPE")

	status, _, errOut := run(t, &computeCmd{}, input, filepath.Join(dir, "gains.csv"))
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut, "CGT_CURRENCY")
}

func TestCompletion(t *testing.T) {
	commander := subcommands.NewCommander(flag.NewFlagSet("cgt", flag.ContinueOnError), "cgt")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	Register(commander)

	completion := Completion()
	all, err := docs.All()
	require.NoError(t, err)
	for _, topic := range all {
		assert.Contains(t, completion.Sub["topic"].Args, topic)
	}

	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		sub, ok := completion.Sub[c.Name()]
		if !assert.True(t, ok, "command %q has no completion", c.Name()) {
			return
		}
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		f.VisitAll(func(fl *flag.Flag) {
			assert.Contains(t, sub.Flags, fl.Name, "flag -%s of %q has no completion", fl.Name, c.Name())
		})
	})
}
