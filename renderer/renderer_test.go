package renderer

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/date"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

func usd(v float64) capgains.Money { return capgains.M(v, "USD") }

// sampleResult matches a long term sale, a short term sale and an uncovered one.
func sampleResult() *capgains.Result {
	on := date.MustParse
	return capgains.MatchFIFO([]capgains.Transaction{
		capgains.NewBuy(on("2020-01-01"), "ABC", capgains.Q(100), usd(10), usd(1000), usd(10)),
		capgains.NewSell(on("2021-02-01"), "ABC", capgains.Q(100), usd(15), usd(1500), usd(15)),
		capgains.NewBuy(on("2021-01-01"), "D|E", capgains.Q(10), usd(20), usd(200), usd(2)),
		capgains.NewSell(on("2021-03-01"), "D|E", capgains.Q(4), usd(25), usd(100), usd(1)),
		capgains.NewSell(on("2021-04-01"), "XYZ", capgains.Q(50), usd(10), usd(500), usd(0)),
	})
}

// markdownTable is the text of a table: its header followed by its rows.
type markdownTable [][]string

// parseTables returns the tables found in a markdown document, along with its headings.
func parseTables(t *testing.T, md string) (headings []string, tables []markdownTable) {
	t.Helper()
	source := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(source))

	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			headings = append(headings, nodeText(n, source))
			return ast.WalkSkipChildren, nil
		case *east.Table:
			var table markdownTable
			for row := n.FirstChild(); row != nil; row = row.NextSibling() {
				var cells []string
				for c := row.FirstChild(); c != nil; c = c.NextSibling() {
					cells = append(cells, nodeText(c, source))
				}
				table = append(table, cells)
			}
			tables = append(tables, table)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("failed to walk markdown: %v", err)
	}
	return headings, tables
}

// nodeText concatenates the text segments below n, escaped pipes included.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return strings.ReplaceAll(strings.TrimSpace(b.String()), `\|`, "|")
}

func TestGainsMarkdown(t *testing.T) {
	report := capgains.NewGainsReport(sampleResult(), date.Range{})
	md := GainsMarkdown(report, GainsRenderOptions{ShowOpen: true})

	headings, tables := parseTables(t, md)
	wantHeadings := []string{"Capital Gains Report (all dates)", "Gains per Scrip", "Uncovered Sales", "Open Lots"}
	if strings.Join(headings, "|") != strings.Join(wantHeadings, "|") {
		t.Errorf("headings = %q, want %q\n%s", headings, wantHeadings, md)
	}
	if len(tables) != 3 {
		t.Fatalf("found %d tables, want 3:\n%s", len(tables), md)
	}

	gains := tables[0]
	if len(gains) != 4 {
		t.Fatalf("gains table has %d lines, want a header, 2 scrips and a total:\n%s", len(gains), md)
	}
	testCases := []struct {
		row, col int
		want     string
	}{
		{1, 0, "ABC"},
		{1, 6, "+$475.00"},
		{1, 5, "-"},
		{2, 0, "D|E"},
		{2, 5, "+$18.20"},
		{3, 0, "Total"},
		{3, 3, "$1,080.00"},
		{3, 7, "+$493.20"},
	}
	for _, tc := range testCases {
		if got := gains[tc.row][tc.col]; got != tc.want {
			t.Errorf("gains[%d][%d] = %q, want %q", tc.row, tc.col, got, tc.want)
		}
	}

	shortfalls := tables[1]
	if len(shortfalls) != 2 || shortfalls[1][0] != "XYZ" || shortfalls[1][3] != "50" {
		t.Errorf("shortfalls table = %q", shortfalls)
	}

	open := tables[2]
	if len(open) != 2 || open[1][0] != "D|E" || open[1][2] != "6" || open[1][4] != "$120.00" {
		t.Errorf("open lots table = %q", open)
	}
}

func TestGainsMarkdown_Period(t *testing.T) {
	period := date.Range{From: date.MustParse("2022-01-01"), To: date.MustParse("2022-12-31")}
	report := capgains.NewGainsReport(sampleResult(), period)
	md := GainsMarkdown(report, GainsRenderOptions{})

	headings, tables := parseTables(t, md)
	if headings[0] != "Capital Gains Report (2022-01-01 to 2022-12-31)" {
		t.Errorf("title = %q", headings[0])
	}
	if len(tables) != 0 {
		t.Errorf("found %d tables, want none:\n%s", len(tables), md)
	}
	if !strings.Contains(md, "No sale in this period.") {
		t.Errorf("missing the no sale notice:\n%s", md)
	}
}

func TestOpenLotsMarkdown(t *testing.T) {
	md := OpenLotsMarkdown(sampleResult().Open)
	headings, tables := parseTables(t, md)
	if len(headings) != 1 || headings[0] != "Open Lots" {
		t.Errorf("headings = %q", headings)
	}
	if len(tables) != 1 || len(tables[0]) != 2 {
		t.Fatalf("tables = %q, want one open lot:\n%s", tables, md)
	}
	if got := tables[0][1][5]; got != "$1.20" {
		t.Errorf("remaining expenses = %q, want %q", got, "$1.20")
	}

	md = OpenLotsMarkdown(nil)
	if _, tables := parseTables(t, md); len(tables) != 0 || !strings.Contains(md, "No open lot.") {
		t.Errorf("OpenLotsMarkdown(nil) =\n%s", md)
	}
}

// TestTemplatesAreUsed checks every embedded template is referenced by a renderer.
func TestTemplatesAreUsed(t *testing.T) {
	used := map[string]bool{
		"gains.md": true, "gains_title.md": true, "gains_scrips.md": true, "gains_shortfalls.md": true,
		"gains_open.md": true, "gains_open_skipped.md": true, "lots.md": true, "lots_table.md": true,
	}
	entries, err := fs.ReadDir(templates, ".")
	if err != nil {
		t.Fatalf("failed to read embedded templates: %v", err)
	}
	for _, e := range entries {
		if !used[e.Name()] {
			t.Errorf("template %q is not used by any renderer", e.Name())
		}
	}
}
