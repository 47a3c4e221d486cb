package renderer

import (
	"github.com/etnz/capgains"
)

// GainsRenderOptions holds configuration for rendering a gains report.
type GainsRenderOptions struct {
	ShowOpen bool // Append the lots left open after all sales.
}

// GainsMarkdown renders a gains report to a markdown string.
func GainsMarkdown(report *capgains.GainsReport, opts GainsRenderOptions) string {
	partials := map[string]string{
		"gains_title":      "gains_title.md",
		"gains_scrips":     "gains_scrips.md",
		"gains_shortfalls": "gains_shortfalls.md",
		"gains_open":       "gains_open.md",
		"lots_table":       "lots_table.md",
	}
	if !opts.ShowOpen {
		partials["gains_open"] = "gains_open_skipped.md"
	}
	return renderTemplate("gains", "gains.md", partials, NewGains(report))
}

// OpenLotsMarkdown renders the lots left open to a markdown string.
func OpenLotsMarkdown(open []capgains.Lot) string {
	partials := map[string]string{
		"lots_table": "lots_table.md",
	}
	return renderTemplate("lots", "lots.md", partials, NewLots(open))
}
