// Package report renders summary tables and hourly frequencies as aligned
// text. It is the rendering boundary of the pipeline: everything here
// consumes already-computed summaries and makes no decisions beyond layout.
//
// Empty branches are reported explicitly ("nothing to summarize") instead
// of emitting a zero-row table, so an operator can tell a broken filter
// from a quiet dataset.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"crimeflow/internal/aggregate"
)

// barWidth is the maximum histogram bar length in characters.
const barWidth = 40

// Summary writes a titled, aligned category/count table.
func Summary(w io.Writer, title string, t aggregate.SummaryTable) {
	if len(t) == 0 {
		Empty(w, title, "no records to summarize")
		return
	}

	fmt.Fprintf(w, "%s (%s records)\n", title, humanize.Comma(int64(t.Total())))
	labelWidth := 0
	for _, row := range t {
		if n := len(displayLabel(row.Label)); n > labelWidth {
			labelWidth = n
		}
	}
	for _, row := range t {
		fmt.Fprintf(w, "  %-*s %10s\n", labelWidth, displayLabel(row.Label), humanize.Comma(int64(row.Count)))
	}
	fmt.Fprintln(w)
}

// Hours writes an hour-of-day frequency histogram over the 24 clock bins.
// Values outside [0,23] are tallied separately and reported as a
// diagnostic, never plotted.
func Hours(w io.Writer, title string, hours []int) {
	if len(hours) == 0 {
		Empty(w, title, "no valid hour values after coercion")
		return
	}

	var bins [24]int
	outOfRange := 0
	max := 0
	for _, h := range hours {
		if h < 0 || h > 23 {
			outOfRange++
			continue
		}
		bins[h]++
		if bins[h] > max {
			max = bins[h]
		}
	}
	if max == 0 {
		Empty(w, title, "all hour values fall outside 0-23")
		return
	}

	fmt.Fprintf(w, "%s (%s values)\n", title, humanize.Comma(int64(len(hours)-outOfRange)))
	for h, n := range bins {
		bar := strings.Repeat("#", n*barWidth/max)
		fmt.Fprintf(w, "  %02d %8s %s\n", h, humanize.Comma(int64(n)), bar)
	}
	if outOfRange > 0 {
		fmt.Fprintf(w, "  (%d values outside 0-23 not plotted)\n", outOfRange)
	}
	fmt.Fprintln(w)
}

// Empty writes an explicit nothing-to-report diagnostic for a branch.
func Empty(w io.Writer, title, reason string) {
	fmt.Fprintf(w, "%s: nothing to report (%s)\n\n", title, reason)
}

// displayLabel makes the empty (missing-value) category visible in output.
func displayLabel(s string) string {
	if s == "" {
		return "(unknown)"
	}
	return s
}
