// Package report turns landing counts into percentages, a text table and a PNG bar chart.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/kevinkasson/boardsim/internal/sim"
)

// Percentages returns each position's share of all landings in percent.
// A run with no landings yields all zeros.
func Percentages(landings [sim.NumPositions]int64) [sim.NumPositions]float64 {
	var out [sim.NumPositions]float64
	var total int64
	for _, n := range landings {
		total += n
	}
	if total == 0 {
		return out
	}
	for i, n := range landings {
		out[i] = float64(n) / float64(total) * 100
	}
	return out
}

// WriteTable prints one line per position followed by the roll summary.
// When share holds replication stats for every position, the spread of
// each share across replications is printed as well.
func WriteTable(w io.Writer, res sim.Result, share []sim.Stats) error {
	pct := Percentages(res.Landings)
	withStats := len(share) == sim.NumPositions
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if withStats {
		fmt.Fprintf(tw, "#\tspace\tlandings\tshare\tstddev\tp50\tp90\t\n")
	} else {
		fmt.Fprintf(tw, "#\tspace\tlandings\tshare\t\n")
	}
	for i, n := range res.Landings {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f%%\t", i, sim.SpaceName(sim.Position(i)), humanize.Comma(n), pct[i])
		if withStats {
			st := share[i]
			fmt.Fprintf(tw, "%.2f%%\t%.2f%%\t%.2f%%\t", st.StdDev*100, st.P50*100, st.P90*100)
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total count: %s spaces landed on and %s rolls. [%s rolls while in jail]\n",
		humanize.Comma(res.Total()), humanize.Comma(res.Rolls), humanize.Comma(res.JailRetries()))
	return err
}
