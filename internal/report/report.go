// Package report renders evaluation results as terminal tables.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/robalobadob/codenames/apps/go-spymaster/internal/evaluate"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/store"
)

const noHints = "could not generate any hints"

func newWriter(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateHeader = true
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	return t
}

func ratioCell(ratio float64, ok bool) string {
	if !ok {
		return noHints
	}
	return fmt.Sprintf("%.3f", ratio)
}

// WriteSummary prints one row per board and a pooled total.
func WriteSummary(w io.Writer, sum evaluate.Summary) {
	t := newWriter(w)
	t.AppendHeader(table.Row{"Seed", "Team", "Clues", "Correct", "Incorrect", "Score", "Possible", "Ratio"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
	})
	for _, r := range sum.Reports {
		ratio, ok := r.Ratio()
		t.AppendRow(table.Row{r.Seed, r.Team, len(r.Outcomes), r.Correct, r.Incorrect, r.Score, r.TotalPossible, ratioCell(ratio, ok)})
	}
	ratio, ok := sum.Ratio()
	t.AppendFooter(table.Row{"Total", "", "", "", "", sum.Score, sum.TotalPossible, ratioCell(ratio, ok)})
	t.Render()
}

// WriteClues prints every clue of one board with the guesses it drew.
func WriteClues(w io.Writer, r evaluate.Report) {
	t := newWriter(w)
	t.SetTitle("seed %d, %s", r.Seed, r.Team)
	t.AppendHeader(table.Row{"#", "Hint", "Targets", "Score", "Guesses", "Correct", "Incorrect"})
	for i, o := range r.Outcomes {
		t.AppendRow(table.Row{
			i + 1,
			o.Clue.Hint,
			strings.Join(o.Clue.Targets, ", "),
			fmt.Sprintf("%.3f", o.Clue.Score),
			strings.Join(o.Guesses, ", "),
			strings.Join(o.Correct, ", "),
			strings.Join(o.Incorrect, ", "),
		})
	}
	if len(r.Outcomes) == 0 {
		t.AppendRow(table.Row{"", noHints})
	}
	t.Render()
}

// WriteLeaderboard prints stored results in rank order.
func WriteLeaderboard(w io.Writer, backend string, rows []store.Result) {
	t := newWriter(w)
	t.SetTitle("best boards: %s", backend)
	t.AppendHeader(table.Row{"Rank", "Run", "Team", "Seed", "Score", "Possible", "Ratio"})
	for i, r := range rows {
		ratio, ok := r.Ratio()
		t.AppendRow(table.Row{i + 1, r.RunID, r.Team, r.Seed, r.Score, r.TotalPossible, ratioCell(ratio, ok)})
	}
	t.Render()
}
