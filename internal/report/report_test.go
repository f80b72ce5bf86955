package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/codenames/apps/go-spymaster/internal/board"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/clue"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/evaluate"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/store"
)

func TestWriteSummary(t *testing.T) {
	sum := evaluate.Summary{
		Reports: []evaluate.Report{
			{Seed: 7, Team: board.Red, Score: 1, Correct: 2, Incorrect: 1, TotalPossible: 4, Outcomes: make([]evaluate.Outcome, 3)},
			{Seed: 8, Team: board.Red},
		},
		Score:         1,
		TotalPossible: 4,
		NoHints:       1,
	}
	var buf bytes.Buffer

	WriteSummary(&buf, sum)

	out := buf.String()
	assert.Contains(t, out, "0.250")
	assert.Contains(t, out, noHints)
	assert.Contains(t, out, "Total")
}

func TestWriteClues(t *testing.T) {
	t.Run("one row per clue", func(t *testing.T) {
		rep := evaluate.Report{Seed: 3, Team: board.Blue, Outcomes: []evaluate.Outcome{{
			Clue:    clue.Candidate{Hint: "water", Targets: []string{"river", "lake"}},
			Guesses: []string{"lake", "bank"},
			Correct: []string{"lake"},
		}}}
		var buf bytes.Buffer

		WriteClues(&buf, rep)

		assert.Contains(t, buf.String(), "water")
		assert.Contains(t, buf.String(), "river, lake")
		assert.Contains(t, buf.String(), "lake, bank")
	})

	t.Run("empty board", func(t *testing.T) {
		var buf bytes.Buffer
		WriteClues(&buf, evaluate.Report{Team: board.Red})
		assert.Contains(t, buf.String(), noHints)
	})
}

func TestWriteLeaderboard(t *testing.T) {
	var buf bytes.Buffer

	WriteLeaderboard(&buf, "lexicon", []store.Result{{RunID: "run-1", Team: "red", Seed: 9, Score: 3, TotalPossible: 4}})

	assert.Contains(t, buf.String(), "run-1")
	assert.Contains(t, buf.String(), "0.750")
}
