package clue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/codenames/apps/go-spymaster/internal/board"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/relations"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/relations/relationstest"
)

func smallBoard() board.Board {
	return board.Board{
		Red:        []string{"A1", "A2"},
		Blue:       []string{"B1", "B2"},
		Bystanders: []string{"C1"},
		Assassin:   "F",
	}
}

func hints(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Hint
	}
	return out
}

func TestGenerateDiscrete(t *testing.T) {
	t.Run("shared synonym outranks singletons", func(t *testing.T) {
		// Given: A1 and A2 share exactly one synonym unknown to the opponent
		lex := relationstest.NewDiscrete().
			Add("A1", relations.KindSynonym, "x", "p").
			Add("A2", relations.KindSynonym, "x", "q").
			Add("B1", relations.KindSynonym, "r")

		// When: red asks for clues
		got, err := NewGenerator(lex, DefaultConfig()).Generate(t.Context(), smallBoard(), board.Red)

		// Then: the pair clue comes first
		require.NoError(t, err)
		require.NotEmpty(t, got)
		assert.Equal(t, Candidate{Targets: []string{"A1", "A2"}, Hint: "x"}, got[0])
		for _, c := range got[1:] {
			assert.Len(t, c.Targets, 1)
			assert.Zero(t, c.Score)
		}
		assert.Equal(t, []string{"x", "p", "x", "q", "x"}, hints(got))
	})

	t.Run("negative set accumulates across opponent words", func(t *testing.T) {
		// A union whose result is discarded would leave negative holding only
		// the last opponent's relations; "p" comes from the first one.
		lex := relationstest.NewDiscrete().
			Add("A1", relations.KindSynonym, "p", "s").
			Add("B1", relations.KindHypernym, "p").
			Add("B2", relations.KindAntonym, "t")

		got, err := NewGenerator(lex, DefaultConfig()).Generate(t.Context(), smallBoard(), board.Red)

		require.NoError(t, err)
		assert.Equal(t, []string{"s"}, hints(got))
	})

	t.Run("filters board words, joiners and case variants", func(t *testing.T) {
		lex := relationstest.NewDiscrete().
			Add("A1", relations.KindSynonym, "f", "C1", "a2", "ice_cream", "ice-cream", "ice cream", "Cold", "cold", "Warm")

		got, err := NewGenerator(lex, DefaultConfig()).Generate(t.Context(), smallBoard(), board.Red)

		require.NoError(t, err)
		assert.Equal(t, []string{"Warm", "cold"}, hints(got))
	})

	t.Run("candidates never touch the negative set, assassin or targets", func(t *testing.T) {
		lex := relationstest.NewDiscrete().
			Add("A1", relations.KindSynonym, "one", "two", "three", "F", "A1").
			Add("A2", relations.KindHyponym, "two", "three", "four").
			Add("B1", relations.KindSynonym, "three").
			Add("B2", relations.KindSynonym, "four")
		negative := []string{"three", "four"}

		got, err := NewGenerator(lex, DefaultConfig()).Generate(t.Context(), smallBoard(), board.Red)

		require.NoError(t, err)
		require.NotEmpty(t, got)
		for _, c := range got {
			assert.NotContains(t, negative, c.Hint)
			assert.NotEqual(t, "f", c.Hint)
			for _, tw := range c.Targets {
				assert.NotEqual(t, tw, c.Hint)
			}
		}
		assert.Equal(t, "two", got[0].Hint)
	})

	t.Run("no shared relations yields no clues", func(t *testing.T) {
		got, err := NewGenerator(relationstest.NewDiscrete(), DefaultConfig()).Generate(t.Context(), smallBoard(), board.Blue)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("backend failure propagates", func(t *testing.T) {
		lex := relationstest.NewDiscrete()
		lex.Err = relations.ErrUnavailable

		_, err := NewGenerator(lex, DefaultConfig()).Generate(t.Context(), smallBoard(), board.Red)

		require.ErrorIs(t, err, relations.ErrUnavailable)
	})
}

func TestGenerateContinuous(t *testing.T) {
	t.Run("skips a colliding term and keeps the next best", func(t *testing.T) {
		// Given: the top raw neighbour of A1 is A1 itself
		emb := relationstest.NewContinuous("A1", "B1", "F").
			Near([]string{"A1"}, relations.Scored{Word: "Y", Score: 0.8}, relations.Scored{Word: "A1", Score: 0.9})
		b := board.Board{Red: []string{"A1"}, Blue: []string{"B1"}, Assassin: "F"}

		// When
		got, err := NewGenerator(emb, DefaultConfig()).Generate(t.Context(), b, board.Red)

		// Then: Y is chosen at its own score
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, Candidate{Targets: []string{"A1"}, Hint: "Y", Score: 0.8}, got[0])
	})

	t.Run("ranks by score times breadth", func(t *testing.T) {
		emb := relationstest.NewContinuous("A1", "A2", "B1", "B2", "F").
			Near([]string{"A1"}, relations.Scored{Word: "solo", Score: 0.9}).
			Near([]string{"A2"}, relations.Scored{Word: "weak", Score: 0.3}).
			Near([]string{"A1", "A2"}, relations.Scored{Word: "pair", Score: 0.5})

		got, err := NewGenerator(emb, DefaultConfig()).Generate(t.Context(), smallBoard(), board.Red)

		require.NoError(t, err)
		assert.Equal(t, []string{"pair", "solo", "weak"}, hints(got))
	})

	t.Run("deny prefixes and threshold", func(t *testing.T) {
		emb := relationstest.NewContinuous("A1", "A2", "B1", "B2", "F").
			Near([]string{"A1"}, relations.Scored{Word: "AFPnews", Score: 0.95}, relations.Scored{Word: "ok", Score: 0.6}).
			Near([]string{"A2"}, relations.Scored{Word: "low", Score: 0.2})
		cfg := DefaultConfig()
		cfg.Threshold = 0.25

		got, err := NewGenerator(emb, cfg).Generate(t.Context(), smallBoard(), board.Red)

		require.NoError(t, err)
		assert.Equal(t, []string{"ok"}, hints(got))
	})

	t.Run("out of vocabulary own words are never queried", func(t *testing.T) {
		emb := relationstest.NewContinuous("A2", "B1", "F")

		_, err := NewGenerator(emb, DefaultConfig()).Generate(t.Context(), smallBoard(), board.Red)

		require.NoError(t, err)
		assert.Equal(t, [][]string{{"A2"}}, emb.Queries)
	})
}

func TestGenerateParallelMatchesSerial(t *testing.T) {
	b := board.Board{
		Red:      []string{"r1", "r2", "r3", "r4", "r5"},
		Blue:     []string{"b1"},
		Assassin: "f",
	}
	lex := relationstest.NewDiscrete()
	for i, w := range b.Red {
		lex.Add(w, relations.KindSynonym, "common", "shared")
		if i%2 == 0 {
			lex.Add(w, relations.KindHypernym, "even")
		}
	}

	serial, err := NewGenerator(lex, DefaultConfig()).Generate(t.Context(), b, board.Red)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Workers = 8
	parallel, err := NewGenerator(lex, cfg).Generate(t.Context(), b, board.Red)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
	assert.Len(t, serial[0].Targets, 3)
}

func TestGenerateRejects(t *testing.T) {
	t.Run("non-playing team", func(t *testing.T) {
		_, err := NewGenerator(relationstest.NewDiscrete(), DefaultConfig()).Generate(t.Context(), smallBoard(), board.Bystander)
		require.ErrorIs(t, err, board.ErrInvalidTeam)
	})

	t.Run("nil backend", func(t *testing.T) {
		_, err := NewGenerator(nil, DefaultConfig()).Generate(t.Context(), smallBoard(), board.Red)
		require.ErrorIs(t, err, ErrUnsupportedBackend)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		lex := relationstest.NewDiscrete().Add("A1", relations.KindSynonym, "x")

		_, err := NewGenerator(lex, DefaultConfig()).Generate(ctx, smallBoard(), board.Red)

		require.ErrorIs(t, err, context.Canceled)
	})
}
