package guess

import (
	"testing"

	"bitbucket.org/creachadair/stringset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/codenames/apps/go-spymaster/internal/relations"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/relations/relationstest"
)

func TestGuessDiscrete(t *testing.T) {
	lex := relationstest.NewDiscrete().
		Add("water", relations.KindSynonym, "River", "lake", "ocean").
		Add("water", relations.KindHyponym, "sea")

	t.Run("takes matches in lexicographic order and drains the pool", func(t *testing.T) {
		// Given: a pool with three water words and two others
		pool := stringset.New("river", "lake", "sea", "bank", "tree")

		// When: two guesses are requested
		got, err := New(lex).Guess("water", 2, &pool)

		// Then: the first two matches are taken and removed from the pool
		require.NoError(t, err)
		assert.Equal(t, []string{"lake", "river"}, got.Elements())
		assert.Equal(t, []string{"bank", "sea", "tree"}, pool.Elements())
	})

	t.Run("fewer matches than requested", func(t *testing.T) {
		pool := stringset.New("sea", "bank")

		got, err := New(lex).Guess("water", 3, &pool)

		require.NoError(t, err)
		assert.Equal(t, []string{"sea"}, got.Elements())
		assert.Equal(t, []string{"bank"}, pool.Elements())
	})

	t.Run("unknown clue and empty pool", func(t *testing.T) {
		pool := stringset.New("sea")
		got, err := New(lex).Guess("fire", 2, &pool)
		require.NoError(t, err)
		assert.True(t, got.Empty())
		assert.Equal(t, 1, pool.Len())

		empty := stringset.New()
		got, err = New(lex).Guess("water", 2, &empty)
		require.NoError(t, err)
		assert.True(t, got.Empty())
	})

	t.Run("never more than n, never outside the pool", func(t *testing.T) {
		universe := []string{"river", "lake", "sea", "ocean", "bank"}
		for n := range 6 {
			pool := stringset.New(universe...)
			before := pool.Clone()

			got, err := New(lex).Guess("water", n, &pool)

			require.NoError(t, err)
			assert.LessOrEqual(t, got.Len(), n)
			for w := range got {
				assert.True(t, before.Contains(w))
				assert.False(t, pool.Contains(w))
			}
			assert.Equal(t, before.Len(), pool.Len()+got.Len())
		}
	})

	t.Run("backend error", func(t *testing.T) {
		bad := relationstest.NewDiscrete()
		bad.Err = relations.ErrUnavailable
		pool := stringset.New("sea")

		_, err := New(bad).Guess("water", 1, &pool)

		require.ErrorIs(t, err, relations.ErrUnavailable)
	})
}

func TestGuessContinuous(t *testing.T) {
	emb := relationstest.NewContinuous("water", "river", "lake", "bank", "money").
		Like("water", map[string]float64{"river": 0.9, "lake": 0.8, "bank": 0.3, "money": 0.1})

	t.Run("picks most similar first and shrinks the pool", func(t *testing.T) {
		pool := stringset.New("river", "lake", "bank", "money", "zzz")

		got, err := New(emb).Guess("water", 2, &pool)

		require.NoError(t, err)
		assert.Equal(t, []string{"lake", "river"}, got.Elements())
		assert.Equal(t, []string{"bank", "money", "zzz"}, pool.Elements())
	})

	t.Run("out of vocabulary words are never guessed", func(t *testing.T) {
		pool := stringset.New("zzz", "bank")

		got, err := New(emb).Guess("water", 2, &pool)

		require.NoError(t, err)
		assert.Equal(t, []string{"bank"}, got.Elements())
		assert.Equal(t, []string{"zzz"}, pool.Elements())
	})

	t.Run("out of vocabulary clue", func(t *testing.T) {
		pool := stringset.New("river")

		got, err := New(emb).Guess("fire", 1, &pool)

		require.NoError(t, err)
		assert.True(t, got.Empty())
	})
}

func TestGuessRejects(t *testing.T) {
	_, err := New(relationstest.NewDiscrete()).Guess("x", 1, nil)
	require.ErrorIs(t, err, ErrNilPool)

	pool := stringset.New("a")
	_, err = New(nil).Guess("x", 1, &pool)
	require.ErrorIs(t, err, ErrUnsupportedBackend)
}
