package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("trims, lowercases and skips blanks", func(t *testing.T) {
		// Given: a list with padding, mixed case and blank lines
		in := "  Apple \n\nbank\n\tCAT\n"

		// When: the list is parsed
		got, err := Parse(strings.NewReader(in))

		// Then: entries come back normalised, in file order
		require.NoError(t, err)
		assert.Equal(t, []string{"apple", "bank", "cat"}, got)
	})

	t.Run("drops duplicates keeping the first", func(t *testing.T) {
		got, err := Parse(strings.NewReader("dog\ncat\nDog\n"))

		require.NoError(t, err)
		assert.Equal(t, []string{"dog", "cat"}, got)
	})

	t.Run("rejects multi-word entries", func(t *testing.T) {
		_, err := Parse(strings.NewReader("ice cream\n"))

		require.ErrorIs(t, err, ErrInvalidWord)
	})

	t.Run("rejects an empty list", func(t *testing.T) {
		_, err := Parse(strings.NewReader("\n \n"))

		require.ErrorIs(t, err, ErrEmpty)
	})
}

func TestLoad(t *testing.T) {
	t.Run("reads a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "words.txt")
		require.NoError(t, os.WriteFile(path, []byte("moon\nsun\n"), 0o644))

		got, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, []string{"moon", "sun"}, got)
	})

	t.Run("empty path falls back to the embedded list", func(t *testing.T) {
		got, err := Load("")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(got), 25)
		assert.Contains(t, got, "spy")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))

		require.Error(t, err)
	})
}
