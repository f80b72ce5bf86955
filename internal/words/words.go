// internal/words/words.go
//
// Word pool loading for board construction.
//
// Responsibilities:
//   - Read a newline-delimited list of single words from a file, or fall back
//     to the embedded default list in assets/wordlist.txt.
//   - Normalise entries (trim, lowercase) and drop duplicates, keeping the
//     first occurrence so the pool order stays stable.
//   - Provide case-insensitive helpers shared by the clue and guess engines.
//
// Constraints:
//   • One word per line; blank lines are skipped.
//   • Entries must not contain internal whitespace.
//   • The embedded default is parsed once (sync.Once).

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/robalobadob/codenames/apps/go-spymaster/assets"
)

var (
	ErrEmpty       = errors.New("words: list is empty")
	ErrInvalidWord = errors.New("words: invalid entry")
)

var (
	defaultOnce sync.Once
	defaultPool []string
	defaultErr  error
)

// Default returns the embedded word list.
func Default() ([]string, error) {
	defaultOnce.Do(func() {
		f, err := assets.OpenWordList()
		if err != nil {
			defaultErr = err
			return
		}
		defer f.Close()
		defaultPool, defaultErr = Parse(f)
	})
	return defaultPool, defaultErr
}

// Load reads the word list at path. An empty path selects the embedded default.
func Load(path string) ([]string, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	out, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// Parse reads one word per line, lowercases and trims each entry.
func Parse(r io.Reader) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		w := Normalize(sc.Text())
		if w == "" {
			continue
		}
		if strings.IndexFunc(w, unicode.IsSpace) >= 0 {
			return nil, fmt.Errorf("%w: line %d: %q", ErrInvalidWord, line, w)
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// Normalize trims and lowercases w.
func Normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// Fold returns the membership key for w.
func Fold(w string) string {
	return strings.ToLower(w)
}
