// Package lexicon provides discrete relation backends: a lexical graph of
// synonym, antonym, broader-term and narrower-term edges keyed by word stem.
//
// Two implementations share the same lookup semantics:
//   - Memory: an in-process map, built from code or a TSV dump.
//   - SQLite: a relations table with a stem index, filled by Import.
//
// Keys are stemmed with relations.Stem on both insert and lookup; related
// words keep their surface form (case, compound joiners) so the clue engine
// can apply its own admissibility rules.
package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/codenames/apps/go-spymaster/internal/relations"
)

var ErrBadLine = errors.New("lexicon: malformed line")

// Relation is one directed edge of the lexical graph.
type Relation struct {
	Word    string
	Kind    relations.Kind
	Related string
}

// ParseKind accepts the four relation names, case-insensitively.
func ParseKind(s string) (relations.Kind, error) {
	k := relations.Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range relations.Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown relation kind %q", s)
}

// ReadTSV parses "word<TAB>kind<TAB>related" lines. Blank lines and lines
// starting with '#' are skipped.
func ReadTSV(r io.Reader) ([]Relation, error) {
	var out []Relation
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w %d: want 3 fields, got %d", ErrBadLine, line, len(fields))
		}
		kind, err := ParseKind(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w %d: %v", ErrBadLine, line, err)
		}
		word, related := strings.TrimSpace(fields[0]), strings.TrimSpace(fields[2])
		if word == "" || related == "" {
			return nil, fmt.Errorf("%w %d: empty word", ErrBadLine, line)
		}
		out = append(out, Relation{Word: word, Kind: kind, Related: related})
	}
	return out, sc.Err()
}

// ReadTSVFile opens path and parses it with ReadTSV.
func ReadTSVFile(path string) ([]Relation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rels, err := ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rels, nil
}
