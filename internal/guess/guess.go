// Package guess simulates a teammate reacting to a clue.
package guess

import (
	"errors"
	"slices"
	"strings"

	"bitbucket.org/creachadair/stringset"

	"github.com/robalobadob/codenames/apps/go-spymaster/internal/relations"
)

var (
	ErrUnsupportedBackend = errors.New("guess: backend has no usable capability")
	ErrNilPool            = errors.New("guess: nil pool")
)

type Guesser struct {
	backend relations.Provider
}

func New(backend relations.Provider) *Guesser {
	return &Guesser{backend: backend}
}

// Guess picks up to n words from pool for clue. Every chosen word is removed
// from pool, which the caller owns exclusively for the duration of the call.
// Running out of matches is not an error.
func (g *Guesser) Guess(clue string, n int, pool *stringset.Set) (stringset.Set, error) {
	if pool == nil {
		return nil, ErrNilPool
	}
	if g.backend == nil {
		return nil, ErrUnsupportedBackend
	}
	switch g.backend.Capability() {
	case relations.CapabilityDiscrete:
		if p, ok := g.backend.(relations.Discrete); ok {
			return discrete(p, clue, n, pool)
		}
	case relations.CapabilityContinuous:
		if p, ok := g.backend.(relations.Continuous); ok {
			return continuous(p, clue, n, pool)
		}
	}
	return nil, ErrUnsupportedBackend
}

func discrete(p relations.Discrete, clue string, n int, pool *stringset.Set) (stringset.Set, error) {
	out := stringset.New()
	if n <= 0 || pool.Empty() {
		return out, nil
	}
	rs, err := p.Expand(clue)
	if err != nil {
		return nil, err
	}
	related := stringset.New()
	for w := range rs.All() {
		related.Add(strings.ToLower(w))
	}

	for range n {
		hits := related.Intersect(*pool)
		if hits.Empty() {
			break
		}
		pick := hits.Elements()[0]
		out.Add(pick)
		pool.Discard(pick)
	}
	return out, nil
}

func continuous(p relations.Continuous, clue string, n int, pool *stringset.Set) (stringset.Set, error) {
	out := stringset.New()
	if n <= 0 || pool.Empty() {
		return out, nil
	}
	var candidates []string
	for _, w := range pool.Elements() {
		if p.InVocab(w) {
			candidates = append(candidates, w)
		}
	}

	for range n {
		if len(candidates) == 0 {
			break
		}
		pick, ok, err := p.MostSimilarToGiven(clue, candidates)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out.Add(pick)
		pool.Discard(pick)
		candidates = slices.DeleteFunc(candidates, func(w string) bool { return w == pick })
	}
	return out, nil
}
