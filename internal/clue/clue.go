// Package clue searches for single-word hints that point at subsets of a
// team's words while avoiding the opponent's words and the assassin.
package clue

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"bitbucket.org/creachadair/stringset"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/codenames/apps/go-spymaster/internal/board"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/relations"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/subsets"
)

// MaxTargets is the largest subset a single clue may cover.
const MaxTargets = 3

var ErrUnsupportedBackend = errors.New("clue: backend has no usable capability")

// Candidate is one proposed hint for a subset of the team's words.
// Score is 0 for discrete backends.
type Candidate struct {
	Targets []string `json:"targets"`
	Hint    string   `json:"hint"`
	Score   float64  `json:"score"`
}

type Config struct {
	TopN         int
	VocabLimit   int
	Threshold    float64
	DenyPrefixes []string
	Workers      int
}

func DefaultConfig() Config {
	return Config{
		TopN:         10,
		VocabLimit:   5000,
		Threshold:    0.0,
		DenyPrefixes: []string{"afp"},
		Workers:      1,
	}
}

// Generator produces ranked clue candidates from a relations backend.
type Generator struct {
	backend relations.Provider
	cfg     Config
}

func NewGenerator(backend relations.Provider, cfg Config) *Generator {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Generator{backend: backend, cfg: cfg}
}

// Generate returns the ranked candidates for team on b. An empty result is
// not an error.
func (g *Generator) Generate(ctx context.Context, b board.Board, team board.Team) ([]Candidate, error) {
	if !team.Playable() {
		return nil, fmt.Errorf("%w: %q", board.ErrInvalidTeam, team)
	}
	if g.backend == nil {
		return nil, ErrUnsupportedBackend
	}
	switch g.backend.Capability() {
	case relations.CapabilityDiscrete:
		if p, ok := g.backend.(relations.Discrete); ok {
			return g.discrete(ctx, p, b, team)
		}
	case relations.CapabilityContinuous:
		if p, ok := g.backend.(relations.Continuous); ok {
			return g.continuous(ctx, p, b, team)
		}
	}
	return nil, ErrUnsupportedBackend
}

// forEachSubset runs fn over every subset of words in parallel, collecting
// at most one result per subset into enumeration order.
func forEachSubset[T any](ctx context.Context, words []string, workers int, fn func([]string) (T, bool, error)) ([]T, error) {
	seq, err := subsets.Enumerate(words, MaxTargets)
	if err != nil {
		return nil, err
	}
	var all [][]string
	for s := range seq {
		all = append(all, s)
	}

	type slot struct {
		v  T
		ok bool
	}
	results := make([]slot, len(all))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, s := range all {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, ok, err := fn(s)
			if err != nil {
				return err
			}
			results[i] = slot{v: v, ok: ok}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(results))
	for _, r := range results {
		if r.ok {
			out = append(out, r.v)
		}
	}
	return out, nil
}

func folded(words ...[]string) stringset.Set {
	s := stringset.New()
	for _, ws := range words {
		for _, w := range ws {
			s.Add(strings.ToLower(w))
		}
	}
	return s
}

func hasJoiner(w string) bool {
	return strings.ContainsAny(w, "_- ")
}

// discrete intersects relation expansions across each subset and subtracts
// everything related to the opponent.
func (g *Generator) discrete(ctx context.Context, p relations.Discrete, b board.Board, team board.Team) ([]Candidate, error) {
	own := b.Words(team)

	negative := stringset.New()
	for _, w := range b.Words(team.Opponent()) {
		rs, err := p.Expand(w)
		if err != nil {
			return nil, err
		}
		negative = negative.Union(rs.All())
	}

	// Expansions are reused across subsets.
	related := make(map[string]stringset.Set, len(own))
	for _, w := range own {
		rs, err := p.Expand(w)
		if err != nil {
			return nil, err
		}
		related[w] = rs.All()
	}

	exposed := folded(b.All().Elements(), negative.Elements())

	perSubset, err := forEachSubset(ctx, own, g.cfg.Workers, func(s []string) ([]Candidate, bool, error) {
		positive := related[s[0]].Clone()
		for _, w := range s[1:] {
			positive = positive.Intersect(related[w])
		}
		blocked := folded(s)
		var out []Candidate
		for _, c := range positive.Diff(negative).Elements() {
			lc := strings.ToLower(c)
			switch {
			case blocked.Contains(lc), exposed.Contains(lc), hasJoiner(c):
				continue
			case lc != c && positive.Contains(lc):
				continue
			}
			out = append(out, Candidate{Targets: slices.Clone(s), Hint: c})
		}
		if len(out) == 0 {
			log.Debug().Strs("subset", s).Msg("no discrete clue")
		}
		return out, len(out) > 0, nil
	})
	if err != nil {
		return nil, err
	}

	clues := slices.Concat(perSubset...)
	slices.SortStableFunc(clues, func(a, b Candidate) int {
		return len(b.Targets) - len(a.Targets)
	})
	return clues, nil
}

// continuous asks the embedding space for the nearest admissible neighbour
// of each subset, pushed away from the opponent's words and the assassin.
func (g *Generator) continuous(ctx context.Context, p relations.Continuous, b board.Board, team board.Team) ([]Candidate, error) {
	var own, negative []string
	for _, w := range b.Words(team) {
		if p.InVocab(w) {
			own = append(own, w)
		}
	}
	for _, w := range slices.Concat(b.Words(team.Opponent()), []string{b.Assassin}) {
		if p.InVocab(w) {
			negative = append(negative, w)
		}
	}
	if len(own) == 0 {
		return nil, nil
	}

	blocked := folded(own, negative, b.All().Elements())

	clues, err := forEachSubset(ctx, own, g.cfg.Workers, func(s []string) (Candidate, bool, error) {
		ranked, err := p.MostSimilar(s, negative, g.cfg.TopN, g.cfg.VocabLimit)
		if err != nil {
			return Candidate{}, false, err
		}
		best := Candidate{Score: g.cfg.Threshold}
		found := false
		for _, r := range ranked {
			if blocked.Contains(strings.ToLower(r.Word)) || g.denied(r.Word) {
				continue
			}
			if r.Score > best.Score {
				best = Candidate{Targets: slices.Clone(s), Hint: r.Word, Score: r.Score}
				found = true
			}
		}
		if !found {
			log.Debug().Strs("subset", s).Msg("no continuous clue")
		}
		return best, found, nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(clues, func(a, b Candidate) int {
		wa, wb := a.Score*float64(len(a.Targets)), b.Score*float64(len(b.Targets))
		switch {
		case wa > wb:
			return -1
		case wa < wb:
			return 1
		}
		return 0
	})
	return clues, nil
}

func (g *Generator) denied(w string) bool {
	lw := strings.ToLower(w)
	for _, p := range g.cfg.DenyPrefixes {
		if p != "" && strings.HasPrefix(lw, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
