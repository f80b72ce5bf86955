// internal/board/board.go
//
// Board dealing and lookups.
// Responsibilities:
//   - Shuffle a word pool with an injected RNG and partition it into
//     the two teams, bystanders and the assassin.
//   - Validate partition invariants (sizes, pairwise disjoint groups).
//   - Answer ownership and group queries for the clue and scoring engines.
//
// Notes:
//   - The RNG is a caller-supplied *rand.Rand so evaluation runs can be
//     reproduced from a seed.
//   - Membership is case-insensitive; stored words keep their surface form.
package board

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"bitbucket.org/creachadair/stringset"

	"github.com/robalobadob/codenames/apps/go-spymaster/internal/words"
)

var (
	ErrInvalidLayout = errors.New("board: invalid layout")
	ErrPoolTooSmall  = errors.New("board: word pool too small")
	ErrOverlap       = errors.New("board: groups overlap")
	ErrNilRand       = errors.New("board: nil random source")
	ErrInvalidTeam   = errors.New("board: invalid team")
)

// ParseTeam maps "red"/"blue" to a playable Team.
func ParseTeam(s string) (Team, error) {
	switch t := Team(words.Normalize(s)); t {
	case Red, Blue:
		return t, nil
	}
	return NoTeam, fmt.Errorf("%w: %q", ErrInvalidTeam, s)
}

// Validate checks the layout sizes.
func (l Layout) Validate() error {
	if !l.First.Playable() {
		return fmt.Errorf("%w: first team %q", ErrInvalidLayout, l.First)
	}
	if l.FirstTeam <= 0 || l.SecondTeam <= 0 || l.Bystanders < 0 {
		return fmt.Errorf("%w: %d/%d/%d", ErrInvalidLayout, l.FirstTeam, l.SecondTeam, l.Bystanders)
	}
	return nil
}

// Deal shuffles a copy of pool with rng and partitions the first
// layout.Size() words. The first team's cards are dealt first.
func Deal(pool []string, layout Layout, rng *rand.Rand) (Board, error) {
	if err := layout.Validate(); err != nil {
		return Board{}, err
	}
	if rng == nil {
		return Board{}, ErrNilRand
	}
	if len(pool) < layout.Size() {
		return Board{}, fmt.Errorf("%w: need %d, have %d", ErrPoolTooSmall, layout.Size(), len(pool))
	}

	bag := slices.Clone(pool)
	rng.Shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})

	first := bag[:layout.FirstTeam]
	bag = bag[layout.FirstTeam:]
	second := bag[:layout.SecondTeam]
	bag = bag[layout.SecondTeam:]
	bystanders := bag[:layout.Bystanders]
	bag = bag[layout.Bystanders:]

	b := Board{
		Bystanders: slices.Clone(bystanders),
		Assassin:   bag[0],
	}
	if layout.First == Red {
		b.Red, b.Blue = slices.Clone(first), slices.Clone(second)
	} else {
		b.Blue, b.Red = slices.Clone(first), slices.Clone(second)
	}

	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// Validate checks that the four groups are pairwise disjoint (case-insensitively)
// and that both teams hold at least one word.
func (b Board) Validate() error {
	if len(b.Red) == 0 || len(b.Blue) == 0 || b.Assassin == "" {
		return fmt.Errorf("%w: empty group", ErrInvalidLayout)
	}
	seen := make(map[string]Team, b.Size())
	for t, group := range b.groups() {
		for _, w := range group {
			k := words.Fold(w)
			if prev, dup := seen[k]; dup {
				return fmt.Errorf("%w: %q in %s and %s", ErrOverlap, w, prev, t)
			}
			seen[k] = t
		}
	}
	return nil
}

func (b Board) groups() map[Team][]string {
	return map[Team][]string{
		Red:       b.Red,
		Blue:      b.Blue,
		Bystander: b.Bystanders,
		Assassin:  {b.Assassin},
	}
}

// Size is the number of cards on the board.
func (b Board) Size() int {
	return len(b.Red) + len(b.Blue) + len(b.Bystanders) + 1
}

// Words returns the cards of team t.
func (b Board) Words(t Team) []string {
	switch t {
	case Red:
		return b.Red
	case Blue:
		return b.Blue
	case Bystander:
		return b.Bystanders
	case Assassin:
		return []string{b.Assassin}
	}
	return nil
}

// Set returns the lower-cased cards of team t.
func (b Board) Set(t Team) stringset.Set {
	return foldSet(b.Words(t))
}

// All returns every card on the board, lower-cased.
func (b Board) All() stringset.Set {
	s := foldSet(b.Red)
	s.Add(foldSet(b.Blue).Elements()...)
	s.Add(foldSet(b.Bystanders).Elements()...)
	s.Add(words.Fold(b.Assassin))
	return s
}

// GuessUniverse is the pool a simulated guesser picks from: both teams'
// cards plus the assassin. Bystanders are left out.
func (b Board) GuessUniverse() stringset.Set {
	s := foldSet(b.Red)
	s.Add(foldSet(b.Blue).Elements()...)
	s.Add(words.Fold(b.Assassin))
	return s
}

// Owner returns the affiliation of w, or NoTeam if w is not on the board.
func (b Board) Owner(w string) Team {
	k := words.Fold(w)
	for t, group := range b.groups() {
		for _, g := range group {
			if words.Fold(g) == k {
				return t
			}
		}
	}
	return NoTeam
}

func foldSet(ws []string) stringset.Set {
	s := stringset.New()
	for _, w := range ws {
		s.Add(words.Fold(w))
	}
	return s
}
