// internal/evaluate/evaluate.go
//
// Scoring loop.
// Responsibilities:
//   - Generate ranked clues for one team and let the simulated guesser
//     answer each of them against the shared guess universe.
//   - Tally correct and incorrect guesses into a Report.
//   - Deal and score a series of seeded boards (Run).
//
// Notes:
//   - The guess universe is both teams' cards plus the assassin. It shrinks
//     across clues of one evaluation, so a card is never guessed twice.
//   - Score is |correct| - |incorrect| per clue regardless of which targets
//     were hit. It is a provisional metric.
package evaluate

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codenames/apps/go-spymaster/internal/board"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/clue"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/guess"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/relations"
)

// ErrNoHints marks a board for which no clue could be generated.
var ErrNoHints = errors.New("could not generate any hints")

// Outcome is what happened to a single clue.
type Outcome struct {
	Clue      clue.Candidate `json:"clue"`
	Guesses   []string       `json:"guesses"`
	Correct   []string       `json:"correct"`
	Incorrect []string       `json:"incorrect"`
}

// Report accumulates the score of one board.
type Report struct {
	Seed          uint64      `json:"seed"`
	Team          board.Team  `json:"team"`
	Board         board.Board `json:"board"`
	Outcomes      []Outcome   `json:"outcomes"`
	Score         int         `json:"score"`
	Correct       int         `json:"correct"`
	Incorrect     int         `json:"incorrect"`
	TotalPossible int         `json:"totalPossible"`
}

// Ratio is Score / TotalPossible. ok is false when no clue was generated.
func (r Report) Ratio() (ratio float64, ok bool) {
	if r.TotalPossible == 0 {
		return 0, false
	}
	return float64(r.Score) / float64(r.TotalPossible), true
}

// Err returns ErrNoHints for a board without clues.
func (r Report) Err() error {
	if _, ok := r.Ratio(); !ok {
		return ErrNoHints
	}
	return nil
}

type Evaluator struct {
	gen     *clue.Generator
	guesser *guess.Guesser
}

func New(backend relations.Provider, cfg clue.Config) *Evaluator {
	return &Evaluator{
		gen:     clue.NewGenerator(backend, cfg),
		guesser: guess.New(backend),
	}
}

// Evaluate plays every generated clue for team on b once.
func (e *Evaluator) Evaluate(ctx context.Context, b board.Board, team board.Team) (Report, error) {
	if err := b.Validate(); err != nil {
		return Report{}, err
	}
	clues, err := e.gen.Generate(ctx, b, team)
	if err != nil {
		return Report{}, fmt.Errorf("generate clues: %w", err)
	}

	rep := Report{Team: team, Board: b, Outcomes: make([]Outcome, 0, len(clues))}
	universe := b.GuessUniverse()
	own, opp := b.Set(team), b.Set(team.Opponent())

	for _, c := range clues {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		guesses, err := e.guesser.Guess(c.Hint, len(c.Targets), &universe)
		if err != nil {
			return Report{}, fmt.Errorf("guess %q: %w", c.Hint, err)
		}
		correct, incorrect := guesses.Intersect(own), guesses.Intersect(opp)

		rep.Outcomes = append(rep.Outcomes, Outcome{
			Clue:      c,
			Guesses:   guesses.Elements(),
			Correct:   correct.Elements(),
			Incorrect: incorrect.Elements(),
		})
		rep.Correct += correct.Len()
		rep.Incorrect += incorrect.Len()
		rep.Score += correct.Len() - incorrect.Len()
		rep.TotalPossible += len(c.Targets)

		log.Debug().
			Str("hint", c.Hint).
			Strs("targets", c.Targets).
			Strs("guesses", guesses.Elements()).
			Int("correct", correct.Len()).
			Int("incorrect", incorrect.Len()).
			Msg("clue played")
	}
	return rep, nil
}

// Summary aggregates Run over several boards.
type Summary struct {
	Reports       []Report `json:"reports"`
	Score         int      `json:"score"`
	TotalPossible int      `json:"totalPossible"`
	NoHints       int      `json:"noHints"`
}

// Ratio is the pooled score over every board that produced clues.
func (s Summary) Ratio() (float64, bool) {
	if s.TotalPossible == 0 {
		return 0, false
	}
	return float64(s.Score) / float64(s.TotalPossible), true
}

// NewRand is the random source used to deal the board for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 1024))
}

// Run deals one board per seed from pool and evaluates it for team.
func (e *Evaluator) Run(ctx context.Context, pool []string, layout board.Layout, seeds []uint64, team board.Team) (Summary, error) {
	var sum Summary
	for _, seed := range seeds {
		b, err := board.Deal(pool, layout, NewRand(seed))
		if err != nil {
			return Summary{}, fmt.Errorf("deal seed %d: %w", seed, err)
		}
		rep, err := e.Evaluate(ctx, b, team)
		if err != nil {
			return Summary{}, fmt.Errorf("seed %d: %w", seed, err)
		}
		rep.Seed = seed

		sum.Reports = append(sum.Reports, rep)
		sum.Score += rep.Score
		sum.TotalPossible += rep.TotalPossible
		if rep.Err() != nil {
			sum.NoHints++
		}

		ratio, ok := rep.Ratio()
		log.Info().
			Uint64("seed", seed).
			Str("team", string(team)).
			Int("clues", len(rep.Outcomes)).
			Int("score", rep.Score).
			Int("possible", rep.TotalPossible).
			Float64("ratio", ratio).
			Bool("hints", ok).
			Msg("board evaluated")
	}
	return sum, nil
}
