// internal/store/memory.go
//
// Evaluation history.
// A Store records one Result per evaluated board and ranks them per
// backend. Boards that produced no clues are kept but never ranked.
//
// Two implementations:
//   - NewMemoryStore: slice guarded by an RWMutex, lost on restart.
//   - SQLite: durable, see sqlite.go.
package store

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"
	"time"
)

var ErrInvalidResult = errors.New("store: invalid result")

// Result is the outcome of evaluating one board. Only scores are stored,
// never the board itself.
type Result struct {
	RunID         string    `json:"runId"`
	Backend       string    `json:"backend"`
	Team          string    `json:"team"`
	Seed          uint64    `json:"seed"`
	Clues         int       `json:"clues"`
	Score         int       `json:"score"`
	TotalPossible int       `json:"totalPossible"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Ratio is Score / TotalPossible, or false when no clue was generated.
func (r Result) Ratio() (float64, bool) {
	if r.TotalPossible == 0 {
		return 0, false
	}
	return float64(r.Score) / float64(r.TotalPossible), true
}

func (r Result) validate() error {
	if r.RunID == "" || r.Backend == "" {
		return ErrInvalidResult
	}
	return nil
}

// Store persists evaluation results.
type Store interface {
	// Save records r. Saving the same run and seed twice keeps the first.
	Save(ctx context.Context, r Result) error

	// Leaderboard returns the best ranked results for backend, by ratio
	// descending then oldest first.
	Leaderboard(ctx context.Context, backend string, limit int) ([]Result, error)
}

type memory struct {
	mu      sync.RWMutex
	results []Result
}

// NewMemoryStore constructs an in-memory Store.
func NewMemoryStore() Store {
	return &memory{}
}

func (m *memory) Save(_ context.Context, r Result) error {
	if err := r.validate(); err != nil {
		return err
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, prev := range m.results {
		if prev.RunID == r.RunID && prev.Seed == r.Seed {
			return nil
		}
	}
	m.results = append(m.results, r)
	return nil
}

func (m *memory) Leaderboard(_ context.Context, backend string, limit int) ([]Result, error) {
	m.mu.RLock()
	var out []Result
	for _, r := range m.results {
		if _, ok := r.Ratio(); ok && r.Backend == backend {
			out = append(out, r)
		}
	}
	m.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b Result) int {
		ra, _ := a.Ratio()
		rb, _ := b.Ratio()
		if c := cmp.Compare(rb, ra); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
