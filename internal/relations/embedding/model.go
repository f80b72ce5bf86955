// Package embedding is the continuous relation backend: a word-vector space
// queried by cosine similarity.
//
// Vectors are unit-normalised at load time, so every similarity is a dot
// product. Vocabulary order is frequency order (most frequent first), which
// is what the vocabLimit argument of MostSimilar truncates.
package embedding

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/robalobadob/codenames/apps/go-spymaster/internal/relations"
)

var ErrFormat = errors.New("embedding: malformed vectors")

// Model is an immutable word-vector table, safe for concurrent queries.
type Model struct {
	words []string
	index map[string]int // exact surface form
	fold  map[string]int // lower-cased, first (most frequent) row wins
	vecs  [][]float32
	dim   int
}

var _ relations.Continuous = (*Model)(nil)

// New builds a model from words in frequency order and their vectors.
func New(words []string, vectors [][]float32) (*Model, error) {
	if len(words) != len(vectors) {
		return nil, fmt.Errorf("%w: %d words, %d vectors", ErrFormat, len(words), len(vectors))
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", ErrFormat)
	}

	m := &Model{
		words: make([]string, 0, len(words)),
		index: make(map[string]int, len(words)),
		fold:  make(map[string]int, len(words)),
		vecs:  make([][]float32, 0, len(words)),
		dim:   len(vectors[0]),
	}
	for i, w := range words {
		if len(vectors[i]) != m.dim {
			return nil, fmt.Errorf("%w: %q has %d dims, want %d", ErrFormat, w, len(vectors[i]), m.dim)
		}
		if _, dup := m.index[w]; dup {
			continue
		}
		row := len(m.words)
		m.words = append(m.words, w)
		m.vecs = append(m.vecs, unit(vectors[i]))
		m.index[w] = row
		if _, ok := m.fold[strings.ToLower(w)]; !ok {
			m.fold[strings.ToLower(w)] = row
		}
	}
	return m, nil
}

func (m *Model) Capability() relations.Capability { return relations.CapabilityContinuous }

// Len is the vocabulary size.
func (m *Model) Len() int {
	if m == nil {
		return 0
	}
	return len(m.words)
}

// Dim is the vector dimensionality.
func (m *Model) Dim() int {
	if m == nil {
		return 0
	}
	return m.dim
}

// InVocab reports whether w (or its lower-cased form) has a vector.
func (m *Model) InVocab(w string) bool {
	_, ok := m.row(w)
	return ok
}

func (m *Model) row(w string) (int, bool) {
	if m == nil {
		return 0, false
	}
	if i, ok := m.index[w]; ok {
		return i, true
	}
	i, ok := m.fold[strings.ToLower(w)]
	return i, ok
}

// MostSimilar averages the unit vectors of positive minus those of negative
// and returns up to topN vocabulary words ranked by cosine similarity to the
// result. Input words are never returned. Ties keep frequency order.
func (m *Model) MostSimilar(positive, negative []string, topN, vocabLimit int) ([]relations.Scored, error) {
	if m == nil || len(m.words) == 0 {
		return nil, relations.ErrUnavailable
	}
	if topN <= 0 {
		return nil, nil
	}

	exclude := make(map[int]struct{})
	mean := make([]float64, m.dim)
	n := 0
	for _, g := range []struct {
		sign  float64
		words []string
	}{{1, positive}, {-1, negative}} {
		sign := g.sign
		for _, w := range g.words {
			i, ok := m.row(w)
			if !ok {
				continue
			}
			exclude[i] = struct{}{}
			for d, v := range m.vecs[i] {
				mean[d] += sign * float64(v)
			}
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	query := unit64(mean)

	limit := len(m.words)
	if vocabLimit > 0 && vocabLimit < limit {
		limit = vocabLimit
	}

	top := make([]relations.Scored, 0, topN)
	for i := 0; i < limit; i++ {
		if _, skip := exclude[i]; skip {
			continue
		}
		s := dot(query, m.vecs[i])
		if len(top) == topN && s <= top[len(top)-1].Score {
			continue
		}
		top = insertRanked(top, relations.Scored{Word: m.words[i], Score: s}, topN)
	}
	return top, nil
}

// MostSimilarToGiven returns the candidate with the highest cosine
// similarity to word. Out-of-vocabulary candidates are ignored; ties keep
// candidate order.
func (m *Model) MostSimilarToGiven(word string, candidates []string) (string, bool, error) {
	if m == nil || len(m.words) == 0 {
		return "", false, relations.ErrUnavailable
	}
	wi, ok := m.row(word)
	if !ok {
		return "", false, nil
	}
	q := m.vecs[wi]

	best, bestScore, found := "", math.Inf(-1), false
	for _, c := range candidates {
		ci, ok := m.row(c)
		if !ok {
			continue
		}
		var s float64
		for d, v := range q {
			s += float64(v) * float64(m.vecs[ci][d])
		}
		if !found || s > bestScore {
			best, bestScore, found = c, s, true
		}
	}
	return best, found, nil
}

// Similarity is the cosine similarity of a and b.
func (m *Model) Similarity(a, b string) (float64, bool) {
	ai, ok := m.row(a)
	if !ok {
		return 0, false
	}
	bi, ok := m.row(b)
	if !ok {
		return 0, false
	}
	var s float64
	for d, v := range m.vecs[ai] {
		s += float64(v) * float64(m.vecs[bi][d])
	}
	return s, true
}

// insertRanked inserts s into top (descending, len <= n), keeping earlier
// entries ahead of equal scores.
func insertRanked(top []relations.Scored, s relations.Scored, n int) []relations.Scored {
	pos := len(top)
	for pos > 0 && top[pos-1].Score < s.Score {
		pos--
	}
	if pos >= n {
		return top
	}
	if len(top) < n {
		top = append(top, relations.Scored{})
	}
	copy(top[pos+1:], top[pos:len(top)-1])
	top[pos] = s
	return top
}

func dot(q []float64, v []float32) float64 {
	var s float64
	for d, x := range v {
		s += q[d] * float64(x)
	}
	return s
}

func unit(v []float32) []float32 {
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	out := make([]float32, len(v))
	if norm == 0 {
		return out
	}
	norm = math.Sqrt(norm)
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

func unit64(v []float64) []float64 {
	var norm float64
	for _, x := range v {
		norm += x * x
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	for i := range v {
		v[i] /= norm
	}
	return v
}
