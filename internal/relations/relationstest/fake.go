// Package relationstest provides scripted relation backends for tests.
package relationstest

import (
	"strings"
	"sync"

	"bitbucket.org/creachadair/stringset"

	"github.com/robalobadob/codenames/apps/go-spymaster/internal/relations"
)

// Discrete is a map-backed lexical backend. Lookups are case-insensitive
// and unstemmed. Calls records how many times Expand ran.
type Discrete struct {
	Err error

	mu    sync.Mutex
	sets  map[string]relations.RelationSet
	Calls int
}

var _ relations.Discrete = (*Discrete)(nil)

func NewDiscrete() *Discrete {
	return &Discrete{sets: make(map[string]relations.RelationSet)}
}

// Add records related words of the given kind for word.
func (d *Discrete) Add(word string, kind relations.Kind, related ...string) *Discrete {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := strings.ToLower(word)
	rs, ok := d.sets[key]
	if !ok {
		rs = relations.NewRelationSet()
	}
	rs.Group(kind).Add(related...)
	d.sets[key] = rs
	return d
}

func (d *Discrete) Capability() relations.Capability { return relations.CapabilityDiscrete }

func (d *Discrete) Expand(word string) (relations.RelationSet, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Calls++
	if d.Err != nil {
		return relations.RelationSet{}, d.Err
	}
	out := relations.NewRelationSet()
	if rs, ok := d.sets[strings.ToLower(word)]; ok {
		for _, k := range relations.Kinds {
			out.Group(k).Add(rs.Group(k).Elements()...)
		}
	}
	return out, nil
}

// Continuous is a scripted embedding backend. MostSimilar answers come from
// Neighbours keyed by the comma-joined positive words; MostSimilarToGiven
// uses Affinity, keyed by clue then candidate.
type Continuous struct {
	Err        error
	Vocab      stringset.Set
	Neighbours map[string][]relations.Scored
	Affinity   map[string]map[string]float64

	mu      sync.Mutex
	Queries [][]string
}

var _ relations.Continuous = (*Continuous)(nil)

func NewContinuous(vocab ...string) *Continuous {
	return &Continuous{
		Vocab:      stringset.New(vocab...),
		Neighbours: make(map[string][]relations.Scored),
		Affinity:   make(map[string]map[string]float64),
	}
}

// Near scripts the MostSimilar answer for positive.
func (c *Continuous) Near(positive []string, scored ...relations.Scored) *Continuous {
	c.Neighbours[strings.Join(positive, ",")] = scored
	return c
}

// Like sets how strongly clue points at each candidate.
func (c *Continuous) Like(clue string, scores map[string]float64) *Continuous {
	c.Affinity[clue] = scores
	return c
}

func (c *Continuous) Capability() relations.Capability { return relations.CapabilityContinuous }

func (c *Continuous) InVocab(w string) bool { return c.Vocab.Contains(w) }

func (c *Continuous) MostSimilar(positive, negative []string, topN, _ int) ([]relations.Scored, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	c.mu.Lock()
	c.Queries = append(c.Queries, append([]string(nil), positive...))
	c.mu.Unlock()

	got := c.Neighbours[strings.Join(positive, ",")]
	if len(got) > topN {
		got = got[:topN]
	}
	return append([]relations.Scored(nil), got...), nil
}

func (c *Continuous) MostSimilarToGiven(word string, candidates []string) (string, bool, error) {
	if c.Err != nil {
		return "", false, c.Err
	}
	if !c.InVocab(word) {
		return "", false, nil
	}
	best, bestScore, found := "", 0.0, false
	for _, cand := range candidates {
		if !c.InVocab(cand) {
			continue
		}
		s := c.Affinity[word][cand]
		if !found || s > bestScore {
			best, bestScore, found = cand, s, true
		}
	}
	return best, found, nil
}
