package lexicon

import (
	"sync"

	"github.com/robalobadob/codenames/apps/go-spymaster/internal/relations"
)

// Memory is an in-memory lexical graph.
// Concurrency-safe via RWMutex: Expand may run from parallel subset workers.
type Memory struct {
	mu    sync.RWMutex
	graph map[string]relations.RelationSet // keyed by stem
}

var _ relations.Discrete = (*Memory)(nil)

// NewMemory returns an empty graph.
func NewMemory() *Memory {
	return &Memory{graph: make(map[string]relations.RelationSet)}
}

// FromRelations builds a graph holding every edge in rels.
func FromRelations(rels []Relation) *Memory {
	m := NewMemory()
	for _, r := range rels {
		m.Add(r.Word, r.Kind, r.Related)
	}
	return m
}

func (m *Memory) Capability() relations.Capability { return relations.CapabilityDiscrete }

// Add records edges word -kind-> related for every related word.
func (m *Memory) Add(word string, kind relations.Kind, related ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := relations.Stem(word)
	rs, ok := m.graph[key]
	if !ok {
		rs = relations.NewRelationSet()
	}
	if g := rs.Group(kind); g != nil {
		g.Add(related...)
	}
	m.graph[key] = rs
}

// Expand returns a copy of the relation groups stored under word's stem.
func (m *Memory) Expand(word string) (relations.RelationSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := relations.NewRelationSet()
	rs, ok := m.graph[relations.Stem(word)]
	if !ok {
		return out, nil
	}
	for _, k := range relations.Kinds {
		out.Group(k).Add(rs.Group(k).Elements()...)
	}
	return out, nil
}

// Len is the number of stems with at least one edge.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.graph)
}
