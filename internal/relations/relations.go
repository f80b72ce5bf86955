// Package relations defines the word-relation backends the clue and guess
// engines query. A backend is either discrete (a lexical graph answering
// synonym/antonym/broader/narrower lookups) or continuous (an embedding space
// answering nearest-neighbour queries); callers branch on Capability.
package relations

import (
	"errors"

	"bitbucket.org/creachadair/stringset"
)

// ErrUnavailable is returned when a backend failed to load. It is fatal for
// every clue or guess operation.
var ErrUnavailable = errors.New("relations: backend unavailable")

// Capability selects the query family a Provider answers.
type Capability int

const (
	CapabilityDiscrete Capability = iota + 1
	CapabilityContinuous
)

func (c Capability) String() string {
	switch c {
	case CapabilityDiscrete:
		return "discrete"
	case CapabilityContinuous:
		return "continuous"
	}
	return "unknown"
}

// Provider is any relation backend.
type Provider interface {
	Capability() Capability
}

// Discrete answers lexical-relation lookups.
type Discrete interface {
	Provider
	// Expand stems word and returns its relation groups. Unknown words
	// produce an empty RelationSet, not an error.
	Expand(word string) (RelationSet, error)
}

// Scored is one nearest-neighbour hit.
type Scored struct {
	Word  string
	Score float64
}

// Continuous answers similarity queries in an embedding space.
type Continuous interface {
	Provider
	InVocab(word string) bool
	// MostSimilar ranks at most topN words by similarity to the positive
	// words and away from the negative ones, searching only the vocabLimit
	// most frequent entries. Out-of-vocabulary inputs are dropped.
	MostSimilar(positive, negative []string, topN, vocabLimit int) ([]Scored, error)
	// MostSimilarToGiven returns the candidate closest to word. ok is false
	// when word or every candidate is out of vocabulary.
	MostSimilarToGiven(word string, candidates []string) (best string, ok bool, err error)
}

// Kind names one relation group.
type Kind string

const (
	KindSynonym  Kind = "synonym"
	KindAntonym  Kind = "antonym"
	KindHypernym Kind = "hypernym"
	KindHyponym  Kind = "hyponym"
)

// Kinds lists every relation group in a fixed order.
var Kinds = []Kind{KindSynonym, KindAntonym, KindHypernym, KindHyponym}

// RelationSet is the expansion of one word.
type RelationSet struct {
	Synonyms  stringset.Set
	Antonyms  stringset.Set
	Hypernyms stringset.Set // broader terms
	Hyponyms  stringset.Set // narrower terms
}

// NewRelationSet returns a RelationSet with every group allocated and empty.
func NewRelationSet() RelationSet {
	return RelationSet{
		Synonyms:  stringset.New(),
		Antonyms:  stringset.New(),
		Hypernyms: stringset.New(),
		Hyponyms:  stringset.New(),
	}
}

// Group returns the set for kind k.
func (r *RelationSet) Group(k Kind) *stringset.Set {
	switch k {
	case KindSynonym:
		return &r.Synonyms
	case KindAntonym:
		return &r.Antonyms
	case KindHypernym:
		return &r.Hypernyms
	case KindHyponym:
		return &r.Hyponyms
	}
	return nil
}

// All is the union of the four groups.
func (r RelationSet) All() stringset.Set {
	all := stringset.New()
	for _, g := range []stringset.Set{r.Synonyms, r.Antonyms, r.Hypernyms, r.Hyponyms} {
		for w := range g {
			all.Add(w)
		}
	}
	return all
}

// Empty reports whether every group is empty.
func (r RelationSet) Empty() bool {
	return r.Synonyms.Empty() && r.Antonyms.Empty() && r.Hypernyms.Empty() && r.Hyponyms.Empty()
}
