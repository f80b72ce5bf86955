package relations

import (
	"testing"

	"bitbucket.org/creachadair/stringset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationSet_All(t *testing.T) {
	// Given: a relation set with every group populated
	r := NewRelationSet()
	r.Synonyms.Add("cash", "money")
	r.Antonyms.Add("debt")
	r.Hypernyms.Add("institution")
	r.Hyponyms.Add("money", "vault")

	// When: the groups are unioned
	all := r.All()

	// Then: every word appears once and the groups are left untouched
	assert.Equal(t, []string{"cash", "debt", "institution", "money", "vault"}, all.Elements())
	assert.Equal(t, 2, r.Synonyms.Len())
	assert.False(t, r.Empty())
}

func TestRelationSet_Group(t *testing.T) {
	r := NewRelationSet()
	for _, k := range Kinds {
		g := r.Group(k)
		require.NotNil(t, g)
		g.Add(string(k))
	}

	assert.True(t, r.Synonyms.Contains("synonym"))
	assert.True(t, r.Antonyms.Contains("antonym"))
	assert.True(t, r.Hypernyms.Contains("hypernym"))
	assert.True(t, r.Hyponyms.Contains("hyponym"))
	assert.Nil(t, r.Group("meronym"))
}

func TestRelationSet_ZeroValueIsEmpty(t *testing.T) {
	var r RelationSet

	assert.True(t, r.Empty())
	assert.Equal(t, stringset.New().Len(), r.All().Len())
}

func TestStem(t *testing.T) {
	assert.Equal(t, Stem("banks"), Stem("bank"))
	assert.Equal(t, Stem("Running"), Stem("running"))
	assert.Equal(t, "", Stem("  "))
}
