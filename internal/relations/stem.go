package relations

import (
	"strings"

	"github.com/kljensen/snowball/english"
)

// Stem reduces word to its English morphological root. Lookups in every
// discrete backend are keyed by Stem, so "Banks" and "bank" resolve alike.
func Stem(word string) string {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return ""
	}
	return english.Stem(w, true)
}
