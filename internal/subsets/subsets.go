// Package subsets enumerates the bounded power set of a team's words.
package subsets

import (
	"errors"
	"fmt"
	"iter"
)

var ErrInvalidMaxSize = errors.New("subsets: max size must be positive")

// Enumerate returns every non-empty subset of words with at most maxSize
// elements. Subsets come out by size, then in lexicographic order of the
// input indexes, so repeated enumeration of the same slice is identical.
// Each yielded slice is freshly allocated.
func Enumerate(words []string, maxSize int) (iter.Seq[[]string], error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxSize, maxSize)
	}
	limit := min(maxSize, len(words))

	return func(yield func([]string) bool) {
		for k := 1; k <= limit; k++ {
			for idx := range combinations(len(words), k) {
				subset := make([]string, k)
				for i, j := range idx {
					subset[i] = words[j]
				}
				if !yield(subset) {
					return
				}
			}
		}
	}, nil
}

// Count is the number of subsets Enumerate yields for n words.
func Count(n, maxSize int) int {
	total := 0
	for k := 1; k <= min(maxSize, n); k++ {
		total += binomial(n, k)
	}
	return total
}

// combinations yields the k-combinations of 0..n-1. The yielded slice is
// reused between iterations.
func combinations(n, k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		for {
			if !yield(idx) {
				return
			}
			// Find the rightmost index that can still advance.
			i := k - 1
			for i >= 0 && idx[i] == n-k+i {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	r := 1
	for i := 1; i <= k; i++ {
		r = r * (n - k + i) / i
	}
	return r
}
