/*
Package bwtbuild derives the Burrows-Wheeler transform of a text from its
suffix array, together with the cumulative character-count table C that the
fmindex package's backward search needs.

This generalizes the teacher's combined "rotate, sort, read off a column"
BWT construction (bwt.New, which built its own sorted prefix array
internally) into two independently testable steps: an external suffix array
(see the suffixarray package) is the input here, not an implementation
detail. The column still falls out the same way - BWT[i] is the character
immediately before the i-th lexicographically-smallest suffix, wrapping
around the end of the text.
*/
package bwtbuild

import (
	"errors"
	"fmt"

	"github.com/helixdb/fmindex/alphabet"
)

// ErrSentinelMisplaced is returned when text does not contain exactly one
// occurrence of the alphabet's sentinel symbol at its last position - the
// convention spec §4.4/§9 requires, and says explicitly to reject at build
// time (a sentinel inserted mid-text breaks both SA[0] being the sentinel's
// position and the T[-1] = T[n-1] wraparound convention).
var ErrSentinelMisplaced = errors.New("bwtbuild: sentinel is not the unique lexicographically smallest suffix")

// Result holds the BWT of a text, encoded as alphabet indices, alongside the
// cumulative character-count table C that backward search consults at every
// step.
type Result struct {
	// BWT holds, for each row i of the conceptually-sorted rotation matrix,
	// the alphabet index of the character preceding that row's suffix.
	BWT []int
	// C holds, for each alphabet index c, the number of sorted-suffix rows
	// whose first character has an alphabet index strictly less than c.
	// len(C) == alpha.Size(); C is non-decreasing and C[0] == 0.
	C []int
}

// Build derives the BWT and C-array of text from its suffix array sa and
// alphabet alpha. sa must be a suffix array of text as produced by the
// suffixarray package: a permutation of [0, n) in lexicographic order of
// suffixes, with sa[0] pointing at the sentinel (text[n-1]).
//
// Build fails with alphabet.ErrUnknownSymbol if text contains a byte outside
// alpha, and with ErrSentinelMisplaced if text does not contain exactly one
// sentinel at its last position, or if sa[0] does not point there.
func Build(text []byte, alpha *alphabet.Alphabet, sa []int) (*Result, error) {
	n := len(text)
	if len(sa) != n {
		return nil, fmt.Errorf("bwtbuild: suffix array length %d does not match text length %d", len(sa), n)
	}
	if n == 0 || sa[0] != n-1 {
		return nil, ErrSentinelMisplaced
	}

	encoded, err := alpha.EncodeAll(text)
	if err != nil {
		return nil, fmt.Errorf("bwtbuild: %w", err)
	}

	sentinelCount := 0
	for _, c := range encoded {
		if c == 0 {
			sentinelCount++
		}
	}
	if sentinelCount != 1 || encoded[n-1] != 0 {
		return nil, ErrSentinelMisplaced
	}

	bwt := make([]int, n)
	freq := make([]int, alpha.Size())
	for i, pos := range sa {
		prev := pos - 1
		if prev < 0 {
			prev = n - 1
		}
		c := encoded[prev]
		bwt[i] = c
		freq[encoded[pos]]++
	}

	c := make([]int, alpha.Size())
	for i := 1; i < len(c); i++ {
		c[i] = c[i-1] + freq[i-1]
	}

	return &Result{BWT: bwt, C: c}, nil
}
