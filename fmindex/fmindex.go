/*
Package fmindex composes a suffix array, a Burrows-Wheeler transform, and a
wavelet tree into an FM-index: an immutable, in-memory structure that
answers substring-occurrence counts against a text without ever storing the
text itself.

Build runs the three construction phases in sequence (suffix array, BWT/C
array, wavelet tree) and Count performs LF-mapping backward search over the
result, narrowing a half-open row interval one pattern character at a time -
the same idea as the teacher's lfSearch, generalized from an interval
skip-list over a sorted prefix array to the plain C-array form spec'd here.
*/
package fmindex

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/helixdb/fmindex/alphabet"
	"github.com/helixdb/fmindex/bwtbuild"
	"github.com/helixdb/fmindex/suffixarray"
	"github.com/helixdb/fmindex/wavelet"
)

// ErrInvalidPosition is returned by Rank when a query position falls
// outside [0, Len()].
var ErrInvalidPosition = errors.New("fmindex: position out of range")

// ErrBuildFailure wraps a failure from one of the build phases (suffix
// array construction, BWT/C-array construction, or sentinel validation).
var ErrBuildFailure = errors.New("fmindex: build failed")

// Options configures Build. A zero Options uses no rank sampling
// (block_size disabled, every Rank call does a linear scan) and no debug
// logging.
type Options struct {
	// BlockSize is the bit-vector rank-sampling stride (lambda) passed to
	// every wavelet tree node. Nil disables sampling.
	BlockSize *uint32
	// Debug turns on stderr timing lines for each build phase, in the
	// teacher's printLFDebug spirit - diagnostic only, never affects Count.
	Debug bool
}

// Index is a built FM-index: an immutable wavelet tree over BWT(T), the
// cumulative character-count table C, and n = len(T).
type Index struct {
	tree  *wavelet.Tree
	c     []int
	n     int
	alpha *alphabet.Alphabet
}

// Build constructs an Index over text using alpha as the fixed symbol
// alphabet. text must contain alpha.Sentinel() exactly once, at its last
// position, and every byte of text must be a member of alpha; bwtbuild
// enforces both, rejecting a sentinel placed mid-text as well as one
// missing from the end.
//
// Build fails with alphabet.ErrUnknownSymbol if text contains a byte
// outside alpha, and with ErrBuildFailure if the suffix-array or BWT/
// C-array construction phases fail for any other reason (including a
// misplaced or duplicated sentinel).
func Build(text []byte, alpha *alphabet.Alphabet, opts Options) (*Index, error) {
	debugf := noopLogf
	if opts.Debug {
		debugf = log.Printf
	}

	encoded, err := alpha.EncodeAll(text)
	if err != nil {
		return nil, err
	}
	// Sort suffixes by alphabet index rather than raw byte value, so the row
	// order matches the index order that C and the wavelet tree use.
	keys := make([]byte, len(encoded))
	for i, c := range encoded {
		keys[i] = byte(c)
	}

	start := time.Now()
	sa, err := suffixarray.Build(keys)
	if err != nil {
		return nil, fmt.Errorf("%w: suffix array: %v", ErrBuildFailure, err)
	}
	debugf("fmindex: suffix array built in %s (n=%d)", time.Since(start), len(text))

	start = time.Now()
	result, err := bwtbuild.Build(text, alpha, sa)
	if err != nil {
		if errors.Is(err, alphabet.ErrUnknownSymbol) {
			// Propagated unwrapped: callers check it with errors.Is the
			// same way they would check any other build-time symbol error.
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrBuildFailure, err)
	}
	debugf("fmindex: BWT/C-array built in %s", time.Since(start))

	blockSize := 0
	if opts.BlockSize != nil {
		blockSize = int(*opts.BlockSize)
	}

	start = time.Now()
	tree := wavelet.Build(result.BWT, alpha.Size(), blockSize)
	debugf("fmindex: wavelet tree built in %s (sigma=%d, block_size=%d)", time.Since(start), alpha.Size(), blockSize)

	return &Index{
		tree:  tree,
		c:     result.C,
		n:     len(text),
		alpha: alpha,
	}, nil
}

func noopLogf(string, ...any) {}

// Len returns n, the length of the indexed text including its sentinel.
func (idx *Index) Len() int {
	return idx.n
}

// Count returns the number of occurrences of pattern in the indexed text.
// An empty pattern matches every position and returns Len(). Count fails
// with alphabet.ErrUnknownSymbol when the backward search reaches a byte
// outside the index's alphabet. The search returns 0 as soon as the row
// interval becomes empty, so bytes earlier in pattern than that point are
// not checked.
func (idx *Index) Count(pattern []byte) (uint64, error) {
	sp, ep := 0, idx.n
	for k := len(pattern) - 1; k >= 0; k-- {
		if ep-sp == 0 {
			return 0, nil
		}

		c, err := idx.alpha.Index(pattern[k])
		if err != nil {
			return 0, err
		}

		startRank, err := idx.tree.Rank(c, sp)
		if err != nil {
			return 0, fmt.Errorf("fmindex: internal rank failure: %w", err)
		}
		endRank, err := idx.tree.Rank(c, ep)
		if err != nil {
			return 0, fmt.Errorf("fmindex: internal rank failure: %w", err)
		}

		if endRank-startRank == 0 {
			return 0, nil
		}

		sp = idx.c[c] + startRank
		ep = idx.c[c] + endRank
	}

	return uint64(ep - sp), nil
}

// Rank returns the number of occurrences of the symbol at alphabet index
// charIndex among the first position characters of BWT(T). This is a
// diagnostic that exposes the wavelet tree's rank directly; Count is built
// from repeated calls to it and is the operation most callers want.
func (idx *Index) Rank(charIndex uint32, position uint64) (uint64, error) {
	if position > uint64(idx.n) {
		return 0, fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidPosition, position, idx.n)
	}
	if int(charIndex) >= idx.alpha.Size() {
		return 0, fmt.Errorf("%w: char index %d not in [0, %d)", ErrInvalidPosition, charIndex, idx.alpha.Size())
	}

	r, err := idx.tree.Rank(int(charIndex), int(position))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPosition, err)
	}
	return uint64(r), nil
}
