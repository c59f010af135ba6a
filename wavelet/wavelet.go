/*
Package wavelet implements a balanced wavelet tree over a string of
alphabet indices, answering rank(charIndex, i) - the number of occurrences
of a given symbol in the first i positions - in O(log sigma) rank calls.

Unlike a Huffman-shaped wavelet tree that assigns shorter paths to more
frequent symbols to save memory, this tree partitions alphabet INDEX ranges
in half at every level regardless of symbol frequency: a node covering
index range [lo, hi) splits its input into a left child over [lo, mid) and
a right child over [mid, hi), where mid = lo + ceil((hi-lo)/2). This is
what makes rank queries agree with a fixed, known alphabet ordering (the
ordering the BWT/C-array builder and the backward search both rely on),
independent of the frequency distribution of any particular text.
*/
package wavelet

import (
	"fmt"

	"github.com/helixdb/fmindex/rankbv"
)

// Tree is a balanced binary wavelet tree over alphabet index range
// [0, sigma).
type Tree struct {
	root   *node
	sigma  int
	length int
}

type node struct {
	lo, hi int
	bv     *rankbv.BitVectorRank
	left   *node
	right  *node
}

func (n *node) isLeaf() bool {
	return n.hi-n.lo <= 1
}

func (n *node) mid() int {
	return n.lo + ceilDiv(n.hi-n.lo, 2)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Build constructs a wavelet tree over symbols, a sequence of alphabet
// indices each in [0, sigma). blockSize is the rank-sampling stride
// (lambda) passed through to every node's BitVectorRank; 0 disables
// sampling.
func Build(symbols []int, sigma int, blockSize int) *Tree {
	positions := make([]int, len(symbols))
	for i := range positions {
		positions[i] = i
	}
	root := build(0, sigma, positions, symbols, blockSize)
	return &Tree{root: root, sigma: sigma, length: len(symbols)}
}

func build(lo, hi int, positions []int, symbols []int, blockSize int) *node {
	if hi-lo <= 1 {
		return &node{lo: lo, hi: hi}
	}

	mid := lo + ceilDiv(hi-lo, 2)

	bits := make([]bool, len(positions))
	var leftPositions, rightPositions []int
	for i, p := range positions {
		if symbols[p] >= mid {
			bits[i] = true
			rightPositions = append(rightPositions, p)
		} else {
			leftPositions = append(leftPositions, p)
		}
	}

	bv := rankbv.New(bits, blockSize)
	left := build(lo, mid, leftPositions, symbols, blockSize)
	right := build(mid, hi, rightPositions, symbols, blockSize)

	return &node{lo: lo, hi: hi, bv: bv, left: left, right: right}
}

// Len returns n, the length of the string this tree represents.
func (t *Tree) Len() int {
	return t.length
}

// Sigma returns the alphabet size this tree was built over.
func (t *Tree) Sigma() int {
	return t.sigma
}

// Rank returns the number of occurrences of charIndex in the first i
// positions of the represented string. Precondition: 0 <= charIndex <
// Sigma(), 0 <= i <= Len().
func (t *Tree) Rank(charIndex, i int) (int, error) {
	if charIndex < 0 || charIndex >= t.sigma {
		return 0, fmt.Errorf("rank: char index %d out of range [0, %d)", charIndex, t.sigma)
	}
	if i < 0 || i > t.length {
		return 0, fmt.Errorf("rank: position %d out of range [0, %d]", i, t.length)
	}

	curr := t.root
	pos := i
	for !curr.isLeaf() {
		mid := curr.mid()
		ones := curr.bv.Rank1(pos)
		zeros := pos - ones
		if charIndex < mid {
			pos = zeros
			curr = curr.left
		} else {
			pos = ones
			curr = curr.right
		}
	}
	return pos, nil
}

// Access returns the alphabet index of the symbol at position i of the
// represented string, by descending from the root to the leaf that
// represents it. Used for round-trip verification and diagnostics.
func (t *Tree) Access(i int) (int, error) {
	if i < 0 || i >= t.length {
		return 0, fmt.Errorf("access: position %d out of range [0, %d)", i, t.length)
	}

	curr := t.root
	pos := i
	for !curr.isLeaf() {
		bit := curr.bv.Bit(pos)
		pos = curr.bv.Rank(bit, pos)
		if bit {
			curr = curr.right
		} else {
			curr = curr.left
		}
	}
	return curr.lo, nil
}

// Reconstruct rebuilds the full sequence of alphabet indices this tree
// represents by calling Access at every position. O(n log sigma); intended
// for tests and diagnostics, not production query paths.
func (t *Tree) Reconstruct() []int {
	out := make([]int, t.length)
	for i := range out {
		// error impossible: i is always in range here.
		out[i], _ = t.Access(i)
	}
	return out
}
