/*
Package rankbv provides BitVectorRank: a packed bit vector augmented with
precomputed rank samples at regular block boundaries, so that rank1(i) -
the number of 1-bits in [0, i) - can be answered in O(lambda) scan time
instead of O(B).

The sampling stride lambda is the spec's "block_size": when configured,
BitVectorRank precomputes R[k] = rank1(k*lambda) for every k from 0 up to
and including ceil(B/lambda), so a sample is always in range for any legal
query position i in [0, B] - there is no fallback path that silently resets
the scan to zero, unlike the latent bug in some BWT reference
implementations where an out-of-range sample index discards the
accumulated count.
*/
package rankbv

import "github.com/helixdb/fmindex/bitpack"

// BitVectorRank answers rank1/rank0 queries over an immutable bit vector.
type BitVectorRank struct {
	bits      *bitpack.BitPack
	blockSize int // lambda; 0 means "no sampling, linear scan"
	samples   []int
	totalOnes int
}

// New builds a BitVectorRank from a sequence of {0,1} values. If
// blockSize > 0, rank samples are precomputed every blockSize bits; a
// blockSize of 0 disables sampling and forces a linear scan on every
// Rank1 call.
func New(values []bool, blockSize int) *BitVectorRank {
	bp := bitpack.New(len(values))
	for i, v := range values {
		bp.SetBit(i, v)
	}
	return newFromBitPack(bp, blockSize)
}

func newFromBitPack(bp *bitpack.BitPack, blockSize int) *BitVectorRank {
	rv := &BitVectorRank{
		bits:      bp,
		blockSize: blockSize,
	}

	total := bp.CountRange(0, bp.Len())
	rv.totalOnes = total

	if blockSize <= 0 {
		return rv
	}

	numSamples := ceilDiv(bp.Len(), blockSize) + 1
	rv.samples = make([]int, numSamples)
	running := 0
	pos := 0
	for k := 0; k < numSamples; k++ {
		rv.samples[k] = running
		next := pos + blockSize
		if next > bp.Len() {
			next = bp.Len()
		}
		running += bp.CountRange(pos, next)
		pos = next
	}
	return rv
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Len returns B, the number of bits represented.
func (rv *BitVectorRank) Len() int {
	return rv.bits.Len()
}

// Bit returns the value of bit i. Precondition: 0 <= i < Len().
func (rv *BitVectorRank) Bit(i int) bool {
	return rv.bits.Bit(i)
}

// Rank1 returns the number of 1-bits in the half-open range [0, i).
// Precondition: 0 <= i <= Len(). i == Len() returns the total popcount.
func (rv *BitVectorRank) Rank1(i int) int {
	if rv.blockSize <= 0 {
		return rv.bits.CountRange(0, i)
	}

	k := i / rv.blockSize
	base := rv.samples[k]
	scanFrom := k * rv.blockSize
	return base + rv.bits.CountRange(scanFrom, i)
}

// Rank0 returns the number of 0-bits in the half-open range [0, i).
func (rv *BitVectorRank) Rank0(i int) int {
	return i - rv.Rank1(i)
}

// Rank returns Rank1(i) if val is true, Rank0(i) otherwise. This is the
// form the wavelet tree's descent needs: "how many positions before i went
// the way this bit just sent us."
func (rv *BitVectorRank) Rank(val bool, i int) int {
	if val {
		return rv.Rank1(i)
	}
	return rv.Rank0(i)
}

// TotalOnes returns rank1(Len()), the total number of set bits.
func (rv *BitVectorRank) TotalOnes() int {
	return rv.totalOnes
}
