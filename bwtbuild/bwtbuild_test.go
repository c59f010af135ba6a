package bwtbuild_test

import (
	"errors"
	"testing"

	"github.com/helixdb/fmindex/alphabet"
	"github.com/helixdb/fmindex/bwtbuild"
	"github.com/helixdb/fmindex/suffixarray"
)

func mustAlphabet(t *testing.T, symbols string) *alphabet.Alphabet {
	t.Helper()
	a, err := alphabet.New([]byte(symbols))
	if err != nil {
		t.Fatalf("alphabet.New(%q): %v", symbols, err)
	}
	return a
}

// T = "acaaba$", Σ = "$abc" ($=0, a=1, b=2, c=3). The suffix array sorts
// to [6, 5, 2, 3, 0, 4, 1], giving BWT = "abca$aa" and C = [0, 1, 5, 6].
func TestBuild_WorkedExample(t *testing.T) {
	text := []byte("acaaba$")
	a := mustAlphabet(t, "$abc")

	sa, err := suffixarray.Build(text)
	if err != nil {
		t.Fatalf("suffixarray.Build: %v", err)
	}

	result, err := bwtbuild.Build(text, a, sa)
	if err != nil {
		t.Fatalf("bwtbuild.Build: %v", err)
	}

	wantBWT := []int{1, 2, 3, 1, 0, 1, 1} // a b c a $ a a
	if len(result.BWT) != len(wantBWT) {
		t.Fatalf("BWT length = %d, want %d", len(result.BWT), len(wantBWT))
	}
	for i := range wantBWT {
		if result.BWT[i] != wantBWT[i] {
			t.Fatalf("BWT[%d] = %d, want %d (full: %v)", i, result.BWT[i], wantBWT[i], result.BWT)
		}
	}

	wantC := []int{0, 1, 5, 6}
	if len(result.C) != len(wantC) {
		t.Fatalf("C length = %d, want %d", len(result.C), len(wantC))
	}
	for i := range wantC {
		if result.C[i] != wantC[i] {
			t.Fatalf("C[%d] = %d, want %d (full: %v)", i, result.C[i], wantC[i], result.C)
		}
	}
}

func TestBuild_CNonDecreasingAndZero(t *testing.T) {
	text := []byte("banana$")
	a := mustAlphabet(t, "$abn")

	sa, err := suffixarray.Build(text)
	if err != nil {
		t.Fatalf("suffixarray.Build: %v", err)
	}
	result, err := bwtbuild.Build(text, a, sa)
	if err != nil {
		t.Fatalf("bwtbuild.Build: %v", err)
	}

	if result.C[0] != 0 {
		t.Fatalf("C[0] = %d, want 0", result.C[0])
	}
	for i := 1; i < len(result.C); i++ {
		if result.C[i] < result.C[i-1] {
			t.Fatalf("C not non-decreasing at %d: %v", i, result.C)
		}
	}
	if result.C[len(result.C)-1] > len(text) {
		t.Fatalf("C's last entry %d exceeds text length %d", result.C[len(result.C)-1], len(text))
	}
}

func TestBuild_UnknownSymbol(t *testing.T) {
	a := mustAlphabet(t, "$ab")
	text := []byte("abz$")

	sa := []int{3, 0, 1, 2} // a well-formed-looking SA; build should fail before using it meaningfully
	if _, err := bwtbuild.Build(text, a, sa); err == nil {
		t.Fatalf("expected an error for text containing a symbol outside the alphabet")
	}
}

func TestBuild_SentinelMisplaced(t *testing.T) {
	a := mustAlphabet(t, "$ab")
	text := []byte("aba$")

	// sa[0] should point at position 3 (the sentinel); point it elsewhere.
	sa := []int{0, 3, 1, 2}
	if _, err := bwtbuild.Build(text, a, sa); err == nil {
		t.Fatalf("expected ErrSentinelMisplaced")
	}
}

// A sentinel inserted mid-text must be rejected even when it still sorts
// sa[0] to n-1, since the "$" it shares with the real end-of-text sentinel
// makes T[-1] = T[n-1] ambiguous. "a$ba$" has '$' at positions 1 and 4; its
// (correctly computed) suffix array is [4, 1, 3, 0, 2], so sa[0] == n-1
// holds, but Build must still fail on the duplicate sentinel.
func TestBuild_SentinelDuplicated(t *testing.T) {
	a := mustAlphabet(t, "$ab")
	text := []byte("a$ba$")
	sa := []int{4, 1, 3, 0, 2}

	if _, err := bwtbuild.Build(text, a, sa); !errors.Is(err, bwtbuild.ErrSentinelMisplaced) {
		t.Fatalf("Build with a mid-text sentinel: got %v, want ErrSentinelMisplaced", err)
	}
}

func TestBuild_LengthMismatch(t *testing.T) {
	a := mustAlphabet(t, "$ab")
	text := []byte("aba$")
	sa := []int{3, 0, 2, 1, 0} // wrong length

	if _, err := bwtbuild.Build(text, a, sa); err == nil {
		t.Fatalf("expected an error for mismatched suffix array length")
	}
}

// Frequencies recovered from C must match a direct scan of the text.
func TestBuild_CMatchesFrequencyScan(t *testing.T) {
	text := []byte("acaaba$")
	a := mustAlphabet(t, "$abc")

	sa, err := suffixarray.Build(text)
	if err != nil {
		t.Fatalf("suffixarray.Build: %v", err)
	}
	result, err := bwtbuild.Build(text, a, sa)
	if err != nil {
		t.Fatalf("bwtbuild.Build: %v", err)
	}

	freq := make([]int, a.Size())
	for _, b := range text {
		idx, err := a.Index(b)
		if err != nil {
			t.Fatalf("unexpected unknown symbol: %v", err)
		}
		freq[idx]++
	}

	for c := 0; c < a.Size()-1; c++ {
		got := result.C[c+1] - result.C[c]
		if got != freq[c] {
			t.Fatalf("C[%d+1]-C[%d] = %d, want frequency %d", c, c, got, freq[c])
		}
	}
	last := a.Size() - 1
	gotLast := len(text) - result.C[last]
	if gotLast != freq[last] {
		t.Fatalf("n-C[last] = %d, want frequency %d", gotLast, freq[last])
	}
}
