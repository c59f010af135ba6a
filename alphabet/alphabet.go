/*
Package alphabet provides the ordered, duplicate-free byte alphabet that the
fmindex module builds its suffix array, BWT, and wavelet tree over.

Internal code never compares raw bytes directly once an Alphabet has been
built from them; every symbol is looked up once at build time and from then
on only its index into Σ is used, per the "opaque byte-sized token" contract
the indexing core assumes.
*/
package alphabet

import (
	"errors"
	"fmt"
)

// ErrInvalidAlphabet is returned when an alphabet fails validation at
// construction time: fewer than two symbols, a duplicate symbol, or a
// sentinel that is missing or not ordered first.
var ErrInvalidAlphabet = errors.New("invalid alphabet")

// ErrUnknownSymbol is returned when a byte outside the alphabet is
// encountered while encoding text or a query pattern.
var ErrUnknownSymbol = errors.New("unknown symbol")

// Alphabet is an ordered, duplicate-free sequence of byte tokens Σ together
// with the bidirectional token<->index mapping derived from that order.
// The token at index 0 is the sentinel and must sort before every other
// token in the alphabet.
type Alphabet struct {
	symbols []byte
	index   map[byte]int
}

// New builds an Alphabet from symbols. symbols[0] is taken to be the
// sentinel token and must be strictly less than every other symbol.
// New fails with ErrInvalidAlphabet if len(symbols) < 2, if symbols
// contains a duplicate, or if the sentinel is not the smallest token.
func New(symbols []byte) (*Alphabet, error) {
	if len(symbols) < 2 {
		return nil, fmt.Errorf("%w: alphabet must have at least 2 symbols, got %d", ErrInvalidAlphabet, len(symbols))
	}

	index := make(map[byte]int, len(symbols))
	for i, s := range symbols {
		if _, dup := index[s]; dup {
			return nil, fmt.Errorf("%w: duplicate symbol %q", ErrInvalidAlphabet, s)
		}
		index[s] = i
	}

	sentinel := symbols[0]
	for i := 1; i < len(symbols); i++ {
		if symbols[i] <= sentinel {
			return nil, fmt.Errorf("%w: sentinel %q must sort strictly before every other symbol, but %q does not", ErrInvalidAlphabet, sentinel, symbols[i])
		}
	}

	return &Alphabet{
		symbols: append([]byte(nil), symbols...),
		index:   index,
	}, nil
}

// Size returns σ, the number of symbols in the alphabet.
func (a *Alphabet) Size() int {
	return len(a.symbols)
}

// Sentinel returns the sentinel token, always index 0.
func (a *Alphabet) Sentinel() byte {
	return a.symbols[0]
}

// Index returns the alphabet index of a token, or ErrUnknownSymbol if the
// token is not a member of the alphabet.
func (a *Alphabet) Index(token byte) (int, error) {
	i, ok := a.index[token]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, token)
	}
	return i, nil
}

// Symbol returns the token at the given alphabet index. The caller must
// ensure 0 <= index < Size(); Symbol panics otherwise.
func (a *Alphabet) Symbol(index int) byte {
	return a.symbols[index]
}

// EncodeAll maps every byte of text to its alphabet index, failing fast
// with ErrUnknownSymbol (wrapping the offending position) on the first byte
// outside Σ.
func (a *Alphabet) EncodeAll(text []byte) ([]int, error) {
	encoded := make([]int, len(text))
	for i, b := range text {
		idx, err := a.Index(b)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		encoded[i] = idx
	}
	return encoded, nil
}
