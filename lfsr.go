package xsg

import (
	"fmt"
	"math/big"
)

// Lfsr is a fixed-width Galois-configuration linear feedback shift
// register. Its width N is fixed at construction time; state and
// generator are masked to N bits after every mutation.
//
// The all-zero state is not reachable in steady state: the constructor
// remaps an all-zero initial state to all-ones, and step remaps any
// state that becomes all-zero back to all-ones. seed does not perform
// this remap — only construction and step do (see the package's design
// notes); a state set via seed to all-zero stays all-zero until the
// next step.
type Lfsr struct {
	n     int
	state *big.Int
	gen   *big.Int
}

var bigOne = big.NewInt(1)

func mask(n int) *big.Int {
	m := new(big.Int).Lsh(bigOne, uint(n))
	return m.Sub(m, bigOne)
}

func allOnes(n int) *big.Int {
	return mask(n)
}

func maskTo(x *big.Int, n int) *big.Int {
	return new(big.Int).And(x, mask(n))
}

// NewLfsr constructs an N-bit Lfsr from an initial state and generator
// polynomial. If state is all-zero it is remapped to all-ones. gen must
// be non-zero (mod 2^N) or ErrInvalidGenerator is returned.
func NewLfsr(n int, state, gen *big.Int) (*Lfsr, error) {
	g := maskTo(gen, n)
	if g.Sign() == 0 {
		return nil, fmt.Errorf("%w: lfsr<%d>", ErrInvalidGenerator, n)
	}
	s := maskTo(state, n)
	if s.Sign() == 0 {
		s = allOnes(n)
	}
	return &Lfsr{n: n, state: s, gen: g}, nil
}

// NewLfsrHex constructs an N-bit Lfsr from big-endian hexadecimal state
// and generator strings, accumulated left-shift-and-OR (so shorter
// strings are implicitly zero-padded on the left and longer ones are
// implicitly truncated to the low N bits).
func NewLfsrHex(n int, stateHex, genHex string) (*Lfsr, error) {
	s, ok := new(big.Int).SetString(stateHex, 16)
	if !ok {
		return nil, fmt.Errorf("xsg: invalid hex state %q", stateHex)
	}
	g, ok := new(big.Int).SetString(genHex, 16)
	if !ok {
		return nil, fmt.Errorf("xsg: invalid hex generator %q", genHex)
	}
	return NewLfsr(n, s, g)
}

// Clone returns an independent deep copy of l.
func (l *Lfsr) Clone() *Lfsr {
	return &Lfsr{n: l.n, state: new(big.Int).Set(l.state), gen: new(big.Int).Set(l.gen)}
}

// Seed replaces the current state with s (mod 2^N), without remapping an
// all-zero result to all-ones.
func (l *Lfsr) Seed(s *big.Int) *Lfsr {
	l.state = maskTo(s, l.n)
	return l
}

// Step advances the register by one tick, XORing val into the incoming
// high bit. If the outgoing low bit was set, the generator polynomial is
// XORed into the shifted state. An all-zero result is remapped to
// all-ones.
func (l *Lfsr) Step(val bool) *Lfsr {
	lsb := l.state.Bit(0) == 1
	l.state.Rsh(l.state, 1)
	if lsb {
		l.state.Xor(l.state, l.gen)
	}
	if val {
		l.state.SetBit(l.state, l.n-1, l.state.Bit(l.n-1)^1)
	}
	l.state = maskTo(l.state, l.n)
	if l.state.Sign() == 0 {
		l.state = allOnes(l.n)
	}
	return l
}

// Get returns bit i of the current state (bit 0 is the output bit).
func (l *Lfsr) Get(i int) bool {
	return l.state.Bit(i) == 1
}

// Next steps the register, XORing val in, and returns the new output bit.
func (l *Lfsr) Next(val bool) bool {
	return l.Step(val).Get(0)
}

// Len returns the register's bit width N.
func (l *Lfsr) Len() int { return l.n }
