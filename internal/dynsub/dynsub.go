// Package dynsub implements self-modifying byte substitution boxes: each
// byte position in a block carries its own 256-entry table that mutates
// after every use, driven by a bitgen.Source. Four variants are
// provided, crossing two axes: single- vs double-random swap choice, and
// single- vs double-dereference output (see the Type constants below and
// fwdXfrm/invXfrm for the exact xfrm each performs).
package dynsub

import (
	"fmt"

	xsg "github.com/mariano-perez-rodriguez/yggdrasill"
	"github.com/mariano-perez-rodriguez/yggdrasill/bitgen"
	"github.com/mariano-perez-rodriguez/yggdrasill/internal/randutil"
)

// Type selects which of the four substitution variants a Block builds
// its per-position subs as, crossing two axes: how many random draws
// pick the swap target (single vs double, XORed together), and whether
// the output is a single or double table lookup.
type Type int

const (
	// SRSD: single random draw, single dereference (fwd[c]).
	SRSD Type = iota
	// SRDD: single random draw, double dereference (fwd[fwd[c]]).
	SRDD
	// DRSD: double random draw (XOR of two draws), single dereference.
	DRSD
	// DRDD: double random draw, double dereference.
	DRDD
)

// sub is one self-modifying substitution instance: a forward table fwd
// and its inverse inv, always kept consistent (inv[fwd[c]] == c for all
// c), plus the bitgen.Source driving its swaps and the variant
// determining how swaps are chosen and applied.
type sub struct {
	typ Type
	gen bitgen.Source
	fwd [256]byte
	inv [256]byte
}

func newSub(typ Type, gen bitgen.Source) *sub {
	s := &sub{typ: typ, gen: gen}
	perm := randutil.GenerateAndShuffle(gen, 256, 2)
	for i, p := range perm {
		s.fwd[i] = byte(p)
		s.inv[byte(p)] = byte(i)
	}
	return s
}

// swapEntries exchanges the entries of tbl at positions i and j, then
// fixes up other's pointers for those two positions so that
// other[tbl[i]] == i and other[tbl[j]] == j continue to hold (tbl and
// other are a fwd/inv pair, in either order).
func swapEntries(tbl, other *[256]byte, i, j byte) {
	tbl[i], tbl[j] = tbl[j], tbl[i]
	other[tbl[i]] = i
	other[tbl[j]] = j
}

// singleRandom draws one uniform byte in [0, 256).
func (s *sub) singleRandom() byte {
	return byte(randutil.Rand(s.gen, 256))
}

// doubleRandom draws two uniform bytes and XORs the second, looked up
// through the forward table, into the first:
// rand_range(256) ^ fwd[rand_range(256)].
func (s *sub) doubleRandom() byte {
	r1 := byte(randutil.Rand(s.gen, 256))
	r2 := byte(randutil.Rand(s.gen, 256))
	return r1 ^ s.fwd[r2]
}

// fwdXfrm substitutes c through the forward table (once for the SD
// variants, twice for the DD variants), then mutates fwd/inv per
// variant, and returns the substituted byte.
func (s *sub) fwdXfrm(c byte) byte {
	switch s.typ {
	case SRSD:
		result := s.fwd[c]
		r := s.singleRandom()
		swapEntries(&s.fwd, &s.inv, c, r)
		return result
	case SRDD:
		inner := s.fwd[c]
		result := s.fwd[inner]
		r := s.singleRandom()
		swapEntries(&s.fwd, &s.inv, inner, r)
		return result
	case DRSD:
		result := s.fwd[c]
		r := s.doubleRandom()
		swapEntries(&s.fwd, &s.inv, c, r)
		return result
	case DRDD:
		inner := s.fwd[c]
		result := s.fwd[inner]
		r := s.doubleRandom()
		swapEntries(&s.fwd, &s.inv, inner, r)
		return result
	}
	panic("dynsub: invalid variant")
}

// invXfrm substitutes c through the inverse table (once for the SD
// variants, twice for the DD variants), then replays the exact swap a
// forward instance fed from the same draws performed on its own fwd
// copy, so that a decrypting sub stays the mirror of the encrypting
// one byte after byte. The swap pivot is the forward side's swap index:
// the recovered plaintext for the SD variants, the intermediate
// dereference for the DD ones.
func (s *sub) invXfrm(c byte) byte {
	switch s.typ {
	case SRSD:
		result := s.inv[c]
		r := s.singleRandom()
		swapEntries(&s.fwd, &s.inv, result, r)
		return result
	case SRDD:
		inner := s.inv[c]
		result := s.inv[inner]
		r := s.singleRandom()
		swapEntries(&s.fwd, &s.inv, inner, r)
		return result
	case DRSD:
		result := s.inv[c]
		r := s.doubleRandom()
		swapEntries(&s.fwd, &s.inv, result, r)
		return result
	case DRDD:
		inner := s.inv[c]
		result := s.inv[inner]
		r := s.doubleRandom()
		swapEntries(&s.fwd, &s.inv, inner, r)
		return result
	}
	panic("dynsub: invalid variant")
}

// Block is a byte-block substitution transform: one independently
// mutating sub per byte position, all sharing the same variant.
type Block struct {
	typ  Type
	subs []*sub
}

// NewBlock builds a Block of the given width, one sub per position, each
// driven by its own entry of gens (used as passed, not cloned), so the
// positions mutate independently when the entries are distinct sources. gens must have at least width entries; only the first
// width are used.
func NewBlock(typ Type, gens []bitgen.Source, width int) *Block {
	b := &Block{typ: typ, subs: make([]*sub, width)}
	for i := 0; i < width; i++ {
		b.subs[i] = newSub(typ, gens[i])
	}
	return b
}

// Forward substitutes block in place through each position's forward
// table. block must have exactly as many bytes as the Block's width, or
// ErrWidthMismatch is returned.
func (b *Block) Forward(block []byte) error {
	if len(block) != len(b.subs) {
		return fmt.Errorf("%w: dynsub block wants %d bytes, got %d", xsg.ErrWidthMismatch, len(b.subs), len(block))
	}
	for i, c := range block {
		block[i] = b.subs[i].fwdXfrm(c)
	}
	return nil
}

// Inverse substitutes block in place through each position's inverse
// table. block must have exactly as many bytes as the Block's width, or
// ErrWidthMismatch is returned.
func (b *Block) Inverse(block []byte) error {
	if len(block) != len(b.subs) {
		return fmt.Errorf("%w: dynsub block wants %d bytes, got %d", xsg.ErrWidthMismatch, len(b.subs), len(block))
	}
	for i, c := range block {
		block[i] = b.subs[i].invXfrm(c)
	}
	return nil
}
