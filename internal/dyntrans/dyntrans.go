// Package dyntrans implements dynamic bit-level block transposition: a
// permutation of up to 8192 bit positions, drawn once from a
// bitgen.Source and held fixed for the lifetime of the transform. Unlike
// dynsub's substitution boxes, the permutation here does not re-mutate
// per use; the "dynamic" in the name refers to it being drawn at
// construction time from a generator rather than fixed at compile time.
package dyntrans

import (
	"fmt"

	xsg "github.com/mariano-perez-rodriguez/yggdrasill"
	"github.com/mariano-perez-rodriguez/yggdrasill/bitgen"
	"github.com/mariano-perez-rodriguez/yggdrasill/internal/randutil"
)

// MaxWidth is the largest bit width a transform may be built for.
const MaxWidth = 8192

// Bits within a block are numbered the way every other consumer of the
// system feeds them: MSB-first within each byte, bytes in order, so bit
// k of the block is bit 7-(k%8) of byte k/8.

func getBit(block []byte, k int) bool {
	return (block[k/8]>>(7-k%8))&1 == 1
}

func setBit(block []byte, k int, v bool) {
	if v {
		block[k/8] |= 1 << (7 - k%8)
	}
}

// transpose applies perm to a w-bit block: output bit i is input bit
// perm[i]. The input must span exactly w bits.
func transpose(perm []int, w int, input []byte) ([]byte, error) {
	if len(input)*8 != w {
		return nil, fmt.Errorf("%w: dyntrans block wants %d bits, got %d", xsg.ErrWidthMismatch, w, len(input)*8)
	}
	out := make([]byte, len(input))
	for i, j := range perm {
		setBit(out, i, getBit(input, j))
	}
	return out, nil
}

// DynTrans transposes a block of w bits according to a permutation drawn
// from a bitgen.Source at construction.
type DynTrans struct {
	w     int
	trans []int
}

// New builds a DynTrans of width w, drawing its permutation from gen. w
// must be a positive multiple of 8 no larger than MaxWidth, so that a
// block of whole bytes spans it exactly.
func New(gen bitgen.Source, w int) (*DynTrans, error) {
	if w < 8 || w > MaxWidth || w%8 != 0 {
		return nil, ErrInvalidWidth
	}
	return &DynTrans{w: w, trans: randutil.GenerateAndShuffle(gen, w, 2)}, nil
}

// Width returns the transform's bit width.
func (t *DynTrans) Width() int { return t.w }

// Xfrm transposes input into a fresh output block: output bit i is input
// bit trans[i]. input must span exactly Width() bits, or
// xsg.ErrWidthMismatch is returned.
func (t *DynTrans) Xfrm(input []byte) ([]byte, error) {
	return transpose(t.trans, t.w, input)
}

// Invert returns the inverse transposition: applying it undoes t.
func (t *DynTrans) Invert() *InvDynTrans {
	return &InvDynTrans{w: t.w, trans: randutil.InvertPermutation(t.trans)}
}

// InvDynTrans is the inverse of a DynTrans: its permutation is the
// inverse of the one the matching DynTrans drew.
type InvDynTrans struct {
	w     int
	trans []int
}

// NewInv builds an InvDynTrans of width w directly from a bitgen.Source:
// given a clone of the same generator stream a matching DynTrans was
// built from, it draws the identical permutation and inverts it, without
// needing a reference to that DynTrans instance.
func NewInv(gen bitgen.Source, w int) (*InvDynTrans, error) {
	if w < 8 || w > MaxWidth || w%8 != 0 {
		return nil, ErrInvalidWidth
	}
	perm := randutil.GenerateAndShuffle(gen, w, 2)
	return &InvDynTrans{w: w, trans: randutil.InvertPermutation(perm)}, nil
}

// Width returns the transform's bit width.
func (t *InvDynTrans) Width() int { return t.w }

// Xfrm transposes input into a fresh output block through the inverse
// permutation. input must span exactly Width() bits, or
// xsg.ErrWidthMismatch is returned.
func (t *InvDynTrans) Xfrm(input []byte) ([]byte, error) {
	return transpose(t.trans, t.w, input)
}
