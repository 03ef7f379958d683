// Package randutil provides rejection-sampled range reduction and
// Fisher-Yates permutation utilities driven by a bitgen.Source, shared
// by key distillation and the dynamic substitution/transposition block
// transforms.
package randutil

import "github.com/mariano-perez-rodriguez/yggdrasill/bitgen"

// Rand draws a uniform value in [0, n) from gen using minimum-bit-length
// rejection sampling: l = ceil(log2(n)) bits are read MSB-first and
// the draw is repeated until it is strictly less than n. Rand(gen, 0)
// returns 0.
func Rand(gen bitgen.Source, n uint64) uint64 {
	return RandRange(gen, 0, n)
}

// RandRange draws a uniform value in [min, max) from gen.
func RandRange(gen bitgen.Source, min, max uint64) uint64 {
	d := max - min
	if d == 0 {
		return min
	}
	l := 0
	for m := d - 1; m > 0; m >>= 1 {
		l++
	}
	for {
		var v uint64
		for i := 0; i < l; i++ {
			v <<= 1
			if gen.NextBit() {
				v |= 1
			}
		}
		if v < d {
			return min + v
		}
	}
}

// GeneratePermutation builds a permutation of [0, length) using the
// inside-out Fisher-Yates construction: for i in [0, length), j =
// RandRange(gen, 0, i+1); if j != i, p[i] = p[j]; p[j] = i. The
// inside-out fill overwrites every slot, so the zero pre-fill only
// gives the writes defined targets.
func GeneratePermutation(gen bitgen.Source, length int) []int {
	p := make([]int, length)
	for i := 0; i < length; i++ {
		j := int(RandRange(gen, 0, uint64(i+1)))
		if j != i {
			p[i] = p[j]
		}
		p[j] = i
	}
	return p
}

// ShufflePermutation shuffles p in place using the standard Fisher-Yates
// algorithm.
func ShufflePermutation(gen bitgen.Source, p []int) {
	n := len(p)
	for i := 0; i < n-1; i++ {
		j := int(RandRange(gen, 0, uint64(n-i)))
		p[i], p[i+j] = p[i+j], p[i]
	}
}

// GenerateAndShuffle builds a permutation of [0, length) then applies
// rep additional rounds of in-place shuffling (rep defaults to 2 at call
// sites that don't need a different value).
func GenerateAndShuffle(gen bitgen.Source, length, rep int) []int {
	p := GeneratePermutation(gen, length)
	for i := 0; i < rep; i++ {
		ShufflePermutation(gen, p)
	}
	return p
}

// InvertPermutation returns inv such that inv[fwd[i]] = i for all i.
func InvertPermutation(fwd []int) []int {
	inv := make([]int, len(fwd))
	for i, v := range fwd {
		inv[v] = i
	}
	return inv
}
