// Package bitgen declares the narrow capability that block transforms
// and random utilities consume: a source of single output bits that can
// be deep-cloned into an independent stream. It exists as its own
// package so that internal/randutil, internal/dynsub and
// internal/dyntrans depend only on this interface rather than on the
// root xsg package, avoiding an import cycle and matching the
// capability decomposition the source's abstract BitGenerator base
// class models.
package bitgen

// Source produces a single bit at a time and can be deep-cloned into an
// independent stream. *xsg.XSG satisfies this interface structurally.
type Source interface {
	// NextBit advances the source by one tick and returns the new
	// output bit.
	NextBit() bool

	// CloneSource returns an independent deep copy of the source:
	// mutating the clone never affects the original, and vice versa.
	CloneSource() Source
}
