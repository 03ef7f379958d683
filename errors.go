package xsg

import "errors"

// Sentinel errors surfaced at construction time. None of these can arise
// once an Lfsr, Icg or XSG has been built successfully; step/next/hash_add
// are infallible by construction.
var (
	// ErrInvalidGenerator is returned when an Lfsr is constructed with an
	// all-zero generator polynomial.
	ErrInvalidGenerator = errors.New("xsg: invalid generator polynomial")

	// ErrInvalidOffset is returned when an Icg's offset reduces to zero
	// modulo its modulus.
	ErrInvalidOffset = errors.New("xsg: invalid icg offset")

	// ErrInvalidMasterLength is returned when an XSG's master Lfsr length
	// is not odd.
	ErrInvalidMasterLength = errors.New("xsg: master lfsr length must be odd")

	// ErrModulusMismatch is returned when an Icg's modulus does not match
	// the slave Lfsr it is meant to index into.
	ErrModulusMismatch = errors.New("xsg: icg modulus does not match slave length")

	// ErrWidthMismatch is returned when a block transform receives a byte
	// vector whose length does not match its configured width.
	ErrWidthMismatch = errors.New("xsg: block width mismatch")
)
