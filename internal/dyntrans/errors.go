package dyntrans

import "errors"

// ErrInvalidWidth is returned by New and NewInv when w is not a positive
// multiple of 8, or exceeds MaxWidth.
var ErrInvalidWidth = errors.New("dyntrans: width out of range")
