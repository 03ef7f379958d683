package xsg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEliasOmegaCode_Zero(t *testing.T) {
	assert.Empty(t, eliasOmegaCode(0))
}

func TestEliasOmegaCode_One(t *testing.T) {
	// n=1: just the trailing terminator bit, since the main loop never
	// runs for n=1.
	assert.Equal(t, []bool{false}, eliasOmegaCode(1))
}

func TestEliasOmegaCode_Two(t *testing.T) {
	// canonical Elias-omega code for 2 is "100".
	assert.Equal(t, []bool{true, false, false}, eliasOmegaCode(2))
}

func TestEliasOmegaCode_PrefixFree(t *testing.T) {
	// no code for n in [1, 64) may be a prefix of the code for any other
	// m in the same range: decoding would otherwise be ambiguous.
	codes := make(map[uint64][]bool, 64)
	for n := uint64(1); n < 64; n++ {
		codes[n] = eliasOmegaCode(n)
	}
	for n, cn := range codes {
		for m, cm := range codes {
			if n == m {
				continue
			}
			if len(cn) <= len(cm) {
				assert.False(t, boolPrefix(cn, cm), "code(%d)=%v is a prefix of code(%d)=%v", n, cn, m, cm)
			}
		}
	}
}

func boolPrefix(prefix, full []bool) bool {
	if len(prefix) > len(full) {
		return false
	}
	for i, b := range prefix {
		if full[i] != b {
			return false
		}
	}
	return true
}

func TestEliasOmegaCode_DeterministicAcrossCalls(t *testing.T) {
	for n := uint64(0); n < 256; n++ {
		assert.Equal(t, eliasOmegaCode(n), eliasOmegaCode(n))
	}
}

func TestMaj3(t *testing.T) {
	cases := []struct {
		x, y, z bool
		want    bool
	}{
		{false, false, false, false},
		{true, false, false, false},
		{true, true, false, true},
		{true, true, true, true},
		{false, true, true, true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, maj3(c.x, c.y, c.z))
	}
}

func TestBoolVectorToHex_Empty(t *testing.T) {
	assert.Equal(t, "", boolVectorToHex(nil))
}

func TestBoolVectorToHex_SingleNibble(t *testing.T) {
	// bits popped latest-first: 1,0,1,1 -> nibble 0b1011 = 0xb.
	bits := []bool{true, false, true, true}
	assert.Equal(t, "b", boolVectorToHex(bits))
}

func TestBoolVectorToHex_PartialLeadingNibble(t *testing.T) {
	// 5 bits: the earliest nibble only has 1 bit of input (the earliest
	// bit), forming the high nibble of a 2-digit result.
	bits := []bool{true, false, false, false, false}
	// latest 4 bits (false*4) -> nibble 0; remaining earliest bit (true)
	// -> nibble 0b1 = 1. Earliest-nibble-first: "10".
	assert.Equal(t, "10", boolVectorToHex(bits))
}
