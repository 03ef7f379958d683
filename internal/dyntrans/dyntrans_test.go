package dyntrans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xsg "github.com/mariano-perez-rodriguez/yggdrasill"
	"github.com/mariano-perez-rodriguez/yggdrasill/bitgen"
)

type lcgSource struct {
	state uint64
}

func newLCG(seed uint64) *lcgSource {
	return &lcgSource{state: seed | 1}
}

func (s *lcgSource) NextBit() bool {
	s.state = s.state*6364136223846793005 + 1442695040888963407
	return s.state>>63 == 1
}

func (s *lcgSource) CloneSource() bitgen.Source {
	c := *s
	return &c
}

var _ bitgen.Source = (*lcgSource)(nil)

func TestNew_RejectsOutOfRangeWidths(t *testing.T) {
	_, err := New(newLCG(1), 0)
	require.ErrorIs(t, err, ErrInvalidWidth)

	_, err = New(newLCG(1), MaxWidth+8)
	require.ErrorIs(t, err, ErrInvalidWidth)

	// widths that don't span whole bytes are rejected too.
	_, err = New(newLCG(1), 12)
	require.ErrorIs(t, err, ErrInvalidWidth)
}

func TestDynTrans_InvertRoundTrips(t *testing.T) {
	const w = 64
	tr, err := New(newLCG(7), w)
	require.NoError(t, err)
	inv := tr.Invert()

	input := []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x80, 0x55, 0xaa}
	transposed, err := tr.Xfrm(input)
	require.NoError(t, err)

	recovered, err := inv.Xfrm(transposed)
	require.NoError(t, err)
	assert.Equal(t, input, recovered)
}

func TestDynTrans_PreservesPopulationCount(t *testing.T) {
	const w = 64
	tr, err := New(newLCG(5), w)
	require.NoError(t, err)

	input := []byte{0xff, 0x00, 0xf0, 0x0f, 0x01, 0x02, 0x04, 0x08}
	out, err := tr.Xfrm(input)
	require.NoError(t, err)

	count := func(bs []byte) int {
		n := 0
		for _, b := range bs {
			for i := 0; i < 8; i++ {
				if (b>>i)&1 == 1 {
					n++
				}
			}
		}
		return n
	}
	assert.Equal(t, count(input), count(out))
}

func TestDynTrans_IsAPermutationOfPositions(t *testing.T) {
	const w = 104
	tr, err := New(newLCG(3), w)
	require.NoError(t, err)
	seen := make([]bool, w)
	for _, j := range tr.trans {
		require.False(t, seen[j])
		seen[j] = true
	}
}

func TestDynTrans_Width(t *testing.T) {
	tr, err := New(newLCG(3), 16)
	require.NoError(t, err)
	assert.Equal(t, 16, tr.Width())
	assert.Equal(t, 16, tr.Invert().Width())
}

func TestXfrm_RejectsWrongBlockLength(t *testing.T) {
	tr, err := New(newLCG(3), 64)
	require.NoError(t, err)

	_, err = tr.Xfrm([]byte{1, 2, 3})
	require.ErrorIs(t, err, xsg.ErrWidthMismatch)

	_, err = tr.Invert().Xfrm([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.ErrorIs(t, err, xsg.ErrWidthMismatch)
}

// TestNewInv_MatchesInvertFromClonedGenerator exercises InvDynTrans's
// independent constructor: built from a clone of the same generator
// stream a DynTrans was built from, it must draw the identical
// permutation and invert it, recovering the same transform as calling
// Invert() on the original would.
func TestNewInv_MatchesInvertFromClonedGenerator(t *testing.T) {
	const w = 64
	seed := newLCG(11)
	gen1 := seed.CloneSource()
	gen2 := seed.CloneSource()

	tr, err := New(gen1, w)
	require.NoError(t, err)
	inv, err := NewInv(gen2, w)
	require.NoError(t, err)

	input := []byte{0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0}
	transposed, err := tr.Xfrm(input)
	require.NoError(t, err)

	recovered, err := inv.Xfrm(transposed)
	require.NoError(t, err)
	assert.Equal(t, input, recovered)
}

func TestNewInv_RejectsOutOfRangeWidths(t *testing.T) {
	_, err := NewInv(newLCG(1), 0)
	require.ErrorIs(t, err, ErrInvalidWidth)

	_, err = NewInv(newLCG(1), MaxWidth+8)
	require.ErrorIs(t, err, ErrInvalidWidth)
}
