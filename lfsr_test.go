package xsg

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLfsr_ZeroStateRemapsToAllOnes(t *testing.T) {
	l, err := NewLfsr(7, big.NewInt(0), big.NewInt(0x48))
	require.NoError(t, err)
	assert.Equal(t, allOnes(7), l.state)
}

func TestNewLfsr_ZeroGeneratorIsInvalid(t *testing.T) {
	_, err := NewLfsr(7, big.NewInt(1), big.NewInt(0))
	require.ErrorIs(t, err, ErrInvalidGenerator)
}

// TestLfsr7Period127: the primitive generator 0x48 over a 7-bit
// register with no XOR input visits all 127 non-zero states before
// repeating.
func TestLfsr7Period127(t *testing.T) {
	l, err := NewLfsr(7, big.NewInt(0x01), big.NewInt(0x48))
	require.NoError(t, err)

	seen := map[string]bool{}
	state0 := new(big.Int).Set(l.state)
	period := 0
	for {
		l.Step(false)
		period++
		if l.state.Cmp(state0) == 0 {
			break
		}
		key := l.state.String()
		require.False(t, seen[key], "state repeated before full period at step %d", period)
		seen[key] = true
		require.NotEqual(t, 0, l.state.Sign(), "lfsr state went to zero at step %d", period)
	}
	assert.Equal(t, 127, period)
}

func TestLfsr_SeedDoesNotRemapZero(t *testing.T) {
	l, err := NewLfsr(7, big.NewInt(1), big.NewInt(0x48))
	require.NoError(t, err)
	l.Seed(big.NewInt(0))
	assert.Equal(t, 0, l.state.Sign())

	// the next step must remap it.
	l.Step(false)
	assert.NotEqual(t, 0, l.state.Sign())
}

func TestLfsr_NeverZeroAcrossManySteps(t *testing.T) {
	l, err := NewLfsr(7, big.NewInt(1), big.NewInt(0x48))
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		l.Step(i%3 == 0)
		require.NotEqual(t, 0, l.state.Sign())
	}
}

func TestLfsr_GetIsBit0AfterStep(t *testing.T) {
	l, err := NewLfsr(7, big.NewInt(0x01), big.NewInt(0x48))
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		want := l.Next(false)
		assert.Equal(t, want, l.Get(0))
	}
}

func TestNewLfsrHex_BigEndianPaddingAndTruncation(t *testing.T) {
	l, err := NewLfsrHex(8, "1", "48")
	require.NoError(t, err)
	assert.True(t, l.state.Cmp(big.NewInt(1)) == 0)

	// a generator string longer than the field width is implicitly
	// truncated to the low N bits by the accumulator.
	l2, err := NewLfsrHex(8, "01", "148")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x48), l2.gen.Uint64())
}

func TestLfsr_Clone_Independent(t *testing.T) {
	l, err := NewLfsr(7, big.NewInt(0x01), big.NewInt(0x48))
	require.NoError(t, err)
	c := l.Clone()
	c.Step(true)
	assert.NotEqual(t, l.state, c.state)
}
