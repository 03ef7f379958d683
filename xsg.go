package xsg

import (
	"fmt"

	"github.com/mariano-perez-rodriguez/yggdrasill/bitgen"
)

// XSG is a cross-stepped generator: a master Lfsr of odd prime length M,
// four slave Lfsrs of distinct prime lengths S0 < S1 < S2 < S3, and 36
// Icgs arranged so that, for every ordered pair of distinct slaves
// (owner, target), three Icgs (low/mid/high) index into the owner
// slave's state to help decide the target slave's additional step
// count. XSG satisfies both the bit-generator and hasher capabilities
// (see package bitgen).
type XSG struct {
	master *Lfsr
	slave  [4]*Lfsr

	// icg[owner][target][pos] is nil when owner == target. pos: 0=low,
	// 1=mid, 2=high.
	icg [4][4][3]*Icg

	includeMaster bool
}

const (
	posLow = iota
	posMid
	posHigh
)

// IcgSet holds the 9 Icgs that some other slave uses to index into one
// particular slave's state, keyed by target slave and position.
type IcgSet struct {
	// Icgs[target][pos], target in {0,1,2,3}\{owner}, pos in {low,mid,high}.
	Icgs map[int][3]*Icg
}

// NewXSG constructs an XSG from its master/slave Lfsrs and 36 Icgs. icgs
// must have exactly 4 entries (one per owner slave index 0..3), each
// mapping the other three target slave indices to the low/mid/high
// Icgs that, when stepping the target slave, index into the owner's own
// state. Each such Icg's modulus must equal the *owner* slave's length.
// Master length must be odd.
func NewXSG(master *Lfsr, includeMaster bool, slaves [4]*Lfsr, icgs [4]IcgSet) (*XSG, error) {
	if master.Len()%2 == 0 {
		return nil, fmt.Errorf("%w: lfsr<%d>", ErrInvalidMasterLength, master.Len())
	}
	g := &XSG{master: master, slave: slaves, includeMaster: includeMaster}
	for owner := 0; owner < 4; owner++ {
		for target := 0; target < 4; target++ {
			if target == owner {
				continue
			}
			set, ok := icgs[owner].Icgs[target]
			if !ok {
				return nil, fmt.Errorf("%w: no icgs for owner %d, target %d", ErrModulusMismatch, owner, target)
			}
			wantLen := uint64(g.slave[owner].Len())
			for _, ic := range set {
				if ic.Modulus() != wantLen {
					return nil, fmt.Errorf("%w: owner %d wants %d, got %d", ErrModulusMismatch, owner, wantLen, ic.Modulus())
				}
			}
			g.icg[owner][target] = set
		}
	}
	return g, nil
}

// Clone returns an independent deep copy of g.
func (g *XSG) Clone() *XSG {
	c := &XSG{master: g.master.Clone(), includeMaster: g.includeMaster}
	for i := 0; i < 4; i++ {
		c.slave[i] = g.slave[i].Clone()
	}
	for owner := 0; owner < 4; owner++ {
		for target := 0; target < 4; target++ {
			if owner == target {
				continue
			}
			for p := 0; p < 3; p++ {
				if ic := g.icg[owner][target][p]; ic != nil {
					c.icg[owner][target][p] = ic.Clone()
				}
			}
		}
	}
	return c
}

// Get returns the current output bit: the XOR of all four slaves' bit 0,
// plus the master's bit 0 if includeMaster is set.
func (g *XSG) Get() bool {
	out := g.slave[0].Get(0) != g.slave[1].Get(0)
	out = out != g.slave[2].Get(0)
	out = out != g.slave[3].Get(0)
	if g.includeMaster {
		out = out != g.master.Get(0)
	}
	return out
}

// Step performs exactly one XSG tick, XORing val into the chosen slave.
func (g *XSG) Step(val bool) *XSG {
	sel := 0
	if g.master.Next(false) {
		sel |= 1
	}
	if g.master.Next(false) {
		sel |= 2
	}
	g.stepSlave(sel, val)
	if g.includeMaster {
		g.master.Step(false)
	}
	return g
}

// stepSlave steps slave i once (XORing val in) then computes and applies
// the additional step count derived from majority votes across the
// other three slaves.
func (g *XSG) stepSlave(i int, val bool) {
	g.slave[i].Step(val)

	others := [3]int{}
	k := 0
	for j := 0; j < 4; j++ {
		if j != i {
			others[k] = j
			k++
		}
	}

	bit := func(owner, pos int) bool {
		idx := g.icg[owner][i][pos].Next()
		return g.slave[owner].Get(int(idx))
	}

	as := 0
	if maj3(bit(others[0], posHigh), bit(others[1], posHigh), bit(others[2], posHigh)) {
		as += 4
	}
	if maj3(bit(others[0], posMid), bit(others[1], posMid), bit(others[2], posMid)) {
		as += 2
	}
	if maj3(bit(others[0], posLow), bit(others[1], posLow), bit(others[2], posLow)) {
		as += 1
	}
	for n := 0; n < as; n++ {
		g.slave[i].Step(false)
	}
}

// Next steps the XSG, XORing val in, and returns the new output bit.
func (g *XSG) Next(val bool) bool {
	return g.Step(val).Get()
}

// NextBit implements bitgen.Source: it advances the generator with no
// injected value and returns the new output bit.
func (g *XSG) NextBit() bool {
	return g.Next(false)
}

// CloneSource implements bitgen.Source's CloneSource, boxing a deep copy
// of g.
func (g *XSG) CloneSource() bitgen.Source {
	return g.Clone()
}

var _ bitgen.Source = (*XSG)(nil)

// Blend steps every slave (additionalRounds+1)*len(slave) times, and
// does likewise for the master if includeMaster or im is set. This
// ensures any just-injected bit has diffused through the full width of
// every register touched.
func (g *XSG) Blend(additionalRounds int, im bool) *XSG {
	if g.includeMaster || im {
		for n := 0; n < (additionalRounds+1)*g.master.Len(); n++ {
			g.master.Step(false)
		}
	}
	for i := 0; i < 4; i++ {
		for n := 0; n < (additionalRounds+1)*g.slave[i].Len(); n++ {
			g.slave[i].Step(false)
		}
	}
	return g
}

func feedBits(g *XSG, bits []bool) {
	for _, b := range bits {
		g.Step(b)
	}
}

func feedBytes(g *XSG, data []byte) {
	for _, c := range data {
		for i := 0; i < 8; i++ {
			g.Step((c>>(7-i))&1 == 1)
		}
	}
}

// Inject deterministically mixes key into the generator: feed key
// MSB-first, blend, feed the Elias-omega code of len(key), blend, feed
// key MSB-first again, then blend with additionalRounds extra rounds.
// All blending forces master inclusion.
func (g *XSG) Inject(key []byte, additionalRounds int) *XSG {
	feedBytes(g, key)
	g.Blend(1, true)
	feedBits(g, eliasOmegaCode(uint64(len(key))))
	g.Blend(1, true)
	feedBytes(g, key)
	g.Blend(additionalRounds, true)
	return g
}

// Hash is hashAdd(s).hashFinal(w).
func (g *XSG) Hash(s []byte, w int) string {
	return g.HashAdd(s).HashFinal(w)
}

// HashAdd feeds s (MSB-first per byte) into an ongoing hashing
// operation.
func (g *XSG) HashAdd(s []byte) *XSG {
	feedBytes(g, s)
	return g
}

// HashPartial returns the hash for the elements fed so far, without
// mutating g: it finalizes a clone instead.
func (g *XSG) HashPartial(w int) string {
	return g.Clone().HashFinal(w)
}

// HashFinal finalizes the hashing operation and returns the resulting
// hex string, mutating g.
func (g *XSG) HashFinal(w int) string {
	g.Blend(1, false)

	tmp := make([]bool, 0, w)
	for i := 0; i < w; i++ {
		tmp = append(tmp, g.Next(false))
	}

	feedBits(g, eliasOmegaCode(uint64(w)))
	g.Blend(1, false)

	feedBits(g, tmp)
	g.Blend(1, false)
	tmp = tmp[:0]

	for i := 0; i < w; i++ {
		tmp = append(tmp, g.Next(false))
	}

	return boolVectorToHex(tmp)
}
