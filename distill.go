package xsg

import (
	"math/big"

	"github.com/mariano-perez-rodriguez/yggdrasill/internal/randutil"
)

// Canonical XSG-512 constants: register lengths, primitive-polynomial
// generators (hex, big-endian), and truncated binary-expansion-of-pi
// seeds (hex, big-endian) for the bootstrap XSG's LFSRs. Changing any
// of these changes every digest, so they are load-bearing down to the
// last nibble.
const (
	lenM  = 521
	lenS0 = 523
	lenS1 = 541
	lenS2 = 547
	lenS3 = 557
)

const (
	hexGen521 = "1986842c7f1620218c78e583637aa0baf82558ef35d875948b22ce317ba47cce076f48541f1a593896ee3f9e3c9541b4d3e65941170c721e4d5c879a51bff933e1f"
	hexGen523 = "6105ba99822ea4b0b57c26d5aa74c6b17f150b4c33147b4bd570e9aa1cbc663291ef6185805aa700b61672751f068eda9a1698c62b3fe4e7b034f3b8d899dfcfd92"
	hexGen541 = "1ec09c4098c55499ac20b3925f4297c214e193d3dae3cea7f18afc422f315b82967b4b0f2c6bb5c4ae568ce242144d568731dbfeeb91d60ba4af6380a7428e7567c7e2df"
	hexGen547 = "64f78024e326cc0d2dff541adc8737fc1843235fdb1feade3971cb90a49a8d2e1327babeaba4323e7481208590446fc35f9b2aa49a3a945b19e0a511148fbca3693f7a62b"
	hexGen557 = "16e4b48a1c95a2964c7e25d6d874610f3c8b062e65c3612a0159ff1db7cc37ca400b419d54f6862d9c9e99cea9c7c631d58c2d4b1fb3898ca473ad780d5cb815897e4c2fdffc"

	hexPi521 = "121fb54442d18469898cc51701b839a252049c1114cf98e804177d4c76273644a29410f31c6809bbdf2a33679a748636605614dbe4be286e9fc26adadaa3848bc90"
	hexPi523 = "5b576625e7ec6f44c42e9a637ed6b0bff5cb6f406b7edee386bfb5a899fa5ae9f24117c4b1fe649286651ece45b3dc2007cb8a163bf0598da48361c55d39a69163f"
	hexPi541 = "151fa499ebf06caba47b9475b2c38c5e6ac410aa5773daa520ee12d2cdace186a9c95793009e2e8d811943042f86520bc8c5c6d9c77c73cee58301d0c07364f0745d80f4"
	hexPi547 = "28fb5c55df06f4c52c9de2bcbf6955817183995497cea956ae515d2261898fa051015728e5a8aaac42dad33170d04507a33a85521abdf1cba64ecfb850458dbef0a8aea71"
	hexPi557 = "0aeba0c18fb672e1f0b4dc3c98f57eb5d19b61267ae3d1929c0944ac33b9dc7a44c35a5dcd7e25ff40db31410c9b0ec04e67d90d4c8a43e56302ef6401977c22eaef4c2bad8e"
)

// Mother multiplier tables: an Icg built from mothers{m}[k] with offset
// 1 attains maximum period mod m.
var (
	mothers523 = [84]uint64{15, 16, 23, 25, 28, 31, 36, 49, 66, 68, 74, 89, 91, 96, 100, 102, 107, 111, 117, 131, 135, 143, 151, 157, 166, 169, 171, 175, 176, 185, 190, 201, 202, 207, 209, 221, 223, 235, 241, 249, 255, 257, 258, 275, 278, 281, 287, 290, 292, 296, 301, 318, 319, 324, 326, 339, 356, 367, 376, 377, 381, 383, 391, 395, 419, 425, 426, 430, 437, 438, 439, 440, 443, 448, 454, 467, 475, 476, 478, 489, 493, 505, 518, 521}
	mothers541 = [66]uint64{18, 24, 37, 62, 65, 67, 68, 73, 83, 91, 96, 98, 117, 127, 152, 153, 181, 197, 206, 208, 218, 220, 224, 248, 261, 263, 267, 280, 283, 284, 291, 293, 297, 318, 321, 328, 335, 344, 358, 365, 383, 385, 388, 403, 409, 410, 413, 415, 427, 428, 434, 443, 445, 458, 468, 473, 474, 476, 479, 486, 490, 511, 523, 527, 528, 531}
	mothers547 = [71]uint64{4, 15, 16, 19, 25, 36, 49, 60, 66, 74, 82, 86, 97, 99, 115, 116, 118, 135, 137, 142, 143, 144, 160, 171, 177, 183, 193, 202, 206, 208, 214, 225, 227, 249, 250, 256, 266, 275, 287, 289, 313, 317, 324, 326, 328, 336, 344, 346, 361, 385, 394, 395, 400, 401, 406, 413, 438, 443, 452, 455, 489, 490, 497, 499, 502, 504, 514, 515, 530, 535, 542}
	mothers557 = [88]uint64{3, 5, 11, 13, 14, 21, 31, 41, 44, 52, 86, 87, 89, 91, 92, 95, 107, 108, 125, 126, 128, 134, 136, 147, 152, 162, 166, 176, 177, 186, 189, 191, 192, 200, 224, 228, 237, 238, 247, 264, 275, 279, 286, 287, 291, 300, 315, 319, 325, 331, 333, 340, 346, 348, 350, 356, 363, 365, 369, 393, 396, 405, 409, 427, 432, 437, 447, 449, 454, 459, 466, 470, 472, 473, 477, 479, 501, 504, 505, 507, 509, 510, 519, 520, 530, 534, 544, 549}
)

// smallPrimesOffsets is the bootstrap's 36 offsets: the i-th small
// prime for i = 0..35, except that the 9th entry is the literal 22
// rather than the prime 23. Changing it would change every digest ever
// produced, so it stays.
var smallPrimesOffsets = [36]uint64{
	2, 3, 5, 7, 11, 13, 17, 19, 22, 31,
	37, 41, 43, 47, 53, 59, 61, 67, 71, 73,
	79, 83, 89, 97, 101, 103, 107, 109, 113, 127,
	131, 137, 139, 149, 151, 157,
}

// icgField indexes one of the 36 (owner, target, position) Icg slots in
// the fixed order the bootstrap and distill routines build them in:
// owner 0's 9 icgs (targets 1,2,3 x low/mid/high), then owner 1's
// (targets 0,2,3), owner 2's (targets 0,1,3), owner 3's (targets
// 0,1,2).
type icgField struct {
	owner, target, pos int
}

var icgOrder = func() [36]icgField {
	var order [36]icgField
	k := 0
	for owner := 0; owner < 4; owner++ {
		for target := 0; target < 4; target++ {
			if target == owner {
				continue
			}
			for pos := 0; pos < 3; pos++ {
				order[k] = icgField{owner, target, pos}
				k++
			}
		}
	}
	return order
}()

func ownerLen(owner int) uint64 {
	switch owner {
	case 0:
		return lenS0
	case 1:
		return lenS1
	case 2:
		return lenS2
	case 3:
		return lenS3
	}
	panic("xsg: invalid owner index")
}

func mothersTable(owner int) []uint64 {
	switch owner {
	case 0:
		return mothers523[:]
	case 1:
		return mothers541[:]
	case 2:
		return mothers547[:]
	case 3:
		return mothers557[:]
	}
	panic("xsg: invalid owner index")
}

// bootstrapXSG builds the canonical bootstrap XSG used to seed key
// distillation: master and slave LFSRs seeded from the truncated binary
// expansion of pi, and 36 Icgs derived from the mother-multiplier
// tables with the deterministic (small-prime-index, small-prime-offset,
// index) seed triples (i, p_i, i) for i = 0..35.
func bootstrapXSG() (*XSG, error) {
	master, err := NewLfsrHex(lenM, hexPi521, hexGen521)
	if err != nil {
		return nil, err
	}
	var slaves [4]*Lfsr
	slaves[0], err = NewLfsrHex(lenS0, hexPi523, hexGen523)
	if err != nil {
		return nil, err
	}
	slaves[1], err = NewLfsrHex(lenS1, hexPi541, hexGen541)
	if err != nil {
		return nil, err
	}
	slaves[2], err = NewLfsrHex(lenS2, hexPi547, hexGen547)
	if err != nil {
		return nil, err
	}
	slaves[3], err = NewLfsrHex(lenS3, hexPi557, hexGen557)
	if err != nil {
		return nil, err
	}

	var icgs [4]IcgSet
	for o := 0; o < 4; o++ {
		icgs[o].Icgs = map[int][3]*Icg{}
	}

	// Build the 36 icgs in order i=0..35, each from mothers{owner}[i]
	// (the *global* index i, not a per-owner-local one: the source
	// indexes mothers541[9..17], mothers547[18..26], mothers557[27..35]
	// directly), offset p_i, initial value i.
	for i, f := range icgOrder {
		table := mothersTable(f.owner)
		ic, err := DeriveFromMother(ownerLen(f.owner), table[i], smallPrimesOffsets[i], uint64(i))
		if err != nil {
			return nil, err
		}
		entry := icgs[f.owner].Icgs[f.target]
		entry[f.pos] = ic
		icgs[f.owner].Icgs[f.target] = entry
	}

	boot, err := NewXSG(master, false, slaves, icgs)
	if err != nil {
		return nil, err
	}
	boot.Blend(4, true)
	return boot, nil
}

// rand draws a uniform value in [0, n) from g, delegating to the same
// rejection-sampling routine internal/dynsub and internal/dyntrans use
// against any bitgen.Source.
func rand(g *XSG, n uint64) uint64 {
	return randutil.Rand(g, n)
}

// Distill constructs the canonical bootstrap XSG from hard-coded
// constants, blends it, and distills key against it.
func Distill(key []byte) (*XSG, error) {
	boot, err := bootstrapXSG()
	if err != nil {
		return nil, err
	}
	return DistillWith(key, boot)
}

// DistillWith injects key into boot and uses it as an entropy source to
// build a fresh production XSG (include_master = false) with freshly
// drawn LFSR states, ICG mother multipliers, offsets and initial values,
// using the canonical generator polynomials.
func DistillWith(key []byte, boot *XSG) (*XSG, error) {
	boot.Inject(key, 4)

	master, err := NewLfsr(lenM, drawBits(boot, lenM), mustHex(hexGen521))
	if err != nil {
		return nil, err
	}
	var slaves [4]*Lfsr
	slaveLens := [4]int{lenS0, lenS1, lenS2, lenS3}
	slaveGens := [4]string{hexGen523, hexGen541, hexGen547, hexGen557}
	for i := 0; i < 4; i++ {
		slaves[i], err = NewLfsr(slaveLens[i], drawBits(boot, slaveLens[i]), mustHex(slaveGens[i]))
		if err != nil {
			return nil, err
		}
	}

	// multipliers, in the fixed 36-entry order.
	mult := [36]uint64{}
	for i, f := range icgOrder {
		table := mothersTable(f.owner)
		mult[i] = table[rand(boot, uint64(len(table)))]
	}

	// offsets: 1 + rand(ownerLen - 1). The sampling bound is the
	// slave's register bit-length, not the prime modulus; the Icg
	// constructor reduces mod m, and narrowing the draw would change
	// every digest.
	off := [36]uint64{}
	for i, f := range icgOrder {
		off[i] = 1 + rand(boot, uint64(ownerLen(f.owner)-1))
	}

	// initial values: rand(modulus).
	ini := [36]uint64{}
	for i, f := range icgOrder {
		ini[i] = rand(boot, ownerLen(f.owner))
	}

	var icgs [4]IcgSet
	for o := 0; o < 4; o++ {
		icgs[o].Icgs = map[int][3]*Icg{}
	}
	for i, f := range icgOrder {
		ic, err := DeriveFromMother(ownerLen(f.owner), mult[i], off[i], ini[i])
		if err != nil {
			return nil, err
		}
		entry := icgs[f.owner].Icgs[f.target]
		entry[f.pos] = ic
		icgs[f.owner].Icgs[f.target] = entry
	}

	prod, err := NewXSG(master, false, slaves, icgs)
	if err != nil {
		return nil, err
	}
	prod.Blend(4, true)
	return prod, nil
}

// drawBits reads n fresh bits from g, placing the i-th bit drawn at bit
// position i of the result (so the first bit drawn becomes the LSB and
// the last becomes the high bit) — matching the source's bitset<N> fill
// order (`m[i] = boot.next()` for i = 0..N-1).
func drawBits(g *XSG, n int) *big.Int {
	acc := new(big.Int)
	for i := 0; i < n; i++ {
		if g.Next(false) {
			acc.SetBit(acc, i, 1)
		}
	}
	return acc
}

// mustHex parses a known-good hexadecimal constant into a *big.Int; it
// panics on malformed input, which can only happen if one of this
// file's literal constants above was mistyped.
func mustHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("xsg: malformed hex constant " + s)
	}
	return v
}
