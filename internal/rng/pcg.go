package rng

import (
	"math/bits"
	"time"
)

const (
	pcgMultiplier uint64 = 6364136223846793005
	pcgIncrement  uint64 = 1442695040888963407<<1 | 1
)

// PCG32 is the fast, non-cryptographic generator core: a 64-bit linear
// congruential step followed by an xorshift-rotate output permutation
// (O'Neill's PCG-XSH-RR variant). It has excellent statistical quality but
// offers no unpredictability guarantee; callers needing that use ChaCha20.
type PCG32 struct {
	state uint64
}

// NewPCG32 returns a generator seeded with seed. A zero seed falls back to
// the current wall clock.
func NewPCG32(seed uint64) *PCG32 {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	p := &PCG32{}
	p.Seed(seed)
	return p
}

// Seed resets the generator state. The state is advanced once before and
// once after mixing in the seed, so weak seeds, zero included, do not land
// on a degenerate short cycle.
func (p *PCG32) Seed(seed uint64) {
	p.state = 0
	p.Uint32()
	p.state += seed
	p.Uint32()
}

// Uint32 advances the LCG and permutes the pre-advance state into 32
// output bits. The rotation amount comes from the state's own top 5 bits.
func (p *PCG32) Uint32() uint32 {
	old := p.state
	p.state = old*pcgMultiplier + pcgIncrement
	xorshifted := uint32((old>>18 ^ old) >> 27)
	rot := int(old >> 59)
	return bits.RotateLeft32(xorshifted, -rot)
}

// Float32 returns a uniform value in [0, 1), scaling a full 32-bit draw.
func (p *PCG32) Float32() float32 {
	return float32(p.Uint32()) / (1 << 32)
}

// Bounded returns a uniform value in [0, bound).
func (p *PCG32) Bounded(bound uint32) uint32 {
	return lemire(p.Uint32, bound)
}

// Read fills buf with random bytes.
func (p *PCG32) Read(buf []byte) {
	fillBytes(p.Uint32, buf)
}
