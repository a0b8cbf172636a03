package rng

import (
	"math/bits"
	"sync/atomic"
	"time"
)

const (
	chachaRounds = 20

	// DefaultReseedBytes is the output volume after which the secure
	// generator folds fresh OS entropy into its key material. Earlier
	// revisions reseeded every 32 MiB; 1 GiB is the current default and
	// the threshold remains a constructor tunable.
	DefaultReseedBytes = 1 << 30
)

// chachaSigma holds the "expand 32-byte k" constant words.
var chachaSigma = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}

// bootTime anchors the monotonic clock reading used by fallback seeding.
var bootTime = time.Now()

// ChaCha20 is the cryptographically secure generator core: the 20-round
// ChaCha block function run in counter mode over a 16-word state laid out
// as 4 constant words, 8 key words, a 64-bit little-endian block counter
// in words 12-13 and a 64-bit nonce in words 14-15.
//
// Key and nonce words are derived from the caller's seed through a
// seed-expansion step that iterates the cipher itself, so the seed bits
// never become key material directly. The counter increments exactly once
// per generated block and never repeats under a given key, which is what
// keeps keystream blocks from ever being reused.
type ChaCha20 struct {
	state   [16]uint32
	block   [16]uint32
	pos     int
	counter uint64

	emitted     uint64
	reseedBytes uint64
	reseeds     atomic.Uint64

	// entropy is swappable so tests can exercise the entropy-unavailable
	// reseed path.
	entropy func() uint64
}

// NewChaCha20 returns a generator seeded with seed. A zero seed pulls OS
// entropy, falling back to clock mixing when the OS provides none. A zero
// reseedBytes selects DefaultReseedBytes.
func NewChaCha20(seed uint64, reseedBytes uint64) *ChaCha20 {
	if reseedBytes == 0 {
		reseedBytes = DefaultReseedBytes
	}
	c := &ChaCha20{reseedBytes: reseedBytes, entropy: OSEntropy}
	c.rekey(seed)
	return c
}

// Seed rekeys the generator from seed. Counter, block cursor and byte
// accounting all reset; the previous key material is zeroed. A zero seed
// is replaced the same way as at construction.
func (c *ChaCha20) Seed(seed uint64) {
	c.rekey(seed)
}

func (c *ChaCha20) rekey(seed uint64) {
	var salt uint64
	if seed == 0 {
		seed, salt = c.fallbackSeed()
	}

	var expanded [10]uint32
	expandSeed(seed, salt, expanded[:])

	clear(c.state[:])
	clear(c.block[:])
	copy(c.state[:4], chachaSigma[:])
	copy(c.state[4:12], expanded[:8])
	c.state[14] = expanded[8]
	c.state[15] = expanded[9]
	clear(expanded[:])

	c.counter = 0
	c.emitted = 0
	c.pos = len(c.block)
}

// fallbackSeed produces a seed when the caller supplied none: OS entropy
// when available, otherwise a mix of the wall and monotonic clocks. The
// salt feeds extra clock bits into seed expansion so that two entropy-less
// default constructions still diverge.
func (c *ChaCha20) fallbackSeed() (seed, salt uint64) {
	salt = uint64(time.Now().UnixNano())
	if e := c.entropy(); e != 0 {
		return e, salt
	}
	mono := uint64(time.Since(bootTime).Nanoseconds())
	return salt ^ mono<<21 ^ mono>>11, salt
}

// expandSeed derives 8 key words and 2 nonce words from a 64-bit seed by
// running the block function over a throwaway state built from the seed
// and salt. Guessing the seed therefore does not trivially reveal the
// cipher key. A zero salt keeps the expansion deterministic, which is what
// explicit reseeding uses; default seeding passes clock bits as salt.
func expandSeed(seed, salt uint64, out []uint32) {
	var tmp, blk [16]uint32
	copy(tmp[:4], chachaSigma[:])
	tmp[4] = uint32(seed)
	tmp[5] = uint32(seed >> 32)
	tmp[6] = uint32(seed) ^ 0x5A5A5A5A
	tmp[7] = uint32(seed>>32) ^ 0xA5A5A5A5
	tmp[8] = uint32(salt)
	tmp[9] = uint32(salt >> 32)
	tmp[10] = uint32(salt ^ seed)
	tmp[11] = uint32((salt >> 32) ^ (seed >> 32))

	generated := 0
	for generated < len(out) {
		chachaBlock(&tmp, &blk)
		generated += copy(out[generated:], blk[:])
		tmp[12]++
		if tmp[12] == 0 {
			tmp[13]++
		}
	}

	clear(tmp[:])
	clear(blk[:])
}

// quarterRound applies the four add-rotate-xor steps to one column or
// diagonal group, with the standard 16/12/8/7 rotations.
func quarterRound(s *[16]uint32, a, b, c, d int) {
	s[a] += s[b]
	s[d] ^= s[a]
	s[d] = bits.RotateLeft32(s[d], 16)
	s[c] += s[d]
	s[b] ^= s[c]
	s[b] = bits.RotateLeft32(s[b], 12)
	s[a] += s[b]
	s[d] ^= s[a]
	s[d] = bits.RotateLeft32(s[d], 8)
	s[c] += s[d]
	s[b] ^= s[c]
	s[b] = bits.RotateLeft32(s[b], 7)
}

// chachaBlock runs 10 double rounds (4 column groups then 4 diagonal
// groups each) over a copy of state and adds the pre-round state back into
// the result. The feed-forward add is what makes the block one-way.
func chachaBlock(state, out *[16]uint32) {
	*out = *state
	for i := 0; i < chachaRounds; i += 2 {
		quarterRound(out, 0, 4, 8, 12)
		quarterRound(out, 1, 5, 9, 13)
		quarterRound(out, 2, 6, 10, 14)
		quarterRound(out, 3, 7, 11, 15)

		quarterRound(out, 0, 5, 10, 15)
		quarterRound(out, 1, 6, 11, 12)
		quarterRound(out, 2, 7, 8, 13)
		quarterRound(out, 3, 4, 9, 14)
	}
	for i := range out {
		out[i] += state[i]
	}
}

// generate produces the next keystream block and advances the counter.
func (c *ChaCha20) generate() {
	chachaBlock(&c.state, &c.block)
	c.counter++
	c.state[12] = uint32(c.counter)
	c.state[13] = uint32(c.counter >> 32)
	c.emitted += 64
	c.pos = 0
}

// checkReseed folds fresh OS entropy into the key material once the output
// volume crosses the reseed threshold. When no entropy is available the
// rekey is skipped and the byte accounting is deliberately preserved, so
// the very next draw retries instead of pretending the reseed happened.
func (c *ChaCha20) checkReseed() {
	if c.emitted < c.reseedBytes {
		return
	}
	fresh := c.entropy()
	if fresh == 0 {
		return
	}
	current := uint64(c.state[4])<<32 | uint64(c.state[5])
	c.rekey(current ^ fresh)
	c.reseeds.Add(1)
}

// Reseeds reports how many automatic entropy reseeds have happened. It is
// safe to read concurrently with draws; telemetry polls it.
func (c *ChaCha20) Reseeds() uint64 {
	return c.reseeds.Load()
}

// Uint32 returns the next keystream word, regenerating the block when the
// cursor reaches the end.
func (c *ChaCha20) Uint32() uint32 {
	c.checkReseed()
	if c.pos >= len(c.block) {
		c.generate()
	}
	v := c.block[c.pos]
	c.pos++
	return v
}

// Float32 returns a uniform value in [0, 1). The low 8 bits of the draw
// are dropped first: 24 bits is what a float32 mantissa can represent
// exactly, so the conversion is deliberately coarser than PCG32's.
func (c *ChaCha20) Float32() float32 {
	return float32(c.Uint32()>>8) / (1 << 24)
}

// Bounded returns a uniform value in [0, bound).
func (c *ChaCha20) Bounded(bound uint32) uint32 {
	return lemire(c.Uint32, bound)
}

// Read fills buf with random bytes.
func (c *ChaCha20) Read(buf []byte) {
	fillBytes(c.Uint32, buf)
}

// Close zeroes all cipher state. The generator must not be used after.
func (c *ChaCha20) Close() {
	clear(c.state[:])
	clear(c.block[:])
	c.pos = 0
	c.counter = 0
	c.emitted = 0
}
