// Package rng implements the two generator cores behind the random engine:
// a fast, statistically sound PCG32 generator and a ChaCha20-based
// cryptographically secure generator with automatic entropy reseeding.
//
// Sources are not safe for concurrent use. The engine package owns one
// mutex per generator instance and holds it for the full duration of each
// logical operation.
package rng

// Source is the primitive capability contract shared by both generator
// cores. Every derived distribution and geometric sampler is expressed in
// terms of these five operations.
type Source interface {
	// Seed resets the generator from a 64-bit seed. A zero seed selects a
	// clock- or entropy-based seed depending on the implementation.
	Seed(seed uint64)

	// Uint32 returns the next raw 32-bit draw.
	Uint32() uint32

	// Float32 returns a uniform value in [0, 1).
	Float32() float32

	// Bounded returns a uniform value in [0, bound). A bound of zero
	// returns zero.
	Bounded(bound uint32) uint32

	// Read fills buf with random bytes.
	Read(buf []byte)
}

var (
	_ Source = (*PCG32)(nil)
	_ Source = (*ChaCha20)(nil)
)

// fillBytes fills buf from successive draws, four little-endian bytes per
// draw, discarding the unused tail of the final word.
func fillBytes(next func() uint32, buf []byte) {
	for i := 0; i < len(buf); i += 4 {
		v := next()
		for j := 0; j < 4 && i+j < len(buf); j++ {
			buf[i+j] = byte(v >> (8 * j))
		}
	}
}
