package rng

// lemire maps raw 32-bit draws onto [0, bound) without modulo bias, using
// Lemire's multiply-shift technique. The draw is widened and multiplied by
// bound; the high 32 bits of the product are the candidate. A candidate is
// biased only when the low 32 bits fall below 2^32 mod bound, computed as
// (-bound) mod bound in uint32 arithmetic so 2^32 itself never appears; in
// that case the draw is repeated.
//
// Both generator cores delegate here. Keeping a single implementation is
// deliberate: a plain draw%bound skews small values whenever 2^32 is not a
// multiple of bound, and the skew is invisible to casual inspection.
func lemire(next func() uint32, bound uint32) uint32 {
	if bound == 0 {
		return 0
	}
	m := uint64(next()) * uint64(bound)
	leftover := uint32(m)
	if leftover < bound {
		threshold := -bound % bound
		for leftover < threshold {
			m = uint64(next()) * uint64(bound)
			leftover = uint32(m)
		}
	}
	return uint32(m >> 32)
}
