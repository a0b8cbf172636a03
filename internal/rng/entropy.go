package rng

import (
	crand "crypto/rand"
	"encoding/binary"
)

// OSEntropy reads a 64-bit value from the operating system's secure random
// facility. It returns 0 when no entropy could be read; callers must treat
// a zero result as "no entropy available" and fall back to time-based
// seeding rather than assume the read succeeded.
func OSEntropy() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b[:])
}
