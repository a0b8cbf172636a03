package engine

import (
	"math"

	"github.com/louisbranch/randomix/internal/rng"
)

// Caps carried over from the plugin era. They bound worst-case lock hold
// times, since every operation completes under its tier's mutex.
const (
	maxWeights      = 65536
	maxShuffle      = 10000000
	maxDiceSides    = 10000
	maxDiceCount    = 10000
	maxBytes        = 65536
	gaussianEpsilon = 1e-10
)

// Range returns a uniform integer in [min, max] inclusive. Inverted
// bounds are swapped; equal bounds return the value itself.
func (e *Engine) Range(t Tier, min, max int32) int32 {
	if min > max {
		min, max = max, min
	}
	if min == max {
		return min
	}
	// The difference is computed in 64 bits: int32 subtraction would
	// overflow on spans wider than half the type's range.
	span := uint32(int64(max) - int64(min))
	var v uint32
	e.atomically(t, "range", func(src rng.Source) {
		if span == math.MaxUint32 {
			v = src.Uint32()
		} else {
			v = src.Bounded(span + 1)
		}
	})
	return min + int32(v)
}

// FloatRange returns a uniform float in [min, max). Inverted bounds are
// swapped; equal bounds return the value itself.
func (e *Engine) FloatRange(t Tier, min, max float32) float32 {
	if min > max {
		min, max = max, min
	}
	if min == max {
		return min
	}
	var f float32
	e.atomically(t, "float_range", func(src rng.Source) {
		f = src.Float32()
	})
	return min + f*(max-min)
}

// Bool returns true with the given probability. Probabilities at or below
// zero always return false, at or above one always return true, and NaN
// returns false.
func (e *Engine) Bool(t Tier, probability float32) bool {
	if probability <= 0 {
		return false
	}
	if probability >= 1 {
		return true
	}
	if !finite(probability) {
		return false
	}
	var f float32
	e.atomically(t, "bool", func(src rng.Source) {
		f = src.Float32()
	})
	return f < probability
}

// WeightedBool returns true with probability trueWeight over the combined
// weights. A non-positive trueWeight is always false, a non-positive
// falseWeight always true. Weights whose sum would overflow are halved
// first, preserving their ratio.
func (e *Engine) WeightedBool(t Tier, trueWeight, falseWeight int32) bool {
	if trueWeight <= 0 {
		return false
	}
	if falseWeight <= 0 {
		return true
	}
	if trueWeight > math.MaxInt32-falseWeight {
		trueWeight /= 2
		falseWeight /= 2
	}
	total := uint32(trueWeight) + uint32(falseWeight)
	var draw uint32
	e.atomically(t, "weighted_bool", func(src rng.Source) {
		draw = src.Bounded(total)
	})
	return draw < uint32(trueWeight)
}

// Weighted returns an index chosen with probability proportional to its
// weight. Non-positive weights are skipped entirely. The result is 0 when
// weights is empty or oversized, when the positive weights sum to zero, or
// when the sum would overflow a uint32. If the cumulative scan somehow
// falls through, the last index holding a positive weight is returned.
func (e *Engine) Weighted(t Tier, weights []int32) int {
	if len(weights) == 0 || len(weights) > maxWeights {
		return 0
	}
	var total uint32
	for _, w := range weights {
		if w <= 0 {
			continue
		}
		if uint32(w) > math.MaxUint32-total {
			return 0
		}
		total += uint32(w)
	}
	if total == 0 {
		return 0
	}

	var draw uint32
	e.atomically(t, "weighted", func(src rng.Source) {
		draw = src.Bounded(total)
	})

	var sum uint32
	lastValid := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		sum += uint32(w)
		if draw < sum {
			return i
		}
		lastValid = i
	}
	return lastValid
}

// Shuffle permutes n elements through swap using a Fisher-Yates walk from
// the last element backward. One element or fewer is a successful no-op.
func (e *Engine) Shuffle(t Tier, n int, swap func(i, j int)) error {
	if n <= 1 {
		return nil
	}
	if swap == nil {
		return ErrMissingSwap
	}
	if n > maxShuffle {
		return ErrTooMany
	}
	e.atomically(t, "shuffle", func(src rng.Source) {
		for i := n - 1; i > 0; i-- {
			j := int(src.Bounded(uint32(i + 1)))
			swap(i, j)
		}
	})
	return nil
}

// ShuffleRange permutes the elements at indexes [lo, hi] inclusive through
// swap. Inverted bounds are swapped; a range of one element or fewer is a
// successful no-op.
func (e *Engine) ShuffleRange(t Tier, lo, hi int, swap func(i, j int)) error {
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi-lo < 1 {
		return nil
	}
	if swap == nil {
		return ErrMissingSwap
	}
	if lo < 0 || hi > maxShuffle {
		return ErrTooMany
	}
	e.atomically(t, "shuffle_range", func(src rng.Source) {
		for i := hi; i > lo; i-- {
			j := lo + int(src.Bounded(uint32(i-lo+1)))
			swap(i, j)
		}
	})
	return nil
}

// Gaussian returns a normal variate via the Box-Muller transform, floored
// at zero. The floor is the product contract, not a statistical accident:
// callers feed the result into quantities that must never go negative, so
// the left tail collapses to zero instead of being redrawn. A non-positive
// or non-finite stddev returns mean unchanged; a non-finite mean returns 0.
func (e *Engine) Gaussian(t Tier, mean, stddev float32) float32 {
	if stddev <= 0 || !finite(stddev) {
		return mean
	}
	if !finite(mean) {
		return 0
	}
	var u1, u2 float64
	e.atomically(t, "gaussian", func(src rng.Source) {
		u1 = float64(src.Float32())
		u2 = float64(src.Float32())
	})
	if u1 < gaussianEpsilon {
		u1 = gaussianEpsilon
	}
	z0 := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	result := float64(mean) + z0*float64(stddev)
	if result < 0 {
		result = 0
	}
	return float32(result)
}

// Dice returns the sum of count rolls of a sides-sided die. Non-positive
// or oversized sides or count return 0.
func (e *Engine) Dice(t Tier, sides, count int) int {
	if sides <= 0 || count <= 0 {
		return 0
	}
	if sides > maxDiceSides || count > maxDiceCount {
		return 0
	}
	var total uint32
	e.atomically(t, "dice", func(src rng.Source) {
		for i := 0; i < count; i++ {
			total += src.Bounded(uint32(sides)) + 1
		}
	})
	return int(total)
}

// Pick returns a uniformly chosen element of xs, or the zero value of T
// when xs is empty.
func Pick[T any](e *Engine, t Tier, xs []T) T {
	var zero T
	if len(xs) == 0 {
		return zero
	}
	return xs[e.Bounded(t, uint32(len(xs)))]
}

// ShuffleSlice shuffles xs in place.
func ShuffleSlice[T any](e *Engine, t Tier, xs []T) error {
	return e.Shuffle(t, len(xs), func(i, j int) {
		xs[i], xs[j] = xs[j], xs[i]
	})
}
