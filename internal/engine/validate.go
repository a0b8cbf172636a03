package engine

import "math"

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func positive(v float32) bool {
	return v > 0 && finite(v)
}

func nonNegative(v float32) bool {
	return v >= 0 && finite(v)
}
