package engine

import "errors"

// Sentinel errors returned by engine operations. Invalid parameters are
// detected before any draw, so a failed operation never mutates generator
// state.
var (
	// ErrInvalidRadius indicates a non-positive or non-finite radius.
	ErrInvalidRadius = errors.New("radius must be positive and finite")

	// ErrInvalidRing indicates ring radii violating 0 <= inner < outer.
	ErrInvalidRing = errors.New("ring radii must satisfy 0 <= inner < outer")

	// ErrInvalidBounds indicates a NaN or infinite rectangle or box bound.
	ErrInvalidBounds = errors.New("bounds must be finite")

	// ErrDegenerateTriangle indicates a triangle with effectively no area.
	ErrDegenerateTriangle = errors.New("triangle has no area")

	// ErrDegeneratePolygon indicates a polygon whose fan triangles sum to
	// no area.
	ErrDegeneratePolygon = errors.New("polygon has no area")

	// ErrPolygonVertices indicates a vertex count outside [3, 128].
	ErrPolygonVertices = errors.New("polygon must have 3 to 128 vertices")

	// ErrInvalidArc indicates an arc with no angular extent.
	ErrInvalidArc = errors.New("arc has no angular extent")

	// ErrInvalidSize indicates a byte, token or format size outside (0, 65536].
	ErrInvalidSize = errors.New("size must be between 1 and 65536")

	// ErrMissingSwap indicates a shuffle without a swap function.
	ErrMissingSwap = errors.New("shuffle requires a swap function")

	// ErrTooMany indicates a shuffle over more elements than supported.
	ErrTooMany = errors.New("too many elements to shuffle")

	// ErrSamplingExhausted indicates a rejection-sampling loop that hit
	// its retry budget without an acceptable candidate.
	ErrSamplingExhausted = errors.New("rejection sampling exhausted its retry budget")
)
