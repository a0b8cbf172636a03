package engine

import (
	"math"

	"github.com/louisbranch/randomix/internal/rng"
)

// PointInSphere returns a uniform point inside the ball of the given
// radius. Direction comes from rejection sampling in the unit cube;
// distance takes a cube root of a uniform draw, the 3D analogue of the
// disc's square-root correction, so density is uniform by volume rather
// than by radius.
func (e *Engine) PointInSphere(t Tier, center Point3, radius float32) (Point3, error) {
	if !positive(radius) {
		return Point3{}, ErrInvalidRadius
	}
	var p Point3
	ok := false
	var rejected int64
	e.atomically(t, "point_in_sphere", func(src rng.Source) {
		for attempts := 0; attempts < maxSampleAttempts; attempts++ {
			x := float64(src.Float32())*2 - 1
			y := float64(src.Float32())*2 - 1
			z := float64(src.Float32())*2 - 1
			sq := x*x + y*y + z*z
			if sq > 1 || sq == 0 {
				rejected++
				continue
			}
			scale := float64(radius) * math.Cbrt(float64(src.Float32())) / math.Sqrt(sq)
			p = Point3{
				X: center.X + float32(x*scale),
				Y: center.Y + float32(y*scale),
				Z: center.Z + float32(z*scale),
			}
			ok = true
			return
		}
	})
	e.metrics.rejected(t, "point_in_sphere", rejected)
	if !ok {
		return Point3{}, ErrSamplingExhausted
	}
	return p, nil
}

// PointOnSphere returns a uniform point on the sphere's surface using
// Marsaglia's method: a point rejected into the open unit disc maps onto
// the sphere with no trigonometry and no polar clustering.
func (e *Engine) PointOnSphere(t Tier, center Point3, radius float32) (Point3, error) {
	if !positive(radius) {
		return Point3{}, ErrInvalidRadius
	}
	var p Point3
	ok := false
	var rejected int64
	e.atomically(t, "point_on_sphere", func(src rng.Source) {
		for attempts := 0; attempts < maxSampleAttempts; attempts++ {
			u := float64(src.Float32())*2 - 1
			v := float64(src.Float32())*2 - 1
			s := u*u + v*v
			if s >= 1 || s == 0 {
				rejected++
				continue
			}
			multiplier := 2 * math.Sqrt(1-s)
			p = Point3{
				X: center.X + radius*float32(u*multiplier),
				Y: center.Y + radius*float32(v*multiplier),
				Z: center.Z + radius*float32(1-2*s),
			}
			ok = true
			return
		}
	})
	e.metrics.rejected(t, "point_on_sphere", rejected)
	if !ok {
		return Point3{}, ErrSamplingExhausted
	}
	return p, nil
}

// PointInBox returns a uniform point inside the axis-aligned box spanned
// by min and max. Inverted bounds are swapped per axis.
func (e *Engine) PointInBox(t Tier, min, max Point3) (Point3, error) {
	if min.X > max.X {
		min.X, max.X = max.X, min.X
	}
	if min.Y > max.Y {
		min.Y, max.Y = max.Y, min.Y
	}
	if min.Z > max.Z {
		min.Z, max.Z = max.Z, min.Z
	}
	if !finite(min.X) || !finite(max.X) || !finite(min.Y) ||
		!finite(max.Y) || !finite(min.Z) || !finite(max.Z) {
		return Point3{}, ErrInvalidBounds
	}
	var fx, fy, fz float32
	e.atomically(t, "point_in_box", func(src rng.Source) {
		fx = src.Float32()
		fy = src.Float32()
		fz = src.Float32()
	})
	return Point3{
		X: min.X + fx*(max.X-min.X),
		Y: min.Y + fy*(max.Y-min.Y),
		Z: min.Z + fz*(max.Z-min.Z),
	}, nil
}
