package engine

import (
	"math"

	"github.com/louisbranch/randomix/internal/rng"
)

// Point2 is a point in the plane.
type Point2 struct {
	X, Y float32
}

// Point3 is a point in space.
type Point3 struct {
	X, Y, Z float32
}

const (
	twoPi = 2 * math.Pi

	// maxPolygonVertices caps polygon size so fan-triangle areas fit a
	// fixed stack array with no per-call allocation.
	maxPolygonVertices = 128

	// maxSampleAttempts bounds every rejection loop; exhausting it is a
	// defined failure rather than an unbounded spin.
	maxSampleAttempts = 10000

	degenerateArea = 1e-10
)

// PointInCircle returns a uniform point inside the circle. The radius
// fraction takes a square root: without that correction samples would
// cluster toward the center instead of spreading by area.
func (e *Engine) PointInCircle(t Tier, center Point2, radius float32) (Point2, error) {
	if !positive(radius) {
		return Point2{}, ErrInvalidRadius
	}
	var angle, r float64
	e.atomically(t, "point_in_circle", func(src rng.Source) {
		angle = float64(src.Float32()) * twoPi
		r = float64(radius) * math.Sqrt(float64(src.Float32()))
	})
	return Point2{
		X: center.X + float32(r*math.Cos(angle)),
		Y: center.Y + float32(r*math.Sin(angle)),
	}, nil
}

// PointOnCircle returns a uniform point on the circle's boundary. Only an
// angle is drawn; all boundary points share the same radius, so no radial
// correction applies.
func (e *Engine) PointOnCircle(t Tier, center Point2, radius float32) (Point2, error) {
	if !positive(radius) {
		return Point2{}, ErrInvalidRadius
	}
	var angle float64
	e.atomically(t, "point_on_circle", func(src rng.Source) {
		angle = float64(src.Float32()) * twoPi
	})
	return Point2{
		X: center.X + radius*float32(math.Cos(angle)),
		Y: center.Y + radius*float32(math.Sin(angle)),
	}, nil
}

// PointInRect returns a uniform point inside the axis-aligned rectangle
// spanned by min and max. Inverted bounds are swapped per axis.
func (e *Engine) PointInRect(t Tier, min, max Point2) (Point2, error) {
	if min.X > max.X {
		min.X, max.X = max.X, min.X
	}
	if min.Y > max.Y {
		min.Y, max.Y = max.Y, min.Y
	}
	if !finite(min.X) || !finite(max.X) || !finite(min.Y) || !finite(max.Y) {
		return Point2{}, ErrInvalidBounds
	}
	var fx, fy float32
	e.atomically(t, "point_in_rect", func(src rng.Source) {
		fx = src.Float32()
		fy = src.Float32()
	})
	return Point2{
		X: min.X + fx*(max.X-min.X),
		Y: min.Y + fy*(max.Y-min.Y),
	}, nil
}

// PointInRing returns a uniform point inside the annulus between inner and
// outer radii. The radius interpolates uniformly between the squared radii
// before the square root, which keeps density uniform by area across the
// ring's width.
func (e *Engine) PointInRing(t Tier, center Point2, inner, outer float32) (Point2, error) {
	if !nonNegative(inner) || !positive(outer) || inner >= outer {
		return Point2{}, ErrInvalidRing
	}
	innerSq := float64(inner) * float64(inner)
	outerSq := float64(outer) * float64(outer)
	var angle, r float64
	e.atomically(t, "point_in_ring", func(src rng.Source) {
		angle = float64(src.Float32()) * twoPi
		r = math.Sqrt(innerSq + float64(src.Float32())*(outerSq-innerSq))
	})
	return Point2{
		X: center.X + float32(r*math.Cos(angle)),
		Y: center.Y + float32(r*math.Sin(angle)),
	}, nil
}

// PointInEllipse returns a uniform point inside the axis-aligned ellipse:
// the disc method with the radius fraction scaled independently per axis.
func (e *Engine) PointInEllipse(t Tier, center Point2, radiusX, radiusY float32) (Point2, error) {
	if !positive(radiusX) || !positive(radiusY) {
		return Point2{}, ErrInvalidRadius
	}
	var angle, r float64
	e.atomically(t, "point_in_ellipse", func(src rng.Source) {
		angle = float64(src.Float32()) * twoPi
		r = math.Sqrt(float64(src.Float32()))
	})
	return Point2{
		X: center.X + radiusX*float32(r*math.Cos(angle)),
		Y: center.Y + radiusY*float32(r*math.Sin(angle)),
	}, nil
}

// PointInTriangle returns a uniform point inside the triangle abc via
// barycentric sampling: two fractions drawn in [0,1) are folded back into
// the valid simplex when their sum exceeds one, and the third coordinate
// is whatever remains. Degenerate triangles are rejected.
func (e *Engine) PointInTriangle(t Tier, a, b, c Point2) (Point2, error) {
	area2 := math.Abs(float64(b.X-a.X)*float64(c.Y-a.Y) - float64(c.X-a.X)*float64(b.Y-a.Y))
	if area2 < degenerateArea {
		return Point2{}, ErrDegenerateTriangle
	}
	var r1, r2 float32
	e.atomically(t, "point_in_triangle", func(src rng.Source) {
		r1 = src.Float32()
		r2 = src.Float32()
	})
	return barycentric(a, b, c, r1, r2), nil
}

// barycentric combines the three vertices with weights (r1, r2, 1-r1-r2),
// reflecting out-of-simplex samples back inside first.
func barycentric(a, b, c Point2, r1, r2 float32) Point2 {
	if r1+r2 > 1 {
		r1 = 1 - r1
		r2 = 1 - r2
	}
	r3 := 1 - r1 - r2
	return Point2{
		X: r1*a.X + r2*b.X + r3*c.X,
		Y: r1*a.Y + r2*b.Y + r3*c.Y,
	}
}

// PointInArc returns a uniform point inside the circular sector between
// startAngle and endAngle (radians, counterclockwise). Angles normalize
// into [0, 2pi); a start past the end wraps through zero. Equal angles
// describe an empty sector and are rejected.
func (e *Engine) PointInArc(t Tier, center Point2, radius, startAngle, endAngle float32) (Point2, error) {
	if !positive(radius) {
		return Point2{}, ErrInvalidRadius
	}
	if !finite(startAngle) || !finite(endAngle) {
		return Point2{}, ErrInvalidArc
	}
	start := normalizeAngle(float64(startAngle))
	end := normalizeAngle(float64(endAngle))

	var extent float64
	if end >= start {
		extent = end - start
	} else {
		extent = (twoPi - start) + end
	}
	if extent <= 0 {
		return Point2{}, ErrInvalidArc
	}

	var angle, r float64
	e.atomically(t, "point_in_arc", func(src rng.Source) {
		angle = start + float64(src.Float32())*extent
		r = float64(radius) * math.Sqrt(float64(src.Float32()))
	})
	if angle >= twoPi {
		angle -= twoPi
	}
	return Point2{
		X: center.X + float32(r*math.Cos(angle)),
		Y: center.Y + float32(r*math.Sin(angle)),
	}, nil
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}

// PointInPolygon returns a uniform point inside a simple polygon of 3 to
// 128 vertices. The polygon is fan-triangulated from vertex 0 and a
// triangle is selected with probability proportional to its area before
// barycentric sampling inside it. Area weighting is what keeps density
// uniform when the fan triangles differ in size, as they do for any
// non-regular polygon.
func (e *Engine) PointInPolygon(t Tier, vertices []Point2) (Point2, error) {
	if len(vertices) < 3 || len(vertices) > maxPolygonVertices {
		return Point2{}, ErrPolygonVertices
	}

	// Stack-only storage for the fan areas.
	var areas [maxPolygonVertices - 2]float64
	total := 0.0
	n := len(vertices) - 2
	v0 := vertices[0]
	for i := 0; i < n; i++ {
		v1 := vertices[i+1]
		v2 := vertices[i+2]
		area := math.Abs(float64(v1.X-v0.X)*float64(v2.Y-v0.Y)-
			float64(v2.X-v0.X)*float64(v1.Y-v0.Y)) / 2
		areas[i] = area
		total += area
	}
	if total <= 0 {
		return Point2{}, ErrDegeneratePolygon
	}

	var selected int
	var r1, r2 float32
	e.atomically(t, "point_in_polygon", func(src rng.Source) {
		draw := float64(src.Float32()) * total
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += areas[i]
			if draw < sum {
				selected = i
				break
			}
		}
		r1 = src.Float32()
		r2 = src.Float32()
	})
	return barycentric(v0, vertices[selected+1], vertices[selected+2], r1, r2), nil
}
