package tess

import (
	"iter"
	"math"
)

// MaxFlattenDepth bounds the subdivision depth of the curve flattener.
// A curve is split into at most 2^MaxFlattenDepth lines; once the bound is
// reached the remaining pieces are emitted as chords regardless of flatness.
const MaxFlattenDepth = 16

// Rect is an axis-aligned rectangle. Min holds the smaller coordinates.
type Rect struct {
	Min, Max Point
}

// NewRect returns the smallest rectangle containing both points.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Line is a straight segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

// IsDegenerate reports whether both end points coincide.
func (l Line) IsDegenerate() bool {
	return l.P0 == l.P1
}

// QuadBez is a quadratic Bezier curve.
type QuadBez struct {
	P0, P1, P2 Point
}

// Raise returns the exact cubic representation of the quadratic.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		P0: q.P0,
		P1: q.P0.Lerp(q.P1, 2.0/3.0),
		P2: q.P2.Lerp(q.P1, 2.0/3.0),
		P3: q.P2,
	}
}

// CubicBez is a cubic Bezier curve with end points P0, P3 and control
// points P1, P2.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at parameter t in [0, 1].
func (c CubicBez) Eval(t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	d := 3 * mt * t * t
	e := t * t * t
	return Point{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
	}
}

// Subdivide splits the curve at t=0.5 using de Casteljau's algorithm.
// The two halves share the split point exactly.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, 0.5)
	p12 := c.P1.Lerp(c.P2, 0.5)
	p23 := c.P2.Lerp(c.P3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)

	return CubicBez{P0: c.P0, P1: p01, P2: p012, P3: mid},
		CubicBez{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

// IsPoint reports whether all four points coincide.
func (c CubicBez) IsPoint() bool {
	return c.P0 == c.P1 && c.P1 == c.P2 && c.P2 == c.P3
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (c CubicBez) BoundingBox() Rect {
	bbox := NewRect(c.P0, c.P3)

	// The derivative is a quadratic in t per axis.
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	var roots []float64
	roots = unitQuadraticRoots(roots, d0.X-2*d1.X+d2.X, 2*(d1.X-d0.X), d0.X)
	roots = unitQuadraticRoots(roots, d0.Y-2*d1.Y+d2.Y, 2*(d1.Y-d0.Y), d0.Y)
	for _, t := range roots {
		p := c.Eval(t)
		bbox = bbox.Union(NewRect(p, p))
	}
	return bbox
}

// isFlat reports whether the curve deviates from its chord by at most the
// tolerance whose square times 16 is tol16.
func (c CubicBez) isFlat(tol16 float64) bool {
	ux := 3*c.P1.X - 2*c.P0.X - c.P3.X
	uy := 3*c.P1.Y - 2*c.P0.Y - c.P3.Y
	vx := 3*c.P2.X - c.P0.X - 2*c.P3.X
	vy := 3*c.P2.Y - c.P0.Y - 2*c.P3.Y
	return math.Max(ux*ux, vx*vx)+math.Max(uy*uy, vy*vy) <= tol16
}

type flattenItem struct {
	curve CubicBez
	depth int
}

// Flatten returns the lines approximating the curve within tolerance,
// ordered by increasing t. Each line starts where the previous one ended;
// the first starts at P0 and the last ends at P3.
//
// Subdivision is driven by an explicit stack, so the sequence is produced
// lazily and stack growth is bounded by MaxFlattenDepth.
func (c CubicBez) Flatten(tolerance float64) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		tol16 := 16 * tolerance * tolerance
		stack := make([]flattenItem, 1, MaxFlattenDepth+1)
		stack[0] = flattenItem{curve: c}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if top.depth >= MaxFlattenDepth || top.curve.isFlat(tol16) {
				if !yield(Line{P0: top.curve.P0, P1: top.curve.P3}) {
					return
				}
				continue
			}

			first, second := top.curve.Subdivide()
			stack = append(stack,
				flattenItem{curve: second, depth: top.depth + 1},
				flattenItem{curve: first, depth: top.depth + 1},
			)
		}
	}
}

// FlattenCubic flattens the cubic (p0, p1, p2, p3) into a polyline.
// The result starts with p0 and ends with p3.
func FlattenCubic(p0, p1, p2, p3 Point, tolerance float64) []Point {
	points := []Point{p0}
	for l := range (CubicBez{P0: p0, P1: p1, P2: p2, P3: p3}).Flatten(tolerance) {
		points = append(points, l.P1)
	}
	return points
}

// unitQuadraticRoots appends the roots of a*t^2 + b*t + c in the open
// interval (0, 1) to dst.
func unitQuadraticRoots(dst []float64, a, b, c float64) []float64 {
	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return dst
		}
		return appendUnit(dst, -c/b)
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return dst
	}
	sq := math.Sqrt(disc)
	dst = appendUnit(dst, (-b+sq)/(2*a))
	if sq > 0 {
		dst = appendUnit(dst, (-b-sq)/(2*a))
	}
	return dst
}

func appendUnit(dst []float64, t float64) []float64 {
	if t > 0 && t < 1 {
		dst = append(dst, t)
	}
	return dst
}
