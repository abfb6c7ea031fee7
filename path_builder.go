package tess

import "math"

// BuilderState is the state of a PathBuilder.
type BuilderState int

const (
	// StateIdle accepts Begin and Build.
	StateIdle BuilderState = iota
	// StateSubPathOpen accepts LineTo, CubicTo, QuadTo, End and Build.
	StateSubPathOpen
)

// String returns the state name.
func (s BuilderState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateSubPathOpen:
		return "SubPathOpen"
	default:
		return "Unknown"
	}
}

// kappa is the control point distance for a quarter circle of radius 1.
const kappa = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)

// PathBuilder accumulates sub-paths from begin/line/curve/end commands and
// produces an immutable Path.
//
// Commands issued in the wrong state fail with a *SequenceError and leave
// the builder unchanged. Degenerate input (zero-length segments, sub-paths
// without segments) is dropped silently.
//
// A PathBuilder must not be used from several goroutines at once.
type PathBuilder struct {
	subPaths []SubPath
	open     bool
	start    Point
	current  Point
	segments []Segment
}

// NewPathBuilder returns an empty builder in StateIdle.
func NewPathBuilder() *PathBuilder {
	return &PathBuilder{}
}

// State returns the current builder state.
func (b *PathBuilder) State() BuilderState {
	if b.open {
		return StateSubPathOpen
	}
	return StateIdle
}

// Current returns the pen position: the end of the last command.
func (b *PathBuilder) Current() Point {
	return b.current
}

// Begin starts a new sub-path at (x, y).
func (b *PathBuilder) Begin(x, y float64) error {
	if b.open {
		return &SequenceError{Op: "Begin", State: StateSubPathOpen}
	}
	b.begin(Pt(x, y))
	return nil
}

// LineTo appends a straight segment from the pen position to (x, y).
func (b *PathBuilder) LineTo(x, y float64) error {
	if !b.open {
		return &SequenceError{Op: "LineTo", State: StateIdle}
	}
	b.lineTo(Pt(x, y))
	return nil
}

// CubicTo appends a cubic Bezier segment from the pen position through the
// control points (x1, y1) and (x2, y2) to (x3, y3).
func (b *PathBuilder) CubicTo(x1, y1, x2, y2, x3, y3 float64) error {
	if !b.open {
		return &SequenceError{Op: "CubicTo", State: StateIdle}
	}
	b.cubicTo(Pt(x1, y1), Pt(x2, y2), Pt(x3, y3))
	return nil
}

// QuadTo appends a quadratic Bezier segment through the control point
// (cx, cy) to (x, y). It is stored as the equivalent cubic.
func (b *PathBuilder) QuadTo(cx, cy, x, y float64) error {
	if !b.open {
		return &SequenceError{Op: "QuadTo", State: StateIdle}
	}
	c := QuadBez{P0: b.current, P1: Pt(cx, cy), P2: Pt(x, y)}.Raise()
	b.cubicTo(c.P1, c.P2, c.P3)
	return nil
}

// End finishes the open sub-path. When closeIt is true the sub-path is
// marked closed, implying a straight edge back to its start point.
// A sub-path without segments is discarded.
func (b *PathBuilder) End(closeIt bool) error {
	if !b.open {
		return &SequenceError{Op: "End", State: StateIdle}
	}
	b.end(closeIt)
	return nil
}

// Close is End(true).
func (b *PathBuilder) Close() error {
	if !b.open {
		return &SequenceError{Op: "Close", State: StateIdle}
	}
	b.end(true)
	return nil
}

// Build returns the accumulated sub-paths as a Path and resets the builder
// so it can be reused for an unrelated path.
//
// A sub-path still open at this point is ended as if End(false) had been
// called: it is kept as an open contour.
func (b *PathBuilder) Build() *Path {
	if b.open {
		Logger().Debug("tess: Build ended a dangling sub-path", "segments", len(b.segments))
		b.end(false)
	}
	p := &Path{subPaths: b.subPaths}
	b.subPaths = nil
	b.start, b.current = Point{}, Point{}
	return p
}

// Snapshot returns a Path of everything accumulated so far, including an
// open sub-path as an open contour, without changing the builder.
func (b *PathBuilder) Snapshot() *Path {
	subPaths := make([]SubPath, len(b.subPaths), len(b.subPaths)+1)
	copy(subPaths, b.subPaths)
	if b.open && len(b.segments) > 0 {
		segments := make([]Segment, len(b.segments))
		copy(segments, b.segments)
		subPaths = append(subPaths, SubPath{start: b.start, segments: segments})
	}
	return &Path{subPaths: subPaths}
}

// Reset discards all accumulated sub-paths and any open sub-path.
func (b *PathBuilder) Reset() {
	*b = PathBuilder{}
}

func (b *PathBuilder) begin(p Point) {
	b.open = true
	b.start = p
	b.current = p
	b.segments = nil
}

func (b *PathBuilder) lineTo(p Point) {
	if (Line{P0: b.current, P1: p}).IsDegenerate() {
		return
	}
	b.segments = append(b.segments, LineTo{Point: p})
	b.current = p
}

func (b *PathBuilder) cubicTo(c1, c2, p Point) {
	if (CubicBez{P0: b.current, P1: c1, P2: c2, P3: p}).IsPoint() {
		return
	}
	b.segments = append(b.segments, CubicTo{Control1: c1, Control2: c2, Point: p})
	b.current = p
}

func (b *PathBuilder) end(closeIt bool) {
	b.open = false
	if len(b.segments) == 0 {
		b.current = b.start
		return
	}
	b.subPaths = append(b.subPaths, SubPath{
		start:    b.start,
		segments: b.segments,
		closed:   closeIt,
	})
	b.segments = nil
	if closeIt {
		b.current = b.start
	}
}

// shape runs a shape helper that adds complete sub-paths. Shapes can only be
// added while no sub-path is open.
func (b *PathBuilder) shape(op string, draw func()) error {
	if b.open {
		return &SequenceError{Op: op, State: StateSubPathOpen}
	}
	draw()
	return nil
}

// AddRect adds a closed rectangle with corner (x, y) and size (w, h).
func (b *PathBuilder) AddRect(x, y, w, h float64) error {
	return b.shape("AddRect", func() {
		b.begin(Pt(x, y))
		b.lineTo(Pt(x+w, y))
		b.lineTo(Pt(x+w, y+h))
		b.lineTo(Pt(x, y+h))
		b.end(true)
	})
}

// AddRoundRect adds a closed rectangle with corners rounded by radius r.
// The radius is clamped to half the smaller side.
func (b *PathBuilder) AddRoundRect(x, y, w, h, r float64) error {
	return b.shape("AddRoundRect", func() {
		r = max(0, min(r, min(w, h)/2))
		k := kappa * r

		b.begin(Pt(x+r, y))
		b.lineTo(Pt(x+w-r, y))
		b.cubicTo(Pt(x+w-r+k, y), Pt(x+w, y+r-k), Pt(x+w, y+r))
		b.lineTo(Pt(x+w, y+h-r))
		b.cubicTo(Pt(x+w, y+h-r+k), Pt(x+w-r+k, y+h), Pt(x+w-r, y+h))
		b.lineTo(Pt(x+r, y+h))
		b.cubicTo(Pt(x+r-k, y+h), Pt(x, y+h-r+k), Pt(x, y+h-r))
		b.lineTo(Pt(x, y+r))
		b.cubicTo(Pt(x, y+r-k), Pt(x+r-k, y), Pt(x+r, y))
		b.end(true)
	})
}

// AddCircle adds a closed circle made of four cubic arcs.
func (b *PathBuilder) AddCircle(cx, cy, r float64) error {
	return b.AddEllipse(cx, cy, r, r)
}

// AddEllipse adds a closed axis-aligned ellipse made of four cubic arcs.
func (b *PathBuilder) AddEllipse(cx, cy, rx, ry float64) error {
	return b.shape("AddEllipse", func() {
		kx := kappa * rx
		ky := kappa * ry

		b.begin(Pt(cx+rx, cy))
		b.cubicTo(Pt(cx+rx, cy+ky), Pt(cx+kx, cy+ry), Pt(cx, cy+ry))
		b.cubicTo(Pt(cx-kx, cy+ry), Pt(cx-rx, cy+ky), Pt(cx-rx, cy))
		b.cubicTo(Pt(cx-rx, cy-ky), Pt(cx-kx, cy-ry), Pt(cx, cy-ry))
		b.cubicTo(Pt(cx+kx, cy-ry), Pt(cx+rx, cy-ky), Pt(cx+rx, cy))
		b.end(true)
	})
}

// AddPolygon adds a closed regular polygon. Fewer than 3 sides adds nothing.
func (b *PathBuilder) AddPolygon(cx, cy, radius float64, sides int) error {
	return b.shape("AddPolygon", func() {
		if sides < 3 {
			return
		}
		step := 2 * math.Pi / float64(sides)
		for i := range sides {
			sin, cos := math.Sincos(-math.Pi/2 + float64(i)*step)
			p := Pt(cx+radius*cos, cy+radius*sin)
			if i == 0 {
				b.begin(p)
			} else {
				b.lineTo(p)
			}
		}
		b.end(true)
	})
}

// AddStar adds a closed star alternating between the outer and inner radius.
// The outline self-intersects only when innerRadius exceeds the point where
// neighbouring tips meet. Fewer than 3 points adds nothing.
func (b *PathBuilder) AddStar(cx, cy, outerRadius, innerRadius float64, points int) error {
	return b.shape("AddStar", func() {
		if points < 3 {
			return
		}
		step := math.Pi / float64(points)
		for i := range 2 * points {
			r := outerRadius
			if i%2 == 1 {
				r = innerRadius
			}
			sin, cos := math.Sincos(-math.Pi/2 + float64(i)*step)
			p := Pt(cx+r*cos, cy+r*sin)
			if i == 0 {
				b.begin(p)
			} else {
				b.lineTo(p)
			}
		}
		b.end(true)
	})
}
