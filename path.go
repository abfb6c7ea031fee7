package tess

import "iter"

// Segment is one drawing command of a sub-path. It implicitly starts at the
// end of the previous segment, or at the sub-path start for the first one.
// The variants are LineTo and CubicTo.
type Segment interface {
	// End returns the point the segment finishes at.
	End() Point
	isSegment()
}

// LineTo is a straight segment to Point.
type LineTo struct {
	Point Point
}

// End returns the end point of the line.
func (s LineTo) End() Point { return s.Point }

func (LineTo) isSegment() {}

// CubicTo is a cubic Bezier segment through two control points to Point.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

// End returns the end point of the curve.
func (s CubicTo) End() Point { return s.Point }

func (CubicTo) isSegment() {}

// Curve returns the curve of the segment when it starts at from.
func (s CubicTo) Curve(from Point) CubicBez {
	return CubicBez{P0: from, P1: s.Control1, P2: s.Control2, P3: s.Point}
}

// SubPath is one contiguous contour of a Path: a start point followed by at
// least one segment. A closed sub-path implies a straight edge from its last
// point back to Start.
type SubPath struct {
	start    Point
	segments []Segment
	closed   bool
}

// Start returns the point the sub-path begins at.
func (s SubPath) Start() Point { return s.start }

// End returns the end point of the last segment.
func (s SubPath) End() Point {
	if len(s.segments) == 0 {
		return s.start
	}
	return s.segments[len(s.segments)-1].End()
}

// Closed reports whether the sub-path connects back to its start.
func (s SubPath) Closed() bool { return s.closed }

// Len returns the number of segments.
func (s SubPath) Len() int { return len(s.segments) }

// Segment returns the i-th segment.
func (s SubPath) Segment(i int) Segment { return s.segments[i] }

// Segments returns an iterator over the segments in order.
func (s SubPath) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for _, seg := range s.segments {
			if !yield(seg) {
				return
			}
		}
	}
}

// Flatten returns the polyline of the sub-path: the start point followed by
// the end point of every line after curves are flattened within tolerance.
// The closing edge of a closed sub-path is not repeated.
func (s SubPath) Flatten(tolerance float64) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		if !yield(s.start) {
			return
		}
		current := s.start
		for _, seg := range s.segments {
			switch seg := seg.(type) {
			case LineTo:
				if !yield(seg.Point) {
					return
				}
			case CubicTo:
				for l := range seg.Curve(current).Flatten(tolerance) {
					if !yield(l.P1) {
						return
					}
				}
			}
			current = seg.End()
		}
	}
}

// bounds returns the exact bounding box of the sub-path.
func (s SubPath) bounds() Rect {
	r := NewRect(s.start, s.start)
	current := s.start
	for _, seg := range s.segments {
		switch seg := seg.(type) {
		case LineTo:
			r = r.Union(NewRect(seg.Point, seg.Point))
		case CubicTo:
			r = r.Union(seg.Curve(current).BoundingBox())
		}
		current = seg.End()
	}
	return r
}

// Path is an immutable ordered list of sub-paths, produced by PathBuilder.
// A Path may be shared between goroutines; nothing mutates it after
// construction. A nil *Path is an empty path.
type Path struct {
	subPaths []SubPath
}

// Len returns the number of sub-paths.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.subPaths)
}

// IsEmpty reports whether the path has no sub-paths.
func (p *Path) IsEmpty() bool {
	return p.Len() == 0
}

// SubPath returns the i-th sub-path.
func (p *Path) SubPath(i int) SubPath {
	return p.subPaths[i]
}

// SubPaths returns an iterator over the sub-paths in order.
func (p *Path) SubPaths() iter.Seq[SubPath] {
	return func(yield func(SubPath) bool) {
		if p == nil {
			return
		}
		for _, sp := range p.subPaths {
			if !yield(sp) {
				return
			}
		}
	}
}

// Bounds returns the tight bounding box of the path.
// The zero Rect is returned for an empty path.
func (p *Path) Bounds() Rect {
	if p.IsEmpty() {
		return Rect{}
	}
	r := p.subPaths[0].bounds()
	for _, sp := range p.subPaths[1:] {
		r = r.Union(sp.bounds())
	}
	return r
}

// Transform returns a new path with every point mapped through m.
func (p *Path) Transform(m Matrix) *Path {
	result := &Path{subPaths: make([]SubPath, 0, p.Len())}
	for sp := range p.SubPaths() {
		out := SubPath{
			start:    m.TransformPoint(sp.start),
			segments: make([]Segment, len(sp.segments)),
			closed:   sp.closed,
		}
		for i, seg := range sp.segments {
			switch seg := seg.(type) {
			case LineTo:
				out.segments[i] = LineTo{Point: m.TransformPoint(seg.Point)}
			case CubicTo:
				out.segments[i] = CubicTo{
					Control1: m.TransformPoint(seg.Control1),
					Control2: m.TransformPoint(seg.Control2),
					Point:    m.TransformPoint(seg.Point),
				}
			}
		}
		result.subPaths = append(result.subPaths, out)
	}
	return result
}
