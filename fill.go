package tess

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/tess/internal/sweep"
)

// FillRule determines which regions of overlapping or nested contours are
// inside the fill.
//
// The winding number of a point counts how many times the contours wind
// around it. A contour that runs counter-clockwise in a y-up frame
// (clockwise on a y-down screen) adds +1.
type FillRule int

const (
	// FillRuleNonZero fills regions with a non-zero winding number.
	FillRuleNonZero FillRule = iota

	// FillRuleEvenOdd fills regions with an odd winding number.
	FillRuleEvenOdd

	// FillRulePositive fills regions with a positive winding number.
	FillRulePositive

	// FillRuleNegative fills regions with a negative winding number.
	FillRuleNegative
)

// String returns the name of the fill rule.
func (r FillRule) String() string {
	switch r {
	case FillRuleNonZero:
		return "NonZero"
	case FillRuleEvenOdd:
		return "EvenOdd"
	case FillRulePositive:
		return "Positive"
	case FillRuleNegative:
		return "Negative"
	default:
		return fmt.Sprintf("FillRule(%d)", int(r))
	}
}

// ParseFillRule returns the fill rule named s, matching String
// case-insensitively.
func ParseFillRule(s string) (FillRule, error) {
	for _, r := range []FillRule{FillRuleNonZero, FillRuleEvenOdd, FillRulePositive, FillRuleNegative} {
		if strings.EqualFold(s, r.String()) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFillRule, s)
}

// Fills reports whether a region with the given winding number is inside.
func (r FillRule) Fills(winding int) bool {
	switch r {
	case FillRuleEvenOdd:
		return winding%2 != 0
	case FillRulePositive:
		return winding > 0
	case FillRuleNegative:
		return winding < 0
	default:
		return winding != 0
	}
}

func (r FillRule) sweep() (sweep.FillRule, bool) {
	switch r {
	case FillRuleNonZero:
		return sweep.NonZero, true
	case FillRuleEvenOdd:
		return sweep.EvenOdd, true
	case FillRulePositive:
		return sweep.Positive, true
	case FillRuleNegative:
		return sweep.Negative, true
	default:
		return 0, false
	}
}

// Vertex is one vertex of a tessellated mesh.
type Vertex struct {
	Position f32.Vec2
}

// VertexBuffers is the output of Tessellate: a vertex buffer and a triangle
// list indexing into it.
//
// Every index is below len(Vertices) and len(Indices) is a multiple of 3.
// Triangles have positive signed area (counter-clockwise in a y-up frame).
type VertexBuffers struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles.
func (b *VertexBuffers) TriangleCount() int {
	return len(b.Indices) / 3
}

// Triangle returns the vertices of the i-th triangle.
func (b *VertexBuffers) Triangle(i int) [3]Vertex {
	return [3]Vertex{
		b.Vertices[b.Indices[3*i]],
		b.Vertices[b.Indices[3*i+1]],
		b.Vertices[b.Indices[3*i+2]],
	}
}

// Area returns the total area covered by the triangles.
func (b *VertexBuffers) Area() float64 {
	var area float64
	for i := range b.TriangleCount() {
		t := b.Triangle(i)
		ax, ay := float64(t[0].Position[0]), float64(t[0].Position[1])
		bx, by := float64(t[1].Position[0]), float64(t[1].Position[1])
		cx, cy := float64(t[2].Position[0]), float64(t[2].Position[1])
		area += ((bx-ax)*(cy-ay) - (by-ay)*(cx-ax)) / 2
	}
	return area
}

// Tessellate triangulates the interior of path.
//
// Every sub-path is treated as closed; the edge back to its start point is
// implied for open ones. Curves are flattened within the tolerance set by
// WithTolerance. All sub-paths are filled together so that holes follow the
// fill rule. The defaults are FillRuleEvenOdd and a tolerance of 0.1.
//
// An empty path yields empty buffers and no error. On failure the returned
// error wraps ErrTessellation and no buffers are returned.
//
// Tessellate does not modify path and may be called concurrently.
func Tessellate(path *Path, opts ...FillOption) (*VertexBuffers, error) {
	o := resolveFillOptions(opts)
	rule, err := o.validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTessellation, err)
	}

	contours, err := flattenContours(path, o.tolerance)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTessellation, err)
	}

	mesh, stats, err := sweep.Fill(contours, rule)
	if err != nil {
		Logger().Warn("tess: tessellation failed", "rule", o.rule, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrTessellation, err)
	}

	buf := &VertexBuffers{
		Vertices: make([]Vertex, len(mesh.Vertices)),
		Indices:  mesh.Indices,
	}
	if buf.Indices == nil {
		buf.Indices = []uint32{}
	}
	for i, p := range mesh.Vertices {
		buf.Vertices[i] = Vertex{Position: f32.Vec2{float32(p.X), float32(p.Y)}}
	}

	Logger().Debug("tess: tessellated",
		"rule", o.rule,
		"tolerance", o.tolerance,
		"contours", len(contours),
		"crossings", stats.Crossings,
		"vertices", len(buf.Vertices),
		"indices", len(buf.Indices))
	return buf, nil
}

// validate checks the options and returns the sweep fill rule.
func (o fillOptions) validate() (sweep.FillRule, error) {
	if !(o.tolerance > 0) || math.IsInf(o.tolerance, 1) {
		return 0, fmt.Errorf("%w: %g", ErrInvalidTolerance, o.tolerance)
	}
	rule, ok := o.rule.sweep()
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFillRule, o.rule)
	}
	return rule, nil
}

// flattenContours flattens every sub-path into a closed polygon. Repeated
// points are dropped; a sub-path collapsing to a single point contributes
// nothing.
func flattenContours(path *Path, tolerance float64) ([][]sweep.Point, error) {
	contours := make([][]sweep.Point, 0, path.Len())
	for i := range path.Len() {
		sp := path.SubPath(i)
		if err := checkFinite(sp); err != nil {
			return nil, fmt.Errorf("sub-path %d: %w", i, err)
		}

		var contour []sweep.Point
		for p := range sp.Flatten(tolerance) {
			q := sweep.Point{X: p.X, Y: p.Y}
			if n := len(contour); n > 0 && contour[n-1] == q {
				continue
			}
			contour = append(contour, q)
		}
		if n := len(contour); n > 1 && contour[n-1] == contour[0] {
			contour = contour[:n-1]
		}
		if len(contour) < 2 {
			continue
		}
		contours = append(contours, contour)
	}
	return contours, nil
}

// checkFinite rejects coordinates that are NaN, infinite or outside the
// float32 range of Vertex.Position.
func checkFinite(sp SubPath) error {
	if !inVertexRange(sp.start) {
		return fmt.Errorf("%w: %v", ErrNonFinite, sp.start)
	}
	for _, seg := range sp.segments {
		points := []Point{seg.End()}
		if c, ok := seg.(CubicTo); ok {
			points = append(points, c.Control1, c.Control2)
		}
		for _, p := range points {
			if !inVertexRange(p) {
				return fmt.Errorf("%w: %v", ErrNonFinite, p)
			}
		}
	}
	return nil
}

// inVertexRange reports whether p is finite and representable as float32.
// Flattened points stay inside the control polygon, so checking the
// control points covers every vertex.
func inVertexRange(p Point) bool {
	return p.IsFinite() &&
		math.Abs(p.X) <= math.MaxFloat32 &&
		math.Abs(p.Y) <= math.MaxFloat32
}
