// Package sweep fills polygons by sweeping a horizontal line over their
// edges.
//
// The input is a set of closed contours of straight edges. Edges that cross
// are split at their crossing point, then the plane is cut into slabs at
// every vertex y. Inside a slab the active edges are ordered by x and the
// winding number picks the filled spans. Spans that line up across slabs
// are chained into y-monotone pieces, and each piece is triangulated with
// the classic stack algorithm when it ends.
package sweep

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// Errors returned by Fill.
var (
	// ErrUnbalanced means the winding number did not return to zero across
	// a slab, which only happens with non-finite input.
	ErrUnbalanced = errors.New("sweep: unbalanced winding")

	// ErrTooManyVertices means the mesh cannot be addressed by 32-bit indices.
	ErrTooManyVertices = errors.New("sweep: vertex count exceeds 32-bit index range")
)

// Point is a position in the plane. Y grows downwards in the sweep.
type Point struct {
	X, Y float64
}

// less orders points by y, then by x.
func less(a, b Point) bool {
	return a.Y < b.Y || (a.Y == b.Y && a.X < b.X)
}

func comparePoints(a, b Point) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}

// cross returns the z component of (b-a) x (c-a). It is positive when a, b, c
// turn counter-clockwise in a y-up frame.
func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// FillRule decides from a winding number whether a region is filled.
type FillRule uint8

// Fill rules.
const (
	NonZero FillRule = iota
	EvenOdd
	Positive
	Negative
)

func (r FillRule) fills(winding int) bool {
	switch r {
	case EvenOdd:
		return winding%2 != 0
	case Positive:
		return winding > 0
	case Negative:
		return winding < 0
	default:
		return winding != 0
	}
}

// Mesh is the output of Fill. Every index is below len(Vertices) and every
// triangle has positive signed area.
type Mesh struct {
	Vertices []Point
	Indices  []uint32
}

// Stats describes one Fill call.
type Stats struct {
	Edges     int
	Crossings int
	Slabs     int
	Pieces    int
	Triangles int
}

// edge is a non-horizontal contour edge with top.Y < bot.Y.
type edge struct {
	top, bot Point
	// wind is +1 when the contour runs towards smaller y along the edge.
	wind int
	id   int
}

// xAt returns the x coordinate of the edge at y. End points are returned
// exactly so that vertices shared by contours stay shared in the mesh.
func (e *edge) xAt(y float64) float64 {
	switch y {
	case e.top.Y:
		return e.top.X
	case e.bot.Y:
		return e.bot.X
	}
	return e.top.X + (y-e.top.Y)*(e.bot.X-e.top.X)/(e.bot.Y-e.top.Y)
}

// slope returns dx/dy.
func (e *edge) slope() float64 {
	return (e.bot.X - e.top.X) / (e.bot.Y - e.top.Y)
}

// Fill tessellates the interior of contours under rule. Each contour is a
// closed polygon; its last point connects back to the first. Contours with
// fewer than two distinct points contribute nothing.
//
// Fill is deterministic and keeps no state between calls.
func Fill(contours [][]Point, rule FillRule) (*Mesh, Stats, error) {
	edges := buildEdges(contours)
	edges, crossings := splitCrossings(edges)

	t := &tessellator{
		rule:  rule,
		edges: edges,
		mesh:  newMeshBuilder(),
	}
	t.stats.Edges = len(edges)
	t.stats.Crossings = crossings
	if err := t.run(); err != nil {
		return nil, t.stats, err
	}
	if t.mesh.err != nil {
		return nil, t.stats, t.mesh.err
	}
	t.stats.Triangles = len(t.mesh.indices) / 3

	slogger().Debug("sweep: fill",
		"edges", t.stats.Edges,
		"crossings", t.stats.Crossings,
		"slabs", t.stats.Slabs,
		"pieces", t.stats.Pieces,
		"vertices", len(t.mesh.vertices),
		"triangles", t.stats.Triangles)

	return &Mesh{Vertices: t.mesh.vertices, Indices: t.mesh.indices}, t.stats, nil
}

// buildEdges turns contours into edges, dropping horizontal ones. Horizontal
// edges never change the winding number of a slab.
func buildEdges(contours [][]Point) []*edge {
	var edges []*edge
	for _, c := range contours {
		n := len(c)
		if n < 2 {
			continue
		}
		for i := range n {
			a, b := c[i], c[(i+1)%n]
			if a.Y == b.Y {
				continue
			}
			e := &edge{top: a, bot: b, wind: -1, id: len(edges)}
			if b.Y < a.Y {
				e.top, e.bot, e.wind = b, a, 1
			}
			edges = append(edges, e)
		}
	}
	return edges
}

func byTop(a, b *edge) int {
	if c := comparePoints(a.top, b.top); c != 0 {
		return c
	}
	return cmp.Compare(a.id, b.id)
}

// splitCrossings splits every pair of edges that cross in their interiors
// at the crossing point. The point is computed once and used for both
// edges, so the pieces meet exactly. The result is sorted by top point.
func splitCrossings(edges []*edge) ([]*edge, int) {
	sorted := slices.Clone(edges)
	slices.SortFunc(sorted, byTop)

	splits := make([][]Point, len(edges))
	crossings := 0
	for i, a := range sorted {
		for _, b := range sorted[i+1:] {
			if b.top.Y >= a.bot.Y {
				break
			}
			p, ok := crossing(a, b)
			if !ok {
				continue
			}
			splits[a.id] = append(splits[a.id], p)
			splits[b.id] = append(splits[b.id], p)
			crossings++
		}
	}
	if crossings == 0 {
		return sorted, 0
	}

	out := make([]*edge, 0, len(edges)+2*crossings)
	for _, e := range edges {
		pts := splits[e.id]
		if len(pts) == 0 {
			out = append(out, &edge{top: e.top, bot: e.bot, wind: e.wind, id: len(out)})
			continue
		}
		slices.SortFunc(pts, comparePoints)
		pts = slices.Compact(pts)
		from := e.top
		for _, p := range append(pts, e.bot) {
			if p.Y == from.Y {
				continue
			}
			out = append(out, &edge{top: from, bot: p, wind: e.wind, id: len(out)})
			from = p
		}
	}
	slices.SortFunc(out, byTop)
	return out, crossings
}

// crossing returns the point where a and b cross, if they cross strictly
// inside both edges. Edges sharing an end point never cross.
func crossing(a, b *edge) (Point, bool) {
	if a.top == b.top || a.bot == b.bot || a.top == b.bot || a.bot == b.top {
		return Point{}, false
	}
	d1 := Point{a.bot.X - a.top.X, a.bot.Y - a.top.Y}
	d2 := Point{b.bot.X - b.top.X, b.bot.Y - b.top.Y}
	denom := d1.X*d2.Y - d1.Y*d2.X
	if denom == 0 {
		return Point{}, false
	}
	w := Point{b.top.X - a.top.X, b.top.Y - a.top.Y}
	t := (w.X*d2.Y - w.Y*d2.X) / denom
	u := (w.X*d1.Y - w.Y*d1.X) / denom
	if !(t > 0 && t < 1 && u > 0 && u < 1) {
		return Point{}, false
	}
	p := Point{a.top.X + t*d1.X, a.top.Y + t*d1.Y}
	if p.Y <= a.top.Y || p.Y <= b.top.Y || p.Y >= a.bot.Y || p.Y >= b.bot.Y {
		return Point{}, false
	}
	return p, true
}

// span is a maximal filled interval of one slab, bounded by two edges.
type span struct {
	left, right *edge
	// l0, r0 are the bounds at the slab top; l1, r1 at the slab bottom.
	l0, r0, l1, r1 float64
}

type tessellator struct {
	rule  FillRule
	edges []*edge
	mesh  *meshBuilder
	stats Stats
}

// eventYs returns the sorted distinct y coordinates of all edge end points.
func eventYs(edges []*edge) []float64 {
	ys := make([]float64, 0, 2*len(edges))
	for _, e := range edges {
		ys = append(ys, e.top.Y, e.bot.Y)
	}
	slices.Sort(ys)
	return slices.Compact(ys)
}

func (t *tessellator) run() error {
	ys := eventYs(t.edges)

	var (
		active []*edge
		above  []span
		open   []*piece
		next   int
	)
	for k, y := range ys {
		var below []span
		if k+1 < len(ys) {
			active = slices.DeleteFunc(active, func(e *edge) bool { return e.bot.Y <= y })
			for next < len(t.edges) && t.edges[next].top.Y <= y {
				active = append(active, t.edges[next])
				next++
			}
			var err error
			below, err = t.spans(active, y, ys[k+1])
			if err != nil {
				return err
			}
			t.stats.Slabs++
		}
		open = t.advance(open, above, below, y)
		above = below
	}
	return nil
}

// spans returns the filled spans of the slab [y0, y1] in increasing x.
// Spans that touch along the whole slab are merged and zero-width spans are
// dropped.
func (t *tessellator) spans(active []*edge, y0, y1 float64) ([]span, error) {
	mid := (y0 + y1) / 2
	slices.SortFunc(active, func(a, b *edge) int {
		if c := cmp.Compare(a.xAt(mid), b.xAt(mid)); c != 0 {
			return c
		}
		if c := cmp.Compare(a.slope(), b.slope()); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})

	var (
		out     []span
		start   *edge
		winding int
	)
	for _, e := range active {
		was := t.rule.fills(winding)
		winding += e.wind
		now := t.rule.fills(winding)
		switch {
		case !was && now:
			start = e
		case was && !now:
			out = appendSpan(out, span{
				left: start, right: e,
				l0: start.xAt(y0), r0: e.xAt(y0),
				l1: start.xAt(y1), r1: e.xAt(y1),
			})
		}
	}
	if winding != 0 {
		return nil, fmt.Errorf("%w: residual %d in slab [%g, %g]", ErrUnbalanced, winding, y0, y1)
	}
	return out, nil
}

func appendSpan(spans []span, s span) []span {
	if s.l0 == s.r0 && s.l1 == s.r1 {
		return spans
	}
	if n := len(spans); n > 0 {
		prev := &spans[n-1]
		if prev.r0 == s.l0 && prev.r1 == s.l1 {
			prev.right, prev.r0, prev.r1 = s.right, s.r0, s.r1
			return spans
		}
	}
	return append(spans, s)
}

// advance moves the sweep across y. Open pieces whose bottom interval is
// repeated by a span below continue; the others end at y. Spans below
// without a piece start a new one.
func (t *tessellator) advance(open []*piece, above, below []span, y float64) []*piece {
	xs := boundaryXs(above, below)

	index := make(map[[2]float64]int, len(below))
	for i, s := range below {
		if s.l0 >= s.r0 {
			continue
		}
		key := [2]float64{s.l0, s.r0}
		if _, dup := index[key]; dup {
			index[key] = -1
			continue
		}
		index[key] = i
	}

	continued := make([]*piece, len(below))
	for _, p := range open {
		if p.l < p.r {
			if i, ok := index[[2]float64{p.l, p.r}]; ok && i >= 0 && continued[i] == nil {
				continued[i] = p
				continue
			}
		}
		p.finish(y, xs)
		t.triangulate(p)
	}

	pieces := make([]*piece, len(below))
	for i, s := range below {
		p := continued[i]
		if p == nil {
			p = startPiece(s, y, xs)
			t.stats.Pieces++
		} else {
			p.extend(s, y)
		}
		p.l, p.r = s.l1, s.r1
		pieces[i] = p
	}
	return pieces
}

// boundaryXs returns the sorted distinct x coordinates at y of the spans
// that end at y (above) and start at y (below).
func boundaryXs(above, below []span) []float64 {
	xs := make([]float64, 0, 2*(len(above)+len(below)))
	for _, s := range above {
		xs = append(xs, s.l1, s.r1)
	}
	for _, s := range below {
		xs = append(xs, s.l0, s.r0)
	}
	slices.Sort(xs)
	return slices.Compact(xs)
}
