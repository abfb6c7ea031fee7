package sweep

import (
	"math"
	"slices"
)

// piece is a y-monotone polygon under construction. The left chain runs
// from the top-left corner down the left boundary and then along the bottom
// edge. The right chain runs along the top edge to the top-right corner and
// down the right boundary. Both chains are sorted by (y, x).
type piece struct {
	left, right         []Point
	leftEdge, rightEdge *edge
	// l, r bound the piece at the bottom of its current slab.
	l, r float64
}

// startPiece opens a piece on span s at y. Boundary points of neighbouring
// pieces that lie strictly inside the top edge become vertices of it.
func startPiece(s span, y float64, xs []float64) *piece {
	p := &piece{leftEdge: s.left, rightEdge: s.right}
	p.left = append(p.left, Point{s.l0, y})
	p.right = appendRun(p.right, xs, s.l0, s.r0, y)
	p.right = append(p.right, Point{s.r0, y})
	return p
}

// extend continues the piece into the slab of s. A vertex is added where
// a boundary edge changes.
func (p *piece) extend(s span, y float64) {
	if s.left != p.leftEdge {
		p.left = append(p.left, Point{s.l0, y})
		p.leftEdge = s.left
	}
	if s.right != p.rightEdge {
		p.right = append(p.right, Point{s.r0, y})
		p.rightEdge = s.right
	}
}

// finish ends the piece at y with a bottom edge that includes the boundary
// points of neighbouring pieces.
func (p *piece) finish(y float64, xs []float64) {
	p.left = append(p.left, Point{p.l, y})
	p.left = appendRun(p.left, xs, p.l, p.r, y)
	p.right = append(p.right, Point{p.r, y})
}

// appendRun appends the points (x, y) for every x in the sorted xs with
// lo < x < hi.
func appendRun(dst []Point, xs []float64, lo, hi, y float64) []Point {
	i, found := slices.BinarySearch(xs, lo)
	if found {
		i++
	}
	for ; i < len(xs) && xs[i] < hi; i++ {
		dst = append(dst, Point{xs[i], y})
	}
	return dst
}

type chainVertex struct {
	p     Point
	right bool
}

// mergeChains merges both chains into one list sorted by (y, x). A point
// present on both chains (the apex or the bottom) is kept once.
func mergeChains(left, right []Point) []chainVertex {
	out := make([]chainVertex, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) || j < len(right) {
		switch {
		case i < len(left) && j < len(right) && left[i] == right[j]:
			out = append(out, chainVertex{p: left[i]})
			i++
			j++
		case j == len(right) || (i < len(left) && less(left[i], right[j])):
			out = append(out, chainVertex{p: left[i]})
			i++
		default:
			out = append(out, chainVertex{p: right[j], right: true})
			j++
		}
	}
	return out
}

// triangulate emits the triangles of a finished monotone piece.
func (t *tessellator) triangulate(p *piece) {
	vs := mergeChains(p.left, p.right)
	n := len(vs)
	if n < 3 {
		return
	}

	stack := make([]chainVertex, 0, n)
	stack = append(stack, vs[0], vs[1])
	for _, u := range vs[2 : n-1] {
		top := stack[len(stack)-1]
		if u.right != top.right {
			// Everything on the stack is visible from u.
			for k := len(stack) - 1; k > 0; k-- {
				t.mesh.triangle(u.p, stack[k].p, stack[k-1].p)
			}
			stack = append(stack[:0], top, u)
			continue
		}

		last := top
		stack = stack[:len(stack)-1]
		for len(stack) > 0 {
			s := stack[len(stack)-1]
			c := cross(s.p, u.p, last.p)
			if (u.right && c >= 0) || (!u.right && c <= 0) {
				break
			}
			t.mesh.triangle(u.p, last.p, s.p)
			last = s
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, last, u)
	}

	u := vs[n-1]
	for k := len(stack) - 1; k > 0; k-- {
		t.mesh.triangle(u.p, stack[k].p, stack[k-1].p)
	}
}

// meshBuilder collects triangles and assigns each distinct point one index
// in first-use order.
type meshBuilder struct {
	vertices []Point
	indices  []uint32
	lookup   map[Point]uint32
	err      error
}

func newMeshBuilder() *meshBuilder {
	return &meshBuilder{lookup: make(map[Point]uint32)}
}

func (m *meshBuilder) vertex(p Point) uint32 {
	if i, ok := m.lookup[p]; ok {
		return i
	}
	if uint64(len(m.vertices)) > math.MaxUint32 {
		m.err = ErrTooManyVertices
		return 0
	}
	i := uint32(len(m.vertices))
	m.vertices = append(m.vertices, p)
	m.lookup[p] = i
	return i
}

// triangle adds a, b, c with positive signed area. Degenerate triangles are
// dropped.
func (m *meshBuilder) triangle(a, b, c Point) {
	if m.err != nil {
		return
	}
	area := cross(a, b, c)
	if area == 0 {
		return
	}
	if area < 0 {
		b, c = c, b
	}
	m.indices = append(m.indices, m.vertex(a), m.vertex(b), m.vertex(c))
}
