// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"math"
	"slices"

	"github.com/gogpu/tess"
)

// Edge represents a line segment for scanline conversion.
// Edges are derived from flattened path contours and used by the active
// edge table in ScanlineMask.
type Edge struct {
	// YMin is the minimum Y coordinate (top of edge)
	YMin float64

	// YMax is the maximum Y coordinate (bottom of edge)
	YMax float64

	// XAtYMin is the X coordinate at YMin
	XAtYMin float64

	// DXDY is the inverse slope: change in X per unit Y
	DXDY float64

	// Winding is +1 when the contour runs toward smaller Y, -1 otherwise.
	Winding int
}

// Epsilon is the smallest vertical extent an edge must have to be kept.
const Epsilon = 1e-12

// NewEdge creates an edge running from (x0, y0) to (x1, y1).
// Returns nil if the edge is horizontal (no Y extent).
func NewEdge(x0, y0, x1, y1 float64) *Edge {
	winding := -1
	if y0 > y1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
		winding = 1
	}

	dy := y1 - y0
	if dy < Epsilon {
		return nil
	}

	return &Edge{
		YMin:    y0,
		YMax:    y1,
		XAtYMin: x0,
		DXDY:    (x1 - x0) / dy,
		Winding: winding,
	}
}

// XAtY calculates the X coordinate at a given Y value.
func (e *Edge) XAtY(y float64) float64 {
	return e.XAtYMin + (y-e.YMin)*e.DXDY
}

// IsActiveAt returns true if the edge is active at the given Y coordinate.
// An edge is active when YMin <= y < YMax.
func (e *Edge) IsActiveAt(y float64) bool {
	return y >= e.YMin && y < e.YMax
}

// EdgeList is a collection of edges with utility methods.
type EdgeList struct {
	edges []Edge
}

// NewEdgeList creates a new empty edge list.
func NewEdgeList() *EdgeList {
	return &EdgeList{
		edges: make([]Edge, 0, 64),
	}
}

// Reset clears the edge list for reuse.
func (el *EdgeList) Reset() {
	el.edges = el.edges[:0]
}

// AddLine adds a line segment as an edge. Horizontal segments are ignored.
func (el *EdgeList) AddLine(x0, y0, x1, y1 float64) {
	if e := NewEdge(x0, y0, x1, y1); e != nil {
		el.edges = append(el.edges, *e)
	}
}

// AddContour adds the closed polygon through pts.
func (el *EdgeList) AddContour(pts []tess.Point) {
	if len(pts) < 2 {
		return
	}
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		el.AddLine(p.X, p.Y, q.X, q.Y)
	}
}

// Len returns the number of edges.
func (el *EdgeList) Len() int {
	return len(el.edges)
}

// Edges returns the underlying slice.
func (el *EdgeList) Edges() []Edge {
	return el.edges
}

// SortByYMin sorts edges by their minimum Y coordinate.
func (el *EdgeList) SortByYMin() {
	slices.SortStableFunc(el.edges, func(a, b Edge) int {
		switch {
		case a.YMin < b.YMin:
			return -1
		case a.YMin > b.YMin:
			return 1
		default:
			return 0
		}
	})
}

// Bounds returns the bounding rectangle of all edges.
func (el *EdgeList) Bounds() (minX, minY, maxX, maxY float64) {
	if len(el.edges) == 0 {
		return 0, 0, 0, 0
	}

	minX, minY = math.MaxFloat64, math.MaxFloat64
	maxX, maxY = -math.MaxFloat64, -math.MaxFloat64
	for i := range el.edges {
		e := &el.edges[i]
		minY = min(minY, e.YMin)
		maxY = max(maxY, e.YMax)
		x0, x1 := e.XAtYMin, e.XAtY(e.YMax)
		minX = min(minX, x0, x1)
		maxX = max(maxX, x0, x1)
	}
	return minX, minY, maxX, maxY
}

// ActiveEdge holds an edge with its current X position.
type ActiveEdge struct {
	Edge *Edge
	X    float64 // X position at the current scanline
}

// SimpleAET manages active edges during scanline conversion.
type SimpleAET struct {
	edges []ActiveEdge
}

// NewSimpleAET creates a new simple active edge table.
func NewSimpleAET() *SimpleAET {
	return &SimpleAET{
		edges: make([]ActiveEdge, 0, 32),
	}
}

// Reset clears the active edge table.
func (aet *SimpleAET) Reset() {
	aet.edges = aet.edges[:0]
}

// InsertEdge adds an edge to the active list, keeping it sorted by X.
func (aet *SimpleAET) InsertEdge(e *Edge, y float64) {
	ae := ActiveEdge{
		Edge: e,
		X:    e.XAtY(y),
	}

	i := len(aet.edges)
	aet.edges = append(aet.edges, ae)
	for i > 0 && aet.edges[i-1].X > ae.X {
		aet.edges[i] = aet.edges[i-1]
		i--
	}
	aet.edges[i] = ae
}

// RemoveExpired removes edges that end at or before the given Y.
func (aet *SimpleAET) RemoveExpired(y float64) {
	j := 0
	for i := range aet.edges {
		if aet.edges[i].Edge.YMax > y {
			aet.edges[j] = aet.edges[i]
			j++
		}
	}
	aet.edges = aet.edges[:j]
}

// UpdateX updates X positions for all active edges at the new Y and
// restores X order.
func (aet *SimpleAET) UpdateX(y float64) {
	for i := range aet.edges {
		aet.edges[i].X = aet.edges[i].Edge.XAtY(y)
	}
	// Insertion sort (usually nearly sorted)
	for i := 1; i < len(aet.edges); i++ {
		j := i
		for j > 0 && aet.edges[j].X < aet.edges[j-1].X {
			aet.edges[j], aet.edges[j-1] = aet.edges[j-1], aet.edges[j]
			j--
		}
	}
}

// Active returns the list of active edges for iteration.
func (aet *SimpleAET) Active() []ActiveEdge {
	return aet.edges
}

// Len returns the number of active edges.
func (aet *SimpleAET) Len() int {
	return len(aet.edges)
}
