// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"testing"

	"github.com/gogpu/tess"
)

func TestNewEdge(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		wantNil        bool
		wantWinding    int
		wantYMin       float64
	}{
		{"downward", 0, 0, 10, 10, false, -1, 0},
		{"upward", 10, 10, 0, 0, false, 1, 0},
		{"horizontal", 0, 5, 10, 5, true, 0, 0},
		{"vertical up", 3, 8, 3, 2, false, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEdge(tt.x0, tt.y0, tt.x1, tt.y1)
			if tt.wantNil {
				if e != nil {
					t.Errorf("NewEdge = %+v, want nil", e)
				}
				return
			}
			if e == nil {
				t.Fatal("NewEdge = nil")
			}
			if e.Winding != tt.wantWinding {
				t.Errorf("Winding = %d, want %d", e.Winding, tt.wantWinding)
			}
			if e.YMin != tt.wantYMin {
				t.Errorf("YMin = %v, want %v", e.YMin, tt.wantYMin)
			}
		})
	}
}

func TestEdge_XAtY(t *testing.T) {
	e := NewEdge(0, 0, 10, 20)
	tests := []struct{ y, want float64 }{
		{0, 0},
		{10, 5},
		{20, 10},
	}
	for _, tt := range tests {
		if got := e.XAtY(tt.y); got != tt.want {
			t.Errorf("XAtY(%v) = %v, want %v", tt.y, got, tt.want)
		}
	}
	if !e.IsActiveAt(0) || e.IsActiveAt(20) || e.IsActiveAt(-1) {
		t.Error("IsActiveAt should cover [YMin, YMax)")
	}
}

func TestEdgeList_AddContour(t *testing.T) {
	el := NewEdgeList()
	el.AddContour([]tess.Point{tess.Pt(0, 0), tess.Pt(10, 0), tess.Pt(10, 10), tess.Pt(0, 10)})
	if el.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (horizontal edges dropped)", el.Len())
	}

	minX, minY, maxX, maxY := el.Bounds()
	if minX != 0 || minY != 0 || maxX != 10 || maxY != 10 {
		t.Errorf("Bounds = (%v, %v, %v, %v), want (0, 0, 10, 10)", minX, minY, maxX, maxY)
	}

	winding := 0
	for _, e := range el.Edges() {
		winding += e.Winding
	}
	if winding != 0 {
		t.Errorf("winding sum = %d, want 0 for a closed contour", winding)
	}

	el.Reset()
	if el.Len() != 0 {
		t.Errorf("Len after Reset = %d", el.Len())
	}
	el.AddContour([]tess.Point{tess.Pt(1, 1)})
	if el.Len() != 0 {
		t.Errorf("single point contour added %d edges", el.Len())
	}
}

func TestEdgeList_SortByYMin(t *testing.T) {
	el := NewEdgeList()
	el.AddLine(0, 5, 0, 9)
	el.AddLine(0, 1, 0, 3)
	el.AddLine(0, 3, 0, 4)
	el.SortByYMin()
	for i := 1; i < el.Len(); i++ {
		if el.Edges()[i].YMin < el.Edges()[i-1].YMin {
			t.Fatalf("edges not sorted: %+v", el.Edges())
		}
	}
}

func TestSimpleAET(t *testing.T) {
	a := NewEdge(8, 0, 8, 10)
	b := NewEdge(2, 0, 2, 5)
	c := NewEdge(0, 0, 10, 10)

	aet := NewSimpleAET()
	aet.InsertEdge(a, 1)
	aet.InsertEdge(b, 1)
	aet.InsertEdge(c, 1)
	if aet.Len() != 3 {
		t.Fatalf("Len = %d, want 3", aet.Len())
	}
	for i := 1; i < aet.Len(); i++ {
		if aet.Active()[i].X < aet.Active()[i-1].X {
			t.Fatalf("active edges not sorted at insert")
		}
	}

	aet.RemoveExpired(5)
	if aet.Len() != 2 {
		t.Fatalf("Len after RemoveExpired = %d, want 2", aet.Len())
	}

	// c moves from left of a to right of it.
	aet.UpdateX(9)
	if got := aet.Active()[0].Edge; got != a {
		t.Errorf("first active edge = %+v, want the vertical edge at x=8", got)
	}

	aet.Reset()
	if aet.Len() != 0 {
		t.Errorf("Len after Reset = %d", aet.Len())
	}
}
