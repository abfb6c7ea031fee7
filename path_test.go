package tess

import (
	"slices"
	"testing"
)

func TestPath_NilIsEmpty(t *testing.T) {
	var p *Path
	if !p.IsEmpty() || p.Len() != 0 {
		t.Error("nil path should be empty")
	}
	for range p.SubPaths() {
		t.Error("nil path yielded a sub-path")
	}
	if p.Bounds() != (Rect{}) {
		t.Errorf("Bounds() = %v, want zero Rect", p.Bounds())
	}
	if p.Transform(Scale(2, 2)).Len() != 0 {
		t.Error("transformed nil path should be empty")
	}
}

func TestPath_Bounds(t *testing.T) {
	b := NewPathBuilder()
	_ = b.AddRect(10, 10, 5, 5)
	_ = b.Begin(0, 0)
	_ = b.CubicTo(0, 10, 10, 10, 10, 0)
	_ = b.End(false)
	bounds := b.Build().Bounds()
	if !pointsEqual(bounds.Min, Pt(0, 0), epsilon) || !pointsEqual(bounds.Max, Pt(15, 15), epsilon) {
		t.Errorf("Bounds() = %+v, want {(0,0) (15,15)}", bounds)
	}
}

func TestPath_CurveBoundsAreTight(t *testing.T) {
	b := NewPathBuilder()
	_ = b.Begin(0, 0)
	_ = b.CubicTo(0, 10, 10, 10, 10, 0)
	_ = b.End(false)
	bounds := b.Build().Bounds()
	if !pointsEqual(bounds.Max, Pt(10, 7.5), epsilon) {
		t.Errorf("Bounds().Max = %v, want (10, 7.5)", bounds.Max)
	}
}

func TestSubPath_Segments(t *testing.T) {
	b := NewPathBuilder()
	_ = b.Begin(0, 0)
	_ = b.LineTo(10, 0)
	_ = b.CubicTo(10, 5, 5, 10, 0, 10)
	_ = b.End(true)
	sp := b.Build().SubPath(0)

	var got []Segment
	for seg := range sp.Segments() {
		got = append(got, seg)
	}
	want := []Segment{
		LineTo{Point: Pt(10, 0)},
		CubicTo{Control1: Pt(10, 5), Control2: Pt(5, 10), Point: Pt(0, 10)},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Segments() = %v, want %v", got, want)
	}
}

func TestSubPath_Flatten(t *testing.T) {
	b := NewPathBuilder()
	_ = b.Begin(0, 0)
	_ = b.LineTo(10, 0)
	_ = b.CubicTo(10, 5, 5, 10, 0, 10)
	_ = b.End(true)
	sp := b.Build().SubPath(0)

	var pts []Point
	for p := range sp.Flatten(0.1) {
		pts = append(pts, p)
	}
	if len(pts) < 4 {
		t.Fatalf("points = %d, want at least 4", len(pts))
	}
	if pts[0] != Pt(0, 0) || pts[1] != Pt(10, 0) || pts[len(pts)-1] != Pt(0, 10) {
		t.Errorf("unexpected polyline %v", pts)
	}
}

func TestPath_TransformLeavesOriginal(t *testing.T) {
	orig := squarePath(10)
	moved := orig.Transform(Translate(100, 0))
	if orig.SubPath(0).Start() != Pt(0, 0) {
		t.Error("Transform modified the original path")
	}
	if moved.SubPath(0).Start() != Pt(100, 0) {
		t.Errorf("moved start = %v, want (100, 0)", moved.SubPath(0).Start())
	}
	if !moved.SubPath(0).Closed() {
		t.Error("Transform lost the closed flag")
	}
}
