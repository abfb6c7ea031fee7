package tess

import (
	"math"
	"testing"
)

func TestPoint_Arithmetic(t *testing.T) {
	p, q := Pt(3, 4), Pt(1, 2)
	if got := p.Add(q); got != Pt(4, 6) {
		t.Errorf("Add = %v, want (4, 6)", got)
	}
	if got := p.Sub(q); got != Pt(2, 2) {
		t.Errorf("Sub = %v, want (2, 2)", got)
	}
	if got := p.Mul(2); got != Pt(6, 8) {
		t.Errorf("Mul = %v, want (6, 8)", got)
	}
	if got := p.Dot(q); got != 11 {
		t.Errorf("Dot = %v, want 11", got)
	}
	if got := p.Cross(q); got != 2 {
		t.Errorf("Cross = %v, want 2", got)
	}
	if got := p.Length(); got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := p.Distance(q); math.Abs(got-math.Sqrt(8)) > epsilon {
		t.Errorf("Distance = %v, want %v", got, math.Sqrt(8))
	}
	if got := q.Lerp(p, 0.5); got != Pt(2, 3) {
		t.Errorf("Lerp = %v, want (2, 3)", got)
	}
}

func TestPoint_IsFinite(t *testing.T) {
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(0, 0), true},
		{Pt(-1e300, 1e300), true},
		{Pt(math.NaN(), 0), false},
		{Pt(0, math.Inf(-1)), false},
		{Pt(math.Inf(1), 0), false},
	}
	for _, tt := range tests {
		if got := tt.p.IsFinite(); got != tt.want {
			t.Errorf("%v.IsFinite() = %v, want %v", tt.p, got, tt.want)
		}
	}
}
