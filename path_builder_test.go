package tess

import (
	"errors"
	"testing"
)

func TestPathBuilder_Square(t *testing.T) {
	b := NewPathBuilder()
	mustNoErr(t, b.Begin(0, 0))
	mustNoErr(t, b.LineTo(10, 0))
	mustNoErr(t, b.LineTo(10, 10))
	mustNoErr(t, b.LineTo(0, 10))
	mustNoErr(t, b.End(true))

	path := b.Build()
	if path.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", path.Len())
	}
	sp := path.SubPath(0)
	if sp.Start() != Pt(0, 0) {
		t.Errorf("Start() = %v, want (0, 0)", sp.Start())
	}
	if sp.Len() != 3 {
		t.Errorf("segments = %d, want 3", sp.Len())
	}
	if !sp.Closed() {
		t.Error("sub-path should be closed")
	}
	if sp.End() != Pt(0, 10) {
		t.Errorf("End() = %v, want (0, 10)", sp.End())
	}
}

func TestPathBuilder_SequenceErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(b *PathBuilder)
		call  func(b *PathBuilder) error
		op    string
		state BuilderState
	}{
		{"LineTo without Begin", nil, func(b *PathBuilder) error { return b.LineTo(1, 1) }, "LineTo", StateIdle},
		{"CubicTo without Begin", nil, func(b *PathBuilder) error { return b.CubicTo(1, 1, 2, 2, 3, 3) }, "CubicTo", StateIdle},
		{"QuadTo without Begin", nil, func(b *PathBuilder) error { return b.QuadTo(1, 1, 2, 2) }, "QuadTo", StateIdle},
		{"End without Begin", nil, func(b *PathBuilder) error { return b.End(false) }, "End", StateIdle},
		{"Close without Begin", nil, func(b *PathBuilder) error { return b.Close() }, "Close", StateIdle},
		{
			"Begin twice",
			func(b *PathBuilder) { _ = b.Begin(0, 0) },
			func(b *PathBuilder) error { return b.Begin(5, 5) },
			"Begin", StateSubPathOpen,
		},
		{
			"LineTo after End",
			func(b *PathBuilder) { _ = b.Begin(0, 0); _ = b.LineTo(1, 0); _ = b.End(false) },
			func(b *PathBuilder) error { return b.LineTo(2, 2) },
			"LineTo", StateIdle,
		},
		{
			"AddRect while open",
			func(b *PathBuilder) { _ = b.Begin(0, 0) },
			func(b *PathBuilder) error { return b.AddRect(0, 0, 1, 1) },
			"AddRect", StateSubPathOpen,
		},
		{
			"AddCircle while open",
			func(b *PathBuilder) { _ = b.Begin(0, 0) },
			func(b *PathBuilder) error { return b.AddCircle(0, 0, 1) },
			"AddEllipse", StateSubPathOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewPathBuilder()
			if tt.setup != nil {
				tt.setup(b)
			}
			before := b.Snapshot()
			stateBefore := b.State()

			err := tt.call(b)
			if !errors.Is(err, ErrSequence) {
				t.Fatalf("error = %v, want ErrSequence", err)
			}
			var seqErr *SequenceError
			if !errors.As(err, &seqErr) {
				t.Fatalf("error %T is not *SequenceError", err)
			}
			if seqErr.Op != tt.op || seqErr.State != tt.state {
				t.Errorf("SequenceError = {%s %v}, want {%s %v}", seqErr.Op, seqErr.State, tt.op, tt.state)
			}
			if b.State() != stateBefore {
				t.Errorf("state changed to %v after rejected command", b.State())
			}
			if after := b.Snapshot(); after.Len() != before.Len() {
				t.Errorf("sub-paths changed from %d to %d after rejected command", before.Len(), after.Len())
			}
		})
	}
}

func TestSequenceError_Message(t *testing.T) {
	idle := &SequenceError{Op: "LineTo", State: StateIdle}
	if got, want := idle.Error(), "tess: LineTo requires an open sub-path (call Begin first)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	open := &SequenceError{Op: "Begin", State: StateSubPathOpen}
	if got, want := open.Error(), "tess: Begin called while a sub-path is open (call End first)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestPathBuilder_EmptySubPathDiscarded(t *testing.T) {
	b := NewPathBuilder()
	mustNoErr(t, b.Begin(0, 0))
	mustNoErr(t, b.End(false))

	path := b.Build()
	if path.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", path.Len())
	}

	buf, err := Tessellate(path)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if len(buf.Vertices) != 0 || len(buf.Indices) != 0 {
		t.Errorf("buffers = (%d, %d), want (0, 0)", len(buf.Vertices), len(buf.Indices))
	}
}

func TestPathBuilder_DegenerateSegmentsDiscarded(t *testing.T) {
	b := NewPathBuilder()
	mustNoErr(t, b.Begin(1, 1))
	mustNoErr(t, b.LineTo(1, 1))
	mustNoErr(t, b.CubicTo(1, 1, 1, 1, 1, 1))
	mustNoErr(t, b.QuadTo(1, 1, 1, 1))
	mustNoErr(t, b.End(true))
	if path := b.Build(); path.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after only degenerate segments", path.Len())
	}

	// A cubic whose end equals its start but with distinct controls is kept.
	mustNoErr(t, b.Begin(0, 0))
	mustNoErr(t, b.CubicTo(10, 0, 10, 10, 0, 0))
	mustNoErr(t, b.End(false))
	if path := b.Build(); path.Len() != 1 || path.SubPath(0).Len() != 1 {
		t.Errorf("loop cubic was discarded")
	}
}

func TestPathBuilder_BuildEndsDanglingSubPath(t *testing.T) {
	b := NewPathBuilder()
	mustNoErr(t, b.Begin(0, 0))
	mustNoErr(t, b.LineTo(10, 0))
	mustNoErr(t, b.LineTo(10, 10))

	path := b.Build()
	if path.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", path.Len())
	}
	if path.SubPath(0).Closed() {
		t.Error("dangling sub-path should be kept open")
	}
	if b.State() != StateIdle {
		t.Errorf("State() = %v after Build, want Idle", b.State())
	}

	// The open contour is still filled as a triangle.
	buf, err := Tessellate(path)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if buf.TriangleCount() != 1 {
		t.Errorf("TriangleCount() = %d, want 1", buf.TriangleCount())
	}
}

func TestPathBuilder_BuildResets(t *testing.T) {
	b := NewPathBuilder()
	mustNoErr(t, b.AddRect(0, 0, 10, 10))
	first := b.Build()

	mustNoErr(t, b.AddCircle(5, 5, 5))
	mustNoErr(t, b.AddRect(20, 20, 5, 5))
	second := b.Build()

	if first.Len() != 1 {
		t.Errorf("first.Len() = %d, want 1", first.Len())
	}
	if second.Len() != 2 {
		t.Errorf("second.Len() = %d, want 2", second.Len())
	}
	if b.Build().Len() != 0 {
		t.Error("builder not empty after Build")
	}
}

func TestPathBuilder_Snapshot(t *testing.T) {
	b := NewPathBuilder()
	mustNoErr(t, b.AddRect(0, 0, 10, 10))
	mustNoErr(t, b.Begin(20, 0))
	mustNoErr(t, b.LineTo(30, 0))

	snap := b.Snapshot()
	if snap.Len() != 2 {
		t.Fatalf("Snapshot().Len() = %d, want 2", snap.Len())
	}
	if snap.SubPath(1).Closed() {
		t.Error("open sub-path in snapshot should not be closed")
	}
	if b.State() != StateSubPathOpen {
		t.Errorf("Snapshot changed state to %v", b.State())
	}

	// The builder continues where it was.
	mustNoErr(t, b.LineTo(30, 10))
	mustNoErr(t, b.End(true))
	path := b.Build()
	if got := path.SubPath(1).Len(); got != 2 {
		t.Errorf("segments after Snapshot = %d, want 2", got)
	}
	if got := snap.SubPath(1).Len(); got != 1 {
		t.Errorf("snapshot changed by later commands: %d segments, want 1", got)
	}
}

func TestPathBuilder_Reset(t *testing.T) {
	b := NewPathBuilder()
	mustNoErr(t, b.AddRect(0, 0, 10, 10))
	mustNoErr(t, b.Begin(0, 0))
	b.Reset()
	if b.State() != StateIdle {
		t.Errorf("State() = %v after Reset, want Idle", b.State())
	}
	if b.Build().Len() != 0 {
		t.Error("Reset did not discard sub-paths")
	}
}

func TestPathBuilder_Current(t *testing.T) {
	b := NewPathBuilder()
	mustNoErr(t, b.Begin(1, 2))
	if b.Current() != Pt(1, 2) {
		t.Errorf("Current() = %v after Begin, want (1, 2)", b.Current())
	}
	mustNoErr(t, b.CubicTo(3, 4, 5, 6, 7, 8))
	if b.Current() != Pt(7, 8) {
		t.Errorf("Current() = %v after CubicTo, want (7, 8)", b.Current())
	}
	mustNoErr(t, b.Close())
	if b.Current() != Pt(1, 2) {
		t.Errorf("Current() = %v after Close, want (1, 2)", b.Current())
	}
}

func TestPathBuilder_QuadTo(t *testing.T) {
	b := NewPathBuilder()
	mustNoErr(t, b.Begin(0, 0))
	mustNoErr(t, b.QuadTo(3, 6, 6, 0))
	mustNoErr(t, b.End(false))

	seg, ok := b.Build().SubPath(0).Segment(0).(CubicTo)
	if !ok {
		t.Fatal("QuadTo did not produce a CubicTo")
	}
	want := CubicTo{Control1: Pt(2, 4), Control2: Pt(4, 4), Point: Pt(6, 0)}
	if !pointsEqual(seg.Control1, want.Control1, epsilon) ||
		!pointsEqual(seg.Control2, want.Control2, epsilon) ||
		seg.Point != want.Point {
		t.Errorf("CubicTo = %+v, want %+v", seg, want)
	}
}

func TestPathBuilder_Shapes(t *testing.T) {
	tests := []struct {
		name     string
		add      func(b *PathBuilder) error
		subPaths int
		segments int
		area     float64
		tol      float64
	}{
		{"Rect", func(b *PathBuilder) error { return b.AddRect(0, 0, 100, 50) }, 1, 3, 5000, 1e-3},
		{"Circle", func(b *PathBuilder) error { return b.AddCircle(50, 50, 25) }, 1, 4, 1963.495, 5},
		{"Ellipse", func(b *PathBuilder) error { return b.AddEllipse(50, 50, 30, 20) }, 1, 4, 1884.956, 5},
		{"Polygon6", func(b *PathBuilder) error { return b.AddPolygon(50, 50, 10, 6) }, 1, 5, 259.808, 1e-2},
		{"Star5", func(b *PathBuilder) error { return b.AddStar(50, 50, 30, 15, 5) }, 1, 9, 1322.5, 1},
		{"RoundRect", func(b *PathBuilder) error { return b.AddRoundRect(0, 0, 100, 100, 10) }, 1, 8, 9914.16, 2},
		{"Polygon2", func(b *PathBuilder) error { return b.AddPolygon(50, 50, 25, 2) }, 0, 0, 0, 0},
		{"Star2", func(b *PathBuilder) error { return b.AddStar(50, 50, 25, 10, 2) }, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewPathBuilder()
			mustNoErr(t, tt.add(b))
			path := b.Build()
			if path.Len() != tt.subPaths {
				t.Fatalf("sub-paths = %d, want %d", path.Len(), tt.subPaths)
			}
			if tt.subPaths == 0 {
				return
			}
			sp := path.SubPath(0)
			if sp.Len() != tt.segments {
				t.Errorf("segments = %d, want %d", sp.Len(), tt.segments)
			}
			if !sp.Closed() {
				t.Error("shape should be closed")
			}
			buf, err := Tessellate(path, WithFillRule(FillRuleNonZero), WithTolerance(0.01))
			if err != nil {
				t.Fatalf("Tessellate: %v", err)
			}
			if got := buf.Area(); got < tt.area-tt.tol || got > tt.area+tt.tol {
				t.Errorf("area = %v, want %v ± %v", got, tt.area, tt.tol)
			}
		})
	}
}

func TestBuilderState_String(t *testing.T) {
	tests := []struct {
		s    BuilderState
		want string
	}{
		{StateIdle, "Idle"},
		{StateSubPathOpen, "SubPathOpen"},
		{BuilderState(9), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("BuilderState(%d).String() = %q, want %q", int(tt.s), got, tt.want)
		}
	}
}

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
