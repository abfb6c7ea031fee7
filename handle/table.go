// Package handle exposes path builders and paths through opaque integer
// handles, for callers on the far side of a language or process boundary
// that cannot hold Go pointers.
//
// Every handle is validated on use: released handles, handles from another
// table and handles of the wrong kind are rejected with an error instead of
// touching memory. Slots are reused after Release with a new generation, so
// a stale handle never aliases a newer object.
package handle

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/tess"
)

// Errors returned by Table methods.
var (
	// ErrInvalidHandle is returned for a handle that was never issued by the
	// table or has been released.
	ErrInvalidHandle = errors.New("handle: invalid handle")

	// ErrWrongKind is returned when a builder handle is used where a path
	// handle is required, or the other way round.
	ErrWrongKind = errors.New("handle: wrong handle kind")
)

// Handle is an opaque reference to a builder or a path in a Table.
// The low 32 bits hold the slot number plus one, the high 32 bits the slot
// generation. The zero Handle is never valid.
type Handle uint64

// Invalid is the zero Handle.
const Invalid Handle = 0

func makeHandle(index int, gen uint32) Handle {
	// #nosec G115 -- slot count is bounded by available memory, well under uint32 max
	return Handle(uint64(gen)<<32 | uint64(uint32(index+1)))
}

func (h Handle) index() int { return int(uint32(h)) - 1 }
func (h Handle) generation() uint32 { return uint32(h >> 32) }

// String returns a debug representation of the handle.
func (h Handle) String() string {
	return fmt.Sprintf("handle(%d#%d)", h.index(), h.generation())
}

// Kind identifies what a handle refers to.
type Kind uint8

const (
	// KindNone marks a free slot.
	KindNone Kind = iota
	// KindBuilder refers to a *tess.PathBuilder.
	KindBuilder
	// KindPath refers to an immutable *tess.Path.
	KindPath
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBuilder:
		return "builder"
	case KindPath:
		return "path"
	default:
		return "none"
	}
}

type slot struct {
	kind    Kind
	gen     uint32
	builder *tess.PathBuilder
	path    *tess.Path
}

// Table owns builders and paths on behalf of handle holders.
//
// Table is safe for concurrent use. Commands on one builder handle are
// applied in the order the table receives them; ordering across goroutines
// is the caller's concern.
type Table struct {
	mu    sync.Mutex
	slots []slot
	free  []int
	live  int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{slots: make([]slot, 0, 16)}
}

// alloc stores s in a free slot and returns its handle. Caller holds mu.
func (t *Table) alloc(s slot) Handle {
	var index int
	if n := len(t.free); n > 0 {
		index = t.free[n-1]
		t.free = t.free[:n-1]
		s.gen = t.slots[index].gen + 1
		if s.gen == 0 {
			s.gen = 1
		}
		t.slots[index] = s
	} else {
		index = len(t.slots)
		s.gen = 1
		t.slots = append(t.slots, s)
	}
	t.live++
	return makeHandle(index, s.gen)
}

// lookup returns the live slot of h. Caller holds mu.
func (t *Table) lookup(h Handle) (*slot, error) {
	i := h.index()
	if i < 0 || i >= len(t.slots) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHandle, h)
	}
	s := &t.slots[i]
	if s.kind == KindNone || s.gen != h.generation() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHandle, h)
	}
	return s, nil
}

// lookupKind returns the live slot of h if it has kind k. Caller holds mu.
func (t *Table) lookupKind(h Handle, k Kind) (*slot, error) {
	s, err := t.lookup(h)
	if err != nil {
		return nil, err
	}
	if s.kind != k {
		return nil, fmt.Errorf("%w: %v is a %v, want %v", ErrWrongKind, h, s.kind, k)
	}
	return s, nil
}

// withBuilder runs fn on the builder of h while holding the table lock.
func (t *Table) withBuilder(h Handle, fn func(b *tess.PathBuilder) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.lookupKind(h, KindBuilder)
	if err != nil {
		return err
	}
	return fn(s.builder)
}

// Kind returns the kind of a live handle.
func (t *Table) Kind(h Handle) (Kind, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.lookup(h)
	if err != nil {
		return KindNone, err
	}
	return s.kind, nil
}

// NewBuilder creates an empty path builder and returns its handle.
func (t *Table) NewBuilder() Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.alloc(slot{kind: KindBuilder, builder: tess.NewPathBuilder()})
}

// Begin starts a sub-path on the builder h.
func (t *Table) Begin(h Handle, x, y float64) error {
	return t.withBuilder(h, func(b *tess.PathBuilder) error { return b.Begin(x, y) })
}

// LineTo appends a line to the builder h.
func (t *Table) LineTo(h Handle, x, y float64) error {
	return t.withBuilder(h, func(b *tess.PathBuilder) error { return b.LineTo(x, y) })
}

// CubicTo appends a cubic curve to the builder h.
func (t *Table) CubicTo(h Handle, x1, y1, x2, y2, x3, y3 float64) error {
	return t.withBuilder(h, func(b *tess.PathBuilder) error { return b.CubicTo(x1, y1, x2, y2, x3, y3) })
}

// End ends the open sub-path of the builder h.
func (t *Table) End(h Handle, closeIt bool) error {
	return t.withBuilder(h, func(b *tess.PathBuilder) error { return b.End(closeIt) })
}

// Build finalizes the builder h into a new path handle. The builder stays
// live and empty, ready for an unrelated path.
func (t *Table) Build(h Handle) (Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.lookupKind(h, KindBuilder)
	if err != nil {
		return Invalid, err
	}
	path := s.builder.Build()
	return t.alloc(slot{kind: KindPath, path: path}), nil
}

// Path returns the path of the path handle h.
func (t *Table) Path(h Handle) (*tess.Path, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.lookupKind(h, KindPath)
	if err != nil {
		return nil, err
	}
	return s.path, nil
}

// resolve returns the path to tessellate for h: the path itself, or a
// snapshot of a builder.
func (t *Table) resolve(h Handle) (*tess.Path, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.lookup(h)
	if err != nil {
		return nil, err
	}
	if s.kind == KindBuilder {
		return s.builder.Snapshot(), nil
	}
	return s.path, nil
}

// Tessellate fills the path behind h. A builder handle is tessellated from
// a snapshot of its current state and is not consumed.
//
// The table lock is released before tessellating, so long tessellations do
// not block other handles.
func (t *Table) Tessellate(h Handle, opts ...tess.FillOption) (*tess.VertexBuffers, error) {
	path, err := t.resolve(h)
	if err != nil {
		return nil, err
	}
	return tess.Tessellate(path, opts...)
}

// Counts tessellates h and returns the vertex and index counts.
func (t *Table) Counts(h Handle, opts ...tess.FillOption) (vertices, indices int, err error) {
	buf, err := t.Tessellate(h, opts...)
	if err != nil {
		return 0, 0, err
	}
	tess.Logger().Debug("handle: tessellated",
		"handle", h,
		"vertices", len(buf.Vertices),
		"indices", len(buf.Indices))
	return len(buf.Vertices), len(buf.Indices), nil
}

// Release frees h. Its slot may be reused with a new generation; h itself
// stays invalid.
func (t *Table) Release(h Handle) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.lookup(h)
	if err != nil {
		return err
	}
	s.kind = KindNone
	s.builder = nil
	s.path = nil
	t.free = append(t.free, h.index())
	t.live--
	return nil
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.live
}
