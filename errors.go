package tess

import "errors"

// Sentinel errors for the tess package.
var (
	// ErrSequence matches every *SequenceError via errors.Is.
	ErrSequence = errors.New("tess: invalid command sequence")

	// ErrTessellation is wrapped by every failure of Tessellate.
	// No buffers are returned alongside it.
	ErrTessellation = errors.New("tess: tessellation failed")

	// ErrInvalidTolerance is returned when the flattening tolerance is not
	// a positive finite number.
	ErrInvalidTolerance = errors.New("tess: tolerance must be positive and finite")

	// ErrInvalidFillRule is returned for a FillRule outside the defined set.
	ErrInvalidFillRule = errors.New("tess: unknown fill rule")

	// ErrNonFinite is returned when a path contains a NaN or infinite
	// coordinate, or one whose magnitude exceeds math.MaxFloat32.
	ErrNonFinite = errors.New("tess: coordinate is not a finite float32")
)

// SequenceError is returned when a PathBuilder command is issued in a state
// that does not accept it, for example LineTo before Begin.
type SequenceError struct {
	// Op is the rejected command ("Begin", "LineTo", ...).
	Op string
	// State is the builder state at the time of the call.
	State BuilderState
}

func (e *SequenceError) Error() string {
	if e.State == StateIdle {
		return "tess: " + e.Op + " requires an open sub-path (call Begin first)"
	}
	return "tess: " + e.Op + " called while a sub-path is open (call End first)"
}

// Is reports whether target is ErrSequence.
func (e *SequenceError) Is(target error) bool {
	return target == ErrSequence
}
