package tess

// Default fill parameters.
const (
	// DefaultTolerance is the flattening tolerance used when WithTolerance
	// is not given.
	DefaultTolerance = 0.1

	// DefaultFillRule is the fill rule used when WithFillRule is not given.
	DefaultFillRule = FillRuleEvenOdd
)

// FillOption configures a Tessellate call.
//
// Example:
//
//	// Defaults: even-odd, tolerance 0.1
//	buf, err := tess.Tessellate(path)
//
//	// Non-zero winding with a finer tolerance
//	buf, err := tess.Tessellate(path,
//	    tess.WithFillRule(tess.FillRuleNonZero),
//	    tess.WithTolerance(0.01))
type FillOption func(*fillOptions)

// fillOptions holds the resolved configuration of a Tessellate call.
type fillOptions struct {
	rule      FillRule
	tolerance float64
}

// defaultFillOptions returns the default fill options.
func defaultFillOptions() fillOptions {
	return fillOptions{
		rule:      DefaultFillRule,
		tolerance: DefaultTolerance,
	}
}

// resolveFillOptions applies opts over the defaults.
func resolveFillOptions(opts []FillOption) fillOptions {
	o := defaultFillOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithFillRule sets the rule that decides which regions are inside.
func WithFillRule(rule FillRule) FillOption {
	return func(o *fillOptions) {
		o.rule = rule
	}
}

// WithTolerance sets the maximum distance between a curve and the lines
// that replace it. Smaller values produce more vertices. The tolerance must
// be positive and finite.
func WithTolerance(tolerance float64) FillOption {
	return func(o *fillOptions) {
		o.tolerance = tolerance
	}
}
