// Package invert answers "which inputs produce this output" for sampled,
// possibly non-injective scalar functions.
//
// Two strategies are provided. Grid inversion (this file) tests existing
// samples against a tolerance band and never interpolates between them;
// it is the right tool when every sample costs an external physical-model
// evaluation and the grid is already dense. Piecewise inversion
// (piecewise.go) interpolates one monotonic inverse per segment between
// extrema, and so can answer between grid points.
package invert

import (
	"fmt"

	"github.com/rotblauer/deltafit/curve"
	"github.com/rotblauer/deltafit/interval"
)

// Target is a closed band [Lo, Hi] of function values to invert.
// A single value is the degenerate band Lo == Hi.
type Target struct {
	Lo float64
	Hi float64
}

// Value targets a single function value.
func Value(v float64) Target {
	return Target{Lo: v, Hi: v}
}

// Range targets a band of function values; bounds may come in either order.
func Range(a, b float64) Target {
	if b < a {
		a, b = b, a
	}
	return Target{Lo: a, Hi: b}
}

// Matches reports whether y falls in the band widened by atol on both
// sides. Written so that a NaN or infinite y never matches; degenerate
// external evaluations flow through here as ordinary non-matches.
func (t Target) Matches(y, atol float64) bool {
	return y >= t.Lo-atol && y <= t.Hi+atol
}

// Mask classifies every sample of fx against the target band.
func Mask(fx []float64, t Target, atol float64) []bool {
	mask := make([]bool, len(fx))
	for i, y := range fx {
		mask[i] = t.Matches(y, atol)
	}
	return mask
}

// Grid returns the x values of all samples whose fx falls in the target
// band, order preserved. No interpolation between samples.
func Grid(c *curve.Curve, t Target, atol float64) ([]float64, error) {
	if len(c.X) != len(c.Y) {
		return nil, fmt.Errorf("grid inversion: %w", curve.ErrShapeMismatch)
	}
	out := []float64{}
	for i, y := range c.Y {
		if t.Matches(y, atol) {
			out = append(out, c.X[i])
		}
	}
	return out, nil
}

// GridIntervals is Grid with the matching samples coalesced into closed
// contiguous intervals of x.
func GridIntervals(c *curve.Curve, t Target, atol float64) ([]interval.Interval, error) {
	if len(c.X) != len(c.Y) {
		return nil, fmt.Errorf("grid inversion: %w", curve.ErrShapeMismatch)
	}
	return Coalesce(c.X, Mask(c.Y, t, atol)), nil
}

// Coalesce turns a per-sample boolean match mask into the minimal list of
// closed intervals [x[i], x[j]] covering each maximal run of consecutive
// matches. A run of one sample yields a degenerate interval. A run still
// open at the last sample closes with exactly the last sample's x; the
// final grid point is inclusive.
//
// Must always run sequentially over the complete mask in index order, even
// when the mask itself was filled by parallel workers, so that runs
// spanning a partition boundary coalesce correctly.
func Coalesce(x []float64, mask []bool) []interval.Interval {
	intervals := []interval.Interval{}
	open := false
	var start float64
	for i, matching := range mask {
		if matching && !open {
			start = x[i]
			open = true
		}
		if !matching && open {
			intervals = append(intervals, interval.Interval{Lo: start, Hi: x[i-1]})
			open = false
		}
		if i == len(mask)-1 && open {
			intervals = append(intervals, interval.Interval{Lo: start, Hi: x[len(x)-1]})
		}
	}
	return intervals
}
