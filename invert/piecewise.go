package invert

import (
	"fmt"
	"log/slog"

	"github.com/rotblauer/deltafit/curve"
	"github.com/rotblauer/deltafit/params"
	"gonum.org/v1/gonum/interp"
)

type Kind int

const (
	Linear Kind = iota
	Cubic
)

func (k Kind) String() string {
	switch k {
	case Cubic:
		return "cubic"
	default:
		return "linear"
	}
}

// branch is one monotonic inverse mapping y -> x, valid on [yLo, yHi].
type branch struct {
	yLo, yHi float64
	pred     interp.Predictor
}

// Piecewise inverts a sampled curve by its monotonic branches.
// The curve is segmented at its local extrema; each segment gets its own
// inverse interpolation, and a query tries every branch independently.
// That is the whole trick for non-injective functions: a horizontal line
// may cut the curve once per branch.
type Piecewise struct {
	branches []branch
}

// NewPiecewise builds the per-segment inverse interpolations for c.
// Cubic branches use monotone (Fritsch-Butland) splines; segments with
// fewer than params.DefaultInversionConfig.MinCubicPoints distinct points
// fall back to linear with a warning. A curve with no extrema degenerates
// to a single branch, i.e. plain 1-D inverse interpolation.
func NewPiecewise(c *curve.Curve, kind Kind) (*Piecewise, error) {
	if len(c.X) != len(c.Y) {
		return nil, fmt.Errorf("piecewise inversion: %w", curve.ErrShapeMismatch)
	}
	p := &Piecewise{}
	for _, b := range curve.SegmentBounds(c.Extrema(), c.Len()) {
		br, ok := newBranch(c.X[b[0]:b[1]+1], c.Y[b[0]:b[1]+1], kind)
		if ok {
			p.branches = append(p.branches, br)
		}
	}
	return p, nil
}

// Branches returns the number of monotonic inverse branches.
func (p *Piecewise) Branches() int {
	return len(p.branches)
}

// Invert returns every x at which the interpolated curve takes the value
// y0, one candidate per monotonic branch whose observed y-range contains
// y0. Branches not containing y0 contribute nothing; that is the normal
// outcome, not an error, and an empty result means y0 is unattained.
func (p *Piecewise) Invert(y0 float64) []float64 {
	out := []float64{}
	for _, br := range p.branches {
		// Containment is checked up front; no fallible-call-and-recover.
		// The positive form also rejects a NaN query.
		if !(y0 >= br.yLo && y0 <= br.yHi) {
			continue
		}
		v := br.pred.Predict(y0)
		// Adjacent branches share their boundary extremum sample, so a
		// query hitting that sample's value exactly would be reported
		// once per side. Both sides predict the identical x there.
		if len(out) > 0 && v == out[len(out)-1] {
			continue
		}
		out = append(out, v)
	}
	return out
}

// newBranch fits one inverse y -> x over a monotonic segment.
// The segment is oriented ascending in y, and consecutive equal y samples
// (plateau interiors) are collapsed to their first point so the fit input
// is strictly increasing. Segments without two distinct y values are flat
// and uninvertible; they contribute no branch.
func newBranch(xs, ys []float64, kind Kind) (branch, bool) {
	n := len(ys)
	if n < 2 {
		return branch{}, false
	}

	py := make([]float64, 0, n)
	px := make([]float64, 0, n)
	if ys[n-1] < ys[0] {
		for i := n - 1; i >= 0; i-- {
			if len(py) > 0 && ys[i] == py[len(py)-1] {
				continue
			}
			py = append(py, ys[i])
			px = append(px, xs[i])
		}
	} else {
		for i := 0; i < n; i++ {
			if len(py) > 0 && ys[i] == py[len(py)-1] {
				continue
			}
			py = append(py, ys[i])
			px = append(px, xs[i])
		}
	}
	if len(py) < 2 {
		return branch{}, false
	}

	k := kind
	if k == Cubic && len(py) < params.DefaultInversionConfig.MinCubicPoints {
		slog.Warn("Inverse segment too short for cubic, falling back to linear",
			"points", len(py))
		k = Linear
	}

	var fp interp.FittablePredictor
	switch k {
	case Cubic:
		fp = &interp.FritschButland{}
	default:
		fp = &interp.PiecewiseLinear{}
	}
	if err := fp.Fit(py, px); err != nil {
		return branch{}, false
	}
	return branch{yLo: py[0], yHi: py[len(py)-1], pred: fp}, true
}
