package curve

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned when paired sample slices disagree in length.
// It is the only fatal condition in the inversion engine; everything else
// degrades to an empty result.
var ErrShapeMismatch = errors.New("x and y must have equal length")

// Curve is a sampled scalar function y = f(x).
// X is assumed ascending; it is never re-sorted.
// f may be non-injective, that's the whole point.
type Curve struct {
	X []float64
	Y []float64
}

func New(x, y []float64) (*Curve, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w (len(x)=%d len(y)=%d)", ErrShapeMismatch, len(x), len(y))
	}
	return &Curve{X: x, Y: y}, nil
}

func (c *Curve) Len() int {
	return len(c.X)
}

// Extrema returns the indices of the curve's interior local extrema.
func (c *Curve) Extrema() []int {
	return ExtremaIndices(c.Y)
}

// Sample evaluates fn on every point of grid and returns the pairing
// as a Curve.
func Sample(grid []float64, fn func(float64) float64) *Curve {
	y := make([]float64, len(grid))
	for i, x := range grid {
		y[i] = fn(x)
	}
	return &Curve{X: grid, Y: y}
}
