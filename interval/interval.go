// Package interval is closed-interval algebra over float64.
//
// It is the set-combination layer for joining constraints from independent
// measurements: each measurement yields a list of intervals of allowed
// mixing ratios, and their pairwise intersection is the jointly allowed
// region. Emptiness is represented by absence (an ok=false return or an
// empty list), never by a sentinel interval, so a degenerate [v, v]
// interval remains a meaningful single-point solution.
package interval

import (
	"encoding/json"
	"fmt"
)

// Interval is a closed range [Lo, Hi], Lo <= Hi.
type Interval struct {
	Lo float64
	Hi float64
}

// New returns the closed interval spanning a and b, in either order.
func New(a, b float64) Interval {
	if b < a {
		a, b = b, a
	}
	return Interval{Lo: a, Hi: b}
}

// Degenerate reports whether the interval is a single point.
func (iv Interval) Degenerate() bool {
	return iv.Lo == iv.Hi
}

// Contains uses inclusive comparisons on both bounds.
func (iv Interval) Contains(v float64) bool {
	return v >= iv.Lo && v <= iv.Hi
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%g, %g]", iv.Lo, iv.Hi)
}

// MarshalJSON encodes the interval as a two-element array [lo, hi],
// the interchange form consumed by plotting and reporting tools.
func (iv Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{iv.Lo, iv.Hi})
}

func (iv *Interval) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	*iv = New(pair[0], pair[1])
	return nil
}

// Intersect returns the overlap of a and b.
// Comparisons are inclusive: intervals that touch at a single bound
// intersect to the degenerate interval at that bound, not to nothing.
// Boundary solutions of a mixing-ratio search survive on purpose.
func Intersect(a, b Interval) (Interval, bool) {
	if a.Lo > b.Hi || b.Lo > a.Hi {
		return Interval{}, false
	}
	lo := a.Lo
	if b.Lo > lo {
		lo = b.Lo
	}
	hi := a.Hi
	if b.Hi < hi {
		hi = b.Hi
	}
	return Interval{Lo: lo, Hi: hi}, true
}

// IntersectList intersects a with every element of list, in list order,
// keeping only the non-empty overlaps.
func IntersectList(a Interval, list []Interval) []Interval {
	out := []Interval{}
	for _, b := range list {
		if overlap, ok := Intersect(a, b); ok {
			out = append(out, overlap)
		}
	}
	return out
}

// IntersectLists intersects every interval of l1 with every interval of l2:
// for each element of l1, in order, the non-empty overlaps against l2 are
// appended in l2's order. The output is not canonicalized; overlapping or
// adjacent results are left as produced, and callers must not assume
// pairwise disjointness beyond what the inputs imply.
func IntersectLists(l1, l2 []Interval) []Interval {
	out := []Interval{}
	for _, a := range l1 {
		out = append(out, IntersectList(a, l2)...)
	}
	return out
}
