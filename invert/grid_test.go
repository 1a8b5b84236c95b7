package invert

import (
	"math"
	"reflect"
	"testing"

	"github.com/rotblauer/deltafit/curve"
	"github.com/rotblauer/deltafit/interval"
)

// identityCurve samples f(x) = x at 101 points over [0, 1].
// Built by integer division so grid values like 0.3 and 0.5 land on the
// same float64 bits as their literals.
func identityCurve() *curve.Curve {
	x := make([]float64, 101)
	for i := range x {
		x[i] = float64(i) / 100
	}
	y := make([]float64, 101)
	copy(y, x)
	return &curve.Curve{X: x, Y: y}
}

func TestGrid_ShapeMismatch(t *testing.T) {
	c := &curve.Curve{X: []float64{0, 1}, Y: []float64{0}}
	if _, err := Grid(c, Value(0), 1e-3); err == nil {
		t.Errorf("Expected shape error")
	}
	if _, err := GridIntervals(c, Value(0), 1e-3); err == nil {
		t.Errorf("Expected shape error")
	}
}

func TestGrid_Identity(t *testing.T) {
	c := identityCurve()

	got, err := Grid(c, Value(0.5), 1e-3)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []float64{0.5}) {
		t.Errorf("Grid(0.5, atol=1e-3) = %v, want [0.5]", got)
	}

	got, err = Grid(c, Value(0.5), 0.01)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("Grid(0.5, atol=0.01) returned %d points (%v), want 3", len(got), got)
	}

	got, err = Grid(c, Range(0.5, 0.3), 1e-3) // reversed on purpose
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 21 {
		t.Errorf("Grid([0.3, 0.5]) returned %d points, want 21", len(got))
	}
	if got[0] != 0.3 || got[len(got)-1] != 0.5 {
		t.Errorf("Grid([0.3, 0.5]) spans [%v, %v]", got[0], got[len(got)-1])
	}

	ivs, err := GridIntervals(c, Range(0.3, 0.5), 1e-3)
	if err != nil {
		t.Fatal(err)
	}
	want := []interval.Interval{{Lo: 0.3, Hi: 0.5}}
	if !reflect.DeepEqual(ivs, want) {
		t.Errorf("GridIntervals = %v, want %v", ivs, want)
	}
}

func TestGrid_NonFiniteNeverMatches(t *testing.T) {
	c := &curve.Curve{
		X: []float64{0, 1, 2, 3},
		Y: []float64{0.5, math.NaN(), math.Inf(1), 0.5},
	}
	got, err := Grid(c, Value(0.5), 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []float64{0, 3}) {
		t.Errorf("Grid with NaN/Inf samples = %v, want [0 3]", got)
	}
}

func TestCoalesce(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5}

	cases := []struct {
		name string
		mask []bool
		want []interval.Interval
	}{
		{
			"two runs",
			[]bool{true, true, false, true, false, false},
			[]interval.Interval{{Lo: 0, Hi: 1}, {Lo: 3, Hi: 3}},
		},
		{
			"none",
			[]bool{false, false, false, false, false, false},
			[]interval.Interval{},
		},
		{
			"all",
			[]bool{true, true, true, true, true, true},
			[]interval.Interval{{Lo: 0, Hi: 5}},
		},
		{
			"single first",
			[]bool{true, false, false, false, false, false},
			[]interval.Interval{{Lo: 0, Hi: 0}},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Coalesce(x, c.mask)
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("Coalesce(%v) = %v, want %v", c.mask, got, c.want)
			}
		})
	}
}

// A run still open at the final sample must close with exactly the final
// sample's x. Easy to get off by one; pinned here on its own.
func TestCoalesce_RunToFinalSample(t *testing.T) {
	x := []float64{0, 1, 2, 3}

	got := Coalesce(x, []bool{false, false, true, true})
	want := []interval.Interval{{Lo: 2, Hi: 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Coalesce run-to-end = %v, want %v", got, want)
	}

	// Degenerate run consisting of only the final sample.
	got = Coalesce(x, []bool{false, false, false, true})
	want = []interval.Interval{{Lo: 3, Hi: 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Coalesce final-sample-only = %v, want %v", got, want)
	}
}

func TestTargetMatches(t *testing.T) {
	tg := Range(0, 1)
	if tg.Matches(math.NaN(), 1e9) {
		t.Errorf("NaN must never match")
	}
	if tg.Matches(math.Inf(1), 1e9) {
		// Inf matches only if Hi+atol overflows to Inf; with finite
		// bounds and tolerance it must not.
		t.Errorf("Inf must not match a finite band")
	}
	if !tg.Matches(1.0005, 1e-3) {
		t.Errorf("Band widening by atol failed at upper bound")
	}
}
