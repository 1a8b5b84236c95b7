package cmd

import (
	"fmt"
	"testing"
)

func TestDedupePassLRU(t *testing.T) {
	line := []byte(`{"x":0.1,"y":0.25}`)
	if !dedupePassLRU(line) {
		t.Errorf("First sighting should pass")
	}
	if dedupePassLRU(line) {
		t.Errorf("Second sighting should be dropped")
	}
	if !dedupePassLRU([]byte(`{"x":0.2,"y":0.25}`)) {
		t.Errorf("Distinct line should pass")
	}
}

func TestTargetFromFlag(t *testing.T) {
	for _, tc := range []struct {
		vals   []float64
		lo, hi float64
		err    bool
	}{
		{vals: []float64{0.25}, lo: 0.25, hi: 0.25},
		{vals: []float64{0.5, 0.3}, lo: 0.3, hi: 0.5},
		{vals: nil, err: true},
		{vals: []float64{1, 2, 3}, err: true},
	} {
		t.Run(fmt.Sprintf("%v", tc.vals), func(t *testing.T) {
			got, err := targetFromFlag(tc.vals)
			if tc.err {
				if err == nil {
					t.Errorf("Expected error for %v", tc.vals)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.Lo != tc.lo || got.Hi != tc.hi {
				t.Errorf("Got [%v, %v], want [%v, %v]", got.Lo, got.Hi, tc.lo, tc.hi)
			}
		})
	}
}
