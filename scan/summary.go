package scan

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Summary describes the observable values a sweep actually attained.
// Useful before choosing a target: a measured value outside
// [Min-atol, Max+atol] cannot match any mixing ratio at this sampling
// density, and that is worth knowing up front.
type Summary struct {
	Samples   int
	NonFinite int
	Min       float64
	Max       float64
	Mean      float64
	Median    float64
	StdDev    float64
}

// Summary computes observable statistics over the finite samples of the
// sweep. Non-finite samples (degenerate physical configurations) are
// counted and excluded; a sweep with no finite samples returns the zero
// Summary and the stats error.
func (sw *Sweep) Summary() (Summary, error) {
	finite := make([]float64, 0, len(sw.Observables))
	nonFinite := 0
	for _, v := range sw.Observables {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			nonFinite++
			continue
		}
		finite = append(finite, v)
	}
	s := Summary{Samples: len(sw.Observables), NonFinite: nonFinite}

	var err error
	if s.Min, err = stats.Min(finite); err != nil {
		return Summary{Samples: s.Samples, NonFinite: nonFinite}, err
	}
	if s.Max, err = stats.Max(finite); err != nil {
		return s, err
	}
	if s.Mean, err = stats.Mean(finite); err != nil {
		return s, err
	}
	if s.Median, err = stats.Median(finite); err != nil {
		return s, err
	}
	if s.StdDev, err = stats.StandardDeviation(finite); err != nil {
		return s, err
	}
	return s, nil
}
