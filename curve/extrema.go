package curve

// ExtremaIndices returns the interior indices of y at which the sequence
// changes monotonic direction, in ascending order.
//
// Runs of equal consecutive values are treated as a single point: each
// candidate is compared against the nearest differing value on either side,
// not its immediate neighbors, and a qualifying plateau is reported once,
// by its first index. A sequence that is constant from some index to the
// end reports no extrema from that point on.
//
// One pass, three rolling cursors (last distinct value, run start, run end).
// Sequences shorter than 3 have no interior and return an empty slice.
func ExtremaIndices(y []float64) []int {
	indices := []int{}
	n := len(y)
	if n < 3 {
		return indices
	}

	prev := y[0]
	i := 1
	for i < n && y[i] == prev {
		i++
	}
	for i <= n-2 {
		// j: first index after the run containing i with a differing value.
		j := i + 1
		for j < n && y[j] == y[i] {
			j++
		}
		if j == n {
			break // constant tail
		}
		if (y[i]-prev)*(y[i]-y[j]) > 0 {
			indices = append(indices, i)
		}
		prev = y[i]
		i = j
	}
	return indices
}

// SegmentBounds splits [0, n-1] at the given extrema indices into inclusive
// index ranges over which y is monotonic. Adjacent segments share their
// boundary extremum, so every segment spans at least two indices.
// With no extrema there is a single segment covering the whole range.
func SegmentBounds(extrema []int, n int) [][2]int {
	if n < 2 {
		return nil
	}
	bounds := make([][2]int, 0, len(extrema)+1)
	start := 0
	for _, e := range extrema {
		bounds = append(bounds, [2]int{start, e})
		start = e
	}
	bounds = append(bounds, [2]int{start, n - 1})
	return bounds
}
