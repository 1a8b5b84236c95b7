package params

type InversionConfig struct {
	// Atol is the absolute tolerance for matching a sampled function value
	// against a target value or range. It widens the target band on both
	// sides: target.Lo - Atol <= y <= target.Hi + Atol.
	Atol float64

	// MinCubicPoints is the segment size below which a cubic inverse
	// falls back to linear interpolation.
	MinCubicPoints int
}

var DefaultInversionConfig = &InversionConfig{
	Atol:           1e-3,
	MinCubicPoints: 4,
}

type ScanConfig struct {
	// Samples is the number of delta samples per sweep.
	// Use an odd count to hit delta=0 exactly.
	Samples int

	// DeltaMax bounds the magnitude of the scanned mixing ratio.
	// The sampling grid is uniform in arctan(delta) over
	// [-arctan(DeltaMax), arctan(DeltaMax)], so the unbounded tails
	// beyond it are compressed, not truncated arbitrarily: density
	// concentrates near delta=0 where the observable varies fastest.
	DeltaMax float64

	// Atol is the absolute tolerance for matching observables.
	Atol float64

	// Workers partitions the sweep across goroutines.
	// Results are independent of the worker count.
	Workers int
}

var DefaultScanConfig = &ScanConfig{
	Samples:  1001,
	DeltaMax: 100.0,
	Atol:     1e-3,
	Workers:  1,
}
