// Package scan sweeps an external physical model over the real line of
// multipole mixing ratios and reduces the results to the ratios (or
// intervals of ratios) consistent with a measured observable.
//
// The model is opaque: an Evaluator takes the resolved slot values and
// returns one scalar observable. Everything else, sampling strategy,
// tolerance matching, interval coalescing, lives here.
package scan

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/rotblauer/deltafit/cache"
	"github.com/rotblauer/deltafit/interval"
	"github.com/rotblauer/deltafit/invert"
	"github.com/rotblauer/deltafit/params"
)

// Evaluator computes the observable for one fully resolved set of slot
// values. It is the external, already-validated physical model; this
// package never looks inside it. A NaN or Inf return (degenerate physical
// configuration, e.g. both reference rates vanish) is not an error: the
// sample just never matches anything.
type Evaluator func(values []float64) float64

var (
	evalMeter     = metrics.GetOrRegisterCounter("deltafit/scan/evals", nil)
	cacheHitMeter = metrics.GetOrRegisterCounter("deltafit/scan/cache/hits", nil)
)

// CompressedGrid returns n mixing-ratio samples spanning [-max, max],
// evenly spaced in arctan(delta) and mapped back through tan.
//
// A raw equidistant grid would waste nearly all its resolution in the
// tails, where the observable saturates toward its pure-multipole limit.
// Compression concentrates samples near delta=0, where two multipoles
// compete head to head and the observable varies fastest. The grid is
// built symmetric; an odd n includes delta=0 exactly, which an even n
// cannot, hence the warning.
func CompressedGrid(n int, max float64) []float64 {
	if n < 2 {
		slog.Warn("Sampling grid has fewer than 2 points", "n", n)
	} else if n%2 == 0 {
		slog.Warn("Even-sized sampling grid omits the delta=0 sample", "n", n)
	}
	if n <= 0 {
		return []float64{}
	}
	a := math.Atan(max)
	if n == 1 {
		return []float64{math.Tan(-a)}
	}
	out := make([]float64, n)
	step := 2 * a / float64(n-1)
	for i := 0; i < n/2; i++ {
		v := math.Tan(-a + step*float64(i))
		out[i] = v
		out[n-1-i] = -v
	}
	if n%2 == 1 {
		out[n/2] = 0
	}
	return out
}

// Progress reports sweep completion, sent on the Scanner's feed as worker
// partitions finish. Advisory only.
type Progress struct {
	Done  int
	Total int
}

// Scanner sweeps an Evaluator over a compressed mixing-ratio grid.
type Scanner struct {
	Eval   Evaluator
	Slots  []Slot
	Config *params.ScanConfig

	// Cache, when set together with Tag, persists sweeps keyed by
	// (Tag, Samples, DeltaMax). Tag must identify the evaluator and its
	// fixed slots; the hash cannot see inside function values.
	Cache *cache.SweepCache
	Tag   string

	progress event.FeedOf[Progress]
}

func NewScanner(eval Evaluator, slots []Slot, cfg *params.ScanConfig) *Scanner {
	if cfg == nil {
		cfg = params.DefaultScanConfig
	}
	return &Scanner{Eval: eval, Slots: slots, Config: cfg}
}

// ProgressFeed exposes the sweep progress feed for subscription.
func (s *Scanner) ProgressFeed() *event.FeedOf[Progress] {
	return &s.progress
}

type sweepKey struct {
	Tag      string
	Samples  int
	DeltaMax float64
}

// Sweep evaluates the model at every grid sample and returns the paired
// (delta, observable) samples. The sweep is partitioned across
// Config.Workers goroutines; each sample writes a disjoint output slot,
// so results are identical for any worker count. On cancellation no
// partial sweep is returned.
func (s *Scanner) Sweep(ctx context.Context) (*Sweep, error) {
	cfg := s.Config
	deltas := CompressedGrid(cfg.Samples, cfg.DeltaMax)
	n := len(deltas)

	if s.Cache != nil && s.Tag != "" {
		if key, err := cache.Key(sweepKey{s.Tag, cfg.Samples, cfg.DeltaMax}); err == nil {
			if rec, ok := s.Cache.Get(key); ok {
				cacheHitMeter.Inc(1)
				return &Sweep{Deltas: rec.Deltas, Observables: rec.Observables}, nil
			}
		}
	}

	observables := make([]float64, n)
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > n && n > 0 {
		workers = n
	}

	var wg sync.WaitGroup
	var done atomic.Int64
	var canceled atomic.Bool
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo, hi := w*chunk, (w+1)*chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			values := make([]float64, len(s.Slots))
			for i := lo; i < hi; i++ {
				select {
				case <-ctx.Done():
					canceled.Store(true)
					return
				default:
				}
				resolveAll(values, s.Slots, deltas[i])
				observables[i] = s.Eval(values)
			}
			evalMeter.Inc(int64(hi - lo))
			s.progress.Send(Progress{Done: int(done.Add(int64(hi - lo))), Total: n})
		}(lo, hi)
	}
	wg.Wait()
	if canceled.Load() {
		return nil, ctx.Err()
	}

	sw := &Sweep{Deltas: deltas, Observables: observables}
	if s.Tag != "" {
		cache.SetLastSweep(s.Tag, &cache.SweepRecord{Deltas: deltas, Observables: observables})
		if s.Cache != nil {
			if key, err := cache.Key(sweepKey{s.Tag, cfg.Samples, cfg.DeltaMax}); err == nil {
				if err := s.Cache.Put(key, &cache.SweepRecord{Deltas: deltas, Observables: observables}); err != nil {
					slog.Error("Failed to persist sweep", "tag", s.Tag, "error", err)
				}
			}
		}
	}
	return sw, nil
}

// Find sweeps and matches in one call, returning the mixing ratios whose
// observable lands in the target band, along with the full match mask.
func (s *Scanner) Find(ctx context.Context, target invert.Target) ([]float64, []bool, error) {
	sw, err := s.Sweep(ctx)
	if err != nil {
		return nil, nil, err
	}
	deltas, mask := sw.Match(target, s.Config.Atol)
	return deltas, mask, nil
}

// FindIntervals is Find with the matches coalesced into contiguous
// intervals of mixing ratio.
func (s *Scanner) FindIntervals(ctx context.Context, target invert.Target) ([]interval.Interval, error) {
	sw, err := s.Sweep(ctx)
	if err != nil {
		return nil, err
	}
	return sw.MatchIntervals(target, s.Config.Atol), nil
}

// Sweep is a completed sweep: sampled mixing ratios and the observable
// the model produced at each.
type Sweep struct {
	Deltas      []float64
	Observables []float64
}

// Match classifies every sample against the target band widened by atol,
// returning the matching mixing ratios and the full boolean mask.
// Non-finite observables never match.
func (sw *Sweep) Match(target invert.Target, atol float64) ([]float64, []bool) {
	mask := invert.Mask(sw.Observables, target, atol)
	matches := []float64{}
	for i, ok := range mask {
		if ok {
			matches = append(matches, sw.Deltas[i])
		}
	}
	return matches, mask
}

// MatchIntervals coalesces the match mask into closed contiguous
// intervals of mixing ratio, sequentially over the whole mask, with the
// same final-sample closure rule as grid inversion.
func (sw *Sweep) MatchIntervals(target invert.Target, atol float64) []interval.Interval {
	mask := invert.Mask(sw.Observables, target, atol)
	return invert.Coalesce(sw.Deltas, mask)
}
