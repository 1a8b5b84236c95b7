/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/golang/groupcache/lru"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/rotblauer/deltafit/common"
	"github.com/rotblauer/deltafit/curve"
	"github.com/rotblauer/deltafit/invert"
	"github.com/rotblauer/deltafit/metrics/influxdb"
	"github.com/rotblauer/deltafit/params"
	"github.com/rotblauer/deltafit/scan"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var optTarget []float64
var optAtol float64
var optIntervals bool
var optInterpolate string
var optDedupe bool
var optExportInflux string

// invertCmd represents the invert command
var invertCmd = &cobra.Command{
	Use:   "invert",
	Short: "Find the inputs consistent with a target output",
	Long: `

Samples are decoded as JSON lines from stdin, {"x": ..., "y": ...},
x ascending, one evaluation of your external model per line.

By default the samples themselves are tested against the target band
(no interpolation between grid points; every sample already cost a model
evaluation, trust the grid). With --intervals, contiguous runs of
matching samples coalesce into closed [lo, hi] intervals of x.

With --interpolate linear|cubic, the curve is instead segmented at its
extrema and each monotonic branch is inverted by interpolation; the
target must then be a single value. Non-injective curves return one
solution per branch that attains the target.

Output is JSON on stdout. Duplicate input lines are dropped (see
--dedupe); NaN or Inf samples never match anything.

Flags:

  --target      One value, or two values for a band (unsorted is fine).
  --atol        Absolute tolerance widening the target band on both sides.
  --intervals   Coalesce matching samples into intervals.
  --interpolate ""|linear|cubic. Branch-wise interpolated inversion.
  --export      Run tag; export samples and match mask to InfluxDB
                (INFLUXDB_URL et al. from the environment).

Examples:

  deltafit grid | your-model | deltafit invert --target 0.25 --intervals
  deltafit invert --target 0.3,0.5 --atol 0.001 < samples.ndjson
`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)

		target, err := targetFromFlag(optTarget)
		if err != nil {
			log.Fatalln(err)
		}

		interrupt := common.Interrupted()
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

		var xs, ys []float64
		skipped := 0
	readLoop:
		for scanner.Scan() {
			select {
			case sig := <-interrupt:
				slog.Warn("Received signal", "signal", sig)
				break readLoop
			default:
			}
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}
			if optDedupe && !dedupePassLRU(line) {
				skipped++
				continue
			}
			x, y := gjson.GetBytes(line, "x"), gjson.GetBytes(line, "y")
			if !x.Exists() || !y.Exists() {
				slog.Warn("Skipping malformed sample line", "line", string(line))
				continue
			}
			xs = append(xs, x.Float())
			ys = append(ys, y.Float())
		}
		if err := scanner.Err(); err != nil {
			log.Fatalln(err)
		}

		c, err := curve.New(xs, ys)
		if err != nil {
			log.Fatalln(err)
		}

		enc := json.NewEncoder(os.Stdout)
		matched := 0
		switch optInterpolate {
		case "":
			mask := invert.Mask(c.Y, target, optAtol)
			for _, m := range mask {
				if m {
					matched++
				}
			}
			if optIntervals {
				ivs := invert.Coalesce(c.X, mask)
				if err := enc.Encode(ivs); err != nil {
					log.Fatalln(err)
				}
			} else {
				matches, err := invert.Grid(c, target, optAtol)
				if err != nil {
					log.Fatalln(err)
				}
				if err := enc.Encode(matches); err != nil {
					log.Fatalln(err)
				}
			}
			if optExportInflux != "" {
				sw := &scan.Sweep{Deltas: c.X, Observables: c.Y}
				if err := influxdb.ExportSweep(sw, mask, optExportInflux); err != nil {
					slog.Error("Influx export failed", "error", err)
				}
			}

		case "linear", "cubic":
			if target.Lo != target.Hi {
				log.Fatalln("interpolated inversion takes a single --target value")
			}
			kind := invert.Linear
			if optInterpolate == "cubic" {
				kind = invert.Cubic
			}
			p, err := invert.NewPiecewise(c, kind)
			if err != nil {
				log.Fatalln(err)
			}
			solutions := p.Invert(target.Lo)
			matched = len(solutions)
			if err := enc.Encode(solutions); err != nil {
				log.Fatalln(err)
			}

		default:
			log.Fatalf("unknown interpolation kind %q", optInterpolate)
		}

		pct := 0.0
		if c.Len() > 0 {
			pct = common.DecimalToFixed(float64(matched)/float64(c.Len())*100, 2)
		}
		slog.Info("Inverted",
			"samples", humanize.Comma(int64(c.Len())),
			"deduped", humanize.Comma(int64(skipped)),
			"matched", humanize.Comma(int64(matched)),
			"matched_pct", pct)
	},
}

func targetFromFlag(vals []float64) (invert.Target, error) {
	switch len(vals) {
	case 1:
		return invert.Value(vals[0]), nil
	case 2:
		return invert.Range(vals[0], vals[1]), nil
	}
	return invert.Target{}, fmt.Errorf("--target takes one value or two, got %d", len(vals))
}

var sampleDedupeCache = lru.New(params.DedupeLRUSize)

// dedupePassLRU returns true if the sample line is not a recently seen
// duplicate, using a Least Recently Used (LRU) cache keyed by line hash.
func dedupePassLRU(line []byte) bool {
	hash, err := hashstructure.Hash(string(line), hashstructure.FormatV2, nil)
	if err != nil {
		return true
	}
	key := fmt.Sprintf("%d", hash)
	if _, ok := sampleDedupeCache.Get(key); ok {
		return false
	}
	sampleDedupeCache.Add(key, true)
	return true
}

func init() {
	rootCmd.AddCommand(invertCmd)
	invertCmd.Flags().Float64SliceVar(&optTarget, "target", nil, "Target observable value, or two values for a band")
	invertCmd.Flags().Float64Var(&optAtol, "atol", params.DefaultInversionConfig.Atol, "Absolute tolerance for matching")
	invertCmd.Flags().BoolVar(&optIntervals, "intervals", false, "Coalesce matches into closed intervals")
	invertCmd.Flags().StringVar(&optInterpolate, "interpolate", "", "Interpolated branch-wise inversion: linear or cubic")
	invertCmd.Flags().BoolVar(&optDedupe, "dedupe", true, "Drop duplicate sample lines")
	invertCmd.Flags().StringVar(&optExportInflux, "export", "", "Export samples and mask to InfluxDB under this run tag")
	invertCmd.MarkFlagRequired("target")
}
