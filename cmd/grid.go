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
	"os"
	"strconv"

	"github.com/rotblauer/deltafit/params"
	"github.com/rotblauer/deltafit/scan"
	"github.com/spf13/cobra"
)

var optGridSamples int
var optGridDeltaMax float64

// gridCmd represents the grid command
var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Print the arctan-compressed mixing-ratio grid",
	Long: `

Prints one delta sample per line: N points evenly spaced in arctan(delta)
over [-arctan(max), arctan(max)], mapped back through tan. Density
concentrates near delta=0 where the observable varies fastest; the
unbounded tails, where it saturates, are compressed.

Feed the grid to your external model and pipe the evaluations back in:

  deltafit grid --samples 1001 --delta-max 100 \
    | your-model --theta 1.5708 \
    | deltafit invert --target 0.25 --atol 0.001 --intervals

Use an odd sample count; an even one has no delta=0 sample and earns a
warning.
`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		w := bufio.NewWriter(os.Stdout)
		defer w.Flush()
		for _, d := range scan.CompressedGrid(optGridSamples, optGridDeltaMax) {
			w.WriteString(strconv.FormatFloat(d, 'g', -1, 64))
			w.WriteByte('\n')
		}
	},
}

func init() {
	rootCmd.AddCommand(gridCmd)
	gridCmd.Flags().IntVar(&optGridSamples, "samples", params.DefaultScanConfig.Samples, "Number of delta samples (odd hits delta=0 exactly)")
	gridCmd.Flags().Float64Var(&optGridDeltaMax, "delta-max", params.DefaultScanConfig.DeltaMax, "Magnitude bound for the scanned mixing ratio")
}
