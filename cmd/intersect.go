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
	"encoding/json"
	"io"
	"log"
	"os"

	"github.com/rotblauer/deltafit/interval"
	"github.com/spf13/cobra"
)

// intersectCmd represents the intersect command
var intersectCmd = &cobra.Command{
	Use:   "intersect A B",
	Short: "Intersect two interval-list documents",
	Long: `

Each argument is a JSON document holding a list of closed intervals,
[[lo, hi], ...], as printed by 'invert --intervals'. Use "-" to read
one document from stdin. Output is every pairwise overlap, in input
order; intervals touching only at a boundary intersect to a single
point. Combining two measurements of the same quantity this way keeps
only the inputs consistent with both.

Example:

  deltafit invert --target 0.25 --intervals < run1.ndjson > a.json
  deltafit invert --target 0.10 --intervals < run2.ndjson | deltafit intersect a.json -
`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)

		a, err := readIntervalList(args[0])
		if err != nil {
			log.Fatalln(err)
		}
		b, err := readIntervalList(args[1])
		if err != nil {
			log.Fatalln(err)
		}
		out := interval.IntersectLists(a, b)
		if err := json.NewEncoder(os.Stdout).Encode(out); err != nil {
			log.Fatalln(err)
		}
	},
}

func readIntervalList(path string) ([]interval.Interval, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var list []interval.Interval
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return nil, err
	}
	return list, nil
}

func init() {
	rootCmd.AddCommand(intersectCmd)
}
