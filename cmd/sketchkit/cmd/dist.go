// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/biosketch/sketchkit/distance"
	"github.com/biosketch/sketchkit/serde"
	"github.com/biosketch/sketchkit/sketch"
)

func init() {
	RootCmd.AddCommand(distCmd)
	distCmd.Flags().BoolP("pairwise", "p", false, "compare every sketch against every other sketch (conflicts with --queries)")
	distCmd.Flags().StringSliceP("queries", "q", nil, "compare only the named sketches against every sketch (conflicts with --pairwise)")
	distCmd.Flags().BoolP("mash", "m", false, "restrict comparison to the common sampled prefix, as Mash does")
}

var distCmd = &cobra.Command{
	Use:   "dist [flags] sketch_file [sketch_file ...]",
	Short: "Estimate Jaccard similarity and Mash distance between sketches",
	Long: `dist loads every sketch out of the given files, in input order, then
emits one distance record per query/reference pair, skipping
self-comparisons.

With neither --pairwise nor --queries, the first loaded sketch is the sole
query, compared against every other sketch. --pairwise compares every
sketch against every other sketch. --queries NAME... restricts the query
set to the named sketches, each compared against every sketch.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			checkError(errors.New("dist requires at least one sketch file"))
		}

		pairwise := getFlagBool(cmd, "pairwise")
		queryNames, err := cmd.Flags().GetStringSlice("queries")
		checkError(err)
		if pairwise && len(queryNames) > 0 {
			checkError(errors.New("--pairwise and --queries are mutually exclusive"))
		}

		var all []*sketch.Sketch
		for _, a := range args {
			sketches, err := serde.Open(a)
			checkError(err)
			all = append(all, sketches...)
		}

		queries := selectQueries(all, pairwise, queryNames)

		eng := distance.Engine{Mash: getFlagBool(cmd, "mash")}
		fmt.Println("query\treference\tshared\tunion\tjaccard\tmash_distance")
		for _, qi := range queries {
			for ri, ref := range all {
				if ri == qi {
					continue
				}
				res, err := eng.Compare(all[qi], ref)
				checkError(err)
				fmt.Printf("%s\t%s\t%d\t%d\t%.6f\t%.6f\n", all[qi].Name, ref.Name, res.Shared, res.Union, res.Jaccard, res.MashDistance)
			}
		}
	},
}

// selectQueries resolves which loaded sketch indices act as queries:
// --pairwise selects all of them, --queries NAME... selects sketches by
// name (in the order given), and absent both the first sketch is the sole
// query, matching dist's documented default.
func selectQueries(all []*sketch.Sketch, pairwise bool, queryNames []string) []int {
	if pairwise {
		idx := make([]int, len(all))
		for i := range all {
			idx[i] = i
		}
		return idx
	}
	if len(queryNames) > 0 {
		var idx []int
		for _, name := range queryNames {
			for i, s := range all {
				if s.Name == name {
					idx = append(idx, i)
					break
				}
			}
		}
		return idx
	}
	if len(all) == 0 {
		return nil
	}
	return []int{0}
}
