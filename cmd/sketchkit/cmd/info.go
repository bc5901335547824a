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

	"github.com/biosketch/sketchkit/serde"
	"github.com/biosketch/sketchkit/stats"
)

func init() {
	RootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info sketch_file",
	Short: "Print summary statistics for every sketch in a file",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			checkError(errors.New("info requires exactly one sketch file"))
		}

		sketches, err := serde.Open(args[0])
		checkError(err)

		for _, s := range sketches {
			fmt.Printf("name:             %s\n", s.Name)
			fmt.Printf("comment:          %s\n", s.Comment)
			fmt.Printf("kmer length:      %d\n", s.Params.K())
			fmt.Printf("seq length:       %d\n", s.SeqLength)
			fmt.Printf("valid k-mers:     %d\n", s.NumValidKmers)
			fmt.Printf("retained records: %d\n", len(s.Records))
			if card, err := stats.Cardinality(s); err != nil {
				fmt.Printf("cardinality est.: n/a (%v)\n", err)
			} else {
				fmt.Printf("cardinality est.: %.0f\n", card)
			}
			fmt.Printf("mean depth:       %.2f\n", stats.MeanDepth(s))
			fmt.Printf("gc fraction:      %.4f\n", stats.GCFraction(s))
			fmt.Printf("digest:           %016x\n", s.Digest())
			if s.Report.Applied {
				fmt.Printf("filters applied:  strand -%d error-floor(>=%d) -%d abundance -%d, truncated -%d\n",
					s.Report.StrandDropped, s.Report.ErrorFloorThreshold, s.Report.ErrorFloorDropped,
					s.Report.AbundanceDropped, s.Report.Truncated)
			} else {
				fmt.Printf("filters applied:  none\n")
			}
			fmt.Println()
		}
	},
}
