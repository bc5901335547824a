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
	RootCmd.AddCommand(histCmd)
}

var histCmd = &cobra.Command{
	Use:   "hist sketch_file",
	Short: "Print the abundance histogram of every sketch in a file",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			checkError(errors.New("hist requires exactly one sketch file"))
		}

		sketches, err := serde.Open(args[0])
		checkError(err)

		for _, s := range sketches {
			fmt.Printf("# %s\n", s.Name)
			hist := stats.Histogram(s)
			for abundance, count := range hist {
				if abundance == 0 || count == 0 {
					continue
				}
				fmt.Printf("%d\t%d\n", abundance, count)
			}
		}
	},
}
