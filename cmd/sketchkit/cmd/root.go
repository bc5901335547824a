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
	"os"

	"github.com/spf13/cobra"
)

// VERSION is the toolkit version, set at release time.
const VERSION = "0.1.0"

// RootCmd is the base command invoked when sketchkit is called without a
// subcommand.
var RootCmd = &cobra.Command{
	Use:   "sketchkit",
	Short: "K-mer bottom-k sketching toolkit",
	Long: fmt.Sprintf(`sketchkit - K-mer bottom-k sketching toolkit

A command-line toolkit for building, comparing and inspecting bottom-k
k-mer sketches of sequencing reads or assemblies, in the style of Mash
and Finch.

Version: %s
`, VERSION),
}

// Execute runs the root command, exiting the process on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().BoolP("verbose", "", false, "print verbose information")
}
