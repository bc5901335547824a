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

	"github.com/pkg/errors"
	"github.com/shenwei356/go-logging"
	"github.com/spf13/cobra"
)

var log = logging.MustGetLogger("sketchkit")

// checkError prints err with its full stack (when it carries one, via
// pkg/errors) and exits. Subcommands call this at the point they cannot
// continue, matching the rest of this toolkit's error flow.
func checkError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%+v\n", err)
	os.Exit(1)
}

func getFlagString(cmd *cobra.Command, flag string) string {
	v, err := cmd.Flags().GetString(flag)
	checkError(errors.Wrap(err, flag))
	return v
}

func getFlagInt(cmd *cobra.Command, flag string) int {
	v, err := cmd.Flags().GetInt(flag)
	checkError(errors.Wrap(err, flag))
	return v
}

func getFlagUint64(cmd *cobra.Command, flag string) uint64 {
	v, err := cmd.Flags().GetUint64(flag)
	checkError(errors.Wrap(err, flag))
	return v
}

func getFlagUint32(cmd *cobra.Command, flag string) uint32 {
	v, err := cmd.Flags().GetUint32(flag)
	checkError(errors.Wrap(err, flag))
	return v
}

func getFlagFloat64(cmd *cobra.Command, flag string) float64 {
	v, err := cmd.Flags().GetFloat64(flag)
	checkError(errors.Wrap(err, flag))
	return v
}

func getFlagBool(cmd *cobra.Command, flag string) bool {
	v, err := cmd.Flags().GetBool(flag)
	checkError(errors.Wrap(err, flag))
	return v
}
