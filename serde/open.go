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

package serde

import (
	"strings"

	"github.com/shenwei356/xopen"

	"github.com/biosketch/sketchkit/errs"
	"github.com/biosketch/sketchkit/sketch"
)

// Open reads a sketch file whose format is determined by filename's suffix:
// ".bsk" is this module's binary format, ".msh" is a Mash binary file,
// anything else (".sk", ".json", or no recognized suffix) is tried as Finch
// JSON.
func Open(filename string) ([]*sketch.Sketch, error) {
	f, err := xopen.Ropen(filename)
	if err != nil {
		return nil, errs.Wrap(errs.IoError, "opening "+filename, err)
	}
	defer f.Close()

	switch {
	case strings.HasSuffix(filename, ".bsk"):
		return ReadFinchBinary(f)
	case strings.HasSuffix(filename, ".msh"):
		return ReadMashBinary(f)
	default:
		return ReadFinchJSON(f)
	}
}
