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

package sketch

import "math"

// Record is one admitted k-mer: its canonical bytes, its hash, and how many
// times it (and, of those, its reverse-complement orientation) was observed.
// Identity is the hash; colliding k-mers under the configured hash are
// indistinguishable: the Sketcher keeps the bytes of the first one admitted
// and counts later colliding k-mers against that Record.
type Record struct {
	Kmer    []byte
	Hash    uint64
	Count   uint32
	RCCount uint32
}

// incr records one more observation of this k-mer. isRC marks that the
// observed window was admitted in its reverse-complement orientation.
// RCCount never exceeds Count by construction.
func (r *Record) incr(isRC bool) {
	if r.Count < math.MaxUint32 {
		r.Count++
	}
	if isRC && r.RCCount < r.Count {
		r.RCCount++
	}
}
