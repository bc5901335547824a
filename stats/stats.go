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

// Package stats derives descriptive statistics from a finished sketch:
// abundance histograms, a k-mer-vs-whole-genome cardinality estimate, mean
// depth and GC fraction.
package stats

import (
	"math"

	"github.com/biosketch/sketchkit/errs"
	"github.com/biosketch/sketchkit/sketch"
)

// Histogram counts how many records were observed exactly i times, for
// i in [1, max observed count].
func Histogram(s *sketch.Sketch) []int {
	if len(s.Records) == 0 {
		return nil
	}
	max := uint32(0)
	for _, r := range s.Records {
		if r.Count > max {
			max = r.Count
		}
	}
	hist := make([]int, max+1)
	for _, r := range s.Records {
		hist[r.Count]++
	}
	return hist
}

// Cardinality estimates the number of distinct valid k-mers in the original
// sequence from the bottom-k sample, using the k-th minimum value estimator
// n_hashes * 2^64 / h_max. The estimate is only meaningful once the sketch
// has reached its target size (fewer retained records means h_max is not
// yet the true n_hashes-th smallest hash of the underlying stream), so a
// sketch smaller than its configured n_hashes, or empty, reports
// TooFewKmers rather than a misleading number.
func Cardinality(s *sketch.Sketch) (float64, error) {
	n := 0
	if s.Params != nil {
		n = s.Params.NHashes()
	}
	if len(s.Records) == 0 || len(s.Records) < n {
		return 0, errs.Newf(errs.TooFewKmers, "cardinality undefined: sketch has %d of %d target records", len(s.Records), n)
	}
	hMax := s.Records[len(s.Records)-1].Hash
	if hMax == 0 {
		return 0, errs.New(errs.TooFewKmers, "cardinality undefined: maximum retained hash is zero")
	}
	return float64(n) * math.Pow(2, 64) / float64(hMax), nil
}

// MeanDepth returns the mean observation count across retained records,
// i.e. the average sequencing depth as seen through the sketch.
func MeanDepth(s *sketch.Sketch) float64 {
	if len(s.Records) == 0 {
		return 0
	}
	var total uint64
	for _, r := range s.Records {
		total += uint64(r.Count)
	}
	return float64(total) / float64(len(s.Records))
}

// GCFraction returns the fraction of G/C bases across every retained
// k-mer's canonical bytes (not the original sequence, since the sketch does
// not retain the full sequence).
func GCFraction(s *sketch.Sketch) float64 {
	if len(s.Records) == 0 {
		return 0
	}
	var gc, total int
	for _, r := range s.Records {
		for _, b := range r.Kmer {
			total++
			if b == 'G' || b == 'C' {
				gc++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(gc) / float64(total)
}
