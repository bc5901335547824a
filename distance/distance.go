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

// Package distance estimates Jaccard similarity and Mash distance between
// two k-mer sketches by merging their ascending-hash record lists.
package distance

import (
	"math"

	"github.com/biosketch/sketchkit/errs"
	"github.com/biosketch/sketchkit/sketch"
)

// Result holds the outcome of comparing two sketches.
type Result struct {
	Shared      int
	Union       int
	Jaccard     float64
	MashDistance float64
}

// Engine compares sketches built with compatible Params.
type Engine struct {
	// Mash restricts the comparison to the common sampled prefix of size
	// s = min(|A|, |B|), matching Mash's own distance estimator instead of
	// the plain Jaccard over each sketch's full record set.
	Mash bool
}

// Compare estimates the similarity between a and b. It returns
// IncompatibleSketches if the two sketches were built with different k,
// seed, hash width or hash algorithm.
func (e Engine) Compare(a, b *sketch.Sketch) (Result, error) {
	if !a.Params.Compatible(b.Params) {
		return Result{}, errs.New(errs.IncompatibleSketches, "sketches use different k, seed or hash algorithm")
	}

	var shared, union int
	if e.Mash {
		s := len(a.Records)
		if len(b.Records) < s {
			s = len(b.Records)
		}
		shared, union = mergeCountCapped(a.Records, b.Records, s)
	} else {
		shared, union = mergeCount(a.Records, b.Records)
	}
	var jaccard float64
	if union > 0 {
		jaccard = float64(shared) / float64(union)
	}

	return Result{
		Shared:       shared,
		Union:        union,
		Jaccard:      jaccard,
		MashDistance: mashDistance(jaccard, a.Params.K()),
	}, nil
}

// mergeCount walks two ascending-by-hash record lists in lockstep, counting
// hashes present in both (shared) and the total distinct hashes seen
// (union), in O(|a|+|b|) time without building an intermediate set.
func mergeCount(a, b []sketch.Record) (shared, union int) {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Hash == b[j].Hash:
			shared++
			union++
			i++
			j++
		case a[i].Hash < b[j].Hash:
			union++
			i++
		default:
			union++
			j++
		}
	}
	union += (len(a) - i) + (len(b) - j)
	return shared, union
}

// mergeCountCapped walks two ascending-by-hash record lists in lockstep,
// the same way mergeCount does, but stops as soon as union reaches cap:
// mash mode treats the union as the first cap distinct hashes of the
// merged stream, giving each input sketch a fair, size-matched sample
// even when the two sketches were built with different n_hashes.
func mergeCountCapped(a, b []sketch.Record, cap int) (shared, union int) {
	i, j := 0, 0
	for union < cap && (i < len(a) || j < len(b)) {
		switch {
		case j >= len(b) || (i < len(a) && a[i].Hash < b[j].Hash):
			union++
			i++
		case i >= len(a) || b[j].Hash < a[i].Hash:
			union++
			j++
		default:
			shared++
			union++
			i++
			j++
		}
	}
	return shared, union
}

// mashDistance converts a Jaccard estimate into Mash's evolutionary-distance
// statistic, D = -1/k * ln(2J/(1+J)). A Jaccard of 0 maps to a distance of 1
// (maximally dissimilar) rather than +Inf.
func mashDistance(jaccard float64, k int) float64 {
	if jaccard <= 0 {
		return 1
	}
	if jaccard >= 1 {
		return 0
	}
	return -1.0 / float64(k) * math.Log(2*jaccard/(1+jaccard))
}
