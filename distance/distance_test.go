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

package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biosketch/sketchkit/errs"
	"github.com/biosketch/sketchkit/sketch"
)

func buildSketch(t *testing.T, name string, k, nHashes int, seed uint64, seqs ...string) *sketch.Sketch {
	t.Helper()
	params, err := sketch.NewParams(sketch.WithK(k), sketch.WithNHashes(nHashes), sketch.WithSeed(seed))
	require.NoError(t, err)
	b, err := sketch.NewBuilder(name, params, sketch.FilterParams{Oversketch: 10})
	require.NoError(t, err)
	for _, s := range seqs {
		require.NoError(t, b.Process([]byte(s)))
	}
	out, err := b.Finish()
	require.NoError(t, err)
	return out
}

func TestCompareIdenticalSketchesAreDistanceZero(t *testing.T) {
	a := buildSketch(t, "a", 8, 50, 0, "ACGTACGTACGTACGTACGTACGTACGT")
	b := buildSketch(t, "b", 8, 50, 0, "ACGTACGTACGTACGTACGTACGTACGT")

	res, err := Engine{}.Compare(a, b)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Jaccard)
	assert.Equal(t, 0.0, res.MashDistance)
}

func TestCompareDisjointSketches(t *testing.T) {
	a := buildSketch(t, "a", 8, 50, 0, "AAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	b := buildSketch(t, "b", 8, 50, 0, "CCCCCCCCCCCCCCCCCCCCCCCCCCCC")

	res, err := Engine{}.Compare(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Jaccard)
	assert.Equal(t, 1.0, res.MashDistance)
}

func TestCompareRejectsIncompatibleParams(t *testing.T) {
	a := buildSketch(t, "a", 8, 50, 0, "ACGTACGTACGTACGT")
	b := buildSketch(t, "b", 9, 50, 0, "ACGTACGTACGTACGT")

	_, err := Engine{}.Compare(a, b)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.IncompatibleSketches))
}

func TestCompareSymmetric(t *testing.T) {
	a := buildSketch(t, "a", 6, 50, 0, "ACGTACGTACGTACGTACGT")
	b := buildSketch(t, "b", 6, 50, 0, "ACGTTTTTACGTACGTACGT")

	ab, err := Engine{}.Compare(a, b)
	require.NoError(t, err)
	ba, err := Engine{}.Compare(b, a)
	require.NoError(t, err)
	assert.Equal(t, ab.Jaccard, ba.Jaccard)
	assert.Equal(t, ab.MashDistance, ba.MashDistance)
}

func TestCompareMashModeRestrictsToCommonPrefix(t *testing.T) {
	a := buildSketch(t, "a", 6, 5, 0, "ACGTACGTACGTACGTACGTACGTACGTACGT")
	b := buildSketch(t, "b", 6, 10, 0, "ACGTACGTACGTACGTACGTACGTACGTACGT")

	res, err := Engine{Mash: true}.Compare(a, b)
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Union, 5)
}
