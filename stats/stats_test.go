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

package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biosketch/sketchkit/sketch"
)

func testSketch(t *testing.T) *sketch.Sketch {
	t.Helper()
	params, err := sketch.NewParams(sketch.WithK(8), sketch.WithNHashes(5))
	require.NoError(t, err)
	b, err := sketch.NewBuilder("s", params, sketch.FilterParams{Oversketch: 10})
	require.NoError(t, err)
	require.NoError(t, b.Process([]byte("ACGTACGTGGCCACGTACGTGGCCACGTACGTGGCC")))
	out, err := b.Finish()
	require.NoError(t, err)
	return out
}

func TestHistogramSumsToRecordCount(t *testing.T) {
	s := testSketch(t)
	hist := Histogram(s)
	var total int
	for _, c := range hist {
		total += c
	}
	assert.Equal(t, len(s.Records), total)
}

func TestCardinalityPositiveForNonEmptySketch(t *testing.T) {
	s := testSketch(t)
	c, err := Cardinality(s)
	require.NoError(t, err)
	assert.Greater(t, c, 0.0)
}

func TestCardinalityErrorsWhenSketchBelowTargetSize(t *testing.T) {
	params, err := sketch.NewParams(sketch.WithK(8), sketch.WithNHashes(5000))
	require.NoError(t, err)
	b, err := sketch.NewBuilder("s", params, sketch.FilterParams{Oversketch: 10})
	require.NoError(t, err)
	require.NoError(t, b.Process([]byte("ACGTACGT")))
	out, err := b.Finish()
	require.NoError(t, err)

	_, err = Cardinality(out)
	require.Error(t, err)
}

func TestMeanDepthAtLeastOne(t *testing.T) {
	s := testSketch(t)
	assert.GreaterOrEqual(t, MeanDepth(s), 1.0)
}

func TestGCFractionInUnitRange(t *testing.T) {
	s := testSketch(t)
	gc := GCFraction(s)
	assert.GreaterOrEqual(t, gc, 0.0)
	assert.LessOrEqual(t, gc, 1.0)
}

func TestStatsOnEmptySketchDoNotPanic(t *testing.T) {
	empty := &sketch.Sketch{}
	_, err := Cardinality(empty)
	assert.Error(t, err)
	assert.Equal(t, 0.0, MeanDepth(empty))
	assert.Equal(t, 0.0, GCFraction(empty))
	assert.Empty(t, Histogram(empty))
}
