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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biosketch/sketchkit/sketch"
)

func buildTestSketch(t *testing.T) *sketch.Sketch {
	t.Helper()
	params, err := sketch.NewParams(sketch.WithK(6), sketch.WithNHashes(20))
	require.NoError(t, err)
	b, err := sketch.NewBuilder("sample1", params, sketch.FilterParams{Oversketch: 10})
	require.NoError(t, err)
	b.SetComment("unit test sketch")
	require.NoError(t, b.Process([]byte("ACGTACGTGGCCACGTACGTGGCCACGT")))
	s, err := b.Finish()
	require.NoError(t, err)
	return s
}

func TestFinchJSONRoundTrip(t *testing.T) {
	s := buildTestSketch(t)
	var buf bytes.Buffer
	require.NoError(t, WriteFinchJSON(&buf, []*sketch.Sketch{s}, true))

	out, err := ReadFinchJSON(&buf)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, s.Name, out[0].Name)
	assert.Equal(t, s.Comment, out[0].Comment)
	assert.Equal(t, len(s.Records), len(out[0].Records))
	for i := range s.Records {
		assert.Equal(t, s.Records[i].Hash, out[0].Records[i].Hash)
		assert.Equal(t, s.Records[i].Count, out[0].Records[i].Count)
		assert.Equal(t, string(s.Records[i].Kmer), string(out[0].Records[i].Kmer))
	}
	assert.Equal(t, s.Report.Applied, out[0].Report.Applied)
	assert.Equal(t, s.Report.Truncated, out[0].Report.Truncated)
	assert.Equal(t, s.Filter.StrandFilter, out[0].Filter.StrandFilter)
}

func TestFinchBinaryRoundTrip(t *testing.T) {
	s := buildTestSketch(t)
	var buf bytes.Buffer
	require.NoError(t, WriteFinchBinary(&buf, []*sketch.Sketch{s}))

	out, err := ReadFinchBinary(&buf)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, s.Name, out[0].Name)
	assert.Equal(t, s.SeqLength, out[0].SeqLength)
	require.Equal(t, len(s.Records), len(out[0].Records))
	for i := range s.Records {
		assert.Equal(t, s.Records[i].Hash, out[0].Records[i].Hash)
		assert.Equal(t, s.Records[i].Count, out[0].Records[i].Count)
		assert.Equal(t, s.Records[i].RCCount, out[0].Records[i].RCCount)
		assert.Equal(t, string(s.Records[i].Kmer), string(out[0].Records[i].Kmer))
	}
	assert.True(t, out[0].Params.Compatible(s.Params))
}

func TestReadFinchBinaryRejectsBadMagic(t *testing.T) {
	_, err := ReadFinchBinary(bytes.NewReader([]byte("nope")))
	require.Error(t, err)
}

func TestWriteFinchJSONRejectsIncompatibleSketches(t *testing.T) {
	a := buildTestSketch(t)
	params2, err := sketch.NewParams(sketch.WithK(8), sketch.WithNHashes(20))
	require.NoError(t, err)
	b, err := sketch.NewBuilder("sample2", params2, sketch.FilterParams{Oversketch: 10})
	require.NoError(t, err)
	require.NoError(t, b.Process([]byte("ACGTACGTGGCCACGTACGTGGCCACGT")))
	sb, err := b.Finish()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = WriteFinchJSON(&buf, []*sketch.Sketch{a, sb}, false)
	require.Error(t, err)
}
