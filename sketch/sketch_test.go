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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderProducesDeterministicSketch(t *testing.T) {
	params, err := NewParams(WithK(8), WithNHashes(5))
	require.NoError(t, err)
	filter := FilterParams{Oversketch: 10}

	build := func() *Sketch {
		b, err := NewBuilder("sample", params, filter)
		require.NoError(t, err)
		require.NoError(t, b.Process([]byte("ACGTACGTACGTACGTACGTACGT")))
		s, err := b.Finish()
		require.NoError(t, err)
		return s
	}

	a := build()
	c := build()
	require.Equal(t, len(a.Records), len(c.Records))
	for i := range a.Records {
		assert.Equal(t, a.Records[i].Hash, c.Records[i].Hash)
		assert.Equal(t, a.Records[i].Count, c.Records[i].Count)
	}
}

func TestDigestDeterministicAndOrderSensitive(t *testing.T) {
	a := &Sketch{Records: []Record{{Hash: 1}, {Hash: 2}}}
	b := &Sketch{Records: []Record{{Hash: 1}, {Hash: 2}}}
	c := &Sketch{Records: []Record{{Hash: 2}, {Hash: 1}}}

	assert.Equal(t, a.Digest(), b.Digest())
	assert.NotEqual(t, a.Digest(), c.Digest())
}

func TestBuilderTracksSeqLengthAndComment(t *testing.T) {
	params, err := NewParams(WithK(4), WithNHashes(10))
	require.NoError(t, err)
	b, err := NewBuilder("sample", params, FilterParams{Oversketch: 10})
	require.NoError(t, err)
	b.SetComment("test comment")
	require.NoError(t, b.Process([]byte("ACGTACGT")))

	s, err := b.Finish()
	require.NoError(t, err)
	assert.Equal(t, uint64(8), s.SeqLength)
	assert.Equal(t, "test comment", s.Comment)
	assert.Equal(t, "sample", s.Name)
}
