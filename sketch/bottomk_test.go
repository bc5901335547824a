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
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biosketch/sketchkit/errs"
	"github.com/biosketch/sketchkit/kmer"
)

func TestSketcherKeepsSmallestHashes(t *testing.T) {
	params, err := NewParams(WithK(4), WithNHashes(2), WithCanonical(false))
	require.NoError(t, err)

	s := NewSketcher(params, 2)
	require.NoError(t, s.Process([]byte("ACGTACGTACGT")))

	records := s.Finalize()
	assert.LessOrEqual(t, len(records), 2)
	for i := 1; i < len(records); i++ {
		assert.Less(t, records[i-1].Hash, records[i].Hash)
	}

	seen := map[uint64]bool{}
	var want []uint64
	for km := range kmer.Windows([]byte("ACGTACGTACGT"), 4, false) {
		h := kmer.Hash(km, 0)
		if !seen[h] {
			seen[h] = true
			want = append(want, h)
		}
	}
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
	require.Len(t, records, 2)
	assert.Equal(t, want[0], records[0].Hash)
	assert.Equal(t, want[1], records[1].Hash)
}

func TestSketcherRepeatedKmerIncrementsCount(t *testing.T) {
	params, err := NewParams(WithK(4), WithNHashes(10), WithCanonical(false))
	require.NoError(t, err)

	s := NewSketcher(params, 10)
	require.NoError(t, s.Process([]byte("AAAA")))
	require.NoError(t, s.Process([]byte("AAAA")))
	require.NoError(t, s.Process([]byte("AAAA")))

	records := s.Finalize()
	require.Len(t, records, 1)
	assert.Equal(t, uint32(3), records[0].Count)
}

func TestSketcherRejectsProcessAfterFinalize(t *testing.T) {
	params, err := NewParams(WithK(4), WithNHashes(10))
	require.NoError(t, err)

	s := NewSketcher(params, 10)
	s.Finalize()

	err = s.Process([]byte("ACGT"))
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.BadInput))
}

func TestSketcherSeqLengthAndValidKmers(t *testing.T) {
	params, err := NewParams(WithK(4), WithNHashes(10), WithCanonical(false))
	require.NoError(t, err)

	s := NewSketcher(params, 10)
	require.NoError(t, s.Process([]byte("ACGTN")))

	assert.Equal(t, uint64(5), s.SeqLength())
	assert.Equal(t, uint64(1), s.ValidKmers())
}
