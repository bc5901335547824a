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

package kmer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashDeterministic(t *testing.T) {
	km := []byte("ACGTACGT")
	h1 := Hash(km, 42)
	h2 := Hash(km, 42)
	assert.Equal(t, h1, h2)

	h3 := Hash(km, 43)
	assert.NotEqual(t, h1, h3)
}

func TestReverseComplement(t *testing.T) {
	rc, ok := ReverseComplement([]byte("ACGT"))
	require.True(t, ok)
	assert.Equal(t, []byte("ACGT"), rc)

	rc, ok = ReverseComplement([]byte("AACG"))
	require.True(t, ok)
	assert.Equal(t, []byte("CGTT"), rc)

	_, ok = ReverseComplement([]byte("ACGN"))
	assert.False(t, ok)
}

func TestCanonicalPicksLexicographicallySmaller(t *testing.T) {
	canon, isRC, ok := Canonical([]byte("TTTT"))
	require.True(t, ok)
	assert.True(t, isRC)
	assert.Equal(t, []byte("AAAA"), canon)

	canon, isRC, ok = Canonical([]byte("AAAA"))
	require.True(t, ok)
	assert.False(t, isRC)
	assert.Equal(t, []byte("AAAA"), canon)
}

func TestWindowsSkipsInvalidBases(t *testing.T) {
	seq := []byte("ACGTNACGT")
	var got [][]byte
	for w := range Windows(seq, 4, false) {
		cp := append([]byte(nil), w...)
		got = append(got, cp)
	}
	// Windows overlapping the N at index 4 must be skipped: valid windows
	// are [0:4)="ACGT" and [5:9)="ACGT" only.
	require.Len(t, got, 2)
	assert.Equal(t, []byte("ACGT"), got[0])
	assert.Equal(t, []byte("ACGT"), got[1])
}

func TestWindowsLowercaseNormalized(t *testing.T) {
	seq := []byte("acgtacgt")
	var got [][]byte
	for w := range Windows(seq, 4, false) {
		got = append(got, append([]byte(nil), w...))
	}
	require.Len(t, got, 5)
	assert.Equal(t, []byte("ACGT"), got[0])
}

func TestWindowsTooShortSequence(t *testing.T) {
	seq := []byte("AC")
	var count int
	for range Windows(seq, 4, false) {
		count++
	}
	assert.Equal(t, 0, count)
}

func TestWindowsCanonicalOrientation(t *testing.T) {
	seq := []byte("TTTTACGT")
	var orientations []bool
	for _, isRC := range Windows(seq, 4, true) {
		orientations = append(orientations, isRC)
	}
	require.Len(t, orientations, 5)
	assert.True(t, orientations[0]) // "TTTT" canonicalizes via its RC "AAAA"
}
