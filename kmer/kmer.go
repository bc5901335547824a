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

// Package kmer turns a raw nucleotide byte stream into the canonicalized,
// hashed k-mer windows that feed a bottom-k sketch.
package kmer

import (
	"bytes"
	"iter"

	"github.com/twmb/murmur3"
)

// sentinel marks a normalized base outside the A/C/G/T alphabet. It can
// never collide with an uppercased alphabet byte.
const sentinel = 0

// Hash returns the low 64 bits of MurmurHash3_x64_128(km, seed), the
// hash this module standardizes on for bottom-k admission.
func Hash(km []byte, seed uint64) uint64 {
	h, _ := murmur3.SeedSum128(seed, seed, km)
	return h
}

// complement maps an uppercased base to its Watson-Crick complement. ok is
// false for any byte outside A/C/G/T.
func complement(b byte) (c byte, ok bool) {
	switch b {
	case 'A':
		return 'T', true
	case 'C':
		return 'G', true
	case 'G':
		return 'C', true
	case 'T':
		return 'A', true
	default:
		return 0, false
	}
}

// ReverseComplement returns the reverse complement of km. ok is false if km
// contains a byte outside A/C/G/T.
func ReverseComplement(km []byte) (rc []byte, ok bool) {
	n := len(km)
	rc = make([]byte, n)
	for i, b := range km {
		c, good := complement(b)
		if !good {
			return nil, false
		}
		rc[n-1-i] = c
	}
	return rc, true
}

// Canonical returns the lexicographically smaller of km and its reverse
// complement, and reports whether the reverse complement was chosen. ok is
// false if km contains a byte outside A/C/G/T.
func Canonical(km []byte) (canon []byte, isRC bool, ok bool) {
	rc, ok := ReverseComplement(km)
	if !ok {
		return nil, false, false
	}
	if bytes.Compare(km, rc) <= 0 {
		return km, false, true
	}
	return rc, true, true
}

// normalize uppercases a/c/g/t in place on a fresh copy and replaces every
// other byte with sentinel, so a single left-to-right scan can both detect
// invalid bases and locate window boundaries.
func normalize(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, b := range seq {
		switch b {
		case 'a':
			b = 'A'
		case 'c':
			b = 'C'
		case 'g':
			b = 'G'
		case 't':
			b = 'T'
		}
		switch b {
		case 'A', 'C', 'G', 'T':
			out[i] = b
		default:
			out[i] = sentinel
		}
	}
	return out
}

// Windows yields every valid k-length window of seq in left-to-right order,
// skipping any window that overlaps a non-A/C/G/T byte. When canonical is
// true each window is reduced to its canonical strand and isRC reports
// whether that strand was the reverse complement; when false isRC is always
// false and the window is yielded as read.
//
// The returned slice aliases an internal buffer and must be copied by the
// caller before it outlives the current iteration step.
func Windows(seq []byte, k int, canonical bool) iter.Seq2[[]byte, bool] {
	return func(yield func([]byte, bool) bool) {
		if k <= 0 || len(seq) < k {
			return
		}
		norm := normalize(seq)
		lastBad := -1
		for i := 0; i < k-1 && i < len(norm); i++ {
			if norm[i] == sentinel {
				lastBad = i
			}
		}
		for i := 0; i+k <= len(norm); i++ {
			end := i + k - 1
			if norm[end] == sentinel {
				lastBad = end
			}
			if lastBad >= i {
				continue
			}
			window := norm[i : i+k]
			if !canonical {
				if !yield(window, false) {
					return
				}
				continue
			}
			canon, isRC, ok := Canonical(window)
			if !ok {
				// normalize already screened out sentinels in this
				// window, so Canonical cannot fail here.
				continue
			}
			if !yield(canon, isRC) {
				return
			}
		}
	}
}
