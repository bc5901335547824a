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
	"container/heap"
	"sort"

	"github.com/biosketch/sketchkit/errs"
	"github.com/biosketch/sketchkit/kmer"
)

// maxHashHeap is a bounded max-heap of admitted hashes. Its root is always
// the largest hash currently retained, which is the one evicted to make
// room for a smaller, newly-observed hash.
type maxHashHeap []uint64

func (h maxHashHeap) Len() int            { return len(h) }
func (h maxHashHeap) Less(i, j int) bool  { return h[i] > h[j] }
func (h maxHashHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *maxHashHeap) Push(x any)         { *h = append(*h, x.(uint64)) }
func (h *maxHashHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// Sketcher admits k-mer hashes into a bounded bottom-k set, using a max-heap
// paired with a hash-to-Record map: the heap gives an O(log n) admission
// test against the current kth-smallest hash, the map gives O(1) repeat-hash
// accounting. Capacity is normally larger than the sketch's final n_hashes
// (an "oversketch"), leaving room for the filter pipeline to drop records
// before the final bottom-k truncation.
type Sketcher struct {
	params     *Params
	capacity   int
	heap       maxHashHeap
	byHash     map[uint64]*Record
	seqLength  uint64
	validKmers uint64
	done       bool
}

// NewSketcher builds a Sketcher bounded to capacity admitted hashes.
// capacity is raised to params.NHashes() if given smaller.
func NewSketcher(params *Params, capacity int) *Sketcher {
	if capacity < params.NHashes() {
		capacity = params.NHashes()
	}
	return &Sketcher{
		params: params,
		capacity: capacity,
		byHash: make(map[uint64]*Record, capacity),
	}
}

// Process feeds the bases of one sequence record into the sketcher,
// windowing, canonicalizing and hashing according to the Sketcher's Params.
func (s *Sketcher) Process(bases []byte) error {
	if s.done {
		return errs.New(errs.BadInput, "sketcher already finalized")
	}
	s.seqLength += uint64(len(bases))
	for km, isRC := range kmer.Windows(bases, s.params.k, s.params.canonical) {
		s.validKmers++
		h := kmer.Hash(km, s.params.seed)
		s.admit(h, km, isRC)
	}
	return nil
}

func (s *Sketcher) admit(h uint64, km []byte, isRC bool) {
	if rec, ok := s.byHash[h]; ok {
		rec.incr(isRC)
		return
	}
	switch {
	case s.heap.Len() < s.capacity:
		s.insert(h, km, isRC)
	case h < s.heap[0]:
		evict := s.heap[0]
		delete(s.byHash, evict)
		heap.Pop(&s.heap)
		s.insert(h, km, isRC)
	default:
		// h is not among the capacity smallest hashes seen so far; drop.
	}
}

func (s *Sketcher) insert(h uint64, km []byte, isRC bool) {
	rec := &Record{Kmer: append([]byte(nil), km...), Hash: h, Count: 1}
	if isRC {
		rec.RCCount = 1
	}
	s.byHash[h] = rec
	heap.Push(&s.heap, h)
}

// SeqLength returns the total number of input bases processed so far.
func (s *Sketcher) SeqLength() uint64 { return s.seqLength }

// ValidKmers returns the number of k-mer windows that did not overlap an
// out-of-alphabet byte, i.e. the number admitted to the admission test.
func (s *Sketcher) ValidKmers() uint64 { return s.validKmers }

// Finalize drains the admitted records in ascending hash order, consuming
// the Sketcher. Further calls to Process after Finalize return an error.
func (s *Sketcher) Finalize() []Record {
	out := make([]Record, 0, len(s.byHash))
	for _, rec := range s.byHash {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hash < out[j].Hash })
	s.done = true
	s.byHash = nil
	s.heap = nil
	return out
}
