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
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/biosketch/sketchkit/kmer"
)

// Sketch is the immutable result of sketching one named sequence source: an
// ascending-by-hash list of Records plus the bookkeeping needed to recompute
// statistics or re-derive compatibility with another Sketch.
type Sketch struct {
	Name          string
	SeqLength     uint64
	NumValidKmers uint64
	Comment       string
	Records       []Record
	Filter        FilterParams
	Report        Report
	Params        *Params
}

// Digest returns a cheap identity fingerprint over the sketch's retained
// hashes, suitable for deduplicating or cache-keying sketches without
// comparing full record lists. It is not a cryptographic hash and carries
// no compatibility guarantee across module versions.
func (s *Sketch) Digest() uint64 {
	h := xxhash.New()
	var buf [8]byte
	for _, r := range s.Records {
		binary.LittleEndian.PutUint64(buf[:], r.Hash)
		h.Write(buf[:])
	}
	return h.Sum64()
}

// Builder assembles a Sketch from a stream of sequence records, applying
// the configured filter pipeline once the stream ends.
type Builder struct {
	name     string
	comment  string
	sketcher *Sketcher
	pipeline *Pipeline
	params   *Params
	filter   FilterParams
	kind     kmer.Kind
}

// NewBuilder creates a Builder for one named sequence source.
func NewBuilder(name string, params *Params, filter FilterParams) (*Builder, error) {
	if err := filter.Validate(params.K()); err != nil {
		return nil, err
	}
	capacity := params.NHashes() * filter.Oversketch
	return &Builder{
		name:     name,
		params:   params,
		filter:   filter,
		sketcher: NewSketcher(params, capacity),
		pipeline: NewPipeline(filter, params.K(), params.NHashes()),
	}, nil
}

// SetComment attaches a free-form comment carried through to the final
// Sketch (and, from there, into persisted sketch files).
func (b *Builder) SetComment(c string) { b.comment = c }

// SetKind records the sequence kind detected by the feeder, resolving an
// Unset FilterParams.On at Finish time. Callers normally wire this as the
// Feeder's OnKind callback.
func (b *Builder) SetKind(kind kmer.Kind) { b.kind = kind }

// Process feeds one sequence record's bases into the underlying Sketcher.
func (b *Builder) Process(bases []byte) error {
	return b.sketcher.Process(bases)
}

// Finish runs the filter pipeline over the accumulated records and returns
// the finished Sketch.
func (b *Builder) Finish() (*Sketch, error) {
	raw := b.sketcher.Finalize()
	records, report, err := b.pipeline.Apply(raw, b.kind)
	if err != nil {
		return nil, err
	}
	return &Sketch{
		Name:          b.name,
		SeqLength:     b.sketcher.SeqLength(),
		NumValidKmers: b.sketcher.ValidKmers(),
		Comment:       b.comment,
		Records:       records,
		Filter:        b.filter,
		Report:        report,
		Params:        b.params,
	}, nil
}
