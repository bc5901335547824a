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

// Package serde persists and loads k-mer sketches in three formats: Finch
// JSON (human-inspectable), Finch binary (this module's own compact
// round-trip format) and Mash binary (read-only).
package serde

import (
	"encoding/json"
	"io"

	"github.com/biosketch/sketchkit/errs"
	"github.com/biosketch/sketchkit/sketch"
)

type jsonMultiSketch struct {
	KmerLength   int          `json:"kmer"`
	Alphabet     string       `json:"alphabet"`
	PreserveCase bool         `json:"preserveCase"`
	Canonical    bool         `json:"canonical"`
	SketchSize   int          `json:"sketchSize"`
	HashType     string       `json:"hashType"`
	HashBits     int          `json:"hashBits"`
	HashSeed     uint64       `json:"hashSeed"`
	Sketches     []jsonSketch `json:"sketches"`
}

type jsonSketch struct {
	Name          string      `json:"name"`
	SeqLength     uint64      `json:"seqLength"`
	NumValidKmers uint64      `json:"numValidKmers"`
	Comment       string      `json:"comment,omitempty"`
	Hashes        []uint64    `json:"hashes"`
	Kmers         []string    `json:"kmers,omitempty"`
	Counts        []uint32    `json:"counts"`
	RCCounts      []uint32    `json:"rcCounts"`
	Filters       jsonFilters `json:"filters"`
}

// jsonFilters records the filter configuration applied to a sketch and what
// each pipeline stage actually did, so a loaded sketch can be inspected or
// re-validated for reproducibility without re-running the pipeline.
type jsonFilters struct {
	Applied             bool    `json:"applied"`
	MinAbundance        uint32  `json:"minAbundance"`
	MaxAbundance        uint32  `json:"maxAbundance"`
	StrandFilter        float64 `json:"strandFilter"`
	ErrFilter           float64 `json:"errFilter"`
	ErrorFloorThreshold uint32  `json:"errorFloorThreshold"`
	StrandDropped       int     `json:"strandDropped"`
	ErrorFloorDropped   int     `json:"errorFloorDropped"`
	AbundanceDropped    int     `json:"abundanceDropped"`
	Truncated           int     `json:"truncated"`
}

// WriteFinchJSON encodes sketches (which must share the same Params) as a
// single Finch-style JSON document. includeKmers also writes each record's
// literal k-mer bytes, which roughly doubles file size.
func WriteFinchJSON(w io.Writer, sketches []*sketch.Sketch, includeKmers bool) error {
	if len(sketches) == 0 {
		return errs.New(errs.BadInput, "no sketches to write")
	}
	params := sketches[0].Params
	doc := jsonMultiSketch{
		KmerLength:   params.K(),
		Alphabet:     params.Alphabet(),
		PreserveCase: params.PreserveCase(),
		Canonical:    params.Canonical(),
		SketchSize:   params.NHashes(),
		HashType:     params.HashName(),
		HashBits:     params.HashBits(),
		HashSeed:     params.Seed(),
	}
	for _, s := range sketches {
		if !s.Params.Compatible(params) {
			return errs.New(errs.IncompatibleSketches, "all sketches in a multi-sketch file must share k, seed and hash algorithm")
		}
		js := jsonSketch{
			Name:          s.Name,
			SeqLength:     s.SeqLength,
			NumValidKmers: s.NumValidKmers,
			Comment:       s.Comment,
			Hashes:        make([]uint64, len(s.Records)),
			Counts:        make([]uint32, len(s.Records)),
			RCCounts:      make([]uint32, len(s.Records)),
			Filters: jsonFilters{
				Applied:             s.Report.Applied,
				MinAbundance:        s.Filter.MinAbundance,
				MaxAbundance:        s.Filter.MaxAbundance,
				StrandFilter:        s.Filter.StrandFilter,
				ErrFilter:           s.Filter.ErrFilter,
				ErrorFloorThreshold: s.Report.ErrorFloorThreshold,
				StrandDropped:       s.Report.StrandDropped,
				ErrorFloorDropped:   s.Report.ErrorFloorDropped,
				AbundanceDropped:    s.Report.AbundanceDropped,
				Truncated:           s.Report.Truncated,
			},
		}
		if includeKmers {
			js.Kmers = make([]string, len(s.Records))
		}
		for i, r := range s.Records {
			js.Hashes[i] = r.Hash
			js.Counts[i] = r.Count
			js.RCCounts[i] = r.RCCount
			if includeKmers {
				js.Kmers[i] = string(r.Kmer)
			}
		}
		doc.Sketches = append(doc.Sketches, js)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errs.Wrap(errs.IoError, "encoding finch json", err)
	}
	return nil
}

// ReadFinchJSON decodes a Finch-style JSON document into its component
// sketches.
func ReadFinchJSON(r io.Reader) ([]*sketch.Sketch, error) {
	var doc jsonMultiSketch
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errs.Wrap(errs.FormatError, "decoding finch json", err)
	}
	params, err := sketch.NewParams(
		sketch.WithK(doc.KmerLength),
		sketch.WithNHashes(doc.SketchSize),
		sketch.WithSeed(doc.HashSeed),
		sketch.WithCanonical(doc.Canonical),
		sketch.WithPreserveCase(doc.PreserveCase),
	)
	if err != nil {
		return nil, errs.Wrap(errs.FormatError, "invalid finch json parameters", err)
	}
	if doc.HashType != "" && doc.HashType != params.HashName() {
		return nil, errs.Newf(errs.FormatError, "unsupported hash type %q", doc.HashType)
	}

	out := make([]*sketch.Sketch, 0, len(doc.Sketches))
	for _, js := range doc.Sketches {
		if len(js.Counts) != len(js.Hashes) || len(js.RCCounts) != len(js.Hashes) {
			return nil, errs.New(errs.FormatError, "hashes/counts/rcCounts length mismatch")
		}
		records := make([]sketch.Record, len(js.Hashes))
		for i := range js.Hashes {
			rec := sketch.Record{Hash: js.Hashes[i], Count: js.Counts[i], RCCount: js.RCCounts[i]}
			if i < len(js.Kmers) {
				rec.Kmer = []byte(js.Kmers[i])
			}
			records[i] = rec
		}
		out = append(out, &sketch.Sketch{
			Name:          js.Name,
			SeqLength:     js.SeqLength,
			NumValidKmers: js.NumValidKmers,
			Comment:       js.Comment,
			Records:       records,
			Filter: sketch.FilterParams{
				MinAbundance: js.Filters.MinAbundance,
				MaxAbundance: js.Filters.MaxAbundance,
				StrandFilter: js.Filters.StrandFilter,
				ErrFilter:    js.Filters.ErrFilter,
			},
			Report: sketch.Report{
				Applied:             js.Filters.Applied,
				StrandDropped:       js.Filters.StrandDropped,
				ErrorFloorDropped:   js.Filters.ErrorFloorDropped,
				ErrorFloorThreshold: js.Filters.ErrorFloorThreshold,
				AbundanceDropped:    js.Filters.AbundanceDropped,
				Truncated:           js.Filters.Truncated,
			},
			Params: params,
		})
	}
	return out, nil
}
