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
	"io"

	"github.com/shenwei356/bio/seqio/fastx"

	"github.com/biosketch/sketchkit/errs"
)

// Kind is the sequence format detected at the start of a stream.
type Kind int

const (
	KindUnknown Kind = iota
	KindFASTA
	KindFASTQ
)

func (k Kind) String() string {
	switch k {
	case KindFASTA:
		return "fasta"
	case KindFASTQ:
		return "fastq"
	default:
		return "unknown"
	}
}

// Feeder streams sequence records out of a single FASTA or FASTQ file,
// reporting the detected Kind exactly once, at the first record.
type Feeder struct {
	reader   *fastx.Reader
	onKind   func(Kind)
	reported bool
}

// NewFeeder opens filename (or "-" for standard input, per xopen
// convention) for streaming. It does not itself classify FASTA vs. FASTQ;
// that happens lazily on the first Next call, from the first record read.
func NewFeeder(filename string) (*Feeder, error) {
	r, err := fastx.NewDefaultReader(filename)
	if err != nil {
		return nil, errs.Wrap(errs.BadInput, "opening sequence file "+filename, err)
	}
	return &Feeder{reader: r}, nil
}

// OnKind registers a callback invoked exactly once, the first time Next
// successfully returns a record, with the detected format.
func (f *Feeder) OnKind(fn func(Kind)) {
	f.onKind = fn
}

// Next returns the bases of the next record, or io.EOF once the stream is
// exhausted. The returned slice is only valid until the next call to Next.
func (f *Feeder) Next() ([]byte, error) {
	rec, err := f.reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, errs.Wrap(errs.BadInput, "reading sequence record", err)
	}
	if !f.reported {
		kind := KindFASTA
		if len(rec.Seq.Qual) > 0 {
			kind = KindFASTQ
		}
		if f.onKind != nil {
			f.onKind(kind)
		}
		f.reported = true
	}
	return rec.Seq.Seq, nil
}
