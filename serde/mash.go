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
	"bufio"
	"encoding/binary"
	"io"

	"github.com/biosketch/sketchkit/errs"
	"github.com/biosketch/sketchkit/sketch"
)

var mashBinaryMagic = [4]byte{'M', 'A', 'S', 'H'}

// ReadMashBinary decodes a Mash-style binary sketch file, read-only:
// this module never writes this format. Mash's own on-disk format is a
// Cap'n Proto message; no Cap'n Proto decoder is wired into this module, so
// this reader expects the same field layout serialized with the plain
// little-endian framing this package otherwise uses. Importing a file
// produced by the real `mash sketch` binary requires re-exporting it through
// that structural layout first.
func ReadMashBinary(r io.Reader) ([]*sketch.Sketch, error) {
	br := bufio.NewReader(r)

	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, errs.Wrap(errs.FormatError, "reading mash magic", err)
	}
	if magic != mashBinaryMagic {
		return nil, errs.New(errs.FormatError, "not a mash binary sketch file")
	}

	header := make([]byte, 14)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, errs.Wrap(errs.FormatError, "reading mash header", err)
	}
	k := int(header[0])
	canonical := header[1] != 0
	seed := binary.LittleEndian.Uint64(header[2:10])
	numSketches := binary.LittleEndian.Uint32(header[10:14])

	params, err := sketch.NewParams(
		sketch.WithK(k),
		sketch.WithNHashes(1),
		sketch.WithSeed(seed),
		sketch.WithCanonical(canonical),
	)
	if err != nil {
		return nil, errs.Wrap(errs.FormatError, "invalid mash header", err)
	}

	out := make([]*sketch.Sketch, 0, numSketches)
	for i := uint32(0); i < numSketches; i++ {
		s, err := readMashSketch(br, params)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func readMashSketch(r *bufio.Reader, params *sketch.Params) (*sketch.Sketch, error) {
	name, err := readLenPrefixed(r)
	if err != nil {
		return nil, err
	}
	comment, err := readLenPrefixed(r)
	if err != nil {
		return nil, err
	}
	var u64 [8]byte
	if _, err := io.ReadFull(r, u64[:]); err != nil {
		return nil, errs.Wrap(errs.FormatError, "reading mash seq length", err)
	}
	seqLength := binary.LittleEndian.Uint64(u64[:])

	var u32 [4]byte
	if _, err := io.ReadFull(r, u32[:]); err != nil {
		return nil, errs.Wrap(errs.FormatError, "reading mash hash count", err)
	}
	numHashes := binary.LittleEndian.Uint32(u32[:])

	records := make([]sketch.Record, numHashes)
	for i := range records {
		if _, err := io.ReadFull(r, u64[:]); err != nil {
			return nil, errs.Wrap(errs.FormatError, "reading mash hash", err)
		}
		records[i] = sketch.Record{Hash: binary.LittleEndian.Uint64(u64[:]), Count: 1}
	}

	return &sketch.Sketch{
		Name:      string(name),
		SeqLength: seqLength,
		Comment:   string(comment),
		Records:   records,
		Params:    params,
	}, nil
}
