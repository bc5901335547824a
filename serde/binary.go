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
	"github.com/biosketch/sketchkit/internal"
	"github.com/biosketch/sketchkit/sketch"
)

var finchBinaryMagic = [4]byte{'F', 'N', 'C', 'H'}

const finchBinaryVersion = 1

// WriteFinchBinary encodes sketches (which must share the same Params) in
// this module's compact binary format. It is only guaranteed to round-trip
// through ReadFinchBinary; it makes no cross-tool compatibility promise.
func WriteFinchBinary(w io.Writer, sketches []*sketch.Sketch) error {
	if len(sketches) == 0 {
		return errs.New(errs.BadInput, "no sketches to write")
	}
	bw := bufio.NewWriter(w)
	params := sketches[0].Params

	if _, err := bw.Write(finchBinaryMagic[:]); err != nil {
		return errs.Wrap(errs.IoError, "writing magic", err)
	}
	header := make([]byte, 0, 32)
	header = append(header, finchBinaryVersion)
	header = append(header, byte(params.K()))
	var shortBuf [2]byte
	internal.PutShortLE(shortBuf[:], 0, params.HashBits())
	header = append(header, shortBuf[:]...)
	var seedBuf [8]byte
	binary.LittleEndian.PutUint64(seedBuf[:], params.Seed())
	header = append(header, seedBuf[:]...)
	header = append(header, byte(internal.BoolToInt(params.Canonical())))
	header = append(header, byte(internal.BoolToInt(params.PreserveCase())))
	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(len(sketches)))
	header = append(header, countBuf[:]...)
	if _, err := bw.Write(header); err != nil {
		return errs.Wrap(errs.IoError, "writing header", err)
	}

	for _, s := range sketches {
		if !s.Params.Compatible(params) {
			return errs.New(errs.IncompatibleSketches, "all sketches in a multi-sketch file must share k, seed and hash algorithm")
		}
		if err := writeSketchBinary(bw, s); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return errs.Wrap(errs.IoError, "flushing finch binary", err)
	}
	return nil
}

func writeSketchBinary(w *bufio.Writer, s *sketch.Sketch) error {
	if err := writeLenPrefixed(w, []byte(s.Name)); err != nil {
		return err
	}
	if err := writeLenPrefixed(w, []byte(s.Comment)); err != nil {
		return err
	}
	var u64 [8]byte
	binary.LittleEndian.PutUint64(u64[:], s.SeqLength)
	if _, err := w.Write(u64[:]); err != nil {
		return errs.Wrap(errs.IoError, "writing seq length", err)
	}
	binary.LittleEndian.PutUint64(u64[:], s.NumValidKmers)
	if _, err := w.Write(u64[:]); err != nil {
		return errs.Wrap(errs.IoError, "writing num valid kmers", err)
	}
	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], uint32(len(s.Records)))
	if _, err := w.Write(u32[:]); err != nil {
		return errs.Wrap(errs.IoError, "writing record count", err)
	}
	for _, r := range s.Records {
		binary.LittleEndian.PutUint64(u64[:], r.Hash)
		if _, err := w.Write(u64[:]); err != nil {
			return errs.Wrap(errs.IoError, "writing hash", err)
		}
		if err := writeLenPrefixed(w, r.Kmer); err != nil {
			return err
		}
		binary.LittleEndian.PutUint32(u32[:], r.Count)
		if _, err := w.Write(u32[:]); err != nil {
			return errs.Wrap(errs.IoError, "writing count", err)
		}
		binary.LittleEndian.PutUint32(u32[:], r.RCCount)
		if _, err := w.Write(u32[:]); err != nil {
			return errs.Wrap(errs.IoError, "writing rc count", err)
		}
	}
	return nil
}

func writeLenPrefixed(w io.Writer, data []byte) error {
	var shortBuf [2]byte
	internal.PutShortLE(shortBuf[:], 0, len(data))
	if _, err := w.Write(shortBuf[:]); err != nil {
		return errs.Wrap(errs.IoError, "writing length prefix", err)
	}
	if _, err := w.Write(data); err != nil {
		return errs.Wrap(errs.IoError, "writing bytes", err)
	}
	return nil
}

// ReadFinchBinary decodes a document written by WriteFinchBinary.
func ReadFinchBinary(r io.Reader) ([]*sketch.Sketch, error) {
	br := bufio.NewReader(r)

	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, errs.Wrap(errs.FormatError, "reading magic", err)
	}
	if magic != finchBinaryMagic {
		return nil, errs.New(errs.FormatError, "not a finch binary sketch file")
	}

	header := make([]byte, 18)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, errs.Wrap(errs.FormatError, "reading header", err)
	}
	version := header[0]
	if version != finchBinaryVersion {
		return nil, errs.Newf(errs.FormatError, "unsupported finch binary version %d", version)
	}
	k := int(header[1])
	hashBits := internal.GetShortLE(header, 2)
	seed := binary.LittleEndian.Uint64(header[4:12])
	canonical := header[12] != 0
	preserveCase := header[13] != 0
	numSketches := binary.LittleEndian.Uint32(header[14:18])

	params, err := sketch.NewParams(
		sketch.WithK(k),
		sketch.WithNHashes(1),
		sketch.WithSeed(seed),
		sketch.WithCanonical(canonical),
		sketch.WithPreserveCase(preserveCase),
	)
	if err != nil {
		return nil, errs.Wrap(errs.FormatError, "invalid finch binary header", err)
	}
	if hashBits != params.HashBits() {
		return nil, errs.Newf(errs.FormatError, "unsupported hash width %d", hashBits)
	}

	out := make([]*sketch.Sketch, 0, numSketches)
	for i := uint32(0); i < numSketches; i++ {
		s, err := readSketchBinary(br, params)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if len(out) > 0 && len(out[0].Records) > 0 {
		// The header does not carry sketchSize directly; take the first
		// sketch's record count as Params.NHashes() instead of the
		// placeholder used while reading. This equals the original target
		// size only when that first sketch was full.
		corrected, err := sketch.NewParams(
			sketch.WithK(params.K()),
			sketch.WithNHashes(len(out[0].Records)),
			sketch.WithSeed(params.Seed()),
			sketch.WithCanonical(params.Canonical()),
			sketch.WithPreserveCase(params.PreserveCase()),
		)
		if err == nil {
			for _, s := range out {
				s.Params = corrected
			}
		}
	}
	return out, nil
}

func readSketchBinary(r *bufio.Reader, params *sketch.Params) (*sketch.Sketch, error) {
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
		return nil, errs.Wrap(errs.FormatError, "reading seq length", err)
	}
	seqLength := binary.LittleEndian.Uint64(u64[:])
	if _, err := io.ReadFull(r, u64[:]); err != nil {
		return nil, errs.Wrap(errs.FormatError, "reading num valid kmers", err)
	}
	numValidKmers := binary.LittleEndian.Uint64(u64[:])

	var u32 [4]byte
	if _, err := io.ReadFull(r, u32[:]); err != nil {
		return nil, errs.Wrap(errs.FormatError, "reading record count", err)
	}
	numRecords := binary.LittleEndian.Uint32(u32[:])

	records := make([]sketch.Record, numRecords)
	for i := range records {
		if _, err := io.ReadFull(r, u64[:]); err != nil {
			return nil, errs.Wrap(errs.FormatError, "reading hash", err)
		}
		hash := binary.LittleEndian.Uint64(u64[:])
		km, err := readLenPrefixed(r)
		if err != nil {
			return nil, err
		}
		if _, err := io.ReadFull(r, u32[:]); err != nil {
			return nil, errs.Wrap(errs.FormatError, "reading count", err)
		}
		count := binary.LittleEndian.Uint32(u32[:])
		if _, err := io.ReadFull(r, u32[:]); err != nil {
			return nil, errs.Wrap(errs.FormatError, "reading rc count", err)
		}
		rcCount := binary.LittleEndian.Uint32(u32[:])
		records[i] = sketch.Record{Kmer: km, Hash: hash, Count: count, RCCount: rcCount}
	}

	return &sketch.Sketch{
		Name:          string(name),
		SeqLength:     seqLength,
		NumValidKmers: numValidKmers,
		Comment:       string(comment),
		Records:       records,
		Params:        params,
	}, nil
}

func readLenPrefixed(r *bufio.Reader) ([]byte, error) {
	var shortBuf [2]byte
	if _, err := io.ReadFull(r, shortBuf[:]); err != nil {
		return nil, errs.Wrap(errs.FormatError, "reading length prefix", err)
	}
	n := internal.GetShortLE(shortBuf[:], 0)
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errs.Wrap(errs.FormatError, "reading length-prefixed bytes", err)
	}
	return data, nil
}
