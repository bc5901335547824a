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

// Package sketch implements bottom-k k-mer sketches: the admission data
// structure that builds them, the abundance-filter pipeline applied before
// they are finalized, and the resulting immutable entity.
package sketch

import (
	"github.com/biosketch/sketchkit/errs"
)

const (
	// HashBits is the width of the hash this module standardizes on.
	HashBits = 64
	// HashName identifies the hash algorithm, recorded in every sketch so
	// two sketches can be checked for compatibility before comparison.
	HashName = "MurmurHash3_x64_128"
	// Alphabet is the only accepted input alphabet.
	Alphabet = "ACGT"

	defaultK         = 21
	defaultNHashes   = 2000
	defaultOversketch = 100
)

// Params configures how a Sketcher turns a sequence stream into k-mer
// records. It is immutable once built by NewParams.
type Params struct {
	k            int
	nHashes      int
	seed         uint64
	canonical    bool
	preserveCase bool
}

// Option mutates a Params under construction. See WithK, WithNHashes, etc.
type Option func(*Params)

// WithK sets the k-mer length. Must be in 1..=255.
func WithK(k int) Option { return func(p *Params) { p.k = k } }

// WithNHashes sets the target sketch size (bottom-k truncation size).
func WithNHashes(n int) Option { return func(p *Params) { p.nHashes = n } }

// WithSeed sets the hash seed.
func WithSeed(seed uint64) Option { return func(p *Params) { p.seed = seed } }

// WithCanonical toggles canonicalization (smaller of a k-mer and its
// reverse complement). Defaults to true.
func WithCanonical(c bool) Option { return func(p *Params) { p.canonical = c } }

// WithPreserveCase sets the preserve-case flag recorded in the sketch's
// metadata. The Sketcher uppercases input bases whatever its value.
func WithPreserveCase(p bool) Option { return func(pr *Params) { pr.preserveCase = p } }

// NewParams builds a validated Params, applying defaults (k=21, n_hashes=2000,
// seed=0, canonical=true) before any supplied options.
func NewParams(opts ...Option) (*Params, error) {
	p := &Params{
		k:         defaultK,
		nHashes:   defaultNHashes,
		seed:      0,
		canonical: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.k < 1 || p.k > 255 {
		return nil, errs.Newf(errs.BadConfig, "k must be in 1..=255, got %d", p.k)
	}
	if p.nHashes < 1 {
		return nil, errs.Newf(errs.BadConfig, "n_hashes must be >= 1, got %d", p.nHashes)
	}
	return p, nil
}

func (p *Params) K() int            { return p.k }
func (p *Params) NHashes() int      { return p.nHashes }
func (p *Params) Seed() uint64      { return p.seed }
func (p *Params) Canonical() bool   { return p.canonical }
func (p *Params) PreserveCase() bool { return p.preserveCase }
func (p *Params) HashBits() int     { return HashBits }
func (p *Params) HashName() string  { return HashName }
func (p *Params) Alphabet() string  { return Alphabet }

// Compatible reports whether two Params produce directly comparable
// sketches: same k, seed, hash width and hash algorithm. n_hashes and
// canonicalization need not match for comparison, only for exact equality.
func (p *Params) Compatible(other *Params) bool {
	return p.k == other.k &&
		p.seed == other.seed &&
		p.HashBits() == other.HashBits() &&
		p.HashName() == other.HashName()
}
