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

	"github.com/biosketch/sketchkit/errs"
	"github.com/biosketch/sketchkit/kmer"
)

// Setting is the tri-state a filter toggle is configured with: an explicit
// on/off, or left unset so the detected sequence kind decides.
type Setting int

const (
	// Unset defers the decision to the input's detected kind: FASTQ
	// resolves to enabled (its base qualities make error k-mers common
	// enough to be worth filtering), FASTA resolves to disabled.
	Unset Setting = iota
	Disabled
	Enabled
)

// Resolve returns the effective on/off value of this Setting once the
// input's sequence kind is known.
func (s Setting) Resolve(kind kmer.Kind) bool {
	switch s {
	case Enabled:
		return true
	case Disabled:
		return false
	default:
		return kind == kmer.KindFASTQ
	}
}

// FilterParams configures the abundance-filter pipeline applied to a raw
// oversketch before it is truncated to its final n_hashes records.
type FilterParams struct {
	// On resolves to whether the whole pipeline runs; left Unset it
	// defaults to enabled for FASTQ input and disabled for FASTA, decided
	// once the feeder reports the detected kind. When resolved false every
	// record survives except the final bottom-k truncation.
	On Setting
	// MinAbundance drops any record observed fewer times, 0 disables.
	MinAbundance uint32
	// MaxAbundance drops any record observed more times, 0 disables.
	MaxAbundance uint32
	// StrandFilter is the lower edge of the tolerated reverse-complement
	// fraction window [StrandFilter, 1-StrandFilter]; a record whose
	// fraction falls outside it is considered strand-biased (and thus
	// likely an artifact). 0 disables.
	StrandFilter float64
	// ErrFilter is expressed as a percentage (0..100/k) used to derive an
	// abundance floor from k when no histogram-based floor can be found.
	ErrFilter float64
	// Oversketch multiplies n_hashes to size the Sketcher's admission
	// capacity before filtering.
	Oversketch int
	// Strict turns a final sketch smaller than n_hashes into an error
	// instead of a silently short sketch.
	Strict bool
}

// DefaultFilterParams matches the command-line defaults.
func DefaultFilterParams() FilterParams {
	return FilterParams{
		On:           Unset,
		StrandFilter: 0.1,
		ErrFilter:    1,
		Oversketch:   defaultOversketch,
		Strict:       true,
	}
}

// Validate checks the parameter combination for internal consistency.
func (f FilterParams) Validate(k int) error {
	if f.MinAbundance > 0 && f.MaxAbundance > 0 && f.MinAbundance > f.MaxAbundance {
		return errs.Newf(errs.BadConfig, "min_abundance (%d) exceeds max_abundance (%d)", f.MinAbundance, f.MaxAbundance)
	}
	if f.StrandFilter < 0 || f.StrandFilter > 1 {
		return errs.Newf(errs.BadConfig, "strand_filter must be in 0..=1, got %v", f.StrandFilter)
	}
	if k > 0 {
		maxErr := 100.0 / float64(k)
		if f.ErrFilter < 0 || f.ErrFilter > maxErr {
			return errs.Newf(errs.BadConfig, "err_filter must be in 0..=%v for k=%d, got %v", maxErr, k, f.ErrFilter)
		}
	}
	if f.Oversketch < 1 {
		return errs.Newf(errs.BadConfig, "oversketch must be >= 1, got %d", f.Oversketch)
	}
	return nil
}

// Report summarizes what the pipeline actually did, for diagnostics and for
// the `info` command.
type Report struct {
	Applied             bool
	StrandDropped       int
	ErrorFloorDropped   int
	ErrorFloorThreshold uint32
	AbundanceDropped    int
	Truncated           int
}

// Pipeline runs the filter stages over a raw bottom-k record set.
type Pipeline struct {
	params FilterParams
	k      int
	n      int
}

// NewPipeline builds a Pipeline for the given filter configuration, target
// sketch size n and k-mer length k (k only matters for the error-rate
// floor derivation).
func NewPipeline(params FilterParams, k, n int) *Pipeline {
	return &Pipeline{params: params, k: k, n: n}
}

// Apply runs strand-bias, error-rate-floor, abundance-bound and bottom-k
// truncation stages in that order over records (already in ascending hash
// order), returning the surviving records (still ascending by hash) and a
// Report describing what each stage did. kind resolves an Unset On setting
// (FASTQ enables the pipeline, FASTA disables it).
func (p *Pipeline) Apply(records []Record, kind kmer.Kind) ([]Record, Report, error) {
	var report Report
	if !p.params.On.Resolve(kind) {
		out, truncated := truncate(records, p.n)
		report.Truncated = truncated
		if p.params.Strict && len(out) < p.n {
			return nil, report, errs.Newf(errs.TooFewKmers, "sketch has %d records, want %d", len(out), p.n)
		}
		return out, report, nil
	}
	report.Applied = true

	records, report.StrandDropped = p.filterStrand(records)

	floor := p.errorFloor(records)
	report.ErrorFloorThreshold = floor
	if floor > 0 {
		records, report.ErrorFloorDropped = filterMinAbundance(records, floor)
	}

	records, report.AbundanceDropped = p.filterAbundanceBounds(records)

	out, truncated := truncate(records, p.n)
	report.Truncated = truncated

	if p.params.Strict && len(out) < p.n {
		return nil, report, errs.Newf(errs.TooFewKmers, "sketch has %d records after filtering, want %d", len(out), p.n)
	}
	return out, report, nil
}

// filterStrand drops records whose reverse-complement fraction falls
// outside [StrandFilter, 1-StrandFilter]. A unique k-mer (count 1, rc_count
// 0) has a fraction of 0 and is dropped like any other biased record.
func (p *Pipeline) filterStrand(records []Record) ([]Record, int) {
	if p.params.StrandFilter <= 0 {
		return records, 0
	}
	out := records[:0:0]
	dropped := 0
	for _, r := range records {
		frac := float64(r.RCCount) / float64(r.Count)
		if frac < p.params.StrandFilter || frac > 1-p.params.StrandFilter {
			dropped++
			continue
		}
		out = append(out, r)
	}
	return out, dropped
}

// errorFloor derives a minimum-abundance cutoff meant to separate sequencing
// errors (low, near-unique abundances) from genuine k-mers. It first looks
// for a local minimum in the abundance histogram between the error peak and
// the true-coverage peak; if the histogram is monotonically
// non-increasing (no such minimum exists, e.g. very shallow coverage) it
// falls back to a threshold derived directly from ErrFilter and k.
func (p *Pipeline) errorFloor(records []Record) uint32 {
	if p.params.ErrFilter <= 0 {
		return 0
	}
	hist := abundanceHistogram(records)
	if floor, ok := histogramLocalMinimum(hist); ok {
		return floor
	}
	// Monotonic fallback: scale err_filter (a percentage of 100/k) back to
	// an absolute minimum abundance of at least 1.
	scaled := uint32(p.params.ErrFilter * float64(p.k) / 100.0)
	if scaled < 1 {
		scaled = 1
	}
	return scaled
}

// abundanceHistogram counts how many records were observed exactly i times,
// indexed by abundance.
func abundanceHistogram(records []Record) []int {
	max := uint32(0)
	for _, r := range records {
		if r.Count > max {
			max = r.Count
		}
	}
	hist := make([]int, max+1)
	for _, r := range records {
		hist[r.Count]++
	}
	return hist
}

// histogramLocalMinimum scans the abundance histogram from 1 upward for the
// first index where the count stops decreasing, which marks the boundary
// between the error peak and the true-coverage distribution. It reports
// false if the histogram never turns back up (monotonically non-increasing).
func histogramLocalMinimum(hist []int) (uint32, bool) {
	for i := 1; i+1 < len(hist); i++ {
		if hist[i] < hist[i+1] {
			return uint32(i), true
		}
	}
	return 0, false
}

func filterMinAbundance(records []Record, floor uint32) ([]Record, int) {
	out := records[:0:0]
	dropped := 0
	for _, r := range records {
		if r.Count < floor {
			dropped++
			continue
		}
		out = append(out, r)
	}
	return out, dropped
}

func (p *Pipeline) filterAbundanceBounds(records []Record) ([]Record, int) {
	if p.params.MinAbundance == 0 && p.params.MaxAbundance == 0 {
		return records, 0
	}
	out := records[:0:0]
	dropped := 0
	for _, r := range records {
		if p.params.MinAbundance > 0 && r.Count < p.params.MinAbundance {
			dropped++
			continue
		}
		if p.params.MaxAbundance > 0 && r.Count > p.params.MaxAbundance {
			dropped++
			continue
		}
		out = append(out, r)
	}
	return out, dropped
}

// truncate keeps the n smallest-hash records (records must already be
// ascending by hash), reporting how many were cut.
func truncate(records []Record, n int) ([]Record, int) {
	if n <= 0 || len(records) <= n {
		return records, 0
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Hash < records[j].Hash })
	return records[:n], len(records) - n
}
