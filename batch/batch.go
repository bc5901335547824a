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

// Package batch dispatches sketching work across many input files in
// parallel, one worker per file, preserving the caller's input order in the
// result slice regardless of completion order.
package batch

import (
	"context"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/biosketch/sketchkit/kmer"
	"github.com/biosketch/sketchkit/sketch"
)

// Request names one input file and the sketch it should produce.
type Request struct {
	Filename string // path, or "-" for standard input
	Name     string // sketch name; defaults to Filename if empty
	Comment  string
}

// Runner dispatches SketchFiles calls. Its zero value is ready to use; keep
// one Runner per batch of requests that might share a "-" stdin input, since
// it deduplicates concurrent stdin reads across calls.
type Runner struct {
	stdinOnce   sync.Once
	stdinResult *sketch.Sketch
	stdinErr    error
}

// SketchFiles builds one sketch per request, in parallel, using params and
// filter for every sketch. onKind, if non-nil, is called with the format
// detected in a file's first record, at most once per request: a file with
// no records never reports one, and all "-" requests share a single read.
// The returned slice preserves the order of reqs regardless of completion
// order. If any file fails, SketchFiles returns the error of the first
// request to fail (in time, not by request index) and no partial results;
// the other workers are not interrupted.
func (b *Runner) SketchFiles(ctx context.Context, reqs []Request, params *sketch.Params, filter sketch.FilterParams, onKind func(filename string, kind kmer.Kind)) ([]*sketch.Sketch, error) {
	results := make([]*sketch.Sketch, len(reqs))
	g, ctx := errgroup.WithContext(ctx)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if req.Filename == "-" {
				b.stdinOnce.Do(func() {
					b.stdinResult, b.stdinErr = sketchOne(req, params, filter, onKind)
				})
				if b.stdinErr != nil {
					return fmt.Errorf("%s: %w", req.Filename, b.stdinErr)
				}
				results[i] = b.stdinResult
				return nil
			}
			s, err := sketchOne(req, params, filter, onKind)
			if err != nil {
				return fmt.Errorf("%s: %w", req.Filename, err)
			}
			results[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func sketchOne(req Request, params *sketch.Params, filter sketch.FilterParams, onKind func(string, kmer.Kind)) (*sketch.Sketch, error) {
	name := req.Name
	if name == "" {
		name = req.Filename
	}

	feeder, err := kmer.NewFeeder(req.Filename)
	if err != nil {
		return nil, err
	}

	builder, err := sketch.NewBuilder(name, params, filter)
	if err != nil {
		return nil, err
	}
	builder.SetComment(req.Comment)

	feeder.OnKind(func(k kmer.Kind) {
		builder.SetKind(k)
		if onKind != nil {
			onKind(req.Filename, k)
		}
	})

	for {
		bases, err := feeder.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := builder.Process(bases); err != nil {
			return nil, err
		}
	}

	return builder.Finish()
}
