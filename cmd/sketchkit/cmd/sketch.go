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

package cmd

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"

	"github.com/biosketch/sketchkit/batch"
	"github.com/biosketch/sketchkit/kmer"
	"github.com/biosketch/sketchkit/serde"
	"github.com/biosketch/sketchkit/sketch"
)

func init() {
	RootCmd.AddCommand(sketchCmd)

	sketchCmd.Flags().IntP("kmer-length", "k", 21, "k-mer length")
	sketchCmd.Flags().IntP("n-hashes", "n", 2000, "number of hashes to retain per sketch")
	sketchCmd.Flags().Uint64("seed", 0, "hash seed")
	sketchCmd.Flags().Bool("no-canonical", false, "do not canonicalize k-mers to their lexicographically smaller strand")

	sketchCmd.Flags().BoolP("filter", "f", false, "apply the abundance-filter pipeline before truncating to n-hashes (default: on for FASTQ input, off for FASTA)")
	sketchCmd.Flags().Bool("no-filter", false, "disable the abundance-filter pipeline (conflicts with --filter)")
	sketchCmd.Flags().Uint32("min-abun-filter", 0, "drop k-mers observed fewer than this many times, 0 disables")
	sketchCmd.Flags().Uint32("max-abun-filter", 0, "drop k-mers observed more than this many times, 0 disables")
	sketchCmd.Flags().Float64("strand-filter", 0.1, "drop k-mers whose reverse-complement fraction falls outside [strand-filter, 1-strand-filter], 0 disables")
	sketchCmd.Flags().Float64("err-filter", 1, "error-rate floor as a percentage of 100/k used when no histogram minimum is found")
	sketchCmd.Flags().Int("oversketch", 100, "multiplier on n-hashes for the pre-filter admission capacity")
	sketchCmd.Flags().BoolP("no-strict", "N", false, "do not error when a sketch has fewer than n-hashes records after filtering")

	sketchCmd.Flags().StringP("output", "o", "", "output file (suffix selects format: .bsk binary, otherwise Finch JSON)")
	sketchCmd.Flags().BoolP("std-out", "O", false, "write sketch JSON to stdout instead of a file")
}

var sketchCmd = &cobra.Command{
	Use:   "sketch [flags] file [file ...]",
	Short: "Build a bottom-k sketch for each input sequence file",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			checkError(errors.New("at least one input file is required"))
		}

		k := getFlagInt(cmd, "kmer-length")
		n := getFlagInt(cmd, "n-hashes")
		seed := getFlagUint64(cmd, "seed")
		canonical := !getFlagBool(cmd, "no-canonical")

		params, err := sketch.NewParams(
			sketch.WithK(k),
			sketch.WithNHashes(n),
			sketch.WithSeed(seed),
			sketch.WithCanonical(canonical),
		)
		checkError(err)

		filterSet := cmd.Flags().Changed("filter")
		noFilterSet := cmd.Flags().Changed("no-filter")
		if filterSet && noFilterSet {
			checkError(errors.New("--filter and --no-filter are mutually exclusive"))
		}
		on := sketch.Unset
		switch {
		case noFilterSet:
			on = sketch.Disabled
		case filterSet:
			on = sketch.Enabled
		}
		filter := sketch.FilterParams{
			On:           on,
			MinAbundance: getFlagUint32(cmd, "min-abun-filter"),
			MaxAbundance: getFlagUint32(cmd, "max-abun-filter"),
			StrandFilter: getFlagFloat64(cmd, "strand-filter"),
			ErrFilter:    getFlagFloat64(cmd, "err-filter"),
			Oversketch:   getFlagInt(cmd, "oversketch"),
			Strict:       !getFlagBool(cmd, "no-strict"),
		}
		checkError(filter.Validate(k))

		reqs := make([]batch.Request, len(args))
		for i, a := range args {
			reqs[i] = batch.Request{Filename: a, Name: a}
		}

		r := &batch.Runner{}
		sketches, err := r.SketchFiles(context.Background(), reqs, params, filter, func(filename string, kind kmer.Kind) {
			log.Infof("%s: detected %s input", filename, kind)
		})
		checkError(err)

		stdout := getFlagBool(cmd, "std-out")
		output := getFlagString(cmd, "output")
		if !stdout && output == "" {
			output = args[0] + ".sk"
		}

		if stdout {
			checkError(serde.WriteFinchJSON(os.Stdout, sketches, false))
			return
		}

		w, err := xopen.Wopen(output)
		checkError(err)
		defer w.Close()

		if len(output) > 4 && output[len(output)-4:] == ".bsk" {
			checkError(serde.WriteFinchBinary(w, sketches))
			return
		}
		checkError(serde.WriteFinchJSON(w, sketches, false))
	},
}
