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

package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biosketch/sketchkit/kmer"
	"github.com/biosketch/sketchkit/sketch"
)

func writeFasta(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSketchFilesPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	f1 := writeFasta(t, dir, "a.fa", ">a\nACGTACGTACGTACGT\n")
	f2 := writeFasta(t, dir, "b.fa", ">b\nTTTTACGTACGTACGT\n")

	params, err := sketch.NewParams(sketch.WithK(8), sketch.WithNHashes(20))
	require.NoError(t, err)

	var kinds []kmer.Kind
	r := &Runner{}
	results, err := r.SketchFiles(context.Background(), []Request{
		{Filename: f1, Name: "a"},
		{Filename: f2, Name: "b"},
	}, params, sketch.FilterParams{Oversketch: 10}, func(_ string, k kmer.Kind) {
		kinds = append(kinds, k)
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Name)
	assert.Equal(t, "b", results[1].Name)
	assert.Len(t, kinds, 2)
	for _, k := range kinds {
		assert.Equal(t, kmer.KindFASTA, k)
	}
}

func TestSketchFilesReturnsErrorForMissingFile(t *testing.T) {
	params, err := sketch.NewParams(sketch.WithK(8), sketch.WithNHashes(20))
	require.NoError(t, err)

	r := &Runner{}
	_, err = r.SketchFiles(context.Background(), []Request{
		{Filename: "/nonexistent/path/does-not-exist.fa"},
	}, params, sketch.FilterParams{Oversketch: 10}, nil)
	require.Error(t, err)
}
