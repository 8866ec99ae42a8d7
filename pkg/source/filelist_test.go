// Copyright 2025 walteh LLC
//
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

package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestLoadFilelist tests parsing of dump-style filelists
func TestLoadFilelist(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filelist.txt")
	content := `/store/run1/a.root,123456,adler32
/store/run1/b.root

/store/run2/c.root,789

/store/run2/d.root`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	files, err := LoadFilelist(path)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/store/run1/a.root",
		"/store/run1/b.root",
		"/store/run2/c.root",
		"/store/run2/d.root",
	}, files, "should keep the first comma field and drop blank lines")
}

// 🧪 TestLoadFilelistMissingFile tests the open error path
func TestLoadFilelistMissingFile(t *testing.T) {
	_, err := LoadFilelist(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err, "a missing filelist should be reported")
}

// 🧪 TestFilterFilelist tests include/exclude glob filtering
func TestFilterFilelist(t *testing.T) {
	files := []string{
		"/store/run1/a.root",
		"/store/run1/a.log",
		"/store/run2/b.root",
	}

	tests := []struct {
		name     string
		includes []string
		excludes []string
		want     []string
	}{
		{
			name: "no_patterns_keeps_everything",
			want: files,
		},
		{
			name:     "include_by_extension",
			includes: []string{"**/*.root"},
			want:     []string{"/store/run1/a.root", "/store/run2/b.root"},
		},
		{
			name:     "exclude_one_run",
			excludes: []string{"/store/run1/**"},
			want:     []string{"/store/run2/b.root"},
		},
		{
			name:     "exclude_beats_include",
			includes: []string{"**/*.root"},
			excludes: []string{"**/b.root"},
			want:     []string{"/store/run1/a.root"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FilterFilelist(files, tt.includes, tt.excludes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "filtered list should match")
		})
	}
}

// 🧪 TestFilterFilelistBadPattern tests pattern error reporting
func TestFilterFilelistBadPattern(t *testing.T) {
	_, err := FilterFilelist([]string{"a"}, []string{"[unclosed"}, nil)
	assert.Error(t, err, "a malformed include pattern should be reported")

	_, err = FilterFilelist([]string{"a"}, nil, []string{"[unclosed"})
	assert.Error(t, err, "a malformed exclude pattern should be reported")
}
