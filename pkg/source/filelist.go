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
	"bufio"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 📜 LoadFilelist reads a newline-delimited filelist. The identifier is the
// text before the first comma on each line (dump files append bookkeeping
// columns after it); blank lines are dropped.
func LoadFilelist(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening filelist: %w", err)
	}
	defer f.Close()

	var files []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lfn, _, _ := strings.Cut(strings.TrimSpace(scanner.Text()), ",")
		if lfn == "" {
			continue
		}
		files = append(files, lfn)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("reading filelist: %w", err)
	}

	return files, nil
}

// 🔍 FilterFilelist narrows a filelist with glob patterns. A file is kept when
// it matches at least one include pattern (or includes is empty) and matches
// no exclude pattern.
func FilterFilelist(files, includes, excludes []string) ([]string, error) {
	filtered := make([]string, 0, len(files))
	for _, f := range files {
		keep := len(includes) == 0
		for _, pattern := range includes {
			matched, err := doublestar.Match(pattern, f)
			if err != nil {
				return nil, errors.Errorf("matching include pattern %q: %w", pattern, err)
			}
			if matched {
				keep = true
				break
			}
		}
		for _, pattern := range excludes {
			matched, err := doublestar.Match(pattern, f)
			if err != nil {
				return nil, errors.Errorf("matching exclude pattern %q: %w", pattern, err)
			}
			if matched {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, f)
		}
	}
	return filtered, nil
}
