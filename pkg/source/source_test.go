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
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestListProducer tests directory-rewrite path assembly
func TestListProducer(t *testing.T) {
	p := &List{
		Files:        []string{"/store/old/run1/a.root", "/store/old/run2/b.root"},
		InputPrefix:  "gsiftp://old.site",
		OutputPrefix: "gsiftp://new.site",
		OldDirectory: "/old/",
		NewDirectory: "/new/",
	}

	tasks, err := p.Tasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2, "one task per file")

	assert.Equal(t, "/store/old/run1/a.root", tasks[0].LFN, "the identifier should stay unrewritten")
	assert.Equal(t, "gsiftp://old.site/store/old/run1/a.root", tasks[0].Source,
		"source should be prefix plus identifier")
	assert.Equal(t, "gsiftp://new.site/store/new/run1/a.root", tasks[0].Destination,
		"destination should rewrite the directory component")
	assert.Equal(t, "gsiftp://new.site/store/new/run2/b.root", tasks[1].Destination)
}

// 🧪 TestListProducerRequiresOldDirectory tests the empty-rewrite guard
func TestListProducerRequiresOldDirectory(t *testing.T) {
	p := &List{Files: []string{"/store/a.root"}}
	_, err := p.Tasks(context.Background())
	assert.Error(t, err, "an empty old directory would rewrite nothing")
}

// 🧪 TestCycleProducer tests round-robin generation with fresh names
func TestCycleProducer(t *testing.T) {
	p := &Cycle{
		Files:        []string{"/store/a.root", "/store/b.root"},
		Transfers:    5,
		Extension:    ".root",
		InputPrefix:  "gsiftp://src.site",
		OutputPrefix: "gsiftp://dst.site/",
		NewDirectory: "loadtest",
	}

	tasks, err := p.Tasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 5, "should produce exactly the requested transfer count")

	// Round-robin over the source list
	assert.Equal(t, "/store/a.root", tasks[0].LFN)
	assert.Equal(t, "/store/b.root", tasks[1].LFN)
	assert.Equal(t, "/store/a.root", tasks[2].LFN)
	assert.Equal(t, "/store/b.root", tasks[3].LFN)
	assert.Equal(t, "/store/a.root", tasks[4].LFN)

	seen := map[string]bool{}
	for _, task := range tasks {
		assert.True(t, strings.HasPrefix(task.Destination, "gsiftp://dst.site/loadtest/"),
			"destination should live under the new directory")
		assert.True(t, strings.HasSuffix(task.Destination, ".root"),
			"destination should carry the configured extension")
		assert.False(t, seen[task.Destination], "destination %s should be unique", task.Destination)
		seen[task.Destination] = true
	}
}

// 🧪 TestCycleProducerValidation tests the guards on empty input
func TestCycleProducerValidation(t *testing.T) {
	_, err := (&Cycle{Transfers: 3}).Tasks(context.Background())
	assert.Error(t, err, "an empty source list cannot be cycled")

	_, err = (&Cycle{Files: []string{"a"}, Transfers: 0}).Tasks(context.Background())
	assert.Error(t, err, "a non-positive transfer count is invalid")
}

// 🧪 TestRemovalProducer tests removal target assembly
func TestRemovalProducer(t *testing.T) {
	p := &Removal{
		Files:  []string{"/store/a.root", "store/b.root"},
		Prefix: "gsiftp://site/",
	}

	tasks, err := p.Tasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, "gsiftp://site/store/a.root", tasks[0].Destination,
		"prefix and path should join with exactly one slash")
	assert.Equal(t, "gsiftp://site/store/b.root", tasks[1].Destination,
		"a path without a leading slash should still join cleanly")
	assert.Empty(t, tasks[0].Source, "removal tasks carry no source")

	_, err = (&Removal{Files: []string{"a"}}).Tasks(context.Background())
	assert.Error(t, err, "a removal run without a storage prefix is invalid")
}
