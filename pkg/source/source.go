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
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/gridq/pkg/queue"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Producer builds the full task list for one run. Producers are the only
// part of the pipeline that differs between the copy, stress and remove
// commands — everything downstream shares the same queue/worker core.
type Producer interface {
	Tasks(ctx context.Context) ([]queue.Task, error)
}

// 📋 List produces one copy task per logical file name: the source is the
// input prefix plus the name, the destination is the output prefix plus the
// name with every occurrence of OldDirectory rewritten to NewDirectory.
type List struct {
	Files        []string
	InputPrefix  string
	OutputPrefix string
	OldDirectory string
	NewDirectory string
}

// 🏃 Tasks implements Producer.
func (p *List) Tasks(ctx context.Context) ([]queue.Task, error) {
	if p.OldDirectory == "" {
		return nil, errors.New("old directory must not be empty")
	}

	tasks := make([]queue.Task, 0, len(p.Files))
	for _, lfn := range p.Files {
		tasks = append(tasks, queue.Task{
			LFN:         lfn,
			Source:      p.InputPrefix + lfn,
			Destination: p.OutputPrefix + strings.ReplaceAll(lfn, p.OldDirectory, p.NewDirectory),
		})
	}
	return tasks, nil
}

// 🔁 Cycle produces Transfers copy tasks by cycling over a finite source list
// in round-robin order, pairing each repetition with a freshly generated
// UUID-based destination basename. Destinations are collision-free even when
// the same source is transferred many times.
type Cycle struct {
	Files        []string
	Transfers    int
	Extension    string
	InputPrefix  string
	OutputPrefix string
	NewDirectory string
}

// 🏃 Tasks implements Producer.
func (p *Cycle) Tasks(ctx context.Context) ([]queue.Task, error) {
	if len(p.Files) == 0 {
		return nil, errors.New("source list must not be empty")
	}
	if p.Transfers <= 0 {
		return nil, errors.Errorf("transfer count must be positive, got %d", p.Transfers)
	}

	logger := zerolog.Ctx(ctx)

	tasks := make([]queue.Task, 0, p.Transfers)
	for i := 0; i < p.Transfers; i++ {
		lfn := p.Files[i%len(p.Files)]
		name := fmt.Sprintf("%s%s", uuid.NewString(), p.Extension)
		logger.Info().Str("source", lfn).Str("name", name).Msg("generated transfer")
		tasks = append(tasks, queue.Task{
			LFN:         lfn,
			Source:      joinPrefix(p.InputPrefix, lfn),
			Destination: joinPrefix(joinPrefix(p.OutputPrefix, p.NewDirectory), name),
		})
	}
	return tasks, nil
}

// 🗑️ Removal produces one removal task per logical file name. Removal tasks
// carry no source: only the target under the storage prefix.
type Removal struct {
	Files  []string
	Prefix string
}

// 🏃 Tasks implements Producer.
func (p *Removal) Tasks(ctx context.Context) ([]queue.Task, error) {
	if p.Prefix == "" {
		return nil, errors.New("storage prefix must not be empty")
	}

	tasks := make([]queue.Task, 0, len(p.Files))
	for _, lfn := range p.Files {
		tasks = append(tasks, queue.Task{
			LFN:         lfn,
			Destination: joinPrefix(p.Prefix, lfn),
		})
	}
	return tasks, nil
}

// joinPrefix joins a storage prefix and a path with exactly one slash.
// Storage prefixes are URLs, so filepath.Join would mangle the scheme.
func joinPrefix(prefix, path string) string {
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(path, "/")
}
