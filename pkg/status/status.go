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

package status

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 TaskStatus represents the current state of one task
type TaskStatus int

const (
	StatusUnknown    TaskStatus = iota
	StatusQueued                // Enqueued, not yet picked up by a worker
	StatusAttempting            // Held by a worker, command in flight
	StatusSucceeded             // Primary command reported success
	StatusFailed                // Limited retry policy exhausted
	StatusAbandoned             // Cancellation interrupted the attempt
)

// String returns a string representation of TaskStatus
func (s TaskStatus) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusAttempting:
		return "attempting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// 📄 TaskInfo contains per-task bookkeeping for one run
type TaskInfo struct {
	LFN    string     // Logical file name
	Worker string     // Worker that handled the task
	Status TaskStatus // Current status
	Error  error      // Last error associated with this task
}

// 📈 Summary aggregates the observable outcome of a run
type Summary struct {
	Enqueued  int
	Succeeded int
	Failed    int
	Abandoned int
	Skipped   int
}

// Complete reports whether every enqueued task reached a terminal handled
// outcome (succeeded or failed, nothing abandoned or skipped).
func (s Summary) Complete() bool {
	return s.Abandoned == 0 && s.Skipped == 0 && s.Succeeded+s.Failed == s.Enqueued
}

// 🔧 Manager tracks task status and run progress across concurrent workers
type Manager struct {
	logger    *zerolog.Logger
	formatter Formatter

	mu      sync.RWMutex
	tasks   map[string]TaskInfo // keyed by destination, unique within a run
	total   int
	done    int
	skipped int
}

// 🏭 New creates a new status manager
func New(logger *zerolog.Logger) *Manager {
	return &Manager{
		logger:    logger,
		formatter: NewDefaultFormatter(),
		tasks:     make(map[string]TaskInfo),
	}
}

// 🚦 StartRun resets progress tracking for a run of total tasks
func (m *Manager) StartRun(ctx context.Context, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total = total
	m.done = 0
	m.skipped = 0
	m.tasks = make(map[string]TaskInfo, total)
	m.logger.Info().Int("total", total).Msg(m.formatter.FormatProgress(0, total))
}

// 📝 Track records the current state of a task, keyed by its destination
func (m *Manager) Track(ctx context.Context, destination string, info TaskInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	previous := m.tasks[destination].Status
	m.tasks[destination] = info

	if terminal(info.Status) && !terminal(previous) {
		m.done++
	}

	msg := m.formatter.FormatTransfer(info.LFN, info.Status)
	if info.Error != nil {
		msg = m.formatter.FormatError(info.Error)
	}
	m.logger.Info().
		Str("lfn", info.LFN).
		Str("worker", info.Worker).
		Str("status", info.Status.String()).
		Msg(msg)

	if terminal(info.Status) {
		m.logger.Info().
			Int("done", m.done).
			Int("total", m.total).
			Msg(m.formatter.FormatProgress(m.done, m.total))
	}
}

// ⏭️ TrackSkipped counts a malformed task that was dropped without processing
func (m *Manager) TrackSkipped(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skipped++
}

// 🔍 Get returns the tracked info for a destination
func (m *Manager) Get(ctx context.Context, destination string) (TaskInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info, ok := m.tasks[destination]
	if !ok {
		return TaskInfo{}, errors.Errorf("task not tracked: %s", destination)
	}
	return info, nil
}

// 📜 List returns a snapshot of all tracked tasks
func (m *Manager) List(ctx context.Context) []TaskInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tasks := make([]TaskInfo, 0, len(m.tasks))
	for _, info := range m.tasks {
		tasks = append(tasks, info)
	}
	return tasks
}

// 🧮 Summary aggregates counts over everything tracked so far
func (m *Manager) Summary() Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Summary{Enqueued: m.total, Skipped: m.skipped}
	for _, info := range m.tasks {
		switch info.Status {
		case StatusSucceeded:
			s.Succeeded++
		case StatusFailed:
			s.Failed++
		case StatusAbandoned:
			s.Abandoned++
		}
	}
	return s
}

func terminal(s TaskStatus) bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusAbandoned:
		return true
	}
	return false
}
