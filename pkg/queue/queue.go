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

package queue

import (
	"context"
	"sync"
)

// 📦 Task describes one unit of transfer or removal work. Tasks are value
// objects: built once by a producer, dequeued by exactly one worker, and
// discarded after the worker reports the outcome.
type Task struct {
	LFN         string // Logical file name (identifier from the filelist)
	Source      string // Fully formed source URL (empty for removals)
	Destination string // Fully formed destination or removal target URL
}

// 🗃️ Queue is a FIFO pending-work container with outstanding-count tracking.
// The outstanding count covers every task ever enqueued that has not yet been
// marked done, so a party that never dequeues anything (the orchestrator) can
// observe "all work finished" via WaitDrained.
//
// All methods are safe for concurrent use by multiple workers and the
// orchestrator.
type Queue struct {
	mu          sync.Mutex
	pending     []Task
	outstanding int
	waiters     []chan struct{}
}

// 🏭 New creates an empty queue.
func New() *Queue {
	return &Queue{}
}

// ➕ Enqueue appends a task to the tail and increments the outstanding count.
func (q *Queue) Enqueue(t Task) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pending = append(q.pending, t)
	q.outstanding++
}

// 🎣 TryDequeue removes and returns the head task without blocking. The second
// return value is false when the queue is empty; workers treat that as their
// signal to exit (closed-pool semantics, never a long poll).
func (q *Queue) TryDequeue() (Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return Task{}, false
	}

	t := q.pending[0]
	q.pending = q.pending[1:]
	return t, true
}

// ✅ MarkDone decrements the outstanding count. Workers call it only after
// fully processing a task (success or a handled terminal failure), never for
// an abandoned one — abandoned work intentionally keeps the count nonzero so
// an interrupted run is observable as incomplete.
func (q *Queue) MarkDone() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.outstanding == 0 {
		return
	}

	q.outstanding--
	if q.outstanding == 0 {
		for _, w := range q.waiters {
			close(w)
		}
		q.waiters = nil
	}
}

// 📏 Len returns the number of pending (not yet dequeued) tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// 🔢 Outstanding returns the number of tasks enqueued but not yet marked done.
func (q *Queue) Outstanding() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.outstanding
}

// ⏳ WaitDrained blocks until every enqueued task has been marked done, or
// until ctx is cancelled, in which case the context error is returned and the
// queue is left as-is.
func (q *Queue) WaitDrained(ctx context.Context) error {
	q.mu.Lock()
	if q.outstanding == 0 {
		q.mu.Unlock()
		return nil
	}
	w := make(chan struct{})
	q.waiters = append(q.waiters, w)
	q.mu.Unlock()

	select {
	case <-w:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
