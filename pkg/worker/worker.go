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

package worker

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/gridq/pkg/log"
	"github.com/walteh/gridq/pkg/operation"
	"github.com/walteh/gridq/pkg/queue"
	"github.com/walteh/gridq/pkg/status"
	"golang.org/x/sync/errgroup"
)

// 👷 Worker drains the shared queue, running the operation against each task.
// A worker owns no state beyond its name and the task currently in flight.
type Worker struct {
	name     string
	queue    *queue.Queue
	op       operation.Operation
	status   *status.Manager
	feedback *log.Feedback
}

// 🏗️ New creates a worker bound to a queue and an operation
func New(name string, q *queue.Queue, op operation.Operation, st *status.Manager, fb *log.Feedback) *Worker {
	return &Worker{
		name:     name,
		queue:    q,
		op:       op,
		status:   st,
		feedback: fb,
	}
}

// 🏃 Run pulls tasks until the queue is empty or ctx is cancelled. Finding the
// queue empty is the normal exit — this is a pull pool over a bounded batch of
// work, not a long-running service — so a pool larger than the task list just
// sheds its excess workers immediately.
func (w *Worker) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx).With().Str("worker", w.name).Logger()
	ctx = logger.WithContext(ctx)
	logger.Info().Msg("activated")

	for {
		if ctx.Err() != nil {
			logger.Info().Msg("shutting down due to interruption")
			return ctx.Err()
		}

		task, ok := w.queue.TryDequeue()
		if !ok {
			logger.Info().Msg("queue empty, shutting down")
			return nil
		}

		if task.LFN == "" {
			// Defensive no-op: a malformed record slipped through the
			// filelist glue. Not marked done, not a failure.
			logger.Warn().Msg("skipping task with empty identifier")
			w.status.TrackSkipped(ctx)
			w.feedback.LogTaskEvent(log.TaskEvent{Type: log.TaskSkipped, Worker: w.name})
			continue
		}

		logger.Info().Str("lfn", task.LFN).Msg("starting transfer process")
		w.status.Track(ctx, task.Destination, status.TaskInfo{
			LFN:    task.LFN,
			Worker: w.name,
			Status: status.StatusAttempting,
		})

		outcome, err := w.op.Execute(ctx, task)
		if err != nil {
			// Broken wiring, not a command failure. Treat like a handled
			// terminal failure so the queue can still drain.
			logger.Error().Err(err).Str("lfn", task.LFN).Msg("operation error")
			w.status.Track(ctx, task.Destination, status.TaskInfo{
				LFN: task.LFN, Worker: w.name, Status: status.StatusFailed, Error: err,
			})
			w.feedback.LogTaskEvent(log.TaskEvent{Type: log.TaskFailed, LFN: task.LFN, Worker: w.name, Error: err})
			w.queue.MarkDone()
			continue
		}

		switch outcome {
		case operation.OutcomeSucceeded:
			w.status.Track(ctx, task.Destination, status.TaskInfo{
				LFN: task.LFN, Worker: w.name, Status: status.StatusSucceeded,
			})
			w.feedback.LogTaskEvent(log.TaskEvent{Type: log.TaskSucceeded, LFN: task.LFN, Worker: w.name})
			w.queue.MarkDone()
		case operation.OutcomeFailed:
			w.status.Track(ctx, task.Destination, status.TaskInfo{
				LFN: task.LFN, Worker: w.name, Status: status.StatusFailed,
			})
			w.feedback.LogTaskEvent(log.TaskEvent{Type: log.TaskFailed, LFN: task.LFN, Worker: w.name})
			w.queue.MarkDone()
		case operation.OutcomeAbandoned:
			// Abandoned work is intentionally never marked done: the
			// outstanding count has to reflect the incomplete run.
			w.status.Track(ctx, task.Destination, status.TaskInfo{
				LFN: task.LFN, Worker: w.name, Status: status.StatusAbandoned,
			})
			w.feedback.LogTaskEvent(log.TaskEvent{Type: log.TaskAbandoned, LFN: task.LFN, Worker: w.name})
			logger.Info().Msg("shutting down due to interruption")
			return ctx.Err()
		}
	}
}

// 🏊 Pool spawns a fixed number of workers over one queue
type Pool struct {
	workers []*Worker
}

// 🏗️ NewPool creates n workers named <kind>_worker_<index>
func NewPool(kind string, n int, q *queue.Queue, op operation.Operation, st *status.Manager, fb *log.Feedback) *Pool {
	workers := make([]*Worker, 0, n)
	for i := 0; i < n; i++ {
		workers = append(workers, New(fmt.Sprintf("%s_worker_%d", kind, i), q, op, st, fb))
	}
	return &Pool{workers: workers}
}

// Size returns the number of workers in the pool
func (p *Pool) Size() int {
	return len(p.workers)
}

// 🏃 Run starts every worker and blocks until all have unwound. The returned
// error is the first worker error observed, which under normal operation is
// either nil (queue drained) or the cancellation error.
func (p *Pool) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, w := range p.workers {
		w := w // per-iteration capture for toolchains below go1.22
		g.Go(func() error {
			return w.Run(gctx)
		})
	}
	return g.Wait()
}
