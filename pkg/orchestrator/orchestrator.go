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

package orchestrator

import (
	"context"

	"github.com/lithammer/shortuuid/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/gridq/pkg/log"
	"github.com/walteh/gridq/pkg/operation"
	"github.com/walteh/gridq/pkg/queue"
	"github.com/walteh/gridq/pkg/source"
	"github.com/walteh/gridq/pkg/status"
	"github.com/walteh/gridq/pkg/worker"
	"gitlab.com/tozd/go/errors"
)

// DefaultWorkers is the historical pool size of the transfer scripts.
const DefaultWorkers = 15

// 🛑 ErrInterrupted reports that cancellation ended the run before the queue
// drained. The process exit status reflects only this, never per-task
// outcomes — those are observational, via the summary and the logs.
var ErrInterrupted = errors.New("run interrupted before the queue drained")

// 🧰 Options wires one queue run together
type Options struct {
	Kind      string              // Worker name prefix and log label (copy/stress/remove)
	Producer  source.Producer     // Builds the task list
	Operation operation.Operation // Policy executed per task
	Workers   int                 // Pool size, DefaultWorkers when zero
	Status    *status.Manager     // Outcome bookkeeping
	Feedback  *log.Feedback       // User-facing per-task output
}

// 🎛️ Orchestrator owns the ephemeral state of one run: the task list, the
// queue and the worker pool. Nothing survives the run.
type Orchestrator struct {
	opts  Options
	queue *queue.Queue
}

// 🏗️ New validates options and creates an orchestrator
func New(opts Options) (*Orchestrator, error) {
	if opts.Producer == nil {
		return nil, errors.New("producer is required")
	}
	if opts.Operation == nil {
		return nil, errors.New("operation is required")
	}
	if opts.Status == nil {
		return nil, errors.New("status manager is required")
	}
	if opts.Feedback == nil {
		return nil, errors.New("feedback logger is required")
	}
	if opts.Workers < 0 {
		return nil, errors.Errorf("worker count must not be negative, got %d", opts.Workers)
	}
	if opts.Workers == 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Kind == "" {
		opts.Kind = "transfer"
	}
	return &Orchestrator{
		opts:  opts,
		queue: queue.New(),
	}, nil
}

// 🏃 Run executes one full queue run: build tasks, enqueue, spawn workers,
// wait for drain or cancellation, then wait for every worker to unwind. The
// summary is always returned, even for interrupted runs; the error is
// ErrInterrupted when cancellation cut the run short.
func (o *Orchestrator) Run(ctx context.Context) (status.Summary, error) {
	// Short run id to tell overlapping runs apart in aggregated logs
	logger := zerolog.Ctx(ctx).With().Str("run", shortuuid.New()).Logger()
	ctx = logger.WithContext(ctx)

	tasks, err := o.opts.Producer.Tasks(ctx)
	if err != nil {
		return status.Summary{}, errors.Errorf("building task list: %w", err)
	}

	logger.Info().Int("files", len(tasks)).Msgf("starting %s process with %d files", o.opts.Kind, len(tasks))
	o.opts.Status.StartRun(ctx, len(tasks))

	for _, t := range tasks {
		logger.Info().Str("lfn", t.LFN).Msg("putting file in queue")
		o.queue.Enqueue(t)
	}

	pool := worker.NewPool(o.opts.Kind, o.opts.Workers, o.queue, o.opts.Operation, o.opts.Status, o.opts.Feedback)
	logger.Info().Int("queue_size", o.queue.Len()).Msg("queue populated")
	logger.Info().Int("workers", pool.Size()).Msg("spawning workers")

	poolDone := make(chan error, 1)
	go func() {
		poolDone <- pool.Run(ctx)
	}()

	interrupted := false
	logger.Info().Msg("joining queue")
	if err := o.queue.WaitDrained(ctx); err != nil {
		logger.Warn().Msg("caught interruption")
		interrupted = true
	} else {
		logger.Info().Msg("joining queue finished")
	}

	// Workers exit on their own once the queue is empty; on interruption the
	// shared context has already told each of them to terminate its command
	// and unwind. Either way, wait for all of them and collect the error
	// without propagating it.
	if err := <-poolDone; err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn().Err(err).Msg("worker pool exited with error")
	}
	logger.Info().Msgf("%s finished", o.opts.Kind)

	summary := o.opts.Status.Summary()
	if interrupted {
		return summary, ErrInterrupted
	}
	return summary, nil
}
