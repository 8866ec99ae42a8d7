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
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/gridq/pkg/gfal"
	"github.com/walteh/gridq/pkg/log"
	"github.com/walteh/gridq/pkg/operation"
	"github.com/walteh/gridq/pkg/queue"
	"github.com/walteh/gridq/pkg/source"
	"github.com/walteh/gridq/pkg/status"
)

// 🎭 fakeRunner simulates the gfal tools: removals always succeed, copies fail
// as many times as scripted for their destination
type fakeRunner struct {
	mu            sync.Mutex
	failRemaining map[string]int
	commands      []string
}

func (r *fakeRunner) Run(ctx context.Context, cmdline string) (gfal.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, cmdline)

	if strings.HasPrefix(cmdline, "gfal-rm") {
		return gfal.Result{}, nil
	}
	for dest, n := range r.failRemaining {
		if n > 0 && strings.Contains(cmdline, dest) {
			r.failRemaining[dest] = n - 1
			return gfal.Result{ExitCode: 1}, nil
		}
	}
	return gfal.Result{}, nil
}

func (r *fakeRunner) count(prefix string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.commands {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// 🎭 cancellingOperation cancels the run on its first task
type cancellingOperation struct {
	cancel context.CancelFunc
	once   sync.Once
}

func (c *cancellingOperation) Execute(ctx context.Context, task queue.Task) (operation.Outcome, error) {
	c.once.Do(c.cancel)
	return operation.OutcomeAbandoned, nil
}

func newTestOptions(t *testing.T, producer source.Producer, op operation.Operation, workers int) Options {
	t.Helper()
	logger := zerolog.Nop()
	return Options{
		Kind:      "copy",
		Producer:  producer,
		Operation: op,
		Workers:   workers,
		Status:    status.New(&logger),
		Feedback:  log.NewFeedbackWithWriter(context.Background(), &bytes.Buffer{}),
	}
}

func copyProducer(files ...string) *source.List {
	return &source.List{
		Files:        files,
		InputPrefix:  "gsiftp://old.site",
		OutputPrefix: "gsiftp://new.site",
		OldDirectory: "/data/",
		NewDirectory: "/copy/",
	}
}

// 🧪 TestNewValidation tests option validation
func TestNewValidation(t *testing.T) {
	logger := zerolog.Nop()
	valid := newTestOptions(t, copyProducer("/data/a.root"), operation.NewCopyOperation(operation.Options{
		Runner: &fakeRunner{}, Retry: operation.RetryForever(),
	}), 2)

	_, err := New(valid)
	require.NoError(t, err, "valid options should be accepted")

	broken := valid
	broken.Producer = nil
	_, err = New(broken)
	assert.Error(t, err, "a producer is required")

	broken = valid
	broken.Operation = nil
	_, err = New(broken)
	assert.Error(t, err, "an operation is required")

	broken = valid
	broken.Workers = -1
	_, err = New(broken)
	assert.Error(t, err, "a negative worker count is invalid")

	defaulted := valid
	defaulted.Workers = 0
	defaulted.Status = status.New(&logger)
	o, err := New(defaulted)
	require.NoError(t, err)
	assert.Equal(t, DefaultWorkers, o.opts.Workers, "a zero worker count should take the default")
}

// 🧪 TestRunAllTransfersSucceed tests a clean run over more files than workers
func TestRunAllTransfersSucceed(t *testing.T) {
	runner := &fakeRunner{}
	op := operation.NewCopyOperation(operation.Options{Runner: runner, Retry: operation.RetryForever()})
	orch, err := New(newTestOptions(t, copyProducer("/data/a.txt", "/data/b.txt", "/data/c.txt"), op, 2))
	require.NoError(t, err)

	summary, err := orch.Run(context.Background())
	require.NoError(t, err, "a drained queue is a clean run")

	assert.Equal(t, 3, summary.Enqueued)
	assert.Equal(t, 3, summary.Succeeded, "every transfer should succeed")
	assert.True(t, summary.Complete(), "the run should be complete")
	assert.Equal(t, 3, runner.count("gfal-copy"), "each file should be copied exactly once")
	assert.Equal(t, 0, runner.count("gfal-rm"), "clean transfers need no cleanup")
}

// 🧪 TestRunRetriesFailingTransfer tests that a transient failure is cleaned
// up and retried while the rest of the run proceeds
func TestRunRetriesFailingTransfer(t *testing.T) {
	runner := &fakeRunner{failRemaining: map[string]int{
		"gsiftp://new.site/copy/b.txt": 1,
	}}
	op := operation.NewCopyOperation(operation.Options{Runner: runner, Retry: operation.RetryForever()})
	orch, err := New(newTestOptions(t, copyProducer("/data/a.txt", "/data/b.txt", "/data/c.txt"), op, 2))
	require.NoError(t, err)

	summary, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Succeeded, "the failing transfer should eventually succeed")
	assert.True(t, summary.Complete())
	assert.Equal(t, 4, runner.count("gfal-copy"), "one retry means one extra copy command")
	assert.Equal(t, 1, runner.count("gfal-rm"), "exactly one cleanup for the one failed attempt")
}

// 🧪 TestRunInterrupted tests that cancellation yields ErrInterrupted and an
// incomplete summary
func TestRunInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	op := &cancellingOperation{cancel: cancel}
	orch, err := New(newTestOptions(t, copyProducer("/data/a.txt", "/data/b.txt", "/data/c.txt"), op, 1))
	require.NoError(t, err)

	summary, err := orch.Run(ctx)
	assert.ErrorIs(t, err, ErrInterrupted, "an interrupted run should be reported as such")

	assert.Equal(t, 3, summary.Enqueued)
	assert.GreaterOrEqual(t, summary.Abandoned, 1, "the in-flight task should be abandoned")
	assert.False(t, summary.Complete(), "an interrupted run is never complete")
}

// 🧪 TestRunProducerError tests that a broken producer fails the run up front
func TestRunProducerError(t *testing.T) {
	op := operation.NewCopyOperation(operation.Options{Runner: &fakeRunner{}, Retry: operation.RetryForever()})
	producer := &source.List{Files: []string{"/data/a.txt"}} // no old directory to rewrite
	orch, err := New(newTestOptions(t, producer, op, 1))
	require.NoError(t, err)

	_, err = orch.Run(context.Background())
	assert.Error(t, err, "a producer error should abort the run before any work starts")
}
