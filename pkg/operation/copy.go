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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/gridq/pkg/queue"
)

// 📦 NewCopyOperation creates the copy operation: transfer with a
// compensating removal before every retry
func NewCopyOperation(opts Options) Operation {
	return &copyOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

// 📦 copyOperation implements the copy operation
type copyOperation struct {
	BaseOperation
}

// 🏃 Execute runs one task through the attempt/compensate/retry loop.
//
// A nonzero exit from the copy tool means the destination may hold a partial
// object that a later reader could mistake for a complete file, so the
// destination is removed before every retry. The compensating removal's own
// result is logged but never influences control flow.
func (op *copyOperation) Execute(ctx context.Context, task queue.Task) (Outcome, error) {
	logger := zerolog.Ctx(ctx)
	command := op.Commands.Copy(task.Source, task.Destination)

	for attempt := 1; ; attempt++ {
		res, err := op.run(ctx, "copy", command)
		if ctx.Err() != nil {
			logger.Warn().Str("lfn", task.LFN).Msg("cancelling copy command subprocess due to interruption")
			return OutcomeAbandoned, nil
		}
		if err != nil {
			logger.Error().Err(err).Str("lfn", task.LFN).Msg("copy command could not run")
		} else if res.ExitCode == 0 {
			return OutcomeSucceeded, nil
		} else {
			logger.Error().
				Str("lfn", task.LFN).
				Int("return_code", res.ExitCode).
				Msg("copy command failed, trying to remove the file from target site")
		}

		op.compensate(ctx, task)
		if ctx.Err() != nil {
			logger.Warn().Str("lfn", task.LFN).Msg("cancelling copy retry due to interruption")
			return OutcomeAbandoned, nil
		}

		if op.Retry.Exhausted(attempt) {
			logger.Error().
				Str("lfn", task.LFN).
				Int("attempts", attempt).
				Msg("giving up on copy after exhausting retry policy")
			return OutcomeFailed, nil
		}
		if err := op.Retry.Wait(ctx); err != nil {
			return OutcomeAbandoned, nil
		}
	}
}

// 🧹 compensate removes the (possibly partial) destination object
func (op *copyOperation) compensate(ctx context.Context, task queue.Task) {
	logger := zerolog.Ctx(ctx)
	command := op.Commands.Compensate(task.Destination)
	if _, err := op.run(ctx, "remove", command); err != nil && ctx.Err() == nil {
		logger.Error().Err(err).Str("lfn", task.LFN).Msg("compensating remove command could not run")
	}
}
