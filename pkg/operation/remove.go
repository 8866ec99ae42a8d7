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

// 🗑️ NewRemoveOperation creates the removal operation: delete with retry,
// treating an already-absent target as success
func NewRemoveOperation(opts Options) Operation {
	return &removeOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

// 🗑️ removeOperation implements the removal operation
type removeOperation struct {
	BaseOperation
}

// 🏃 Execute runs one removal through the attempt/retry loop. The reserved
// missing-object exit code counts as success — the point of a removal is that
// the file ends up gone, and it already is.
func (op *removeOperation) Execute(ctx context.Context, task queue.Task) (Outcome, error) {
	logger := zerolog.Ctx(ctx)
	command := op.Commands.Remove(task.Destination)

	for attempt := 1; ; attempt++ {
		res, err := op.run(ctx, "remove", command)
		if ctx.Err() != nil {
			logger.Warn().Str("lfn", task.LFN).Msg("cancelling remove command subprocess due to interruption")
			return OutcomeAbandoned, nil
		}
		if err != nil {
			logger.Error().Err(err).Str("lfn", task.LFN).Msg("remove command could not run")
		} else {
			if res.ExitCode == 0 {
				return OutcomeSucceeded, nil
			}
			if res.ExitCode == op.Commands.MissingCode {
				logger.Info().Str("lfn", task.LFN).Msg("target already absent, treating removal as done")
				return OutcomeSucceeded, nil
			}
			logger.Error().
				Str("lfn", task.LFN).
				Int("return_code", res.ExitCode).
				Msg("remove command failed")
		}

		if op.Retry.Exhausted(attempt) {
			logger.Error().
				Str("lfn", task.LFN).
				Int("attempts", attempt).
				Msg("giving up on removal after exhausting retry policy")
			return OutcomeFailed, nil
		}
		if err := op.Retry.Wait(ctx); err != nil {
			return OutcomeAbandoned, nil
		}
	}
}
