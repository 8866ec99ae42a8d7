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
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/gridq/pkg/gfal"
	"github.com/walteh/gridq/pkg/queue"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Outcome is the terminal state an operation reached for one task
type Outcome int

const (
	OutcomeUnknown   Outcome = iota
	OutcomeSucceeded         // Primary command reported success
	OutcomeFailed            // Limited retry policy exhausted (handled, not fatal)
	OutcomeAbandoned         // Cancellation interrupted the attempt
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	case OutcomeAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// 🔁 Retry configures how failed attempts are repeated. The zero value is NOT
// valid; use RetryForever() for the historical behavior of the transfer
// scripts, which retry a failing command indefinitely with no backoff.
type Retry struct {
	Forever     bool          // Retry without bound, ignoring MaxAttempts
	MaxAttempts int           // Total attempts when Forever is false
	Backoff     time.Duration // Pause between attempts, zero for none
}

// ♾️ RetryForever returns the unbounded policy the original scripts used.
func RetryForever() Retry {
	return Retry{Forever: true}
}

// 🔍 Validate checks that the retry policy is usable
func (r Retry) Validate() error {
	if !r.Forever && r.MaxAttempts <= 0 {
		return errors.New("limited retry policy needs a positive max attempt count")
	}
	if r.Backoff < 0 {
		return errors.Errorf("backoff must not be negative, got %s", r.Backoff)
	}
	return nil
}

// Exhausted reports whether no further attempt should follow attempt attempts.
func (r Retry) Exhausted(attempt int) bool {
	return !r.Forever && attempt >= r.MaxAttempts
}

// Wait pauses for the backoff interval, returning early when ctx is cancelled.
func (r Retry) Wait(ctx context.Context) error {
	if r.Backoff <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(r.Backoff)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// 🔌 Operation drives one task to a terminal outcome. Implementations never
// surface a command failure as an error — failures are logged and retried per
// the policy; the error return is reserved for broken wiring (nil runner and
// the like), not for external-command results.
type Operation interface {
	Execute(ctx context.Context, task queue.Task) (Outcome, error)
}

// 🧰 Options carries the dependencies shared by all operations
type Options struct {
	Runner   gfal.Runner
	Commands gfal.Commands
	Retry    Retry
}

// 📦 BaseOperation holds common dependencies for operations
type BaseOperation struct {
	Runner   gfal.Runner
	Commands gfal.Commands
	Retry    Retry
}

// 🏗️ NewBaseOperation creates a base with defaults applied
func NewBaseOperation(opts Options) BaseOperation {
	return BaseOperation{
		Runner:   opts.Runner,
		Commands: opts.Commands.WithDefaults(),
		Retry:    opts.Retry,
	}
}

// 🏃 run invokes one command and logs its captured output
func (op *BaseOperation) run(ctx context.Context, kind, cmdline string) (gfal.Result, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Str("kind", kind).Msgf("%s command: %s", kind, cmdline)

	res, err := op.Runner.Run(ctx, cmdline)
	if err != nil {
		return res, err
	}

	logger.Info().Int("return_code", res.ExitCode).Msgf("%s command return code: %d", kind, res.ExitCode)
	logger.Info().Msgf("%s command standard output:\n%s", kind, res.Stdout)
	logger.Info().Msgf("%s command error output:\n%s", kind, res.Stderr)
	return res, nil
}
