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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/gridq/pkg/gfal"
)

// 🎭 scriptedRunner replays a fixed sequence of results, recording every
// command line it was asked to run. When the script runs out the last entry
// repeats. cancelOn (1-based) cancels the context during that call, the way a
// real runner surfaces a terminated subprocess.
type scriptedRunner struct {
	mu       sync.Mutex
	script   []gfal.Result
	commands []string
	cancelOn int
	cancel   context.CancelFunc
}

func (r *scriptedRunner) Run(ctx context.Context, cmdline string) (gfal.Result, error) {
	r.mu.Lock()
	r.commands = append(r.commands, cmdline)
	call := len(r.commands)
	res := gfal.Result{}
	if len(r.script) > 0 {
		if call <= len(r.script) {
			res = r.script[call-1]
		} else {
			res = r.script[len(r.script)-1]
		}
	}
	r.mu.Unlock()

	if r.cancelOn != 0 && call == r.cancelOn {
		r.cancel()
		return res, ctx.Err()
	}
	return res, nil
}

func (r *scriptedRunner) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.commands...)
}

// 🧪 TestRetryValidate tests retry policy validation
func TestRetryValidate(t *testing.T) {
	assert.NoError(t, RetryForever().Validate(), "the unbounded policy is always valid")
	assert.NoError(t, Retry{MaxAttempts: 3}.Validate(), "a positive attempt count is valid")
	assert.Error(t, Retry{}.Validate(), "the zero value has no attempts and is invalid")
	assert.Error(t, Retry{MaxAttempts: 3, Backoff: -time.Second}.Validate(),
		"a negative backoff is invalid")
}

// 🧪 TestRetryExhausted tests attempt accounting
func TestRetryExhausted(t *testing.T) {
	forever := RetryForever()
	assert.False(t, forever.Exhausted(1000000), "the unbounded policy never exhausts")

	limited := Retry{MaxAttempts: 3}
	assert.False(t, limited.Exhausted(2), "attempts below the limit should continue")
	assert.True(t, limited.Exhausted(3), "reaching the limit should stop")
}

// 🧪 TestRetryWait tests backoff cancellation
func TestRetryWait(t *testing.T) {
	noBackoff := RetryForever()
	assert.NoError(t, noBackoff.Wait(context.Background()), "zero backoff should not block")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, noBackoff.Wait(ctx), context.Canceled,
		"even a zero backoff should notice cancellation")

	slow := Retry{MaxAttempts: 2, Backoff: time.Hour}
	ctx, cancel = context.WithCancel(context.Background())
	go cancel()
	assert.ErrorIs(t, slow.Wait(ctx), context.Canceled,
		"cancellation should cut a long backoff short")
}

// 🧪 TestOutcomeString tests outcome formatting
func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "succeeded", OutcomeSucceeded.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
	assert.Equal(t, "abandoned", OutcomeAbandoned.String())
	assert.Equal(t, "unknown", OutcomeUnknown.String())
}
