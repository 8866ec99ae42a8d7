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

package log

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 Feedback provides user-friendly per-task output alongside structured logs
type Feedback struct {
	log zerolog.Logger // for debug/error logging
	out io.Writer
}

// 🎨 TaskEventType represents the kind of task transition being reported
type TaskEventType int

const (
	TaskQueued TaskEventType = iota
	TaskSucceeded
	TaskRetried
	TaskFailed
	TaskAbandoned
	TaskSkipped
)

// 🖼️ TaskEvent represents one user-visible task transition
type TaskEvent struct {
	Type        TaskEventType
	LFN         string
	Worker      string
	Description string
	Error       error
}

// 🎯 NewFeedback creates a new feedback printer writing to stdout
func NewFeedback(ctx context.Context) *Feedback {
	return NewFeedbackWithWriter(ctx, nil)
}

// 🎯 NewFeedbackWithWriter creates a feedback printer with a custom writer,
// mainly for tests
func NewFeedbackWithWriter(ctx context.Context, w io.Writer) *Feedback {
	return &Feedback{
		log: *zerolog.Ctx(ctx),
		out: w,
	}
}

// 📝 LogTaskEvent logs a task transition with appropriate emoji and formatting
func (f *Feedback) LogTaskEvent(event TaskEvent) {
	var prefix, action string
	var printer *pterm.PrefixPrinter
	switch event.Type {
	case TaskQueued:
		prefix = "📥"
		action = "Queued"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: prefix})
	case TaskSucceeded:
		prefix = "✨"
		action = "Transferred"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: prefix})
	case TaskRetried:
		prefix = "🔄"
		action = "Retrying"
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: prefix})
	case TaskFailed:
		prefix = "❌"
		action = "Failed"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: prefix})
	case TaskAbandoned:
		prefix = "🛑"
		action = "Abandoned"
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: prefix})
	case TaskSkipped:
		prefix = "⏭️"
		action = "Skipped"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: prefix})
	}

	if f.out != nil {
		printer = printer.WithWriter(f.out)
	}

	msg := fmt.Sprintf("%s %s", action, event.LFN)
	if event.Worker != "" {
		msg += fmt.Sprintf(" [%s]", event.Worker)
	}
	if event.Description != "" {
		msg += fmt.Sprintf(" (%s)", event.Description)
	}

	if event.Error != nil {
		printer.Println(msg)
		pterm.Error.WithWriter(f.out).Println(event.Error)
		f.log.Error().Err(event.Error).Msg(msg) // Also log to zerolog for debugging
	} else {
		printer.Println(msg)
		f.log.Info().Msg(msg) // Also log to zerolog for debugging
	}
}

// 📊 LogRunChange logs a change to the overall run
func (f *Feedback) LogRunChange(description string) {
	printer := pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"})
	if f.out != nil {
		printer = printer.WithWriter(f.out)
	}
	printer.Println(description)
	f.log.Info().Msg(description)
}

// 🧮 LogRunSummary logs the final counts of a run
func (f *Feedback) LogRunSummary(succeeded, failed, abandoned, skipped int) {
	description := fmt.Sprintf("%d succeeded, %d failed, %d abandoned, %d skipped",
		succeeded, failed, abandoned, skipped)
	if failed == 0 && abandoned == 0 && skipped == 0 {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).WithWriter(f.out).Println(description)
		f.log.Info().Msg(description)
	} else {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).WithWriter(f.out).Println(description)
		f.log.Warn().Msg(description)
	}
}
