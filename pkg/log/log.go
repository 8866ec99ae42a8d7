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
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent transfer entries
	nameWidth   = 45 // Base width for logical file names
	workerWidth = 18 // Width for worker identity
	statusWidth = 12 // Width for status text
)

// 🎯 TransferOperation represents one task transition for logging
type TransferOperation struct {
	LFN         string // Logical file name
	Worker      string // Worker handling the task
	Status      string // Transition (queued/attempting/succeeded/...)
	Attempt     int    // Attempt number, 0 when not applicable
	IsSuccess   bool   // Task reached its terminal success state
	IsRetry     bool   // A failed attempt is about to be retried
	IsAbandoned bool   // Cancellation interrupted the task
}

// 📦 RunOperation represents one queue run for logging
type RunOperation struct {
	Command string // Subcommand driving the run (copy/stress/remove)
	Files   int    // Number of tasks enqueued
	Workers int    // Worker pool size
	DryRun  bool   // Whether the dry-run flag is forwarded
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentRun *RunOperation
	transfers  []TransferOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatTransferOperation formats a transfer transition for display
func (l *Logger) formatTransferOperation(op TransferOperation) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsAbandoned:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.IsSuccess:
		symbol = '✓'
		symbolColor = color.FgGreen
	case op.IsRetry:
		symbol = '⟳'
		symbolColor = color.FgYellow
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	// Build the line
	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.LFN),
		color.New(color.Faint).Sprint(fmt.Sprintf("%-*s", workerWidth, op.Worker)),
		fmt.Sprintf("%-*s", statusWidth, op.Status))
}

// 📝 LogTransferOperation logs a transfer transition
func (l *Logger) LogTransferOperation(ctx context.Context, op TransferOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Add to transfers list
	l.transfers = append(l.transfers, op)

	// Format and print
	fmt.Fprintln(l.console, l.formatTransferOperation(op))

	// Log to zerolog
	l.zlog.Info().
		Str("lfn", op.LFN).
		Str("worker", op.Worker).
		Str("status", op.Status).
		Int("attempt", op.Attempt).
		Bool("is_success", op.IsSuccess).
		Bool("is_retry", op.IsRetry).
		Bool("is_abandoned", op.IsAbandoned).
		Msg("transfer operation")
}

// 📝 StartRunOperation starts a new queue run
func (l *Logger) StartRunOperation(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentRun = &op
	l.transfers = nil

	// Print run header
	fmt.Fprintf(l.console, "[%s run]\n",
		color.New(color.FgCyan).Sprint(op.Command))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprintf("%d files", op.Files),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d workers", op.Workers))

	// Log to zerolog
	l.zlog.Info().
		Str("command", op.Command).
		Int("files", op.Files).
		Int("workers", op.Workers).
		Bool("dry_run", op.DryRun).
		Msg("starting queue run")
}

// 📝 EndRunOperation ends the current queue run
func (l *Logger) EndRunOperation(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentRun == nil {
		return
	}

	// Log summary
	l.zlog.Info().
		Str("command", l.currentRun.Command).
		Int("transfers", len(l.transfers)).
		Msg("queue run complete")

	l.currentRun = nil
	l.transfers = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	gridqText := color.New(color.Bold, color.FgCyan).Sprint("gridq")
	fmt.Fprintf(l.console, "\n%s %s\n\n", gridqText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
