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

package gfal

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"syscall"

	"github.com/google/shlex"
	"gitlab.com/tozd/go/errors"
)

// 📊 Result carries the outcome of one external command invocation. A nonzero
// exit code is not an error — the retry policy inspects it.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// 🔌 Runner executes one external command to completion, capturing both output
// streams. Run is a suspension point: it returns only once the process has
// exited or has been terminated because ctx was cancelled. On cancellation the
// implementation must send the process a termination signal (best effort,
// idempotent), wait for it to exit, and return ctx's error alongside whatever
// output was captured.
type Runner interface {
	Run(ctx context.Context, cmdline string) (Result, error)
}

// ⚙️ ExecRunner spawns real processes via os/exec. The command line is split
// shell-style with shlex rather than handed to a shell.
type ExecRunner struct{}

// 🏃 Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, cmdline string) (Result, error) {
	argv, err := shlex.Split(cmdline)
	if err != nil {
		return Result{}, errors.Errorf("splitting command line: %w", err)
	}
	if len(argv) == 0 {
		return Result{}, errors.New("empty command line")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return Result{}, errors.Errorf("starting %s: %w", argv[0], err)
	}

	waitc := make(chan error, 1)
	go func() { waitc <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		terminate(cmd)
		werr := <-waitc
		res := collect(&stdout, &stderr, werr)
		return res, ctx.Err()
	case werr := <-waitc:
		res := collect(&stdout, &stderr, werr)
		if werr != nil {
			var exitErr *exec.ExitError
			if !errors.As(werr, &exitErr) {
				return res, errors.Errorf("waiting for %s: %w", argv[0], werr)
			}
		}
		return res, nil
	}
}

// terminate sends SIGTERM to a still-running process. Signalling an already
// exited process just returns an error, which keeps this idempotent.
func terminate(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Signal(syscall.SIGTERM)
}

func collect(stdout, stderr *bytes.Buffer, werr error) Result {
	res := Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	if werr != nil {
		var exitErr *exec.ExitError
		if errors.As(werr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = -1
		}
	}
	return res
}
