package commands

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/gridq/cmd/gridq/opts"
	"github.com/walteh/gridq/pkg/log"
	"github.com/walteh/gridq/pkg/operation"
	"github.com/walteh/gridq/pkg/orchestrator"
	"github.com/walteh/gridq/pkg/source"
	"gitlab.com/tozd/go/errors"
)

// loadFiles reads the configured filelist and applies include/exclude globs
func loadFiles(o *opts.RootOpts) ([]string, error) {
	if o.Config.Filelist == "" {
		return nil, errors.New("no filelist configured, set filelist in the config or pass --filelist")
	}

	files, err := source.LoadFilelist(o.Config.Filelist)
	if err != nil {
		return nil, errors.Errorf("loading filelist: %w", err)
	}

	files, err = source.FilterFilelist(files, o.Config.Include, o.Config.Exclude)
	if err != nil {
		return nil, errors.Errorf("filtering filelist: %w", err)
	}

	return files, nil
}

// runPipeline assembles the queue run and executes it to completion. files is
// the number of tasks the producer is expected to yield, for the run header.
func runPipeline(ctx context.Context, o *opts.RootOpts, kind string, files int, producer source.Producer, op operation.Operation) error {
	console := log.New(os.Stdout, zerolog.InfoLevel)
	console.Header(kind + " run")
	console.StartRunOperation(ctx, log.RunOperation{
		Command: kind,
		Files:   files,
		Workers: o.Config.Workers,
		DryRun:  o.Config.DryRun,
	})
	defer console.EndRunOperation(ctx)

	orch, err := orchestrator.New(orchestrator.Options{
		Kind:      kind,
		Producer:  producer,
		Operation: op,
		Workers:   o.Config.Workers,
		Status:    o.Status,
		Feedback:  o.Feedback,
	})
	if err != nil {
		return errors.Errorf("assembling %s run: %w", kind, err)
	}

	summary, err := orch.Run(ctx)
	o.Feedback.LogRunSummary(summary.Succeeded, summary.Failed, summary.Abandoned, summary.Skipped)
	if err != nil {
		return errors.Errorf("%s run: %w", kind, err)
	}

	return nil
}

// TODO(dr.methodical): 🧪 Add tests for pipeline assembly
