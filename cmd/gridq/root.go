package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/gridq/cmd/gridq/opts"
	"github.com/walteh/gridq/pkg/config"
	"github.com/walteh/gridq/pkg/log"
	"github.com/walteh/gridq/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	filelist   string
	workers    int
	dryRun     bool
	debug      bool
)

// newRootOpts creates a new rootOpts with initialized dependencies
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	// Load config
	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	// Flags win over the config file
	if filelist != "" {
		cfg.Filelist = filelist
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if dryRun {
		cfg.DryRun = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &opts.RootOpts{
		Config:   cfg,
		Status:   status.New(zerolog.Ctx(ctx)),
		Feedback: log.NewFeedback(ctx),
	}, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".gridq.hcl", "config file path")
	cmd.PersistentFlags().StringVarP(&filelist, "filelist", "f", "", "path to the filelist (overrides config)")
	cmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "worker pool size (overrides config)")
	cmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "pass the dry-run option to the external commands")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}

// TODO(dr.methodical): 🧪 Add tests for flag overrides
