package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/gridq/cmd/gridq/commands"
	"github.com/walteh/gridq/cmd/gridq/opts"
)

func main() {
	// Cancel the whole run on SIGINT/SIGTERM; workers watch this context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Shared options, filled once flags are parsed
	rootOpts := &opts.RootOpts{}

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "gridq",
		Short: "A tool for bulk file transfers and removals on grid storage",
		Long: `gridq drives gfal-copy and gfal-rm over a shared task queue with a
fixed worker pool, retrying failed transfers and cleaning up partial
destinations until the whole filelist is processed.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			if cmd.Name() == "version" {
				return nil
			}
			o, err := newRootOpts(zerolog.DefaultContextLogger.WithContext(cmd.Context()))
			if err != nil {
				return err
			}
			*rootOpts = *o
			return nil
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(
		commands.NewCopyCmd(rootOpts),
		commands.NewStressCmd(rootOpts),
		commands.NewRemoveCmd(rootOpts),
		newVersionCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "gridq: %v\n", err)
		os.Exit(1)
	}
}

// TODO(dr.methodical): 🧪 Add tests for context cancellation
