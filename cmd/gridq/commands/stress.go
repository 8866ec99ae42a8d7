package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/gridq/cmd/gridq/opts"
	"github.com/walteh/gridq/pkg/gfal"
	"github.com/walteh/gridq/pkg/operation"
	"github.com/walteh/gridq/pkg/source"
	"gitlab.com/tozd/go/errors"
)

// NewStressCmd creates a new stress command
func NewStressCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Generate load by cycling the filelist into fresh destinations",
		Long: `Stress cycles through the filelist as many times as needed to reach the
configured number of transfers, copying each source to a freshly named
destination so transfers never collide. Useful for exercising a storage
endpoint before a production copy.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "stress").Logger().WithContext(ctx)

			if o.Config.Stress == nil {
				return errors.New("stress block missing from config")
			}

			files, err := loadFiles(o)
			if err != nil {
				return err
			}

			producer := &source.Cycle{
				Files:        files,
				Transfers:    o.Config.Stress.Transfers,
				Extension:    o.Config.Stress.Extension,
				InputPrefix:  o.Config.Stress.InputPrefix,
				OutputPrefix: o.Config.Stress.OutputPrefix,
				NewDirectory: o.Config.Stress.NewDirectory,
			}
			op := operation.NewCopyOperation(operation.Options{
				Runner:   &gfal.ExecRunner{},
				Commands: o.Config.Commands(),
				Retry:    o.Config.RetryPolicy(),
			})

			return runPipeline(ctx, o, "stress", o.Config.Stress.Transfers, producer, op)
		},
	}

	return cmd
}
