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

// NewCopyCmd creates a new copy command
func NewCopyCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy the filelist to new grid storage",
		Long: `Copy transfers every file in the filelist from the input storage prefix
to the output storage prefix, rewriting the configured directory component.
Failed transfers get their partial destination removed and are retried.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "copy").Logger().WithContext(ctx)

			if o.Config.Copy == nil {
				return errors.New("copy block missing from config")
			}

			files, err := loadFiles(o)
			if err != nil {
				return err
			}

			producer := &source.List{
				Files:        files,
				InputPrefix:  o.Config.Copy.InputPrefix,
				OutputPrefix: o.Config.Copy.OutputPrefix,
				OldDirectory: o.Config.Copy.OldDirectory,
				NewDirectory: o.Config.Copy.NewDirectory,
			}
			op := operation.NewCopyOperation(operation.Options{
				Runner:   &gfal.ExecRunner{},
				Commands: o.Config.Commands(),
				Retry:    o.Config.RetryPolicy(),
			})

			return runPipeline(ctx, o, "copy", len(files), producer, op)
		},
	}

	return cmd
}

// TODO(dr.methodical): 📝 Add examples of copy usage
