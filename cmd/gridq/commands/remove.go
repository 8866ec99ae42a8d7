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

// NewRemoveCmd creates a new remove command
func NewRemoveCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove the filelist from grid storage",
		Long: `Remove deletes every file in the filelist under the configured storage
prefix. A target that is already gone counts as removed, so re-running a
partially finished removal is safe.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "remove").Logger().WithContext(ctx)

			if o.Config.Remove == nil {
				return errors.New("remove block missing from config")
			}

			files, err := loadFiles(o)
			if err != nil {
				return err
			}

			producer := &source.Removal{
				Files:  files,
				Prefix: o.Config.Remove.StoragePrefix,
			}
			op := operation.NewRemoveOperation(operation.Options{
				Runner:   &gfal.ExecRunner{},
				Commands: o.Config.Commands(),
				Retry:    o.Config.RetryPolicy(),
			})

			return runPipeline(ctx, o, "remove", len(files), producer, op)
		},
	}

	return cmd
}
