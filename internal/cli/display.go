package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/workers/internal/render"
	"github.com/roach88/workers/internal/worker"
)

// DisplayOptions holds flags for the display command.
type DisplayOptions struct {
	*RootOptions
	Database string
}

// NewDisplayCommand creates the display command.
func NewDisplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DisplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "display",
		Short: "Display all workers",
		Long: `Print every worker in the registry as a table, in the order they were added.

Example:
  workers display --db ./workers.db
  workers display --db ./workers.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDisplay(opts, cmd)
		},
	}

	addDBFlag(cmd, &opts.Database)

	return cmd
}

func runDisplay(opts *DisplayOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := opts.openStore(opts.Database)
	if err != nil {
		return err
	}
	defer closeStore(st)

	workers, err := st.SelectAll(ctx)
	if err != nil {
		return storeExitError("failed to read workers", err)
	}

	return opts.writeWorkers(cmd, workers)
}

// writeWorkers prints workers as a table, or as a json response.
func (o *RootOptions) writeWorkers(cmd *cobra.Command, workers []worker.Worker) error {
	if o.Format == "json" {
		return o.formatter(cmd).Success(workers)
	}
	if err := render.Table(cmd.OutOrStdout(), workers); err != nil {
		return WrapExitError(ExitFailure, "failed to write output", err)
	}
	return nil
}
