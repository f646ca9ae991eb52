package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
)

// SelectOptions holds flags for the select command.
type SelectOptions struct {
	*RootOptions
	Database string
	Period   uint
}

// NewSelectCommand creates the select command.
func NewSelectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SelectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select workers by period",
		Long: `Print the workers whose age is at least PERIOD years.

Age is the current calendar year minus the worker's year, so a worker born
in 1990 is selected by --period 35 throughout 2025.

Example:
  workers select --db ./workers.db -P 30`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(opts, cmd)
		},
	}

	addDBFlag(cmd, &opts.Database)
	cmd.Flags().UintVarP(&opts.Period, "period", "P", 0, "the required period in years (required)")
	_ = cmd.MarkFlagRequired("period")

	return cmd
}

func runSelect(opts *SelectOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := opts.openStore(opts.Database)
	if err != nil {
		return err
	}
	defer closeStore(st)

	workers, err := st.SelectByPeriod(ctx, opts.Period)
	if err != nil {
		return storeExitError("failed to select workers", err)
	}
	slog.Debug("selected by period", "period", opts.Period, "year", st.CurrentYear(), "count", len(workers))

	return opts.writeWorkers(cmd, workers)
}
