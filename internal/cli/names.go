package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/workers/internal/render"
)

// NamesOptions holds flags for the names command.
type NamesOptions struct {
	*RootOptions
	Database string
}

// NewNamesCommand creates the names command.
func NewNamesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NamesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "names",
		Short: "List the name lookup table",
		Long: `List every entry of the name lookup table with the number of workers
referencing it.

Example:
  workers names --db ./workers.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNames(opts, cmd)
		},
	}

	addDBFlag(cmd, &opts.Database)

	return cmd
}

func runNames(opts *NamesOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := opts.openStore(opts.Database)
	if err != nil {
		return err
	}
	defer closeStore(st)

	entries, err := st.Titles(ctx)
	if err != nil {
		return storeExitError("failed to read names", err)
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(entries)
	}
	if err := render.Titles(cmd.OutOrStdout(), entries); err != nil {
		return WrapExitError(ExitFailure, "failed to write output", err)
	}
	return nil
}
