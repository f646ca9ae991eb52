package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/workers/internal/worker"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Database string
	Surname  string
	Name     string
	Zodiac   string
	Year     int
}

// AddResult is the json payload of a successful add.
type AddResult struct {
	ID     int64         `json:"id"`
	Worker worker.Worker `json:"worker"`
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new worker",
		Long: `Add a worker to the registry.

The name is looked up in the name table and created there on first use, so
workers sharing a name share one lookup entry. Prints nothing on success
unless --format json is given.

Example:
  workers add --db ./workers.db -s Smith -n Engineer -z Leo -y 1990`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, cmd)
		},
	}

	addDBFlag(cmd, &opts.Database)
	cmd.Flags().StringVarP(&opts.Surname, "surname", "s", "", "the worker's surname (required)")
	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "the worker's name (required)")
	cmd.Flags().StringVarP(&opts.Zodiac, "zodiac", "z", "", "the worker's zodiac sign (required)")
	cmd.Flags().IntVarP(&opts.Year, "year", "y", 0, "the worker's birth year (required)")
	for _, name := range []string{"surname", "name", "zodiac", "year"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runAdd(opts *AddOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := opts.openStore(opts.Database)
	if err != nil {
		return err
	}
	defer closeStore(st)

	w := worker.Worker{
		Surname: opts.Surname,
		Name:    opts.Name,
		Zodiac:  opts.Zodiac,
		Year:    opts.Year,
	}

	id, err := st.AddWorker(ctx, w)
	if err != nil {
		return storeExitError("failed to add worker", err)
	}
	slog.Debug("worker added", "id", id, "surname", w.Surname, "name", w.Name)

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(AddResult{ID: id, Worker: w})
	}
	return nil
}
