package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/workers/internal/importer"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Database string
}

// ImportResult is the json payload of a successful import.
type ImportResult struct {
	File     string `json:"file"`
	Imported int    `json:"imported"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add workers from a YAML file",
		Long: `Add every worker listed in a YAML file.

The file is validated as a whole before anything is written:

  workers:
    - surname: Smith
      name: Engineer
      zodiac: Leo
      year: 1990

Workers are then added one at a time, exactly as 'workers add' would. If an
add fails, the workers before it stay in the registry and the error reports
how many were added.

Example:
  workers import --db ./workers.db staff.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}

	addDBFlag(cmd, &opts.Database)

	return cmd
}

func runImport(opts *ImportOptions, path string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Validate before the store is touched.
	workers, err := importer.Load(path)
	if err != nil {
		return WrapExitError(ExitFailure, "invalid import file", err)
	}
	slog.Debug("import file loaded", "file", path, "workers", len(workers))

	st, err := opts.openStore(opts.Database)
	if err != nil {
		return err
	}
	defer closeStore(st)

	f := opts.formatter(cmd)
	for i, w := range workers {
		id, err := st.AddWorker(ctx, w)
		if err != nil {
			return storeExitError(fmt.Sprintf("import stopped after %d of %d workers", i, len(workers)), err)
		}
		f.VerboseLog("added %s (%s) as #%d", w.Surname, w.Name, id)
	}

	result := ImportResult{File: path, Imported: len(workers)}
	if opts.Format == "json" {
		return f.Success(result)
	}
	return f.Success(fmt.Sprintf("Imported %d workers from %s.", result.Imported, result.File))
}
