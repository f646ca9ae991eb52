package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/workers/internal/config"
	"github.com/roach88/workers/internal/store"
)

const dbFlagUsage = "path to the SQLite database (default $WORKERS_DB or ~/workers.db)"

// addDBFlag registers the --db flag every registry command takes.
func addDBFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "db", "", dbFlagUsage)
}

// resolveDB picks the store path: flag, then environment, then ~/workers.db.
func (o *RootOptions) resolveDB(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if o.config != nil && o.config.DB != "" {
		return o.config.DB, nil
	}
	return config.DefaultDBPath()
}

// openStore resolves the store path and opens it, creating the schema.
// Callers must Close the returned store.
func (o *RootOptions) openStore(flagValue string) (*store.Store, error) {
	path, err := o.resolveDB(flagValue)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to resolve database path", err)
	}

	slog.Debug("opening database", "path", path)
	st, err := store.Open(path, store.WithClock(o.Clock))
	if err != nil {
		return nil, storeExitError("failed to open database", err)
	}
	return st, nil
}

// closeStore closes st, logging rather than returning a close failure.
func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}
