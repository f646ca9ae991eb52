package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/workers/internal/worker"
)

// AddWorker inserts a worker, creating its name lookup entry on first use.
// Returns the new worker_id.
//
// The lookup entry and the worker row are written in one transaction:
//  1. INSERT the title with ON CONFLICT(name_title) DO NOTHING
//  2. on conflict, SELECT the existing name_id instead
//  3. INSERT the worker referencing that id
//
// Values are stored exactly as given; the title match is byte-exact.
func (s *Store) AddWorker(ctx context.Context, w worker.Worker) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("add worker: begin tx: %w", classify(err))
	}
	defer tx.Rollback() // No-op if committed

	nameID, _, err := ensureTitle(ctx, tx, w.Name)
	if err != nil {
		return 0, fmt.Errorf("add worker: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO workers (worker_name, name_id, zodiac, worker_year)
		VALUES (?, ?, ?, ?)
	`,
		w.Surname,
		nameID,
		w.Zodiac,
		w.Year,
	)
	if err != nil {
		return 0, fmt.Errorf("add worker: insert worker: %w", classify(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add worker: last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("add worker: commit: %w", classify(err))
	}

	return id, nil
}

// ensureTitle returns the name_id for title, inserting a lookup entry if
// none exists. created reports whether a new row was written.
func ensureTitle(ctx context.Context, tx *sql.Tx, title string) (id int64, created bool, err error) {
	result, err := tx.ExecContext(ctx, `
		INSERT INTO name (name_title)
		VALUES (?)
		ON CONFLICT(name_title) DO NOTHING
	`, title)
	if err != nil {
		return 0, false, fmt.Errorf("insert title: %w", classify(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("insert title: rows affected: %w", err)
	}

	if rowsAffected > 0 {
		id, err = result.LastInsertId()
		if err != nil {
			return 0, false, fmt.Errorf("insert title: last insert id: %w", err)
		}
		return id, true, nil
	}

	// Conflict - the title already exists, fetch its id
	err = tx.QueryRowContext(ctx, `
		SELECT name_id FROM name WHERE name_title = ?
	`, title).Scan(&id)
	if err != nil {
		return 0, false, fmt.Errorf("select existing title: %w", classify(err))
	}
	return id, false, nil
}

// classify tags driver errors with the store's error kinds.
func classify(err error) error {
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if isConstraintErr(err) {
		return fmt.Errorf("%w: %w", ErrConstraint, err)
	}
	return fmt.Errorf("%w: %w", ErrStoreAccess, err)
}
