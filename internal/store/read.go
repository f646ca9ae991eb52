package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/workers/internal/clock"
	"github.com/roach88/workers/internal/worker"
)

const selectWorkers = `
	SELECT workers.worker_name, name.name_title, workers.zodiac, workers.worker_year
	FROM workers
	INNER JOIN name ON name.name_id = workers.name_id
`

// SelectAll returns every worker joined with its name title, in insertion
// order. Returns an empty slice (not nil) for an empty store.
func (s *Store) SelectAll(ctx context.Context) ([]worker.Worker, error) {
	rows, err := s.db.QueryContext(ctx, selectWorkers+`
		ORDER BY workers.worker_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select all: %w", classify(err))
	}
	defer rows.Close()

	return scanWorkers(rows, "select all")
}

// SelectByPeriod returns the workers whose age - the current year minus
// their stored year - is at least period. The current year comes from the
// store's clock, so the result changes across calendar years.
func (s *Store) SelectByPeriod(ctx context.Context, period uint) ([]worker.Worker, error) {
	year := clock.Year(s.clock)

	rows, err := s.db.QueryContext(ctx, selectWorkers+`
		WHERE (? - workers.worker_year) >= ?
		ORDER BY workers.worker_id ASC
	`, year, period)
	if err != nil {
		return nil, fmt.Errorf("select by period: %w", classify(err))
	}
	defer rows.Close()

	return scanWorkers(rows, "select by period")
}

// Titles returns every lookup entry with the number of workers that
// reference it, ordered by name_id.
func (s *Store) Titles(ctx context.Context) ([]worker.LookupEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name.name_id, name.name_title, COUNT(workers.worker_id)
		FROM name
		LEFT JOIN workers ON workers.name_id = name.name_id
		GROUP BY name.name_id, name.name_title
		ORDER BY name.name_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select titles: %w", classify(err))
	}
	defer rows.Close()

	entries := []worker.LookupEntry{}
	for rows.Next() {
		var e worker.LookupEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.Refs); err != nil {
			return nil, fmt.Errorf("select titles: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select titles: iterate: %w", classify(err))
	}
	return entries, nil
}

// CurrentYear reports the year SelectByPeriod measures ages against.
func (s *Store) CurrentYear() int {
	return clock.Year(s.clock)
}

func scanWorkers(rows *sql.Rows, op string) ([]worker.Worker, error) {
	workers := []worker.Worker{}
	for rows.Next() {
		var w worker.Worker
		if err := rows.Scan(&w.Surname, &w.Name, &w.Zodiac, &w.Year); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate: %w", op, classify(err))
	}
	return workers, nil
}
