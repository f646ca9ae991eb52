package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/workers/internal/clock"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (tables only)
// 1 - Added UNIQUE index on name.name_title
const currentSchemaVersion = 1

// Store is an open worker registry.
type Store struct {
	db    *sql.DB
	clock clock.Clock
}

// Option configures a Store at Open time.
type Option func(*Store)

// WithClock sets the clock used to compute the current year for
// SelectByPeriod. Defaults to the system clock.
func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// Open creates or opens the registry at path and ensures its schema.
//
// Both tables are created if missing, the title index is added, and the
// column layout of existing tables is checked. A store whose tables do not
// match fails with ErrSchemaMismatch before anything is written.
//
// This function is idempotent - safe to call on every invocation.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrStoreAccess, path, err)
	}

	// Ping forces the driver to create or open the file.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: connect %s: %w", ErrStoreAccess, path, err)
	}

	// One connection per command; pragmas below are per-connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: apply pragmas: %w", ErrStoreAccess, err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db, clock: clock.Real{}}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer using Store methods when available.
func (s *Store) DB() *sql.DB {
	return s.db
}

// dsn turns a file path into a "file:" URI carrying driver options.
// Paths that already are URIs are passed through untouched.
func dsn(path string) string {
	switch {
	case strings.HasPrefix(path, "file:"):
		return path
	case path == ":memory:":
		return path + "?" + dsnOptions
	}
	p := filepath.ToSlash(filepath.Clean(path))
	if filepath.VolumeName(path) != "" {
		p = "/" + p
	}
	return "file:" + uriEscaper.Replace(p) + "?" + dsnOptions
}

const dsnOptions = "_txlock=immediate"

// uriEscaper escapes the characters SQLite would read as URI syntax.
var uriEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist, checks their layout and
// runs migrations. This function is idempotent.
func applySchema(db *sql.DB) error {
	// An existing, foreign table must be rejected before CREATE ... IF NOT
	// EXISTS silently accepts it.
	if err := checkSchema(context.Background(), db); err != nil {
		return err
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("%w: execute schema: %w", ErrStoreAccess, err)
	}

	if err := runMigrations(db); err != nil {
		return err
	}

	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("%w: get user_version: %w", ErrStoreAccess, err)
	}

	if version > currentSchemaVersion {
		return fmt.Errorf("%w: store schema version %d is newer than supported version %d",
			ErrSchemaMismatch, version, currentSchemaVersion)
	}

	if version < 1 {
		if err := migrateToV1(db); err != nil {
			return err
		}
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("%w: set user_version: %w", ErrStoreAccess, err)
	}

	return nil
}

// migrateToV1 adds the UNIQUE index on name.name_title. Stores written by
// releases without the index may already hold duplicate titles; those are
// reported rather than merged.
func migrateToV1(db *sql.DB) error {
	var dups int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM (
			SELECT name_title FROM name GROUP BY name_title HAVING COUNT(*) > 1
		)
	`).Scan(&dups)
	if err != nil {
		return fmt.Errorf("%w: check duplicate titles: %w", ErrStoreAccess, err)
	}
	if dups > 0 {
		return fmt.Errorf("%w: %d name titles are duplicated; cannot add unique index",
			ErrSchemaMismatch, dups)
	}

	if _, err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_name_title_unique
		ON name(name_title)
	`); err != nil {
		return fmt.Errorf("%w: migrate to v1: %w", ErrStoreAccess, err)
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
