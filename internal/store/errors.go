package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// Error kinds returned by the store. Match them with errors.Is; the
// returned errors wrap the driver error as well.
var (
	// ErrStoreAccess means the store file could not be opened, created,
	// read or written.
	ErrStoreAccess = errors.New("store access failed")

	// ErrSchemaMismatch means the file holds tables whose layout the
	// registry does not recognize.
	ErrSchemaMismatch = errors.New("incompatible store schema")

	// ErrConstraint means a write violated a store constraint, e.g. a
	// worker referencing a missing lookup entry.
	ErrConstraint = errors.New("constraint violation")
)

// isConstraintErr reports whether err is a SQLite constraint failure.
func isConstraintErr(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrConstraint
	}
	return false
}
