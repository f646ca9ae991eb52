// Package store provides the SQLite-backed worker registry.
//
// The store holds two tables:
//   - name: lookup entries deduplicating worker names (name_id, name_title)
//   - workers: personnel records referencing a lookup entry
//
// # Invariants
//
// Titles are unique. A UNIQUE index on name.name_title backs the
// find-or-create in AddWorker, which inserts with ON CONFLICT DO NOTHING and
// re-reads the existing id on conflict. Two processes adding the same new
// title therefore end up sharing one lookup row.
//
// The registry is append-only: nothing here updates or deletes rows.
//
// Query results are ordered by worker_id, i.e. insertion order.
//
// # Database Configuration
//
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce workers.name_id -> name.name_id
//   - _txlock=immediate: Write transactions take the lock up front
package store
