// Package store provides SQLite-backed durable storage for paper score records.
//
// The store holds one table, papers, with one row per scored paper:
//
//	id INTEGER PRIMARY KEY, score1..score5 INTEGER NOT NULL
//
// # Guarantees
//
//   - At most one row per paper id. Upsert replaces the previous scores.
//   - Every write is validated before any SQL is issued; invalid input
//     returns a *record.ValidationError and leaves the table untouched.
//   - Every write runs in its own transaction, so a failed write leaves the
//     prior row exactly as it was.
//   - ListAll orders by id, so repeated calls without writes in between
//     return identical slices.
//
// Any failure of the underlying medium (open, read, write, commit) is
// reported wrapped around ErrStorageUnavailable.
//
// # Drivers
//
// Two database/sql drivers are registered:
//
//   - DriverCGO ("sqlite3"): github.com/mattn/go-sqlite3, the default
//   - DriverPure ("sqlite"): modernc.org/sqlite, for CGO-free builds
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - a single open connection; the store has exactly one owner
package store
