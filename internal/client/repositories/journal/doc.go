// Package journal persists a local, append-only record of every mutation
// the console dispatched and how it ended.
//
// The journal is an audit trail only: nothing in it is ever replayed or
// merged into the record stores. Entries carry their own uuid, which is
// never sent to the remote service.
//
// Key Types
//
//   - type Entry             - one dispatched mutation and its outcome
//   - type Repository        - interface used by the inventory service
//   - type SQLiteRepository  - SQLite implementation over dbx.DBTX
//
// Typical Usage
//
//	repo := journal.NewSQLiteRepository(db)
//	_ = repo.Append(ctx, journal.NewEntry("deleteTransaction", "42", journal.OutcomeRejected, "Incorrect password."))
//	last, _ := repo.Recent(ctx, 20)
package journal
