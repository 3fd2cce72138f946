// Package history persists a ledger of completed conversions in SQLite.
//
// Each CLI or HTTP conversion appends one Entry carrying its UUID, the adapter
// that ran it, the source and target names, byte counts, and the pipeline
// statistics. The database lives in paths.state_dir and is opened in WAL mode
// so a running server and ad-hoc CLI invocations can share it.
//
// The schema is embedded and versioned; a database written by an incompatible
// release fails to open with ErrSchemaMismatch instead of being migrated.
package history
