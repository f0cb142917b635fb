// Package sqlite records the conversation transcript in a local SQLite
// database (transcript.db under the data directory) using the pure Go
// modernc.org/sqlite driver.
//
// The schema comes from the numbered .up.sql files embedded from
// migrations/. The highest applied version is kept in schema_migrations
// and only newer files run on open.
//
// The database is opened in WAL mode with a busy timeout, so a running
// TUI and a one-shot "ask" command can share it.
package sqlite
