// Package library reads episode metadata from the Apple Podcasts SQLite
// database and reconciles it against the filesystem.
//
// The database is an external, versioned contract: podhaul opens it read-only,
// runs a single join over the episode and podcast tables, and treats any
// schema drift as a degraded (empty) result rather than attempting migration.
// Rows whose asset no longer exists on disk are dropped silently; the
// database is a historical ledger and routinely references deleted files.
package library
