// Package database provides the SQLite persistence layer for the
// bakery backend.
//
// It wraps database/sql with WAL-mode connection setup, embedded
// schema migrations, and health checks. All catalogue, testimonial,
// contact, and user data lives in a single SQLite file, trivially
// backed up by copying it.
//
// Migrations are embedded into the binary by the top-level migrations
// package and applied on startup; see Migrate for the atomicity model.
package database
