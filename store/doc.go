// Package store provides a bun-based SQL storage implementation for
// queuectl.
//
// This package implements the root package's interfaces (Enqueuer,
// Claimer, Observer, DeadLetter, Cleaner, ConfigStore) using a
// relational database via github.com/uptrace/bun, with
// modernc.org/sqlite as the default pure-Go driver.
//
// # Overview
//
// The store backend provides:
//
//   - durable persistence of jobs, dead-letter entries, and config
//   - atomic state transitions
//   - lock-lease semantics
//   - retry-safe Claim using UPDATE ... RETURNING
//
// It is compatible with SQLite, PostgreSQL and other bun-supported
// dialects, subject to their transactional guarantees.
//
// # Concurrency Model
//
// Claim is implemented using a single atomic UPDATE statement with a
// subquery to avoid race conditions between selection and state
// transition; no explicit BEGIN/COMMIT is required because the
// selection and the transition are the same statement.
//
// Correct behavior under high concurrency depends on:
//
//   - proper indexing
//   - database isolation guarantees
//   - write contention characteristics of the chosen backend
//
// SQLite users are strongly encouraged to enable WAL mode and
// configure an appropriate busy_timeout; Open does both.
//
// # Schema
//
// The backend expects "jobs", "dead_letters", and "config" tables
// corresponding to jobModel, deadLetterModel, and configModel.
// InitDB (or MustInitDB) creates:
//
//   - the jobs table (if not exists)
//   - index (status, run_at)
//   - index (status, locked_at)
//   - index (status, retry_at)
//   - index (status, updated_at)
//   - the dead_letters table (if not exists)
//   - the config table (if not exists)
//
// These indexes are required for efficient Claim and Clean operations.
//
// InitDB is idempotent and runs inside a transaction. It does not
// perform destructive migrations. Schema evolution must be handled
// externally.
//
// # Database Lifecycle
//
// This package does not manage connection pooling or migrations
// beyond InitDB.
//
// The caller is responsible for:
//
//   - creating and configuring *bun.DB (Open does this for SQLite)
//   - connection limits
//   - running InitDB before use
//
// # Limitations
//
// The store backend uses status and timestamp fields to implement
// lease semantics. It does not use lease tokens or optimistic locking
// versions.
//
// Exactly-once processing is not guaranteed. Delivery semantics
// remain at-least-once.
//
// # Summary
//
// Package store provides a pragmatic, storage-backed implementation of
// queuectl's interfaces suitable for a single-host embedded (SQLite)
// deployment, while keeping queue logic storage-agnostic.
package store
