// Package queuectl provides a durable, single-host background job queue.
//
// # Overview
//
// queuectl runs shell commands submitted by a caller, executed by one or
// more long-running worker processes that atomically claim jobs from a
// shared relational store, run them, and record the outcome. Failures
// are retried with exponential backoff until a per-job retry budget is
// exhausted, at which point the job is moved to a dead-letter area for
// manual inspection and requeue. All durable state lives in a single
// local store; there is no network protocol, no broker, and no central
// daemon other than the workers themselves.
//
// # Delivery Semantics
//
// queuectl provides at-least-once execution. A job may run more than
// once if a worker crashes mid-execution or its lock lease expires
// before it reports an outcome. Commands are therefore expected to
// tolerate re-execution; queuectl does nothing to make them idempotent.
//
// # Lock Lease Model
//
// When a job is claimed, it transitions from Pending to Processing and
// receives a lock lease (LockedAt plus the caller-supplied lease
// duration). While the lease is unexpired, the job is not eligible for
// claiming by another worker. If the lease expires before the job
// reports an outcome, the job becomes claimable again — the lease is
// not renewed while a command runs, so lease duration must exceed any
// expected command's runtime.
//
// # State Machine
//
// Jobs follow this lifecycle:
//
//	Pending    -> Processing
//	Processing -> Completed
//	Processing -> Pending    (retry, or lease-expiry reclamation)
//	Processing -> Dead
//	Dead       -> Pending    (requeue)
//
// Terminal states (Completed, Dead) are not retried unless explicitly
// requeued from the dead-letter area.
//
// # Retry Policy
//
// Retry behavior is controlled by a per-job MaxRetries budget and the
// backoff_base/max_backoff_seconds config keys. When a command exits
// non-zero, if Attempts is still below MaxRetries the job is rescheduled
// with a computed backoff delay; otherwise it is moved to the
// dead-letter area. Attempts is incremented once per claimed execution.
//
// # Interfaces
//
// queuectl defines the following primary interfaces:
//
//	Enqueuer   — submit new jobs
//	Claimer    — claim jobs and drive their state transitions
//	Observer   — inspect job state, read-only
//	DeadLetter — move exhausted jobs aside and requeue them
//	Cleaner    — permanently delete jobs in a terminal state
//
// These interfaces allow storage implementations to be plugged in
// without coupling queue logic to a specific database.
//
// # Concurrency Model
//
// Within a single worker loop, execution is single-threaded
// cooperative: the loop claims one job, runs it to completion, records
// the outcome, then claims the next. There is no intra-loop task pool —
// the hard engineering lives in the store's atomic claim, not in
// worker-side concurrency. Multiple worker loops, whether separate OS
// processes or goroutines of one process started together by an
// internal.Supervisor, may run against the same store; mutual exclusion
// is provided entirely by the store's own transactional discipline.
//
// # Storage Expectations
//
// Implementations of Claimer must ensure atomic state transitions,
// durable persistence, and correct lease semantics under concurrent
// callers. queuectl assumes the storage engine provides a serializable
// write boundary for the claim operation; the store package in this
// module provides one via a single atomic UPDATE ... RETURNING
// statement against SQLite.
//
// # Summary
//
// queuectl provides a minimal yet structured foundation for a durable,
// single-host job queue, with explicit lifecycle control, retry
// semantics, dead-letter handling, and a pluggable storage backend.
package queuectl
