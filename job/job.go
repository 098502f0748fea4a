package job

import "time"

// Job represents a unit of work managed by the queue store.
//
// A Job is identified by a caller-supplied Id, which must be globally
// unique; reinserting an existing id is a conflict.
//
// CreatedAt records when the job was enqueued. UpdatedAt records the
// last state transition or field change. CompletedAt is set once the
// job reaches Completed.
//
// Attempts counts how many executions have begun, incremented once per
// claim regardless of outcome. MaxRetries is the retry budget: a
// failure with Attempts < MaxRetries schedules a retry, otherwise the
// job is moved to the dead-letter area, so a job with a MaxRetries of
// n >= 1 executes at most n times.
//
// LockedBy and LockedAt describe the current lease: LockedBy is the
// identifier of the worker presumed to own the job (the WorkerID it
// claimed with), set together with LockedAt and cleared together with
// it.
// RetryAt is the earliest time a retry-scheduled job becomes claimable
// again. RunAt is the earliest time a freshly-enqueued job becomes
// claimable (job scheduling).
//
// StdoutLog, StderrLog and ExitCode capture the most recent attempt's
// output; they are overwritten on every attempt, not appended.
//
// Job values returned by the store are snapshots. Mutating them does
// not change persisted state; transitions must go through Claimer,
// Enqueuer or DeadLetter.
type Job struct {
	Id      string
	Command string

	State      Status
	Attempts   uint32
	MaxRetries uint32
	Priority   int

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
	RetryAt     *time.Time
	RunAt       *time.Time

	LockedBy *string
	LockedAt *time.Time

	LastError *string

	StdoutLog string
	StderrLog string
	ExitCode  *int
}
