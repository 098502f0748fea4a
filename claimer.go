package queuectl

import (
	"context"
	"time"

	"github.com/mvelo/queuectl/job"
)

// Claimer defines the read-write contract for consuming and managing
// jobs through the state machine described in doc.go.
//
// Claimer provides lock-lease semantics:
//
//   - Claim transitions one eligible job from Pending to Processing.
//   - While Processing, the job is invisible to other claimants.
//   - LockedAt plus the claimer's lease duration defines the lease.
//   - If a worker crashes or fails to report an outcome before the
//     lease expires, the job becomes eligible for claiming again.
//
// The queue provides at-least-once execution semantics: commands may
// run more than once.
type Claimer interface {

	// Claim atomically selects the single highest-priority eligible job
	// and transitions it to Processing.
	//
	// A row is eligible when its state is Pending, its RunAt and its
	// RetryAt are each nil or in the past, and it is either unlocked or
	// its lease (LockedAt + lease) has expired. Among eligible rows,
	// ordering is:
	// urgency class (priority > 0 before priority = 0), then priority
	// descending, then CreatedAt ascending.
	//
	// Claim sets LockedBy to workerID and LockedAt to now. It does not
	// increment Attempts; that is a separate step performed by
	// IncrementAttempts once the caller is about to execute the job.
	//
	// Claim returns (nil, nil) if no job is eligible.
	Claim(ctx context.Context, workerID string, lease time.Duration) (*job.Job, error)

	// IncrementAttempts records that an execution has begun for jb. It
	// must be called exactly once per claimed execution, immediately
	// before invoking the command runner.
	//
	// If jb is no longer Processing under the caller's lock,
	// ErrLockLost is returned.
	IncrementAttempts(ctx context.Context, jb *job.Job) error

	// RecordOutput persists the captured exit code, stdout, and stderr
	// of the attempt in progress onto jb's row, without changing its
	// state. It must be called once execution returns, before the
	// caller decides between Complete, Retry, or DeadLetter.MoveToDead,
	// so that whichever of those reads or snapshots the row afterward
	// sees the attempt's output.
	//
	// RecordOutput must only succeed if jb is currently Processing
	// under the caller's lock. If the lease was lost, ErrLockLost is
	// returned.
	RecordOutput(ctx context.Context, jb *job.Job, exitCode int, stdout string, stderr string) error

	// Complete transitions a job from Processing to Completed.
	//
	// Complete must only succeed if the job is currently Processing
	// under the caller's lock. It clears lock fields and sets
	// CompletedAt.
	//
	// If the job is missing or no longer Processing, ErrCompleteFailed
	// is returned.
	Complete(ctx context.Context, jb *job.Job) error

	// Retry transitions a job from Processing back to Pending and
	// schedules it for a future claim.
	//
	// Retry clears lock fields, sets RetryAt to retryAt, and records
	// lastError.
	//
	// Retry must only succeed if the job is currently Processing under
	// the caller's lock. If the lease was lost, ErrLockLost is
	// returned.
	Retry(ctx context.Context, jb *job.Job, retryAt time.Time, lastError string) error

	// PromoteRetryReady clears the lock and RetryAt fields of every
	// Pending job whose RetryAt has passed. Claim already treats such a
	// job as eligible, so promotion only clears the stale scheduling
	// fields. It is idempotent and safe to call concurrently with Claim.
	//
	// PromoteRetryReady returns the number of jobs promoted.
	PromoteRetryReady(ctx context.Context) (int64, error)

	// ReclaimExpiredLocks transitions every Processing job whose lease
	// (LockedAt + lease) has expired back to Pending, clearing its lock
	// fields. Attempts is not decremented: the prior attempt still
	// counts toward the retry budget (at-least-once semantics).
	//
	// ReclaimExpiredLocks returns the number of jobs reclaimed.
	ReclaimExpiredLocks(ctx context.Context, lease time.Duration) (int64, error)
}
