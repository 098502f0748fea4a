package queuectl

import (
	"context"
	"time"
)

// DeadLetterEntry is one sidelined record per job currently Dead. It
// freezes a snapshot of the job's fields at the moment of the move, for
// forensic inspection; the snapshot is discarded on requeue.
type DeadLetterEntry struct {
	Id       string
	JobId    string
	MovedAt  time.Time
	Reason   string
	Snapshot []byte // JSON snapshot of the job at the moment of the move
}

// DeadLetter moves exhausted jobs aside with a reason and a snapshot,
// and reverses that move on demand.
//
// A job already Dead is not moved again. Exactly one DeadLetterEntry
// exists for every Dead job, and none for any other state.
type DeadLetter interface {

	// MoveToDead reads the current job row, inserts a dead-letter entry
	// containing (entryID, jobID, now, reason, json snapshot of the
	// job), and transitions the job's state to Dead — all in one
	// transaction.
	//
	// A job already Dead is not moved again; MoveToDead is a no-op in
	// that case.
	MoveToDead(ctx context.Context, jobID string, reason string) error

	// Requeue reverses a dead-letter move: it deletes the dead-letter
	// entry for jobID and resets the job to Pending with Attempts = 0,
	// RetryAt cleared, and lock fields cleared.
	//
	// The reset of Attempts is intentional — requeue is an operator
	// decision to grant a fresh retry budget.
	//
	// Requeue returns true if a dead-letter entry existed and was
	// removed; false if jobID was not in the dead-letter area.
	Requeue(ctx context.Context, jobID string) (bool, error)

	// ListDead returns up to limit dead-letter entries, most-recently
	// moved first.
	ListDead(ctx context.Context, limit int) ([]*DeadLetterEntry, error)
}
