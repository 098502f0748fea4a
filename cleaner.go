package queuectl

import (
	"context"
	"time"

	"github.com/mvelo/queuectl/job"
)

// Cleaner provides a mechanism for permanently removing jobs from
// storage. It is the only way a Job is ever destroyed outside the
// dead-letter/requeue cycle.
//
// Cleaner is intended for administrative and retention-management use.
// It does not participate in normal job processing and must not modify
// non-terminal jobs.
//
// Typical usage includes:
//
//   - removing completed jobs older than a retention window
//   - purging dead jobs after they have been inspected and abandoned
//
// Clean must only delete jobs in terminal states (Completed or Dead).
// Implementations must reject attempts to delete Pending or Processing
// jobs.
type Cleaner interface {

	// Clean deletes jobs matching the given status and time condition.
	//
	// If status is job.Unknown (zero value), Clean deletes all terminal
	// jobs (both Completed and Dead).
	//
	// The before parameter restricts deletion to jobs whose UpdatedAt
	// is less than or equal to the provided time. If before is nil, no
	// time-based filtering is applied.
	//
	// Clean returns the number of deleted jobs.
	//
	// Clean must not delete jobs in non-terminal states. If status
	// refers to a non-terminal state, ErrBadStatus is returned.
	//
	// Deleting a Dead job does not delete its dead-letter entry; use
	// DeadLetter.Requeue first if the entry should also be removed.
	Clean(ctx context.Context, status job.Status, before *time.Time) (int64, error)
}
