package queuectl

import (
	"context"
	"time"

	"github.com/mvelo/queuectl/job"
)

// Output captures the most recent execution's result for a job, as
// returned by Observer.GetOutput.
type Output struct {
	Stdout      string
	Stderr      string
	ExitCode    *int
	CompletedAt *time.Time
}

// Counts maps each job.Status to the number of jobs currently in it.
type Counts map[job.Status]int64

// Observer provides read-only access to jobs stored in the queue.
//
// Observer does not modify job state and does not participate in lease
// or lifecycle transitions. It is intended for diagnostic, monitoring,
// and administrative use cases.
//
// Methods of Observer return authoritative snapshots of storage state
// at the time of the call. Returned Job values must be treated as
// immutable views; mutating them does not affect the underlying queue.
type Observer interface {

	// Get returns the job identified by id.
	//
	// If no job with the given id exists, Get returns (nil, nil).
	//
	// Get must not change job state.
	Get(ctx context.Context, id string) (*job.Job, error)

	// List returns up to limit jobs matching the provided status,
	// ordered most-recently-created first.
	//
	// If status is job.Unknown (zero value), List returns jobs in any
	// state. If limit is zero or negative, List returns all matching
	// jobs, subject to storage-specific constraints.
	//
	// List is intended for inspection and administrative tools and
	// should not be used as part of normal job consumption.
	List(ctx context.Context, status job.Status, limit int) ([]*job.Job, error)

	// JobCounts returns the number of jobs in each state.
	JobCounts(ctx context.Context) (Counts, error)

	// GetOutput returns the most recent execution's captured output for
	// id. If no job with the given id exists, GetOutput returns
	// (nil, nil).
	GetOutput(ctx context.Context, id string) (*Output, error)
}
