package queuectl

import (
	"context"
	"time"

	"github.com/mvelo/queuectl/job"
)

// Submission describes a new job as presented to Enqueuer.
//
// Id must be non-empty and globally unique; reuse is a conflict.
// Command must be non-empty; it is opaque to the kernel. MaxRetries,
// if nil, defaults to the config surface's max_retries value. Priority
// must be within [0,10]. RunAt, if non-nil, schedules the job so it
// does not become eligible for claiming until that time.
type Submission struct {
	Id         string
	Command    string
	MaxRetries *uint32
	Priority   int
	RunAt      *time.Time
}

// Enqueuer defines the write-side entry point of the queue.
type Enqueuer interface {

	// Enqueue inserts a new job in the Pending state.
	//
	// The provided context controls cancellation of the enqueue
	// operation itself; it has no bearing on the job once persisted.
	//
	// Enqueue returns ErrConflict if sub.Id already refers to an
	// existing job. It does not mutate sub after returning.
	//
	// If Enqueue returns a non-nil error, the job must not be
	// considered enqueued.
	Enqueue(ctx context.Context, sub *Submission) (*job.Job, error)
}
