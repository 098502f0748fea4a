package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/mvelo/queuectl"
	"github.com/mvelo/queuectl/job"
)

// Enqueuer implements queuectl.Enqueuer using a SQL backend.
//
// Enqueuer inserts new jobs into storage in the Pending state. It
// relies on the jobs table's primary key to reject a duplicate Id as
// a conflict; it performs no other deduplication.
type Enqueuer struct {
	db                *bun.DB
	defaultMaxRetries uint32
}

// NewEnqueuer creates a new SQL-backed Enqueuer.
//
// defaultMaxRetries is used for any Submission that leaves MaxRetries
// nil; callers ordinarily pass queuectl.Config.MaxRetries here.
//
// The provided *bun.DB must be properly configured and connected.
// Schema initialization must be completed before enqueuing jobs.
func NewEnqueuer(db *bun.DB, defaultMaxRetries uint32) *Enqueuer {
	return &Enqueuer{db: db, defaultMaxRetries: defaultMaxRetries}
}

// Enqueue inserts sub as a new Pending job.
//
// Enqueue returns a KindInput error if Id or Command is empty, or if
// Priority falls outside [0,10], before ever touching storage.
func (e *Enqueuer) Enqueue(ctx context.Context, sub *queuectl.Submission) (*job.Job, error) {
	if sub.Id == "" {
		return nil, queuectl.NewInputError(errors.New("id must not be empty"))
	}
	if sub.Command == "" {
		return nil, queuectl.NewInputError(errors.New("command must not be empty"))
	}
	if sub.Priority < 0 || sub.Priority > 10 {
		return nil, queuectl.NewInputError(errors.New("priority must be within 0-10"))
	}

	now := time.Now()
	maxRetries := e.defaultMaxRetries
	if sub.MaxRetries != nil {
		maxRetries = *sub.MaxRetries
	}
	model := modelFromJob(&job.Job{
		Id:         sub.Id,
		Command:    sub.Command,
		State:      job.Pending,
		MaxRetries: maxRetries,
		Priority:   sub.Priority,
		CreatedAt:  now,
		UpdatedAt:  now,
		RunAt:      sub.RunAt,
	})
	_, err := e.db.NewInsert().Model(model).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, queuectl.ErrConflict
		}
		return nil, err
	}
	return model.toJob(), nil
}

// isUniqueViolation reports whether err looks like a primary-key or
// unique-index violation. bun's dialects differ in the concrete error
// type their driver returns, but all of them surface SQLite's "UNIQUE
// constraint failed" or Postgres's "duplicate key value violates
// unique constraint" verbatim in the error message.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
