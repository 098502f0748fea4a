package store

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/mvelo/queuectl"
	"github.com/mvelo/queuectl/job"
)

// Cleaner implements queuectl.Cleaner using a SQL backend.
//
// Cleaner permanently removes terminal jobs from storage. It is
// intended for retention management and administrative cleanup. This
// implementation deletes rows directly from the jobs table and does
// not participate in lock-lease or processing logic.
type Cleaner struct {
	db *bun.DB
}

// NewCleaner creates a new SQL-backed Cleaner.
//
// The provided *bun.DB must be properly configured and connected.
// Schema initialization must be completed before using Cleaner.
func NewCleaner(db *bun.DB) *Cleaner {
	return &Cleaner{db: db}
}

// Clean deletes jobs matching the provided status and time filter.
//
// Only terminal states are allowed: job.Completed or job.Dead. If
// status is job.Unknown (zero value), both are eligible for deletion.
// If status refers to a non-terminal state, ErrBadStatus is returned.
//
// If before is non-nil, only jobs with updated_at <= *before are
// deleted.
func (c *Cleaner) Clean(ctx context.Context, status job.Status, before *time.Time) (int64, error) {
	if status != job.Unknown && status != job.Dead && status != job.Completed {
		return 0, queuectl.ErrBadStatus
	}
	query := c.db.NewDelete().Model((*jobModel)(nil))
	if status != job.Unknown {
		query.Where("status = ?", status)
	} else {
		query.Where("status IN (?, ?)", job.Completed, job.Dead)
	}
	if before != nil {
		query.Where("updated_at <= ?", before)
	}
	res, err := query.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return getAffected(res), nil
}
