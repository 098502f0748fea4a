package store

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/mvelo/queuectl"
	"github.com/mvelo/queuectl/job"
)

// Claimer implements queuectl.Claimer using a SQL backend.
//
// Claimer performs atomic state transitions using UPDATE ...
// RETURNING semantics to ensure safe concurrent access across
// multiple workers. The selection of the eligible row and its
// transition to Processing happen inside the same statement, so no
// explicit transaction is required for Claim to be race-free: SQLite
// (and any bun-supported dialect honoring its own isolation
// guarantees) executes one UPDATE as a single atomic unit against
// the table.
type Claimer struct {
	db *bun.DB
}

// NewClaimer creates a new SQL-backed Claimer.
//
// The provided *bun.DB must be properly configured and connected.
// Schema initialization must be completed before using Claimer.
func NewClaimer(db *bun.DB) *Claimer {
	return &Claimer{db: db}
}

// Claim atomically selects the single highest-priority eligible job
// and transitions it to Processing.
func (c *Claimer) Claim(ctx context.Context, workerID string, lease time.Duration) (*job.Job, error) {
	now := time.Now()
	expired := now.Add(-lease)

	subQuery := c.db.NewSelect().
		Model((*jobModel)(nil)).
		Column("id").
		WhereGroup("AND", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.
				Where("status = ?", job.Pending).
				WhereOr("status = ? AND locked_at <= ?", job.Processing, expired)
		}).
		Where("(run_at IS NULL OR run_at <= ?)", now).
		Where("(retry_at IS NULL OR retry_at <= ?)", now).
		OrderExpr("(CASE WHEN priority > 0 THEN 0 ELSE 1 END) ASC").
		OrderExpr("priority DESC").
		Order("created_at ASC").
		Limit(1)

	var rows []*jobModel
	err := c.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("status = ?", job.Processing).
		Set("locked_by = ?", workerID).
		Set("locked_at = ?", now).
		Set("updated_at = ?", now).
		Where("id = (?)", subQuery).
		Returning("*").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toJob(), nil
}

// IncrementAttempts records that an execution has begun for jb.
func (c *Claimer) IncrementAttempts(ctx context.Context, jb *job.Job) error {
	now := time.Now()
	res, err := c.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("attempts = attempts + 1").
		Set("updated_at = ?", now).
		Where("id = ?", jb.Id).
		Where("status = ?", job.Processing).
		Where("locked_by = ?", jb.LockedBy).
		Exec(ctx)
	if err != nil {
		return err
	}
	if !isAffected(res) {
		return queuectl.ErrLockLost
	}
	jb.Attempts++
	jb.UpdatedAt = now
	return nil
}

// RecordOutput persists the captured exit code, stdout, and stderr of
// the attempt in progress onto jb's row, without changing its state.
func (c *Claimer) RecordOutput(ctx context.Context, jb *job.Job, exitCode int, stdout string, stderr string) error {
	now := time.Now()
	res, err := c.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("exit_code = ?", exitCode).
		Set("stdout_log = ?", stdout).
		Set("stderr_log = ?", stderr).
		Set("updated_at = ?", now).
		Where("id = ?", jb.Id).
		Where("status = ?", job.Processing).
		Where("locked_by = ?", jb.LockedBy).
		Exec(ctx)
	if err != nil {
		return err
	}
	if !isAffected(res) {
		return queuectl.ErrLockLost
	}
	jb.ExitCode = &exitCode
	jb.StdoutLog = stdout
	jb.StderrLog = stderr
	jb.UpdatedAt = now
	return nil
}

// Complete transitions a Processing job to Completed.
func (c *Claimer) Complete(ctx context.Context, jb *job.Job) error {
	now := time.Now()
	res, err := c.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("status = ?", job.Completed).
		Set("completed_at = ?", now).
		Set("locked_by = NULL").
		Set("locked_at = NULL").
		Set("updated_at = ?", now).
		Where("id = ?", jb.Id).
		Where("status = ?", job.Processing).
		Where("locked_by = ?", jb.LockedBy).
		Exec(ctx)
	if err != nil {
		return err
	}
	if !isAffected(res) {
		return queuectl.ErrCompleteFailed
	}
	jb.State = job.Completed
	jb.CompletedAt = &now
	jb.LockedBy = nil
	jb.LockedAt = nil
	jb.UpdatedAt = now
	return nil
}

// Retry transitions a job from Processing back to Pending and
// schedules it for a future claim.
func (c *Claimer) Retry(ctx context.Context, jb *job.Job, retryAt time.Time, lastError string) error {
	now := time.Now()
	res, err := c.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("status = ?", job.Pending).
		Set("retry_at = ?", retryAt).
		Set("last_error = ?", lastError).
		Set("locked_by = NULL").
		Set("locked_at = NULL").
		Set("updated_at = ?", now).
		Where("id = ?", jb.Id).
		Where("status = ?", job.Processing).
		Where("locked_by = ?", jb.LockedBy).
		Exec(ctx)
	if err != nil {
		return err
	}
	if !isAffected(res) {
		return queuectl.ErrLockLost
	}
	jb.State = job.Pending
	jb.RetryAt = &retryAt
	jb.LastError = &lastError
	jb.LockedBy = nil
	jb.LockedAt = nil
	jb.UpdatedAt = now
	return nil
}

// PromoteRetryReady clears the RetryAt and lock fields of every
// Pending job whose RetryAt has passed. Claim already treats a past
// RetryAt as eligible on its own, so PromoteRetryReady does not change
// which jobs are claimable; it sweeps the field so that a plain status
// count or listing reflects "ready" jobs without having to evaluate
// RetryAt itself.
func (c *Claimer) PromoteRetryReady(ctx context.Context) (int64, error) {
	now := time.Now()
	res, err := c.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("retry_at = NULL").
		Set("locked_by = NULL").
		Set("locked_at = NULL").
		Set("updated_at = ?", now).
		Where("status = ?", job.Pending).
		Where("retry_at IS NOT NULL").
		Where("retry_at <= ?", now).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return getAffected(res), nil
}

// ReclaimExpiredLocks transitions every Processing job whose lease has
// expired back to Pending, clearing its lock fields. Attempts is not
// decremented.
func (c *Claimer) ReclaimExpiredLocks(ctx context.Context, lease time.Duration) (int64, error) {
	now := time.Now()
	expired := now.Add(-lease)
	res, err := c.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("status = ?", job.Pending).
		Set("locked_by = NULL").
		Set("locked_at = NULL").
		Set("updated_at = ?", now).
		Where("status = ?", job.Processing).
		Where("locked_at <= ?", expired).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return getAffected(res), nil
}
