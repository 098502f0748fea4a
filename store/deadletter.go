package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/mvelo/queuectl"
	"github.com/mvelo/queuectl/job"
)

// DeadLetter implements queuectl.DeadLetter using a SQL backend.
//
// DeadLetter moves a job's row to job.Dead and snapshots it into a
// separate dead_letters table, encoded with encoding/json: the
// snapshot is a forensic artifact read back as opaque bytes by
// operators, not a column queried or indexed by this package, so a
// schema-aware column type and a third-party codec buy nothing here.
type DeadLetter struct {
	db *bun.DB
}

// NewDeadLetter creates a new SQL-backed DeadLetter.
//
// The provided *bun.DB must be properly configured and connected.
// Schema initialization must be completed before using DeadLetter.
func NewDeadLetter(db *bun.DB) *DeadLetter {
	return &DeadLetter{db: db}
}

// MoveToDead reads the current job row, inserts a dead-letter entry
// with a JSON snapshot of it, and transitions the job to Dead, all
// inside one transaction.
func (d *DeadLetter) MoveToDead(ctx context.Context, jobID string, reason string) error {
	return d.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var jm jobModel
		err := tx.NewSelect().Model(&jm).Where("id = ?", jobID).Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return queuectl.ErrNotFound
			}
			return err
		}
		if jm.Status == job.Dead {
			return nil
		}

		snapshot, err := json.Marshal(jm.toJob())
		if err != nil {
			return err
		}

		now := time.Now()
		entry := &deadLetterModel{
			Id:       uuid.NewString(),
			JobId:    jobID,
			MovedAt:  now,
			Reason:   reason,
			Snapshot: snapshot,
		}
		if _, err := tx.NewInsert().Model(entry).Exec(ctx); err != nil {
			return err
		}

		res, err := tx.NewUpdate().
			Model((*jobModel)(nil)).
			Set("status = ?", job.Dead).
			Set("locked_by = NULL").
			Set("locked_at = NULL").
			Set("updated_at = ?", now).
			Where("id = ?", jobID).
			Exec(ctx)
		if err != nil {
			return err
		}
		if !isAffected(res) {
			return queuectl.ErrJobLost
		}
		return nil
	})
}

// Requeue reverses a dead-letter move.
func (d *DeadLetter) Requeue(ctx context.Context, jobID string) (bool, error) {
	var requeued bool
	err := d.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().
			Model((*deadLetterModel)(nil)).
			Where("job_id = ?", jobID).
			Exec(ctx)
		if err != nil {
			return err
		}
		if !isAffected(res) {
			return nil
		}

		now := time.Now()
		res, err = tx.NewUpdate().
			Model((*jobModel)(nil)).
			Set("status = ?", job.Pending).
			Set("attempts = 0").
			Set("retry_at = NULL").
			Set("locked_by = NULL").
			Set("locked_at = NULL").
			Set("updated_at = ?", now).
			Where("id = ?", jobID).
			Where("status = ?", job.Dead).
			Exec(ctx)
		if err != nil {
			return err
		}
		requeued = isAffected(res)
		return nil
	})
	if err != nil {
		return false, err
	}
	return requeued, nil
}

// ListDead returns up to limit dead-letter entries, most recently
// moved first.
func (d *DeadLetter) ListDead(ctx context.Context, limit int) ([]*queuectl.DeadLetterEntry, error) {
	var models []*deadLetterModel
	query := d.db.NewSelect().Model(&models).Order("moved_at DESC")
	if limit > 0 {
		query.Limit(limit)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	ret := make([]*queuectl.DeadLetterEntry, len(models))
	for i, m := range models {
		ret[i] = &queuectl.DeadLetterEntry{
			Id:       m.Id,
			JobId:    m.JobId,
			MovedAt:  m.MovedAt,
			Reason:   m.Reason,
			Snapshot: m.Snapshot,
		}
	}
	return ret, nil
}
