package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/mvelo/queuectl"
	"github.com/mvelo/queuectl/job"
)

// Observer implements queuectl.Observer using a SQL backend.
//
// Observer provides read-only access to job state stored in the
// database. It does not participate in lock-lease handling or state
// transitions and must not modify job records.
type Observer struct {
	db *bun.DB
}

// NewObserver creates a new SQL-backed Observer.
//
// The provided *bun.DB must be properly configured and connected.
// Schema initialization must be completed before using Observer.
func NewObserver(db *bun.DB) *Observer {
	return &Observer{db: db}
}

// Get retrieves a job by its identifier.
//
// If no job with the given id exists, Get returns (nil, nil).
func (o *Observer) Get(ctx context.Context, id string) (*job.Job, error) {
	var ret jobModel
	err := o.db.NewSelect().
		Model(&ret).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return ret.toJob(), nil
}

// List returns up to limit jobs filtered by status, most recently
// created first.
//
// If status is job.Unknown (zero value), no status filter is applied.
// If limit is zero or negative, no LIMIT clause is added.
func (o *Observer) List(ctx context.Context, status job.Status, limit int) ([]*job.Job, error) {
	var models []*jobModel
	query := o.db.NewSelect().Model(&models).Order("created_at DESC")
	if status != job.Unknown {
		query.Where("status = ?", status)
	}
	if limit > 0 {
		query.Limit(limit)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	ret := make([]*job.Job, len(models))
	for i, m := range models {
		ret[i] = m.toJob()
	}
	return ret, nil
}

// JobCounts returns the number of jobs in each state.
func (o *Observer) JobCounts(ctx context.Context) (queuectl.Counts, error) {
	var rows []struct {
		Status job.Status `bun:"status"`
		Count  int64       `bun:"count"`
	}
	err := o.db.NewSelect().
		Model((*jobModel)(nil)).
		ColumnExpr("status").
		ColumnExpr("count(*) AS count").
		Group("status").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	ret := make(queuectl.Counts, len(rows))
	for _, row := range rows {
		ret[row.Status] = row.Count
	}
	return ret, nil
}

// GetOutput returns the most recent execution's captured output for
// id. If no job with the given id exists, GetOutput returns (nil, nil).
func (o *Observer) GetOutput(ctx context.Context, id string) (*queuectl.Output, error) {
	var ret jobModel
	err := o.db.NewSelect().
		Model(&ret).
		Column("stdout_log", "stderr_log", "exit_code", "completed_at").
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &queuectl.Output{
		Stdout:      ret.StdoutLog,
		Stderr:      ret.StderrLog,
		ExitCode:    ret.ExitCode,
		CompletedAt: ret.CompletedAt,
	}, nil
}
