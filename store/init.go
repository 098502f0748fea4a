package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"
)

// Open connects to a SQLite database file at path using the pure-Go
// modernc.org/sqlite driver and wraps it in a *bun.DB. WAL mode and a
// busy_timeout are set on the DSN so concurrent workers sharing one
// file don't immediately collide under SQLITE_BUSY.
func Open(path string) (*bun.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite tolerates only one writer at a time regardless of driver
	// connection pooling; serialize on a single connection to avoid
	// spurious SQLITE_BUSY under the Go driver's own pool.
	sqldb.SetMaxOpenConns(1)
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

func createJobsTable(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateTable().
		Model((*jobModel)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func createRunIndex(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateIndex().
		Model((*jobModel)(nil)).
		Index("idx_jobs_status_run").
		Column("status", "run_at").
		IfNotExists().
		Exec(ctx)
	return err
}

func createLockIndex(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateIndex().
		Model((*jobModel)(nil)).
		Index("idx_jobs_status_locked").
		Column("status", "locked_at").
		IfNotExists().
		Exec(ctx)
	return err
}

func createRetryIndex(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateIndex().
		Model((*jobModel)(nil)).
		Index("idx_jobs_status_retry").
		Column("status", "retry_at").
		IfNotExists().
		Exec(ctx)
	return err
}

func createUpdatedIndex(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateIndex().
		Model((*jobModel)(nil)).
		Index("idx_jobs_status_updated").
		Column("status", "updated_at").
		IfNotExists().
		Exec(ctx)
	return err
}

func createDeadLettersTable(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateTable().
		Model((*deadLetterModel)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func createDeadLettersJobIndex(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateIndex().
		Model((*deadLetterModel)(nil)).
		Index("idx_dead_letters_job_id").
		Column("job_id").
		Unique().
		IfNotExists().
		Exec(ctx)
	return err
}

func createConfigTable(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateTable().
		Model((*configModel)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func initDB(ctx context.Context, db *bun.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	steps := []func(context.Context, bun.IDB) error{
		createJobsTable,
		createRunIndex,
		createLockIndex,
		createRetryIndex,
		createUpdatedIndex,
		createDeadLettersTable,
		createDeadLettersJobIndex,
		createConfigTable,
	}
	for _, step := range steps {
		if err := step(ctx, tx); err != nil {
			return errors.Join(err, tx.Rollback())
		}
	}
	return tx.Commit()
}

// InitDB initializes the database schema required by the store
// backend.
//
// It creates the jobs, dead_letters, and config tables and their
// indexes inside a single transaction. If any step fails, the
// transaction is rolled back.
//
// InitDB is idempotent and may be safely called multiple times. It
// does not drop or modify existing tables beyond creating missing
// objects.
//
// The caller is responsible for providing a properly configured
// *bun.DB, such as one returned by Open.
func InitDB(ctx context.Context, db *bun.DB) error {
	return initDB(ctx, db)
}

// MustInitDB behaves like InitDB but panics if initialization fails.
//
// This helper is intended for application bootstrap code where
// failure to initialize schema is considered unrecoverable.
func MustInitDB(ctx context.Context, db *bun.DB) {
	if err := initDB(ctx, db); err != nil {
		panic(err)
	}
}
