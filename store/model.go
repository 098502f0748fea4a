package store

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/mvelo/queuectl/job"
)

type jobModel struct {
	bun.BaseModel `bun:"table:jobs"`
	Id            string `bun:"id,pk"`
	Command       string `bun:"command,notnull"`

	Status     job.Status `bun:"status,notnull,default:0"`
	Attempts   uint32     `bun:"attempts,notnull,default:0"`
	MaxRetries uint32     `bun:"max_retries,notnull,default:0"`
	Priority   int        `bun:"priority,notnull,default:0"`

	CreatedAt   time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
	CompletedAt *time.Time `bun:"completed_at,nullzero,default:null"`
	RetryAt     *time.Time `bun:"retry_at,nullzero,default:null"`
	RunAt       *time.Time `bun:"run_at,nullzero,default:null"`

	LockedBy *string    `bun:"locked_by,nullzero,default:null"`
	LockedAt *time.Time `bun:"locked_at,nullzero,default:null"`

	LastError *string `bun:"last_error,nullzero,default:null"`

	StdoutLog string `bun:"stdout_log,notnull,default:''"`
	StderrLog string `bun:"stderr_log,notnull,default:''"`
	ExitCode  *int   `bun:"exit_code,nullzero,default:null"`
}

func (jm *jobModel) toJob() *job.Job {
	return &job.Job{
		Id:      jm.Id,
		Command: jm.Command,

		State:      jm.Status,
		Attempts:   jm.Attempts,
		MaxRetries: jm.MaxRetries,
		Priority:   jm.Priority,

		CreatedAt:   jm.CreatedAt,
		UpdatedAt:   jm.UpdatedAt,
		CompletedAt: jm.CompletedAt,
		RetryAt:     jm.RetryAt,
		RunAt:       jm.RunAt,

		LockedBy: jm.LockedBy,
		LockedAt: jm.LockedAt,

		LastError: jm.LastError,

		StdoutLog: jm.StdoutLog,
		StderrLog: jm.StderrLog,
		ExitCode:  jm.ExitCode,
	}
}

func modelFromJob(jb *job.Job) *jobModel {
	return &jobModel{
		Id:      jb.Id,
		Command: jb.Command,

		Status:     jb.State,
		Attempts:   jb.Attempts,
		MaxRetries: jb.MaxRetries,
		Priority:   jb.Priority,

		CreatedAt:   jb.CreatedAt,
		UpdatedAt:   jb.UpdatedAt,
		CompletedAt: jb.CompletedAt,
		RetryAt:     jb.RetryAt,
		RunAt:       jb.RunAt,

		LockedBy: jb.LockedBy,
		LockedAt: jb.LockedAt,

		LastError: jb.LastError,

		StdoutLog: jb.StdoutLog,
		StderrLog: jb.StderrLog,
		ExitCode:  jb.ExitCode,
	}
}

type deadLetterModel struct {
	bun.BaseModel `bun:"table:dead_letters"`
	Id            string    `bun:"id,pk"`
	JobId         string    `bun:"job_id,notnull"`
	MovedAt       time.Time `bun:"moved_at,nullzero,notnull,default:current_timestamp"`
	Reason        string    `bun:"reason,notnull"`
	Snapshot      []byte    `bun:"snapshot,type:blob"`
}

type configModel struct {
	bun.BaseModel `bun:"table:config"`
	Key           string `bun:"key,pk"`
	Value         string `bun:"value,notnull"`
}
