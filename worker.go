package queuectl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mvelo/queuectl/internal"
	"github.com/mvelo/queuectl/job"
	"github.com/mvelo/queuectl/runner"
)

// CommandRunner executes one job's command to completion, or until
// timeout expires. It is the sole extension point between the queue
// kernel and the outside world's process table; runner.Run satisfies
// it directly.
type CommandRunner func(ctx context.Context, command string, timeout time.Duration) runner.Result

// WorkerConfig defines the runtime behavior of a Worker.
//
// WorkerID identifies this worker's claims and lock ownership; it must
// be unique among workers sharing a store.
//
// Lease is the lock-lease duration assigned on Claim. It is fixed for
// the lifetime of the worker and is not extended while a job runs.
//
// PollInterval is how long the worker sleeps after finding no eligible
// job before trying Claim again.
//
// ErrorSleep is how long the worker sleeps after a store error before
// retrying, to avoid a tight error loop against a struggling store.
//
// JobTimeout bounds a single command's execution.
//
// BackoffBase and MaxBackoffSeconds parameterize RetryAt.
type WorkerConfig struct {
	WorkerID          string
	Lease             time.Duration
	PollInterval      time.Duration
	ErrorSleep        time.Duration
	JobTimeout        time.Duration
	BackoffBase       int
	MaxBackoffSeconds int
}

// Worker runs the single-threaded cooperative claim/execute/report loop
// described in doc.go. One Worker handles one job at a time; running
// several workers concurrently means running several Workers, each
// against the same store, each with its own WorkerID — optionally via
// Supervisor, or as separate processes.
//
// Worker has a strict lifecycle:
//   - Start may only be called once.
//   - Stop requests cooperative shutdown: the loop finishes the job it
//     is currently executing, if any, and does not claim another.
type Worker struct {
	lcBase
	claimer    Claimer
	deadLetter DeadLetter
	run        CommandRunner
	log        *slog.Logger
	cfg        WorkerConfig
	cancel     context.CancelFunc
	done       internal.DoneChan
}

// NewWorker creates a Worker that claims jobs through claimer, moves
// exhausted jobs aside through deadLetter, and executes commands via
// run (ordinarily runner.Run).
func NewWorker(claimer Claimer, deadLetter DeadLetter, run CommandRunner, cfg *WorkerConfig, log *slog.Logger) *Worker {
	return &Worker{
		claimer:    claimer,
		deadLetter: deadLetter,
		run:        run,
		log:        log,
		cfg:        *cfg,
	}
}

// Start begins the claim loop in the background.
//
// Start returns ErrDoubleStarted if the worker has already been
// started. The provided context bounds the worker's entire lifetime;
// canceling it requests the same cooperative shutdown as Stop.
func (w *Worker) Start(ctx context.Context) error {
	if err := w.tryStart(); err != nil {
		return err
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(internal.DoneChan)
	go w.loop(ctx)
	return nil
}

func (w *Worker) doStop() internal.DoneChan {
	w.cancel()
	return w.done
}

// Stop requests cooperative shutdown and waits up to timeout for the
// loop to exit. If the in-flight command is still running when timeout
// elapses, ErrStopTimeout is returned and the command keeps running in
// the background; the job's lease will eventually expire and
// ReclaimExpiredLocks will make it claimable again.
//
// Stop returns ErrDoubleStopped if the worker is not running.
func (w *Worker) Stop(timeout time.Duration) error {
	return w.tryStop(timeout, w.doStop)
}

func (w *Worker) loop(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		w.tick(ctx)
	}
}

func (w *Worker) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			err := NewWorkerFatalError(fmt.Errorf("%v", r))
			w.log.Error("worker loop panic recovered", "worker_id", w.cfg.WorkerID, "err", err)
			w.sleep(ctx, w.cfg.ErrorSleep)
		}
	}()

	jb, err := w.claimer.Claim(ctx, w.cfg.WorkerID, w.cfg.Lease)
	if err != nil {
		w.log.Error("claim failed", "worker_id", w.cfg.WorkerID, "err", NewTransientStoreError(err))
		w.sleep(ctx, w.cfg.ErrorSleep)
		return
	}
	if jb == nil {
		w.sleep(ctx, w.cfg.PollInterval)
		return
	}

	w.log.Info("job claimed", "worker_id", w.cfg.WorkerID, "id", jb.Id, "attempts", jb.Attempts)
	w.execute(ctx, jb)
}

func (w *Worker) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (w *Worker) execute(ctx context.Context, jb *job.Job) {
	// A claimed job runs to completion and has its outcome recorded even
	// if shutdown is requested meanwhile.
	ctx = context.WithoutCancel(ctx)
	if err := w.claimer.IncrementAttempts(ctx, jb); err != nil {
		w.log.Error("increment attempts failed", "worker_id", w.cfg.WorkerID, "id", jb.Id, "err", err)
		return
	}

	res := w.run(ctx, jb.Command, w.cfg.JobTimeout)

	if err := w.claimer.RecordOutput(ctx, jb, res.ExitCode, res.Stdout, res.Stderr); err != nil {
		w.log.Error("record output failed", "worker_id", w.cfg.WorkerID, "id", jb.Id, "err", err)
		return
	}

	if res.ExitCode == 0 {
		if err := w.claimer.Complete(ctx, jb); err != nil {
			w.log.Error("cannot complete job", "worker_id", w.cfg.WorkerID, "id", jb.Id, "err", err)
			return
		}
		w.log.Info("job completed", "worker_id", w.cfg.WorkerID, "id", jb.Id)
		return
	}

	lastError := fmt.Sprintf("exit code %d: %s", res.ExitCode, res.Stderr)
	w.log.Warn("command failed", "worker_id", w.cfg.WorkerID, "id", jb.Id,
		"err", NewCommandFailureError(errors.New(lastError)))
	w.fail(ctx, jb, lastError)
}

func (w *Worker) fail(ctx context.Context, jb *job.Job, lastError string) {
	if jb.Attempts < jb.MaxRetries {
		at := RetryAt(time.Now(), jb.Attempts, w.cfg.BackoffBase, w.cfg.MaxBackoffSeconds)
		if err := w.claimer.Retry(ctx, jb, at, lastError); err != nil {
			w.log.Error("cannot retry job", "worker_id", w.cfg.WorkerID, "id", jb.Id, "err", err)
			return
		}
		w.log.Warn("job scheduled for retry", "worker_id", w.cfg.WorkerID, "id", jb.Id,
			"attempt", jb.Attempts, "max_retries", jb.MaxRetries, "retry_at", at)
		return
	}

	reason := fmt.Sprintf("Max retries exceeded: %s", lastError)
	if err := w.deadLetter.MoveToDead(ctx, jb.Id, reason); err != nil {
		w.log.Error("cannot move job to dead letter", "worker_id", w.cfg.WorkerID, "id", jb.Id, "err", err)
		return
	}
	w.log.Error("job moved to dead letter", "worker_id", w.cfg.WorkerID, "id", jb.Id, "attempts", jb.Attempts)
}
