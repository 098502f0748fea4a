package queuectl

import (
	"context"
	"log/slog"
	"time"

	"github.com/mvelo/queuectl/internal"
)

// MaintenanceConfig defines the scheduling parameters for a
// MaintenanceWorker.
//
// Interval defines how often both sweeps run. Lease must match the
// lease duration workers pass to Claim; it is used only to find
// Processing jobs whose lock has expired.
type MaintenanceConfig struct {
	Interval time.Duration
	Lease    time.Duration
}

// MaintenanceWorker periodically runs the two sweeps that keep the
// queue moving independently of any single worker's lifetime:
//
//   - PromoteRetryReady clears the RetryAt and lock fields of
//     retry-scheduled jobs whose RetryAt has passed.
//   - ReclaimExpiredLocks returns jobs stuck in Processing behind a
//     crashed worker's expired lease back to Pending.
//
// Neither sweep is required for correctness of any single claim —
// Claim's own predicate already treats a job with an expired lease or
// a past RetryAt as eligible — but without a periodic sweep a job
// only becomes visible again the next time some worker's Claim
// happens to look for it. MaintenanceWorker exists to bound that
// delay independent of traffic.
//
// MaintenanceWorker has a strict lifecycle:
//   - Start may only be called once.
//   - Stop must be called to terminate the worker.
//   - Stop waits for the internal task to finish or until the timeout
//     expires.
type MaintenanceWorker struct {
	lcBase
	claimer  Claimer
	task     internal.TimerTask
	log      *slog.Logger
	interval time.Duration
	lease    time.Duration
}

// NewMaintenanceWorker creates a new MaintenanceWorker using the
// provided Claimer implementation and configuration.
//
// The worker is not started automatically. Call Start to begin
// periodic sweeps.
func NewMaintenanceWorker(claimer Claimer, config *MaintenanceConfig, log *slog.Logger) *MaintenanceWorker {
	return &MaintenanceWorker{
		claimer:  claimer,
		log:      log,
		interval: config.Interval,
		lease:    config.Lease,
	}
}

func (mw *MaintenanceWorker) sweep(ctx context.Context) {
	promoted, err := mw.claimer.PromoteRetryReady(ctx)
	if err != nil {
		mw.log.Error("error while promoting retry-ready jobs", "err", err)
	} else if promoted > 0 {
		mw.log.Info("promoted retry-ready jobs", "count", promoted)
	}

	reclaimed, err := mw.claimer.ReclaimExpiredLocks(ctx, mw.lease)
	if err != nil {
		mw.log.Error("error while reclaiming expired locks", "err", err)
	} else if reclaimed > 0 {
		mw.log.Warn("reclaimed jobs with expired locks", "count", reclaimed)
	}
}

// Start begins periodic execution of the maintenance sweeps.
//
// Start returns ErrDoubleStarted if the worker has already been started.
//
// The provided context controls cancellation of the background task.
func (mw *MaintenanceWorker) Start(ctx context.Context) error {
	if err := mw.tryStart(); err != nil {
		return err
	}
	mw.task.Start(ctx, mw.sweep, mw.interval)
	return nil
}

// Stop terminates the background maintenance task.
//
// Stop waits until the task finishes or the specified timeout expires.
// If shutdown does not complete within the timeout, ErrStopTimeout
// is returned.
//
// Stop returns ErrDoubleStopped if the worker is not running.
func (mw *MaintenanceWorker) Stop(timeout time.Duration) error {
	return mw.tryStop(timeout, mw.task.Stop)
}
