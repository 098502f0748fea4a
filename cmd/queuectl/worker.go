package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mvelo/queuectl"
	"github.com/mvelo/queuectl/internal"
	"github.com/mvelo/queuectl/runner"
	"github.com/mvelo/queuectl/store"
)

var (
	workerID          string
	workerPidFile     string
	workerPoll        time.Duration
	workerErrSleep    time.Duration
	workerConcurrency int
)

func init() {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run a worker loop until terminated",
		Args:  cobra.NoArgs,
		RunE:  runWorker,
	}
	cmd.Flags().StringVar(&workerID, "id", "", "worker id prefix (generated if omitted)")
	cmd.Flags().StringVar(&workerPidFile, "pid-file", "queuectl.pids", "file listing active worker process ids")
	cmd.Flags().DurationVar(&workerPoll, "poll-interval", 500*time.Millisecond, "idle sleep between claim attempts")
	cmd.Flags().DurationVar(&workerErrSleep, "error-sleep", time.Second, "sleep after a store or panic error")
	cmd.Flags().IntVar(&workerConcurrency, "concurrency", 1, "number of worker loops to run in this process")
	rootCmd.AddCommand(cmd)
}

// workerUnit adapts a Worker's Start/Stop lifecycle into an internal.Unit
// so a group of them can be supervised together inside one process.
func workerUnit(w *queuectl.Worker, stopTimeout time.Duration, log *slog.Logger) internal.Unit {
	return func(ctx context.Context) {
		if err := w.Start(ctx); err != nil {
			log.Error("worker start failed", "err", err)
			return
		}
		<-ctx.Done()
		if err := w.Stop(stopTimeout); err != nil {
			log.Error("worker stop failed", "err", err)
		}
	}
}

func runWorker(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	cfg, err := loadConfig(ctx, db)
	if err != nil {
		return err
	}

	id := workerID
	if id == "" {
		id = uuid.NewString()
	}

	if err := appendPID(workerPidFile); err != nil {
		log := newLogger()
		log.Warn("could not update pid file", "err", err)
	}
	defer func() {
		if err := removePID(workerPidFile); err != nil {
			newLogger().Warn("could not clean up pid file", "err", err)
		}
	}()

	log := newLogger()
	claimer := store.NewClaimer(db)
	deadLetter := store.NewDeadLetter(db)

	if workerConcurrency < 1 {
		workerConcurrency = 1
	}

	units := make([]internal.Unit, workerConcurrency)
	for i := 0; i < workerConcurrency; i++ {
		loopID := id
		if workerConcurrency > 1 {
			loopID = fmt.Sprintf("%s-%d", id, i)
		}
		w := queuectl.NewWorker(claimer, deadLetter, runner.Run, &queuectl.WorkerConfig{
			WorkerID:          loopID,
			Lease:             time.Duration(cfg.LockLeaseSeconds) * time.Second,
			PollInterval:      workerPoll,
			ErrorSleep:        workerErrSleep,
			JobTimeout:        time.Duration(cfg.JobTimeoutSeconds) * time.Second,
			BackoffBase:       cfg.BackoffBase,
			MaxBackoffSeconds: cfg.MaxBackoffSeconds,
		}, log)
		units[i] = workerUnit(w, 10*time.Second, log)
	}

	sup := internal.NewSupervisor(log)
	sup.Run(ctx, units...)

	maintenance := queuectl.NewMaintenanceWorker(claimer, &queuectl.MaintenanceConfig{
		Interval: 30 * time.Second,
		Lease:    time.Duration(cfg.LockLeaseSeconds) * time.Second,
	}, log)
	if err := maintenance.Start(ctx); err != nil {
		return fmt.Errorf("start maintenance: %w", err)
	}

	log.Info("worker running", "id", id, "concurrency", workerConcurrency)
	<-ctx.Done()
	log.Info("shutting down", "id", id)

	<-sup.Wait()
	if err := maintenance.Stop(5 * time.Second); err != nil {
		log.Error("maintenance stop", "err", err)
	}
	return nil
}
