package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mvelo/queuectl"
	"github.com/mvelo/queuectl/store"
)

var (
	enqueueID         string
	enqueuePriority   int
	enqueueMaxRetries int
	enqueueRunIn      time.Duration
)

func init() {
	cmd := &cobra.Command{
		Use:   "enqueue <command>",
		Short: "Submit a new job",
		Args:  cobra.ExactArgs(1),
		RunE:  runEnqueue,
	}
	cmd.Flags().StringVar(&enqueueID, "id", "", "job id (generated if omitted)")
	cmd.Flags().IntVar(&enqueuePriority, "priority", 0, "priority, 0-10")
	cmd.Flags().IntVar(&enqueueMaxRetries, "max-retries", -1, "max retries (defaults to config value if unset)")
	cmd.Flags().DurationVar(&enqueueRunIn, "run-in", 0, "delay before the job becomes eligible")
	rootCmd.AddCommand(cmd)
}

func runEnqueue(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	cfg, err := loadConfig(ctx, db)
	if err != nil {
		return err
	}

	id := enqueueID
	if id == "" {
		id = uuid.NewString()
	}
	if enqueuePriority < 0 || enqueuePriority > 10 {
		return errors.New("priority must be within 0-10")
	}

	sub := &queuectl.Submission{
		Id:       id,
		Command:  args[0],
		Priority: enqueuePriority,
	}
	if enqueueMaxRetries >= 0 {
		v := uint32(enqueueMaxRetries)
		sub.MaxRetries = &v
	}
	if enqueueRunIn > 0 {
		at := time.Now().Add(enqueueRunIn)
		sub.RunAt = &at
	}

	enqueuer := store.NewEnqueuer(db, cfg.MaxRetries)
	jb, err := enqueuer.Enqueue(ctx, sub)
	if err != nil {
		if errors.Is(err, queuectl.ErrConflict) {
			return queuectl.NewConflictError(fmt.Errorf("job %q already exists", id))
		}
		return err
	}

	fmt.Println(jb.Id)
	return nil
}
