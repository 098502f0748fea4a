package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvelo/queuectl/job"
	"github.com/mvelo/queuectl/store"
)

var (
	cleanStatus string
	cleanBefore time.Duration
)

func init() {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Permanently delete terminal jobs (completed or dead)",
		Args:  cobra.NoArgs,
		RunE:  runClean,
	}
	cmd.Flags().StringVar(&cleanStatus, "status", "", "restrict to one terminal status (completed, dead); default both")
	cmd.Flags().DurationVar(&cleanBefore, "older-than", 0, "only delete jobs last updated before now minus this duration")
	rootCmd.AddCommand(cmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	status := job.Unknown
	if cleanStatus != "" {
		status, err = job.ParseStatus(cleanStatus)
		if err != nil {
			return err
		}
	}

	var before *time.Time
	if cleanBefore > 0 {
		t := time.Now().Add(-cleanBefore)
		before = &t
	}

	cleaner := store.NewCleaner(db)
	n, err := cleaner.Clean(ctx, status, before)
	if err != nil {
		return err
	}
	fmt.Printf("deleted %d jobs\n", n)
	return nil
}
