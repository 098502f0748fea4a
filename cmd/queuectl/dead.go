package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvelo/queuectl"
	"github.com/mvelo/queuectl/store"
)

var deadListLimit int

func init() {
	deadCmd := &cobra.Command{
		Use:   "dead",
		Short: "Inspect and manage dead-lettered jobs",
	}
	rootCmd.AddCommand(deadCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List dead-letter entries",
		Args:  cobra.NoArgs,
		RunE:  runDeadList,
	}
	listCmd.Flags().IntVar(&deadListLimit, "limit", 50, "maximum rows to print (0 for unlimited)")
	deadCmd.AddCommand(listCmd)

	requeueCmd := &cobra.Command{
		Use:   "requeue <job-id>",
		Short: "Move a dead job back to pending with a fresh retry budget",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeadRequeue,
	}
	deadCmd.AddCommand(requeueCmd)
}

func runDeadList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	deadLetter := store.NewDeadLetter(db)
	entries, err := deadLetter.ListDead(ctx, deadListLimit)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%s\t%s\t%s\t%s\n", e.Id, e.JobId, e.MovedAt.Format("2006-01-02T15:04:05"), e.Reason)
	}
	return nil
}

func runDeadRequeue(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	deadLetter := store.NewDeadLetter(db)
	ok, err := deadLetter.Requeue(ctx, args[0])
	if err != nil {
		return err
	}
	if !ok {
		return queuectl.NewConflictError(fmt.Errorf("job %q is not in the dead-letter area", args[0]))
	}
	fmt.Printf("job %s requeued\n", args[0])
	return nil
}
