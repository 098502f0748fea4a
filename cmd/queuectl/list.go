package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvelo/queuectl"
	"github.com/mvelo/queuectl/job"
	"github.com/mvelo/queuectl/store"
)

var (
	listStatus string
	listLimit  int
)

func init() {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status (pending, processing, completed, dead)")
	listCmd.Flags().IntVar(&listLimit, "limit", 50, "maximum rows to print (0 for unlimited)")
	rootCmd.AddCommand(listCmd)

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one job and its most recent output",
		Args:  cobra.ExactArgs(1),
		RunE:  runGet,
	}
	rootCmd.AddCommand(getCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show a count of jobs per state",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
	rootCmd.AddCommand(statusCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	status := job.Unknown
	if listStatus != "" {
		status, err = job.ParseStatus(listStatus)
		if err != nil {
			return err
		}
	}

	observer := store.NewObserver(db)
	jobs, err := observer.List(ctx, status, listLimit)
	if err != nil {
		return err
	}
	for _, jb := range jobs {
		fmt.Printf("%s\t%s\t%s\t%d/%d\t%s\n", jb.Id, jb.State, jb.Command, jb.Attempts, jb.MaxRetries, jb.CreatedAt.Format("2006-01-02T15:04:05"))
	}
	return nil
}

func runGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	observer := store.NewObserver(db)
	jb, err := observer.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if jb == nil {
		return queuectl.NewNotFoundError(fmt.Errorf("job %q not found", args[0]))
	}

	fmt.Printf("id:          %s\n", jb.Id)
	fmt.Printf("command:     %s\n", jb.Command)
	fmt.Printf("status:      %s\n", jb.State)
	fmt.Printf("attempts:    %d/%d\n", jb.Attempts, jb.MaxRetries)
	fmt.Printf("priority:    %d\n", jb.Priority)
	if jb.LastError != nil {
		fmt.Printf("last_error:  %s\n", *jb.LastError)
	}

	out, err := observer.GetOutput(ctx, args[0])
	if err != nil {
		return err
	}
	if out != nil {
		if out.ExitCode != nil {
			fmt.Printf("exit_code:   %d\n", *out.ExitCode)
		}
		fmt.Printf("stdout:\n%s\n", out.Stdout)
		fmt.Printf("stderr:\n%s\n", out.Stderr)
	}
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	observer := store.NewObserver(db)
	counts, err := observer.JobCounts(ctx)
	if err != nil {
		return err
	}
	for _, s := range []job.Status{job.Pending, job.Processing, job.Completed, job.Dead} {
		fmt.Printf("%s\t%d\n", s, counts[s])
	}
	return nil
}
