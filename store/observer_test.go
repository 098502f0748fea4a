package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/mvelo/queuectl"
	"github.com/mvelo/queuectl/job"
	"github.com/mvelo/queuectl/store"
)

func TestObserverGetMissing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	observer := store.NewObserver(db)

	jb, err := observer.Get(ctx, "missing")
	if err != nil {
		t.Fatal(err)
	}
	if jb != nil {
		t.Fatal("expected nil for a missing job")
	}
}

func TestObserverListFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	enqueuer := store.NewEnqueuer(db, 3)
	claimer := store.NewClaimer(db)
	observer := store.NewObserver(db)

	for _, id := range []string{"a", "b", "c"} {
		if _, err := enqueuer.Enqueue(ctx, &queuectl.Submission{Id: id, Command: "echo " + id}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := claimer.Claim(ctx, "worker-1", time.Minute); err != nil {
		t.Fatal(err)
	}

	pending, err := observer.List(ctx, job.Pending, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending jobs, got %d", len(pending))
	}

	processing, err := observer.List(ctx, job.Processing, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(processing) != 1 {
		t.Fatalf("expected 1 processing job, got %d", len(processing))
	}

	all, err := observer.List(ctx, job.Unknown, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 jobs total, got %d", len(all))
	}
}

func TestObserverListRespectsLimit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	enqueuer := store.NewEnqueuer(db, 3)
	observer := store.NewObserver(db)

	for _, id := range []string{"a", "b", "c"} {
		if _, err := enqueuer.Enqueue(ctx, &queuectl.Submission{Id: id, Command: "echo " + id}); err != nil {
			t.Fatal(err)
		}
	}

	jobs, err := observer.List(ctx, job.Unknown, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
}

func TestJobCounts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	enqueuer := store.NewEnqueuer(db, 3)
	claimer := store.NewClaimer(db)
	observer := store.NewObserver(db)

	if _, err := enqueuer.Enqueue(ctx, &queuectl.Submission{Id: "a", Command: "echo a"}); err != nil {
		t.Fatal(err)
	}
	if _, err := enqueuer.Enqueue(ctx, &queuectl.Submission{Id: "b", Command: "echo b"}); err != nil {
		t.Fatal(err)
	}
	if _, err := claimer.Claim(ctx, "worker-1", time.Minute); err != nil {
		t.Fatal(err)
	}

	counts, err := observer.JobCounts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if counts[job.Pending] != 1 {
		t.Fatalf("expected 1 pending, got %d", counts[job.Pending])
	}
	if counts[job.Processing] != 1 {
		t.Fatalf("expected 1 processing, got %d", counts[job.Processing])
	}
}

func TestGetOutput(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	enqueuer := store.NewEnqueuer(db, 3)
	claimer := store.NewClaimer(db)
	observer := store.NewObserver(db)

	if _, err := enqueuer.Enqueue(ctx, &queuectl.Submission{Id: "a", Command: "echo a"}); err != nil {
		t.Fatal(err)
	}
	jb, err := claimer.Claim(ctx, "worker-1", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if err := claimer.RecordOutput(ctx, jb, 0, "a\n", ""); err != nil {
		t.Fatal(err)
	}

	out, err := observer.GetOutput(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if out == nil {
		t.Fatal("expected output, got nil")
	}
	if out.Stdout != "a\n" {
		t.Fatalf("expected stdout %q, got %q", "a\n", out.Stdout)
	}
	if out.ExitCode == nil || *out.ExitCode != 0 {
		t.Fatalf("expected exit code 0, got %v", out.ExitCode)
	}
}

func TestGetOutputMissing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	observer := store.NewObserver(db)

	out, err := observer.GetOutput(ctx, "missing")
	if err != nil {
		t.Fatal(err)
	}
	if out != nil {
		t.Fatal("expected nil output for a missing job")
	}
}
