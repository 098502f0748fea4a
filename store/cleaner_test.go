package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/mvelo/queuectl"
	"github.com/mvelo/queuectl/job"
	"github.com/mvelo/queuectl/store"
)

func TestCleanCompletedJobs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	enqueuer := store.NewEnqueuer(db, 3)
	claimer := store.NewClaimer(db)
	cleaner := store.NewCleaner(db)

	if _, err := enqueuer.Enqueue(ctx, &queuectl.Submission{Id: "a", Command: "echo a"}); err != nil {
		t.Fatal(err)
	}
	jb, err := claimer.Claim(ctx, "worker-1", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if err := claimer.Complete(ctx, jb); err != nil {
		t.Fatal(err)
	}

	n, err := cleaner.Clean(ctx, job.Completed, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 deleted job, got %d", n)
	}

	observer := store.NewObserver(db)
	found, err := observer.Get(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if found != nil {
		t.Fatal("expected the job to be gone")
	}
}

func TestCleanRejectsNonTerminalStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cleaner := store.NewCleaner(db)

	if _, err := cleaner.Clean(ctx, job.Pending, nil); err != queuectl.ErrBadStatus {
		t.Fatalf("expected ErrBadStatus, got %v", err)
	}
	if _, err := cleaner.Clean(ctx, job.Processing, nil); err != queuectl.ErrBadStatus {
		t.Fatalf("expected ErrBadStatus, got %v", err)
	}
}

func TestCleanUnknownStatusCoversBothTerminalStates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	enqueuer := store.NewEnqueuer(db, 1)
	claimer := store.NewClaimer(db)
	deadLetter := store.NewDeadLetter(db)
	cleaner := store.NewCleaner(db)

	if _, err := enqueuer.Enqueue(ctx, &queuectl.Submission{Id: "done", Command: "echo a"}); err != nil {
		t.Fatal(err)
	}
	jb, err := claimer.Claim(ctx, "worker-1", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if err := claimer.Complete(ctx, jb); err != nil {
		t.Fatal(err)
	}

	if _, err := enqueuer.Enqueue(ctx, &queuectl.Submission{Id: "dead", Command: "false"}); err != nil {
		t.Fatal(err)
	}
	if _, err := claimer.Claim(ctx, "worker-1", time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := deadLetter.MoveToDead(ctx, "dead", "exhausted"); err != nil {
		t.Fatal(err)
	}

	n, err := cleaner.Clean(ctx, job.Unknown, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected both terminal jobs deleted, got %d", n)
	}
}

func TestCleanRespectsBeforeFilter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	enqueuer := store.NewEnqueuer(db, 3)
	claimer := store.NewClaimer(db)
	cleaner := store.NewCleaner(db)

	if _, err := enqueuer.Enqueue(ctx, &queuectl.Submission{Id: "a", Command: "echo a"}); err != nil {
		t.Fatal(err)
	}
	jb, err := claimer.Claim(ctx, "worker-1", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if err := claimer.Complete(ctx, jb); err != nil {
		t.Fatal(err)
	}

	past := time.Now().Add(-time.Hour)
	n, err := cleaner.Clean(ctx, job.Completed, &past)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("expected nothing deleted before an hour ago, got %d", n)
	}
}
