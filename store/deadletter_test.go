package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/mvelo/queuectl"
	"github.com/mvelo/queuectl/job"
	"github.com/mvelo/queuectl/store"
)

func TestMoveToDeadAndRequeue(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	enqueuer := store.NewEnqueuer(db, 1)
	claimer := store.NewClaimer(db)
	deadLetter := store.NewDeadLetter(db)
	observer := store.NewObserver(db)

	if _, err := enqueuer.Enqueue(ctx, &queuectl.Submission{Id: "a", Command: "false"}); err != nil {
		t.Fatal(err)
	}
	jb, err := claimer.Claim(ctx, "worker-1", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if err := claimer.IncrementAttempts(ctx, jb); err != nil {
		t.Fatal(err)
	}
	if err := claimer.RecordOutput(ctx, jb, 1, "", "boom"); err != nil {
		t.Fatal(err)
	}

	if err := deadLetter.MoveToDead(ctx, jb.Id, "max retries exceeded"); err != nil {
		t.Fatal(err)
	}

	dead, err := observer.Get(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if dead.State != job.Dead {
		t.Fatalf("expected Dead, got %v", dead.State)
	}

	entries, err := deadLetter.ListDead(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 dead-letter entry, got %d", len(entries))
	}
	if entries[0].JobId != "a" {
		t.Fatalf("expected job id %q, got %q", "a", entries[0].JobId)
	}
	if len(entries[0].Snapshot) == 0 {
		t.Fatal("expected a non-empty snapshot")
	}

	ok, err := deadLetter.Requeue(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected requeue to report true")
	}

	revived, err := observer.Get(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if revived.State != job.Pending {
		t.Fatalf("expected Pending after requeue, got %v", revived.State)
	}
	if revived.Attempts != 0 {
		t.Fatalf("expected attempts reset to 0, got %d", revived.Attempts)
	}

	entries, err = deadLetter.ListDead(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected the dead-letter entry to be gone, got %d", len(entries))
	}
}

func TestMoveToDeadIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	enqueuer := store.NewEnqueuer(db, 1)
	claimer := store.NewClaimer(db)
	deadLetter := store.NewDeadLetter(db)

	if _, err := enqueuer.Enqueue(ctx, &queuectl.Submission{Id: "a", Command: "false"}); err != nil {
		t.Fatal(err)
	}
	if _, err := claimer.Claim(ctx, "worker-1", time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := deadLetter.MoveToDead(ctx, "a", "first"); err != nil {
		t.Fatal(err)
	}
	if err := deadLetter.MoveToDead(ctx, "a", "second"); err != nil {
		t.Fatal(err)
	}

	entries, err := deadLetter.ListDead(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 dead-letter entry, got %d", len(entries))
	}
	if entries[0].Reason != "first" {
		t.Fatalf("expected the first move's reason to stick, got %q", entries[0].Reason)
	}
}

func TestMoveToDeadMissingJob(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	deadLetter := store.NewDeadLetter(db)

	if err := deadLetter.MoveToDead(ctx, "missing", "reason"); err != queuectl.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRequeueUnknownJob(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	deadLetter := store.NewDeadLetter(db)

	ok, err := deadLetter.Requeue(ctx, "missing")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected requeue of an unknown job to report false")
	}
}
