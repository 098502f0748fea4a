package store_test

import (
	"context"
	"testing"

	"github.com/mvelo/queuectl"
	"github.com/mvelo/queuectl/job"
	"github.com/mvelo/queuectl/store"
)

func TestEnqueueAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	enqueuer := store.NewEnqueuer(db, 3)
	observer := store.NewObserver(db)

	sub := &queuectl.Submission{Id: "job-1", Command: "echo hi", Priority: 1}
	jb, err := enqueuer.Enqueue(ctx, sub)
	if err != nil {
		t.Fatal(err)
	}
	if jb.State != job.Pending {
		t.Fatalf("expected Pending, got %v", jb.State)
	}
	if jb.MaxRetries != 3 {
		t.Fatalf("expected default max retries 3, got %d", jb.MaxRetries)
	}

	found, err := observer.Get(ctx, "job-1")
	if err != nil {
		t.Fatal(err)
	}
	if found == nil {
		t.Fatal("job not found")
	}
	if found.Command != "echo hi" {
		t.Fatalf("expected command %q, got %q", "echo hi", found.Command)
	}
}

func TestEnqueueDuplicateIdConflicts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	enqueuer := store.NewEnqueuer(db, 3)

	sub := &queuectl.Submission{Id: "dup", Command: "echo hi"}
	if _, err := enqueuer.Enqueue(ctx, sub); err != nil {
		t.Fatal(err)
	}
	if _, err := enqueuer.Enqueue(ctx, sub); err != queuectl.ErrConflict {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestEnqueueRejectsInvalidSubmissions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	enqueuer := store.NewEnqueuer(db, 3)

	cases := []*queuectl.Submission{
		{Id: "", Command: "echo hi"},
		{Id: "job-3", Command: ""},
		{Id: "job-4", Command: "echo hi", Priority: 11},
		{Id: "job-5", Command: "echo hi", Priority: -1},
	}
	for _, sub := range cases {
		_, err := enqueuer.Enqueue(ctx, sub)
		if queuectl.KindOf(err) != queuectl.KindInput {
			t.Fatalf("submission %+v: expected KindInput, got %v", sub, err)
		}
	}
}

func TestEnqueueExplicitMaxRetriesOverridesDefault(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	enqueuer := store.NewEnqueuer(db, 3)

	want := uint32(7)
	sub := &queuectl.Submission{Id: "job-2", Command: "echo hi", MaxRetries: &want}
	jb, err := enqueuer.Enqueue(ctx, sub)
	if err != nil {
		t.Fatal(err)
	}
	if jb.MaxRetries != want {
		t.Fatalf("expected max retries %d, got %d", want, jb.MaxRetries)
	}
}
