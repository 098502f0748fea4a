package store_test

import (
	"context"
	"testing"

	"github.com/uptrace/bun"

	"github.com/mvelo/queuectl/store"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	db, err := store.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := store.InitDB(ctx, db); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
