package store_test

import (
	"context"
	"testing"

	"github.com/mvelo/queuectl"
	"github.com/mvelo/queuectl/store"
)

func TestConfigGetSet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cfgStore := store.NewConfigStore(db)

	if _, ok, err := cfgStore.GetConfigValue(ctx, queuectl.KeyMaxRetries); err != nil {
		t.Fatal(err)
	} else if ok {
		t.Fatal("expected no value before it is set")
	}

	if err := cfgStore.SetConfigValue(ctx, queuectl.KeyMaxRetries, "5"); err != nil {
		t.Fatal(err)
	}

	value, ok, err := cfgStore.GetConfigValue(ctx, queuectl.KeyMaxRetries)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || value != "5" {
		t.Fatalf("expected (5, true), got (%q, %v)", value, ok)
	}

	if err := cfgStore.SetConfigValue(ctx, queuectl.KeyMaxRetries, "9"); err != nil {
		t.Fatal(err)
	}
	value, ok, err = cfgStore.GetConfigValue(ctx, queuectl.KeyMaxRetries)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || value != "9" {
		t.Fatalf("expected the upsert to replace the value with 9, got %q", value)
	}
}

func TestLoadConfigMergesDefaults(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cfgStore := store.NewConfigStore(db)

	if err := cfgStore.SetConfigValue(ctx, queuectl.KeyMaxRetries, "10"); err != nil {
		t.Fatal(err)
	}

	cfg, err := queuectl.LoadConfig(ctx, cfgStore)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxRetries != 10 {
		t.Fatalf("expected overridden max retries 10, got %d", cfg.MaxRetries)
	}
	if cfg.BackoffBase != 2 {
		t.Fatalf("expected default backoff base 2, got %d", cfg.BackoffBase)
	}
	if cfg.LockLeaseSeconds != 300 {
		t.Fatalf("expected default lock lease 300, got %d", cfg.LockLeaseSeconds)
	}
}

func TestLoadConfigFailsOnUnparseableValue(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cfgStore := store.NewConfigStore(db)

	if err := cfgStore.SetConfigValue(ctx, queuectl.KeyBackoffBase, "not-a-number"); err != nil {
		t.Fatal(err)
	}

	if _, err := queuectl.LoadConfig(ctx, cfgStore); err == nil {
		t.Fatal("expected a parse failure to be fatal")
	}
}
