package queuectl_test

import (
	"testing"
	"time"

	"github.com/mvelo/queuectl"
)

func TestBackoffGrowsExponentially(t *testing.T) {
	cases := []struct {
		attempts uint32
		want     int
	}{
		{0, 0},
		{1, 2},
		{2, 4},
		{3, 8},
		{4, 16},
	}
	for _, c := range cases {
		got := queuectl.Backoff(c.attempts, 2, 300)
		if got != c.want {
			t.Fatalf("Backoff(%d, 2, 300) = %d, want %d", c.attempts, got, c.want)
		}
	}
}

func TestBackoffSaturatesAtMax(t *testing.T) {
	got := queuectl.Backoff(20, 2, 300)
	if got != 300 {
		t.Fatalf("Backoff(20, 2, 300) = %d, want 300", got)
	}
}

func TestBackoffZeroAttemptsOrBase(t *testing.T) {
	if got := queuectl.Backoff(0, 2, 300); got != 0 {
		t.Fatalf("expected 0 for zero attempts, got %d", got)
	}
	if got := queuectl.Backoff(5, 0, 300); got != 0 {
		t.Fatalf("expected 0 for a non-positive base, got %d", got)
	}
}

func TestRetryAtAddsBackoffToNow(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	got := queuectl.RetryAt(now, 2, 2, 300)
	want := now.Add(4 * time.Second)
	if !got.Equal(want) {
		t.Fatalf("RetryAt = %v, want %v", got, want)
	}
}
