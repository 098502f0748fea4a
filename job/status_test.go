package job_test

import (
	"testing"

	"github.com/mvelo/queuectl/job"
)

func TestStatusRoundTrip(t *testing.T) {
	cases := []job.Status{job.Unknown, job.Pending, job.Processing, job.Completed, job.Failed, job.Dead}
	for _, s := range cases {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got job.Status
		if err := got.UnmarshalText(text); err != nil {
			t.Fatal(err)
		}
		if got != s {
			t.Fatalf("round trip mismatch: %v -> %q -> %v", s, text, got)
		}
	}
}

func TestParseStatus(t *testing.T) {
	want := map[string]job.Status{
		"pending":    job.Pending,
		"processing": job.Processing,
		"completed":  job.Completed,
		"failed":     job.Failed,
		"dead":       job.Dead,
		"unknown":    job.Unknown,
	}
	for s, status := range want {
		got, err := job.ParseStatus(s)
		if err != nil {
			t.Fatal(err)
		}
		if got != status {
			t.Fatalf("ParseStatus(%q) = %v, want %v", s, got, status)
		}
	}
}

func TestParseStatusRejectsUnknownString(t *testing.T) {
	if _, err := job.ParseStatus("bogus"); err == nil {
		t.Fatal("expected an error for an unrecognized status string")
	}
}

func TestStatusString(t *testing.T) {
	if job.Pending.String() != "pending" {
		t.Fatalf("expected %q, got %q", "pending", job.Pending.String())
	}
	if job.Status(255).String() != "unknown" {
		t.Fatalf("expected out-of-range status to stringify as %q", "unknown")
	}
}
