package clock

import (
	"context"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors"
)

func TestFormat(t *testing.T) {
	at := time.Date(2024, time.January, 15, 14, 30, 45, 0, time.UTC)
	if got := Format(at); got != "Mon Jan 15 14:30:45" {
		t.Errorf("Format = %q, want %q", got, "Mon Jan 15 14:30:45")
	}

	// Single-digit days are not zero padded.
	at = time.Date(2024, time.February, 5, 9, 1, 2, 0, time.UTC)
	if got := Format(at); got != "Mon Feb 5 09:01:02" {
		t.Errorf("Format = %q, want %q", got, "Mon Feb 5 09:01:02")
	}
}

func TestCollect(t *testing.T) {
	at := time.Date(2024, time.January, 15, 14, 30, 45, 0, time.UTC)
	c := &Collector{Now: func() time.Time { return at }}

	got, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	snap := got.(Snapshot)
	if !snap.Time.Equal(at) {
		t.Errorf("Time = %v, want %v", snap.Time, at)
	}
	if snap.Formatted != "Mon Jan 15 14:30:45" {
		t.Errorf("Formatted = %q", snap.Formatted)
	}
}

func TestInterval(t *testing.T) {
	c := New()
	if got := c.IntervalAfter(collectors.Result{}); got != time.Second {
		t.Errorf("IntervalAfter = %v, want 1s", got)
	}
	if !c.Healthy() {
		t.Error("clock must always be healthy")
	}
}
