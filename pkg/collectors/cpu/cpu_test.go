package cpu

import (
	"context"
	"errors"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bridge"
	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors"
)

type fakeBackend struct {
	info bridge.CPUInfo
	err  error
}

func (f *fakeBackend) CPUInfo(context.Context) (bridge.CPUInfo, error) {
	return f.info, f.err
}

func TestBackendPreferred(t *testing.T) {
	temp := 61.5
	fb := &fakeBackend{info: bridge.CPUInfo{Usage: 42.0, Temperature: &temp}}
	c := New(Config{Backend: fb})

	got, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	info, ok := got.(bridge.CPUInfo)
	if !ok {
		t.Fatalf("Collect returned %T, want bridge.CPUInfo", got)
	}
	if info.Usage != 42.0 {
		t.Errorf("Usage = %v, want 42.0", info.Usage)
	}
	if info.Temperature == nil || *info.Temperature != 61.5 {
		t.Errorf("Temperature = %v, want 61.5", info.Temperature)
	}
	if !c.Healthy() {
		t.Error("collector should be healthy after successful collect")
	}
}

func TestBackendErrorFallsBack(t *testing.T) {
	fb := &fakeBackend{err: errors.New("socket gone")}
	c := New(Config{Backend: fb})

	// Local sampling may itself fail in constrained environments; either
	// way the backend error must not surface as-is.
	got, err := c.Collect(context.Background())
	if err == nil {
		if _, ok := got.(bridge.CPUInfo); !ok {
			t.Fatalf("fallback returned %T, want bridge.CPUInfo", got)
		}
	} else if errors.Is(err, fb.err) {
		t.Errorf("backend error leaked through fallback: %v", err)
	}
}

func TestFixedInterval(t *testing.T) {
	c := New(Config{})
	if got := c.IntervalAfter(collectors.Result{}); got != DefaultInterval {
		t.Errorf("IntervalAfter = %v, want %v", got, DefaultInterval)
	}

	c = New(Config{Interval: 5 * time.Second})
	failed := collectors.Result{Err: errors.New("boom")}
	if got := c.IntervalAfter(failed); got != 5*time.Second {
		t.Errorf("IntervalAfter after failure = %v, want 5s", got)
	}
}

func TestName(t *testing.T) {
	if got := New(Config{}).Name(); got != "cpu" {
		t.Errorf("Name = %q, want %q", got, "cpu")
	}
}
