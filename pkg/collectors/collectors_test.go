package collectors

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// stubCollector is a scriptable collector for registry/runner tests.
type stubCollector struct {
	name     string
	interval time.Duration
	data     atomic.Value // any
	fail     atomic.Bool
	runs     atomic.Int64
}

func newStub(name string, interval time.Duration, data any) *stubCollector {
	s := &stubCollector{name: name, interval: interval}
	if data != nil {
		s.data.Store(data)
	}
	return s
}

func (s *stubCollector) Name() string { return s.name }

func (s *stubCollector) Collect(ctx context.Context) (any, error) {
	s.runs.Add(1)
	if s.fail.Load() {
		return nil, errors.New("stub failure")
	}
	return s.data.Load(), nil
}

func (s *stubCollector) IntervalAfter(Result) time.Duration { return s.interval }

func (s *stubCollector) Healthy() bool { return !s.fail.Load() }

// --- registry ---

func TestRegistryRegisterDuplicate(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(newStub("cpu", time.Second, nil)); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := reg.Register(newStub("cpu", time.Second, nil)); err == nil {
		t.Error("Register accepted a duplicate name")
	}
}

func TestRegistryListSorted(t *testing.T) {
	reg := NewRegistry()
	for _, n := range []string{"weather", "battery", "cpu"} {
		_ = reg.Register(newStub(n, time.Second, nil))
	}
	got := reg.List()
	want := []string{"battery", "cpu", "weather"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("List() = %v, want %v", got, want)
		}
	}
}

func TestRegistryStatusUnknown(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.Status("nope"); ok {
		t.Error("Status returned ok for unregistered collector")
	}
}

func TestRegistryUnregister(t *testing.T) {
	reg := NewRegistry()
	_ = reg.Register(newStub("clock", time.Second, nil))
	reg.Unregister("clock")
	if _, ok := reg.Get("clock"); ok {
		t.Error("collector still present after Unregister")
	}
}

// --- result ---

func TestResultOK(t *testing.T) {
	if !(Result{Data: 1}).OK() {
		t.Error("Result without error not OK")
	}
	if (Result{Err: errors.New("x")}).OK() {
		t.Error("Result with error reported OK")
	}
}

// --- runner ---

func TestRunnerDeliversUpdates(t *testing.T) {
	reg := NewRegistry()
	stub := newStub("cpu", 10*time.Millisecond, 42)
	_ = reg.Register(stub)

	r := NewRunner(reg, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = r.Run(ctx)
		close(done)
	}()

	select {
	case u := <-r.Updates():
		if u.Source != "cpu" {
			t.Errorf("Source = %q", u.Source)
		}
		if !u.Result.OK() || u.Result.Data != 42 {
			t.Errorf("Result = %+v", u.Result)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no update delivered")
	}

	cancel()
	<-done
}

func TestRunnerKeepsLastKnownValueOnFailure(t *testing.T) {
	reg := NewRegistry()
	stub := newStub("battery", 5*time.Millisecond, "80%")
	_ = reg.Register(stub)

	r := NewRunner(reg, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = r.Run(ctx) }()

	// First update is a success.
	u := <-r.Updates()
	if !u.Result.OK() {
		t.Fatalf("first cycle failed: %v", u.Result.Err)
	}

	// Subsequent cycles fail; the update must carry the last known value.
	stub.fail.Store(true)
	deadline := time.After(2 * time.Second)
	for {
		select {
		case u = <-r.Updates():
		case <-deadline:
			t.Fatal("no failure update delivered")
		}
		if u.Result.Err != nil {
			if !u.Result.Stale {
				t.Error("failed result not marked stale")
			}
			if u.Result.Data != "80%" {
				t.Errorf("failed result lost last known value: %v", u.Result.Data)
			}
			return
		}
	}
}

func TestRunnerStatusTracking(t *testing.T) {
	reg := NewRegistry()
	stub := newStub("clock", 5*time.Millisecond, "now")
	_ = reg.Register(stub)

	r := NewRunner(reg, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = r.Run(ctx) }()

	<-r.Updates()

	st, ok := reg.Status("clock")
	if !ok {
		t.Fatal("status missing")
	}
	if st.RunCount < 1 {
		t.Errorf("RunCount = %d, want >= 1", st.RunCount)
	}
	if !st.Healthy {
		t.Error("healthy collector reported unhealthy")
	}
}

func TestRunnerRefresh(t *testing.T) {
	reg := NewRegistry()
	// Interval of an hour: scheduled cycles will not interfere.
	stub := newStub("weather", time.Hour, "sunny")
	_ = reg.Register(stub)

	r := NewRunner(reg, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = r.Run(ctx) }()

	<-r.Updates() // initial cycle

	if !r.Refresh(ctx, "weather") {
		t.Fatal("Refresh returned false for registered collector")
	}
	select {
	case u := <-r.Updates():
		if u.Result.Data != "sunny" {
			t.Errorf("refresh data = %v", u.Result.Data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("refresh update not delivered")
	}

	if r.Refresh(ctx, "bogus") {
		t.Error("Refresh returned true for unknown collector")
	}
}

func TestRunnerLast(t *testing.T) {
	reg := NewRegistry()
	_ = reg.Register(newStub("cpu", time.Hour, 7))

	r := NewRunner(reg, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = r.Run(ctx) }()

	<-r.Updates()
	res, ok := r.Last("cpu")
	if !ok || res.Data != 7 {
		t.Errorf("Last = (%+v, %v)", res, ok)
	}
}
