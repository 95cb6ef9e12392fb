package history

import (
	"testing"
	"time"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bridge"
	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors"
)

func TestAddAndRecent(t *testing.T) {
	s := NewStore(Config{})
	base := time.Now()
	for i := 0; i < 5; i++ {
		s.Add("cpu.usage", base.Add(time.Duration(i)*time.Second), float64(i*10))
	}

	snap, ok := s.Recent("cpu.usage", 3)
	if !ok {
		t.Fatal("series missing")
	}
	if snap.Len() != 3 {
		t.Fatalf("Len = %d, want 3", snap.Len())
	}
	if snap.Values[0] != 20 || snap.Last() != 40 {
		t.Errorf("Values = %v", snap.Values)
	}
	if snap.Min() != 20 || snap.Max() != 40 {
		t.Errorf("Min/Max = %v/%v", snap.Min(), snap.Max())
	}

	// Asking for more than exists returns everything.
	snap, _ = s.Recent("cpu.usage", 100)
	if snap.Len() != 5 {
		t.Errorf("Len = %d, want 5", snap.Len())
	}

	if _, ok := s.Recent("absent", 3); ok {
		t.Error("unknown series should not resolve")
	}
}

func TestMaxPointsCap(t *testing.T) {
	s := NewStore(Config{MaxPoints: 4})
	base := time.Now()
	for i := 0; i < 10; i++ {
		s.Add("x", base.Add(time.Duration(i)*time.Second), float64(i))
	}
	snap, _ := s.Recent("x", 100)
	if snap.Len() != 4 {
		t.Fatalf("Len = %d, want 4", snap.Len())
	}
	if snap.Values[0] != 6 {
		t.Errorf("oldest kept = %v, want 6", snap.Values[0])
	}
}

func TestWindowAndPrune(t *testing.T) {
	s := NewStore(Config{Retention: time.Minute})
	now := time.Now()
	s.Add("x", now.Add(-5*time.Minute), 1)
	s.Add("x", now.Add(-30*time.Second), 2)
	s.Add("x", now, 3)

	snap, ok := s.Window("x", time.Minute)
	if !ok {
		t.Fatal("series missing")
	}
	if snap.Len() != 2 {
		t.Fatalf("window Len = %d, want 2", snap.Len())
	}

	if removed := s.Prune(); removed != 1 {
		t.Errorf("Prune removed %d, want 1", removed)
	}
	snap, _ = s.Recent("x", 100)
	if snap.Len() != 2 || snap.Values[0] != 2 {
		t.Errorf("after prune: %v", snap.Values)
	}
}

func TestLatest(t *testing.T) {
	s := NewStore(Config{})
	if _, _, ok := s.Latest("x"); ok {
		t.Error("empty store should have no latest")
	}
	at := time.Now()
	s.Add("x", at, 7)
	when, v, ok := s.Latest("x")
	if !ok || v != 7 || !when.Equal(at) {
		t.Errorf("Latest = %v %v %v", when, v, ok)
	}
}

func TestHoldPinsView(t *testing.T) {
	s := NewStore(Config{})
	base := time.Now()
	s.Add("x", base, 1)

	token := s.Hold("x")
	if !s.Held("x") {
		t.Fatal("series should be held")
	}
	s.Add("x", base.Add(time.Second), 2)

	snap, _ := s.Recent("x", 100)
	if snap.Len() != 1 {
		t.Errorf("held view Len = %d, want 1", snap.Len())
	}

	s.Release(token)
	if s.Held("x") {
		t.Error("hold not released")
	}
	snap, _ = s.Recent("x", 100)
	if snap.Len() != 2 || snap.Last() != 2 {
		t.Errorf("after release: %v", snap.Values)
	}
}

func TestHoldRefcount(t *testing.T) {
	s := NewStore(Config{})
	s.Add("x", time.Now(), 1)

	t1 := s.Hold("x")
	t2 := s.Hold("x")
	s.Release(t1)
	if !s.Held("x") {
		t.Fatal("second hold should keep the series pinned")
	}
	s.Release(t2)
	if s.Held("x") {
		t.Error("all holds released, series still pinned")
	}
}

func TestRecord(t *testing.T) {
	s := NewStore(Config{})
	at := time.Now()
	temp := 55.0

	s.Record(collectors.Update{
		Source: "cpu",
		Result: collectors.Result{
			Data: bridge.CPUInfo{Usage: 33, Temperature: &temp},
			At:   at,
		},
	})
	s.Record(collectors.Update{
		Source: "battery",
		Result: collectors.Result{
			Data: bridge.BatteryInfo{Percentage: 80, EnergyRate: 12},
			At:   at,
		},
	})

	if _, v, ok := s.Latest(SeriesCPUUsage); !ok || v != 33 {
		t.Errorf("cpu usage = %v %v", v, ok)
	}
	if _, v, ok := s.Latest(SeriesCPUTemp); !ok || v != 55 {
		t.Errorf("cpu temp = %v %v", v, ok)
	}
	if _, v, ok := s.Latest(SeriesBatteryPct); !ok || v != 80 {
		t.Errorf("battery pct = %v %v", v, ok)
	}
	if _, v, ok := s.Latest(SeriesBatteryW); !ok || v != 12 {
		t.Errorf("battery rate = %v %v", v, ok)
	}
}

func TestRecordSkipsStaleAndFailed(t *testing.T) {
	s := NewStore(Config{})
	s.Record(collectors.Update{
		Source: "cpu",
		Result: collectors.Result{Data: bridge.CPUInfo{Usage: 50}, Stale: true, At: time.Now()},
	})
	if _, _, ok := s.Latest(SeriesCPUUsage); ok {
		t.Error("stale update should not record")
	}
}
