package battery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bridge"
	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors"
)

type fakeBackend struct {
	info bridge.BatteryInfo
	err  error
}

func (f *fakeBackend) BatteryInfo(context.Context) (bridge.BatteryInfo, error) {
	return f.info, f.err
}

func TestPollInterval(t *testing.T) {
	cases := []struct {
		state bridge.BatteryState
		want  time.Duration
	}{
		{bridge.BatteryCharging, ChargingInterval},
		{bridge.BatteryDischarging, IdleInterval},
		{bridge.BatteryFull, IdleInterval},
		{bridge.BatteryEmpty, IdleInterval},
		{bridge.BatteryUnknown, IdleInterval},
		{bridge.BatteryState(""), IdleInterval},
	}
	for _, tc := range cases {
		if got := PollInterval(tc.state); got != tc.want {
			t.Errorf("PollInterval(%q) = %v, want %v", tc.state, got, tc.want)
		}
	}
}

func TestIntervalAfter(t *testing.T) {
	c := New(Config{})

	charging := collectors.Result{Data: bridge.BatteryInfo{State: bridge.BatteryCharging}}
	if got := c.IntervalAfter(charging); got != ChargingInterval {
		t.Errorf("IntervalAfter(charging) = %v, want %v", got, ChargingInterval)
	}

	discharging := collectors.Result{Data: bridge.BatteryInfo{State: bridge.BatteryDischarging}}
	if got := c.IntervalAfter(discharging); got != IdleInterval {
		t.Errorf("IntervalAfter(discharging) = %v, want %v", got, IdleInterval)
	}

	// No data yet, or a failed poll with no last-known value.
	if got := c.IntervalAfter(collectors.Result{}); got != IdleInterval {
		t.Errorf("IntervalAfter(empty) = %v, want %v", got, IdleInterval)
	}
	failed := collectors.Result{Err: errors.New("boom")}
	if got := c.IntervalAfter(failed); got != IdleInterval {
		t.Errorf("IntervalAfter(failed) = %v, want %v", got, IdleInterval)
	}
}

func TestBackendPreferred(t *testing.T) {
	fb := &fakeBackend{info: bridge.BatteryInfo{Percentage: 73, State: bridge.BatteryCharging}}
	c := New(Config{Backend: fb, SysfsRoot: t.TempDir()})

	got, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	info := got.(bridge.BatteryInfo)
	if info.Percentage != 73 || info.State != bridge.BatteryCharging {
		t.Errorf("got %+v", info)
	}
}

func writeBatteryDir(t *testing.T, root string, attrs map[string]string) {
	t.Helper()
	dir := filepath.Join(root, "BAT0")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, val := range attrs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(val+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSysfsFallback(t *testing.T) {
	root := t.TempDir()
	writeBatteryDir(t, root, map[string]string{
		"type":               "Battery",
		"status":             "Discharging",
		"capacity":           "58",
		"technology":         "Li-poly",
		"energy_now":         "29000000",
		"energy_full":        "50000000",
		"energy_full_design": "56000000",
		"power_now":          "14500000",
		"voltage_now":        "11800000",
		"cycle_count":        "312",
		"manufacturer":       "ACME",
	})

	fb := &fakeBackend{err: errors.New("no backend")}
	c := New(Config{Backend: fb, SysfsRoot: root})

	got, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	info := got.(bridge.BatteryInfo)
	if info.Percentage != 58 {
		t.Errorf("Percentage = %v, want 58", info.Percentage)
	}
	if info.State != bridge.BatteryDischarging {
		t.Errorf("State = %q, want Discharging", info.State)
	}
	if info.EnergyNow != 29 || info.EnergyFull != 50 {
		t.Errorf("Energy = %v/%v, want 29/50", info.EnergyNow, info.EnergyFull)
	}
	if info.EnergyRate != 14.5 {
		t.Errorf("EnergyRate = %v, want 14.5", info.EnergyRate)
	}
	// 29 Wh draining at 14.5 W is two hours.
	if info.TimeToEmpty != 2*time.Hour {
		t.Errorf("TimeToEmpty = %v, want 2h", info.TimeToEmpty)
	}
	if info.CycleCount != 312 {
		t.Errorf("CycleCount = %d, want 312", info.CycleCount)
	}
	if info.Vendor != "ACME" {
		t.Errorf("Vendor = %q, want ACME", info.Vendor)
	}
	if want := 50.0 / 56.0 * 100; info.Health != want {
		t.Errorf("Health = %v, want %v", info.Health, want)
	}
}

func TestSysfsSkipsNonBattery(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "AC")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "type"), []byte("Mains\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(Config{SysfsRoot: root})
	if _, err := c.Collect(context.Background()); !errors.Is(err, errNoBattery) {
		t.Errorf("Collect error = %v, want errNoBattery", err)
	}
	if c.Healthy() {
		t.Error("collector should be unhealthy after failed collect")
	}
}
