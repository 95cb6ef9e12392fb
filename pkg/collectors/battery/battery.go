// Package battery polls power-supply state. The hyprspace backend is the
// preferred source; on Linux hosts without a backend the collector reads
// /sys/class/power_supply directly.
//
// The polling cadence depends on the last observed state: a charging
// battery changes quickly enough to warrant 30s polls, anything else
// (discharging, full, unknown, or no data yet) settles at 120s.
package battery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bridge"
	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors"
)

// Polling cadences keyed off the last observed charge state.
const (
	ChargingInterval = 30 * time.Second
	IdleInterval     = 120 * time.Second
)

// Backend is the slice of the bridge client this collector uses.
type Backend interface {
	BatteryInfo(ctx context.Context) (bridge.BatteryInfo, error)
}

// Config controls the battery collector.
type Config struct {
	// Backend is the bridge client; nil means sysfs only.
	Backend Backend

	// SysfsRoot overrides /sys/class/power_supply, for tests.
	SysfsRoot string
}

// Collector polls battery charge and state. It satisfies
// collectors.Collector.
type Collector struct {
	cfg     Config
	mu      sync.Mutex
	healthy bool
}

// New creates a battery Collector.
func New(cfg Config) *Collector {
	return &Collector{cfg: cfg, healthy: true}
}

// Name returns the collector's unique identifier.
func (c *Collector) Name() string { return "battery" }

// PollInterval maps a charge state to the cadence used after observing it.
func PollInterval(state bridge.BatteryState) time.Duration {
	if state == bridge.BatteryCharging {
		return ChargingInterval
	}
	return IdleInterval
}

// IntervalAfter keys the next poll off the state in the last result. A
// missing or failed result counts as idle.
func (c *Collector) IntervalAfter(last collectors.Result) time.Duration {
	info, ok := last.Data.(bridge.BatteryInfo)
	if !ok {
		return IdleInterval
	}
	return PollInterval(info.State)
}

// Healthy reports whether the last collection succeeded.
func (c *Collector) Healthy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.healthy
}

func (c *Collector) setHealthy(h bool) {
	c.mu.Lock()
	c.healthy = h
	c.mu.Unlock()
}

// Collect returns a bridge.BatteryInfo from the backend, falling back to
// the host's power-supply class when the backend is absent or failing.
func (c *Collector) Collect(ctx context.Context) (any, error) {
	if c.cfg.Backend != nil {
		info, err := c.cfg.Backend.BatteryInfo(ctx)
		if err == nil {
			c.setHealthy(true)
			return info, nil
		}
	}

	info, err := readSysfs(c.cfg.SysfsRoot)
	if err != nil {
		c.setHealthy(false)
		return nil, fmt.Errorf("battery: %w", err)
	}
	c.setHealthy(true)
	return info, nil
}
