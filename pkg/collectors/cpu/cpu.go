// Package cpu provides the processor collector for pulsebar. The primary
// source is the hyprspace backend's get_cpu_info command; when no backend
// is connected (or the call fails) it falls back to sampling locally via
// gopsutil, so the bar keeps a CPU segment even without the bridge.
package cpu

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	gcpu "github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/sensors"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bridge"
	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors"
)

// DefaultInterval is the fixed polling cadence for CPU data.
const DefaultInterval = 2 * time.Second

// Backend is the slice of the bridge client this collector uses.
type Backend interface {
	CPUInfo(ctx context.Context) (bridge.CPUInfo, error)
}

// Config controls the cpu collector.
type Config struct {
	// Backend is the bridge client; nil means local sampling only.
	Backend Backend

	// Interval overrides DefaultInterval when positive.
	Interval time.Duration
}

// Collector polls CPU usage and temperature. It satisfies
// collectors.Collector.
type Collector struct {
	cfg     Config
	mu      sync.Mutex
	healthy bool
}

// New creates a cpu Collector.
func New(cfg Config) *Collector {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	return &Collector{cfg: cfg, healthy: true}
}

// Name returns the collector's unique identifier.
func (c *Collector) Name() string { return "cpu" }

// IntervalAfter returns the fixed CPU cadence; the previous result does not
// influence it.
func (c *Collector) IntervalAfter(collectors.Result) time.Duration {
	return c.cfg.Interval
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

// Collect returns a bridge.CPUInfo from the backend, or from local sampling
// when the backend is absent or failing.
func (c *Collector) Collect(ctx context.Context) (any, error) {
	if c.cfg.Backend != nil {
		info, err := c.cfg.Backend.CPUInfo(ctx)
		if err == nil {
			c.setHealthy(true)
			return info, nil
		}
	}

	info, err := collectLocal(ctx)
	if err != nil {
		c.setHealthy(false)
		return nil, err
	}
	c.setHealthy(true)
	return info, nil
}

// collectLocal samples usage and temperature with gopsutil.
func collectLocal(ctx context.Context) (bridge.CPUInfo, error) {
	totals, err := gcpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return bridge.CPUInfo{}, fmt.Errorf("cpu: sample usage: %w", err)
	}
	info := bridge.CPUInfo{}
	if len(totals) > 0 {
		info.Usage = totals[0]
	}

	// Temperature is best effort: not every host exposes a sensor.
	if temp, ok := readPackageTemp(ctx); ok {
		info.Temperature = &temp
	}
	return info, nil
}

// readPackageTemp scans host sensors for a CPU package temperature.
func readPackageTemp(ctx context.Context) (float64, bool) {
	temps, err := sensors.TemperaturesWithContext(ctx)
	if err != nil || len(temps) == 0 {
		return 0, false
	}
	for _, t := range temps {
		key := strings.ToLower(t.SensorKey)
		if strings.Contains(key, "coretemp") ||
			strings.Contains(key, "k10temp") ||
			strings.Contains(key, "cpu_thermal") ||
			strings.Contains(key, "package") {
			if t.Temperature > 0 {
				return t.Temperature, true
			}
		}
	}
	return 0, false
}
