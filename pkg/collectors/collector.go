// Package collectors defines the interfaces, registry, and runner for
// pulsebar data collectors. Each collector (cpu, battery, clock, weather,
// workspaces) implements the Collector interface and is orchestrated by a
// Runner that fans results into a single updates channel consumed by the bar.
package collectors

import (
	"context"
	"time"
)

// Result is the outcome of one collection cycle. Failures are explicit:
// a failed cycle carries the error together with the last known data, so
// consumers decide how to render degradation instead of inheriting silent
// swallowing from a cache layer.
type Result struct {
	// Data is the freshest value available. On failure it holds the last
	// known value (possibly nil if there never was one).
	Data any

	// Err is non-nil when this cycle's fetch failed.
	Err error

	// Stale is true when Data predates this cycle (i.e. Err != nil and
	// Data carries the previous value).
	Stale bool

	// At is when the cycle finished.
	At time.Time
}

// OK reports whether the cycle produced fresh data.
func (r Result) OK() bool {
	return r.Err == nil
}

// Collector is the interface all data sources implement. Implementations
// live in sub-packages (e.g. pkg/collectors/battery) and are registered
// with the Registry at startup.
type Collector interface {
	// Name returns a unique identifier for this collector (e.g. "battery").
	Name() string

	// Collect performs one collection cycle and returns the data. The
	// returned value is opaque here; consumers type-assert based on the
	// collector name.
	Collect(ctx context.Context) (any, error)

	// IntervalAfter returns the delay before the next cycle, given the
	// result of the previous one. Fixed-cadence collectors ignore the
	// argument; state-dependent ones (battery) inspect the cached value.
	IntervalAfter(last Result) time.Duration

	// Healthy returns whether the collector is functioning. A collector
	// that has never run or whose last run succeeded is considered healthy.
	Healthy() bool
}

// Status tracks the runtime state of a single collector. The runner updates
// this after every collection cycle.
type Status struct {
	Name        string
	Healthy     bool
	LastRun     time.Time
	LastError   error
	RunCount    int64
	ErrorCount  int64
	LastLatency time.Duration
}

// Update carries the result of a single collection cycle from a collector
// goroutine to the consumer (typically the bar's event loop).
type Update struct {
	Source string
	Result Result
}
