// Package clock provides the wall-clock collector. It ticks once a second
// and formats the local time the way the bar renders it.
package clock

import (
	"context"
	"time"

	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors"
)

// Layout is the bar's clock format, e.g. "Mon Jan 15 14:30:45".
const Layout = "Mon Jan 2 15:04:05"

// Interval is the fixed tick cadence.
const Interval = time.Second

// Snapshot is one clock reading.
type Snapshot struct {
	Time      time.Time
	Formatted string
}

// Format renders t in the bar's clock layout.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Collector emits the current local time every second. It satisfies
// collectors.Collector.
type Collector struct {
	// Now is the time source; nil means time.Now.
	Now func() time.Time
}

// New creates a clock Collector using the real time source.
func New() *Collector { return &Collector{} }

// Name returns the collector's unique identifier.
func (c *Collector) Name() string { return "clock" }

// IntervalAfter always returns one second.
func (c *Collector) IntervalAfter(collectors.Result) time.Duration { return Interval }

// Healthy always reports true; reading the clock cannot fail.
func (c *Collector) Healthy() bool { return true }

// Collect returns the current time as a Snapshot.
func (c *Collector) Collect(context.Context) (any, error) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	t := now()
	return Snapshot{Time: t, Formatted: Format(t)}, nil
}
