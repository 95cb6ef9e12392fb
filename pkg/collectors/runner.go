package collectors

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Runner drives every registered collector on its own schedule and fans
// results into a single updates channel. The timer for each collector is
// re-armed from IntervalAfter, so a collector can slow down or speed up
// based on what it last saw (the battery collector polls 4x more often
// while charging).
type Runner struct {
	reg     *Registry
	log     *slog.Logger
	updates chan Update

	mu   sync.Mutex
	last map[string]Result // last result per collector, fed to IntervalAfter
}

// NewRunner creates a Runner over the given registry. Updates are delivered
// on a buffered channel; a consumer that falls behind loses no data because
// sends block (collection pauses rather than dropping results).
func NewRunner(reg *Registry, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		reg:     reg,
		log:     logger.With("component", "runner"),
		updates: make(chan Update, 16),
		last:    make(map[string]Result),
	}
}

// Updates returns the channel on which collection results are delivered.
func (r *Runner) Updates() <-chan Update {
	return r.updates
}

// Last returns the most recent result for the named collector.
func (r *Runner) Last(name string) (Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.last[name]
	return res, ok
}

// Run starts one goroutine per registered collector and blocks until ctx is
// cancelled. Each collector runs immediately once, then on its re-armed
// interval. The updates channel is closed on return.
func (r *Runner) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	for _, name := range r.reg.List() {
		c, ok := r.reg.Get(name)
		if !ok {
			continue
		}
		wg.Add(1)
		go func(c Collector) {
			defer wg.Done()
			r.runCollector(ctx, c)
		}(c)
	}

	wg.Wait()
	close(r.updates)
	return ctx.Err()
}

// Refresh forces an immediate collection cycle for the named collector,
// outside its schedule. Returns false if the collector is not registered.
func (r *Runner) Refresh(ctx context.Context, name string) bool {
	c, ok := r.reg.Get(name)
	if !ok {
		return false
	}
	res := r.collectOnce(ctx, c)
	select {
	case r.updates <- Update{Source: c.Name(), Result: res}:
	case <-ctx.Done():
	}
	return true
}

// runCollector is the per-collector loop: collect, publish, sleep for the
// state-dependent interval, repeat.
func (r *Runner) runCollector(ctx context.Context, c Collector) {
	timer := time.NewTimer(0) // fire immediately for the first cycle
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		res := r.collectOnce(ctx, c)

		select {
		case r.updates <- Update{Source: c.Name(), Result: res}:
		case <-ctx.Done():
			return
		}

		timer.Reset(c.IntervalAfter(res))
	}
}

// collectOnce runs a single cycle, records status, and builds the Result.
// A failed cycle keeps the previous data and marks it stale.
func (r *Runner) collectOnce(ctx context.Context, c Collector) Result {
	name := c.Name()
	started := time.Now()

	data, err := c.Collect(ctx)
	latency := time.Since(started)

	res := Result{Data: data, Err: err, At: time.Now()}
	if err != nil {
		r.mu.Lock()
		if prev, ok := r.last[name]; ok && data == nil {
			res.Data = prev.Data
			res.Stale = true
		}
		r.mu.Unlock()
		r.log.Warn("collection failed", "collector", name, "error", err, "latency", latency)
	}

	r.mu.Lock()
	r.last[name] = res
	r.mu.Unlock()

	r.reg.updateStatus(name, func(s *Status) {
		s.LastRun = res.At
		s.LastLatency = latency
		s.RunCount++
		s.LastError = err
		if err != nil {
			s.ErrorCount++
		}
		s.Healthy = c.Healthy()
	})

	return res
}
