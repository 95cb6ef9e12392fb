package workspaces

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors"
)

// DefaultInterval is the workspace polling cadence. Push events from the
// tiling backend trigger refreshes between polls; the poll is a safety net.
const DefaultInterval = 5 * time.Second

// Backend is the slice of the bridge client this collector uses.
type Backend interface {
	Workspaces(ctx context.Context) ([]string, error)
	FocusedWorkspace(ctx context.Context) (string, error)
}

// Workspace is one entry in display order.
type Workspace struct {
	Name    string
	Label   string // display text, defaults to Name
	Icon    string // component icon name
	Rank    int
	Known   bool
	Focused bool
}

// List is the ordered workspace set plus the focus pointer.
type List struct {
	Workspaces []Workspace
	Focused    string
}

// Config controls the workspaces collector.
type Config struct {
	Backend Backend

	// Overrides adjusts labels and icons and hides workspaces.
	Overrides Overrides

	// Interval overrides DefaultInterval when positive.
	Interval time.Duration
}

// Collector polls the workspace list. It satisfies collectors.Collector.
type Collector struct {
	cfg     Config
	mu      sync.Mutex
	healthy bool
}

// New creates a workspaces Collector.
func New(cfg Config) *Collector {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	return &Collector{cfg: cfg, healthy: true}
}

// Name returns the collector's unique identifier.
func (c *Collector) Name() string { return "workspaces" }

// IntervalAfter returns the fixed polling cadence.
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

// Collect fetches names and focus from the backend and assembles the
// display-ordered List.
func (c *Collector) Collect(ctx context.Context) (any, error) {
	if c.cfg.Backend == nil {
		c.setHealthy(false)
		return nil, fmt.Errorf("workspaces: no backend connected")
	}
	names, err := c.cfg.Backend.Workspaces(ctx)
	if err != nil {
		c.setHealthy(false)
		return nil, fmt.Errorf("workspaces: list: %w", err)
	}
	focused, err := c.cfg.Backend.FocusedWorkspace(ctx)
	if err != nil {
		c.setHealthy(false)
		return nil, fmt.Errorf("workspaces: focus: %w", err)
	}
	c.setHealthy(true)
	return Build(names, focused, c.cfg.Overrides), nil
}

// Build orders names, applies overrides, and marks focus. Hidden
// workspaces are dropped; a hidden but focused workspace still sets
// List.Focused so other segments can show it.
func Build(names []string, focused string, ov Overrides) List {
	ordered := make([]string, len(names))
	copy(ordered, names)
	Sort(ordered)

	out := List{Focused: focused}
	for _, name := range ordered {
		if ov.hidden(name) {
			continue
		}
		ws := Workspace{
			Name:    name,
			Label:   name,
			Icon:    IconName(name),
			Rank:    Rank(name),
			Known:   Known(name),
			Focused: name == focused,
		}
		ov.apply(&ws)
		out.Workspaces = append(out.Workspaces, ws)
	}
	return out
}
