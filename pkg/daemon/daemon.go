// Package daemon runs the collectors headless: no terminal, results
// persisted to the disk cache so a later bar launch starts warm. A small
// line-based control socket exposes health, status, refresh, and shutdown.
package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bridge"
	"gitlab.com/tinyland/lab/pulsebar/pkg/cache"
	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors"
	"gitlab.com/tinyland/lab/pulsebar/pkg/history"
)

// Config wires the daemon's dependencies.
type Config struct {
	Registry *collectors.Registry
	Runner   *collectors.Runner

	// Store persists collector results across restarts; nil disables.
	Store *cache.Store

	// History keeps rolling series for status queries; nil disables.
	History *history.Store

	// SocketPath is the control socket. Empty disables the IPC server.
	SocketPath string

	// PidFile guards against double starts. Empty disables the check.
	PidFile string

	// Events, when set, routes cli:command push events from the backend
	// into HandleCommand, so `hyprspace cli refresh` reaches the daemon.
	Events *bridge.Registry

	// PersistTTL is the freshness horizon written with each cached
	// result. Zero means stale after 1 minute, expired after 1 hour.
	PersistTTL cache.TTL

	Logger *slog.Logger
}

// Daemon owns the headless collection loop.
type Daemon struct {
	cfg     Config
	log     *slog.Logger
	pid     *PIDFile
	ipc     *ControlServer
	started time.Time
	quit    chan struct{}
}

// New creates a Daemon. Start actually acquires resources.
func New(cfg Config) *Daemon {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Daemon{cfg: cfg, log: log, quit: make(chan struct{})}
}

// Run acquires the pidfile and control socket, then drains collector
// updates into the cache until ctx is cancelled or a QUIT command arrives.
func (d *Daemon) Run(ctx context.Context) error {
	if d.cfg.PidFile != "" {
		pid := NewPIDFile(d.cfg.PidFile)
		if err := pid.Acquire(); err != nil {
			return err
		}
		d.pid = pid
		defer d.pid.Release()
	}

	if d.cfg.SocketPath != "" {
		d.ipc = NewControlServer(d.cfg.SocketPath, d, d.log)
		if err := d.ipc.Start(); err != nil {
			return err
		}
		defer d.ipc.Stop()
	}

	if d.cfg.Events != nil {
		cancelSub := d.cfg.Events.Subscribe(bridge.EventCLICommand, d.handleCLIEvent)
		defer cancelSub()
	}

	d.started = time.Now()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-d.quit:
			cancel()
		case <-ctx.Done():
		}
	}()

	runErr := make(chan error, 1)
	go func() { runErr <- d.cfg.Runner.Run(ctx) }()

	prune := time.NewTicker(time.Minute)
	defer prune.Stop()

	d.log.Info("daemon started", "socket", d.cfg.SocketPath)
	for {
		select {
		case u, ok := <-d.cfg.Runner.Updates():
			if !ok {
				return <-runErr
			}
			d.consume(u)
		case <-prune.C:
			if d.cfg.History != nil {
				d.cfg.History.Prune()
			}
		case <-ctx.Done():
			// Drain remaining updates so the runner can exit.
			for range d.cfg.Runner.Updates() {
			}
			return <-runErr
		}
	}
}

// consume persists one collector result.
func (d *Daemon) consume(u collectors.Update) {
	if d.cfg.History != nil {
		d.cfg.History.Record(u)
	}
	if d.cfg.Store == nil || !u.Result.OK() || u.Result.Data == nil {
		return
	}
	key := "collector/" + u.Source
	ttl := d.cfg.PersistTTL
	if ttl.StaleAfter == 0 && ttl.ExpireAfter == 0 {
		ttl = cache.TTL{StaleAfter: time.Minute, ExpireAfter: time.Hour}
	}
	if err := cache.PutTypedWithTTL(d.cfg.Store, key, u.Result.Data, ttl); err != nil {
		d.log.Warn("persist failed", "source", u.Source, "error", err)
	}
}

// handleCLIEvent routes a cli:command push event through the same dispatch
// as the control socket. Data, when present, is a JSON array of arguments.
func (d *Daemon) handleCLIEvent(ev bridge.Event) {
	var payload bridge.CLICommandPayload
	if err := ev.DecodePayload(&payload); err != nil {
		d.log.Warn("bad cli:command payload", "error", err)
		return
	}
	var args []string
	if len(payload.Data) > 0 {
		if err := json.Unmarshal(payload.Data, &args); err != nil {
			d.log.Warn("bad cli:command arguments", "command", payload.Command, "error", err)
			return
		}
	}
	cmd := strings.ToUpper(payload.Command)
	out, err := d.HandleCommand(cmd, args)
	if err != nil {
		d.log.Warn("cli command failed", "command", cmd, "error", err)
		return
	}
	d.log.Info("cli command handled", "command", cmd, "result", out)
}

// Health assembles the daemon's health snapshot.
func (d *Daemon) Health() HealthStatus {
	statuses := d.cfg.Registry.AllStatus()
	hs := HealthStatus{
		PID:        PID(),
		Uptime:     time.Since(d.started).Round(time.Second).String(),
		Collectors: make(map[string]CollectorHealth, len(statuses)),
	}
	hs.Healthy = true
	for _, st := range statuses {
		ch := CollectorHealth{
			Healthy:  st.Healthy,
			LastRun:  st.LastRun,
			Runs:     st.RunCount,
			Failures: st.ErrorCount,
		}
		if st.LastError != nil {
			ch.LastError = st.LastError.Error()
		}
		if !st.Healthy {
			hs.Healthy = false
		}
		hs.Collectors[st.Name] = ch
	}
	return hs
}

// HandleCommand implements ControlHandler.
func (d *Daemon) HandleCommand(cmd string, args []string) (string, error) {
	switch cmd {
	case "HEALTH":
		return encodeJSON(d.Health())
	case "STATUS":
		if len(args) == 1 {
			st, ok := d.cfg.Registry.Status(args[0])
			if !ok {
				return "", fmt.Errorf("unknown collector %q", args[0])
			}
			return encodeJSON(statusView(st))
		}
		all := d.cfg.Registry.AllStatus()
		views := make([]collectorStatusView, len(all))
		for i, st := range all {
			views[i] = statusView(st)
		}
		return encodeJSON(views)
	case "REFRESH":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if len(args) == 1 {
			if !d.cfg.Runner.Refresh(ctx, args[0]) {
				return "", fmt.Errorf("unknown collector %q", args[0])
			}
			return `{"refreshed":"` + args[0] + `"}`, nil
		}
		for _, name := range d.cfg.Registry.List() {
			d.cfg.Runner.Refresh(ctx, name)
		}
		return `{"refreshed":"all"}`, nil
	case "QUIT":
		select {
		case <-d.quit:
		default:
			close(d.quit)
		}
		return `{"stopping":true}`, nil
	default:
		return "", fmt.Errorf("unknown command %q", cmd)
	}
}
