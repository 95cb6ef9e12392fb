// pulsebar is a terminal status bar for the hyprspace tiling backend.
//
// It renders workspaces, the focused window title, and system status
// (CPU, battery, weather, clock, media) in a bubbletea UI, fed by
// per-source collectors and live push events from the backend socket.
// It can also run headless, persisting collector results to the disk
// cache so a later bar launch starts warm.
//
// Usage:
//
//	pulsebar [flags]
//
// Flags:
//
//	-bar            Run the interactive status bar (default on a terminal)
//	-daemon         Run the headless collector daemon
//	-once           Run one collection pass and print results as JSON
//	-config string  Path to configuration file (default: XDG search)
//	-theme string   Theme name override
//	-layout string  Layout preset override (full|compact|minimal)
//	-verbose        Enable debug logging
//	-version        Print version and exit
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"

	"gitlab.com/tinyland/lab/pulsebar/pkg/app"
	"gitlab.com/tinyland/lab/pulsebar/pkg/bar"
	"gitlab.com/tinyland/lab/pulsebar/pkg/bridge"
	"gitlab.com/tinyland/lab/pulsebar/pkg/cache"
	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors"
	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors/battery"
	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors/clock"
	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors/cpu"
	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors/weather"
	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors/workspaces"
	"gitlab.com/tinyland/lab/pulsebar/pkg/config"
	"gitlab.com/tinyland/lab/pulsebar/pkg/daemon"
	"gitlab.com/tinyland/lab/pulsebar/pkg/history"
	"gitlab.com/tinyland/lab/pulsebar/pkg/theme"
	"gitlab.com/tinyland/lab/pulsebar/pkg/widgets"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		runBar      = flag.Bool("bar", false, "Run the interactive status bar")
		runDaemon   = flag.Bool("daemon", false, "Run the headless collector daemon")
		runOnce     = flag.Bool("once", false, "Run one collection pass and print results as JSON")
		themeName   = flag.String("theme", "", "Theme name override")
		layoutName  = flag.String("layout", "", "Layout preset override (full|compact|minimal)")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("pulsebar %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}
	if *themeName != "" {
		cfg.Theme.Name = *themeName
	}
	if *layoutName != "" {
		cfg.Bar.Layout = *layoutName
	}

	// Pick the mode before wiring the logger: the bar owns the terminal,
	// so its logs go only to the rotated file.
	mode := "once"
	switch {
	case *runBar:
		mode = "bar"
	case *runDaemon:
		mode = "daemon"
	case *runOnce:
		mode = "once"
	default:
		if isatty.IsTerminal(os.Stdout.Fd()) {
			mode = "bar"
		}
	}

	logger := newLogger(cfg, mode, *verbose)

	if cfg.Theme.File != "" {
		if t, err := theme.LoadFile(cfg.Theme.File); err != nil {
			logger.Warn("theme file rejected", "path", cfg.Theme.File, "error", err)
		} else {
			theme.Register(t)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received shutdown signal")
		cancel()
	}()

	store, err := cache.NewStore(cache.StoreConfig{Dir: cfg.General.CacheDir})
	if err != nil {
		logger.Warn("cache unavailable", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	// The bridge is optional: without a backend socket the bar still runs
	// on local data (sysfs battery, gopsutil CPU, public geolocation).
	events := bridge.NewRegistry()
	client, err := bridge.Dial(bridge.ClientConfig{
		SocketPath:  cfg.Bridge.SocketPath,
		Registry:    events,
		DialTimeout: cfg.Bridge.DialTimeout.Duration,
		Logger:      logger,
	})
	if err != nil {
		logger.Warn("backend unavailable, running degraded", "error", err)
		client = nil
	} else {
		defer client.Close()
	}

	reg := collectors.NewRegistry()
	registerCollectors(reg, cfg, client, store, logger)
	runner := collectors.NewRunner(reg, logger)

	switch mode {
	case "daemon":
		dcfg := daemon.Config{
			Registry:   reg,
			Runner:     runner,
			Store:      store,
			History:    history.NewStore(history.Config{Retention: cfg.Daemon.Retention.Duration}),
			SocketPath: cfg.Daemon.SocketPath,
			PidFile:    cfg.Daemon.PidFile,
			PersistTTL: cache.TTL{
				StaleAfter:  cfg.Daemon.PollInterval.Duration,
				ExpireAfter: time.Hour,
			},
			Logger: logger,
		}
		if client != nil {
			dcfg.Events = events
		}
		d := daemon.New(dcfg)
		logger.Info("starting pulsebar daemon", "socket", cfg.Daemon.SocketPath)
		if err := d.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("daemon error", "error", err)
			os.Exit(1)
		}

	case "once":
		if err := collectOnce(ctx, reg); err != nil {
			logger.Error("collection failed", "error", err)
			os.Exit(1)
		}

	case "bar":
		if err := runBarUI(ctx, cfg, *configPath, client, events, runner, store, logger); err != nil {
			logger.Error("bar error", "error", err)
			os.Exit(1)
		}
	}
}

// newLogger builds the slog logger for the chosen mode. Daemon and one-shot
// modes log to stderr plus the rotated file; the bar logs to the file only,
// since stderr would fight bubbletea for the terminal.
func newLogger(cfg *config.Config, mode string, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.General.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer
	switch {
	case cfg.General.LogFile != "" && mode == "bar":
		w = &lumberjack.Logger{
			Filename:   cfg.General.LogFile,
			MaxSize:    5, // MB
			MaxBackups: 2,
			MaxAge:     14, // days
		}
	case cfg.General.LogFile != "":
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.General.LogFile,
			MaxSize:    5,
			MaxBackups: 2,
			MaxAge:     14,
		})
	case mode == "bar":
		w = io.Discard
	default:
		w = os.Stderr
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// registerCollectors wires the enabled collectors into the registry. A nil
// client leaves each collector on its local fallback.
func registerCollectors(reg *collectors.Registry, cfg *config.Config, client *bridge.Client, store *cache.Store, logger *slog.Logger) {
	if cfg.Collectors.CPU.Enabled {
		c := cpu.Config{Interval: cfg.Collectors.CPU.Interval.Duration}
		if client != nil {
			c.Backend = client
		}
		reg.Register(cpu.New(c))
	}
	if cfg.Collectors.Battery.Enabled {
		c := battery.Config{SysfsRoot: cfg.Collectors.Battery.SysfsRoot}
		if client != nil {
			c.Backend = client
		}
		reg.Register(battery.New(c))
	}
	if cfg.Collectors.Clock.Enabled {
		reg.Register(clock.New())
	}
	if cfg.Collectors.Weather.Enabled {
		resolver := &weather.Resolver{Logger: logger}
		if client != nil {
			resolver.Backend = client
		}
		reg.Register(weather.New(weather.Config{
			Resolver:        resolver,
			DefaultLocation: cfg.Collectors.Weather.DefaultLocation,
			Store:           store,
			Interval:        cfg.Collectors.Weather.Interval.Duration,
		}))
	}
	if cfg.Collectors.Workspaces.Enabled {
		ov, err := workspaces.LoadOverrides(cfg.Collectors.Workspaces.Overrides)
		if err != nil {
			logger.Warn("workspace overrides rejected",
				"path", cfg.Collectors.Workspaces.Overrides, "error", err)
		}
		c := workspaces.Config{
			Overrides: ov,
			Interval:  cfg.Collectors.Workspaces.Interval.Duration,
		}
		if client != nil {
			c.Backend = client
		}
		reg.Register(workspaces.New(c))
	}
}

// collectOnce runs every registered collector a single time and prints the
// results as a JSON object keyed by collector name.
func collectOnce(ctx context.Context, reg *collectors.Registry) error {
	out := make(map[string]any)
	for _, name := range reg.List() {
		c, ok := reg.Get(name)
		if !ok {
			continue
		}
		data, err := c.Collect(ctx)
		if err != nil {
			out[name] = map[string]string{"error": err.Error()}
			continue
		}
		out[name] = data
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// runBarUI assembles the segments for the configured layout and runs the
// bubbletea program until quit or ctx cancellation.
func runBarUI(ctx context.Context, cfg *config.Config, configPath string, client *bridge.Client, events *bridge.Registry, runner *collectors.Runner, store *cache.Store, logger *slog.Logger) error {
	zones := zone.New()
	defer zones.Close()

	hist := history.NewStore(history.Config{Retention: cfg.Daemon.Retention.Duration})

	var commander widgets.Commander
	var window app.WindowQuerier
	if client != nil {
		commander = client
		window = client
	}

	slots := config.LayoutPreset(cfg.Bar.Layout)
	build := func(names []string) []app.Segment {
		segs := make([]app.Segment, 0, len(names))
		for _, name := range names {
			if s := buildSegment(name, cfg, zones, commander, hist); s != nil {
				segs = append(segs, s)
			}
		}
		return segs
	}

	var eventCh <-chan bridge.Event
	if client != nil {
		ch, cancelSubs := app.SubscribeEvents(events, 64,
			bridge.EventWindowCreated,
			bridge.EventWindowDestroyed,
			bridge.EventWindowMoved,
			bridge.EventWorkspaceChanged,
			bridge.EventScreenFocus,
			bridge.EventKeepAwakeChanged,
			bridge.EventMediaPlayback,
		)
		defer cancelSubs()
		eventCh = ch
	}

	model := bar.NewModel(bar.Config{
		Left:      build(slots.Left),
		Center:    build(slots.Center),
		Right:     build(slots.Right),
		Updates:   runner.Updates(),
		Events:    eventCh,
		Runner:    runner,
		History:   hist,
		Window:    window,
		Zones:     zones,
		ThemeName: cfg.Theme.Name,
		Logger:    logger,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go runner.Run(ctx)

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	// Warm start: replay persisted results so segments render instantly
	// instead of waiting out each collector's first cycle.
	if store != nil {
		go warmStart(p, store)
	}

	watchPath := configPath
	if watchPath == "" {
		watchPath = config.DefaultPath()
	}
	go func() {
		err := config.Watch(ctx, watchPath, logger, func(next *config.Config) {
			p.Send(app.ThemeChangeEvent{Theme: next.Theme.Name})
		})
		if err != nil && ctx.Err() == nil {
			logger.Warn("config watch stopped", "error", err)
		}
	}()

	_, err := p.Run()
	return err
}

// buildSegment maps a layout slot name to a constructed segment.
func buildSegment(name string, cfg *config.Config, zones *zone.Manager, cmd widgets.Commander, hist *history.Store) app.Segment {
	unicode := cfg.Bar.Unicode
	switch name {
	case "workspaces":
		return widgets.NewWorkspacesWidget(zones, cmd, unicode)
	case "title":
		return widgets.NewTitleWidget(cfg.Bar.TitleWidth)
	case "clock":
		return widgets.NewClockWidget(unicode)
	case "cpu":
		return widgets.NewCPUWidget(hist, unicode)
	case "battery":
		return widgets.NewBatteryWidget(hist, unicode)
	case "weather":
		return widgets.NewWeatherWidget(unicode)
	case "keepawake":
		return widgets.NewKeepAwakeWidget(zones, cmd, unicode)
	case "media":
		return widgets.NewMediaWidget(unicode)
	default:
		return nil
	}
}

// warmStart replays cached collector results into the program. Values past
// their stale horizon are delivered marked stale so segments dim them.
func warmStart(p *tea.Program, store *cache.Store) {
	replay := func(source string, data any, fresh cache.Freshness) {
		if fresh == cache.Miss || data == nil {
			return
		}
		p.Send(app.DataUpdateEvent{
			Source: source,
			Result: collectors.Result{
				Data:  data,
				Stale: fresh == cache.Stale,
				At:    time.Now(),
			},
		})
	}

	if v, fresh := cache.GetTyped[bridge.CPUInfo](store, "collector/cpu"); fresh != cache.Miss {
		replay("cpu", v, fresh)
	}
	if v, fresh := cache.GetTyped[bridge.BatteryInfo](store, "collector/battery"); fresh != cache.Miss {
		replay("battery", v, fresh)
	}
	if v, fresh := cache.GetTyped[weather.Report](store, "collector/weather"); fresh != cache.Miss {
		replay("weather", v, fresh)
	}
	if v, fresh := cache.GetTyped[workspaces.List](store, "collector/workspaces"); fresh != cache.Miss {
		replay("workspaces", v, fresh)
	}
}
