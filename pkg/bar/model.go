// Package bar implements the root bubbletea model: a one-line status bar
// with left, center, and right slots, an expandable detail panel, and
// mouse support via bubblezone. Segments are wired at startup; the model
// itself only routes messages and composes views.
package bar

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/pulsebar/pkg/app"
	"gitlab.com/tinyland/lab/pulsebar/pkg/bridge"
	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors"
	"gitlab.com/tinyland/lab/pulsebar/pkg/history"
	"gitlab.com/tinyland/lab/pulsebar/pkg/theme"
)

// tickInterval drives the per-second refresh of clocks and staleness marks.
const tickInterval = time.Second

// Config wires the bar model's dependencies.
type Config struct {
	// Left, Center, Right are the segments for each slot, in render order.
	Left   []app.Segment
	Center []app.Segment
	Right  []app.Segment

	// Updates is the runner's output channel.
	Updates <-chan collectors.Update

	// Events delivers backend pushes; nil disables the event pump.
	Events <-chan bridge.Event

	// Runner services refresh requests; nil disables them.
	Runner *collectors.Runner

	// History records collector readings for the panel sparklines.
	History *history.Store

	// Window queries the focused window at startup; nil skips the query.
	Window app.WindowQuerier

	// Zones is the shared mouse-zone manager.
	Zones *zone.Manager

	// ThemeName selects the starting theme.
	ThemeName string

	// ColorDepth overrides terminal color-depth detection in bits
	// (24, 8, or 4). Zero autodetects via termenv.
	ColorDepth int

	Logger *slog.Logger
}

// Model is the root bubbletea model.
type Model struct {
	cfg    Config
	keys   KeyMap
	help   help.Model
	theme  theme.Theme
	themes []string
	motion theme.Motion

	depth int // terminal color depth, themes adapted on resolve

	segments []app.Segment // left + center + right, for broadcast and focus
	focused  int
	expanded string // segment ID with an open panel, "" when closed
	hold     history.HoldToken
	held     bool // history pinned while a panel is open

	width, height int
	showHelp      bool
	connected     bool
	lastErr       string
}

// NewModel assembles the bar from its configuration.
func NewModel(cfg Config) Model {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	segments := make([]app.Segment, 0, len(cfg.Left)+len(cfg.Center)+len(cfg.Right))
	segments = append(segments, cfg.Left...)
	segments = append(segments, cfg.Center...)
	segments = append(segments, cfg.Right...)

	depth := cfg.ColorDepth
	if depth == 0 {
		depth = theme.DetectColorDepth()
	}

	theme.SetCurrent(cfg.ThemeName)
	return Model{
		cfg:       cfg,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     theme.Adapt(theme.Get(cfg.ThemeName), depth),
		themes:    theme.Names(),
		motion:    theme.DefaultMotion(),
		depth:     depth,
		segments:  segments,
		connected: true,
	}
}

// Init starts the tick, motion, and pump commands.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		app.TickCmd(tickInterval),
		app.MotionTickCmd(m.motion.ScrollTick),
		app.WaitForUpdateCmd(m.cfg.Updates),
	}
	if m.cfg.Events != nil {
		cmds = append(cmds, app.WaitForBridgeEventCmd(m.cfg.Events))
	}
	if m.cfg.Window != nil {
		cmds = append(cmds, app.FetchFocusedWindowCmd(m.cfg.Window, 3*time.Second))
	}
	return tea.Batch(cmds...)
}

// FocusedID returns the ID of the focused segment.
func (m Model) FocusedID() string {
	if len(m.segments) == 0 {
		return ""
	}
	return m.segments[m.focused].ID()
}

// ExpandedID returns the ID of the segment with an open panel.
func (m Model) ExpandedID() string { return m.expanded }

// Update routes one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resizeCenter()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.broadcast(msg)

	case app.DataUpdateEvent:
		if m.cfg.History != nil {
			m.cfg.History.Record(collectors.Update{Source: msg.Source, Result: msg.Result})
		}
		if msg.Result.Err != nil {
			m.lastErr = msg.Source + ": " + msg.Result.Err.Error()
		}
		cmd := m.broadcast(msg)
		return m, tea.Batch(cmd, app.WaitForUpdateCmd(m.cfg.Updates))

	case app.BridgeEvent:
		cmd := m.broadcast(msg)
		return m, tea.Batch(cmd, app.WaitForBridgeEventCmd(m.cfg.Events))

	case app.BridgeStateEvent:
		m.connected = msg.Connected
		return m, nil

	case app.TickEvent:
		if m.cfg.History != nil {
			m.cfg.History.Prune()
		}
		cmd := m.broadcast(msg)
		return m, tea.Batch(cmd, app.TickCmd(tickInterval))

	case app.MotionTickEvent:
		cmd := m.broadcast(msg)
		return m, tea.Batch(cmd, app.MotionTickCmd(m.motion.ScrollTick))

	case app.RefreshRequestEvent:
		return m, m.refreshCmd(msg.Source)

	case app.ThemeChangeEvent:
		theme.SetCurrent(msg.Theme)
		m.theme = theme.Adapt(theme.Get(msg.Theme), m.depth)
		return m, nil

	case app.FocusedWindowEvent:
		return m, m.broadcast(msg)
	}

	// CommandDoneMsg and anything unrecognized still reaches segments.
	return m, m.broadcast(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Tab):
		m.cycleFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.cycleFocus(-1)
		return m, nil
	case key.Matches(msg, m.keys.Expand):
		m.toggleExpand()
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		next := m.nextTheme()
		return m, func() tea.Msg { return app.ThemeChangeEvent{Theme: next} }
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshAllCmd()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}
	if len(m.segments) > 0 {
		return m, m.segments[m.focused].HandleKey(msg)
	}
	return m, nil
}

// cycleFocus moves focus by delta with wraparound.
func (m *Model) cycleFocus(delta int) {
	if len(m.segments) == 0 {
		return
	}
	m.focused = (m.focused + delta + len(m.segments)) % len(m.segments)
}

// toggleExpand opens the focused segment's panel, or closes it if already
// open. Segments without a panel are skipped. While a panel is open its
// history series are pinned so the sparkline doesn't shift underneath.
func (m *Model) toggleExpand() {
	if len(m.segments) == 0 {
		return
	}
	seg := m.segments[m.focused]
	if _, ok := seg.(app.Expandable); !ok {
		return
	}
	if m.expanded == seg.ID() {
		m.expanded = ""
		m.releaseHold()
		return
	}
	m.expanded = seg.ID()
	m.releaseHold()
	if m.cfg.History != nil {
		m.hold = m.cfg.History.Hold()
		m.held = true
	}
}

func (m *Model) releaseHold() {
	if !m.held {
		return
	}
	m.cfg.History.Release(m.hold)
	m.held = false
}

func (m *Model) nextTheme() string {
	if len(m.themes) == 0 {
		return m.theme.Name
	}
	for i, name := range m.themes {
		if theme.Get(name).Name == m.theme.Name {
			return m.themes[(i+1)%len(m.themes)]
		}
	}
	return m.themes[0]
}

// broadcast sends msg to every segment and batches their commands.
func (m *Model) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, seg := range m.segments {
		if cmd := seg.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) refreshCmd(source string) tea.Cmd {
	runner := m.cfg.Runner
	if runner == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		runner.Refresh(ctx, source)
		return nil
	}
}

func (m *Model) refreshAllCmd() tea.Cmd {
	runner := m.cfg.Runner
	if runner == nil {
		return nil
	}
	names := make([]string, 0, len(m.segments))
	for _, seg := range m.segments {
		names = append(names, seg.ID())
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for _, name := range names {
			runner.Refresh(ctx, name)
		}
		return nil
	}
}

// resizeCenter gives the center slot whatever width the sides leave over.
func (m *Model) resizeCenter() {
	if m.width <= 0 {
		return
	}
	side := 0
	for _, seg := range m.cfg.Left {
		side += seg.Width() + 1
	}
	for _, seg := range m.cfg.Right {
		side += seg.Width() + 1
	}
	avail := m.width - side - 2
	if avail < 10 {
		avail = 10
	}
	for _, seg := range m.cfg.Center {
		if t, ok := seg.(interface{ SetWidth(int) }); ok {
			t.SetWidth(avail)
		}
	}
}
