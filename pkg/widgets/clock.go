package widgets

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/pulsebar/pkg/app"
	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors/clock"
	"gitlab.com/tinyland/lab/pulsebar/pkg/components"
	"gitlab.com/tinyland/lab/pulsebar/pkg/theme"
)

// ClockWidget shows the formatted wall clock.
type ClockWidget struct {
	snap    clock.Snapshot
	unicode bool
}

// NewClockWidget creates the clock segment.
func NewClockWidget(unicode bool) *ClockWidget {
	return &ClockWidget{unicode: unicode}
}

// ID returns the segment identifier.
func (w *ClockWidget) ID() string { return "clock" }

// Title returns the segment's display name.
func (w *ClockWidget) Title() string { return "Clock" }

// Update consumes clock collector snapshots and render ticks. Ticks keep
// the display moving even when the collector channel is briefly behind.
func (w *ClockWidget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case app.DataUpdateEvent:
		if msg.Source != "clock" {
			return nil
		}
		if snap, ok := msg.Result.Data.(clock.Snapshot); ok {
			w.snap = snap
		}
	case app.TickEvent:
		if !msg.Time.IsZero() && msg.Time.Sub(w.snap.Time) > time.Second {
			w.snap = clock.Snapshot{Time: msg.Time, Formatted: clock.Format(msg.Time)}
		}
	}
	return nil
}

// HandleKey is a no-op.
func (w *ClockWidget) HandleKey(tea.KeyMsg) tea.Cmd { return nil }

// View renders the formatted time.
func (w *ClockWidget) View(th theme.Theme) string {
	text := w.snap.Formatted
	if text == "" {
		text = "--:--:--"
	}
	if icon := components.Icon("clock", w.unicode); icon != "" {
		text = icon + " " + text
	}
	return theme.Colorize(text, th.Foreground)
}

// Width returns the rendered cell width.
func (w *ClockWidget) Width() int {
	return components.VisibleLen(w.View(theme.Current))
}
