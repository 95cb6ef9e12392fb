package widgets

import (
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/pulsebar/pkg/app"
	"gitlab.com/tinyland/lab/pulsebar/pkg/bridge"
	"gitlab.com/tinyland/lab/pulsebar/pkg/components"
	"gitlab.com/tinyland/lab/pulsebar/pkg/theme"
)

// TitleWidget shows the focused window's title in the bar's center slot.
// Titles wider than the slot scroll as a marquee driven by motion ticks.
type TitleWidget struct {
	width  int
	window bridge.Window
	offset int
	motion theme.Motion
}

// NewTitleWidget creates the title segment with a fixed slot width.
func NewTitleWidget(width int) *TitleWidget {
	if width <= 0 {
		width = 40
	}
	return &TitleWidget{width: width, motion: theme.DefaultMotion()}
}

// ID returns the segment identifier.
func (w *TitleWidget) ID() string { return "title" }

// Title returns the segment's display name.
func (w *TitleWidget) Title() string { return "Window" }

// SetWidth resizes the slot, e.g. on terminal resize.
func (w *TitleWidget) SetWidth(width int) {
	if width > 0 && width != w.width {
		w.width = width
		w.offset = 0
	}
}

func (w *TitleWidget) label() components.ScrollingLabel {
	text := w.window.Title
	if text == "" {
		text = w.window.App
	}
	return components.ScrollingLabel{Text: text, Width: w.width, Gap: w.motion.ScrollGap}
}

// Update tracks focus changes from queries and tiling pushes, and advances
// the marquee on motion ticks.
func (w *TitleWidget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case app.FocusedWindowEvent:
		if msg.Err != nil {
			return nil
		}
		w.setWindow(msg.Window)
	case app.BridgeEvent:
		switch msg.Event.Name {
		case bridge.EventWindowCreated, bridge.EventWindowMoved:
			var p bridge.WindowEventPayload
			if err := msg.Event.DecodePayload(&p); err == nil && p.Window.Title != "" {
				w.setWindow(p.Window)
			}
		case bridge.EventWindowDestroyed:
			var p bridge.WindowEventPayload
			if err := msg.Event.DecodePayload(&p); err == nil && p.Window.ID == w.window.ID {
				w.setWindow(bridge.Window{})
			}
		}
	case app.MotionTickEvent:
		if l := w.label(); !l.Fits() {
			w.offset = (w.offset + 1) % l.Cycle()
		}
	}
	return nil
}

func (w *TitleWidget) setWindow(win bridge.Window) {
	if win != w.window {
		w.window = win
		w.offset = 0
	}
}

// HandleKey is a no-op; the title segment has no interactions.
func (w *TitleWidget) HandleKey(tea.KeyMsg) tea.Cmd { return nil }

// View renders the current marquee frame padded to the slot width.
func (w *TitleWidget) View(th theme.Theme) string {
	l := w.label()
	if l.Text == "" {
		return components.PadCenter("", w.width)
	}
	frame := l.Frame(w.offset)
	if l.Fits() {
		frame = components.PadCenter(frame, w.width)
	}
	return theme.Colorize(frame, th.Foreground)
}

// Width returns the fixed slot width.
func (w *TitleWidget) Width() int { return w.width }
