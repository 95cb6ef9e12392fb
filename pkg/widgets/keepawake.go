package widgets

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/pulsebar/pkg/app"
	"gitlab.com/tinyland/lab/pulsebar/pkg/bridge"
	"gitlab.com/tinyland/lab/pulsebar/pkg/components"
	"gitlab.com/tinyland/lab/pulsebar/pkg/theme"
)

// KeepAwakeWidget shows whether the display keep-awake assertion is held,
// and toggles it on click or keypress. State changes made elsewhere arrive
// via keepawake:changed pushes, so the segment never guesses.
type KeepAwakeWidget struct {
	zones   *zone.Manager
	cmd     Commander
	enabled bool
	pending bool // a toggle is in flight; ignore clicks until it lands
	unicode bool
}

// NewKeepAwakeWidget creates the keep-awake segment.
func NewKeepAwakeWidget(zones *zone.Manager, cmd Commander, unicode bool) *KeepAwakeWidget {
	return &KeepAwakeWidget{zones: zones, cmd: cmd, unicode: unicode}
}

// ID returns the segment identifier.
func (w *KeepAwakeWidget) ID() string { return "keepawake" }

// Title returns the segment's display name.
func (w *KeepAwakeWidget) Title() string { return "Keep awake" }

const keepAwakeZone = "keepawake:toggle"

// Update tracks backend state pushes and click toggles.
func (w *KeepAwakeWidget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case app.BridgeEvent:
		if msg.Event.Name != bridge.EventKeepAwakeChanged {
			return nil
		}
		var p bridge.KeepAwakePayload
		if err := msg.Event.DecodePayload(&p); err == nil {
			w.enabled = p.Enabled
			w.pending = false
		}
	case CommandDoneMsg:
		if msg.Segment == w.ID() && msg.Err != nil {
			w.pending = false
		}
	case tea.MouseMsg:
		if w.zones == nil || msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
			return nil
		}
		if z := w.zones.Get(keepAwakeZone); z != nil && z.InBounds(msg) {
			return w.toggle()
		}
	}
	return nil
}

// HandleKey toggles on "k".
func (w *KeepAwakeWidget) HandleKey(key tea.KeyMsg) tea.Cmd {
	if key.String() == "k" {
		return w.toggle()
	}
	return nil
}

func (w *KeepAwakeWidget) toggle() tea.Cmd {
	if w.cmd == nil || w.pending {
		return nil
	}
	w.pending = true
	target := !w.enabled
	return commandCmd(w.ID(), func(ctx context.Context) error {
		return w.cmd.SetKeepAwake(ctx, target)
	})
}

// View renders the indicator.
func (w *KeepAwakeWidget) View(th theme.Theme) string {
	iconName := "keepawake-off"
	color := th.Dim
	if w.enabled {
		iconName = "keepawake-on"
		color = th.Accent
	}
	cell := theme.Colorize(components.Icon(iconName, w.unicode), color)
	if w.pending {
		cell = components.Dim(cell)
	}
	if w.zones != nil {
		cell = w.zones.Mark(keepAwakeZone, cell)
	}
	return cell
}

// Width returns the rendered cell width.
func (w *KeepAwakeWidget) Width() int {
	return components.VisibleLen(w.View(theme.Current))
}
