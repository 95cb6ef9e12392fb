package widgets

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/pulsebar/pkg/app"
	"gitlab.com/tinyland/lab/pulsebar/pkg/bridge"
	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors/workspaces"
	"gitlab.com/tinyland/lab/pulsebar/pkg/components"
	"gitlab.com/tinyland/lab/pulsebar/pkg/theme"
)

// WorkspacesWidget renders the workspace switcher: one clickable pill per
// workspace in display order, the focused one highlighted. Clicking a pill
// asks the tiling backend to focus that workspace.
type WorkspacesWidget struct {
	zones   *zone.Manager
	cmd     Commander
	list    workspaces.List
	unicode bool
	pressed string // name of the workspace currently pressed
}

// NewWorkspacesWidget creates the switcher. zones may be nil in headless
// tests; clicks are then inert.
func NewWorkspacesWidget(zones *zone.Manager, cmd Commander, unicode bool) *WorkspacesWidget {
	return &WorkspacesWidget{zones: zones, cmd: cmd, unicode: unicode}
}

// ID returns the segment identifier.
func (w *WorkspacesWidget) ID() string { return "workspaces" }

// Title returns the segment's display name.
func (w *WorkspacesWidget) Title() string { return "Workspaces" }

func (w *WorkspacesWidget) zoneID(name string) string {
	return "ws:" + name
}

// Update processes workspace data, backend focus pushes, and mouse events.
func (w *WorkspacesWidget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case app.DataUpdateEvent:
		if msg.Source != "workspaces" {
			return nil
		}
		if list, ok := msg.Result.Data.(workspaces.List); ok {
			w.list = list
		}
	case app.BridgeEvent:
		if msg.Event.Name != bridge.EventWorkspaceChanged {
			return nil
		}
		var p bridge.WorkspaceChangedPayload
		if err := msg.Event.DecodePayload(&p); err != nil || p.Workspace == "" {
			return nil
		}
		// Move the highlight immediately; the re-poll reconciles the
		// full list afterwards.
		w.list.Focused = p.Workspace
		for i := range w.list.Workspaces {
			w.list.Workspaces[i].Focused = w.list.Workspaces[i].Name == p.Workspace
		}
		return func() tea.Msg {
			return app.RefreshRequestEvent{Source: "workspaces"}
		}
	case tea.MouseMsg:
		return w.handleMouse(msg)
	}
	return nil
}

func (w *WorkspacesWidget) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if w.zones == nil || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if name := w.hit(msg); name != "" {
			w.pressed = name
		}
	case tea.MouseActionRelease:
		name := w.hit(msg)
		pressed := w.pressed
		w.pressed = ""
		if name == "" || name != pressed || w.cmd == nil {
			return nil
		}
		if name == w.list.Focused {
			return nil
		}
		target := name
		return commandCmd(w.ID(), func(ctx context.Context) error {
			return w.cmd.GoToWorkspace(ctx, target)
		})
	}
	return nil
}

func (w *WorkspacesWidget) hit(msg tea.MouseMsg) string {
	for _, ws := range w.list.Workspaces {
		if z := w.zones.Get(w.zoneID(ws.Name)); z != nil && z.InBounds(msg) {
			return ws.Name
		}
	}
	return ""
}

// HandleKey switches to a workspace by its 1-based display position.
func (w *WorkspacesWidget) HandleKey(key tea.KeyMsg) tea.Cmd {
	s := key.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return nil
	}
	idx := int(s[0] - '1')
	if idx >= len(w.list.Workspaces) || w.cmd == nil {
		return nil
	}
	target := w.list.Workspaces[idx].Name
	if target == w.list.Focused {
		return nil
	}
	return commandCmd(w.ID(), func(ctx context.Context) error {
		return w.cmd.GoToWorkspace(ctx, target)
	})
}

// View renders the pill row.
func (w *WorkspacesWidget) View(th theme.Theme) string {
	if len(w.list.Workspaces) == 0 {
		return theme.Colorize("-", th.Dim)
	}
	pills := make([]string, 0, len(w.list.Workspaces))
	for _, ws := range w.list.Workspaces {
		pills = append(pills, w.pill(ws, th))
	}
	return strings.Join(pills, " ")
}

func (w *WorkspacesWidget) pill(ws workspaces.Workspace, th theme.Theme) string {
	label := ws.Label
	if icon := components.Icon(ws.Icon, w.unicode); icon != "" {
		label = icon + " " + label
	}
	st := components.ButtonStyle{
		FG:        theme.WorkspaceColor(ws.Focused, false, th),
		PressedBG: th.ButtonPressed,
		Bold:      ws.Focused,
	}
	return components.Button(w.zones, w.zoneID(ws.Name), label, ws.Name == w.pressed, st)
}

// Width returns the rendered cell width.
func (w *WorkspacesWidget) Width() int {
	return components.VisibleLen(w.View(theme.Current))
}
