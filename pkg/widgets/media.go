package widgets

import (
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/pulsebar/pkg/app"
	"gitlab.com/tinyland/lab/pulsebar/pkg/bridge"
	"gitlab.com/tinyland/lab/pulsebar/pkg/components"
	"gitlab.com/tinyland/lab/pulsebar/pkg/theme"
)

// maxMediaWidth caps the track text so long titles do not crowd the bar.
const maxMediaWidth = 30

// MediaWidget shows the current playback state from media:playback pushes.
// It renders nothing while playback is stopped.
type MediaWidget struct {
	state   bridge.MediaPlaybackPayload
	unicode bool
}

// NewMediaWidget creates the media segment.
func NewMediaWidget(unicode bool) *MediaWidget {
	return &MediaWidget{unicode: unicode}
}

// ID returns the segment identifier.
func (w *MediaWidget) ID() string { return "media" }

// Title returns the segment's display name.
func (w *MediaWidget) Title() string { return "Media" }

// Update consumes media playback pushes.
func (w *MediaWidget) Update(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(app.BridgeEvent)
	if !ok || ev.Event.Name != bridge.EventMediaPlayback {
		return nil
	}
	var p bridge.MediaPlaybackPayload
	if err := ev.Event.DecodePayload(&p); err == nil {
		w.state = p
	}
	return nil
}

// HandleKey is a no-op.
func (w *MediaWidget) HandleKey(tea.KeyMsg) tea.Cmd { return nil }

func (w *MediaWidget) track() string {
	switch {
	case w.state.Artist != "" && w.state.Title != "":
		return w.state.Artist + " - " + w.state.Title
	case w.state.Title != "":
		return w.state.Title
	default:
		return ""
	}
}

// View renders the playback cell, empty when stopped.
func (w *MediaWidget) View(th theme.Theme) string {
	if w.state.State != "playing" && w.state.State != "paused" {
		return ""
	}
	iconName := "media-play"
	color := th.Accent
	if w.state.State == "paused" {
		iconName = "media-pause"
		color = th.Dim
	}
	text := components.TruncateWithTail(w.track(), maxMediaWidth, "…")
	if icon := components.Icon(iconName, w.unicode); icon != "" {
		text = icon + " " + text
	}
	return theme.Colorize(text, color)
}

// Width returns the rendered cell width.
func (w *MediaWidget) Width() int {
	return components.VisibleLen(w.View(theme.Current))
}
