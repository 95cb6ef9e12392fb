// Package widgets provides the concrete bar segments: workspace switcher,
// focused-window title, clock, CPU, battery, weather, keep-awake, and media
// playback. Each segment implements app.Segment and receives data through
// the Elm-architecture update loop.
package widgets

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// cmdTimeout bounds backend commands issued from segment interactions.
const cmdTimeout = 3 * time.Second

// Commander is the slice of the bridge client that segments drive on user
// interaction. Kept as an interface so segments test without a socket.
type Commander interface {
	GoToWorkspace(ctx context.Context, workspace string) error
	SetKeepAwake(ctx context.Context, enabled bool) error
	OpenApp(ctx context.Context, app string) error
}

// CommandDoneMsg reports the outcome of a backend command issued by a
// segment, so the bar can surface failures.
type CommandDoneMsg struct {
	Segment string
	Err     error
}

// commandCmd runs a Commander call off the update loop.
func commandCmd(segment string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()
		return CommandDoneMsg{Segment: segment, Err: fn(ctx)}
	}
}
