package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bridge"
	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors"
)

// TickCmd schedules a TickEvent after d.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickEvent{Time: t}
	})
}

// MotionTickCmd schedules a MotionTickEvent after d.
func MotionTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return MotionTickEvent{Time: t}
	})
}

// WaitForUpdateCmd blocks on the runner's update channel and delivers the
// next collector result as a DataUpdateEvent. The program re-issues the
// command after each message, forming the pump between collector goroutines
// and the update loop. A closed channel ends the pump with a nil message.
func WaitForUpdateCmd(updates <-chan collectors.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return nil
		}
		return DataUpdateEvent{Source: u.Source, Result: u.Result}
	}
}

// WaitForBridgeEventCmd blocks on a subscription channel and delivers the
// next backend push event.
func WaitForBridgeEventCmd(events <-chan bridge.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return BridgeEvent{Event: ev}
	}
}

// WindowQuerier is the slice of the bridge client used to refresh the
// focused-window title.
type WindowQuerier interface {
	FocusedWindow(ctx context.Context) (bridge.Window, error)
}

// FetchFocusedWindowCmd queries the backend for the focused window.
func FetchFocusedWindowCmd(q WindowQuerier, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		win, err := q.FocusedWindow(ctx)
		return FocusedWindowEvent{Window: win, Err: err}
	}
}
