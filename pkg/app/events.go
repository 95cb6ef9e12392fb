// Package app defines the bubbletea message types and the segment interface
// shared by the status bar. It is the Elm-architecture seam between the
// collector goroutines, the backend event bridge, and the render loop.
//
// Designed against bubbletea v1.3.x; migrating to v2 should need only
// import-path changes.
package app

import (
	"time"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bridge"
	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors"
)

// DataUpdateEvent carries one collector result into the update loop.
// Segments type-assert Result.Data based on Source. A failed poll arrives
// with Result.Err set and Result.Data holding the last known value, so
// segments keep rendering stale data instead of blanking.
type DataUpdateEvent struct {
	Source string
	Result collectors.Result
}

// BridgeEvent carries one push event from the backend socket.
type BridgeEvent struct {
	Event bridge.Event
}

// BridgeStateEvent reports bridge connectivity transitions so the bar can
// show a disconnected indicator.
type BridgeStateEvent struct {
	Connected bool
}

// TickEvent drives the periodic clock refresh and stale-data checks.
type TickEvent struct {
	Time time.Time
}

// MotionTickEvent advances animations (the scrolling window title). It runs
// on its own cadence so marquee speed is independent of data polling.
type MotionTickEvent struct {
	Time time.Time
}

// ThemeChangeEvent switches the active color theme.
type ThemeChangeEvent struct {
	Theme string
}

// PanelToggleEvent opens or closes the expanded panel under a segment.
type PanelToggleEvent struct {
	SegmentID string
}

// RefreshRequestEvent asks the runner to re-poll one collector immediately,
// e.g. after a workspace-changed push event.
type RefreshRequestEvent struct {
	Source string
}

// FocusedWindowEvent carries the result of a focused-window query, issued at
// startup and after tiling events.
type FocusedWindowEvent struct {
	Window bridge.Window
	Err    error
}
