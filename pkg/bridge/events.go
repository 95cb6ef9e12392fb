package bridge

import "encoding/json"

// EventName identifies a backend push event. Names are namespaced by
// subsystem: tiling, menubar, keepawake, media, cli.
type EventName string

const (
	EventWindowCreated    EventName = "tiling:window-created"
	EventWindowDestroyed  EventName = "tiling:window-destroyed"
	EventWindowMoved      EventName = "tiling:window-moved"
	EventWorkspaceChanged EventName = "tiling:workspace-changed"
	EventScreenFocus      EventName = "tiling:screen-focus"

	EventMenubarShow EventName = "menubar:show"
	EventMenubarHide EventName = "menubar:hide"

	EventKeepAwakeChanged EventName = "keepawake:changed"

	EventMediaPlayback EventName = "media:playback"

	EventCLICommand EventName = "cli:command"
)

// knownEvents is the closed set of event names the backend may emit.
var knownEvents = map[EventName]bool{
	EventWindowCreated:    true,
	EventWindowDestroyed:  true,
	EventWindowMoved:      true,
	EventWorkspaceChanged: true,
	EventScreenFocus:      true,
	EventMenubarShow:      true,
	EventMenubarHide:      true,
	EventKeepAwakeChanged: true,
	EventMediaPlayback:    true,
	EventCLICommand:       true,
}

// KnownEvent reports whether name is in the push-event catalog.
func KnownEvent(name EventName) bool {
	return knownEvents[name]
}

// --- payload shapes, fixed per event name ---

// WindowEventPayload accompanies tiling:window-created, window-destroyed,
// and window-moved.
type WindowEventPayload struct {
	Window   Window    `json:"window"`
	Geometry *Geometry `json:"geometry,omitempty"` // present for window-moved
}

// WorkspaceChangedPayload accompanies tiling:workspace-changed.
type WorkspaceChangedPayload struct {
	Workspace string `json:"workspace"`
	Previous  string `json:"previous,omitempty"`
}

// ScreenFocusPayload accompanies tiling:screen-focus.
type ScreenFocusPayload struct {
	Screen string `json:"screen"`
}

// KeepAwakePayload accompanies keepawake:changed.
type KeepAwakePayload struct {
	Enabled      bool `json:"enabled"`
	DisplayAwake bool `json:"display_awake"`
}

// MediaPlaybackPayload accompanies media:playback.
type MediaPlaybackPayload struct {
	State  string `json:"state"` // "playing", "paused", "stopped"
	Artist string `json:"artist,omitempty"`
	Title  string `json:"title,omitempty"`
}

// CLICommandPayload accompanies cli:command: a named command injected from
// the command line with free-form data.
type CLICommandPayload struct {
	Command string          `json:"command"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Event is a single push notification as delivered to subscribers. Payload
// stays raw until the subscriber decodes it against the catalog shape for
// the event name.
type Event struct {
	Name    EventName       `json:"event"`
	Target  string          `json:"target,omitempty"`
	Payload json.RawMessage `json:"data,omitempty"`
}

// DecodePayload unmarshals the raw payload into v.
func (e Event) DecodePayload(v any) error {
	if len(e.Payload) == 0 {
		return nil
	}
	return json.Unmarshal(e.Payload, v)
}
