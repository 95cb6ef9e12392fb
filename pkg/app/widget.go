package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/pulsebar/pkg/theme"
)

// Segment is one element of the status bar. Segments are pure view state:
// they receive messages through Update, never block, and render into a
// single line of at most the width they report.
type Segment interface {
	// ID is the segment's stable identifier, used for focus, zones, and
	// the expanded panel.
	ID() string

	// Title is the human-readable name shown in the expanded panel.
	Title() string

	// Update processes one message. Returned commands are batched into
	// the program loop.
	Update(msg tea.Msg) tea.Cmd

	// HandleKey processes a key event while the segment has focus.
	HandleKey(key tea.KeyMsg) tea.Cmd

	// View renders the segment's bar cell with the given theme. The
	// result must be a single line.
	View(th theme.Theme) string

	// Width is the cell width View will occupy, in terminal cells.
	Width() int
}

// Expandable is implemented by segments that render a detail panel below
// the bar when toggled open.
type Expandable interface {
	Segment

	// ExpandedView renders the detail panel into the given box.
	ExpandedView(th theme.Theme, width, height int) string
}
