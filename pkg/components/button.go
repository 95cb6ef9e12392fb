package components

import (
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// ButtonStyle controls the appearance of a rendered button segment.
type ButtonStyle struct {
	FG        string // hex foreground color
	BG        string // hex background color
	PressedBG string // hex background while pressed
	Bold      bool
	PadH      int // horizontal padding cells on each side
}

// DefaultButtonStyle returns a ButtonStyle with single-cell padding.
func DefaultButtonStyle() ButtonStyle {
	return ButtonStyle{PadH: 1}
}

// Button renders a clickable label segment and registers it as a mouse hit
// zone under id with the given zone manager. The pressed flag selects the
// momentary pressed background; release state is owned by the caller.
func Button(z *zone.Manager, id, label string, pressed bool, st ButtonStyle) string {
	s := lipgloss.NewStyle().Padding(0, st.PadH)
	if st.FG != "" {
		s = s.Foreground(lipgloss.Color(st.FG))
	}
	bg := st.BG
	if pressed && st.PressedBG != "" {
		bg = st.PressedBG
	}
	if bg != "" {
		s = s.Background(lipgloss.Color(bg))
	}
	if st.Bold {
		s = s.Bold(true)
	}

	rendered := s.Render(label)
	if z == nil {
		return rendered
	}
	return z.Mark(id, rendered)
}
