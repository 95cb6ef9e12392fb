package bar

import (
	"strings"

	"gitlab.com/tinyland/lab/pulsebar/pkg/app"
	"gitlab.com/tinyland/lab/pulsebar/pkg/components"
	"gitlab.com/tinyland/lab/pulsebar/pkg/theme"
)

// panelHeight is the body height of the expanded panel.
const panelHeight = 6

// View renders the bar line, the expanded panel when open, and the help
// line. The whole frame passes through zone.Scan so mouse zones resolve to
// screen coordinates.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}

	line := m.barLine()
	var b strings.Builder
	b.WriteString(line)

	if m.expanded != "" {
		if panel := m.panel(); panel != "" {
			b.WriteString("\n")
			b.WriteString(panel)
		}
	}
	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
		if m.lastErr != "" {
			b.WriteString("\n")
			b.WriteString(theme.Colorize(components.TruncateWithTail(m.lastErr, m.width, "…"), m.theme.StatusError))
		}
	}

	out := b.String()
	if m.cfg.Zones != nil {
		out = m.cfg.Zones.Scan(out)
	}
	return out
}

// barLine composes left, center, and right slots into one padded line.
func (m Model) barLine() string {
	left := m.slot(m.cfg.Left)
	center := m.slot(m.cfg.Center)
	right := m.slot(m.cfg.Right)

	if !m.connected {
		right = theme.Colorize("!", m.theme.StatusError) + " " + right
	}

	lw := components.VisibleLen(left)
	cw := components.VisibleLen(center)
	rw := components.VisibleLen(right)

	// Center the middle slot on the full width; fall back to simple
	// packing when the terminal is too narrow.
	gapL := (m.width-cw)/2 - lw
	gapR := m.width - lw - gapL - cw - rw
	if gapL < 1 || gapR < 1 {
		gapL, gapR = 1, 1
	}
	return left + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + right
}

func (m Model) slot(segs []app.Segment) string {
	cells := make([]string, 0, len(segs))
	for _, seg := range segs {
		cell := seg.View(m.theme)
		if cell == "" {
			continue
		}
		if seg.ID() == m.FocusedID() {
			cell = components.Bold(cell)
		}
		cells = append(cells, cell)
	}
	return strings.Join(cells, "  ")
}

// panel renders the expanded segment's detail view in a titled surface.
func (m Model) panel() string {
	for _, seg := range m.segments {
		if seg.ID() != m.expanded {
			continue
		}
		exp, ok := seg.(app.Expandable)
		if !ok {
			return ""
		}
		width := m.width - 4
		if width < 20 {
			width = 20
		}
		body := exp.ExpandedView(m.theme, width, panelHeight)
		st := components.DefaultSurfaceStyle()
		st.Title = seg.Title()
		st.Border = m.theme.SegmentBorder
		st.Width = width
		return components.Surface(body, st)
	}
	return ""
}
