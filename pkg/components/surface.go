package components

import (
	"github.com/charmbracelet/lipgloss"
)

// SurfaceStyle controls the visual appearance of a rendered surface.
type SurfaceStyle struct {
	Title   string
	FG      string // hex foreground color
	BG      string // hex background color
	Border  string // hex border color; empty = no border
	Rounded bool   // rounded corners instead of square
	Padding Padding
	Width   int // fixed width in cells; 0 = natural width
}

// DefaultSurfaceStyle returns a SurfaceStyle with a rounded border and
// single-cell horizontal padding.
func DefaultSurfaceStyle() SurfaceStyle {
	return SurfaceStyle{
		Rounded: true,
		Padding: NewPaddingHV(1, 0),
	}
}

// Surface renders content inside a styled rectangular region: a background,
// an optional border, and optional title embedded in the top edge.
func Surface(content string, st SurfaceStyle) string {
	s := lipgloss.NewStyle().
		Padding(st.Padding.Top, st.Padding.Right, st.Padding.Bottom, st.Padding.Left)

	if st.FG != "" {
		s = s.Foreground(lipgloss.Color(st.FG))
	}
	if st.BG != "" {
		s = s.Background(lipgloss.Color(st.BG))
	}
	if st.Width > 0 {
		s = s.Width(st.Width)
	}

	if st.Border != "" {
		border := lipgloss.NormalBorder()
		if st.Rounded {
			border = lipgloss.RoundedBorder()
		}
		s = s.Border(border).BorderForeground(lipgloss.Color(st.Border))
	}

	out := s.Render(content)
	if st.Title != "" && st.Border != "" {
		out = surfaceEmbedTitle(out, st.Title, st.Border)
	}
	return out
}

// surfaceEmbedTitle splices a title into the top border line of a rendered
// box. The title is truncated if it is wider than the interior.
func surfaceEmbedTitle(box, title, borderColor string) string {
	lines := splitLines(box)
	if len(lines) == 0 {
		return box
	}
	top := lines[0]
	interior := VisibleLen(top) - 2
	if interior <= 2 {
		return box
	}
	label := " " + TruncateWithTail(title, interior-2, "…") + " "
	// Corner, label, then the remainder of the original border line.
	rest := interior - VisibleLen(label)
	if rest < 0 {
		rest = 0
	}
	st := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	lines[0] = Truncate(top, 1) + st.Render(label) + Truncate(trimLeftCells(top, 1+VisibleLen(label)), rest+1)
	return joinLines(lines)
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

// trimLeftCells drops the first n visible cells of s, preserving any
// trailing content.
func trimLeftCells(s string, n int) string {
	if n <= 0 {
		return s
	}
	skipped := 0
	for i, r := range s {
		if skipped >= n {
			return s[i:]
		}
		skipped += VisibleLen(string(r))
	}
	return ""
}
