package components

import "strings"

// ScrollingLabel is a marquee for text wider than its display window. The
// label is a pure function of its offset: the owner advances the offset on
// each motion tick and calls Frame, so rendering stays deterministic and
// testable without a clock.
type ScrollingLabel struct {
	// Text is the plain (unstyled) label content.
	Text string

	// Width is the display window width in cells.
	Width int

	// Gap is the number of blank cells between repetitions of the text.
	Gap int
}

// Fits reports whether the text fits in the window without scrolling.
func (l ScrollingLabel) Fits() bool {
	return VisibleLen(l.Text) <= l.Width
}

// Cycle returns the scroll period in cells: after Cycle offset advances the
// marquee is back at its starting frame. For text that fits, Cycle is 1.
func (l ScrollingLabel) Cycle() int {
	if l.Fits() {
		return 1
	}
	return VisibleLen(l.Text) + l.gap()
}

// Frame renders the window contents at the given offset. Text that fits is
// returned padded to the window width, unchanged by the offset.
func (l ScrollingLabel) Frame(offset int) string {
	if l.Width <= 0 {
		return ""
	}
	if l.Fits() {
		return PadRight(l.Text, l.Width)
	}

	loop := l.Text + strings.Repeat(" ", l.gap())
	cycle := VisibleLen(loop)
	offset = ((offset % cycle) + cycle) % cycle

	// Repeat the loop until the window starting at offset is covered.
	s := loop
	for VisibleLen(s) < offset+l.Width {
		s += loop
	}

	return Truncate(cutLeftCells(s, offset), l.Width)
}

func (l ScrollingLabel) gap() int {
	if l.Gap <= 0 {
		return 3
	}
	return l.Gap
}

// cutLeftCells drops the first n visible cells of plain text s. If cell n
// falls inside a wide rune, the rune is dropped and a space is prepended to
// keep the window aligned.
func cutLeftCells(s string, n int) string {
	if n <= 0 {
		return s
	}
	skipped := 0
	for i, r := range s {
		if skipped == n {
			return s[i:]
		}
		if skipped > n {
			return " " + s[i:]
		}
		skipped += VisibleLen(string(r))
	}
	return ""
}
