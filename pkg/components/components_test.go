package components

import (
	"strings"
	"testing"
)

// --- text helpers ---

func TestVisibleLenIgnoresANSI(t *testing.T) {
	s := "\x1b[38;2;255;0;0mred\x1b[0m"
	if got := VisibleLen(s); got != 3 {
		t.Errorf("VisibleLen(%q) = %d, want 3", s, got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 5); got != "hello" {
		t.Errorf("Truncate = %q, want %q", got, "hello")
	}
	if got := Truncate("hi", 5); got != "hi" {
		t.Errorf("Truncate short = %q, want unchanged", got)
	}
	if got := Truncate("hello", 0); got != "" {
		t.Errorf("Truncate zero width = %q, want empty", got)
	}
}

func TestTruncateWithTail(t *testing.T) {
	got := TruncateWithTail("hello world", 6, "…")
	if VisibleLen(got) != 6 {
		t.Errorf("TruncateWithTail width = %d, want 6", VisibleLen(got))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("TruncateWithTail = %q, want tail suffix", got)
	}
}

func TestPadding(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadLeft("ab", 5); got != "   ab" {
		t.Errorf("PadLeft = %q", got)
	}
	if got := PadCenter("ab", 5); got != " ab  " {
		t.Errorf("PadCenter = %q, want extra space on the right", got)
	}
	if got := PadRight("abcdef", 3); got != "abcdef" {
		t.Errorf("PadRight wider input = %q, want unchanged", got)
	}
}

func TestNewPaddingClampsNegative(t *testing.T) {
	p := NewPadding(-2)
	if p.Top != 0 || p.Left != 0 {
		t.Errorf("NewPadding(-2) = %+v, want zeros", p)
	}
	p = NewPaddingHV(-1, 2)
	if p.Left != 0 || p.Top != 2 {
		t.Errorf("NewPaddingHV(-1, 2) = %+v", p)
	}
}

// --- style helpers ---

func TestColorEscapes(t *testing.T) {
	if got := Color("#ff0000"); got != "\x1b[38;2;255;0;0m" {
		t.Errorf("Color = %q", got)
	}
	if got := BgColor("00ff00"); got != "\x1b[48;2;0;255;0m" {
		t.Errorf("BgColor = %q", got)
	}
	if got := Color("bogus"); got != "" {
		t.Errorf("Color(bogus) = %q, want empty", got)
	}
}

// --- icons ---

func TestIconKnown(t *testing.T) {
	if got := Icon("cpu", false); got != "CPU" {
		t.Errorf("Icon(cpu, ascii) = %q, want %q", got, "CPU")
	}
	if got := Icon("cpu", true); got == "" || got == "CPU" {
		t.Errorf("Icon(cpu, unicode) = %q, want a glyph", got)
	}
}

func TestIconUnknown(t *testing.T) {
	if got := Icon("no-such-icon", true); got != "" {
		t.Errorf("Icon(unknown) = %q, want empty", got)
	}
	if HasIcon("no-such-icon") {
		t.Error("HasIcon(unknown) = true")
	}
}

func TestBatteryIcon(t *testing.T) {
	cases := []struct {
		pct      float64
		charging bool
		want     string
	}{
		{50, true, "battery-charging"},
		{95, false, "battery-full"},
		{90, false, "battery-full"},
		{70, false, "battery-high"},
		{50, false, "battery-half"},
		{20, false, "battery-low"},
		{5, false, "battery-empty"},
	}
	for _, c := range cases {
		if got := BatteryIcon(c.pct, c.charging); got != c.want {
			t.Errorf("BatteryIcon(%.0f, %v) = %q, want %q", c.pct, c.charging, got, c.want)
		}
	}
}

func TestWorkspaceIconsExistForOrderingTable(t *testing.T) {
	for _, role := range []string{
		"ws-terminal", "ws-coding", "ws-browser", "ws-music", "ws-design",
		"ws-communication", "ws-misc", "ws-files", "ws-mail", "ws-tasks",
		"ws-unknown",
	} {
		if !HasIcon(role) {
			t.Errorf("missing workspace icon %q", role)
		}
	}
}

// --- sparkline ---

func TestSparklineEmpty(t *testing.T) {
	if got := Sparkline(nil, 10, 0, 0); got != "" {
		t.Errorf("Sparkline(nil) = %q, want empty", got)
	}
}

func TestSparklineWidth(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	got := Sparkline(data, 4, 0, 0)
	if n := len([]rune(got)); n != 4 {
		t.Errorf("Sparkline rune count = %d, want 4 (last points only)", n)
	}
}

func TestSparklineLevels(t *testing.T) {
	got := []rune(Sparkline([]float64{0, 100}, 2, 0, 100))
	if got[0] != sparkBlocks[0] {
		t.Errorf("minimum value block = %q, want lowest", got[0])
	}
	if got[1] != sparkBlocks[7] {
		t.Errorf("maximum value block = %q, want highest", got[1])
	}
}

func TestSparklineFlatData(t *testing.T) {
	got := Sparkline([]float64{5, 5, 5}, 3, 0, 0)
	if got == "" {
		t.Fatal("flat data rendered empty")
	}
	runes := []rune(got)
	for _, r := range runes[1:] {
		if r != runes[0] {
			t.Errorf("flat data rendered uneven blocks: %q", got)
		}
	}
}

// --- surface ---

func TestSurfacePlain(t *testing.T) {
	got := Surface("hi", SurfaceStyle{})
	if !strings.Contains(got, "hi") {
		t.Errorf("Surface = %q, want content included", got)
	}
}

func TestSurfaceBorderAndTitle(t *testing.T) {
	st := DefaultSurfaceStyle()
	st.Border = "#3e3e3e"
	st.Title = "CPU"
	st.Width = 20
	got := Surface("usage 42%", st)
	if !strings.Contains(got, "CPU") {
		t.Errorf("Surface missing title: %q", got)
	}
	if !strings.Contains(got, "usage 42%") {
		t.Errorf("Surface missing content: %q", got)
	}
	lines := strings.Split(got, "\n")
	if len(lines) < 3 {
		t.Errorf("bordered surface has %d lines, want >= 3", len(lines))
	}
}

// --- button ---

func TestButtonWithoutZoneManager(t *testing.T) {
	st := DefaultButtonStyle()
	st.FG = "#ffffff"
	got := Button(nil, "ws-1", "term", false, st)
	if !strings.Contains(got, "term") {
		t.Errorf("Button = %q, want label included", got)
	}
}
