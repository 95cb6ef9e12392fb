package theme

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"
)

var thTestHexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// --- Get / SetCurrent / Names ---

func TestGetDefault(t *testing.T) {
	th := Get("default")
	if th.Name != "default" {
		t.Errorf("Get(\"default\").Name = %q, want %q", th.Name, "default")
	}
	if th.Accent != "#7C3AED" {
		t.Errorf("Get(\"default\").Accent = %q, want %q", th.Accent, "#7C3AED")
	}
}

func TestGetGruvbox(t *testing.T) {
	th := Get("gruvbox")
	if th.Name != "gruvbox" {
		t.Errorf("Get(\"gruvbox\").Name = %q, want %q", th.Name, "gruvbox")
	}
	if th.Background != "#282828" {
		t.Errorf("Get(\"gruvbox\").Background = %q, want %q", th.Background, "#282828")
	}
}

func TestGetUnknownFallsBackToDefault(t *testing.T) {
	th := Get("unknown-theme-xyz")
	def := Get("default")
	if th.Name != def.Name {
		t.Errorf("Get(\"unknown\") = %q, want %q (default)", th.Name, def.Name)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if !sort.StringsAreSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
	want := map[string]bool{"default": false, "gruvbox": false, "nord": false, "tokyonight": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, found := range want {
		if !found {
			t.Errorf("Names() missing builtin %q", n)
		}
	}
}

func TestBuiltinThemesHaveValidColors(t *testing.T) {
	for _, name := range Names() {
		th := Get(name)
		for field, value := range map[string]string{
			"Background":        th.Background,
			"Foreground":        th.Foreground,
			"Accent":            th.Accent,
			"StatusOK":          th.StatusOK,
			"WorkspaceActive":   th.WorkspaceActive,
			"BatteryCharging":   th.BatteryCharging,
			"BatteryCritical":   th.BatteryCritical,
			"CPUHot":            th.CPUHot,
			"SegmentBG":         th.SegmentBG,
			"WorkspaceInactive": th.WorkspaceInactive,
		} {
			if !thTestHexPattern.MatchString(value) {
				t.Errorf("theme %q field %s = %q, want #RRGGBB", name, field, value)
			}
		}
	}
}

// --- Motion ---

func TestDefaultMotion(t *testing.T) {
	m := DefaultMotion()
	if m.ScrollTick <= 0 || m.ScrollTick > time.Second {
		t.Errorf("ScrollTick = %v, want a sub-second positive interval", m.ScrollTick)
	}
	if m.ScrollGap <= 0 {
		t.Errorf("ScrollGap = %d, want > 0", m.ScrollGap)
	}
	if m.BlinkTick <= 0 {
		t.Errorf("BlinkTick = %v, want > 0", m.BlinkTick)
	}
}

// --- TOML round-trip ---

func TestTOMLRoundTrip(t *testing.T) {
	orig := Get("nord")
	data, err := SaveToTOML(orig)
	if err != nil {
		t.Fatalf("SaveToTOML: %v", err)
	}
	loaded, err := LoadFromTOML(data)
	if err != nil {
		t.Fatalf("LoadFromTOML: %v", err)
	}
	if loaded != orig {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", loaded, orig)
	}
}

func TestLoadFromTOMLRejectsBadColor(t *testing.T) {
	th := Get("default")
	th.Name = "broken"
	th.CPUHot = "red"
	data, err := SaveToTOML(th)
	if err != nil {
		t.Fatalf("SaveToTOML: %v", err)
	}
	if _, err := LoadFromTOML(data); err == nil {
		t.Error("LoadFromTOML accepted invalid hex color")
	}
}

func TestLoadFromTOMLRejectsMissingField(t *testing.T) {
	if _, err := LoadFromTOML([]byte(`name = "sparse"`)); err == nil {
		t.Error("LoadFromTOML accepted theme with missing colors")
	}
}

// --- Apply helpers ---

func TestApplyStatusColors(t *testing.T) {
	th := Get("default")
	cases := []struct {
		status string
		color  string
	}{
		{"ok", th.StatusOK},
		{"healthy", th.StatusOK},
		{"warn", th.StatusWarn},
		{"error", th.StatusError},
		{"critical", th.StatusError},
		{"???", th.StatusUnknown},
	}
	for _, c := range cases {
		got := ApplyStatus("x", c.status, th)
		want := Colorize("x", c.color)
		if got != want {
			t.Errorf("ApplyStatus(%q) = %q, want %q", c.status, got, want)
		}
	}
}

func TestBatteryColor(t *testing.T) {
	th := Get("default")
	cases := []struct {
		pct      float64
		charging bool
		want     string
	}{
		{100, true, th.BatteryCharging},
		{5, true, th.BatteryCharging},
		{5, false, th.BatteryCritical},
		{10, false, th.BatteryCritical},
		{11, false, th.BatteryLow},
		{25, false, th.BatteryLow},
		{26, false, th.Foreground},
		{100, false, th.Foreground},
	}
	for _, c := range cases {
		if got := BatteryColor(c.pct, c.charging, th); got != c.want {
			t.Errorf("BatteryColor(%.0f, %v) = %q, want %q", c.pct, c.charging, got, c.want)
		}
	}
}

func TestWorkspaceColor(t *testing.T) {
	th := Get("default")
	if got := WorkspaceColor(true, false, th); got != th.WorkspaceActive {
		t.Errorf("active workspace color = %q, want %q", got, th.WorkspaceActive)
	}
	if got := WorkspaceColor(true, true, th); got != th.WorkspaceUrgent {
		t.Errorf("urgent beats active: got %q, want %q", got, th.WorkspaceUrgent)
	}
	if got := WorkspaceColor(false, false, th); got != th.WorkspaceInactive {
		t.Errorf("inactive workspace color = %q, want %q", got, th.WorkspaceInactive)
	}
}

func TestColorizeInvalidHexPassesThrough(t *testing.T) {
	if got := Colorize("text", "nothex"); got != "text" {
		t.Errorf("Colorize with invalid hex = %q, want passthrough", got)
	}
	if got := Colorize("text", ""); got != "text" {
		t.Errorf("Colorize with empty hex = %q, want passthrough", got)
	}
}

// --- 256-color fallback ---

func TestAdaptNoOpAtTrueColor(t *testing.T) {
	th := Get("default")
	if got := Adapt(th, 24); got != th {
		t.Error("Adapt at 24-bit depth modified the theme")
	}
}

func TestAdaptConvertsToIndices(t *testing.T) {
	th := Adapt(Get("default"), 8)
	for field, value := range map[string]string{
		"Background": th.Background,
		"Accent":     th.Accent,
		"CPUHot":     th.CPUHot,
	} {
		idx, err := strconv.Atoi(value)
		if err != nil {
			t.Errorf("Adapt left field %s = %q, want numeric 256-color index", field, value)
			continue
		}
		if idx < 16 || idx > 255 {
			t.Errorf("field %s index %d outside 16-255", field, idx)
		}
	}
}

func TestTo256ColorGrayscale(t *testing.T) {
	// Pure grays should land on the grayscale ramp (232-255).
	got := thTo256Color("#808080")
	idx, err := strconv.Atoi(got)
	if err != nil {
		t.Fatalf("thTo256Color returned non-numeric %q", got)
	}
	if idx < 232 || idx > 255 {
		t.Errorf("gray #808080 mapped to %d, want grayscale ramp 232-255", idx)
	}
}

func TestTo256ColorInvalidPassesThrough(t *testing.T) {
	if got := thTo256Color("notacolor"); got != "notacolor" {
		t.Errorf("thTo256Color(invalid) = %q, want passthrough", got)
	}
}

func TestColorizeEmitsTrueColorEscape(t *testing.T) {
	got := Colorize("hi", "#ff0000")
	if !strings.Contains(got, "38;2;255;0;0") {
		t.Errorf("Colorize(#ff0000) = %q, want 38;2;255;0;0 escape", got)
	}
	if !strings.HasSuffix(got, "\x1b[0m") {
		t.Errorf("Colorize output %q missing reset", got)
	}
}
