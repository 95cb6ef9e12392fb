// Package theme defines the design tokens for the pulsebar status bar:
// color palettes, segment styling, and motion cadence constants. Themes are
// registered by name and looked up with a fallback to the default theme.
package theme

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Theme defines the complete color palette for the bar and its panel.
type Theme struct {
	Name string

	// Base colors
	Background string // hex color e.g. "#1a1b26"
	Foreground string // hex color
	Dim        string // dimmed text
	Accent     string // highlights, active segment borders

	// Bar segment colors
	SegmentBG     string // segment background
	SegmentBorder string // segment separators / panel borders
	Title         string // panel title text

	// Status colors
	StatusOK      string // green - healthy
	StatusWarn    string // yellow - warning
	StatusError   string // red - error
	StatusUnknown string // gray - no data yet

	// Workspace switcher colors
	WorkspaceActive   string // focused workspace pill
	WorkspaceInactive string // unfocused workspace pill
	WorkspaceUrgent   string // workspace requesting attention

	// Battery colors
	BatteryCharging string
	BatteryLow      string
	BatteryCritical string

	// CPU colors
	CPUHot string // temperature at or above the hot threshold

	// Chart colors (panel sparklines)
	ChartLine string
	ChartFill string
	ChartGrid string

	// Special
	ButtonPressed string // momentary pressed-state background
	HelpKey       string // keybinding highlight color
	HelpDesc      string // help description color
}

// Motion holds the cadence constants for animated components: tick
// intervals and spacing rather than easing curves, since terminal cells
// move in whole-character steps.
type Motion struct {
	// ScrollTick is the delay between marquee offset advances.
	ScrollTick time.Duration

	// ScrollGap is the number of blank cells between marquee repetitions.
	ScrollGap int

	// BlinkTick is the cadence for blinking indicators (e.g. critical battery).
	BlinkTick time.Duration
}

// DefaultMotion returns the standard motion tokens.
func DefaultMotion() Motion {
	return Motion{
		ScrollTick: 150 * time.Millisecond,
		ScrollGap:  3,
		BlinkTick:  800 * time.Millisecond,
	}
}

// Current holds the active theme (set via SetCurrent).
var Current Theme

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	thRegisterBuiltins()
	Current = thDefaultTheme()
}

// Get returns a named theme, falling back to Default if not found.
func Get(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t
	}
	return registry["default"]
}

// Names returns all available theme names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetCurrent sets the active theme by name.
func SetCurrent(name string) {
	Current = Get(name)
}

// Register adds a user-supplied theme to the registry. Built-in themes may
// be shadowed by registering a theme with the same name.
func Register(t Theme) {
	thRegister(t)
}

// thRegister adds a theme to the registry under its lowercase name.
func thRegister(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(t.Name)] = t
}
