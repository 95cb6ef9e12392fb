package theme

import (
	"fmt"
	"strings"
)

// ApplyStatus colors text based on a status string.
// Recognized statuses: "ok", "warn", "warning", "error", "unknown".
func ApplyStatus(text, status string, t Theme) string {
	var color string
	switch strings.ToLower(status) {
	case "ok", "healthy", "running":
		color = t.StatusOK
	case "warn", "warning":
		color = t.StatusWarn
	case "error", "err", "critical", "failed":
		color = t.StatusError
	default:
		color = t.StatusUnknown
	}
	return Colorize(text, color)
}

// BatteryColor returns the color for a battery segment given the charge
// percentage and whether the battery is charging. Thresholds: <=10 critical,
// <=25 low, charging always wins.
func BatteryColor(percentage float64, charging bool, t Theme) string {
	switch {
	case charging:
		return t.BatteryCharging
	case percentage <= 10:
		return t.BatteryCritical
	case percentage <= 25:
		return t.BatteryLow
	default:
		return t.Foreground
	}
}

// WorkspaceColor returns the pill color for a workspace given its state.
func WorkspaceColor(active, urgent bool, t Theme) string {
	switch {
	case urgent:
		return t.WorkspaceUrgent
	case active:
		return t.WorkspaceActive
	default:
		return t.WorkspaceInactive
	}
}

// Colorize wraps text in ANSI true-color foreground escape sequences using
// the given hex color. Returns text unchanged if hexColor is empty or invalid.
func Colorize(text, hexColor string) string {
	if hexColor == "" {
		return text
	}
	r, g, b, ok := thParseHex(hexColor)
	if !ok {
		return text
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", r, g, b, text)
}
