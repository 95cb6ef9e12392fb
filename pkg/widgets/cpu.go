package widgets

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/pulsebar/pkg/app"
	"gitlab.com/tinyland/lab/pulsebar/pkg/bridge"
	"gitlab.com/tinyland/lab/pulsebar/pkg/components"
	"gitlab.com/tinyland/lab/pulsebar/pkg/history"
	"gitlab.com/tinyland/lab/pulsebar/pkg/theme"
)

// HotTemperature is the Celsius threshold at and above which the CPU
// segment switches to its hot variant.
const HotTemperature = 85.0

// CPUWidget shows processor utilisation and temperature. Its expanded panel
// charts recent usage from the history store.
type CPUWidget struct {
	info    bridge.CPUInfo
	hasData bool
	stale   bool
	hist    *history.Store
	unicode bool
}

// NewCPUWidget creates the CPU segment. hist may be nil; the expanded panel
// then shows only the current reading.
func NewCPUWidget(hist *history.Store, unicode bool) *CPUWidget {
	return &CPUWidget{hist: hist, unicode: unicode}
}

// ID returns the segment identifier.
func (w *CPUWidget) ID() string { return "cpu" }

// Title returns the segment's display name.
func (w *CPUWidget) Title() string { return "CPU" }

// Hot reports whether the current temperature is at or above the hot
// threshold. A missing sensor is never hot.
func (w *CPUWidget) Hot() bool {
	return w.info.Temperature != nil && *w.info.Temperature >= HotTemperature
}

// Update consumes cpu collector results. Failed polls keep the last value
// and mark the segment stale.
func (w *CPUWidget) Update(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(app.DataUpdateEvent)
	if !ok || ev.Source != "cpu" {
		return nil
	}
	if info, ok := ev.Result.Data.(bridge.CPUInfo); ok {
		w.info = info
		w.hasData = true
	}
	w.stale = !ev.Result.OK()
	return nil
}

// HandleKey is a no-op; panel toggling is handled by the bar.
func (w *CPUWidget) HandleKey(tea.KeyMsg) tea.Cmd { return nil }

// View renders the utilisation cell, switching to the hot variant when the
// package temperature crosses the threshold.
func (w *CPUWidget) View(th theme.Theme) string {
	if !w.hasData {
		return theme.Colorize("cpu --%", th.StatusUnknown)
	}
	iconName := "cpu"
	color := th.Foreground
	if w.Hot() {
		iconName = "cpu-hot"
		color = th.CPUHot
	}
	text := fmt.Sprintf("%3.0f%%", w.info.Usage)
	if w.info.Temperature != nil {
		text += fmt.Sprintf(" %2.0f°", *w.info.Temperature)
	}
	if icon := components.Icon(iconName, w.unicode); icon != "" {
		text = icon + " " + text
	}
	cell := theme.Colorize(text, color)
	if w.stale {
		cell = components.Dim(cell)
	}
	return cell
}

// Width returns the rendered cell width.
func (w *CPUWidget) Width() int {
	return components.VisibleLen(w.View(theme.Current))
}

// ExpandedView renders the usage history panel.
func (w *CPUWidget) ExpandedView(th theme.Theme, width, height int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "usage %.1f%%", w.info.Usage)
	if w.info.Temperature != nil {
		fmt.Fprintf(&b, "  temp %.1f°C", *w.info.Temperature)
	}
	if w.Hot() {
		b.WriteString("  " + theme.Colorize("HOT", th.CPUHot))
	}
	if w.hist != nil && width > 2 {
		if snap, ok := w.hist.Recent(history.SeriesCPUUsage, width-2); ok && snap.Len() > 1 {
			b.WriteString("\n")
			spark := components.Sparkline(snap.Values, width-2, 0, 100)
			b.WriteString(theme.Colorize(spark, th.ChartLine))
			fmt.Fprintf(&b, "\n%s", theme.Colorize(
				fmt.Sprintf("min %.0f%%  max %.0f%%", snap.Min(), snap.Max()), th.Dim))
		}
	}
	return b.String()
}
