package widgets

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/pulsebar/pkg/app"
	"gitlab.com/tinyland/lab/pulsebar/pkg/bridge"
	"gitlab.com/tinyland/lab/pulsebar/pkg/components"
	"gitlab.com/tinyland/lab/pulsebar/pkg/history"
	"gitlab.com/tinyland/lab/pulsebar/pkg/theme"
)

// BatteryWidget shows charge percentage with a state icon. Color follows
// the theme's battery variants: charging wins, then critical, then low.
type BatteryWidget struct {
	info    bridge.BatteryInfo
	hasData bool
	stale   bool
	hist    *history.Store
	unicode bool
}

// NewBatteryWidget creates the battery segment.
func NewBatteryWidget(hist *history.Store, unicode bool) *BatteryWidget {
	return &BatteryWidget{hist: hist, unicode: unicode}
}

// ID returns the segment identifier.
func (w *BatteryWidget) ID() string { return "battery" }

// Title returns the segment's display name.
func (w *BatteryWidget) Title() string { return "Battery" }

// Update consumes battery collector results.
func (w *BatteryWidget) Update(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(app.DataUpdateEvent)
	if !ok || ev.Source != "battery" {
		return nil
	}
	if info, ok := ev.Result.Data.(bridge.BatteryInfo); ok {
		w.info = info
		w.hasData = true
	}
	w.stale = !ev.Result.OK()
	return nil
}

// HandleKey is a no-op.
func (w *BatteryWidget) HandleKey(tea.KeyMsg) tea.Cmd { return nil }

// View renders the charge cell.
func (w *BatteryWidget) View(th theme.Theme) string {
	if !w.hasData {
		return theme.Colorize("bat --%", th.StatusUnknown)
	}
	charging := w.info.State == bridge.BatteryCharging
	icon := components.Icon(components.BatteryIcon(w.info.Percentage, charging), w.unicode)
	text := fmt.Sprintf("%3.0f%%", w.info.Percentage)
	if icon != "" {
		text = icon + " " + text
	}
	cell := theme.Colorize(text, theme.BatteryColor(w.info.Percentage, charging, th))
	if w.stale {
		cell = components.Dim(cell)
	}
	return cell
}

// Width returns the rendered cell width.
func (w *BatteryWidget) Width() int {
	return components.VisibleLen(w.View(theme.Current))
}

// ExpandedView renders the battery detail panel.
func (w *BatteryWidget) ExpandedView(th theme.Theme, width, height int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %.0f%%", w.info.State, w.info.Percentage)
	if w.info.EnergyRate > 0 {
		fmt.Fprintf(&b, "  %.1fW", w.info.EnergyRate)
	}
	switch {
	case w.info.TimeToEmpty > 0:
		fmt.Fprintf(&b, "  %s left", formatETA(w.info.TimeToEmpty))
	case w.info.TimeToFull > 0:
		fmt.Fprintf(&b, "  full in %s", formatETA(w.info.TimeToFull))
	}
	if w.info.Health > 0 {
		b.WriteString("\n" + theme.Colorize(
			fmt.Sprintf("health %.0f%%  cycles %d", w.info.Health, w.info.CycleCount), th.Dim))
	}
	if w.hist != nil && width > 2 {
		if snap, ok := w.hist.Recent(history.SeriesBatteryPct, width-2); ok && snap.Len() > 1 {
			b.WriteString("\n")
			spark := components.Sparkline(snap.Values, width-2, 0, 100)
			b.WriteString(theme.Colorize(spark, th.ChartLine))
		}
	}
	return b.String()
}

// formatETA renders a duration as h:mm for battery estimates.
func formatETA(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%d:%02d", h, m)
}
