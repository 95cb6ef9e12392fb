package widgets

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/pulsebar/pkg/app"
	"gitlab.com/tinyland/lab/pulsebar/pkg/collectors/weather"
	"gitlab.com/tinyland/lab/pulsebar/pkg/components"
	"gitlab.com/tinyland/lab/pulsebar/pkg/theme"
)

// WeatherWidget shows current conditions for the resolved location. When
// only a display name could be resolved it renders the name alone.
type WeatherWidget struct {
	report  weather.Report
	hasData bool
	stale   bool
	unicode bool
}

// NewWeatherWidget creates the weather segment.
func NewWeatherWidget(unicode bool) *WeatherWidget {
	return &WeatherWidget{unicode: unicode}
}

// ID returns the segment identifier.
func (w *WeatherWidget) ID() string { return "weather" }

// Title returns the segment's display name.
func (w *WeatherWidget) Title() string { return "Weather" }

// Update consumes weather collector results.
func (w *WeatherWidget) Update(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(app.DataUpdateEvent)
	if !ok || ev.Source != "weather" {
		return nil
	}
	if rep, ok := ev.Result.Data.(weather.Report); ok {
		w.report = rep
		w.hasData = true
	}
	w.stale = !ev.Result.OK()
	return nil
}

// HandleKey is a no-op.
func (w *WeatherWidget) HandleKey(tea.KeyMsg) tea.Cmd { return nil }

// View renders temperature and condition icon, or just the location name
// when no conditions are available.
func (w *WeatherWidget) View(th theme.Theme) string {
	if !w.hasData {
		return theme.Colorize("...", th.StatusUnknown)
	}
	var text string
	if w.report.HasConditions {
		text = fmt.Sprintf("%.0f°", w.report.Temperature)
		if icon := components.Icon(w.report.Icon, w.unicode); icon != "" {
			text = icon + " " + text
		}
	} else {
		text = w.report.Location.DisplayName
	}
	cell := theme.Colorize(text, th.Foreground)
	if w.stale {
		cell = components.Dim(cell)
	}
	return cell
}

// Width returns the rendered cell width.
func (w *WeatherWidget) Width() int {
	return components.VisibleLen(w.View(theme.Current))
}

// ExpandedView renders the weather detail panel.
func (w *WeatherWidget) ExpandedView(th theme.Theme, width, height int) string {
	if !w.report.HasConditions {
		return w.report.Location.DisplayName
	}
	return fmt.Sprintf("%s\n%s  %.1f°C  wind %.0f km/h\n%s",
		w.report.Location.DisplayName,
		w.report.Condition,
		w.report.Temperature,
		w.report.WindSpeed,
		theme.Colorize("fetched "+w.report.FetchedAt.Format("15:04"), th.Dim))
}
