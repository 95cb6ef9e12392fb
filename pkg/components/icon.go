package components

// glyph holds the unicode form of an icon and its ASCII fallback for
// terminals without a capable font.
type glyph struct {
	unicode string
	ascii   string
}

// iconCatalog maps symbolic icon names to glyphs. Names are stable
// identifiers used by widgets; the rendered rune is a display detail.
var iconCatalog = map[string]glyph{
	"cpu":          {"", "CPU"},
	"cpu-hot":      {"", "CPU!"},
	"clock":        {"", "@"},
	"calendar":     {"", "#"},
	"keepawake-on": {"", "[K]"},
	"keepawake-off": {"", "[k]"},
	"media-play":   {"", ">"},
	"media-pause":  {"", "||"},

	// Battery, by charge decile plus charging.
	"battery-full":     {"", "[####]"},
	"battery-high":     {"", "[### ]"},
	"battery-half":     {"", "[##  ]"},
	"battery-low":      {"", "[#   ]"},
	"battery-empty":    {"", "[    ]"},
	"battery-charging": {"", "[chg]"},

	// Weather conditions.
	"weather-clear":   {"", "(sun)"},
	"weather-partly":  {"", "(s/c)"},
	"weather-cloudy":  {"", "(cld)"},
	"weather-rain":    {"", "(rn)"},
	"weather-snow":    {"", "(sw)"},
	"weather-fog":     {"", "(fg)"},
	"weather-storm":   {"", "(st)"},
	"weather-unknown": {"", "(?)"},

	// Workspace roles, matching the ordering table.
	"ws-terminal":      {"", ">_"},
	"ws-coding":        {"", "</>"},
	"ws-browser":       {"", "www"},
	"ws-music":         {"", "~"},
	"ws-design":        {"", "*"},
	"ws-communication": {"", "o"},
	"ws-misc":          {"", "+"},
	"ws-files":         {"", "/"},
	"ws-mail":          {"", "M"},
	"ws-tasks":         {"", "T"},
	"ws-unknown":       {"", "."},
}

// Icon returns the glyph for the named icon. When unicode is false the
// ASCII fallback form is returned instead. Unknown names return an empty
// string so callers degrade to text-only segments.
func Icon(name string, unicode bool) string {
	g, ok := iconCatalog[name]
	if !ok {
		return ""
	}
	if unicode {
		return g.unicode
	}
	return g.ascii
}

// HasIcon reports whether name exists in the icon catalog.
func HasIcon(name string) bool {
	_, ok := iconCatalog[name]
	return ok
}

// BatteryIcon selects the battery icon name for a charge percentage and
// charging state.
func BatteryIcon(percentage float64, charging bool) string {
	if charging {
		return "battery-charging"
	}
	switch {
	case percentage >= 90:
		return "battery-full"
	case percentage >= 65:
		return "battery-high"
	case percentage >= 40:
		return "battery-half"
	case percentage >= 15:
		return "battery-low"
	default:
		return "battery-empty"
	}
}
